package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	task, err := NewTask(userID, "2025-03-01", "  Go to the gym  ")

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, task.ID)
	assert.Equal(t, userID, task.UserID)
	assert.Equal(t, "Go to the gym", task.Title)
	assert.False(t, task.Done)
	assert.Equal(t, PriorityLow, task.Priority)
	assert.False(t, task.CreatedAt.IsZero())
}

func TestNewTaskValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		userID  uuid.UUID
		date    string
		title   string
		wantErr error
	}{
		{"blank title", uuid.New(), "2025-03-01", "   ", ErrEmptyTaskTitle},
		{"nil user", uuid.Nil, "2025-03-01", "x", ErrEmptyTaskUserID},
		{"bad date", uuid.New(), "01/03/2025", "x", ErrInvalidPlanDate},
		{"title too long", uuid.New(), "2025-03-01", strings.Repeat("a", 101), ErrTaskTitleTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTask(tt.userID, tt.date, tt.title)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTaskMutators(t *testing.T) {
	t.Parallel()

	task, err := NewTask(uuid.New(), "2025-03-01", "Read")
	require.NoError(t, err)

	task.SetDone(true)
	assert.True(t, task.Done)

	require.NoError(t, task.SetPriority(PriorityHigh))
	assert.Equal(t, PriorityHigh, task.Priority)
	assert.ErrorIs(t, task.SetPriority("urgent"), ErrInvalidPriority)

	require.NoError(t, task.Rename("  Read a book "))
	assert.Equal(t, "Read a book", task.Title)
	assert.ErrorIs(t, task.Rename(""), ErrEmptyTaskTitle)
}

func TestPriorityNext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, PriorityMedium, PriorityLow.Next())
	assert.Equal(t, PriorityHigh, PriorityMedium.Next())
	assert.Equal(t, PriorityLow, PriorityHigh.Next())
	assert.Equal(t, PriorityLow, Priority("").Next())
}
