package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPlanDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.December, 31, 22, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-12-31", DefaultPlanDate(now, false))
	assert.Equal(t, "2026-01-01", DefaultPlanDate(now, true), "rolls over to the next year")
}

func TestParsePlanDate(t *testing.T) {
	t.Parallel()

	d, err := ParsePlanDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, 29, d.Day())

	for _, bad := range []string{"", "2023-02-29", "2024-2-1", "tomorrow"} {
		_, err := ParsePlanDate(bad)
		assert.ErrorIs(t, err, ErrInvalidPlanDate, bad)
	}
}

func TestPlanValidate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	a, err := NewTask(userID, "2025-03-01", "a")
	require.NoError(t, err)
	b, err := NewTask(userID, "2025-03-02", "b")
	require.NoError(t, err)

	assert.ErrorIs(t, (&Plan{Date: "2025-03-01"}).Validate(), ErrEmptyPlan)
	assert.ErrorIs(t, (&Plan{Date: "2025-03-01", Tasks: []*Task{a, b}}).Validate(), ErrTaskDateMismatch)
	assert.NoError(t, (&Plan{Date: "2025-03-01", Tasks: []*Task{a}}).Validate())
}

func TestPlanRenumberAndCompleted(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	p := &Plan{Date: "2025-03-01"}
	for _, title := range []string{"a", "b", "c"} {
		task, err := NewTask(userID, p.Date, title)
		require.NoError(t, err)
		task.Position = 99
		p.Tasks = append(p.Tasks, task)
	}
	p.Tasks[1].SetDone(true)

	p.Renumber()

	for i, task := range p.Tasks {
		assert.Equal(t, i, task.Position)
	}
	assert.Equal(t, 1, p.Completed())
}

func TestValidationErrorsWrapSentinel(t *testing.T) {
	for _, err := range []error{
		ErrEmptyTaskTitle, ErrTaskTitleTooLong, ErrInvalidPriority,
		ErrInvalidPlanDate, ErrEmptyPlan, ErrInvalidEmail, ErrPasswordTooShort,
	} {
		assert.ErrorIs(t, err, ErrValidation, err.Error())
	}
	assert.NotErrorIs(t, ErrUnauthorized, ErrValidation)
}
