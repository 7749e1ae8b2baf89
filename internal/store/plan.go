package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/dailyplan-api/internal/domain"
)

// PlanStore persists dated task lists. Dates are YYYY-MM-DD strings; tasks
// come back ordered by position.
type PlanStore interface {
	// SavePlan replaces every task the user has on date with tasks.
	// IMPORTANT: run inside store.RunInTransaction; the delete and the
	// inserts are separate statements.
	SavePlan(ctx context.Context, userID uuid.UUID, date string, tasks []*domain.Task) error

	// AddTasks inserts tasks without touching existing ones.
	AddTasks(ctx context.Context, tasks []*domain.Task) error

	// GetPlan returns the plan for date.
	// Returns ErrPlanNotFound if the date has no tasks.
	GetPlan(ctx context.Context, userID uuid.UUID, date string) (*domain.Plan, error)

	// HasPlan reports whether the date has at least one task.
	HasPlan(ctx context.Context, userID uuid.UUID, date string) (bool, error)

	// ListPlans returns every non-empty plan between from and to inclusive,
	// ordered by date. An empty bound is open.
	ListPlans(ctx context.Context, userID uuid.UUID, from, to string) ([]*domain.Plan, error)

	// GetTask retrieves one of the user's tasks.
	// Returns ErrTaskNotFound if it does not exist or belongs to someone else.
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// UpdateTask writes title, done, priority and position.
	// Returns ErrTaskNotFound if the task does not exist.
	UpdateTask(ctx context.Context, task *domain.Task) error

	// DeleteTask removes one task. Returns ErrTaskNotFound if it does not exist.
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error

	// DeletePlan removes every task on date. Returns ErrPlanNotFound if there
	// were none.
	DeletePlan(ctx context.Context, userID uuid.UUID, date string) error

	// WithTx returns a PlanStore bound to tx.
	WithTx(tx *sql.Tx) PlanStore
}
