package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/dailyplan-api/internal/domain"
	"github.com/phrazzld/dailyplan-api/internal/platform/logger"
	"github.com/phrazzld/dailyplan-api/internal/store"
)

const taskColumns = `id, user_id, plan_date, title, done, priority, position, created_at, updated_at`

// PostgresPlanStore implements store.PlanStore on the plan_tasks table.
type PostgresPlanStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPlanStore creates a PostgresPlanStore on db, which may be a
// *sql.DB or a *sql.Tx. A nil logger means slog.Default().
func NewPostgresPlanStore(db store.DBTX, logger *slog.Logger) *PostgresPlanStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresPlanStore{
		db:     db,
		logger: logger.With(slog.String("component", "plan_store")),
	}
}

var _ store.PlanStore = (*PostgresPlanStore)(nil)

// WithTx implements store.PlanStore.WithTx.
func (s *PostgresPlanStore) WithTx(tx *sql.Tx) store.PlanStore {
	return &PostgresPlanStore{db: tx, logger: s.logger}
}

// SavePlan implements store.PlanStore.SavePlan.
func (s *PostgresPlanStore) SavePlan(ctx context.Context, userID uuid.UUID, date string, tasks []*domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	day, err := planDateArg(date)
	if err != nil {
		return err
	}
	for i, t := range tasks {
		if t.UserID != userID || t.PlanDate != date {
			return fmt.Errorf("%w: task %d does not belong to plan %s", store.ErrInvalidEntity, i, date)
		}
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM plan_tasks WHERE user_id = $1 AND plan_date = $2`, userID, day)
	if err != nil {
		log.Error("failed to clear plan", slog.String("error", err.Error()), slog.String("date", date))
		return MapError(err)
	}

	if err := s.insertTasks(ctx, tasks); err != nil {
		return err
	}

	replaced, _ := result.RowsAffected()
	log.Info("plan saved",
		slog.String("user_id", userID.String()),
		slog.String("date", date),
		slog.Int("tasks", len(tasks)),
		slog.Int64("replaced", replaced))
	return nil
}

// AddTasks implements store.PlanStore.AddTasks.
func (s *PostgresPlanStore) AddTasks(ctx context.Context, tasks []*domain.Task) error {
	return s.insertTasks(ctx, tasks)
}

func (s *PostgresPlanStore) insertTasks(ctx context.Context, tasks []*domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
		}
		day, _ := domain.ParsePlanDate(t.PlanDate)

		_, err := s.db.ExecContext(ctx, `
			INSERT INTO plan_tasks (`+taskColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, t.ID, t.UserID, day, t.Title, t.Done, string(t.Priority), t.Position, t.CreatedAt, t.UpdatedAt)
		if err != nil {
			log.Error("failed to insert task",
				slog.String("error", err.Error()),
				slog.String("task_id", t.ID.String()))
			return MapError(err)
		}
	}
	return nil
}

// GetPlan implements store.PlanStore.GetPlan.
func (s *PostgresPlanStore) GetPlan(ctx context.Context, userID uuid.UUID, date string) (*domain.Plan, error) {
	day, err := planDateArg(date)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM plan_tasks
		WHERE user_id = $1 AND plan_date = $2
		ORDER BY position, created_at
	`, userID, day)
	if err != nil {
		return nil, s.queryFailed(ctx, err)
	}

	plans, err := s.collectPlans(rows)
	if err != nil {
		return nil, s.queryFailed(ctx, err)
	}
	if len(plans) == 0 {
		return nil, store.ErrPlanNotFound
	}
	return plans[0], nil
}

// HasPlan implements store.PlanStore.HasPlan.
func (s *PostgresPlanStore) HasPlan(ctx context.Context, userID uuid.UUID, date string) (bool, error) {
	day, err := planDateArg(date)
	if err != nil {
		return false, err
	}

	var exists bool
	err = s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM plan_tasks WHERE user_id = $1 AND plan_date = $2)`,
		userID, day).Scan(&exists)
	if err != nil {
		return false, s.queryFailed(ctx, err)
	}
	return exists, nil
}

// ListPlans implements store.PlanStore.ListPlans.
func (s *PostgresPlanStore) ListPlans(ctx context.Context, userID uuid.UUID, from, to string) ([]*domain.Plan, error) {
	fromArg, err := optionalDateArg(from)
	if err != nil {
		return nil, err
	}
	toArg, err := optionalDateArg(to)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM plan_tasks
		WHERE user_id = $1
		  AND ($2::date IS NULL OR plan_date >= $2::date)
		  AND ($3::date IS NULL OR plan_date <= $3::date)
		ORDER BY plan_date, position, created_at
	`, userID, fromArg, toArg)
	if err != nil {
		return nil, s.queryFailed(ctx, err)
	}

	plans, err := s.collectPlans(rows)
	if err != nil {
		return nil, s.queryFailed(ctx, err)
	}
	return plans, nil
}

// GetTask implements store.PlanStore.GetTask.
func (s *PostgresPlanStore) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+`
		FROM plan_tasks
		WHERE id = $1 AND user_id = $2
	`, taskID, userID)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, s.queryFailed(ctx, err)
	}
	return task, nil
}

// UpdateTask implements store.PlanStore.UpdateTask.
func (s *PostgresPlanStore) UpdateTask(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE plan_tasks
		SET title = $3, done = $4, priority = $5, position = $6, updated_at = $7
		WHERE id = $1 AND user_id = $2
	`, task.ID, task.UserID, task.Title, task.Done, string(task.Priority), task.Position, task.UpdatedAt)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// DeleteTask implements store.PlanStore.DeleteTask.
func (s *PostgresPlanStore) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM plan_tasks WHERE id = $1 AND user_id = $2`, taskID, userID)
	if err != nil {
		return s.queryFailed(ctx, err)
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// DeletePlan implements store.PlanStore.DeletePlan.
func (s *PostgresPlanStore) DeletePlan(ctx context.Context, userID uuid.UUID, date string) error {
	day, err := planDateArg(date)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM plan_tasks WHERE user_id = $1 AND plan_date = $2`, userID, day)
	if err != nil {
		return s.queryFailed(ctx, err)
	}
	return CheckRowsAffected(result, store.ErrPlanNotFound)
}

func (s *PostgresPlanStore) queryFailed(ctx context.Context, err error) error {
	logger.FromContextOrDefault(ctx, s.logger).Error("plan query failed",
		slog.String("error", err.Error()))
	return MapError(err)
}

// collectPlans groups rows ordered by plan_date into plans and closes rows.
func (s *PostgresPlanStore) collectPlans(rows *sql.Rows) ([]*domain.Plan, error) {
	defer rows.Close()

	var plans []*domain.Plan
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		if n := len(plans); n == 0 || plans[n-1].Date != task.PlanDate {
			plans = append(plans, &domain.Plan{Date: task.PlanDate})
		}
		last := plans[len(plans)-1]
		last.Tasks = append(last.Tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return plans, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task     domain.Task
		day      time.Time
		priority string
	)
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&day,
		&task.Title,
		&task.Done,
		&priority,
		&task.Position,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	task.PlanDate = domain.FormatPlanDate(day)
	task.Priority = domain.Priority(priority)
	return &task, nil
}

func planDateArg(date string) (time.Time, error) {
	day, err := domain.ParsePlanDate(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return day, nil
}

// optionalDateArg maps "" to SQL NULL.
func optionalDateArg(date string) (any, error) {
	if date == "" {
		return nil, nil
	}
	return planDateArg(date)
}
