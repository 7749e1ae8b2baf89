package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/dailyplan-api/internal/domain"
	"github.com/phrazzld/dailyplan-api/internal/generation"
	"github.com/phrazzld/dailyplan-api/internal/platform/logger"
	"github.com/phrazzld/dailyplan-api/internal/store"
)

// TaskDraft is a task as submitted by a client before it has an identity.
type TaskDraft struct {
	Title string
	Done  bool
	// Priority defaults to low when empty.
	Priority domain.Priority
}

// TaskUpdate carries the fields of a partial task update; nil means unchanged.
type TaskUpdate struct {
	Title    *string
	Done     *bool
	Priority *domain.Priority
}

// GeneratedTasks is the outcome of GenerateTasks.
type GeneratedTasks struct {
	Date string
	// Titles are the cleaned titles returned by the generator.
	Titles []string
	// Tasks are new, unfinished tasks built from Titles.
	Tasks []*domain.Task
	// Appended reports whether Tasks were stored at the end of the plan.
	Appended bool
}

// PlanService manages a user's dated plans.
type PlanService interface {
	// SavePlan replaces the plan for date with fresh tasks built from drafts.
	// At least one draft is required.
	SavePlan(ctx context.Context, userID uuid.UUID, date string, drafts []TaskDraft) (*domain.Plan, error)

	// GetPlan returns the plan for date or store.ErrPlanNotFound.
	GetPlan(ctx context.Context, userID uuid.UUID, date string) (*domain.Plan, error)

	// ListPlans returns the non-empty plans between from and to inclusive.
	ListPlans(ctx context.Context, userID uuid.UUID, from, to string) ([]*domain.Plan, error)

	// DefaultDate is the date a new plan should target: today, or tomorrow
	// once today has tasks.
	DefaultDate(ctx context.Context, userID uuid.UUID) (string, error)

	// ToggleTask flips a task between done and not done.
	ToggleTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// SetPriority changes a task's priority.
	SetPriority(ctx context.Context, userID, taskID uuid.UUID, priority domain.Priority) (*domain.Task, error)

	// CyclePriority advances a task on date to its next priority,
	// low -> medium -> high -> low.
	CyclePriority(ctx context.Context, userID uuid.UUID, date string, taskID uuid.UUID) (*domain.Task, error)

	// UpdateTask applies a partial update to a task on date.
	UpdateTask(ctx context.Context, userID uuid.UUID, date string, taskID uuid.UUID, update TaskUpdate) (*domain.Task, error)

	// ReorderTasks sets the plan's order to taskIDs, which must be a
	// permutation of the plan's task IDs.
	ReorderTasks(ctx context.Context, userID uuid.UUID, date string, taskIDs []uuid.UUID) (*domain.Plan, error)

	// DeleteTask removes one task from the plan for date.
	DeleteTask(ctx context.Context, userID uuid.UUID, date string, taskID uuid.UUID) error

	// DeletePlan removes every task on date.
	DeletePlan(ctx context.Context, userID uuid.UUID, date string) error

	// GenerateTasks converts paragraph into tasks for date (DefaultDate when
	// empty). With appendToPlan the tasks are stored after the existing ones;
	// otherwise they are returned unsaved.
	GenerateTasks(ctx context.Context, userID uuid.UUID, date, paragraph string, appendToPlan bool) (*GeneratedTasks, error)

	// GenerationAvailable reports whether task generation has a credential.
	GenerationAvailable() bool
}

// PlanServiceOption customises a plan service.
type PlanServiceOption func(*planServiceImpl)

// WithClock sets the clock used to decide today's date.
func WithClock(now func() time.Time) PlanServiceOption {
	return func(s *planServiceImpl) {
		if now != nil {
			s.now = now
		}
	}
}

type planServiceImpl struct {
	plans     store.PlanStore
	runTx     PlanTxRunner
	generator generation.Generator
	logger    *slog.Logger
	now       func() time.Time
}

var _ PlanService = (*planServiceImpl)(nil)

// NewPlanService creates a PlanService.
func NewPlanService(
	plans store.PlanStore,
	runTx PlanTxRunner,
	generator generation.Generator,
	logger *slog.Logger,
	opts ...PlanServiceOption,
) (PlanService, error) {
	if plans == nil {
		return nil, fmt.Errorf("plan store cannot be nil")
	}
	if runTx == nil {
		return nil, fmt.Errorf("transaction runner cannot be nil")
	}
	if generator == nil {
		return nil, fmt.Errorf("generator cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	s := &planServiceImpl{
		plans:     plans,
		runTx:     runTx,
		generator: generator,
		logger:    logger.With("component", "plan_service"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *planServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// SavePlan implements PlanService.
func (s *planServiceImpl) SavePlan(
	ctx context.Context,
	userID uuid.UUID,
	date string,
	drafts []TaskDraft,
) (*domain.Plan, error) {
	plan := &domain.Plan{Date: date, Tasks: make([]*domain.Task, 0, len(drafts))}
	if _, err := domain.ParsePlanDate(date); err != nil {
		return nil, err
	}

	for i, d := range drafts {
		task, err := domain.NewTask(userID, date, d.Title)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		task.Done = d.Done
		if d.Priority != "" {
			if err := task.SetPriority(d.Priority); err != nil {
				return nil, fmt.Errorf("task %d: %w", i, err)
			}
		}
		plan.Tasks = append(plan.Tasks, task)
	}
	plan.Renumber()

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	err := s.runTx(ctx, func(ctx context.Context, plans store.PlanStore) error {
		return plans.SavePlan(ctx, userID, date, plan.Tasks)
	})
	if err != nil {
		s.log(ctx).Error("failed to save plan",
			"error", err,
			"user_id", userID,
			"date", date)
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}

	s.log(ctx).Info("plan saved",
		"user_id", userID,
		"date", date,
		"tasks", len(plan.Tasks))
	return plan, nil
}

// GetPlan implements PlanService.
func (s *planServiceImpl) GetPlan(ctx context.Context, userID uuid.UUID, date string) (*domain.Plan, error) {
	if _, err := domain.ParsePlanDate(date); err != nil {
		return nil, err
	}
	plan, err := s.plans.GetPlan(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return plan, nil
}

// ListPlans implements PlanService.
func (s *planServiceImpl) ListPlans(ctx context.Context, userID uuid.UUID, from, to string) ([]*domain.Plan, error) {
	for _, bound := range []string{from, to} {
		if bound == "" {
			continue
		}
		if _, err := domain.ParsePlanDate(bound); err != nil {
			return nil, err
		}
	}

	plans, err := s.plans.ListPlans(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	if plans == nil {
		plans = []*domain.Plan{}
	}
	return plans, nil
}

// DefaultDate implements PlanService.
func (s *planServiceImpl) DefaultDate(ctx context.Context, userID uuid.UUID) (string, error) {
	now := s.now()
	has, err := s.plans.HasPlan(ctx, userID, domain.Today(now))
	if err != nil {
		return "", fmt.Errorf("failed to check today's plan: %w", err)
	}
	return domain.DefaultPlanDate(now, has), nil
}

// ToggleTask implements PlanService.
func (s *planServiceImpl) ToggleTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	return s.modifyTask(ctx, userID, "", taskID, func(t *domain.Task) error {
		t.SetDone(!t.Done)
		return nil
	})
}

// SetPriority implements PlanService.
func (s *planServiceImpl) SetPriority(
	ctx context.Context,
	userID, taskID uuid.UUID,
	priority domain.Priority,
) (*domain.Task, error) {
	return s.modifyTask(ctx, userID, "", taskID, func(t *domain.Task) error {
		return t.SetPriority(priority)
	})
}

// CyclePriority implements PlanService.
func (s *planServiceImpl) CyclePriority(
	ctx context.Context,
	userID uuid.UUID,
	date string,
	taskID uuid.UUID,
) (*domain.Task, error) {
	if _, err := domain.ParsePlanDate(date); err != nil {
		return nil, err
	}
	return s.modifyTask(ctx, userID, date, taskID, func(t *domain.Task) error {
		return t.SetPriority(t.Priority.Next())
	})
}

// UpdateTask implements PlanService.
func (s *planServiceImpl) UpdateTask(
	ctx context.Context,
	userID uuid.UUID,
	date string,
	taskID uuid.UUID,
	update TaskUpdate,
) (*domain.Task, error) {
	if _, err := domain.ParsePlanDate(date); err != nil {
		return nil, err
	}
	return s.modifyTask(ctx, userID, date, taskID, func(t *domain.Task) error {
		if update.Title != nil {
			if err := t.Rename(*update.Title); err != nil {
				return err
			}
		}
		if update.Done != nil {
			t.SetDone(*update.Done)
		}
		if update.Priority != nil {
			if err := t.SetPriority(*update.Priority); err != nil {
				return err
			}
		}
		return nil
	})
}

// modifyTask loads a task, applies change and writes it back in one
// transaction. A non-empty date must match the task's plan date.
func (s *planServiceImpl) modifyTask(
	ctx context.Context,
	userID uuid.UUID,
	date string,
	taskID uuid.UUID,
	change func(*domain.Task) error,
) (*domain.Task, error) {
	var updated *domain.Task
	err := s.runTx(ctx, func(ctx context.Context, plans store.PlanStore) error {
		task, err := plans.GetTask(ctx, userID, taskID)
		if err != nil {
			return err
		}
		if date != "" && task.PlanDate != date {
			return store.ErrTaskNotFound
		}
		if err := change(task); err != nil {
			return err
		}
		if err := plans.UpdateTask(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrValidation) && !store.IsNotFoundError(err) {
			s.log(ctx).Error("failed to update task",
				"error", err,
				"user_id", userID,
				"task_id", taskID)
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return updated, nil
}

// ReorderTasks implements PlanService.
func (s *planServiceImpl) ReorderTasks(
	ctx context.Context,
	userID uuid.UUID,
	date string,
	taskIDs []uuid.UUID,
) (*domain.Plan, error) {
	if _, err := domain.ParsePlanDate(date); err != nil {
		return nil, err
	}

	var reordered *domain.Plan
	err := s.runTx(ctx, func(ctx context.Context, plans store.PlanStore) error {
		plan, err := plans.GetPlan(ctx, userID, date)
		if err != nil {
			return err
		}

		byID := make(map[uuid.UUID]*domain.Task, len(plan.Tasks))
		for _, t := range plan.Tasks {
			byID[t.ID] = t
		}
		if len(taskIDs) != len(plan.Tasks) {
			return ErrInvalidOrder
		}

		ordered := make([]*domain.Task, 0, len(taskIDs))
		for _, id := range taskIDs {
			t, ok := byID[id]
			if !ok {
				return ErrInvalidOrder
			}
			delete(byID, id)
			ordered = append(ordered, t)
		}

		plan.Tasks = ordered
		for i, t := range plan.Tasks {
			if t.Position == i {
				continue
			}
			t.Position = i
			t.UpdatedAt = s.now().UTC()
			if err := plans.UpdateTask(ctx, t); err != nil {
				return err
			}
		}
		reordered = plan
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reorder tasks: %w", err)
	}
	return reordered, nil
}

// DeleteTask implements PlanService.
func (s *planServiceImpl) DeleteTask(ctx context.Context, userID uuid.UUID, date string, taskID uuid.UUID) error {
	if _, err := domain.ParsePlanDate(date); err != nil {
		return err
	}

	err := s.runTx(ctx, func(ctx context.Context, plans store.PlanStore) error {
		task, err := plans.GetTask(ctx, userID, taskID)
		if err != nil {
			return err
		}
		if task.PlanDate != date {
			return store.ErrTaskNotFound
		}
		return plans.DeleteTask(ctx, userID, taskID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.log(ctx).Info("task deleted", "user_id", userID, "task_id", taskID)
	return nil
}

// DeletePlan implements PlanService.
func (s *planServiceImpl) DeletePlan(ctx context.Context, userID uuid.UUID, date string) error {
	if _, err := domain.ParsePlanDate(date); err != nil {
		return err
	}
	if err := s.plans.DeletePlan(ctx, userID, date); err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}

	s.log(ctx).Info("plan deleted", "user_id", userID, "date", date)
	return nil
}

// GenerationAvailable implements PlanService.
func (s *planServiceImpl) GenerationAvailable() bool {
	return s.generator.HasCredential()
}

// GenerateTasks implements PlanService. Generation errors are returned as
// the generator's *generation.Error, wrapped.
func (s *planServiceImpl) GenerateTasks(
	ctx context.Context,
	userID uuid.UUID,
	date, paragraph string,
	appendToPlan bool,
) (*GeneratedTasks, error) {
	if strings.TrimSpace(paragraph) == "" {
		return nil, ErrEmptyParagraph
	}

	if date == "" {
		d, err := s.DefaultDate(ctx, userID)
		if err != nil {
			return nil, err
		}
		date = d
	} else if _, err := domain.ParsePlanDate(date); err != nil {
		return nil, err
	}

	titles, err := s.generator.ConvertParagraph(ctx, paragraph)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	result := &GeneratedTasks{Date: date, Titles: titles}
	if !appendToPlan {
		tasks, err := newTasksFromTitles(userID, date, titles, 0)
		if err != nil {
			return nil, err
		}
		result.Tasks = tasks
		return result, nil
	}

	err = s.runTx(ctx, func(ctx context.Context, plans store.PlanStore) error {
		offset := 0
		existing, err := plans.GetPlan(ctx, userID, date)
		switch {
		case err == nil:
			for _, t := range existing.Tasks {
				if t.Position >= offset {
					offset = t.Position + 1
				}
			}
		case errors.Is(err, store.ErrPlanNotFound):
		default:
			return err
		}

		tasks, err := newTasksFromTitles(userID, date, titles, offset)
		if err != nil {
			return err
		}
		if err := plans.AddTasks(ctx, tasks); err != nil {
			return err
		}
		result.Tasks = tasks
		return nil
	})
	if err != nil {
		s.log(ctx).Error("failed to append generated tasks",
			"error", err,
			"user_id", userID,
			"date", date)
		return nil, fmt.Errorf("failed to append generated tasks: %w", err)
	}

	result.Appended = true
	s.log(ctx).Info("generated tasks appended",
		"user_id", userID,
		"date", date,
		"tasks", len(result.Tasks))
	return result, nil
}

// newTasksFromTitles builds unfinished tasks positioned from offset.
func newTasksFromTitles(userID uuid.UUID, date string, titles []string, offset int) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0, len(titles))
	for i, title := range titles {
		task, err := domain.NewTask(userID, date, title)
		if err != nil {
			return nil, fmt.Errorf("generated task %d: %w", i, err)
		}
		task.Position = offset + i
		tasks = append(tasks, task)
	}
	return tasks, nil
}
