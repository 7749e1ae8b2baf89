package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/dailyplan-api/internal/api/shared"
	"github.com/phrazzld/dailyplan-api/internal/domain"
	"github.com/phrazzld/dailyplan-api/internal/platform/logger"
	"github.com/phrazzld/dailyplan-api/internal/service"
)

var errNotStubbed = errors.New("not stubbed")

// mockPlanService implements service.PlanService with per-method functions.
type mockPlanService struct {
	savePlanFn      func(ctx context.Context, userID uuid.UUID, date string, drafts []service.TaskDraft) (*domain.Plan, error)
	getPlanFn       func(ctx context.Context, userID uuid.UUID, date string) (*domain.Plan, error)
	listPlansFn     func(ctx context.Context, userID uuid.UUID, from, to string) ([]*domain.Plan, error)
	defaultDateFn   func(ctx context.Context, userID uuid.UUID) (string, error)
	updateTaskFn    func(ctx context.Context, userID uuid.UUID, date string, taskID uuid.UUID, update service.TaskUpdate) (*domain.Task, error)
	cyclePriorityFn func(ctx context.Context, userID uuid.UUID, date string, taskID uuid.UUID) (*domain.Task, error)
	reorderTasksFn  func(ctx context.Context, userID uuid.UUID, date string, taskIDs []uuid.UUID) (*domain.Plan, error)
	deleteTaskFn    func(ctx context.Context, userID uuid.UUID, date string, taskID uuid.UUID) error
	deletePlanFn    func(ctx context.Context, userID uuid.UUID, date string) error
	generateTasksFn func(ctx context.Context, userID uuid.UUID, date, paragraph string, appendToPlan bool) (*service.GeneratedTasks, error)
	available       bool
}

var _ service.PlanService = (*mockPlanService)(nil)

func (m *mockPlanService) SavePlan(
	ctx context.Context,
	userID uuid.UUID,
	date string,
	drafts []service.TaskDraft,
) (*domain.Plan, error) {
	if m.savePlanFn == nil {
		return nil, errNotStubbed
	}
	return m.savePlanFn(ctx, userID, date, drafts)
}

func (m *mockPlanService) GetPlan(ctx context.Context, userID uuid.UUID, date string) (*domain.Plan, error) {
	if m.getPlanFn == nil {
		return nil, errNotStubbed
	}
	return m.getPlanFn(ctx, userID, date)
}

func (m *mockPlanService) ListPlans(ctx context.Context, userID uuid.UUID, from, to string) ([]*domain.Plan, error) {
	if m.listPlansFn == nil {
		return nil, errNotStubbed
	}
	return m.listPlansFn(ctx, userID, from, to)
}

func (m *mockPlanService) DefaultDate(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.defaultDateFn == nil {
		return "", errNotStubbed
	}
	return m.defaultDateFn(ctx, userID)
}

func (m *mockPlanService) ToggleTask(context.Context, uuid.UUID, uuid.UUID) (*domain.Task, error) {
	return nil, errNotStubbed
}

func (m *mockPlanService) SetPriority(context.Context, uuid.UUID, uuid.UUID, domain.Priority) (*domain.Task, error) {
	return nil, errNotStubbed
}

func (m *mockPlanService) UpdateTask(
	ctx context.Context,
	userID uuid.UUID,
	date string,
	taskID uuid.UUID,
	update service.TaskUpdate,
) (*domain.Task, error) {
	if m.updateTaskFn == nil {
		return nil, errNotStubbed
	}
	return m.updateTaskFn(ctx, userID, date, taskID, update)
}

func (m *mockPlanService) CyclePriority(
	ctx context.Context,
	userID uuid.UUID,
	date string,
	taskID uuid.UUID,
) (*domain.Task, error) {
	if m.cyclePriorityFn == nil {
		return nil, errNotStubbed
	}
	return m.cyclePriorityFn(ctx, userID, date, taskID)
}

func (m *mockPlanService) ReorderTasks(
	ctx context.Context,
	userID uuid.UUID,
	date string,
	taskIDs []uuid.UUID,
) (*domain.Plan, error) {
	if m.reorderTasksFn == nil {
		return nil, errNotStubbed
	}
	return m.reorderTasksFn(ctx, userID, date, taskIDs)
}

func (m *mockPlanService) DeleteTask(ctx context.Context, userID uuid.UUID, date string, taskID uuid.UUID) error {
	if m.deleteTaskFn == nil {
		return errNotStubbed
	}
	return m.deleteTaskFn(ctx, userID, date, taskID)
}

func (m *mockPlanService) DeletePlan(ctx context.Context, userID uuid.UUID, date string) error {
	if m.deletePlanFn == nil {
		return errNotStubbed
	}
	return m.deletePlanFn(ctx, userID, date)
}

func (m *mockPlanService) GenerateTasks(
	ctx context.Context,
	userID uuid.UUID,
	date, paragraph string,
	appendToPlan bool,
) (*service.GeneratedTasks, error) {
	if m.generateTasksFn == nil {
		return nil, errNotStubbed
	}
	return m.generateTasksFn(ctx, userID, date, paragraph, appendToPlan)
}

func (m *mockPlanService) GenerationAvailable() bool {
	return m.available
}

// mockUserService implements service.UserService.
type mockUserService struct {
	registerFn     func(ctx context.Context, email, password string) (*domain.User, error)
	authenticateFn func(ctx context.Context, email, password string) (*domain.User, error)
}

func (m *mockUserService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	return m.registerFn(ctx, email, password)
}

func (m *mockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	return m.authenticateFn(ctx, email, password)
}

// newTestRouter mounts the plan and generation handlers the way the server
// does, with userID injected in place of the auth middleware. uuid.Nil
// leaves the request unauthenticated.
func newTestRouter(t *testing.T, plans service.PlanService, userID uuid.UUID) http.Handler {
	t.Helper()
	log, _ := logger.NewTestLogger(t)

	planHandler := NewPlanHandler(plans)
	generationHandler := NewGenerationHandler(plans)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.WithLogger(shared.SetTraceID(r.Context()), log)
			if userID != uuid.Nil {
				ctx = shared.WithUserID(ctx, userID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	r.Get("/generation/status", generationHandler.Status)
	r.Post("/generation/tasks", generationHandler.GenerateTasks)
	r.Get("/plans", planHandler.ListPlans)
	r.Get("/plans/default-date", planHandler.DefaultDate)
	r.Route("/plans/{date}", func(r chi.Router) {
		r.Get("/", planHandler.GetPlan)
		r.Put("/", planHandler.SavePlan)
		r.Delete("/", planHandler.DeletePlan)
		r.Put("/order", planHandler.ReorderTasks)
		r.Patch("/tasks/{taskID}", planHandler.UpdateTask)
		r.Post("/tasks/{taskID}/cycle-priority", planHandler.CyclePriority)
		r.Delete("/tasks/{taskID}", planHandler.DeleteTask)
	})
	return r
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func testPlan(userID uuid.UUID, date string, titles ...string) *domain.Plan {
	plan := &domain.Plan{Date: date}
	for i, title := range titles {
		plan.Tasks = append(plan.Tasks, &domain.Task{
			ID:       uuid.New(),
			UserID:   userID,
			PlanDate: date,
			Title:    title,
			Priority: domain.PriorityLow,
			Position: i,
		})
	}
	return plan
}
