package api

import (
	"net/http"

	"github.com/phrazzld/dailyplan-api/internal/api/shared"
	"github.com/phrazzld/dailyplan-api/internal/domain"
	"github.com/phrazzld/dailyplan-api/internal/platform/logger"
	"github.com/phrazzld/dailyplan-api/internal/service"
)

// PlanHandler serves the plan and task endpoints. Every route requires an
// authenticated user.
type PlanHandler struct {
	plans service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(plans service.PlanService) *PlanHandler {
	return &PlanHandler{plans: plans}
}

// ListPlans handles GET /plans?from=&to=. Both bounds are optional.
func (h *PlanHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	plans, err := h.plans.ListPlans(r.Context(), userID, q.Get("from"), q.Get("to"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list plans")
		return
	}

	resp := PlansResponse{Plans: make([]PlanResponse, 0, len(plans))}
	for _, p := range plans {
		resp.Plans = append(resp.Plans, planToResponse(p))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// DefaultDate handles GET /plans/default-date.
func (h *PlanHandler) DefaultDate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	date, err := h.plans.DefaultDate(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to determine plan date")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DefaultDateResponse{Date: date})
}

// GetPlan handles GET /plans/{date}.
func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	date, err := getPathDate(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	plan, err := h.plans.GetPlan(r.Context(), userID, date)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get plan")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, planToResponse(plan))
}

// SavePlan handles PUT /plans/{date}, replacing the plan's tasks.
func (h *PlanHandler) SavePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	date, err := getPathDate(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req SavePlanRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	drafts := make([]service.TaskDraft, 0, len(req.Tasks))
	for _, t := range req.Tasks {
		drafts = append(drafts, service.TaskDraft{
			Title:    t.Title,
			Done:     t.Done,
			Priority: domain.Priority(t.Priority),
		})
	}

	plan, err := h.plans.SavePlan(r.Context(), userID, date, drafts)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to save plan")
		return
	}

	logger.FromContext(r.Context()).Info("plan saved", "date", date, "tasks", len(plan.Tasks))
	shared.RespondWithJSON(w, r, http.StatusOK, planToResponse(plan))
}

// DeletePlan handles DELETE /plans/{date}.
func (h *PlanHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	date, err := getPathDate(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.plans.DeletePlan(r.Context(), userID, date); err != nil {
		HandleAPIError(w, r, err, "Failed to delete plan")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderTasks handles PUT /plans/{date}/order.
func (h *PlanHandler) ReorderTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	date, err := getPathDate(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req ReorderTasksRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	plan, err := h.plans.ReorderTasks(r.Context(), userID, date, req.TaskIDs)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to reorder tasks")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, planToResponse(plan))
}

// UpdateTask handles PATCH /plans/{date}/tasks/{taskID}.
func (h *PlanHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	date, err := getPathDate(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	taskID, err := getPathUUID(r, "taskID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	update := service.TaskUpdate{Title: req.Title, Done: req.Done}
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		update.Priority = &p
	}

	task, err := h.plans.UpdateTask(r.Context(), userID, date, taskID, update)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// CyclePriority handles POST /plans/{date}/tasks/{taskID}/cycle-priority.
func (h *PlanHandler) CyclePriority(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	date, err := getPathDate(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	taskID, err := getPathUUID(r, "taskID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.plans.CyclePriority(r.Context(), userID, date, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /plans/{date}/tasks/{taskID}.
func (h *PlanHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	date, err := getPathDate(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	taskID, err := getPathUUID(r, "taskID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.plans.DeleteTask(r.Context(), userID, date, taskID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
