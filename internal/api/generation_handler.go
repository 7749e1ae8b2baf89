package api

import (
	"net/http"

	"github.com/phrazzld/dailyplan-api/internal/api/shared"
	"github.com/phrazzld/dailyplan-api/internal/platform/logger"
	"github.com/phrazzld/dailyplan-api/internal/service"
)

// GenerationHandler turns free-form paragraphs into plan tasks.
type GenerationHandler struct {
	plans service.PlanService
}

// NewGenerationHandler creates a new GenerationHandler.
func NewGenerationHandler(plans service.PlanService) *GenerationHandler {
	return &GenerationHandler{plans: plans}
}

// Status handles GET /generation/status. Clients use it to hide the
// generation feature when no credential is configured.
func (h *GenerationHandler) Status(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, GenerationStatusResponse{
		Available: h.plans.GenerationAvailable(),
	})
}

// GenerateTasks handles POST /generation/tasks.
func (h *GenerationHandler) GenerateTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req GenerateTasksRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.plans.GenerateTasks(r.Context(), userID, req.Date, req.Paragraph, req.Append)
	if err != nil {
		handleGenerationError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("tasks generated",
		"date", result.Date,
		"tasks", len(result.Titles),
		"appended", result.Appended)

	status := http.StatusOK
	if result.Appended {
		status = http.StatusCreated
	}
	shared.RespondWithJSON(w, r, status, GenerateTasksResponse{
		Date:     result.Date,
		Titles:   result.Titles,
		Tasks:    tasksToResponse(result.Tasks),
		Appended: result.Appended,
	})
}
