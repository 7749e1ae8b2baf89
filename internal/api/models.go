package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/dailyplan-api/internal/domain"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Token  string    `json:"token"`
}

// TaskRequest is one task in a SavePlanRequest.
type TaskRequest struct {
	Title    string `json:"title"    validate:"required,max=100"`
	Done     bool   `json:"done"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// SavePlanRequest replaces the tasks of a date.
type SavePlanRequest struct {
	Tasks []TaskRequest `json:"tasks" validate:"required,min=1,dive"`
}

// UpdateTaskRequest is a partial task update; omitted fields are unchanged.
type UpdateTaskRequest struct {
	Title    *string `json:"title,omitempty"    validate:"omitempty,max=100"`
	Done     *bool   `json:"done,omitempty"`
	Priority *string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
}

// ReorderTasksRequest lists every task of a plan in its new order.
type ReorderTasksRequest struct {
	TaskIDs []uuid.UUID `json:"task_ids" validate:"required,min=1"`
}

// GenerateTasksRequest asks for tasks generated from a paragraph.
type GenerateTasksRequest struct {
	Paragraph string `json:"paragraph" validate:"required"`
	// Date defaults to the next free plan date.
	Date string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	// Append stores the tasks at the end of the plan instead of returning a draft.
	Append bool `json:"append,omitempty"`
}

// TaskResponse is the wire form of a task.
type TaskResponse struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	Title     string    `json:"title"`
	Done      bool      `json:"done"`
	Priority  string    `json:"priority"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlanResponse is the wire form of a plan.
type PlanResponse struct {
	Date      string         `json:"date"`
	Tasks     []TaskResponse `json:"tasks"`
	Completed int            `json:"completed"`
	Total     int            `json:"total"`
}

// PlansResponse wraps a list of plans.
type PlansResponse struct {
	Plans []PlanResponse `json:"plans"`
}

// DefaultDateResponse carries the date a new plan should use.
type DefaultDateResponse struct {
	Date string `json:"date"`
}

// GenerationStatusResponse reports whether task generation is configured.
type GenerationStatusResponse struct {
	Available bool `json:"available"`
}

// GenerateTasksResponse is the result of a task generation request.
type GenerateTasksResponse struct {
	Date     string         `json:"date"`
	Titles   []string       `json:"titles"`
	Tasks    []TaskResponse `json:"tasks"`
	Appended bool           `json:"appended"`
}

// GenerationErrorResponse is the error body of a failed generation request.
type GenerationErrorResponse struct {
	Error    string `json:"error"`
	Category string `json:"category"`
	TraceID  string `json:"trace_id,omitempty"`
}

func taskToResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        t.ID,
		Date:      t.PlanDate,
		Title:     t.Title,
		Done:      t.Done,
		Priority:  string(t.Priority),
		Position:  t.Position,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return out
}

func planToResponse(p *domain.Plan) PlanResponse {
	return PlanResponse{
		Date:      p.Date,
		Tasks:     tasksToResponse(p.Tasks),
		Completed: p.Completed(),
		Total:     len(p.Tasks),
	}
}
