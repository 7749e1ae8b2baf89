package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/dailyplan-api/internal/api/shared"
	"github.com/phrazzld/dailyplan-api/internal/domain"
	"github.com/phrazzld/dailyplan-api/internal/generation"
	"github.com/phrazzld/dailyplan-api/internal/service"
	"github.com/phrazzld/dailyplan-api/internal/service/auth"
	"github.com/phrazzld/dailyplan-api/internal/store"
)

// validationErrors are the domain errors whose text is safe to show.
var validationErrors = []error{
	domain.ErrEmptyTaskTitle,
	domain.ErrTaskTitleTooLong,
	domain.ErrInvalidPriority,
	domain.ErrInvalidPlanDate,
	domain.ErrEmptyPlan,
	domain.ErrTaskDateMismatch,
	domain.ErrEmptyEmail,
	domain.ErrInvalidEmail,
	domain.ErrPasswordTooShort,
	domain.ErrPasswordTooLong,
	domain.ErrEmptyPassword,
}

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking their types or messages.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, service.ErrInvalidOrder),
		errors.Is(err, service.ErrEmptyParagraph),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, domain.ErrUnauthorized):
		return "User ID not found or invalid"
	case errors.Is(err, store.ErrPlanNotFound):
		return "Plan not found"
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case store.IsNotFoundError(err):
		return "Not found"
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, service.ErrInvalidOrder):
		return "Task order must list every task of the plan exactly once"
	case errors.Is(err, service.ErrEmptyParagraph):
		return "Paragraph cannot be empty"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.Is(err, domain.ErrValidation):
		return validationMessage(err)
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"
	default:
		return "An unexpected error occurred"
	}
}

// validationMessage names the first known domain validation error in err.
func validationMessage(err error) string {
	prefix := domain.ErrValidation.Error() + ": "
	for _, known := range validationErrors {
		if errors.Is(err, known) {
			return "Validation error: " + strings.TrimPrefix(known.Error(), prefix)
		}
	}
	return "Validation error"
}

// SanitizeValidationError turns a validator error into a short message that
// names the field and the failed rule.
func SanitizeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "datetime":
		return "must use the YYYY-MM-DD format"
	default:
		return "validation failed"
	}
}

// HandleAPIError responds with the status and safe message for err. An empty
// fallback uses GetSafeErrorMessage.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := fallback
	if message == "" || status != http.StatusInternalServerError {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// handleGenerationError reports a task generation failure with its
// user-facing category. Errors that carry no category fall back to
// HandleAPIError.
func handleGenerationError(w http.ResponseWriter, r *http.Request, err error) {
	var genErr *generation.Error
	if !errors.As(err, &genErr) {
		HandleAPIError(w, r, err, "Failed to generate tasks")
		return
	}

	category := genErr.Kind.Category()
	status := category.HTTPStatus()
	shared.RespondWithErrorAndLog(w, r, status, category.Message(), err,
		shared.WithElevatedLogLevel(),
		shared.WithBody(GenerationErrorResponse{
			Error:    category.Message(),
			Category: category.String(),
			TraceID:  shared.GetTraceID(r.Context()),
		}))
}
