// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// Validation errors; each wraps ErrValidation.
	ErrEmptyTaskID      = fmt.Errorf("%w: task ID cannot be empty", ErrValidation)
	ErrEmptyTaskUserID  = fmt.Errorf("%w: task user ID cannot be empty", ErrValidation)
	ErrEmptyTaskTitle   = fmt.Errorf("%w: task title cannot be empty", ErrValidation)
	ErrTaskTitleTooLong = fmt.Errorf("%w: task title is too long", ErrValidation)
	ErrInvalidPriority  = fmt.Errorf("%w: invalid task priority", ErrValidation)
	ErrInvalidPlanDate  = fmt.Errorf("%w: plan date must use the YYYY-MM-DD format", ErrValidation)
	ErrEmptyPlan        = fmt.Errorf("%w: a plan needs at least one task", ErrValidation)
	ErrTaskDateMismatch = fmt.Errorf("%w: task does not belong to this plan date", ErrValidation)
	ErrEmptyUserID      = fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	ErrEmptyEmail       = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrInvalidEmail     = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least 12 characters long", ErrValidation)
	ErrPasswordTooLong  = fmt.Errorf("%w: password must be at most 72 characters long", ErrValidation)
	ErrEmptyPassword    = fmt.Errorf("%w: password cannot be empty", ErrValidation)
	ErrUnauthorized     = errors.New("unauthorized operation")
)
