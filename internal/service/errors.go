package service

import "errors"

// Common service errors. The API layer maps these to HTTP status codes.
var (
	// ErrEmptyParagraph is returned when task generation is asked to convert
	// a blank paragraph. Maps to 400.
	ErrEmptyParagraph = errors.New("paragraph cannot be empty")

	// ErrInvalidOrder is returned when a reorder request is not a
	// permutation of the plan's task IDs. Maps to 400.
	ErrInvalidOrder = errors.New("task order must list every task of the plan exactly once")

	// ErrInvalidCredentials is returned when login fails, whether the email
	// is unknown or the password is wrong. Maps to 401.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
