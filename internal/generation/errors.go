package generation

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per Kind. A *Error matches its sentinel with errors.Is.
var (
	ErrCredentialMissing = errors.New("gemini API key is not configured")
	ErrRequestFailed     = errors.New("gemini API request failed")
	ErrNetwork           = errors.New("network error while calling gemini")
	ErrEmptyGeneration   = errors.New("gemini returned no generated text")
	ErrMalformedResponse = errors.New("gemini response is not valid JSON")
	ErrInvalidTaskList   = errors.New("gemini response is not a non-empty JSON array")

	// ErrInvalidConfig is returned when the converter configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// Kind identifies the step of the pipeline that failed.
type Kind int

// Failure kinds.
const (
	KindCredentialMissing Kind = iota + 1
	KindRequestFailed
	KindNetwork
	KindEmptyGeneration
	KindMalformedResponse
	KindInvalidTaskList
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindCredentialMissing:
		return "credential_missing"
	case KindRequestFailed:
		return "request_failed"
	case KindNetwork:
		return "network"
	case KindEmptyGeneration:
		return "empty_generation"
	case KindMalformedResponse:
		return "malformed_response"
	case KindInvalidTaskList:
		return "invalid_task_list"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Category maps the kind to the user-facing category.
func (k Kind) Category() Category {
	switch k {
	case KindCredentialMissing:
		return CategoryCredentialMissing
	case KindMalformedResponse, KindInvalidTaskList:
		return CategoryMalformedResponse
	case KindNetwork:
		return CategoryNetwork
	case KindRequestFailed, KindEmptyGeneration:
		return CategoryCommunication
	default:
		return CategoryCommunication
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindCredentialMissing:
		return ErrCredentialMissing
	case KindRequestFailed:
		return ErrRequestFailed
	case KindNetwork:
		return ErrNetwork
	case KindEmptyGeneration:
		return ErrEmptyGeneration
	case KindMalformedResponse:
		return ErrMalformedResponse
	case KindInvalidTaskList:
		return ErrInvalidTaskList
	default:
		return nil
	}
}

// Error is the only error type ConvertParagraph returns.
type Error struct {
	Kind Kind
	// StatusCode is the HTTP status for KindRequestFailed, otherwise 0.
	StatusCode int
	// Err is the underlying cause, if any.
	Err error
}

// NewError creates an Error of the given kind wrapping cause.
func NewError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

// NewRequestFailedError creates a KindRequestFailed error for an HTTP status.
func NewRequestFailedError(status int, cause error) *Error {
	return &Error{Kind: KindRequestFailed, StatusCode: status, Err: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.String()
	if s := e.Kind.sentinel(); s != nil {
		msg = s.Error()
	}
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf extracts the Kind from err. The boolean is false when err is not
// (and does not wrap) a *Error.
func KindOf(err error) (Kind, bool) {
	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr.Kind, true
	}
	return 0, false
}

// Category is a user-facing failure class.
type Category int

// User-facing categories. The zero value is the fallback bucket.
const (
	CategoryCommunication Category = iota
	CategoryCredentialMissing
	CategoryMalformedResponse
	CategoryNetwork
)

// CategoryOf returns the category of err; anything that is not a *Error
// falls into CategoryCommunication.
func CategoryOf(err error) Category {
	if kind, ok := KindOf(err); ok {
		return kind.Category()
	}
	return CategoryCommunication
}

// String returns a stable machine-readable name.
func (c Category) String() string {
	switch c {
	case CategoryCredentialMissing:
		return "credential_missing"
	case CategoryMalformedResponse:
		return "malformed_response"
	case CategoryNetwork:
		return "network"
	default:
		return "communication"
	}
}

// Message is the text shown to the user.
func (c Category) Message() string {
	switch c {
	case CategoryCredentialMissing:
		return "The AI API key is missing or invalid."
	case CategoryMalformedResponse:
		return "The AI response could not be processed."
	case CategoryNetwork:
		return "Internet connection error."
	default:
		return "Could not communicate with the AI service."
	}
}

// HTTPStatus is the status an HTTP API should answer with for c.
func (c Category) HTTPStatus() int {
	if c == CategoryCredentialMissing {
		return 503
	}
	return 502
}
