package errors

import "fmt"

// ErrorCode represents an hourzero error code.
type ErrorCode string

const (
	// Failure kinds of the narrowing computation.
	ErrFormat              ErrorCode = "FORMAT"               // 400, malformed HH:MM text
	ErrRange               ErrorCode = "RANGE"                // 400, clock components out of bounds
	ErrInvalidDays         ErrorCode = "INVALID_DAYS"         // 400, day count not a positive integer within the ceiling
	ErrEmptyWindow         ErrorCode = "EMPTY_WINDOW"         // 422, start == end (zero-length window)
	ErrUnsupportedCurve    ErrorCode = "UNSUPPORTED_CURVE"    // 400, unrecognized curve name
	ErrUnsupportedRounding ErrorCode = "UNSUPPORTED_ROUNDING" // 400, unrecognized rounding name

	// Collaborator errors (run catalog, export, web, MCP surfaces).
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// ScheduleError represents a structured error with code, status, and details.
type ScheduleError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *ScheduleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewFormat creates a 400 error for malformed clock-time text.
func NewFormat(text string) *ScheduleError {
	return &ScheduleError{
		Code:    ErrFormat,
		Status:  400,
		Message: fmt.Sprintf("invalid time %q, expected HH:MM", text),
		Details: map[string]any{"text": text},
	}
}

// NewRange creates a 400 error for out-of-bounds hour/minute components.
func NewRange(text string) *ScheduleError {
	return &ScheduleError{
		Code:    ErrRange,
		Status:  400,
		Message: fmt.Sprintf("time %q out of range, hours must be 00-23 and minutes 00-59", text),
		Details: map[string]any{"text": text},
	}
}

// NewInvalidDays creates a 400 error for an unusable day count.
func NewInvalidDays(days, max int) *ScheduleError {
	return &ScheduleError{
		Code:    ErrInvalidDays,
		Status:  400,
		Message: fmt.Sprintf("days must be a positive integer no greater than %d, got %d", max, days),
		Details: map[string]any{"days": days, "max_days": max},
	}
}

// NewEmptyWindow creates a 422 error for a zero-length window.
func NewEmptyWindow() *ScheduleError {
	return &ScheduleError{
		Code:    ErrEmptyWindow,
		Status:  422,
		Message: "start and end times define an empty window (length 0)",
	}
}

// NewUnsupportedCurve creates a 400 error for an unrecognized curve name.
func NewUnsupportedCurve(curve string) *ScheduleError {
	return &ScheduleError{
		Code:    ErrUnsupportedCurve,
		Status:  400,
		Message: fmt.Sprintf("unsupported curve %q, expected linear|percentage|logistic|sinusoidal", curve),
		Details: map[string]any{"curve": curve},
	}
}

// NewUnsupportedRounding creates a 400 error for an unrecognized rounding name.
func NewUnsupportedRounding(rounding string) *ScheduleError {
	return &ScheduleError{
		Code:    ErrUnsupportedRounding,
		Status:  400,
		Message: fmt.Sprintf("unsupported rounding %q, expected nearest|floor|ceil", rounding),
		Details: map[string]any{"rounding": rounding},
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *ScheduleError {
	return &ScheduleError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a saved run cannot be found.
func NewNotFound(id string) *ScheduleError {
	return &ScheduleError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("run not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *ScheduleError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &ScheduleError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a ScheduleError with the given code.
func Is(err error, code ErrorCode) bool {
	if sErr, ok := err.(*ScheduleError); ok {
		return sErr.Code == code
	}
	return false
}
