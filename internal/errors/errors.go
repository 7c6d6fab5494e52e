// Package errors provides the typed failure outcomes returned by every flow.
// Handlers map an AppError to its status code; anything else is reported as an
// opaque internal error and logged server-side.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target carries the same code, so that wrapped copies of a
// sentinel still match it with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors. None of them says which credential
// component was wrong.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidToken       = &AppError{Code: "INVALID_TOKEN", Message: "Invalid token", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrConflict       = &AppError{Code: "CONFLICT", Message: "Resource already exists", StatusCode: http.StatusConflict}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "User already exists with this email", StatusCode: http.StatusConflict}
	ErrSelfDeletion   = &AppError{Code: "INVALID_INPUT", Message: "Cannot delete your own account", StatusCode: http.StatusBadRequest}
	ErrAdminDeletion  = &AppError{Code: "INVALID_INPUT", Message: "Cannot delete admin accounts", StatusCode: http.StatusBadRequest}
)

// Course errors.
var (
	ErrCourseNotFound = &AppError{Code: "COURSE_NOT_FOUND", Message: "Course not found", StatusCode: http.StatusNotFound}
)

// Enrollment errors.
var (
	ErrEnrollmentNotFound = &AppError{Code: "ENROLLMENT_NOT_FOUND", Message: "Not enrolled in this course", StatusCode: http.StatusNotFound}
	ErrAlreadyEnrolled    = &AppError{Code: "ALREADY_ENROLLED", Message: "Already enrolled in this course", StatusCode: http.StatusConflict}
	ErrInvalidProgress    = &AppError{Code: "INVALID_INPUT", Message: "Progress percentage must be between 0 and 100", StatusCode: http.StatusBadRequest}
)
