package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAlreadyOpen indicates the employee already has an open cash session.
var ErrAlreadyOpen = errors.New("cash session already open")

// ErrAlreadyClosed indicates a close was attempted on a session that is already closed.
var ErrAlreadyClosed = errors.New("cash session already closed")

// ErrSessionClosed indicates a mutation was attempted against a closed session.
var ErrSessionClosed = errors.New("cash session is closed")

// ErrForbidden indicates the caller is authenticated but may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates the caller identity is missing or invalid.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected failure in a dependency.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code and message alongside the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Is lets errors.Is match the sentinel implied by the status code.
func (e *AppError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Code == 400
	case ErrForbidden:
		return e.Code == 403
	case ErrNotFound:
		return e.Code == 404
	case ErrInternal:
		return e.Code >= 500
	}
	return false
}

// NewAppError wraps err with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an error wrapping ErrNotFound for the named resource.
func NewNotFoundError(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// NewValidationError returns an error wrapping ErrValidation with a reason.
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// AlreadyOpenError is returned when an employee tries to open a second session.
// SessionID identifies the session the caller should resume instead.
type AlreadyOpenError struct {
	EmployeeID string
	SessionID  string
}

func (e *AlreadyOpenError) Error() string {
	if e.SessionID == "" {
		return fmt.Sprintf("employee %s: %s", e.EmployeeID, ErrAlreadyOpen)
	}
	return fmt.Sprintf("employee %s: %s (session %s)", e.EmployeeID, ErrAlreadyOpen, e.SessionID)
}

func (e *AlreadyOpenError) Unwrap() error { return ErrAlreadyOpen }

// NewAlreadyOpenError builds an AlreadyOpenError.
func NewAlreadyOpenError(employeeID, sessionID string) *AlreadyOpenError {
	return &AlreadyOpenError{EmployeeID: employeeID, SessionID: sessionID}
}
