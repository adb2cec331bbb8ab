package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusFailed is the envelope status for domain level failures such as
// "no data" or a duplicate application. Clients compare against it verbatim.
const StatusFailed = http.StatusBadRequest

// Error represents a typed domain error with a wire status.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches on Code so clones with custom messages still compare equal to
// the predefined errors.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for the topic selection workflow.
var (
	ErrUnauthorized    = New("UNAUTHORIZED", http.StatusUnauthorized, "no login status")
	ErrForbidden       = New("FORBIDDEN", http.StatusForbidden, "user permission error")
	ErrNoData          = New("NO_DATA", StatusFailed, "no data found")
	ErrAlreadyApplied  = New("ALREADY_APPLIED", StatusFailed, "cannot apply to this topic again")
	ErrAlreadyAssigned = New("ALREADY_ASSIGNED", StatusFailed, "topic already assigned to another student")
	ErrValidation      = New("VALIDATION_ERROR", StatusFailed, "validation failed")
	ErrStorage         = New("STORAGE_ERROR", StatusFailed, "storage failure")
	ErrCacheMiss       = New("CACHE_MISS", StatusFailed, "cache miss")
)

// Storage wraps an unexpected persistence error keeping its diagnostic in
// the message.
func Storage(err error, action string) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, ErrStorage.Code, ErrStorage.Status, fmt.Sprintf("%s: %v", action, err))
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrStorage.Code, ErrStorage.Status, err.Error())
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
