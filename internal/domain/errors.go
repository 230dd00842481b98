package domain

import "errors"

// ErrorKind classifies application errors so the transport layer can map
// them to responses without inspecting messages.
type ErrorKind string

const (
	KindInvalidInput ErrorKind = "invalid_input"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
)

// Error is an application-level error carrying a user-facing message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewInvalidInputError creates an error for malformed or rule-violating input.
func NewInvalidInputError(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

// NewNotFoundError creates an error for a missing resource.
func NewNotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// NewConflictError creates an error for a resource-state conflict.
func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// IsClientError reports whether err (or any error it wraps) is an
// application Error whose message is safe to return to the caller.
func IsClientError(err error) bool {
	_, ok := AsError(err)
	return ok
}

// AsError unwraps err to an application *Error if possible.
func AsError(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
