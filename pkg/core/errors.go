package core

import (
	"fmt"
)

// Error is the shared error shape for session, collaborator, and gateway
// failures.
type Error struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Param      string    `json:"param,omitempty"`
	Code       string    `json:"code,omitempty"`
	Cause      error     `json:"-"`
	RetryAfter *int      `json:"retry_after,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (code: %s)", e.Type, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ErrorType categorizes errors.
type ErrorType string

const (
	ErrInvalidRequest   ErrorType = "invalid_request_error"
	ErrAuthentication   ErrorType = "authentication_error"
	ErrPermissionDenied ErrorType = "permission_denied"
	ErrTransport        ErrorType = "transport_error"
	ErrNotConnected     ErrorType = "not_connected"
	ErrUnsupportedMedia ErrorType = "unsupported_media"
	ErrToolExecution    ErrorType = "tool_execution_error"
	ErrNotFound         ErrorType = "not_found_error"
	ErrAPI              ErrorType = "api_error"
)

// NewInvalidRequestError creates an invalid request error.
func NewInvalidRequestError(message string) *Error {
	return &Error{
		Type:    ErrInvalidRequest,
		Message: message,
	}
}

// NewInvalidRequestErrorWithParam creates an invalid request error with a parameter.
func NewInvalidRequestErrorWithParam(message, param string) *Error {
	return &Error{
		Type:    ErrInvalidRequest,
		Message: message,
		Param:   param,
	}
}

// NewAuthenticationError creates an authentication error.
func NewAuthenticationError(message string) *Error {
	return &Error{
		Type:    ErrAuthentication,
		Message: message,
	}
}

// NewPermissionDeniedError reports a refused device or capability grant,
// such as a microphone the user declined to share.
func NewPermissionDeniedError(message string) *Error {
	return &Error{
		Type:    ErrPermissionDenied,
		Message: message,
	}
}

// NewTransportError wraps a network or protocol failure on the live link.
func NewTransportError(message string, cause error) *Error {
	return &Error{
		Type:    ErrTransport,
		Message: message,
		Cause:   cause,
	}
}

// NewNotConnectedError reports an operation that requires an open session.
func NewNotConnectedError(message string) *Error {
	return &Error{
		Type:    ErrNotConnected,
		Message: message,
	}
}

// NewUnsupportedMediaError reports a rejected media type.
func NewUnsupportedMediaError(message, param string) *Error {
	return &Error{
		Type:    ErrUnsupportedMedia,
		Message: message,
		Param:   param,
	}
}

// NewToolExecutionError wraps a failed tool-call handler. The session
// survives these; the failure travels back to the model as a tool result.
func NewToolExecutionError(tool string, cause error) *Error {
	return &Error{
		Type:    ErrToolExecution,
		Message: fmt.Sprintf("%s: %v", tool, cause),
		Param:   tool,
		Cause:   cause,
	}
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(message string) *Error {
	return &Error{
		Type:    ErrNotFound,
		Message: message,
	}
}

// NewAPIError creates a generic API error.
func NewAPIError(message string) *Error {
	return &Error{
		Type:    ErrAPI,
		Message: message,
	}
}

// IsRetryable returns true if the error is retryable.
func (e *Error) IsRetryable() bool {
	switch e.Type {
	case ErrTransport, ErrAPI:
		return true
	default:
		return false
	}
}

// Unwrap returns the underlying error for error wrapping.
func (e *Error) Unwrap() error {
	return e.Cause
}
