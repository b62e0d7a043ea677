// Package apierr defines the uniform error type surfaced by the fable client.
// Every failure path that crosses the client boundary -- HTTP status, the
// backend's success:false envelope, timeout, or an unexpected transport
// failure -- is normalized into exactly one *Error before reaching the caller.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the fixed discriminator for client errors. It lets callers tell a
// normalized API error apart from transport-level errors in logs and payloads.
const Kind = "ApiError"

// Error is the standardized error returned by all client operations.
type Error struct {
	Message string `json:"message"`
	// Status is the HTTP status code, when the failure has one.
	Status int `json:"status,omitempty"`
	// Code is the application-level error code from the JSON envelope.
	Code int `json:"code,omitempty"`
	// Response holds the original error payload. It is omitted when the
	// request was issued with SkipErrorHandling.
	Response any `json:"response,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("[%s] %s (status=%d)", Kind, e.Message, e.Status)
	}
	return fmt.Sprintf("[%s] %s", Kind, e.Message)
}

// New creates a message-only error, used for streaming protocol failures.
func New(message string) *Error {
	return &Error{Message: message}
}

// NewHTTP creates an error carrying an HTTP status code.
func NewHTTP(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// NewTimeout creates the fixed timeout error raised when a call's timer
// fires before the transport resolves, or when the call is aborted.
func NewTimeout() *Error {
	return &Error{Status: http.StatusRequestTimeout, Message: "Request timeout"}
}

// Wrap normalizes an arbitrary error. An *Error passes through unchanged;
// anything else is wrapped with its message and preserved under Response.
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	msg := err.Error()
	if msg == "" {
		msg = "Unknown error occurred"
	}
	return &Error{Message: msg, Response: err}
}

// As extracts an *Error from err, if it carries one.
func As(err error) (*Error, bool) {
	var apiErr *Error
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// IsTimeout reports whether err is the 408 timeout error.
func IsTimeout(err error) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Status == http.StatusRequestTimeout
}
