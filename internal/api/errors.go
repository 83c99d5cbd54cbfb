package api

import (
	"errors"
	"fmt"
)

// FallbackMessage is shown when a failure carries no server-provided message.
const FallbackMessage = "Something went wrong"

// APIError is a non-2xx response from the backend.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string // "message" field of the error body, if any
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
}

// TransportError is a request that never produced an HTTP response, or whose
// response could not be read or decoded.
type TransportError struct {
	Method    string
	Path      string
	RequestID string
	Message   string
	Cause     error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the text to show for a failed call: the server's
// message when there is one, otherwise FallbackMessage.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return FallbackMessage
}
