package backend

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError is a non-2xx response from the backend, carrying the
// server-provided message when the body had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// newAPIError extracts a human-readable message from an error body. The
// backend is inconsistent about the field name, so both are tried.
func newAPIError(status int, body []byte) error {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(body, &envelope)

	msg := envelope.Message
	if msg == "" {
		msg = envelope.Error
	}
	return &APIError{StatusCode: status, Message: msg}
}

// UserMessage returns the server-provided message from err when it is an
// APIError, or the fallback otherwise.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
