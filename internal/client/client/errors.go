package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNetwork      = errors.New("Network error")
	ErrAborted      = errors.New("Request aborted")
	ErrInvalidJSON  = errors.New("Invalid JSON response")
)

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Is lets callers match a 401 with ErrUnauthorized and a gateway failure
// with ErrUnavailable.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrUnavailable:
		return e.Status == http.StatusBadGateway ||
			e.Status == http.StatusServiceUnavailable ||
			e.Status == http.StatusGatewayTimeout
	}
	return false
}

// newAPIError takes the message from a JSON "detail" string when the body
// has one. Unparseable bodies fall back to the generic message.
func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Detail any `json:"detail"`
	}
	msg := fmt.Sprintf("API error: %d", status)
	if err := json.Unmarshal(body, &payload); err == nil {
		if s, ok := payload.Detail.(string); ok && s != "" {
			msg = s
		}
	}
	return &APIError{Status: status, Message: msg}
}
