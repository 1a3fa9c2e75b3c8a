package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnsuccessful is returned when the backend answers 2xx but flags the
// envelope with success=false.
var ErrUnsuccessful = errors.New("request unsuccessful")

// HTTPError represents a non-2xx HTTP response from the API.
type HTTPError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// FieldErrors returns per-field validation messages when the body carries a
// serializer error map. It returns nil when none are present.
func (e *HTTPError) FieldErrors() map[string][]string {
	var envelope map[string]json.RawMessage
	if json.Unmarshal(e.Body, &envelope) != nil {
		return nil
	}
	for _, key := range []string{"errors", "serializer_errors", "serializer error", "error"} {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		var fields map[string][]string
		if json.Unmarshal(raw, &fields) == nil && len(fields) > 0 {
			return fields
		}
	}
	return nil
}

// RefreshError is returned when a request hit an expired session and the
// silent refresh itself failed. It wraps the refresh failure.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return "session refresh failed: " + e.Err.Error()
}

func (e *RefreshError) Unwrap() error { return e.Err }

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// IsSessionExpired returns true if err is a terminal auth failure: the
// session expired and could not be renewed. Callers usually log out.
func IsSessionExpired(err error) bool {
	var refreshErr *RefreshError
	return errors.As(err, &refreshErr)
}

// apiMessage extracts a human-readable message from an error body.
func apiMessage(body []byte) string {
	var apiErr struct {
		Message string          `json:"message"`
		Detail  string          `json:"detail"`
		Error   json.RawMessage `json:"error"`
	}
	if json.Unmarshal(body, &apiErr) != nil {
		return string(body)
	}
	if apiErr.Message != "" {
		return apiErr.Message
	}
	if apiErr.Detail != "" {
		return apiErr.Detail
	}
	var s string
	if json.Unmarshal(apiErr.Error, &s) == nil && s != "" {
		return s
	}
	return string(body)
}
