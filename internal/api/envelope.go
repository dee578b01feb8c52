// ABOUTME: Fixed response envelope shared by every portal endpoint
// ABOUTME: Defines the API error type carrying envelope code and messages

package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Envelope is the wrapper every backend response uses. Success is signaled
// by code (or HTTP status) being 200 or 201; callers branch on that
// explicitly rather than trusting HTTP status alone.
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Errors  []any           `json:"errors"`
	Data    json.RawMessage `json:"data"`
	Meta    *Meta           `json:"meta,omitempty"`
}

// Meta is the pagination block attached to list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPage  int `json:"total_page"`
	TotalCount int `json:"total_count"`
}

// success reports whether a status or envelope code counts as success.
func success(code int) bool {
	return code == 200 || code == 201
}

// Sentinel errors for the auth failure taxonomy. Wrapped by APIError so
// callers can branch with errors.Is.
var (
	// ErrUnauthorized is a 401 with a usable refresh token: the refresh
	// flow has been kicked off and the caller decides whether to retry.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is a 403: authenticated but not allowed for this
	// resource. Session state is untouched.
	ErrForbidden = errors.New("forbidden")
	// ErrSessionExpired is the unrecoverable path: no refresh token, or
	// the refresh itself failed. All session state has been purged.
	ErrSessionExpired = errors.New("session expired")
)

// APIError is a failed call with the backend's envelope attached.
type APIError struct {
	Status   int
	Code     int
	Message  string
	Failures []any
	err      error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

func (e *APIError) Unwrap() error {
	return e.err
}

// Messages flattens the envelope errors array into printable strings, one
// notification per entry. Non-string entries are stringified.
func (e *APIError) Messages() []string {
	if len(e.Failures) == 0 {
		if e.Message != "" {
			return []string{e.Message}
		}
		return nil
	}
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		switch v := f.(type) {
		case string:
			msgs = append(msgs, v)
		default:
			msgs = append(msgs, fmt.Sprintf("%v", v))
		}
	}
	return msgs
}
