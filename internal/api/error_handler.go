package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/weathersafe/admin-console/internal/core/domain"
)

// ErrorKind classifies a failed API call. Callers branch on the kind, never
// on raw status codes.
type ErrorKind int

const (
	// KindServer covers 5xx responses, undecodable bodies and anything else
	// without a more specific classification.
	KindServer ErrorKind = iota
	// KindValidation covers 400/422 responses carrying the server's
	// field→message-list envelope.
	KindValidation
	// KindAuth covers 401/403. Observing one invalidates the session.
	KindAuth
	// KindNotFound covers 404.
	KindNotFound
	// KindConflict covers 409.
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "server"
	}
}

// Error is the typed outcome of every non-2xx response.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	// Fields holds the server's per-field validation messages, keyed by the
	// server's own field names. Only set for KindValidation.
	Fields map[string][]string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s (%d)", e.Kind, e.Status)
}

// Unwrap exposes the domain sentinel behind an auth failure, so core packages
// can match with errors.Is(err, domain.ErrUnauthenticated) and never import
// this package.
func (e *Error) Unwrap() error {
	if e.Kind == KindAuth {
		return domain.ErrUnauthenticated
	}
	return nil
}

// IsAuthError reports whether err is an authentication/authorization failure.
func IsAuthError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindAuth
}

// IsValidationError returns the per-field messages when err is a validation
// failure, nil otherwise.
func IsValidationError(err error) map[string][]string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindValidation {
		return apiErr.Fields
	}
	return nil
}

// errorEnvelope matches the two error body shapes the server produces:
// {"errors": {"field": ["msg", ...]}} for validation failures and
// {"message": "..."} (or {"error": "..."}) for everything else.
type errorEnvelope struct {
	Errors  map[string][]string `json:"errors"`
	Message string              `json:"message"`
	Err     string              `json:"error"`
}

// resolveError turns a non-2xx response body into a typed *Error.
func resolveError(status int, body []byte) *Error {
	var env errorEnvelope
	_ = json.Unmarshal(body, &env)

	msg := env.Message
	if msg == "" {
		msg = env.Err
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &Error{Kind: KindAuth, Status: status, Message: msg}
	case status == http.StatusNotFound:
		return &Error{Kind: KindNotFound, Status: status, Message: msg}
	case status == http.StatusConflict:
		return &Error{Kind: KindConflict, Status: status, Message: msg}
	case len(env.Errors) > 0:
		return &Error{Kind: KindValidation, Status: status, Message: msg, Fields: env.Errors}
	case status == http.StatusUnprocessableEntity:
		return &Error{Kind: KindValidation, Status: status, Message: msg, Fields: map[string][]string{}}
	default:
		return &Error{Kind: KindServer, Status: status, Message: msg}
	}
}
