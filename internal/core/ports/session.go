package ports

import (
	"context"

	"github.com/weathersafe/admin-console/internal/core/domain"
)

// SessionStore is the single source of truth for "who is logged in and with
// what credential". Implementations must be safe for concurrent use.
type SessionStore interface {
	// Restore hydrates the in-memory session from durable storage. Missing or
	// malformed persisted data is treated as "no session", never an error.
	Restore(ctx context.Context)

	// Set atomically replaces the token and user and writes through to
	// durable storage.
	Set(ctx context.Context, token string, user *domain.User) error

	// Clear atomically empties the session and removes it from durable
	// storage. Safe to call when no session exists.
	Clear(ctx context.Context)

	// Current returns a snapshot of the session.
	Current() domain.Session

	// Token returns the current bearer token, empty when logged out.
	Token() string

	// Subscribe registers fn to be called synchronously after every
	// successful Set or Clear.
	Subscribe(fn func(domain.Session))
}

// CredentialStorage is the durable persistence boundary behind a SessionStore:
// two string-keyed slots, written through on every session mutation.
type CredentialStorage interface {
	Load(ctx context.Context) (token, userJSON string, err error)
	Save(ctx context.Context, token, userJSON string) error
	Delete(ctx context.Context) error
}

// PushRegistrar obtains a push-delivery token. Best effort: implementations
// return an empty token on denial or platform error rather than failing login.
type PushRegistrar interface {
	DeliveryToken(ctx context.Context) string
}

// PushMessage is one inbound notification payload.
type PushMessage struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// PushReceiver delivers foreground push messages to a display handler. The
// handler must only render; it never mutates session or screen state.
type PushReceiver interface {
	OnMessage(handler func(PushMessage))
	Start(ctx context.Context)
}
