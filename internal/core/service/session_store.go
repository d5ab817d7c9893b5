package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/weathersafe/admin-console/internal/api/metrics"
	"github.com/weathersafe/admin-console/internal/core/domain"
	"github.com/weathersafe/admin-console/internal/core/ports"
)

// SessionStore holds the one Session per running console and keeps the
// durable copy in sync on every mutation (write-through).
type SessionStore struct {
	mu          sync.RWMutex
	session     domain.Session
	storage     ports.CredentialStorage
	subscribers []func(domain.Session)
	log         zerolog.Logger
}

func NewSessionStore(storage ports.CredentialStorage, log zerolog.Logger) *SessionStore {
	return &SessionStore{storage: storage, log: log}
}

// Restore hydrates the session from durable storage. Missing or malformed
// data leaves the session empty; restore never fails the caller. Calling it
// twice against unchanged storage yields the same session as calling it once.
func (s *SessionStore) Restore(ctx context.Context) {
	token, userJSON, err := s.storage.Load(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("no persisted session restored")
		return
	}
	if token == "" {
		return
	}

	var user *domain.User
	if userJSON != "" {
		var u domain.User
		if err := json.Unmarshal([]byte(userJSON), &u); err != nil {
			// A readable token with an unreadable snapshot is still a
			// session; the profile is re-fetched right after restore anyway.
			s.log.Warn().Err(err).Msg("discarding malformed persisted user snapshot")
		} else {
			user = &u
		}
	}

	s.mu.Lock()
	s.session = domain.Session{Token: token, User: user, ExpiresAt: tokenExpiry(token)}
	snapshot := s.session
	s.mu.Unlock()

	metrics.SessionEventsTotal.WithLabelValues("restore").Inc()
	s.notify(snapshot)
}

// Set replaces both fields atomically and writes through to durable storage.
func (s *SessionStore) Set(ctx context.Context, token string, user *domain.User) error {
	userJSON := ""
	if user != nil {
		b, err := json.Marshal(user)
		if err != nil {
			return err
		}
		userJSON = string(b)
	}
	if err := s.storage.Save(ctx, token, userJSON); err != nil {
		return err
	}

	s.mu.Lock()
	s.session = domain.Session{Token: token, User: user, ExpiresAt: tokenExpiry(token)}
	snapshot := s.session
	s.mu.Unlock()

	metrics.SessionEventsTotal.WithLabelValues("set").Inc()
	s.notify(snapshot)
	return nil
}

// Clear empties the session and removes the durable copy. A storage failure
// is logged but never resurrects the in-memory session: after Clear returns,
// no subsequent request may observe the old token.
func (s *SessionStore) Clear(ctx context.Context) {
	s.mu.Lock()
	wasEmpty := !s.session.Authenticated()
	s.session = domain.Session{}
	s.mu.Unlock()

	if err := s.storage.Delete(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to delete persisted session")
	}
	if wasEmpty {
		return
	}
	metrics.SessionEventsTotal.WithLabelValues("clear").Inc()
	s.notify(domain.Session{})
}

// Current returns a snapshot of the session.
func (s *SessionStore) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Token returns the current bearer token, empty when logged out.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

// Subscribe registers fn to run synchronously after every Set/Clear.
// Subscribers must not call back into the store.
func (s *SessionStore) Subscribe(fn func(domain.Session)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

func (s *SessionStore) notify(snapshot domain.Session) {
	s.mu.RLock()
	subs := make([]func(domain.Session), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn(snapshot)
	}
}

// tokenExpiry extracts the exp claim without verifying the signature. The
// token stays an opaque credential for every other purpose; this is a display
// hint only.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
