package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/weathersafe/admin-console/internal/core/domain"
	"github.com/weathersafe/admin-console/internal/core/ports"
)

// consolePermitted lists the roles allowed to operate this console. Everyone
// else authenticates through the mobile app instead.
var consolePermitted = map[string]bool{
	domain.RoleAppAdmin:      true,
	domain.RoleBarangayAdmin: true,
}

// AuthService implements login, registration, logout and profile refresh on
// top of the remote API, keeping the SessionStore as the single source of
// truth for the outcome.
type AuthService struct {
	api       ports.SessionAPI
	store     ports.SessionStore
	registrar ports.PushRegistrar
	log       zerolog.Logger
}

func NewAuthService(sessionAPI ports.SessionAPI, store ports.SessionStore, registrar ports.PushRegistrar, log zerolog.Logger) *AuthService {
	return &AuthService{api: sessionAPI, store: store, registrar: registrar, log: log}
}

// Login authenticates against the remote API. A push-delivery token is
// attached when one can be obtained; login proceeds without it otherwise.
// An inactive account or a role not permitted here never yields a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	deliveryToken := ""
	if s.registrar != nil {
		deliveryToken = s.registrar.DeliveryToken(ctx)
	}

	token, user, err := s.api.Login(ctx, email, password, deliveryToken)
	if err != nil {
		return nil, err
	}

	if !user.Active() {
		s.store.Clear(ctx)
		return nil, domain.ErrAccountInactive
	}
	if !consolePermitted[user.UserType] {
		s.store.Clear(ctx)
		return nil, domain.ErrRoleNotPermitted
	}

	if err := s.store.Set(ctx, token, user); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_type", user.UserType).Msg("login succeeded")
	return user, nil
}

// Register creates an account and, when the server responds with a token,
// opens a session for it under the same role and status gates as Login.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	token, user, err := s.api.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	if token == "" || user == nil {
		return user, nil
	}
	if !user.Active() {
		return nil, domain.ErrAccountInactive
	}
	if !consolePermitted[user.UserType] {
		return nil, domain.ErrRoleNotPermitted
	}
	if err := s.store.Set(ctx, token, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout revokes the token server-side and clears the session. The local
// session is cleared even when the revocation call fails: the user asked to
// leave, and a dead token on the server is the lesser problem.
func (s *AuthService) Logout(ctx context.Context) error {
	if s.store.Token() == "" {
		return domain.ErrNoSession
	}
	err := s.api.Logout(ctx)
	s.store.Clear(ctx)
	// A token the server already considers dead is a successful logout.
	if err != nil && !errors.Is(err, domain.ErrUnauthenticated) {
		return err
	}
	return nil
}

// RefreshCurrentUser re-fetches the profile for the current token and
// replaces the stored snapshot. Authentication failure clears the session;
// that is the sole recovery action, no retries.
func (s *AuthService) RefreshCurrentUser(ctx context.Context) (*domain.User, error) {
	token := s.store.Token()
	if token == "" {
		return nil, domain.ErrNoSession
	}

	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		// The API client already cleared the session on an auth failure.
		return nil, err
	}

	if !user.Active() {
		s.store.Clear(ctx)
		return nil, domain.ErrAccountInactive
	}
	if !consolePermitted[user.UserType] {
		s.store.Clear(ctx)
		return nil, domain.ErrRoleNotPermitted
	}

	if err := s.store.Set(ctx, token, user); err != nil {
		return nil, err
	}
	return user, nil
}
