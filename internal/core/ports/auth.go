package ports

import (
	"context"

	"github.com/weathersafe/admin-console/internal/core/domain"
)

// RegisterInput carries the fields of the public registration form.
type RegisterInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
	UserType             string
}

// AuthService drives the login/registration/logout flow against the remote
// API and keeps the SessionStore consistent with the outcome.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Logout(ctx context.Context) error

	// RefreshCurrentUser re-fetches the profile for the current token. An
	// authentication failure clears the session as its sole recovery action.
	RefreshCurrentUser(ctx context.Context) (*domain.User, error)
}

// SessionAPI is the slice of the remote API the AuthService depends on.
type SessionAPI interface {
	Login(ctx context.Context, email, password, deliveryToken string) (token string, user *domain.User, err error)
	Register(ctx context.Context, in RegisterInput) (token string, user *domain.User, err error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*domain.User, error)
}
