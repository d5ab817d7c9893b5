package domain

import (
	"errors"
	"time"
)

// Role tags carried on every user profile. The server is the authority on what
// a role may do; the console only uses the tag to decide which screens to show.
const (
	RoleAppAdmin      = "app_admin"
	RoleBarangayAdmin = "barangay_admin"
	RoleBarangayUser  = "barangay_user"
	RoleCommunityUser = "community_user"
)

// Account statuses as reported by the server.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

var ErrNoSession = errors.New("no active session")
var ErrAccountInactive = errors.New("account is inactive")
var ErrRoleNotPermitted = errors.New("role is not permitted to use this console")

// ErrUnauthenticated marks any failure caused by the server rejecting the
// credential. Transport errors of that class wrap it, so callers match with
// errors.Is without knowing the transport's error type.
var ErrUnauthenticated = errors.New("authentication rejected")

// User is the profile snapshot held alongside the bearer token. It is always
// re-derived from the API after a token becomes available.
type User struct {
	ID         ID     `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	UserType   string `json:"userType"`
	Status     string `json:"status"`
	ProfileURL string `json:"profile,omitempty"`
}

// Active reports whether the account may hold a session.
func (u *User) Active() bool {
	return u != nil && u.Status != StatusInactive
}

// Session is the client-held pair of bearer token and current user.
// A user without a token is never valid; a token without a user is the
// transient state between login and the profile fetch resolving.
type Session struct {
	Token string
	User  *User

	// ExpiresAt is a best-effort hint parsed from the token, zero when the
	// token carries no readable expiry. Display only, never enforced locally.
	ExpiresAt time.Time
}

// Authenticated reports whether a token is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}
