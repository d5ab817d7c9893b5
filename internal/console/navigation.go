package console

import (
	"sync"

	"github.com/weathersafe/admin-console/internal/core/domain"
)

// ScreenID names one resource screen in the navigation menu.
type ScreenID string

const (
	ScreenBarangays      ScreenID = "barangays"
	ScreenBarangayAdmins ScreenID = "barangay-admins"
	ScreenBarangayUsers  ScreenID = "barangay-users"
	ScreenCommunityUsers ScreenID = "community-users"
	ScreenUsers          ScreenID = "users"
	ScreenPosts          ScreenID = "posts"
	ScreenUpdates        ScreenID = "updates"
	ScreenAnnouncements  ScreenID = "announcements"
	ScreenSitios         ScreenID = "sitios"
	ScreenFakeSOS        ScreenID = "reported-fake-sos"
)

// screensByRole is the single role→permitted-screen-set lookup. The server
// remains the authority on what a role may actually do; this table only
// decides what the shell offers.
var screensByRole = map[string][]ScreenID{
	domain.RoleAppAdmin: {
		ScreenBarangays,
		ScreenBarangayAdmins,
		ScreenUsers,
		ScreenPosts,
	},
	domain.RoleBarangayAdmin: {
		ScreenAnnouncements,
		ScreenBarangayUsers,
		ScreenCommunityUsers,
		ScreenSitios,
		ScreenUpdates,
		ScreenFakeSOS,
	},
}

// ScreensFor returns the menu for a role, empty for roles with no console
// access.
func ScreensFor(role string) []ScreenID {
	screens := screensByRole[role]
	out := make([]ScreenID, len(screens))
	copy(out, screens)
	return out
}

// Shell decides what is visible: the login view when unauthenticated, the
// role-appropriate menu otherwise. It observes the session store and never
// mutates it.
type Shell struct {
	mu      sync.Mutex
	session domain.Session
}

// Observe is the subscriber hooked into the session store. It runs
// synchronously on every session change.
func (sh *Shell) Observe(s domain.Session) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.session = s
}

// LoggedIn reports whether a full session (token and profile) is present.
func (sh *Shell) LoggedIn() bool {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.session.Authenticated() && sh.session.User != nil
}

// Menu returns the screens the current user may open. Empty when logged out
// or while the profile fetch has not resolved yet.
func (sh *Shell) Menu() []ScreenID {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if !sh.session.Authenticated() || sh.session.User == nil {
		return nil
	}
	return ScreensFor(sh.session.User.UserType)
}

// CurrentUser returns the profile snapshot, nil when logged out.
func (sh *Shell) CurrentUser() *domain.User {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.session.User
}
