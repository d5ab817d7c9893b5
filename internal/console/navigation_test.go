package console

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/weathersafe/admin-console/internal/core/domain"
	"github.com/weathersafe/admin-console/internal/core/service"
)

type memStorage struct {
	token string
	user  string
}

func (m *memStorage) Load(context.Context) (string, string, error) { return m.token, m.user, nil }
func (m *memStorage) Save(_ context.Context, token, userJSON string) error {
	m.token, m.user = token, userJSON
	return nil
}
func (m *memStorage) Delete(context.Context) error {
	m.token, m.user = "", ""
	return nil
}

func TestScreensFor_RoleTable(t *testing.T) {
	cases := []struct {
		role string
		want []ScreenID
	}{
		{domain.RoleAppAdmin, []ScreenID{ScreenBarangays, ScreenBarangayAdmins, ScreenUsers, ScreenPosts}},
		{domain.RoleBarangayAdmin, []ScreenID{ScreenAnnouncements, ScreenBarangayUsers, ScreenCommunityUsers, ScreenSitios, ScreenUpdates, ScreenFakeSOS}},
		{domain.RoleBarangayUser, nil},
		{domain.RoleCommunityUser, nil},
		{"", nil},
	}
	for _, tc := range cases {
		got := ScreensFor(tc.role)
		if len(got) != len(tc.want) {
			t.Fatalf("role %q: expected %d screens, got %d", tc.role, len(tc.want), len(got))
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Fatalf("role %q: screen %d is %q, want %q", tc.role, i, got[i], tc.want[i])
			}
		}
	}
}

func TestShell_ObservesSessionStore(t *testing.T) {
	store := service.NewSessionStore(&memStorage{}, zerolog.Nop())
	shell := &Shell{}
	store.Subscribe(shell.Observe)

	if shell.LoggedIn() {
		t.Fatalf("fresh shell must be logged out")
	}
	if shell.Menu() != nil {
		t.Fatalf("logged-out shell has no menu")
	}

	ctx := context.Background()
	user := &domain.User{ID: "u1", Name: "Ana", UserType: domain.RoleAppAdmin, Status: domain.StatusActive}
	if err := store.Set(ctx, "tok-1", user); err != nil {
		t.Fatalf("set: %v", err)
	}

	if !shell.LoggedIn() {
		t.Fatalf("shell must flip to logged in on session set")
	}
	if menu := shell.Menu(); len(menu) != 4 || menu[0] != ScreenBarangays {
		t.Fatalf("unexpected menu %v", menu)
	}
	if shell.CurrentUser().Name != "Ana" {
		t.Fatalf("profile snapshot not observed")
	}

	store.Clear(ctx)
	if shell.LoggedIn() {
		t.Fatalf("shell must flip back to login on clear")
	}
}

func TestShell_TokenWithoutProfileStaysOnLogin(t *testing.T) {
	store := service.NewSessionStore(&memStorage{token: "tok-1"}, zerolog.Nop())
	shell := &Shell{}
	store.Subscribe(shell.Observe)

	store.Restore(context.Background())
	shell.Observe(store.Current())

	if shell.LoggedIn() {
		t.Fatalf("a bare token is not a usable session until the profile resolves")
	}
}
