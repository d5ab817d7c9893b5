package console

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/weathersafe/admin-console/internal/api"
	"github.com/weathersafe/admin-console/internal/core/domain"
)

// TableView is the type-erased face of one screen: what the shell needs to
// render it and drive its create/edit/delete/restore cycle without knowing
// the resource or form types.
type TableView interface {
	Title() string
	Refresh(ctx context.Context)
	State() (Phase, string)
	Table() (headers []string, rows [][]string)

	Modal() Modal
	OpenCreate()
	OpenEdit(id string)
	// SubmitJSON decodes the operator's payload into the screen's form type
	// and submits the open form.
	SubmitJSON(ctx context.Context, raw string) error
	RequestDelete(id string)
	ConfirmDelete(ctx context.Context) error
	RequestRestore(id string)
	ConfirmRestore(ctx context.Context) error
	Cancel()
	Close()
	FieldErrors() map[string][]string
	Banner() string
}

// tableScreen adapts one generic Screen to TableView with a row projection.
type tableScreen[T any, F any] struct {
	*Screen[T, F]
	headers []string
	row     func(T) []string
}

func (t *tableScreen[T, F]) Refresh(ctx context.Context) { t.Load(ctx) }

func (t *tableScreen[T, F]) State() (Phase, string) { return t.Phase(), t.LoadError() }

func (t *tableScreen[T, F]) SubmitJSON(ctx context.Context, raw string) error {
	var form F
	if err := json.Unmarshal([]byte(raw), &form); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return t.Submit(ctx, form)
}

func (t *tableScreen[T, F]) Table() ([]string, [][]string) {
	items := t.Items()
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, t.row(item))
	}
	return t.headers, rows
}

// Registry holds every constructed screen, keyed by ScreenID. Screens are
// built once per login; each one drives its own fetch cycle independently.
type Registry struct {
	views map[ScreenID]TableView
}

func (r *Registry) View(id ScreenID) (TableView, bool) {
	v, ok := r.views[id]
	return v, ok
}

func userStatus(u *domain.User) string {
	if u == nil {
		return "N/A"
	}
	return u.Status
}

func userEmail(u *domain.User) string {
	if u == nil {
		return "N/A"
	}
	return u.Email
}

// NewRegistry wires the ten screens to their API namespaces. Soft-deletable
// collections (barangay admins, barangay users, community users) get their
// restore path; everything else hard-deletes.
func NewRegistry(client *api.Client, log zerolog.Logger) *Registry {
	barangays := client.Barangays()
	admins := client.BarangayAdmins()
	brgyUsers := client.BarangayUsers()
	communityUsers := client.CommunityUsers()
	users := client.Users()
	posts := client.Posts()
	updates := client.Updates()
	announcements := client.Announcements()
	sitios := client.Sitios()
	fakeSOS := client.FakeSOSReports()

	views := map[ScreenID]TableView{
		ScreenBarangays: &tableScreen[domain.Barangay, api.BarangayForm]{
			Screen:  NewScreen("Barangays", barangays, nil, func(b domain.Barangay) string { return b.ID.String() }, log),
			headers: []string{"ID", "Name", "City"},
			row: func(b domain.Barangay) []string {
				return []string{b.ID.String(), b.Name, b.City}
			},
		},
		ScreenBarangayAdmins: &tableScreen[domain.BarangayAdmin, api.BarangayAdminForm]{
			Screen:  NewScreen("Barangay Admins", admins, admins, func(a domain.BarangayAdmin) string { return a.ID.String() }, log),
			headers: []string{"ID", "Name", "Email", "Status"},
			row: func(a domain.BarangayAdmin) []string {
				return []string{a.ID.String(), a.Name, userEmail(a.User), userStatus(a.User)}
			},
		},
		ScreenBarangayUsers: &tableScreen[domain.BarangayUser, api.BarangayUserForm]{
			Screen:  NewScreen("Barangay Users", brgyUsers, brgyUsers, func(u domain.BarangayUser) string { return u.ID.String() }, log),
			headers: []string{"ID", "Name", "Email", "Status"},
			row: func(u domain.BarangayUser) []string {
				return []string{u.ID.String(), u.Name, userEmail(u.User), userStatus(u.User)}
			},
		},
		ScreenCommunityUsers: &tableScreen[domain.CommunityUser, api.CommunityUserForm]{
			Screen:  NewScreen("Community Users", communityUsers, communityUsers, func(u domain.CommunityUser) string { return u.ID.String() }, log),
			headers: []string{"ID", "Email", "Barangay", "Status"},
			row: func(u domain.CommunityUser) []string {
				brgy := "N/A"
				if u.Barangay != nil {
					brgy = u.Barangay.Name
				}
				return []string{u.ID.String(), userEmail(u.User), brgy, userStatus(u.User)}
			},
		},
		ScreenUsers: &tableScreen[domain.User, api.UserForm]{
			Screen:  NewScreen("Users", users, nil, func(u domain.User) string { return u.ID.String() }, log),
			headers: []string{"ID", "Name", "Email", "Type", "Status"},
			row: func(u domain.User) []string {
				return []string{u.ID.String(), u.Name, u.Email, u.UserType, u.Status}
			},
		},
		ScreenPosts: &tableScreen[domain.Post, api.PostForm]{
			Screen:  NewScreen("Posts", posts, nil, func(p domain.Post) string { return p.ID.String() }, log),
			headers: []string{"ID", "Title", "Body"},
			row: func(p domain.Post) []string {
				return []string{p.ID.String(), p.Title, p.Body}
			},
		},
		ScreenUpdates: &tableScreen[domain.Update, api.UpdateForm]{
			Screen:  NewScreen("Updates", updates, nil, func(u domain.Update) string { return u.ID.String() }, log),
			headers: []string{"ID", "Headline", "Barangay", "Date", "Time", "Author", "Type"},
			row: func(u domain.Update) []string {
				return []string{u.ID.String(), u.Headline, u.Barangay.String(), u.Date, u.Time, u.Author, u.Type}
			},
		},
		ScreenAnnouncements: &tableScreen[domain.Announcement, api.AnnouncementForm]{
			Screen:  NewScreen("Announcements", announcements, nil, func(a domain.Announcement) string { return a.ID.String() }, log),
			headers: []string{"ID", "Headline", "Start", "End"},
			row: func(a domain.Announcement) []string {
				return []string{a.ID.String(), a.Headline, a.StartTime, a.EndTime}
			},
		},
		ScreenSitios: &tableScreen[domain.Sitio, api.SitioForm]{
			Screen:  NewScreen("Sitios", sitios, nil, func(s domain.Sitio) string { return s.ID.String() }, log),
			headers: []string{"ID", "Name", "Lat", "Long"},
			row: func(s domain.Sitio) []string {
				return []string{s.ID.String(), s.Name, s.Lat.String(), s.Long.String()}
			},
		},
		ScreenFakeSOS: &tableScreen[domain.FakeSOSReport, struct{}]{
			Screen:  NewListScreen("Reported Fake SOS", fakeSOS, func(r domain.FakeSOSReport) string { return r.ID.String() }, log),
			headers: []string{"ID", "Reporter", "Contact No", "Reason"},
			row: func(r domain.FakeSOSReport) []string {
				name, contact := "N/A", "N/A"
				if r.ReporterData != nil {
					if r.ReporterData.Name != "" {
						name = r.ReporterData.Name
					}
					if r.ReporterData.ContactNo != "" {
						contact = r.ReporterData.ContactNo
					}
				}
				return []string{r.ID.String(), name, contact, r.Reason}
			},
		},
	}

	return &Registry{views: views}
}
