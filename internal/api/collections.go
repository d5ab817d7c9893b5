package api

import (
	"context"
	"encoding/json"

	"github.com/weathersafe/admin-console/internal/core/domain"
)

// Collection drives one CRUD namespace of the API. Every resource screen
// follows the same fetch/create/update/delete cycle, so the wire plumbing
// lives here once; constructors below bind the paths and payload types.
type Collection[T any, F any] struct {
	client *Client
	base   string
	// envelopeKey names the wrapping object key for list responses that are
	// not bare arrays (e.g. {"posts": [...]}), empty otherwise.
	envelopeKey string
}

// List fetches the whole collection. An empty collection decodes to an empty
// slice, never nil, so callers can tell "loaded empty" from "never loaded".
func (c *Collection[T, F]) List(ctx context.Context) ([]T, error) {
	if c.envelopeKey == "" {
		items := []T{}
		if err := c.client.get(ctx, c.base, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var env map[string]json.RawMessage
	if err := c.client.get(ctx, c.base, &env); err != nil {
		return nil, err
	}
	items := []T{}
	raw, ok := env[c.envelopeKey]
	if !ok {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Collection[T, F]) Create(ctx context.Context, form F) (T, error) {
	var created T
	err := c.client.post(ctx, c.base, form, &created)
	return created, err
}

func (c *Collection[T, F]) Update(ctx context.Context, id string, form F) (T, error) {
	var updated T
	err := c.client.put(ctx, c.base+"/"+id, form, &updated)
	return updated, err
}

func (c *Collection[T, F]) Delete(ctx context.Context, id string) error {
	return c.client.delete(ctx, c.base+"/"+id)
}

// Restore undoes a soft delete. Only call this for collections the server
// actually soft-deletes; see the constructors below.
func (c *Collection[T, F]) Restore(ctx context.Context, id string) (T, error) {
	var restored T
	err := c.client.patch(ctx, c.base+"/"+id+"/restore", nil, &restored)
	return restored, err
}

// --- Namespace bindings ---

func (c *Client) Barangays() *Collection[domain.Barangay, BarangayForm] {
	return &Collection[domain.Barangay, BarangayForm]{client: c, base: "/api/barangays"}
}

// BarangayAdmins is soft-deletable: Restore is part of its contract.
func (c *Client) BarangayAdmins() *Collection[domain.BarangayAdmin, BarangayAdminForm] {
	return &Collection[domain.BarangayAdmin, BarangayAdminForm]{client: c, base: "/api/barangay-admins"}
}

// BarangayUsers is soft-deletable. The namespace is singular on the server.
func (c *Client) BarangayUsers() *Collection[domain.BarangayUser, BarangayUserForm] {
	return &Collection[domain.BarangayUser, BarangayUserForm]{client: c, base: "/api/barangay-user"}
}

// CommunityUsers is soft-deletable. The namespace is singular on the server.
func (c *Client) CommunityUsers() *Collection[domain.CommunityUser, CommunityUserForm] {
	return &Collection[domain.CommunityUser, CommunityUserForm]{client: c, base: "/api/community-user"}
}

func (c *Client) Users() *Collection[domain.User, UserForm] {
	return &Collection[domain.User, UserForm]{client: c, base: "/api/users"}
}

func (c *Client) Posts() *Collection[domain.Post, PostForm] {
	return &Collection[domain.Post, PostForm]{client: c, base: "/api/posts", envelopeKey: "posts"}
}

func (c *Client) Updates() *Collection[domain.Update, UpdateForm] {
	return &Collection[domain.Update, UpdateForm]{client: c, base: "/api/updates"}
}

func (c *Client) Announcements() *Collection[domain.Announcement, AnnouncementForm] {
	return &Collection[domain.Announcement, AnnouncementForm]{client: c, base: "/api/announcements"}
}

func (c *Client) Sitios() *Collection[domain.Sitio, SitioForm] {
	return &Collection[domain.Sitio, SitioForm]{client: c, base: "/api/brgySitios"}
}

// FakeSOSReports is review-only; only List is routed by the server.
func (c *Client) FakeSOSReports() *Collection[domain.FakeSOSReport, struct{}] {
	return &Collection[domain.FakeSOSReport, struct{}]{client: c, base: "/api/reportedFakeSOS", envelopeKey: "reportedFakeSOS"}
}
