package console

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/weathersafe/admin-console/internal/api"
)

// ---------------------------------------------------------------------------
// In-memory stub collection
// ---------------------------------------------------------------------------

type note struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type noteForm struct {
	Title string `json:"title" validate:"required"`
}

type stubCollection struct {
	items      []note
	listErr    error
	createErr  error
	updateErr  error
	deleteErr  error
	restoreErr error

	deletes  []string
	restores []string

	// onList lets a test interleave actions while a load is in flight.
	onList func()
	nextID int
}

func (c *stubCollection) List(_ context.Context) ([]note, error) {
	if c.onList != nil {
		c.onList()
	}
	if c.listErr != nil {
		return nil, c.listErr
	}
	out := make([]note, len(c.items))
	copy(out, c.items)
	return out, nil
}

func (c *stubCollection) Create(_ context.Context, form noteForm) (note, error) {
	if c.createErr != nil {
		return note{}, c.createErr
	}
	c.nextID++
	n := note{ID: "n" + string(rune('0'+c.nextID)), Title: form.Title}
	c.items = append(c.items, n)
	return n, nil
}

func (c *stubCollection) Update(_ context.Context, id string, form noteForm) (note, error) {
	if c.updateErr != nil {
		return note{}, c.updateErr
	}
	return note{ID: id, Title: form.Title}, nil
}

func (c *stubCollection) Delete(_ context.Context, id string) error {
	if c.deleteErr != nil {
		return c.deleteErr
	}
	c.deletes = append(c.deletes, id)
	return nil
}

func (c *stubCollection) Restore(_ context.Context, id string) (note, error) {
	if c.restoreErr != nil {
		return note{}, c.restoreErr
	}
	c.restores = append(c.restores, id)
	return note{ID: id, Title: "restored"}, nil
}

func newNoteScreen(coll *stubCollection) *Screen[note, noteForm] {
	return NewScreen[note, noteForm]("Notes", coll, coll, func(n note) string { return n.ID }, zerolog.Nop())
}

func TestScreen_LoadEmptyIsLoadedNotError(t *testing.T) {
	s := newNoteScreen(&stubCollection{})

	if s.Phase() != PhaseIdle {
		t.Fatalf("zero screen must be idle")
	}
	s.Load(context.Background())

	if s.Phase() != PhaseLoaded {
		t.Fatalf("expected loaded, got %v", s.Phase())
	}
	if items := s.Items(); len(items) != 0 {
		t.Fatalf("expected zero rows, got %d", len(items))
	}
	if s.LoadError() != "" {
		t.Fatalf("no error expected")
	}
}

func TestScreen_LoadFailure(t *testing.T) {
	s := newNoteScreen(&stubCollection{listErr: errors.New("boom")})
	s.Load(context.Background())

	if s.Phase() != PhaseLoadError {
		t.Fatalf("expected load error phase")
	}
	if s.LoadError() == "" {
		t.Fatalf("expected a user-facing message")
	}
}

func TestScreen_LateResponseAfterCloseIsDropped(t *testing.T) {
	coll := &stubCollection{items: []note{{ID: "n1", Title: "a"}}}
	s := newNoteScreen(coll)
	// The screen unmounts while the request is in flight.
	coll.onList = s.Close

	s.Load(context.Background())

	if s.Phase() != PhaseLoading {
		t.Fatalf("late response must not mutate a closed screen, phase=%v", s.Phase())
	}
	if len(s.Items()) != 0 {
		t.Fatalf("late response must be discarded")
	}
}

func TestScreen_DeleteRequiresConfirmation(t *testing.T) {
	coll := &stubCollection{items: []note{{ID: "n1", Title: "a"}}}
	s := newNoteScreen(coll)
	ctx := context.Background()
	s.Load(ctx)

	// Without an open confirmation the destructive call must not fire.
	if err := s.ConfirmDelete(ctx); err != nil {
		t.Fatalf("confirm without request: %v", err)
	}
	if len(coll.deletes) != 0 {
		t.Fatalf("delete fired without confirmation")
	}

	// Cancelling the dialog must not fire either.
	s.RequestDelete("n1")
	s.Cancel()
	if err := s.ConfirmDelete(ctx); err != nil {
		t.Fatalf("confirm after cancel: %v", err)
	}
	if len(coll.deletes) != 0 {
		t.Fatalf("delete fired after cancel")
	}

	s.RequestDelete("n1")
	if s.Modal() != ModalConfirmDelete {
		t.Fatalf("expected confirm dialog open")
	}
	if err := s.ConfirmDelete(ctx); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if len(coll.deletes) != 1 || coll.deletes[0] != "n1" {
		t.Fatalf("expected one delete of n1, got %v", coll.deletes)
	}
	if len(s.Items()) != 0 {
		t.Fatalf("item must leave local state without a refetch")
	}
}

func TestScreen_DeleteFailureLeavesStateUnchanged(t *testing.T) {
	coll := &stubCollection{items: []note{{ID: "n1", Title: "a"}}, deleteErr: errors.New("boom")}
	s := newNoteScreen(coll)
	ctx := context.Background()
	s.Load(ctx)

	s.RequestDelete("n1")
	if err := s.ConfirmDelete(ctx); err == nil {
		t.Fatalf("expected error")
	}
	if len(s.Items()) != 1 {
		t.Fatalf("failed delete must leave local state unchanged")
	}
	if s.Banner() == "" {
		t.Fatalf("expected an error banner")
	}
}

func TestScreen_SubmitLocalValidation(t *testing.T) {
	coll := &stubCollection{items: []note{{ID: "n1", Title: "a"}}}
	s := newNoteScreen(coll)
	ctx := context.Background()
	s.Load(ctx)

	s.OpenCreate()
	if err := s.Submit(ctx, noteForm{}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	fields := s.FieldErrors()
	if len(fields["title"]) != 1 {
		t.Fatalf("expected a title message keyed by the wire field name, got %v", fields)
	}
	if s.Modal() != ModalCreate {
		t.Fatalf("form must stay open")
	}
	if len(s.Items()) != 1 {
		t.Fatalf("collection state must be unchanged")
	}
}

func TestScreen_SubmitServerValidation(t *testing.T) {
	serverErr := &api.Error{
		Kind:   api.KindValidation,
		Status: http.StatusUnprocessableEntity,
		Fields: map[string][]string{"title": {"The title has already been taken."}},
	}
	coll := &stubCollection{items: []note{{ID: "n1", Title: "a"}}, createErr: serverErr}
	s := newNoteScreen(coll)
	ctx := context.Background()
	s.Load(ctx)

	s.OpenCreate()
	if err := s.Submit(ctx, noteForm{Title: "a"}); err != nil {
		t.Fatalf("server validation is not a screen error: %v", err)
	}

	fields := s.FieldErrors()
	if fields["title"][0] != "The title has already been taken." {
		t.Fatalf("messages must match the server's exactly: %v", fields)
	}
	if s.Modal() != ModalCreate || len(s.Items()) != 1 {
		t.Fatalf("form must stay open and the list unchanged")
	}
}

func TestScreen_SubmitCreateMergesAndCloses(t *testing.T) {
	coll := &stubCollection{}
	s := newNoteScreen(coll)
	ctx := context.Background()
	s.Load(ctx)

	s.OpenCreate()
	if err := s.Submit(ctx, noteForm{Title: "hello"}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if s.Modal() != ModalNone {
		t.Fatalf("form must close on success")
	}
	items := s.Items()
	if len(items) != 1 || items[0].Title != "hello" {
		t.Fatalf("created item must merge into local state: %+v", items)
	}
}

func TestScreen_SubmitEditReplacesInPlace(t *testing.T) {
	coll := &stubCollection{items: []note{{ID: "n1", Title: "old"}, {ID: "n2", Title: "keep"}}}
	s := newNoteScreen(coll)
	ctx := context.Background()
	s.Load(ctx)

	s.OpenEdit("n1")
	if err := s.Submit(ctx, noteForm{Title: "new"}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	items := s.Items()
	if len(items) != 2 || items[0].Title != "new" || items[1].Title != "keep" {
		t.Fatalf("edit must replace in place: %+v", items)
	}
}

func TestScreen_RestoreFlow(t *testing.T) {
	coll := &stubCollection{items: []note{{ID: "n1", Title: "deleted"}}}
	s := newNoteScreen(coll)
	ctx := context.Background()
	s.Load(ctx)

	s.RequestRestore("n1")
	if s.Modal() != ModalConfirmRestore {
		t.Fatalf("expected restore dialog")
	}
	if err := s.ConfirmRestore(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if len(coll.restores) != 1 {
		t.Fatalf("restore not fired")
	}
	if s.Items()[0].Title != "restored" {
		t.Fatalf("restored item must replace local state")
	}
}

func TestScreen_RestoreUnsupported(t *testing.T) {
	coll := &stubCollection{items: []note{{ID: "n1"}}}
	s := NewScreen[note, noteForm]("Notes", coll, nil, func(n note) string { return n.ID }, zerolog.Nop())
	s.Load(context.Background())

	s.RequestRestore("n1")
	if s.Modal() != ModalNone {
		t.Fatalf("restore must be a no-op without a restorer")
	}
}

func TestScreen_ListOnlyScreenRejectsMutation(t *testing.T) {
	coll := &stubCollection{items: []note{{ID: "n1", Title: "a"}}}
	s := NewListScreen[note]("Reports", coll, func(n note) string { return n.ID }, zerolog.Nop())
	ctx := context.Background()
	s.Load(ctx)

	if s.Phase() != PhaseLoaded || len(s.Items()) != 1 {
		t.Fatalf("list-only screen must still load")
	}

	s.OpenCreate()
	s.OpenEdit("n1")
	if s.Modal() != ModalNone {
		t.Fatalf("forms must not open on a list-only screen")
	}

	s.RequestDelete("n1")
	if s.Modal() != ModalNone {
		t.Fatalf("delete dialog must not open on a list-only screen")
	}
	if err := s.ConfirmDelete(ctx); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if len(coll.deletes) != 0 || len(s.Items()) != 1 {
		t.Fatalf("list-only screen must never mutate")
	}
}

func TestScreen_AuthFailureBanner(t *testing.T) {
	coll := &stubCollection{items: []note{{ID: "n1"}}, deleteErr: &api.Error{Kind: api.KindAuth, Status: http.StatusUnauthorized}}
	s := newNoteScreen(coll)
	ctx := context.Background()
	s.Load(ctx)

	s.RequestDelete("n1")
	_ = s.ConfirmDelete(ctx)

	if banner := s.Banner(); banner != "Your session has expired. Please log in again." {
		t.Fatalf("unexpected banner %q", banner)
	}
	// Banner reads clear themselves.
	if s.Banner() != "" {
		t.Fatalf("banner must clear after read")
	}
}
