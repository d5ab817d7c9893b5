// Package console holds the screen state machines and the navigation shell.
// Screens are plain state containers: they drive the API client and record
// what should be rendered, so the whole flow is testable without a terminal.
package console

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/weathersafe/admin-console/internal/api"
	"github.com/weathersafe/admin-console/internal/core/ports"
)

// Phase is the top-level screen state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseLoadError
)

// Modal is the sub-state a loaded screen may be in.
type Modal int

const (
	ModalNone Modal = iota
	ModalCreate
	ModalEdit
	ModalConfirmDelete
	ModalConfirmRestore
)

// Screen is one CRUD screen bound to one server collection. All mutations of
// screen state go through its methods; the zero Phase is Idle.
//
// Each screen reloads independently; there is no cross-screen cache, so two
// screens showing overlapping data may transiently disagree until both
// refetch. Two rapid operations race at the network layer and the last
// response to arrive wins.
type Screen[T any, F any] struct {
	mu sync.Mutex

	title    string
	lister   ports.Lister[T]
	coll     ports.Collection[T, F]
	restorer ports.Restorable[T]
	idOf     func(T) string
	log      zerolog.Logger

	phase     Phase
	items     []T
	loadErr   string
	modal     Modal
	targetID  string
	fieldErrs map[string][]string
	banner    string
	closed    bool
}

// NewScreen builds a screen over coll. restorer is nil for resources the
// server hard-deletes. idOf extracts the server identifier used to merge
// responses into local state.
func NewScreen[T any, F any](title string, coll ports.Collection[T, F], restorer ports.Restorable[T], idOf func(T) string, log zerolog.Logger) *Screen[T, F] {
	return &Screen[T, F]{title: title, lister: coll, coll: coll, restorer: restorer, idOf: idOf, log: log}
}

// NewListScreen builds a review-only screen over a Lister. Forms and
// destructive operations are no-ops on it.
func NewListScreen[T any](title string, lister ports.Lister[T], idOf func(T) string, log zerolog.Logger) *Screen[T, struct{}] {
	return &Screen[T, struct{}]{title: title, lister: lister, idOf: idOf, log: log}
}

func (s *Screen[T, F]) Title() string { return s.title }

// Load fetches the collection. An empty result is a valid Loaded state with
// zero rows, distinct from Loading and from LoadError. A response arriving
// after Close is dropped.
func (s *Screen[T, F]) Load(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.phase = PhaseLoading
	s.loadErr = ""
	s.mu.Unlock()

	items, err := s.lister.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if err != nil {
		s.phase = PhaseLoadError
		s.loadErr = friendlyMessage(err)
		s.log.Error().Err(err).Str("screen", s.title).Msg("list failed")
		return
	}
	s.phase = PhaseLoaded
	s.items = items
}

// OpenCreate opens the blank form. Only valid once loaded.
func (s *Screen[T, F]) OpenCreate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.coll == nil || s.phase != PhaseLoaded || s.modal != ModalNone {
		return
	}
	s.modal = ModalCreate
	s.targetID = ""
	s.fieldErrs = nil
}

// OpenEdit opens the form for an existing item.
func (s *Screen[T, F]) OpenEdit(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.coll == nil || s.phase != PhaseLoaded || s.modal != ModalNone {
		return
	}
	s.modal = ModalEdit
	s.targetID = id
	s.fieldErrs = nil
}

// Submit sends the open form. Validation failures, local or server-side,
// keep the form open with per-field messages and leave the collection
// untouched; the field keys are the server's own names.
func (s *Screen[T, F]) Submit(ctx context.Context, form F) error {
	s.mu.Lock()
	if s.closed || (s.modal != ModalCreate && s.modal != ModalEdit) {
		s.mu.Unlock()
		return nil
	}
	mode, targetID := s.modal, s.targetID

	if fields := ValidateForm(form); fields != nil {
		s.fieldErrs = fields
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	var (
		saved T
		err   error
	)
	if mode == ModalCreate {
		saved, err = s.coll.Create(ctx, form)
	} else {
		saved, err = s.coll.Update(ctx, targetID, form)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if err != nil {
		if fields := api.IsValidationError(err); fields != nil {
			s.fieldErrs = fields
			return nil
		}
		s.banner = friendlyMessage(err)
		return err
	}

	if mode == ModalEdit {
		s.replace(targetID, saved)
	} else {
		s.items = append(s.items, saved)
	}
	s.modal = ModalNone
	s.targetID = ""
	s.fieldErrs = nil
	return nil
}

// RequestDelete opens the confirmation dialog. The destructive call cannot
// fire until ConfirmDelete is invoked while this dialog is open.
func (s *Screen[T, F]) RequestDelete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.coll == nil || s.phase != PhaseLoaded || s.modal != ModalNone {
		return
	}
	s.modal = ModalConfirmDelete
	s.targetID = id
}

// ConfirmDelete fires the DELETE for the item pending confirmation. On
// success the item leaves local state without a refetch; on failure local
// state is unchanged and a banner is shown.
func (s *Screen[T, F]) ConfirmDelete(ctx context.Context) error {
	s.mu.Lock()
	if s.coll == nil || s.modal != ModalConfirmDelete || s.targetID == "" {
		s.mu.Unlock()
		return nil
	}
	id := s.targetID
	s.mu.Unlock()

	err := s.coll.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if err != nil {
		s.banner = friendlyMessage(err)
		s.modal = ModalNone
		s.targetID = ""
		return err
	}
	s.remove(id)
	s.modal = ModalNone
	s.targetID = ""
	return nil
}

// RequestRestore opens the undo-delete confirmation. A no-op for resources
// without soft delete.
func (s *Screen[T, F]) RequestRestore(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.restorer == nil || s.phase != PhaseLoaded || s.modal != ModalNone {
		return
	}
	s.modal = ModalConfirmRestore
	s.targetID = id
}

// ConfirmRestore fires the restore call pending confirmation.
func (s *Screen[T, F]) ConfirmRestore(ctx context.Context) error {
	s.mu.Lock()
	if s.restorer == nil || s.modal != ModalConfirmRestore || s.targetID == "" {
		s.mu.Unlock()
		return nil
	}
	id := s.targetID
	s.mu.Unlock()

	restored, err := s.restorer.Restore(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.modal = ModalNone
	s.targetID = ""
	if err != nil {
		s.banner = friendlyMessage(err)
		return err
	}
	s.replace(id, restored)
	return nil
}

// Cancel dismisses any open form or confirmation without side effects.
func (s *Screen[T, F]) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = ModalNone
	s.targetID = ""
	s.fieldErrs = nil
}

// Close marks the screen unmounted. Responses still in flight are discarded
// on arrival; there is no cancellation of the requests themselves.
func (s *Screen[T, F]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// --- Read accessors ---

func (s *Screen[T, F]) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Screen[T, F]) Modal() Modal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modal
}

func (s *Screen[T, F]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Screen[T, F]) TargetID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.targetID
}

// FieldErrors returns the per-field messages of the last rejected submit.
func (s *Screen[T, F]) FieldErrors() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fieldErrs
}

// Banner returns and clears the screen-level error banner.
func (s *Screen[T, F]) Banner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.banner
	s.banner = ""
	return b
}

func (s *Screen[T, F]) LoadError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

func (s *Screen[T, F]) replace(id string, item T) {
	for i := range s.items {
		if s.idOf(s.items[i]) == id {
			s.items[i] = item
			return
		}
	}
	s.items = append(s.items, item)
}

func (s *Screen[T, F]) remove(id string) {
	for i := range s.items {
		if s.idOf(s.items[i]) == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// friendlyMessage maps an error to the text shown to the operator. Specific
// kinds get specific wording; everything else is the generic failure line so
// no raw error ever reaches the screen.
func friendlyMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case api.KindAuth:
			return "Your session has expired. Please log in again."
		case api.KindNotFound:
			return "The record no longer exists."
		case api.KindConflict:
			return "The record was changed by someone else. Reload and try again."
		}
	}
	return "Something went wrong. Please try again."
}
