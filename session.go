package huntr

import (
	"context"
	"time"

	"github.com/herohuntr/huntr/internal/usecase/search"
)

// Session is one search screen: a query, a page, active filters and a
// filter dialog draft. Methods are safe for concurrent use; when calls
// overlap, the state reflects the last one issued.
//
// Search, ChangePage and the filter operations block until the results
// are settled. Backend failures are not returned: they leave an empty
// result list and are reported through the logger.
type Session struct {
	ctrl *search.Controller
	obs  *observer
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	return s.ctrl.State()
}

// View returns the render model of the current state.
func (s *Session) View() View {
	return Render(s.ctrl.State())
}

// Search submits text as a new query and loads its first page.
// Blank text leaves the session untouched.
func (s *Session) Search(ctx context.Context, text string) State {
	start := time.Now()
	s.ctrl.SubmitQuery(ctx, text)
	s.obs.observe("search", start, nil)
	return s.ctrl.State()
}

// ChangePage loads page of the current query.
func (s *Session) ChangePage(ctx context.Context, page int) (State, error) {
	start := time.Now()
	err := s.ctrl.ChangePage(ctx, page)
	s.obs.observe("change_page", start, err)
	return s.ctrl.State(), err
}

// ApplyFilters replaces the active filters and reruns the current query from page 1.
func (s *Session) ApplyFilters(ctx context.Context, f Filters) (State, error) {
	start := time.Now()
	err := s.ctrl.ApplyFilters(ctx, f)
	s.obs.observe("apply_filters", start, err)
	return s.ctrl.State(), err
}

// ResetFilters restores the default filters and reruns the current query.
func (s *Session) ResetFilters(ctx context.Context) (State, error) {
	start := time.Now()
	err := s.ctrl.ResetFilters(ctx)
	s.obs.observe("reset_filters", start, err)
	return s.ctrl.State(), err
}

// OpenFilters opens the filter dialog with a draft of the active filters.
func (s *Session) OpenFilters() { s.ctrl.OpenFilters() }

// CloseFilters closes the dialog and discards the draft.
func (s *Session) CloseFilters() { s.ctrl.CloseFilters() }

// SetDraftRange updates a range field of the draft.
func (s *Session) SetDraftRange(name string, lo, hi float64) error {
	return s.ctrl.SetDraftRange(name, lo, hi)
}

// SetDraftChoice updates a choice field of the draft. "" means any.
func (s *Session) SetDraftChoice(name, value string) error {
	return s.ctrl.SetDraftChoice(name, value)
}

// SwitchDraftTab replaces the draft with the defaults of k.
func (s *Session) SwitchDraftTab(k Kind) error {
	return s.ctrl.SwitchDraftTab(k)
}

// ResetDraft restores the draft to the defaults of its kind.
func (s *Session) ResetDraft() { s.ctrl.ResetDraft() }

// ApplyDraft applies the dialog draft as the active filters.
func (s *Session) ApplyDraft(ctx context.Context) (State, error) {
	start := time.Now()
	err := s.ctrl.ApplyDraft(ctx)
	s.obs.observe("apply_filters", start, err)
	return s.ctrl.State(), err
}
