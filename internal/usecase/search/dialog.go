package search

import (
	"context"

	"github.com/herohuntr/huntr/internal/domain/search/filter"
	"github.com/herohuntr/huntr/internal/domain/search/kind"
)

// OpenFilters opens the filter dialog with a draft of the active filters.
func (c *Controller) OpenFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.filtersOpen = true
	c.draft = c.filters
}

// CloseFilters closes the dialog and discards the draft.
func (c *Controller) CloseFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.filtersOpen = false
	c.draft = c.filters
}

// SetDraftRange updates one range field of the draft.
func (c *Controller) SetDraftRange(name string, lo, hi float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.draft.WithRange(name, lo, hi)
	if err != nil {
		return err
	}
	c.draft = next
	return nil
}

// SetDraftChoice updates one choice field of the draft.
func (c *Controller) SetDraftChoice(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.draft.WithChoice(name, value)
	if err != nil {
		return err
	}
	c.draft = next
	return nil
}

// SwitchDraftTab moves the dialog to another kind. The draft restarts
// from that kind's defaults, even when switching to the current tab.
func (c *Controller) SwitchDraftTab(k kind.Kind) error {
	if _, err := filter.SchemaFor(k); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.draft = filter.Defaults(k)
	return nil
}

// ResetDraft restores the draft to its kind's defaults.
func (c *Controller) ResetDraft() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.draft = c.draft.Reset()
}

// ApplyDraft applies the draft as the active filters.
func (c *Controller) ApplyDraft(ctx context.Context) error {
	c.mu.Lock()
	draft := c.draft
	c.mu.Unlock()

	return c.ApplyFilters(ctx, draft)
}
