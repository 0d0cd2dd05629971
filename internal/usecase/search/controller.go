package search

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/herohuntr/huntr/internal/domain"
	"github.com/herohuntr/huntr/internal/domain/search/filter"
	"github.com/herohuntr/huntr/internal/domain/search/kind"
	"github.com/herohuntr/huntr/internal/domain/search/query"
	"github.com/herohuntr/huntr/internal/domain/search/result"
)

// State is a snapshot of a controller.
type State struct {
	Query       string        `json:"query"`
	Page        int           `json:"page"`
	Filters     filter.Set    `json:"filters"`
	Results     []result.Item `json:"results"`
	TotalPages  int           `json:"totalPages"`
	Loading     bool          `json:"loading"`
	FiltersOpen bool          `json:"filtersOpen"`
	Draft       filter.Set    `json:"draft"`
}

// HasQuery reports whether a search has been submitted.
func (s State) HasQuery() bool { return s.Query != "" }

// Config holds controller settings.
type Config struct {
	Kind     kind.Kind
	PageSize int
	Logger   *zap.Logger
}

// Controller owns the search state of one session: the active query, page
// and filters, the results on display and the filter dialog draft.
// It is safe for concurrent use; the newest fetch cycle always wins.
type Controller struct {
	fetcher  Fetcher
	cache    Cache
	pageSize int
	logger   *zap.Logger

	mu          sync.Mutex
	gen         uint64
	query       string
	page        int
	filters     filter.Set
	results     []result.Item
	totalPages  int
	loading     bool
	filtersOpen bool
	draft       filter.Set
}

// New creates a controller with default filters for cfg.Kind.
func New(fetcher Fetcher, cache Cache, cfg Config) (*Controller, error) {
	k := cfg.Kind
	if k == "" {
		k = kind.Superhero
	}
	if !k.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, k)
	}
	size := cfg.PageSize
	if size <= 0 {
		size = query.DefaultPageSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	defaults := filter.Defaults(k)
	return &Controller{
		fetcher:    fetcher,
		cache:      cache,
		pageSize:   size,
		logger:     logger,
		page:       1,
		filters:    defaults,
		results:    []result.Item{},
		totalPages: 1,
		draft:      defaults,
	}, nil
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	results := make([]result.Item, len(c.results))
	copy(results, c.results)
	return State{
		Query:       c.query,
		Page:        c.page,
		Filters:     c.filters,
		Results:     results,
		TotalPages:  c.totalPages,
		Loading:     c.loading,
		FiltersOpen: c.filtersOpen,
		Draft:       c.draft,
	}
}

// SubmitQuery starts a new search for text at page 1.
// Blank text is ignored and leaves the state untouched.
func (c *Controller) SubmitQuery(ctx context.Context, text string) {
	text = query.Normalize(text)
	if text == "" {
		return
	}

	c.mu.Lock()
	c.query = text
	c.page = 1
	c.clearResultsLocked()
	req, gen := c.beginLocked()
	c.mu.Unlock()

	c.run(ctx, gen, req)
}

// ChangePage moves to page within the current result set.
func (c *Controller) ChangePage(ctx context.Context, page int) error {
	c.mu.Lock()
	if c.query == "" {
		c.mu.Unlock()
		return domain.ErrNoActiveQuery
	}
	if page < 1 || page > c.totalPages {
		total := c.totalPages
		c.mu.Unlock()
		return fmt.Errorf("%w: %d not in [1, %d]", domain.ErrPageOutOfRange, page, total)
	}
	c.page = page
	req, gen := c.beginLocked()
	c.mu.Unlock()

	c.run(ctx, gen, req)
	return nil
}

// ApplyFilters replaces the active filters, closes the filter dialog and
// restarts the current search at page 1. Without a query only the filters change.
func (c *Controller) ApplyFilters(ctx context.Context, set filter.Set) error {
	if !set.Kind().IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownKind, set.Kind())
	}

	c.mu.Lock()
	c.filters = set
	c.draft = set
	c.filtersOpen = false
	c.page = 1
	c.clearResultsLocked()
	if c.query == "" {
		c.mu.Unlock()
		return nil
	}
	req, gen := c.beginLocked()
	c.mu.Unlock()

	c.run(ctx, gen, req)
	return nil
}

// ResetFilters applies the default filters of the active kind.
func (c *Controller) ResetFilters(ctx context.Context) error {
	c.mu.Lock()
	defaults := c.filters.Reset()
	c.mu.Unlock()

	return c.ApplyFilters(ctx, defaults)
}

func (c *Controller) clearResultsLocked() {
	c.results = []result.Item{}
	c.totalPages = 1
}

// beginLocked starts a new fetch cycle and returns its request and generation.
func (c *Controller) beginLocked() (query.Request, uint64) {
	c.gen++
	return query.Request{
		Text:     c.query,
		Page:     c.page,
		Filters:  c.filters,
		PageSize: c.pageSize,
	}, c.gen
}

// run executes one fetch cycle. The mutex is never held across Fetch.
func (c *Controller) run(ctx context.Context, gen uint64, req query.Request) {
	key := req.Key()

	if page, ok := c.cache.Get(ctx, key); ok {
		c.settle(gen, key, page)
		return
	}

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.loading = true
	c.mu.Unlock()

	page, err := c.fetcher.Fetch(ctx, req)
	if err != nil {
		c.logger.Warn("Search fetch failed, showing empty results",
			zap.Stringer("key", key), zap.Error(err))
		page = result.Empty()
	} else {
		c.cache.Put(ctx, key, page)
	}

	c.settle(gen, key, page)
}

// settle adopts page if gen is still the newest cycle.
func (c *Controller) settle(gen uint64, key query.Key, page result.Page) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		c.logger.Debug("Discarding superseded search result",
			zap.Stringer("key", key), zap.Uint64("generation", gen), zap.Uint64("current", c.gen))
		return
	}
	page = result.NewPage(page.Items, page.TotalPages).Clone()
	c.results = page.Items
	c.totalPages = page.TotalPages
	c.loading = false
}
