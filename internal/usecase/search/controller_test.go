package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/herohuntr/huntr/internal/domain"
	"github.com/herohuntr/huntr/internal/domain/search/filter"
	"github.com/herohuntr/huntr/internal/domain/search/kind"
	"github.com/herohuntr/huntr/internal/domain/search/query"
	"github.com/herohuntr/huntr/internal/domain/search/result"
	"github.com/herohuntr/huntr/internal/repository/pagecache"
)

// --- Mocks ---

type mockFetcher struct {
	mu    sync.Mutex
	calls []query.Request
	fn    func(ctx context.Context, req query.Request) (result.Page, error)
}

func (m *mockFetcher) Fetch(ctx context.Context, req query.Request) (result.Page, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	fn := m.fn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	return heroes(1, req.Text), nil
}

func (m *mockFetcher) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockFetcher) last() query.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[len(m.calls)-1]
}

func heroes(totalPages int, names ...string) result.Page {
	items := make([]result.Item, 0, len(names))
	for _, n := range names {
		items = append(items, result.NewSuperhero(result.Superhero{Name: n}))
	}
	return result.NewPage(items, totalPages)
}

func newTestController(t *testing.T, f *mockFetcher) (*Controller, *pagecache.Memory) {
	t.Helper()
	cache := pagecache.NewMemory()
	c, err := New(f, cache, Config{Kind: kind.Superhero})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, cache
}

func firstName(t *testing.T, s State) string {
	t.Helper()
	if len(s.Results) == 0 {
		t.Fatal("expected results")
	}
	h, ok := s.Results[0].Superhero()
	if !ok {
		t.Fatalf("expected superhero, got %s", s.Results[0].Kind())
	}
	return h.Name
}

// --- Tests ---

func TestNew_Defaults(t *testing.T) {
	c, _ := newTestController(t, &mockFetcher{})
	s := c.State()

	if s.Query != "" || s.Page != 1 || s.TotalPages != 1 || s.Loading || s.FiltersOpen {
		t.Fatalf("unexpected initial state: %+v", s)
	}
	if s.Results == nil || len(s.Results) != 0 {
		t.Fatalf("expected empty results, got %v", s.Results)
	}
	if !s.Filters.IsDefault() || s.Filters.Kind() != kind.Superhero {
		t.Fatal("expected default superhero filters")
	}
}

func TestNew_UnknownKind(t *testing.T) {
	_, err := New(&mockFetcher{}, pagecache.NewMemory(), Config{Kind: "villain"})
	if !errors.Is(err, domain.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestSubmitQuery_FetchesAndAdopts(t *testing.T) {
	f := &mockFetcher{fn: func(_ context.Context, _ query.Request) (result.Page, error) {
		return heroes(3, "Batman", "Batgirl"), nil
	}}
	c, cache := newTestController(t, f)

	c.SubmitQuery(context.Background(), "  Batman ")

	s := c.State()
	if s.Query != "Batman" || s.Page != 1 || s.TotalPages != 3 || s.Loading {
		t.Fatalf("unexpected state: %+v", s)
	}
	if len(s.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(s.Results))
	}
	req := f.last()
	if req.Text != "Batman" || req.Page != 1 || req.PageSize != query.DefaultPageSize {
		t.Errorf("unexpected request: %+v", req)
	}
	if _, ok := cache.Get(context.Background(), req.Key()); !ok {
		t.Error("expected page to be cached")
	}
}

func TestSubmitQuery_BlankIsNoop(t *testing.T) {
	f := &mockFetcher{}
	c, _ := newTestController(t, f)
	ctx := context.Background()

	c.SubmitQuery(ctx, "Batman")
	before := c.State()

	c.SubmitQuery(ctx, "")
	c.SubmitQuery(ctx, "   \t")

	after := c.State()
	if f.count() != 1 {
		t.Fatalf("blank query must not fetch, got %d calls", f.count())
	}
	if after.Query != before.Query || len(after.Results) != len(before.Results) {
		t.Fatalf("blank query must not change state: %+v -> %+v", before, after)
	}
}

func TestSubmitQuery_CacheHitSkipsNetwork(t *testing.T) {
	f := &mockFetcher{}
	c, _ := newTestController(t, f)
	ctx := context.Background()

	c.SubmitQuery(ctx, "Batman")
	c.SubmitQuery(ctx, "Superman")
	c.SubmitQuery(ctx, "Batman")

	if f.count() != 2 {
		t.Fatalf("expected 2 fetches, got %d", f.count())
	}
	if got := firstName(t, c.State()); got != "Batman" {
		t.Errorf("expected cached Batman page, got %q", got)
	}
}

func TestChangePage(t *testing.T) {
	f := &mockFetcher{fn: func(_ context.Context, req query.Request) (result.Page, error) {
		return heroes(3, req.Text+"-"+string(rune('0'+req.Page))), nil
	}}
	c, _ := newTestController(t, f)
	ctx := context.Background()

	if err := c.ChangePage(ctx, 1); !errors.Is(err, domain.ErrNoActiveQuery) {
		t.Fatalf("expected ErrNoActiveQuery, got %v", err)
	}

	c.SubmitQuery(ctx, "Bat")
	if err := c.ChangePage(ctx, 2); err != nil {
		t.Fatalf("ChangePage: %v", err)
	}
	s := c.State()
	if s.Page != 2 || firstName(t, s) != "Bat-2" {
		t.Fatalf("unexpected state after page change: %+v", s)
	}
	if f.last().Page != 2 {
		t.Errorf("expected request for page 2, got %d", f.last().Page)
	}

	for _, p := range []int{0, -1, 4} {
		if err := c.ChangePage(ctx, p); !errors.Is(err, domain.ErrPageOutOfRange) {
			t.Errorf("page %d: expected ErrPageOutOfRange, got %v", p, err)
		}
	}
	if c.State().Page != 2 {
		t.Error("rejected page change must not alter state")
	}

	calls := f.count()
	if err := c.ChangePage(ctx, 1); err != nil {
		t.Fatalf("ChangePage back: %v", err)
	}
	if f.count() != calls {
		t.Error("returning to a visited page must be served from cache")
	}
}

func TestApplyFilters_ResetsPageAndFetches(t *testing.T) {
	f := &mockFetcher{fn: func(_ context.Context, _ query.Request) (result.Page, error) {
		return heroes(5, "Hero"), nil
	}}
	c, _ := newTestController(t, f)
	ctx := context.Background()

	c.SubmitQuery(ctx, "Bat")
	_ = c.ChangePage(ctx, 3)
	c.OpenFilters()

	set, _ := filter.Defaults(kind.Superhero).WithRange("power", 50, 100)
	set, _ = set.WithChoice("alignment", "good")
	if err := c.ApplyFilters(ctx, set); err != nil {
		t.Fatalf("ApplyFilters: %v", err)
	}

	s := c.State()
	if s.Page != 1 || s.FiltersOpen {
		t.Fatalf("expected page 1 and closed dialog: %+v", s)
	}
	if !s.Filters.Equal(set) {
		t.Error("expected filters to be replaced")
	}
	params := f.last().Filters.Params()
	if params.Get("powerMin") != "50" || params.Get("powerMax") != "100" || params.Get("alignment") != "good" {
		t.Errorf("unexpected filter params: %v", params)
	}
}

func TestApplyFilters_WithoutQueryDoesNotFetch(t *testing.T) {
	f := &mockFetcher{}
	c, _ := newTestController(t, f)

	set, _ := filter.Defaults(kind.Movie).WithChoice("type", "series")
	if err := c.ApplyFilters(context.Background(), set); err != nil {
		t.Fatalf("ApplyFilters: %v", err)
	}
	if f.count() != 0 {
		t.Fatalf("expected no fetch without a query, got %d", f.count())
	}
	if c.State().Filters.Kind() != kind.Movie {
		t.Error("expected movie filters to be active")
	}
}

func TestApplyFilters_RevertedFiltersHitCache(t *testing.T) {
	f := &mockFetcher{}
	c, _ := newTestController(t, f)
	ctx := context.Background()

	c.SubmitQuery(ctx, "Bat")
	filtered, _ := filter.Defaults(kind.Superhero).WithRange("speed", 10, 90)
	_ = c.ApplyFilters(ctx, filtered)
	reverted, _ := filtered.WithRange("speed", 0, 100)
	_ = c.ApplyFilters(ctx, reverted)

	if f.count() != 2 {
		t.Fatalf("reverting to defaults must reuse the first page, got %d fetches", f.count())
	}
}

func TestApplyFilters_InvalidSet(t *testing.T) {
	c, _ := newTestController(t, &mockFetcher{})
	if err := c.ApplyFilters(context.Background(), filter.Set{}); !errors.Is(err, domain.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestResetFilters(t *testing.T) {
	f := &mockFetcher{}
	c, _ := newTestController(t, f)
	ctx := context.Background()

	set, _ := filter.Defaults(kind.Movie).WithRange("year", 2000, 2010)
	_ = c.ApplyFilters(ctx, set)
	c.SubmitQuery(ctx, "Matrix")

	if err := c.ResetFilters(ctx); err != nil {
		t.Fatalf("ResetFilters: %v", err)
	}
	s := c.State()
	if !s.Filters.IsDefault() || s.Filters.Kind() != kind.Movie {
		t.Fatal("expected default movie filters")
	}
	if len(f.last().Filters.Params()) != 0 {
		t.Errorf("expected no filter params, got %v", f.last().Filters.Params())
	}
}

func TestFetchFailure_RenderableAndNotCached(t *testing.T) {
	fail := true
	f := &mockFetcher{fn: func(_ context.Context, req query.Request) (result.Page, error) {
		if fail {
			return result.Empty(), domain.ErrBackendUnavailable
		}
		return heroes(2, "Batman"), nil
	}}
	c, cache := newTestController(t, f)
	ctx := context.Background()

	c.SubmitQuery(ctx, "Batman")
	s := c.State()
	if s.Loading || len(s.Results) != 0 || s.TotalPages != 1 {
		t.Fatalf("expected renderable empty state, got %+v", s)
	}
	if _, ok := cache.Get(ctx, f.last().Key()); ok {
		t.Fatal("failed fetch must not be cached")
	}

	fail = false
	c.SubmitQuery(ctx, "Batman")
	if f.count() != 2 {
		t.Fatalf("expected a retry on resubmit, got %d fetches", f.count())
	}
	if got := firstName(t, c.State()); got != "Batman" {
		t.Errorf("unexpected result %q", got)
	}
}

func TestLoadingVisibleDuringFetch(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	f := &mockFetcher{fn: func(_ context.Context, _ query.Request) (result.Page, error) {
		close(started)
		<-release
		return heroes(1, "Batman"), nil
	}}
	c, _ := newTestController(t, f)

	done := make(chan struct{})
	go func() {
		c.SubmitQuery(context.Background(), "Batman")
		close(done)
	}()

	<-started
	s := c.State()
	if !s.Loading || s.Query != "Batman" || len(s.Results) != 0 {
		t.Fatalf("expected loading state with cleared results, got %+v", s)
	}

	close(release)
	<-done
	if c.State().Loading {
		t.Fatal("expected loading cleared after settlement")
	}
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})
	f := &mockFetcher{fn: func(_ context.Context, req query.Request) (result.Page, error) {
		if req.Text == "Slow" {
			close(slowStarted)
			<-releaseSlow
		}
		return heroes(1, req.Text), nil
	}}
	c, cache := newTestController(t, f)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		c.SubmitQuery(ctx, "Slow")
		close(done)
	}()
	<-slowStarted

	c.SubmitQuery(ctx, "Fast")
	if got := firstName(t, c.State()); got != "Fast" {
		t.Fatalf("expected Fast results, got %q", got)
	}

	close(releaseSlow)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("slow fetch did not settle")
	}

	s := c.State()
	if s.Query != "Fast" || firstName(t, s) != "Fast" || s.Loading {
		t.Fatalf("stale response overwrote newer state: %+v", s)
	}
	slowKey := query.NewKey("Slow", 1, filter.Defaults(kind.Superhero))
	if _, ok := cache.Get(ctx, slowKey); !ok {
		t.Error("superseded page must still be cached under its own key")
	}
}

func TestState_IsSnapshot(t *testing.T) {
	c, _ := newTestController(t, &mockFetcher{})
	c.SubmitQuery(context.Background(), "Batman")

	s := c.State()
	s.Results[0] = result.NewSuperhero(result.Superhero{Name: "Mutated"})

	if got := firstName(t, c.State()); got != "Batman" {
		t.Fatalf("snapshot mutation leaked into controller: %q", got)
	}
}
