package pagecache

import (
	"context"
	"sync"

	"github.com/herohuntr/huntr/internal/domain/search/query"
	"github.com/herohuntr/huntr/internal/domain/search/result"
)

// variant tells apart pages of one text and number.
type variant struct {
	filters string
	limit   int
}

// Memory is an unbounded in-process page cache keyed text → page → (filters, limit).
// Entries live as long as the Memory value.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]map[int]map[variant]result.Page
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]map[int]map[variant]result.Page)}
}

// Get returns the page stored under key. Keys without search text always miss.
func (m *Memory) Get(_ context.Context, key query.Key) (result.Page, bool) {
	if !key.IsSearchable() {
		return result.Page{}, false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	page, ok := m.entries[key.Text][key.Page][variant{key.Filters, key.Limit}]
	if !ok {
		return result.Page{}, false
	}
	return page.Clone(), true
}

// Put stores page under key, replacing any previous entry.
// Keys without search text are ignored.
func (m *Memory) Put(_ context.Context, key query.Key, page result.Page) {
	if !key.IsSearchable() {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	byPage, ok := m.entries[key.Text]
	if !ok {
		byPage = make(map[int]map[variant]result.Page)
		m.entries[key.Text] = byPage
	}
	byFilters, ok := byPage[key.Page]
	if !ok {
		byFilters = make(map[variant]result.Page)
		byPage[key.Page] = byFilters
	}
	byFilters[variant{key.Filters, key.Limit}] = page.Clone()
}

// Len returns the number of cached pages.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, byPage := range m.entries {
		for _, byFilters := range byPage {
			n += len(byFilters)
		}
	}
	return n
}
