package pagecache

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/herohuntr/huntr/internal/db"
	"github.com/herohuntr/huntr/internal/domain/search/filter"
	"github.com/herohuntr/huntr/internal/domain/search/kind"
	"github.com/herohuntr/huntr/internal/domain/search/query"
	"github.com/herohuntr/huntr/internal/domain/search/result"
)

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	mu    sync.Mutex
	data  map[string][]byte
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte) error
	gets  int
	sets  int
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	m.gets++
	m.mu.Unlock()
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	m.sets++
	m.mu.Unlock()
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[key] = value
	return nil
}

func newTestCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "test_query_cache_total", Help: "test"},
		[]string{"tier", "result"},
	)
}

func newTestTiered(t *testing.T, kv *mockKVStore) (*Tiered, *prometheus.CounterVec) {
	t.Helper()
	counter := newTestCounter()
	return NewTiered(NewMemory(), kv, "", counter, zap.NewNop()), counter
}

func heroPage(names ...string) result.Page {
	items := make([]result.Item, 0, len(names))
	for _, n := range names {
		items = append(items, result.NewSuperhero(result.Superhero{Name: n, Power: "90", Alignment: "good"}))
	}
	return result.NewPage(items, 3)
}

func batmanKey(page int) query.Key {
	return query.NewKey("Batman", page, filter.Defaults(kind.Superhero))
}
