package pagecache

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/herohuntr/huntr/internal/db"
	"github.com/herohuntr/huntr/internal/domain/search/query"
	"github.com/herohuntr/huntr/internal/domain/search/result"
)

// DefaultKeyPrefix namespaces page entries in the shared store.
const DefaultKeyPrefix = "huntr:"

// Cache tier label values.
const (
	TierMemory = "memory"
	TierShared = "shared"
)

// store is the consumer interface for the shared tier (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Tiered serves pages from a private Memory cache and falls back to a
// shared key-value store. Shared hits are promoted into memory.
type Tiered struct {
	local      *Memory
	shared     store
	prefix     string
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// NewTiered creates a two-tier cache.
// cacheTotal is a counter vec with labels "tier" and "result" ("hit"/"miss"), passed explicitly.
func NewTiered(
	local *Memory,
	shared store,
	prefix string,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Tiered {
	if local == nil {
		local = NewMemory()
	}
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tiered{
		local:      local,
		shared:     shared,
		prefix:     prefix,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Get looks the key up in memory first, then in the shared store.
func (t *Tiered) Get(ctx context.Context, key query.Key) (result.Page, bool) {
	if !key.IsSearchable() {
		return result.Page{}, false
	}

	if page, ok := t.local.Get(ctx, key); ok {
		t.inc(TierMemory, "hit")
		return page, true
	}
	t.inc(TierMemory, "miss")

	page, ok := t.getShared(ctx, key)
	if !ok {
		t.inc(TierShared, "miss")
		return result.Page{}, false
	}
	t.inc(TierShared, "hit")

	t.local.Put(ctx, key, page)
	return page, true
}

// Put writes the page to both tiers. Shared-store failures are logged only.
func (t *Tiered) Put(ctx context.Context, key query.Key, page result.Page) {
	if !key.IsSearchable() {
		return
	}
	t.local.Put(ctx, key, page)

	data, err := json.Marshal(page)
	if err != nil {
		t.logger.Warn("Failed to encode page for shared cache", zap.Stringer("key", key), zap.Error(err))
		return
	}
	if err := t.shared.Set(ctx, t.storeKey(key), data); err != nil {
		t.logger.Warn("Failed to store page in shared cache", zap.Stringer("key", key), zap.Error(err))
	}
}

func (t *Tiered) getShared(ctx context.Context, key query.Key) (result.Page, bool) {
	data, err := t.shared.Get(ctx, t.storeKey(key))
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			t.logger.Warn("Failed to get page from shared cache", zap.Stringer("key", key), zap.Error(err))
		}
		return result.Page{}, false
	}
	if len(data) == 0 {
		return result.Page{}, false
	}

	var page result.Page
	if err := json.Unmarshal(data, &page); err != nil {
		t.logger.Warn("Failed to decode page from shared cache", zap.Stringer("key", key), zap.Error(err))
		return result.Page{}, false
	}
	return result.NewPage(page.Items, page.TotalPages), true
}

func (t *Tiered) storeKey(key query.Key) string {
	return t.prefix + "page:" + key.Digest()
}

func (t *Tiered) inc(tier, res string) {
	if t.cacheTotal != nil {
		t.cacheTotal.WithLabelValues(tier, res).Inc()
	}
}
