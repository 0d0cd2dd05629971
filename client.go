package huntr

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/herohuntr/huntr/internal/db"
	dbRedis "github.com/herohuntr/huntr/internal/db/redis"
	"github.com/herohuntr/huntr/internal/repository/pagecache"
	"github.com/herohuntr/huntr/internal/transport/backend"
	"github.com/herohuntr/huntr/internal/usecase/search"
	"github.com/herohuntr/huntr/internal/version"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the huntr SDK entry point. Sessions created from one Client
// share its backend connection, its in-flight request coalescing and, when
// configured, its Redis result tier.
type Client struct {
	fetcher  search.Fetcher
	store    db.Store
	prefix   string
	pageSize int
	obs      *observer
}

// New creates a huntr Client. WithBackend is required.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	fetcher := cfg.fetcher
	if fetcher == nil {
		if cfg.baseURL == "" {
			return nil, errors.New("huntr: backend address required (use WithBackend)")
		}
		ua := cfg.userAgent
		if ua == "" {
			ua = version.UserAgent()
		}
		fetcher = backend.NewClient(&backend.Config{
			BaseURL:    cfg.baseURL,
			SearchPath: cfg.searchPath,
			Timeout:    cfg.timeout,
			UserAgent:  ua,
			Logger:     obs.logger,
		})
	}

	c := &Client{
		fetcher:  fetcher,
		prefix:   cfg.keyPrefix,
		pageSize: cfg.pageSize,
		obs:      obs,
	}

	if len(cfg.redisAddrs) > 0 {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.redisAddrs,
			Password:   cfg.password,
			Standalone: cfg.standalone,
		})
		if err != nil {
			return nil, fmt.Errorf("huntr: create redis store: %w", err)
		}
		if err := store.WaitForReady(context.Background(), defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("huntr: redis not ready: %w", err)
		}
		c.store = store
	}

	return c, nil
}

// NewSession starts an independent search session for k with default filters.
func (c *Client) NewSession(k Kind) (*Session, error) {
	ctrl, err := search.New(c.fetcher, c.newCache(), search.Config{
		Kind:     k,
		PageSize: c.pageSize,
		Logger:   c.obs.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("huntr: new session: %w", err)
	}
	return &Session{ctrl: ctrl, obs: c.obs}, nil
}

// Ping checks the shared cache. It is a no-op without WithRedis.
func (c *Client) Ping(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	start := time.Now()
	err := c.store.Ping(ctx)
	c.obs.observe("ping", start, err)
	return err
}

// Close releases the shared cache connection.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

func (c *Client) newCache() search.Cache {
	if c.store == nil {
		return pagecache.NewMemory()
	}
	return pagecache.NewTiered(pagecache.NewMemory(), c.store, c.prefix, c.obs.cacheCounter(), c.obs.logger)
}
