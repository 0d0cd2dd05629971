package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/herohuntr/huntr/internal/domain"
	"github.com/herohuntr/huntr/internal/domain/search/kind"
	"github.com/herohuntr/huntr/internal/metrics"
	"github.com/herohuntr/huntr/internal/usecase/search"
)

const (
	// DefaultMaxSessions bounds the registry when Config.Max is zero.
	DefaultMaxSessions = 1000
	// DefaultIdleTimeout expires sessions when Config.IdleTimeout is zero.
	DefaultIdleTimeout = 30 * time.Minute
)

// Config holds registry settings.
type Config struct {
	Max         int
	IdleTimeout time.Duration
	PageSize    int
	Logger      *zap.Logger
}

type entry struct {
	ctrl     *search.Controller
	lastSeen atomic.Int64 // unix nanoseconds
}

// Registry holds one search controller per session id. Sessions not
// accessed for IdleTimeout are evicted by Sweep, and on Create when the
// registry is full.
type Registry struct {
	fetcher  search.Fetcher
	newCache CacheFactory
	max      int
	idle     time.Duration
	pageSize int
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*entry
}

// New creates an empty registry. Every session gets its own cache from newCache.
func New(fetcher search.Fetcher, newCache CacheFactory, cfg Config) *Registry {
	limit := cfg.Max
	if limit <= 0 {
		limit = DefaultMaxSessions
	}
	idle := cfg.IdleTimeout
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		fetcher:  fetcher,
		newCache: newCache,
		max:      limit,
		idle:     idle,
		pageSize: cfg.PageSize,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

// Create starts a session whose filters default to k.
func (r *Registry) Create(k kind.Kind) (string, *search.Controller, error) {
	id := uuid.NewString()
	ctrl, err := search.New(r.fetcher, r.newCache(), search.Config{
		Kind:     k,
		PageSize: r.pageSize,
		Logger:   r.logger.With(zap.String("session_id", id)),
	})
	if err != nil {
		return "", nil, fmt.Errorf("new controller: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.sessions) >= r.max {
		r.evictIdleLocked(r.now())
	}
	if len(r.sessions) >= r.max {
		return "", nil, fmt.Errorf("%w: limit %d", domain.ErrTooManySessions, r.max)
	}
	e := &entry{ctrl: ctrl}
	e.lastSeen.Store(r.now().UnixNano())
	r.sessions[id] = e
	metrics.SessionsActive.Set(float64(len(r.sessions)))

	r.logger.Debug("Session created", zap.String("session_id", id), zap.String("kind", string(k)))
	return id, ctrl, nil
}

// Get returns the controller of session id and marks it as accessed.
func (r *Registry) Get(id string) (*search.Controller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	e.lastSeen.Store(r.now().UnixNano())
	return e.ctrl, nil
}

// Delete drops session id.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	delete(r.sessions, id)
	metrics.SessionsActive.Set(float64(len(r.sessions)))

	r.logger.Debug("Session deleted", zap.String("session_id", id))
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep evicts every session idle for longer than the idle timeout and
// returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.evictIdleLocked(r.now())
}

// Run sweeps idle sessions periodically until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	interval := r.idle / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Info("Evicted idle sessions", zap.Int("count", n), zap.Int("remaining", r.Len()))
			}
		}
	}
}

func (r *Registry) evictIdleLocked(now time.Time) int {
	cutoff := now.Add(-r.idle).UnixNano()
	n := 0
	for id, e := range r.sessions {
		if e.lastSeen.Load() <= cutoff {
			delete(r.sessions, id)
			n++
			r.logger.Debug("Session expired", zap.String("session_id", id))
		}
	}
	if n > 0 {
		metrics.SessionsActive.Set(float64(len(r.sessions)))
	}
	return n
}
