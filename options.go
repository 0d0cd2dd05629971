package huntr

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/herohuntr/huntr/internal/usecase/search"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	baseURL    string
	searchPath string
	timeout    time.Duration
	pageSize   int
	userAgent  string

	redisAddrs []string
	password   string
	standalone bool
	keyPrefix  string

	logger     *zap.Logger
	metricsReg prometheus.Registerer

	// fetcher replaces the HTTP backend client in tests.
	fetcher search.Fetcher
}

// WithBackend sets the search backend base URL, e.g. "http://localhost:5000".
func WithBackend(baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.baseURL = baseURL
	})
}

// WithSearchPath overrides the search endpoint path. Default: /api/search.
func WithSearchPath(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.searchPath = path
	})
}

// WithTimeout bounds each backend request. Default: 10s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithPageSize sets the number of results requested per page. Default: 12.
func WithPageSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.pageSize = n
	})
}

// WithUserAgent sets the User-Agent sent to the backend.
func WithUserAgent(ua string) Option {
	return optionFunc(func(c *clientConfig) {
		c.userAgent = ua
	})
}

// WithRedis shares result pages between sessions and processes through Redis.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.redisAddrs = []string{addr}
		c.password = password
	})
}

// WithStandalone disables cluster topology discovery.
// Use for standalone Redis instances.
func WithStandalone() Option {
	return optionFunc(func(c *clientConfig) {
		c.standalone = true
	})
}

// WithKeyPrefix namespaces shared cache keys. Default: "huntr:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts, durations and
// cache lookups) on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

func withFetcher(f search.Fetcher) Option {
	return optionFunc(func(c *clientConfig) {
		c.fetcher = f
	})
}
