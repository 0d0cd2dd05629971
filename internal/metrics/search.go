package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcome label values.
const (
	FetchOK             = "ok"
	FetchTransportError = "transport_error"
	FetchStatusError    = "status_error"
	FetchDecodeError    = "decode_error"
)

// Search Prometheus metrics.
var (
	FetchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "huntr",
			Name:      "fetch_requests_total",
			Help:      "Backend search requests by outcome",
		},
		[]string{"status"},
	)

	FetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "huntr",
			Name:      "fetch_duration_seconds",
			Help:      "Backend search request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	FetchCoalescedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "huntr",
			Name:      "fetch_coalesced_total",
			Help:      "Backend requests answered by an identical in-flight request",
		},
	)

	QueryCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "huntr",
			Name:      "query_cache_total",
			Help:      "Result page cache lookups by tier and result",
		},
		[]string{"tier", "result"}, // tier: memory/shared, result: hit/miss
	)

	SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "huntr",
			Name:      "sessions_active",
			Help:      "Search sessions currently held by the server",
		},
	)
)

var registerOnce sync.Once

// Register registers all huntr collectors on the default registry.
// Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			httpRequestsInFlight,
			FetchRequestsTotal,
			FetchDuration,
			FetchCoalescedTotal,
			QueryCacheTotal,
			SessionsActive,
		)
	})
}
