package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// Service coordinates health checks.
type Service struct {
	cache CachePinger
}

// New creates a Service. cache is nil when results are kept in memory only.
func New(cache CachePinger) *Service {
	return &Service{cache: cache}
}

// Check runs health checks against all components.
// A failing shared cache degrades the service; searches still work from memory.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]CheckResult{"memory_cache": CheckOK}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["shared_cache"] = CheckError
		} else {
			checks["shared_cache"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
