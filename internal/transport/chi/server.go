package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	"github.com/herohuntr/huntr/internal/domain"
	"github.com/herohuntr/huntr/internal/domain/search/filter"
	"github.com/herohuntr/huntr/internal/domain/search/kind"
	logpkg "github.com/herohuntr/huntr/internal/logger"
	healthuc "github.com/herohuntr/huntr/internal/usecase/health"
	"github.com/herohuntr/huntr/internal/usecase/search"
	sessionuc "github.com/herohuntr/huntr/internal/usecase/session"
	"github.com/herohuntr/huntr/internal/view"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the session API.
type Server struct {
	sessions      *sessionuc.Registry
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(sessions *sessionuc.Registry, health *healthuc.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		sessions: sessions,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrSessionNotFound, http.StatusNotFound, ErrorResponseCodeSessionNotFound),
		sentinelHandler(domain.ErrTooManySessions, http.StatusTooManyRequests, ErrorResponseCodeTooManySessions),
		sentinelHandler(domain.ErrUnknownKind, http.StatusBadRequest, ErrorResponseCodeUnknownKind),
		sentinelHandler(domain.ErrInvalidFilter, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrPageOutOfRange, http.StatusBadRequest, ErrorResponseCodePageOutOfRange),
		sentinelHandler(domain.ErrNoActiveQuery, http.StatusBadRequest, ErrorResponseCodeNoActiveQuery),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/filters/{kind}", s.GetFilterSchema)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/search", s.SubmitQuery)
			r.Post("/page", s.ChangePage)
			r.Put("/filters", s.ApplyFilters)
			r.Delete("/filters", s.ResetFilters)
		})
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, report)
}

// GetFilterSchema handles GET /filters/{kind}.
func (s *Server) GetFilterSchema(w http.ResponseWriter, r *http.Request) {
	k, err := kind.Parse(chi.URLParam(r, "kind"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	fields, err := filter.SchemaFor(k)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SchemaResponse{Kind: k, Fields: fields, Defaults: filter.Defaults(k)})
}

// CreateSession handles POST /sessions?kind=.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var rawKind string
	if err := runtime.BindQueryParameter("form", true, false, "kind", r.URL.Query(), &rawKind); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid query parameter kind: "+err.Error())
		return
	}
	k := kind.Superhero
	if rawKind != "" {
		parsed, err := kind.Parse(rawKind)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		k = parsed
	}

	id, ctrl, err := s.sessions.Create(k)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("Location", "/sessions/"+id)
	writeSession(w, http.StatusCreated, id, ctrl)
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := s.session(w, r)
	if !ok {
		return
	}
	writeSession(w, http.StatusOK, id, ctrl)
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.sessions.Delete(id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubmitQuery handles POST /sessions/{id}/search?query=.
func (s *Server) SubmitQuery(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := s.session(w, r)
	if !ok {
		return
	}

	var text string
	if err := runtime.BindQueryParameter("form", true, true, "query", r.URL.Query(), &text); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid query parameter query: "+err.Error())
		return
	}

	ctrl.SubmitQuery(detach(r), text)
	writeSession(w, http.StatusOK, id, ctrl)
}

// ChangePage handles POST /sessions/{id}/page?page=.
func (s *Server) ChangePage(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := s.session(w, r)
	if !ok {
		return
	}

	var page int
	if err := runtime.BindQueryParameter("form", true, true, "page", r.URL.Query(), &page); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid query parameter page: "+err.Error())
		return
	}

	if err := ctrl.ChangePage(detach(r), page); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeSession(w, http.StatusOK, id, ctrl)
}

// ApplyFilters handles PUT /sessions/{id}/filters.
func (s *Server) ApplyFilters(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := s.session(w, r)
	if !ok {
		return
	}

	var req FiltersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	k := ctrl.State().Filters.Kind()
	if req.Kind != "" {
		parsed, err := kind.Parse(req.Kind)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		k = parsed
	}

	set, err := filter.Defaults(k).Apply(req.Values)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if err := ctrl.ApplyFilters(detach(r), set); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeSession(w, http.StatusOK, id, ctrl)
}

// ResetFilters handles DELETE /sessions/{id}/filters.
func (s *Server) ResetFilters(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := ctrl.ResetFilters(detach(r)); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeSession(w, http.StatusOK, id, ctrl)
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (string, *search.Controller, bool) {
	id := chi.URLParam(r, "id")
	ctrl, err := s.sessions.Get(id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return "", nil, false
	}
	return id, ctrl, true
}

// detach keeps request values but drops cancellation, so a client that
// disconnects mid-fetch does not blank the session's results.
func detach(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func writeSession(w http.ResponseWriter, status int, id string, ctrl *search.Controller) {
	state := ctrl.State()
	writeJSON(w, status, SessionResponse{ID: id, State: state, View: view.Build(state)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns the client-facing message for an error without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrSessionNotFound,
		domain.ErrTooManySessions,
		domain.ErrUnknownKind,
		domain.ErrPageOutOfRange,
		domain.ErrNoActiveQuery,
	}
	if errors.Is(err, domain.ErrInvalidFilter) {
		// Filter errors name the offending field and bound.
		return err.Error()
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}
