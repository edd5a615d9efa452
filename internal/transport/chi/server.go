// Package chi exposes the recommendation engine over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/uxforge/designrec/internal/corpus"
	"github.com/uxforge/designrec/internal/domain"
	"github.com/uxforge/designrec/internal/domain/bundle"
	"github.com/uxforge/designrec/internal/domain/signal"
	healthuc "github.com/uxforge/designrec/internal/usecase/health"
	"github.com/uxforge/designrec/internal/usecase/recommend"
)

// Error response codes returned to clients.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeNoGeneration     = "no_generation"
	codeCorpusLoadFailed = "corpus_load_failed"
	codeInternalError    = "internal_error"
)

// Recommender is the consumer interface for the pipeline (plain or cached).
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*bundle.Bundle, error)
}

// CorpusManager is the consumer interface for corpus lifecycle operations.
type CorpusManager interface {
	Current() (*corpus.Generation, error)
	Reload(ctx context.Context) (*corpus.Generation, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers.
type Server struct {
	recommender   Recommender
	manager       CorpusManager
	health        *healthuc.Service
	logger        *zap.Logger
	maxDeadline   time.Duration
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. maxDeadline caps the per-request
// deadline a caller may ask for via deadline_ms.
func NewServer(
	recommender Recommender,
	manager CorpusManager,
	health *healthuc.Service,
	maxDeadline time.Duration,
	logger *zap.Logger,
) *Server {
	s := &Server{
		recommender: recommender,
		manager:     manager,
		health:      health,
		logger:      logger,
		maxDeadline: maxDeadline,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrUnknownDomain, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrNoGeneration, http.StatusServiceUnavailable, codeNoGeneration),
		sentinelHandler(domain.ErrCorpusLoad, http.StatusInternalServerError, codeCorpusLoadFailed),
	}
	return s
}

// Routes registers all handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/api/v1/recommendations", s.CreateRecommendation)
	r.Get("/api/v1/corpus", s.GetCorpus)
	r.Post("/api/v1/corpus/reload", s.ReloadCorpus)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// recommendationRequest is the POST /recommendations body.
type recommendationRequest struct {
	Brief     string            `json:"brief"`
	Overrides map[string]string `json:"overrides,omitempty"`
	// DeadlineMS bounds the retrieval join; past it the bundle degrades to
	// popularity defaults instead of failing.
	DeadlineMS int `json:"deadline_ms,omitempty"`
}

// CreateRecommendation handles POST /api/v1/recommendations.
func (s *Server) CreateRecommendation(w http.ResponseWriter, r *http.Request) {
	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ctx := r.Context()
	if req.DeadlineMS > 0 {
		deadline := time.Duration(req.DeadlineMS) * time.Millisecond
		if deadline > s.maxDeadline {
			deadline = s.maxDeadline
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, deadline)
		defer cancel()
	}

	var overrides map[signal.Key]string
	if len(req.Overrides) > 0 {
		overrides = make(map[signal.Key]string, len(req.Overrides))
		for k, v := range req.Overrides {
			overrides[signal.Key(k)] = v
		}
	}

	b, err := s.recommender.Recommend(ctx, recommend.Request{
		Brief:     req.Brief,
		Overrides: overrides,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, b)
}

// corpusResponse describes the serving generation.
type corpusResponse struct {
	Generation string         `json:"generation"`
	Version    string         `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	Documents  map[string]int `json:"documents"`
}

// GetCorpus handles GET /api/v1/corpus.
func (s *Server) GetCorpus(w http.ResponseWriter, r *http.Request) {
	gen, err := s.manager.Current()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, corpusToResponse(gen))
}

// ReloadCorpus handles POST /api/v1/corpus/reload.
func (s *Server) ReloadCorpus(w http.ResponseWriter, r *http.Request) {
	gen, err := s.manager.Reload(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, corpusToResponse(gen))
}

func corpusToResponse(gen *corpus.Generation) corpusResponse {
	docs := make(map[string]int)
	for _, d := range gen.Domains() {
		docs[string(d)] = gen.DocCount(d)
	}
	return corpusResponse{
		Generation: gen.ID(),
		Version:    gen.Version(),
		CreatedAt:  gen.CreatedAt(),
		Documents:  docs,
	}
}

// healthResponse is the GET /health body.
type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidInput,
		domain.ErrUnknownDomain,
		domain.ErrNoGeneration,
		domain.ErrCorpusLoad,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
