// Package server exposes the pipeline over HTTP together with health and
// metrics endpoints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "promptcraft/internal/common/errors"
	"promptcraft/internal/common/logger"
	"promptcraft/internal/common/validation"
	"promptcraft/internal/history"
	"promptcraft/internal/prompt/stok"
)

const maxBodyBytes = 64 << 10

// Enhancer runs the prompt pipeline.
type Enhancer interface {
	Enhance(ctx context.Context, query, mode string) (string, stok.PipelineResult, error)
}

// HistoryReader lists stored results.
type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]history.Entry, error)
}

// ReadinessCheck reports whether a dependency is reachable.
type ReadinessCheck func(ctx context.Context) error

type Server struct {
	enhancer Enhancer
	history  HistoryReader
	checks   map[string]ReadinessCheck
	logger   logger.Logger
	mux      *http.ServeMux

	requestTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithHistory enables GET /history.
func WithHistory(h HistoryReader) Option {
	return func(s *Server) { s.history = h }
}

// WithRequestTimeout bounds each POST /analyze enhancement. Zero disables
// the bound.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) { s.requestTimeout = d }
}

// WithReadinessCheck adds a named check to GET /ready.
func WithReadinessCheck(name string, check ReadinessCheck) Option {
	return func(s *Server) { s.checks[name] = check }
}

func New(enhancer Enhancer, log logger.Logger, opts ...Option) *Server {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	s := &Server{
		enhancer: enhancer,
		checks:   make(map[string]ReadinessCheck),
		logger:   log.Named("http"),
		mux:      http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("POST /analyze", s.handleAnalyze)
	s.mux.HandleFunc("GET /history", s.handleHistory)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /ready", s.handleReady)
	s.mux.Handle("GET /metrics", promhttp.Handler())
	return s
}

// Handler returns the routed handler wrapped with CORS.
func (s *Server) Handler() http.Handler {
	return cors(s.mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", map[string]interface{}{"address": addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// ==========================
// Handlers
// ==========================

type errorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code,omitempty"`
	Details []string `json:"details,omitempty"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to PromptCraft backend!"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var doc map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "request body must be a JSON object",
			Code:  string(apperrors.ErrCodeInvalidPrompt),
		})
		return
	}

	result, err := validation.ValidatePromptRequest(doc)
	if err != nil {
		s.logger.Error("Request validation failed", map[string]interface{}{"error": err})
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "validation unavailable"})
		return
	}
	if !result.Valid {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "invalid request",
			Code:    string(apperrors.ErrCodeInvalidPrompt),
			Details: result.GetErrorMessages(),
		})
		return
	}

	prompt, _ := doc["prompt"].(string)
	mode, _ := doc["mode"].(string)

	ctx := r.Context()
	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	id, enhancement, err := s.enhancer.Enhance(ctx, prompt, mode)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	w.Header().Set("X-Request-ID", id)
	writeJSON(w, http.StatusOK, enhancement)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "history is disabled"})
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	entries, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("Failed to read history", map[string]interface{}{"error": err})
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "history unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	failures := make(map[string]string)
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			failures[name] = err.Error()
		}
	}

	if len(failures) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":   "not_ready",
			"failures": failures,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// ==========================
// Helpers
// ==========================

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "*")
		h.Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
