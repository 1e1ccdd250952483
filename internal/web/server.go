package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"querybench/internal/metrics"
	"querybench/internal/simulate"
	"querybench/internal/telemetry"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

//go:embed static/*
var staticFiles embed.FS

// Server exposes the simulated benchmark over HTTP
type Server struct {
	sampler simulate.Sampler
	metrics *metrics.Metrics
	logger  *slog.Logger
	srv     *http.Server
}

// NewServer creates a new web server bound to addr.
// A nil m gets metrics on a private registry.
func NewServer(sampler simulate.Sampler, m *metrics.Metrics, addr string) *Server {
	if m == nil {
		m = metrics.NewMetrics(nil)
	}
	s := &Server{
		sampler: sampler,
		metrics: m,
		logger:  telemetry.Component("web"),
	}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(s.metrics.RequestTrackingMiddleware)

	r.Get("/", s.handleHome)
	r.Post("/api/benchmark", s.handleBenchmark)
	r.Get("/api/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	return r
}

// Start listens until Stop is called. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("starting benchmark API", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleBenchmark(w http.ResponseWriter, r *http.Request) {
	s.logger.Info("running benchmark")
	trial, err := s.sampler.Sample(r.Context())
	if err != nil {
		s.logger.Error("benchmark failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	s.metrics.ObserveTrial(trial)
	s.logger.Info("benchmark finished", "results", trial)
	writeJSON(w, http.StatusOK, trial)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "API running",
	})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	page, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "page not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
