package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/udisondev/essence/internal/metrics"
	"github.com/udisondev/essence/internal/simulation"
)

// Results is where the server reads search results from.
// *simulation.Runner satisfies it.
type Results interface {
	Result(configID string) (*simulation.Result, bool)
	Results() []*simulation.Result
}

// Server exposes health, metrics and search results over HTTP.
type Server struct {
	httpServer *http.Server
}

// New creates a server listening on addr.
func New(addr string, results Results) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(results),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// NewRouter builds the HTTP routes.
func NewRouter(results Results) http.Handler {
	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handleHealthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/results", func(r chi.Router) {
		r.Get("/", handleListResults(results))
		r.Get("/{configID}", handleGetResult(results))
		r.Get("/{configID}/levels/{level}", handleGetLevel(results))
	})
	return r
}

// Start serves until Stop is called.
func (s *Server) Start() error {
	slog.Info("http server starting", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Serve serves on an existing listener until Stop is called.
func (s *Server) Serve(l net.Listener) error {
	if err := s.httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

type resultSummary struct {
	ConfigID   string  `json:"configId"`
	ConfigName string  `json:"configName,omitempty"`
	RunID      string  `json:"runId"`
	StartLevel int     `json:"startLevel"`
	EndLevel   int     `json:"endLevel"`
	FromCache  bool    `json:"fromCache"`
	BestDPS    float64 `json:"bestDps"`
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleListResults(results Results) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		all := results.Results()
		out := make([]resultSummary, 0, len(all))
		for _, res := range all {
			s := resultSummary{
				ConfigID:   res.ConfigID,
				ConfigName: res.ConfigName,
				RunID:      res.RunID,
				StartLevel: res.StartLevel,
				EndLevel:   res.EndLevel,
				FromCache:  res.FromCache,
			}
			for _, lr := range res.Levels {
				if lr.Found {
					s.BestDPS = max(s.BestDPS, lr.Stats.DPS)
				}
			}
			out = append(out, s)
		}
		respondJSON(w, http.StatusOK, out)
	}
}

func handleGetResult(results Results) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, ok := results.Result(chi.URLParam(r, "configID"))
		if !ok {
			respondError(w, http.StatusNotFound, "no result for config")
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}

func handleGetLevel(results Results) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		level, err := strconv.Atoi(chi.URLParam(r, "level"))
		if err != nil {
			respondError(w, http.StatusBadRequest, "level must be an integer")
			return
		}
		res, ok := results.Result(chi.URLParam(r, "configID"))
		if !ok {
			respondError(w, http.StatusNotFound, "no result for config")
			return
		}
		lr, ok := res.Level(level)
		if !ok {
			respondError(w, http.StatusNotFound, "level outside searched range")
			return
		}
		respondJSON(w, http.StatusOK, lr)
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/healthz") || strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start))
	})
}
