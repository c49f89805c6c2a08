// Package api serves the explorer and simulator over JSON.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/afmlab/internal/activity"
	"github.com/abhisek/afmlab/internal/explorer"
	"github.com/abhisek/afmlab/internal/simulator"
	"github.com/abhisek/afmlab/internal/store"
)

// simSession is a simulator page with its presentation-only highlights.
type simSession struct {
	state      simulator.State
	highlights simulator.Highlights
}

// Server holds per-page sessions in memory. Every session starts from fresh
// state; the recorder only appends to the activity log.
type Server struct {
	cfg     Config
	rec     *activity.Recorder
	metrics *metrics
	now     func() time.Time

	explorers  *registry[explorer.State]
	simulators *registry[simSession]
}

// New creates a Server. rec may be nil to skip recording.
func New(cfg Config, rec *activity.Recorder) *Server {
	if rec == nil {
		rec = activity.Disabled()
	}
	s := &Server{
		cfg:     cfg,
		rec:     rec,
		metrics: newMetrics(),
		now:     time.Now,
	}
	clock := func() time.Time { return s.now() }
	s.explorers = newRegistry[explorer.State](cfg.SessionTTL, cfg.MaxSessions, clock, s.explorerEnded)
	s.simulators = newRegistry[simSession](cfg.SessionTTL, cfg.MaxSessions, clock, s.simulatorEnded)
	return s
}

// explorerEnded records the end of an explorer session that expired or was
// evicted.
func (s *Server) explorerEnded(id string, final explorer.State) {
	ctx := context.Background()
	s.rec.SaveSnapshot(ctx, id, store.PageExplorer, final.Snapshot())
	s.rec.EndPage(ctx, id, store.PageExplorer)
	s.trackSessions()
}

// simulatorEnded records the end of a simulator session that expired or was
// evicted.
func (s *Server) simulatorEnded(id string, final simSession) {
	ctx := context.Background()
	s.rec.SaveSnapshot(ctx, id, store.PageSimulator, final.state.Snapshot(nil, s.now()))
	s.rec.EndPage(ctx, id, store.PageSimulator)
	s.trackSessions()
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	if s.cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))
	r.Use(s.metrics.instrument)

	r.Route("/afm-explorer", func(er chi.Router) {
		er.Post("/", s.createExplorer)
		er.Get("/{id}", s.getExplorer)
		er.Delete("/{id}", s.endExplorer)
		er.Post("/{id}/answer", s.answerExplorer)
		er.Post("/{id}/next", s.nextExplorer)
	})
	r.Route("/afm-simulator", func(sr chi.Router) {
		sr.Post("/", s.createSimulator)
		sr.Get("/{id}", s.getSimulator)
		sr.Delete("/{id}", s.endSimulator)
		sr.Post("/{id}/params", s.setSimulatorParam)
		sr.Post("/{id}/responses", s.simulateResponse)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// Run serves on cfg.Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// sessionResp is the body of every session endpoint.
type sessionResp[T any] struct {
	ID       string `json:"id"`
	Snapshot T      `json:"snapshot"`
}

func (s *Server) trackSessions() {
	s.metrics.sessions.WithLabelValues(store.PageExplorer).Set(float64(s.explorers.len()))
	s.metrics.sessions.WithLabelValues(store.PageSimulator).Set(float64(s.simulators.len()))
}
