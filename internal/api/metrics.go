package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Intent outcomes.
const (
	outcomeApplied  = "applied"
	outcomeNoop     = "noop"
	outcomeRejected = "rejected"
)

type metrics struct {
	registry *prometheus.Registry

	intents   *prometheus.CounterVec
	responses *prometheus.CounterVec
	sessions  *prometheus.GaugeVec
	duration  *prometheus.HistogramVec
}

// newMetrics registers collectors on a private registry so several servers
// can coexist in one process.
func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &metrics{
		registry: reg,
		intents: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "afmlab_intents_total",
				Help: "Page intents by outcome",
			},
			[]string{"page", "intent", "outcome"},
		),
		responses: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "afmlab_simulated_responses_total",
				Help: "Simulated responses by correctness",
			},
			[]string{"correct"},
		),
		sessions: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "afmlab_sessions_active",
				Help: "Live page sessions",
			},
			[]string{"page"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "afmlab_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *metrics) intent(page, intent, outcome string) {
	m.intents.WithLabelValues(page, intent, outcome).Inc()
}

// instrument records request latency labelled by chi route pattern.
func (m *metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.duration.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}
