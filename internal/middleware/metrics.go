package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every ScamShield collector plus the Go runtime ones.
var Registry = prometheus.NewRegistry()

var (
	factory = promauto.With(Registry)

	requestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scamshield",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method and status class.",
	}, []string{"method", "status"})

	requestsInFlight = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "scamshield",
		Name:      "http_requests_in_flight",
		Help:      "HTTP requests currently being served.",
	})

	requestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "scamshield",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	scansTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scamshield",
		Name:      "scans_total",
		Help:      "Scored scans by risk level and source.",
	}, []string{"risk_level", "source"})

	fallbacksTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "scamshield",
		Name:      "model_fallbacks_total",
		Help:      "Scans answered by the heuristic after the model backend failed.",
	})

	reportsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scamshield",
		Name:      "reports_total",
		Help:      "Submitted scam reports by channel.",
	}, []string{"channel"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// ObserveScan counts one scored scan
func ObserveScan(level, source string, offline bool) {
	scansTotal.WithLabelValues(level, source).Inc()
	if offline {
		fallbacksTotal.Inc()
	}
}

// IncrementReports counts one submitted report
func IncrementReports(channel string) {
	reportsTotal.WithLabelValues(channel).Inc()
}

// MetricsMiddleware tracks request metrics
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestsInFlight.Inc()
		defer requestsInFlight.Dec()
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		requestsTotal.WithLabelValues(r.Method, statusClass(wrapped.statusCode)).Inc()
		requestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}

// MetricsHandler serves the Prometheus exposition format
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}
