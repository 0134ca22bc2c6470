package adapthttp

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type promMetrics struct {
	reg      *prometheus.Registry
	inFlight prometheus.Gauge
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	uploaded prometheus.Counter
	limited  prometheus.Counter
}

func newPromMetrics(reg *prometheus.Registry) *promMetrics {
	m := &promMetrics{
		reg: reg,
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "dockify",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of HTTP requests being served.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dockify",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		}, []string{"method", "path", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dockify",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "path"}),
		uploaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dockify",
			Name:      "metrics_uploaded_total",
			Help:      "Health readings accepted from clients.",
		}),
		limited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dockify",
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the login rate limiter.",
		}),
	}
	reg.MustRegister(m.inFlight, m.requests, m.duration, m.uploaded, m.limited)
	return m
}

func (m *promMetrics) handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func (m *promMetrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		m.inFlight.Inc()
		defer m.inFlight.Dec()

		next.ServeHTTP(rec, r)

		path := canonicalPath(r.URL.Path)
		m.requests.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		m.duration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// canonicalPath bounds label cardinality to the known routes.
func canonicalPath(p string) string {
	switch p {
	case "/api/v1/health", "/api/v1/config", "/api/v1/login", "/api/v1/register",
		"/api/v1/logout", "/api/v1/sso/login", "/api/v1/sso/callback",
		"/api/v1/metrics", "/api/v1/recommendation",
		"/api/v1/location/nearest", "/api/v1/location/hospitals":
		return p
	}
	if strings.HasPrefix(p, "/api/") {
		return "/api/other"
	}
	return "/other"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
