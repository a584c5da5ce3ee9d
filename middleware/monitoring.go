package middleware

import (
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shoresquad_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shoresquad_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)
	rateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shoresquad_rate_limited_total",
			Help: "Total number of requests dropped by the rate limiter",
		},
	)

	ralliesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shoresquad_rallies_created_total",
			Help: "Total number of cleanup rallies created",
		},
	)
	ralliesJoined = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shoresquad_rallies_joined_total",
			Help: "Total number of rally joins",
		},
	)
	weatherFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shoresquad_weather_fetches_total",
			Help: "Weather provider fetches by outcome",
		},
		[]string{"outcome"},
	)
	liveFeedClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "shoresquad_live_feed_clients",
			Help: "Currently connected live feed sockets",
		},
	)
)

// InitPrometheus registers the metrics. Call this from main.go
func InitPrometheus() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(rateLimited)
	prometheus.MustRegister(ralliesCreated)
	prometheus.MustRegister(ralliesJoined)
	prometheus.MustRegister(weatherFetches)
	prometheus.MustRegister(liveFeedClients)
}

// Handlers bump the domain counters through these instead of touching the
// collectors directly.

func ObserveRallyCreated() { ralliesCreated.Inc() }

func ObserveRallyJoined() { ralliesJoined.Inc() }

func ObserveWeatherFetch(outcome string) { weatherFetches.WithLabelValues(outcome).Inc() }

func SetLiveFeedClients(n int64) { liveFeedClients.Set(float64(n)) }

// MonitorMiddleware wraps the router to track all request stats
func MonitorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Initialize with 200 OK in case WriteHeader isn't called explicitly
		ww := &responseWriter{w, http.StatusOK}

		next.ServeHTTP(ww, r)

		duration := time.Since(start).Seconds()

		// We use r.URL.Path. The API has one parameterized segment
		// (/rallies/{id}) so cardinality stays manageable; switch to
		// mux.CurrentRoute(r).GetPathTemplate() if that ever changes.
		httpRequestsTotal.WithLabelValues(r.URL.Path, r.Method, http.StatusText(ww.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.URL.Path, r.Method).Observe(duration)

		if ww.statusCode == http.StatusTooManyRequests {
			rateLimited.Inc()
		}
	})
}

// BasicAuthMiddleware protects /metrics
func BasicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()

		metricsUser := os.Getenv("METRICS_USER")
		metricsPass := os.Getenv("METRICS_PASS")

		if !ok || user != metricsUser || pass != metricsPass {
			w.Header().Set("WWW-Authenticate", `Basic realm="Metrics"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PprofSecurityMiddleware protects /debug/pprof
func PprofSecurityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Pprof-Secret") != os.Getenv("PPROF_SECRET") {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
