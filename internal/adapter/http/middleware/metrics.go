package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Metrics middleware records HTTP metrics.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

const householdPrefix = "/api/v1/households/"

// normalizePath replaces path IDs with placeholders to keep metric label
// cardinality bounded. Every API route is household scoped:
// /api/v1/households/hh-1/transactions/tx-1 -> /api/v1/households/:householdID/transactions/:id
func normalizePath(path string) string {
	if !strings.HasPrefix(path, householdPrefix) {
		return path
	}

	segments := strings.Split(path[len(householdPrefix):], "/")
	if len(segments) == 0 || segments[0] == "" {
		return path
	}
	segments[0] = ":householdID"

	// resource collections follow the household segment; the segment after
	// a collection name is an ID, except for fixed report names
	for i := 2; i < len(segments); i += 2 {
		if segments[i] == "" {
			continue
		}
		if segments[i-1] == "reports" {
			break
		}
		segments[i] = ":id"
	}

	return householdPrefix + strings.Join(segments, "/")
}
