package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const subsystem = "tidewidget"

var (
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "request_latency",
			Subsystem: subsystem,
			Help:      "HTTP request latencies in seconds.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 4.0, 8.0, 16.0, 32.0},
		},
		[]string{"verb", "path", "code"},
	)

	upstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "upstream_latency",
			Subsystem: subsystem,
			Help:      "Latency of requests to the tide feed upstream in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 5.0},
		},
		[]string{"target", "code"},
	)

	feedErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "feed_errors_total",
			Subsystem: subsystem,
			Help:      "Feeds and catalogs that could not be parsed, by kind of defect.",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(
		requestLatency,
		upstreamLatency,
		feedErrors,
	)
}

func ObserveRequestLatency(verb, path, code string, latency float64) {
	requestLatency.With(prometheus.Labels{
		"code": code,
		"verb": verb,
		"path": path,
	}).Observe(latency)
}

func ObserveUpstreamLatency(target, code string, latency float64) {
	upstreamLatency.With(prometheus.Labels{
		"target": target,
		"code":   code,
	}).Observe(latency)
}

// CountFeedError records one rejected feed.
func CountFeedError(kind string) {
	feedErrors.With(prometheus.Labels{"kind": kind}).Inc()
}

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// LatencyHandler observes the latency of every request served by next.
// pathOf maps a request to its path label, usually a route template.
func LatencyHandler(pathOf func(*http.Request) string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := time.Now()
		verb := r.Method
		path := pathOf(r)
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}

		// Any panics in next are reported as 500 errors and then re-thrown.
		defer func() {
			if err := recover(); err != nil {
				ObserveRequestLatency(verb, path, "500", time.Since(t).Seconds())
				panic(err)
			}
			ObserveRequestLatency(verb, path, strconv.Itoa(rec.code), time.Since(t).Seconds())
		}()

		next.ServeHTTP(rec, r)
	})
}
