// Package metrics defines the Prometheus collectors of the analysis service
// and the HTTP middleware that feeds them.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its registry so several instances can coexist (tests, CLI).
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	AnalysisRunsTotal   *prometheus.CounterVec
	AnalysisDuration    prometheus.Histogram
	CouponsLoaded       prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		AnalysisRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coupon_analysis_runs_total",
				Help: "Analysis runs by result (ok, error).",
			},
			[]string{"result"},
		),
		AnalysisDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "coupon_analysis_duration_seconds",
				Help:    "Time to load the source and compute the report.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
		),
		CouponsLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "coupon_analysis_coupons_loaded",
				Help: "Number of coupons read by the most recent successful run.",
			},
		),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AnalysisRunsTotal,
		m.AnalysisDuration,
		m.CouponsLoaded,
	)
	return m
}

// ObserveAnalysis records one analysis run.
func (m *Metrics) ObserveAnalysis(duration time.Duration, coupons int, err error) {
	m.AnalysisDuration.Observe(duration.Seconds())
	if err != nil {
		m.AnalysisRunsTotal.WithLabelValues("error").Inc()
		return
	}
	m.AnalysisRunsTotal.WithLabelValues("ok").Inc()
	m.CouponsLoaded.Set(float64(coupons))
}

// Handler returns the Prometheus scrape handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// UnmatchedPath labels requests no route pattern matched.
const UnmatchedPath = "unmatched"

// Middleware records HTTP request count and latency. It must wrap an
// http.ServeMux: requests are labelled by the matched route pattern so the
// label set stays bounded whatever URLs clients send.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		path := routeLabel(r.Pattern)
		m.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(sw.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// routeLabel drops the method and host from a mux pattern such as
// "GET /api/v1/analysis".
func routeLabel(pattern string) string {
	if i := strings.Index(pattern, "/"); i >= 0 {
		return pattern[i:]
	}
	return UnmatchedPath
}

// statusWriter wraps http.ResponseWriter to capture the response status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (sw *statusWriter) WriteHeader(code int) {
	if !sw.wroteHeader {
		sw.status = code
		sw.wroteHeader = true
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if !sw.wroteHeader {
		sw.wroteHeader = true
	}
	return sw.ResponseWriter.Write(b)
}
