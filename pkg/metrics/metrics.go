// Package metrics exposes Prometheus instrumentation for the analyzer:
// batch progress, resolution outcomes, graph sizes, and HTTP traffic.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metrics for the application.
type Registry struct {
	FilesProcessed   *prometheus.CounterVec
	Resolutions      *prometheus.CounterVec
	GraphNodesTotal  prometheus.Gauge
	GraphEdgesTotal  prometheus.Gauge
	FeedbackLoops    prometheus.Gauge
	AnalysisDuration prometheus.Histogram

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide metrics registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a metrics registry with all metrics initialized.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.FilesProcessed = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathway_analyzer_files_processed_total",
			Help: "Pathway files processed, by source format and outcome",
		},
		[]string{"source", "status"},
	)

	r.Resolutions = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathway_analyzer_resolutions_total",
			Help: "Identifier resolutions, by outcome",
		},
		[]string{"outcome"},
	)

	r.GraphNodesTotal = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "pathway_analyzer_graph_nodes_total",
			Help: "Nodes imported across all pathway graphs in the last run",
		},
	)

	r.GraphEdgesTotal = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "pathway_analyzer_graph_edges_total",
			Help: "Edges imported across all pathway graphs in the last run",
		},
	)

	r.FeedbackLoops = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "pathway_analyzer_feedback_loops_total",
			Help: "Feedback loops found across all pathway graphs in the last run",
		},
	)

	r.AnalysisDuration = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pathway_analyzer_analysis_duration_seconds",
			Help:    "Wall time of a full analysis run",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		},
	)

	r.HTTPRequestsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathway_analyzer_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestDuration = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pathway_analyzer_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry, for
// mounting the /metrics handler.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// RecordFile counts one processed pathway file.
func (r *Registry) RecordFile(source, status string) {
	r.FilesProcessed.WithLabelValues(source, status).Inc()
}

// AddResolutions counts identifier resolutions for one outcome.
func (r *Registry) AddResolutions(outcome string, n int) {
	if n > 0 {
		r.Resolutions.WithLabelValues(outcome).Add(float64(n))
	}
}

// SetGraphTotals publishes the size of the last run's combined graphs.
func (r *Registry) SetGraphTotals(nodes, edges, loops int) {
	r.GraphNodesTotal.Set(float64(nodes))
	r.GraphEdgesTotal.Set(float64(edges))
	r.FeedbackLoops.Set(float64(loops))
}

// ObserveAnalysis records the wall time of one analysis run.
func (r *Registry) ObserveAnalysis(d time.Duration) {
	r.AnalysisDuration.Observe(d.Seconds())
}

// RecordHTTPRequest records an HTTP request with its duration.
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
