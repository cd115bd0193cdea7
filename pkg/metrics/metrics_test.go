package metrics

import (
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, vec interface {
	Write(*dto.Metric) error
}) float64 {
	t.Helper()
	var metric dto.Metric
	if err := vec.Write(&metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter != nil {
		return metric.Counter.GetValue()
	}
	return metric.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.FilesProcessed == nil {
		t.Error("FilesProcessed not initialized")
	}
	if r.Resolutions == nil {
		t.Error("Resolutions not initialized")
	}
	if r.HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordFile(t *testing.T) {
	r := NewRegistry()

	r.RecordFile("kegg", "ok")
	r.RecordFile("kegg", "ok")
	r.RecordFile("wikipathways", "error")

	ok, err := r.FilesProcessed.GetMetricWithLabelValues("kegg", "ok")
	if err != nil {
		t.Fatalf("failed to get metric: %v", err)
	}
	if got := counterValue(t, ok); got != 2 {
		t.Errorf("kegg ok counter = %v, want 2", got)
	}

	failed, err := r.FilesProcessed.GetMetricWithLabelValues("wikipathways", "error")
	if err != nil {
		t.Fatalf("failed to get metric: %v", err)
	}
	if got := counterValue(t, failed); got != 1 {
		t.Errorf("wikipathways error counter = %v, want 1", got)
	}
}

func TestAddResolutions(t *testing.T) {
	r := NewRegistry()

	r.AddResolutions("resolved", 7)
	r.AddResolutions("kept", 2)
	r.AddResolutions("failed", 0) // no-op, must not create a sample

	resolved, err := r.Resolutions.GetMetricWithLabelValues("resolved")
	if err != nil {
		t.Fatalf("failed to get metric: %v", err)
	}
	if got := counterValue(t, resolved); got != 7 {
		t.Errorf("resolved counter = %v, want 7", got)
	}

	metrics, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("failed to gather: %v", err)
	}
	for _, m := range metrics {
		if m.GetName() != "pathway_analyzer_resolutions_total" {
			continue
		}
		for _, sample := range m.GetMetric() {
			for _, label := range sample.GetLabel() {
				if label.GetValue() == "failed" {
					t.Error("zero-count outcome created a sample")
				}
			}
		}
	}
}

func TestSetGraphTotals(t *testing.T) {
	r := NewRegistry()

	r.SetGraphTotals(120, 340, 5)

	if got := counterValue(t, r.GraphNodesTotal); got != 120 {
		t.Errorf("GraphNodesTotal = %v, want 120", got)
	}
	if got := counterValue(t, r.GraphEdgesTotal); got != 340 {
		t.Errorf("GraphEdgesTotal = %v, want 340", got)
	}
	if got := counterValue(t, r.FeedbackLoops); got != 5 {
		t.Errorf("FeedbackLoops = %v, want 5", got)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	r := NewRegistry()

	r.RecordHTTPRequest("GET", "/api/statistics", "200", 100*time.Millisecond)
	r.RecordHTTPRequest("GET", "/api/statistics", "200", 50*time.Millisecond)

	counter, err := r.HTTPRequestsTotal.GetMetricWithLabelValues("GET", "/api/statistics", "200")
	if err != nil {
		t.Fatalf("failed to get metric: %v", err)
	}
	if got := counterValue(t, counter); got != 2 {
		t.Errorf("request counter = %v, want 2", got)
	}
}

func TestMetricNaming(t *testing.T) {
	r := NewRegistry()
	r.RecordFile("kegg", "ok")

	metrics, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	if len(metrics) == 0 {
		t.Fatal("no metrics registered")
	}
	for _, m := range metrics {
		if !strings.HasPrefix(m.GetName(), "pathway_analyzer_") {
			t.Errorf("metric %s does not have the pathway_analyzer_ prefix", m.GetName())
		}
	}
}
