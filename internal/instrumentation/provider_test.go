package instrumentation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{ServiceName: "test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	if provider.Enabled() {
		t.Error("expected provider to be disabled")
	}
	if provider.Metrics() == nil {
		t.Fatal("expected no-op metrics to be available")
	}
	if provider.AuditLogger() == nil {
		t.Error("expected an audit logger")
	}

	// No-op instruments accept records.
	provider.Metrics().RecordTruncation(context.Background(), "tool")

	rec := httptest.NewRecorder()
	provider.PrometheusHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 without a Prometheus exporter, got %d", rec.Code)
	}
}

func TestNewProvider_Prometheus(t *testing.T) {
	config := Config{
		ServiceName:       "test",
		ServiceVersion:    "1.0.0",
		Enabled:           true,
		MetricsExporter:   ExporterPrometheus,
		TracingExporter:   ExporterNone,
		TraceSamplingRate: 1,
	}
	provider, err := NewProvider(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	if !provider.Enabled() {
		t.Error("expected provider to be enabled")
	}

	provider.Metrics().RecordHubOperation(context.Background(), OperationListAccessories, StatusSuccess, time.Millisecond)

	rec := httptest.NewRecorder()
	provider.PrometheusHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "spruthub_operations_total") {
		t.Errorf("expected spruthub_operations_total in scrape output:\n%s", rec.Body.String())
	}
}

func TestNewProvider_TwoPrometheusProviders(t *testing.T) {
	config := Config{ServiceName: "test", Enabled: true, MetricsExporter: ExporterPrometheus}

	first, err := NewProvider(context.Background(), config)
	if err != nil {
		t.Fatalf("first provider: %v", err)
	}
	defer func() { _ = first.Shutdown(context.Background()) }()

	second, err := NewProvider(context.Background(), config)
	if err != nil {
		t.Fatalf("second provider should not clash with the first: %v", err)
	}
	defer func() { _ = second.Shutdown(context.Background()) }()
}

func TestProvider_NilSafe(t *testing.T) {
	var provider *Provider
	if provider.Enabled() {
		t.Error("nil provider should not be enabled")
	}
	if provider.Metrics() != nil {
		t.Error("nil provider should have nil metrics")
	}
	if err := provider.Shutdown(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
