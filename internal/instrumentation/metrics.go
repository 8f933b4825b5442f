package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
const (
	attrMethod    = "method"
	attrPath      = "path"
	attrStatus    = "status"
	attrOperation = "operation"
	attrTool      = "tool"
	attrRule      = "rule"
)

var durationBuckets = []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0}

// Metrics provides methods for recording observability metrics.
// A nil *Metrics records nothing.
type Metrics struct {
	// HTTP metrics
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram

	// Tool metrics
	toolInvocationsTotal   metric.Int64Counter
	toolInvocationDuration metric.Float64Histogram

	// Hub metrics
	hubOperationsTotal   metric.Int64Counter
	hubOperationDuration metric.Float64Histogram

	// Response shaping metrics
	responseSize        metric.Int64Histogram
	responseTruncations metric.Int64Counter
	smartDefaultsTotal  metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.toolInvocationsTotal, err = meter.Int64Counter(
		"mcp_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocations_total counter: %w", err)
	}

	m.toolInvocationDuration, err = meter.Float64Histogram(
		"mcp_tool_invocation_duration_seconds",
		metric.WithDescription("MCP tool invocation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocation_duration_seconds histogram: %w", err)
	}

	m.hubOperationsTotal, err = meter.Int64Counter(
		"spruthub_operations_total",
		metric.WithDescription("Total number of Sprut.hub requests"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create spruthub_operations_total counter: %w", err)
	}

	m.hubOperationDuration, err = meter.Float64Histogram(
		"spruthub_operation_duration_seconds",
		metric.WithDescription("Sprut.hub request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create spruthub_operation_duration_seconds histogram: %w", err)
	}

	m.responseSize, err = meter.Int64Histogram(
		"mcp_response_size_characters",
		metric.WithDescription("Serialised size of tool responses before truncation"),
		metric.WithUnit("{character}"),
		metric.WithExplicitBucketBoundaries(1000, 5000, 10000, 30000, 50000, 100000, 250000),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_response_size_characters histogram: %w", err)
	}

	m.responseTruncations, err = meter.Int64Counter(
		"mcp_response_truncations_total",
		metric.WithDescription("Total number of truncated tool responses"),
		metric.WithUnit("{response}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_response_truncations_total counter: %w", err)
	}

	m.smartDefaultsTotal, err = meter.Int64Counter(
		"mcp_smart_defaults_applied_total",
		metric.WithDescription("Total number of smart-default rules applied"),
		metric.WithUnit("{rule}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_smart_defaults_applied_total counter: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m == nil || m.httpRequestsTotal == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	)
	m.httpRequestsTotal.Add(ctx, 1, attrs)
	m.httpRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordToolInvocation records a completed MCP tool call.
func (m *Metrics) RecordToolInvocation(ctx context.Context, tool, status string, duration time.Duration) {
	if m == nil || m.toolInvocationsTotal == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrTool, tool),
		attribute.String(attrStatus, status),
	)
	m.toolInvocationsTotal.Add(ctx, 1, attrs)
	m.toolInvocationDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordHubOperation records a request to the hub with its status and duration.
func (m *Metrics) RecordHubOperation(ctx context.Context, operation, status string, duration time.Duration) {
	if m == nil || m.hubOperationsTotal == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	)
	m.hubOperationsTotal.Add(ctx, 1, attrs)
	m.hubOperationDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordResponseSize records the measured size of a tool response.
func (m *Metrics) RecordResponseSize(ctx context.Context, tool string, size int) {
	if m == nil || m.responseSize == nil {
		return
	}
	m.responseSize.Record(ctx, int64(size), metric.WithAttributes(attribute.String(attrTool, tool)))
}

// RecordTruncation records a truncated tool response.
func (m *Metrics) RecordTruncation(ctx context.Context, tool string) {
	if m == nil || m.responseTruncations == nil {
		return
	}
	m.responseTruncations.Add(ctx, 1, metric.WithAttributes(attribute.String(attrTool, tool)))
}

// RecordSmartDefault records one applied smart-default rule.
func (m *Metrics) RecordSmartDefault(ctx context.Context, tool, rule string) {
	if m == nil || m.smartDefaultsTotal == nil {
		return
	}
	m.smartDefaultsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrTool, tool),
		attribute.String(attrRule, rule),
	))
}
