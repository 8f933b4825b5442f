// Package instrumentation provides OpenTelemetry instrumentation for the
// Sprut.hub MCP server.
//
// # Metrics
//
// Server/HTTP Metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//
// Tool Metrics:
//   - mcp_tool_invocations_total: Counter of tool calls by tool and status
//   - mcp_tool_invocation_duration_seconds: Histogram of tool call durations
//
// Hub Metrics:
//   - spruthub_operations_total: Counter of hub requests by operation and status
//   - spruthub_operation_duration_seconds: Histogram of hub request durations
//
// Response Shaping Metrics:
//   - mcp_response_size_characters: Histogram of response sizes before truncation
//   - mcp_response_truncations_total: Counter of truncated responses by tool
//   - mcp_smart_defaults_applied_total: Counter of smart-default rules by tool and rule
//
// All labels are bounded: tool names, operation names, rule names and status.
// Accessory and room IDs only appear on spans and in the audit log.
//
// # Tracing
//
// Spans are created for MCP tool invocations (server kind) and hub requests
// (client kind). Trace IDs are copied into audit log records for correlation.
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: false)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: spruthub-mcp-server)
//
// Stdout exporters write to stderr, since stdout carries the stdio MCP transport.
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordHubOperation(ctx, instrumentation.OperationListAccessories,
//		instrumentation.StatusSuccess, time.Since(start))
package instrumentation
