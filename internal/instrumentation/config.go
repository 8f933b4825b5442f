package instrumentation

import (
	"os"
	"strconv"
)

// Config holds the configuration for OpenTelemetry instrumentation.
type Config struct {
	// ServiceName is the name of the service (default: spruthub-mcp-server)
	ServiceName string

	// ServiceVersion is the version of the service
	ServiceVersion string

	// Enabled determines if instrumentation is active (default: false for zero overhead)
	// Set to true via INSTRUMENTATION_ENABLED=true to enable metrics and tracing
	Enabled bool

	// MetricsExporter specifies the metrics exporter type
	// Options: "prometheus", "otlp", "stdout" (default: "prometheus")
	MetricsExporter string

	// TracingExporter specifies the tracing exporter type
	// Options: "otlp", "stdout", "none" (default: "none")
	TracingExporter string

	// OTLPEndpoint is the OTLP collector endpoint
	// Example: "http://localhost:4318"
	OTLPEndpoint string

	// OTLPInsecure controls whether to use insecure HTTP for OTLP export.
	// Set to true only for local development against unencrypted collectors.
	OTLPInsecure bool

	// TraceSamplingRate is the sampling rate for traces (0.0 to 1.0, default: 0.1)
	TraceSamplingRate float64

	// PrometheusEndpoint is the path for the Prometheus metrics endpoint (default: "/metrics")
	PrometheusEndpoint string
}

// Exporter names.
const (
	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"
)

// DefaultConfig returns a Config with sensible defaults based on environment variables.
func DefaultConfig() Config {
	return Config{
		ServiceName:        envString("OTEL_SERVICE_NAME", "spruthub-mcp-server"),
		ServiceVersion:     "unknown",
		Enabled:            envBool("INSTRUMENTATION_ENABLED", false),
		MetricsExporter:    envString("METRICS_EXPORTER", ExporterPrometheus),
		TracingExporter:    envString("TRACING_EXPORTER", ExporterNone),
		OTLPEndpoint:       envString("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:       envBool("OTEL_EXPORTER_OTLP_INSECURE", false),
		TraceSamplingRate:  envFloat("OTEL_TRACES_SAMPLER_ARG", 0.1),
		PrometheusEndpoint: envString("PROMETHEUS_ENDPOINT", "/metrics"),
	}
}

// Validate checks if the configuration is valid.
// Validation is lenient: unknown exporters fall back when the provider is built.
func (c *Config) Validate() error {
	if c.TraceSamplingRate < 0 {
		c.TraceSamplingRate = 0
	}
	if c.TraceSamplingRate > 1 {
		c.TraceSamplingRate = 1
	}
	return nil
}

// envOr parses the environment variable key with parse, returning fallback
// when the variable is unset or does not parse.
func envOr[T any](key string, fallback T, parse func(string) (T, error)) T {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := parse(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envString(key, fallback string) string {
	return envOr(key, fallback, func(v string) (string, error) { return v, nil })
}

func envBool(key string, fallback bool) bool {
	return envOr(key, fallback, strconv.ParseBool)
}

func envFloat(key string, fallback float64) float64 {
	return envOr(key, fallback, func(v string) (float64, error) { return strconv.ParseFloat(v, 64) })
}

// Constants for metric label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"

	// Hub operation types
	OperationListAccessories = "list_accessories"
	OperationListRooms       = "list_rooms"
	OperationListHubs        = "list_hubs"
	OperationSendCommand     = "send_command"
)
