package server

import (
	"errors"
	"log/slog"
	"time"

	"github.com/shady2k/spruthub-mcp-server/internal/instrumentation"
	"github.com/shady2k/spruthub-mcp-server/internal/spruthub"
	"github.com/shady2k/spruthub-mcp-server/internal/tools/output"
)

// DefaultShutdownTimeout bounds how long transports wait for in-flight requests on shutdown.
const DefaultShutdownTimeout = 30 * time.Second

// Option is a functional option for configuring ServerContext.
type Option func(*ServerContext) error

// WithHubClient sets the Sprut.hub client for the ServerContext.
func WithHubClient(client spruthub.Client) Option {
	return func(sc *ServerContext) error {
		if client == nil {
			return ErrMissingHubClient
		}
		sc.hubClient = client
		return nil
	}
}

// WithLogger sets the logger for the ServerContext.
func WithLogger(logger *slog.Logger) Option {
	return func(sc *ServerContext) error {
		if logger == nil {
			return ErrMissingLogger
		}
		sc.logger = logger
		return nil
	}
}

// WithConfig sets the configuration for the ServerContext.
func WithConfig(config *Config) Option {
	return func(sc *ServerContext) error {
		if config == nil {
			return ErrMissingConfig
		}
		sc.config = config.Clone()
		if sc.config.Output == nil {
			sc.config.Output = output.DefaultConfig()
		}
		return nil
	}
}

// WithReadOnly enables or disables read-only mode.
func WithReadOnly(enabled bool) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.ReadOnly = enabled
		return nil
	}
}

// WithOutputConfig sets the response-shaping limits.
func WithOutputConfig(cfg *output.Config) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		if cfg == nil {
			cfg = output.DefaultConfig()
		}
		sc.config.Output = cfg.Clone()
		return nil
	}
}

// WithInstrumentationProvider sets the OpenTelemetry instrumentation provider.
func WithInstrumentationProvider(provider *instrumentation.Provider) Option {
	return func(sc *ServerContext) error {
		sc.instrumentationProvider = provider
		return nil
	}
}

// Error definitions for ServerContext validation and operations.
var (
	ErrMissingHubClient = errors.New("sprut.hub client is required")
	ErrMissingLogger    = errors.New("logger is required")
	ErrMissingConfig    = errors.New("configuration is required")
)
