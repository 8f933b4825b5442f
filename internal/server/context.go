package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shady2k/spruthub-mcp-server/internal/instrumentation"
	"github.com/shady2k/spruthub-mcp-server/internal/spruthub"
	"github.com/shady2k/spruthub-mcp-server/internal/tools/output"
)

// ServerContext encapsulates all dependencies needed by the MCP server
// and provides a clean abstraction for dependency injection and lifecycle management.
type ServerContext struct {
	// Core dependencies
	hubClient spruthub.Client
	logger    *slog.Logger
	config    *Config

	// outputProcessor is built once from config.Output when the context is created.
	outputProcessor *output.Processor

	instrumentationProvider *instrumentation.Provider

	// Context management
	ctx    context.Context
	cancel context.CancelFunc

	// Lifecycle management
	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new ServerContext with default values.
// Use the provided functional options to customize the context.
func NewServerContext(ctx context.Context, opts ...Option) (*ServerContext, error) {
	serverCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:    serverCtx,
		cancel: cancel,
		config: NewDefaultConfig(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(sc); err != nil {
			cancel()
			return nil, err
		}
	}

	if err := sc.validate(); err != nil {
		cancel()
		return nil, err
	}

	var processorOpts []output.ProcessorOption
	if metrics := sc.instrumentationProvider.Metrics(); metrics != nil {
		processorOpts = append(processorOpts, output.WithObserver(metrics))
	}
	sc.outputProcessor = output.NewProcessor(sc.config.Output, sc.logger, processorOpts...)

	return sc, nil
}

// Context returns the server context for cancellation and deadlines.
func (sc *ServerContext) Context() context.Context {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.ctx
}

// HubClient returns the Sprut.hub client.
func (sc *ServerContext) HubClient() spruthub.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.hubClient
}

// Logger returns the structured logger.
func (sc *ServerContext) Logger() *slog.Logger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.logger
}

// Config returns the server configuration.
func (sc *ServerContext) Config() *Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config
}

// OutputProcessor returns the response-shaping processor built from the output configuration.
func (sc *ServerContext) OutputProcessor() *output.Processor {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.outputProcessor
}

// InstrumentationProvider returns the OpenTelemetry provider, or nil when none is configured.
func (sc *ServerContext) InstrumentationProvider() *instrumentation.Provider {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.instrumentationProvider
}

// RecordHubOperation records metrics for one request to the hub.
// It is a no-op without an instrumentation provider.
func (sc *ServerContext) RecordHubOperation(ctx context.Context, operation, status string, duration time.Duration) {
	sc.InstrumentationProvider().Metrics().RecordHubOperation(ctx, operation, status, duration)
}

// Shutdown gracefully shuts down the server context.
// This cancels the context and closes the hub session.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.logger.Info("Shutting down server context")

	var err error
	if sc.hubClient != nil {
		err = sc.hubClient.Close()
	}

	if sc.cancel != nil {
		sc.cancel()
	}
	sc.shutdown = true

	sc.logger.Info("Server context shutdown complete")
	return err
}

// IsShutdown returns true if the server context has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// validate ensures all required dependencies are set.
func (sc *ServerContext) validate() error {
	if sc.hubClient == nil {
		return ErrMissingHubClient
	}
	if sc.logger == nil {
		return ErrMissingLogger
	}
	if sc.config == nil {
		return ErrMissingConfig
	}
	return nil
}

// Config holds the server configuration.
type Config struct {
	// Server settings
	ServerName string `json:"serverName" yaml:"serverName"`
	Version    string `json:"version" yaml:"version"`

	// ReadOnly blocks every tool that writes to the hub.
	ReadOnly bool `json:"readOnly" yaml:"readOnly"`

	// Logging settings
	LogLevel  string `json:"logLevel" yaml:"logLevel"`
	LogFormat string `json:"logFormat" yaml:"logFormat"`

	// Output holds the response-shaping limits.
	Output *output.Config `json:"output" yaml:"output"`
}

// NewDefaultConfig creates a configuration with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		ServerName: "spruthub-mcp-server",
		Version:    "0.1.0",
		ReadOnly:   false,
		LogLevel:   "info",
		LogFormat:  "text",
		Output:     output.DefaultConfig(),
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Output = c.Output.Clone()
	return &clone
}
