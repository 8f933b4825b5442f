package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/shady2k/spruthub-mcp-server/internal/instrumentation"
	"github.com/shady2k/spruthub-mcp-server/internal/logging"
	"github.com/shady2k/spruthub-mcp-server/internal/server"
	"github.com/shady2k/spruthub-mcp-server/internal/spruthub"
	"github.com/shady2k/spruthub-mcp-server/internal/tools/accessory"
	"github.com/shady2k/spruthub-mcp-server/internal/tools/hub"
	"github.com/shady2k/spruthub-mcp-server/internal/tools/room"
)

// Transport type constants for the MCP server.
const (
	transportStdio          = "stdio"
	transportSSE            = "sse"
	transportStreamableHTTP = "streamable-http"
)

// newServeCmd creates the Cobra command for starting the MCP server.
func newServeCmd() *cobra.Command {
	var (
		flags      ServeConfig
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Sprut.hub MCP server",
		Long: `Start the Sprut.hub MCP server to expose accessories, rooms and hubs
via the Model Context Protocol.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - sse: Server-Sent Events over HTTP
  - streamable-http: Streamable HTTP transport

Configuration is read from flags, then SPRUTHUB_* environment variables, then
the optional --config YAML file. The hub connection (SPRUTHUB_WS_URL,
SPRUTHUB_EMAIL, SPRUTHUB_PASSWORD, SPRUTHUB_SERIAL) is required.

Read-only mode (--read-only or SPRUTHUB_READ_ONLY=true) disables
spruthub_control_characteristic.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := resolveServeConfig(cmd.Flags(), flags, configPath)
			if err != nil {
				return err
			}
			return runServe(config)
		},
	}

	bindHubFlags(cmd.Flags(), &flags, &configPath)
	cmd.Flags().BoolVar(&flags.ReadOnly, "read-only", false, "Block tools that write to the hub (can also be set via "+envReadOnly+")")

	// Transport flags
	cmd.Flags().StringVar(&flags.Transport, "transport", transportStdio, "Transport type: stdio, sse, or streamable-http")
	cmd.Flags().StringVar(&flags.HTTPAddr, "http-addr", ":8080", "HTTP server address (for sse and streamable-http transports)")
	cmd.Flags().StringVar(&flags.SSEEndpoint, "sse-endpoint", "/sse", "SSE endpoint path (for sse transport)")
	cmd.Flags().StringVar(&flags.MessageEndpoint, "message-endpoint", "/message", "Message endpoint path (for sse transport)")
	cmd.Flags().StringVar(&flags.HTTPEndpoint, "http-endpoint", "/mcp", "HTTP endpoint path (for streamable-http transport)")

	// Metrics server flags
	cmd.Flags().BoolVar(&flags.Metrics.Enabled, "enable-metrics-server", true, "Serve Prometheus metrics on a separate address when instrumentation is enabled")
	cmd.Flags().StringVar(&flags.Metrics.Addr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address (can also be set via "+envMetricsAddr+")")

	return cmd
}

// validateServeConfig rejects configurations the server cannot start with.
func validateServeConfig(config ServeConfig) error {
	switch config.Transport {
	case transportStdio, transportSSE, transportStreamableHTTP:
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, sse, streamable-http)", config.Transport)
	}
	switch config.LogFormat {
	case logFormatText, logFormatJSON:
	default:
		return fmt.Errorf("unsupported log format: %s (supported: text, json)", config.LogFormat)
	}
	return config.Hub.Validate()
}

// runServe contains the main server logic with support for multiple transports.
func runServe(config ServeConfig) error {
	logger := newLogger(config.LogFormat, config.DebugMode)
	slog.SetDefault(logger)

	if err := validateServeConfig(config); err != nil {
		if spruthub.IsMissingConfig(err) {
			logger.Error("Sprut.hub connection is not configured", logging.Err(err))
		}
		return err
	}

	// Setup graceful shutdown - listen for both SIGINT and SIGTERM
	shutdownCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	instrumentationConfig := instrumentation.DefaultConfig()
	instrumentationConfig.ServiceVersion = rootCmd.Version
	provider, err := instrumentation.NewProvider(shutdownCtx, instrumentationConfig, instrumentation.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logger.Error("error during instrumentation shutdown", logging.Err(err))
		}
	}()
	if provider.Enabled() {
		logger.Info("OpenTelemetry instrumentation enabled",
			"metrics_exporter", instrumentationConfig.MetricsExporter,
			"tracing_exporter", instrumentationConfig.TracingExporter)
	}

	hubClient, err := spruthub.NewWSClient(config.Hub, logger)
	if err != nil {
		return err
	}
	logger.Info("Sprut.hub client configured",
		logging.Host(config.Hub.URL),
		logging.UserHash(config.Hub.Email),
		logging.Serial(config.Hub.Serial))

	serverConfig := server.NewDefaultConfig()
	serverConfig.Version = rootCmd.Version
	serverConfig.LogFormat = config.LogFormat
	if config.DebugMode {
		serverConfig.LogLevel = "debug"
	}

	sc, err := server.NewServerContext(shutdownCtx,
		server.WithHubClient(hubClient),
		server.WithLogger(logger),
		server.WithConfig(serverConfig),
		server.WithReadOnly(config.ReadOnly),
		server.WithOutputConfig(&config.Output),
		server.WithInstrumentationProvider(provider),
	)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := sc.Shutdown(); err != nil {
			logger.Error("error during server context shutdown", logging.Err(err))
		}
	}()

	if config.ReadOnly {
		logger.Info("read-only mode enabled: characteristic control is disabled")
	}

	mcpSrv, err := newMCPServer(sc)
	if err != nil {
		return err
	}

	runCtx, stop := context.WithCancel(shutdownCtx)
	defer stop()
	g, gctx := errgroup.WithContext(runCtx)

	if config.Metrics.Enabled && provider.Enabled() {
		metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    config.Metrics.Addr,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		g.Go(func() error {
			logger.Info("metrics server starting", "addr", metricsServer.Addr(), "endpoint", "/metrics")
			if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			ctx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
			defer cancel()
			return metricsServer.Shutdown(ctx)
		})
	}

	g.Go(func() error {
		// The transport ending for any reason stops the metrics server too.
		defer stop()

		switch config.Transport {
		case transportStdio:
			return runStdioServer(gctx, mcpSrv)
		case transportSSE:
			return runSSEServer(gctx, mcpSrv, config, sc)
		default:
			return runStreamableHTTPServer(gctx, mcpSrv, config, sc)
		}
	})

	return g.Wait()
}

// newMCPServer creates the MCP server and registers every tool category.
func newMCPServer(sc *server.ServerContext) (*mcpserver.MCPServer, error) {
	mcpSrv := mcpserver.NewMCPServer(sc.Config().ServerName, rootCmd.Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithRecovery(),
	)

	if err := accessory.RegisterAccessoryTools(mcpSrv, sc); err != nil {
		return nil, fmt.Errorf("failed to register accessory tools: %w", err)
	}
	if err := room.RegisterRoomTools(mcpSrv, sc); err != nil {
		return nil, fmt.Errorf("failed to register room tools: %w", err)
	}
	if err := hub.RegisterHubTools(mcpSrv, sc); err != nil {
		return nil, fmt.Errorf("failed to register hub tools: %w", err)
	}
	return mcpSrv, nil
}
