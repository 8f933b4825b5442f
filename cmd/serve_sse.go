package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/shady2k/spruthub-mcp-server/internal/server"
	"github.com/shady2k/spruthub-mcp-server/internal/server/middleware"
)

// runSSEServer runs the server with SSE transport.
func runSSEServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, config ServeConfig, sc *server.ServerContext) error {
	logger := sc.Logger()

	sseServer := mcpserver.NewSSEServer(mcpSrv,
		mcpserver.WithSSEEndpoint(config.SSEEndpoint),
		mcpserver.WithMessageEndpoint(config.MessageEndpoint),
		mcpserver.WithKeepAlive(true),
		mcpserver.WithKeepAliveInterval(30*time.Second),
	)

	// SSEServer routes both endpoints itself.
	mux := http.NewServeMux()
	mux.Handle(config.SSEEndpoint, sseServer)
	mux.Handle(config.MessageEndpoint, sseServer)
	server.NewHealthChecker(sc).RegisterHealthEndpoints(mux)

	logger.Debug("SSE server configuration",
		"addr", config.HTTPAddr,
		"sse_endpoint", config.SSEEndpoint,
		"message_endpoint", config.MessageEndpoint)

	// WriteTimeout stays unset: SSE streams are long-lived.
	httpServer := &http.Server{
		Addr:              config.HTTPAddr,
		Handler:           middleware.HTTPMetrics(sc.InstrumentationProvider())(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("SSE server starting",
		"addr", config.HTTPAddr,
		"sse_endpoint", config.SSEEndpoint,
		"message_endpoint", config.MessageEndpoint,
		"health_endpoints", []string{"/healthz", "/readyz"})

	return serveHTTP(ctx, httpServer, logger, "SSE", sseServer.Shutdown)
}

// serveHTTP runs httpServer until ctx is done, then shuts it down together
// with any transport-specific cleanup.
func serveHTTP(ctx context.Context, httpServer *http.Server, logger *slog.Logger, name string, cleanup ...func(context.Context) error) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping server", "transport", name)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()

		for _, fn := range cleanup {
			if err := fn(shutdownCtx); err != nil {
				logger.Warn("transport cleanup failed", "transport", name, "error", err)
			}
		}
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down %s server: %w", name, err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("%s server stopped with error: %w", name, err)
		}
	}

	logger.Info("server gracefully stopped", "transport", name)
	return nil
}
