package cmd

import (
	"context"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/shady2k/spruthub-mcp-server/internal/server"
	"github.com/shady2k/spruthub-mcp-server/internal/server/middleware"
)

// runStreamableHTTPServer runs the server with Streamable HTTP transport.
func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, config ServeConfig, sc *server.ServerContext) error {
	handler, healthChecker := newStreamableHTTPHandler(mcpSrv, config, sc)

	httpServer := &http.Server{
		Addr:              config.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	sc.Logger().Info("streamable HTTP server starting",
		"addr", config.HTTPAddr,
		"endpoint", config.HTTPEndpoint,
		"health_endpoints", []string{"/healthz", "/readyz"})

	return serveHTTP(ctx, httpServer, sc.Logger(), "streamable-http", func(context.Context) error {
		healthChecker.SetReady(false)
		return nil
	})
}

// newStreamableHTTPHandler mounts the MCP endpoint and the health endpoints
// behind the HTTP metrics middleware.
func newStreamableHTTPHandler(mcpSrv *mcpserver.MCPServer, config ServeConfig, sc *server.ServerContext) (http.Handler, *server.HealthChecker) {
	mux := http.NewServeMux()

	mcpHandler := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithEndpointPath(config.HTTPEndpoint),
	)
	mux.Handle(config.HTTPEndpoint, mcpHandler)

	// Metrics are served on the separate metrics server, not here.
	healthChecker := server.NewHealthChecker(sc)
	healthChecker.RegisterHealthEndpoints(mux)

	return middleware.HTTPMetrics(sc.InstrumentationProvider())(mux), healthChecker
}
