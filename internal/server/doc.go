// Package server provides the ServerContext pattern and related infrastructure
// for the Sprut.hub MCP server.
//
// ServerContext carries every dependency a tool handler needs:
//
//   - the spruthub.Client hub connection
//   - a *slog.Logger
//   - the server Config, including the response-shaping limits
//   - the output.Processor built from those limits
//   - an optional instrumentation.Provider
//
// Dependencies are injected with functional options and validated once:
//
//	sc, err := server.NewServerContext(ctx,
//		server.WithHubClient(client),
//		server.WithLogger(logger),
//		server.WithReadOnly(true),
//		server.WithOutputConfig(outputConfig),
//	)
//	if err != nil {
//		return err
//	}
//	defer sc.Shutdown()
//
// The configuration is read once at startup and never mutated afterwards,
// so handlers running concurrently share it without locking.
//
// The package also provides the /healthz and /readyz endpoints used by the
// HTTP transports and the dedicated Prometheus metrics server.
package server
