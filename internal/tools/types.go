package tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shady2k/spruthub-mcp-server/internal/instrumentation"
	"github.com/shady2k/spruthub-mcp-server/internal/logging"
	"github.com/shady2k/spruthub-mcp-server/internal/server"
	"github.com/shady2k/spruthub-mcp-server/internal/spruthub"
)

// CallHub runs fn against the hub client inside a client span and records the
// operation's metrics. Failures are logged with the operation name.
func CallHub[T any](ctx context.Context, sc *server.ServerContext, operation string, fn func(context.Context, spruthub.Client) (T, error)) (T, error) {
	ctx, span := instrumentation.StartHubSpan(ctx, operation)
	defer span.End()

	start := time.Now()
	result, err := fn(ctx, sc.HubClient())
	duration := time.Since(start)

	if err != nil {
		instrumentation.SetSpanError(span, err)
		sc.RecordHubOperation(ctx, operation, instrumentation.StatusError, duration)
		logging.WithOperation(sc.Logger(), operation).Warn("hub request failed",
			logging.SanitizedErr(err),
			logging.Duration(duration))
		return result, err
	}

	instrumentation.SetSpanSuccess(span)
	sc.RecordHubOperation(ctx, operation, instrumentation.StatusSuccess, duration)
	sc.Logger().Debug("hub request completed", logging.Operation(operation), logging.Duration(duration))
	return result, nil
}

// UpstreamError renders a hub failure as a tool error result of the form
// "Failed to <operation>: <cause>". Missing connection settings get a
// distinct message naming the variables to set.
func UpstreamError(operation string, err error) *mcp.CallToolResult {
	var missing *spruthub.MissingConfigError
	if errors.As(err, &missing) {
		return mcp.NewToolResultError(fmt.Sprintf("Sprut.hub connection is not configured: %v", missing))
	}
	return mcp.NewToolResultError(fmt.Sprintf("Failed to %s: %v", operation, err))
}

// BadInput renders an argument validation failure as a tool error result.
func BadInput(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err))
}
