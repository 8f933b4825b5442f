package tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shady2k/spruthub-mcp-server/internal/instrumentation"
	"github.com/shady2k/spruthub-mcp-server/internal/server"
)

// ToolHandler is the signature for MCP tool handler functions that take ServerContext.
type ToolHandler func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error)

// AuditOption adjusts how a wrapped tool is audited.
type AuditOption func(*auditSettings)

type auditSettings struct {
	mutating bool
}

// Mutating marks the tool as one that changes hub state. Its invocations are
// logged at Info instead of Debug.
func Mutating() AuditOption {
	return func(s *auditSettings) {
		s.mutating = true
	}
}

// WrapWithAuditLogging wraps a tool handler with tracing, metrics and audit logging.
// The wrapper captures:
//   - invocation timing
//   - accessory and room IDs from the request arguments
//   - success/error status from the handler result
//   - OpenTelemetry trace context for correlation
//
// Without an instrumentation provider the span and metrics are no-ops and
// audit records go to the server logger.
func WrapWithAuditLogging(
	toolName string,
	handler ToolHandler,
	sc *server.ServerContext,
	opts ...AuditOption,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var settings auditSettings
	for _, opt := range opts {
		opt(&settings)
	}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx, span := instrumentation.StartToolSpan(ctx, toolName)
		defer span.End()

		invocation := instrumentation.NewToolInvocation(toolName).
			WithSpanContext(ctx).
			WithMutating(settings.mutating)
		extractAuditInfoFromArgs(invocation, request.GetArguments())

		start := time.Now()
		result, err := handler(ctx, request, sc)
		duration := time.Since(start)

		// Tool failures are reported in the result, not as Go errors.
		switch {
		case err != nil:
			invocation.CompleteWithError(err)
			instrumentation.SetSpanError(span, err)
		case result != nil && result.IsError:
			invocation.Complete(false, nil)
			if len(result.Content) > 0 {
				if textContent, ok := result.Content[0].(mcp.TextContent); ok {
					invocation.Error = textContent.Text
				}
			}
			instrumentation.SetSpanFailed(span, invocation.Error)
		default:
			invocation.CompleteSuccess()
			instrumentation.SetSpanSuccess(span)
		}

		provider := sc.InstrumentationProvider()
		provider.Metrics().RecordToolInvocation(ctx, toolName, invocation.Status(), duration)

		auditLogger := provider.AuditLogger()
		if auditLogger == nil {
			auditLogger = instrumentation.NewAuditLogger(sc.Logger())
		}
		auditLogger.LogToolInvocation(invocation)

		return result, err
	}
}

// extractAuditInfoFromArgs copies the accessory and room IDs of a request into the invocation.
func extractAuditInfoFromArgs(invocation *instrumentation.ToolInvocation, args map[string]any) {
	if id, err := OptionalInt(args, "accessoryId"); err == nil && id != nil {
		invocation.WithAccessory(*id)
	}
	if id, err := OptionalInt(args, "roomId"); err == nil && id != nil {
		invocation.WithRoom(*id)
	}
}
