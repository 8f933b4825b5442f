package instrumentation

import (
	"context"
	"log/slog"
	"time"
)

// ToolInvocation captures one MCP tool call for the audit log.
type ToolInvocation struct {
	Tool        string
	AccessoryID int
	RoomID      int
	Mutating    bool

	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string

	TraceID string
	SpanID  string
}

// NewToolInvocation starts recording a tool call.
func NewToolInvocation(tool string) *ToolInvocation {
	return &ToolInvocation{
		Tool:      tool,
		StartTime: time.Now(),
	}
}

// WithSpanContext copies the trace and span IDs from ctx, if any.
func (ti *ToolInvocation) WithSpanContext(ctx context.Context) *ToolInvocation {
	ti.TraceID = TraceIDFromContext(ctx)
	ti.SpanID = SpanIDFromContext(ctx)
	return ti
}

// WithAccessory records the accessory the call addressed.
func (ti *ToolInvocation) WithAccessory(id int) *ToolInvocation {
	ti.AccessoryID = id
	return ti
}

// WithRoom records the room the call was scoped to.
func (ti *ToolInvocation) WithRoom(id int) *ToolInvocation {
	ti.RoomID = id
	return ti
}

// WithMutating marks the call as one that changes hub state.
func (ti *ToolInvocation) WithMutating(mutating bool) *ToolInvocation {
	ti.Mutating = mutating
	return ti
}

// Complete records the outcome of the call.
func (ti *ToolInvocation) Complete(success bool, err error) *ToolInvocation {
	ti.Duration = time.Since(ti.StartTime)
	ti.Success = success
	if err != nil {
		ti.Error = err.Error()
	}
	return ti
}

// CompleteSuccess records a successful call.
func (ti *ToolInvocation) CompleteSuccess() *ToolInvocation {
	return ti.Complete(true, nil)
}

// CompleteWithError records a failed call.
func (ti *ToolInvocation) CompleteWithError(err error) *ToolInvocation {
	return ti.Complete(false, err)
}

// Status returns "success" or "error".
func (ti *ToolInvocation) Status() string {
	if ti.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns the slog attributes for the invocation.
func (ti *ToolInvocation) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("tool", ti.Tool),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
	}
	if ti.Mutating {
		attrs = append(attrs, slog.Bool("mutating", true))
	}
	if ti.AccessoryID != 0 {
		attrs = append(attrs, slog.Int("accessory_id", ti.AccessoryID))
	}
	if ti.RoomID != 0 {
		attrs = append(attrs, slog.Int("room_id", ti.RoomID))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String("error", ti.Error))
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID), slog.String("span_id", ti.SpanID))
	}
	return attrs
}

// AuditLogger writes tool invocations to a structured log.
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger creates an audit logger. A nil logger uses slog.Default().
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{logger: logger}
}

// LogToolInvocation writes one audit record. Mutating calls log at Info,
// reads at Debug, failures at Warn.
func (a *AuditLogger) LogToolInvocation(ti *ToolInvocation) {
	if a == nil || ti == nil {
		return
	}
	level := slog.LevelDebug
	if ti.Mutating {
		level = slog.LevelInfo
	}
	if !ti.Success {
		level = slog.LevelWarn
	}
	a.logger.LogAttrs(context.Background(), level, "tool invocation", ti.LogAttrs()...)
}
