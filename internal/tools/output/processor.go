package output

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shady2k/spruthub-mcp-server/internal/logging"
)

// Observer receives response-shaping events for metrics.
type Observer interface {
	RecordSmartDefault(ctx context.Context, tool, rule string)
	RecordResponseSize(ctx context.Context, tool string, size int)
	RecordTruncation(ctx context.Context, tool string)
}

// Processor applies the response-shaping steps with one validated configuration.
// It is safe for concurrent use.
type Processor struct {
	config   *Config
	logger   *slog.Logger
	observer Observer
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithObserver reports shaping events to o.
func WithObserver(o Observer) ProcessorOption {
	return func(p *Processor) {
		p.observer = o
	}
}

// NewProcessor creates a new output processor with the given configuration.
func NewProcessor(config *Config, logger *slog.Logger, opts ...ProcessorOption) *Processor {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	p := &Processor{
		config: config.Validate(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Config returns the processor's configuration.
func (p *Processor) Config() *Config {
	return p.config
}

// Defaults runs ComputeDefaults and logs every rule it applied.
func (p *Processor) Defaults(ctx context.Context, tool string, filteredCount int, requested DisplaySpec) (DisplaySpec, []AppliedRule) {
	result, applied := ComputeDefaults(filteredCount, requested, p.config)
	for _, rule := range applied {
		p.logger.Info("smart default applied",
			logging.Tool(tool),
			slog.String("rule", rule.Rule),
			logging.Count(rule.Count),
			slog.Int("threshold", rule.Threshold),
			slog.Any("value", rule.Value))
		if p.observer != nil {
			p.observer.RecordSmartDefault(ctx, tool, rule.Rule)
		}
	}
	return result, applied
}

// Resolve fills whatever is still unset with the documented defaults.
func (p *Processor) Resolve(spec DisplaySpec) ResolvedDisplay {
	return Resolve(spec, p.config.MaxDevicesPerPage)
}

// Finalize size-guards the envelope and converts it into a tool result.
func (p *Processor) Finalize(ctx context.Context, tool string, env Envelope) *mcp.CallToolResult {
	content, report := ProcessResponse(env.Content, p.config, logging.WithTool(p.logger, tool))
	if p.observer != nil {
		p.observer.RecordResponseSize(ctx, tool, report.OriginalSize)
		if report.Truncated {
			p.observer.RecordTruncation(ctx, tool)
		}
	}
	return ToolResult(content, env.Meta)
}
