package output

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	// TruncationMarker is appended to every text block that was cut.
	TruncationMarker = "\n\n... [truncated]"

	// BlockOverhead is subtracted from each block's share of the size budget
	// to leave room for the marker and JSON framing.
	BlockOverhead = 100
)

// SizeReport describes what ProcessResponse measured and did.
type SizeReport struct {
	OriginalSize int  `json:"originalSize"`
	Warned       bool `json:"warned"`
	Truncated    bool `json:"truncated"`
}

// ResponseSize returns the character length of the serialised content.
func ResponseSize(content []mcp.TextContent) int {
	data, err := json.Marshal(content)
	if err != nil {
		return 0
	}
	return utf8.RuneCount(data)
}

// TruncationBanner returns the banner put in front of a truncated response.
func TruncationBanner(originalSize, limit int) string {
	return fmt.Sprintf("⚠️ Response truncated: original size %d characters exceeds limit of %d characters. "+
		"Use pagination (page/limit), summary=true or metaOnly=true to reduce response size.\n\n", originalSize, limit)
}

// ProcessResponse guards the size of a response.
//
// Above WarnThreshold a warning is logged and the content is left alone. Above
// MaxResponseSize, with truncation enabled, a banner is put in front of the
// first block; if that is still too large, every block longer than
// MaxResponseSize/blockCount-BlockOverhead characters is cut to that budget and
// TruncationMarker is appended. The result is not re-measured, so it may still
// exceed the limit slightly. The input slice is never modified.
func ProcessResponse(content []mcp.TextContent, cfg *Config, logger *slog.Logger) ([]mcp.TextContent, SizeReport) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	size := ResponseSize(content)
	report := SizeReport{OriginalSize: size}

	if size > cfg.WarnThreshold {
		report.Warned = true
		logger.Warn("response size exceeds warning threshold",
			slog.Int("size", size),
			slog.Int("threshold", cfg.WarnThreshold))
	}

	if size <= cfg.MaxResponseSize || !cfg.EnableTruncation {
		return content, report
	}

	banner := TruncationBanner(size, cfg.MaxResponseSize)
	out := make([]mcp.TextContent, len(content))
	copy(out, content)
	if len(out) > 0 {
		out[0].Text = banner + out[0].Text
	} else {
		out = []mcp.TextContent{mcp.NewTextContent(banner)}
	}

	if ResponseSize(out) > cfg.MaxResponseSize {
		budget := max(cfg.MaxResponseSize/len(out)-BlockOverhead, 0)
		for i := range out {
			out[i].Text = truncateText(out[i].Text, budget)
		}
	}

	report.Truncated = true
	logger.Warn("response truncated",
		slog.Int("original_size", size),
		slog.Int("limit", cfg.MaxResponseSize))

	return out, report
}

// truncateText cuts s to budget characters and appends TruncationMarker.
// Strings within budget are returned unchanged.
func truncateText(s string, budget int) string {
	if utf8.RuneCountInString(s) <= budget {
		return s
	}
	runes := []rune(s)
	return string(runes[:budget]) + TruncationMarker
}
