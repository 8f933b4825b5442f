// Package tools provides shared utilities and types for MCP tool implementations.
package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shady2k/spruthub-mcp-server/internal/tools/output"
)

// PaginationParams returns the page and limit tool options shared by every listing tool.
func PaginationParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("page",
			mcp.Description("1-based page number (default 1)"),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Items per page (default %d, capped at the configured maximum)", output.DefaultPageSize)),
		),
	}
}

// DisplayParams returns the summary/metaOnly options plus pagination.
//
// Usage in tool registration:
//
//	opts := []mcp.ToolOption{
//	    mcp.WithDescription("..."),
//	}
//	opts = append(opts, tools.DisplayParams()...)
//	tool := mcp.NewTool("tool_name", opts...)
func DisplayParams() []mcp.ToolOption {
	opts := []mcp.ToolOption{
		mcp.WithBoolean("summary",
			mcp.Description("Return a compact projection of each item (default true; set automatically for large results)"),
		),
		mcp.WithBoolean("metaOnly",
			mcp.Description("Return only counts and pagination, without items (set automatically for very large results)"),
		),
	}
	return append(opts, PaginationParams()...)
}

// ParseDisplaySpec reads summary, page, limit and metaOnly. Missing arguments stay nil
// so that smart defaults can fill them.
func ParseDisplaySpec(args map[string]any) (output.DisplaySpec, error) {
	var spec output.DisplaySpec
	var err error

	if spec.Summary, err = OptionalBool(args, "summary"); err != nil {
		return spec, err
	}
	if spec.MetaOnly, err = OptionalBool(args, "metaOnly"); err != nil {
		return spec, err
	}
	if spec.Page, err = OptionalInt(args, "page"); err != nil {
		return spec, err
	}
	if spec.Limit, err = OptionalInt(args, "limit"); err != nil {
		return spec, err
	}
	return spec, nil
}

// OptionalInt returns the integer argument, or nil when it is absent.
// Numbers arrive from JSON as float64 and are floored.
func OptionalInt(args map[string]any, key string) (*int, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	n, err := toInt(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return &n, nil
}

// RequiredInt returns the integer argument or an error naming it when it is missing.
func RequiredInt(args map[string]any, key string) (int, error) {
	n, err := OptionalInt(args, key)
	if err != nil {
		return 0, err
	}
	if n == nil {
		return 0, fmt.Errorf("%s is required", key)
	}
	return *n, nil
}

// OptionalBool returns the boolean argument, or nil when it is absent.
// The strings "true" and "false" are accepted as well.
func OptionalBool(args map[string]any, key string) (*bool, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case bool:
		return &v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%s must be a boolean", key)
		}
		return &b, nil
	default:
		return nil, fmt.Errorf("%s must be a boolean", key)
	}
}

// OptionalString returns the trimmed string argument, or "" when absent.
func OptionalString(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return strings.TrimSpace(s)
}

func toInt(raw any) (int, error) {
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("invalid number %v", v)
		}
		switch f := math.Floor(v); {
		case f >= math.MaxInt:
			return math.MaxInt, nil
		case f <= math.MinInt:
			return math.MinInt, nil
		default:
			return int(f), nil
		}
	case float32:
		return toInt(float64(v))
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, err
		}
		return toInt(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, err
		}
		return toInt(f)
	default:
		return 0, fmt.Errorf("unexpected type %T", raw)
	}
}
