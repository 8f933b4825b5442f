package output

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Meta is the machine-readable half of a tool response.
type Meta struct {
	TotalCount  int            `json:"totalCount"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
	PageSize    int            `json:"pageSize"`
	HasMore     bool           `json:"hasMore"`
	Filters     map[string]any `json:"filters"`

	// Exactly one of the item payloads is set, and none when metaOnly is on.
	Accessories any `json:"accessories,omitempty"`
	Rooms       any `json:"rooms,omitempty"`
	Hubs        any `json:"hubs,omitempty"`

	// Stats carries aggregate counts for counting operations.
	Stats any `json:"stats,omitempty"`
}

// Envelope is an assembled tool response before size guarding.
type Envelope struct {
	Content []mcp.TextContent `json:"content"`
	Meta    Meta              `json:"meta"`
}

// PageMeta fills the pagination fields of Meta from a page.
func PageMeta[T any](page Page[T], filters map[string]any) Meta {
	if filters == nil {
		filters = map[string]any{}
	}
	return Meta{
		TotalCount:  page.TotalCount,
		TotalPages:  page.TotalPages,
		CurrentPage: page.PageNum,
		PageSize:    page.PageSize,
		HasMore:     page.HasMore,
		Filters:     filters,
	}
}

// Pluralize returns singular when n is 1 and plural otherwise.
func Pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// CountStatement renders the one-line statement that opens a listing, e.g.
// "Found 12 accessories (in room 3), showing page 2 of 3 (5 per page)".
func CountStatement[T any](page Page[T], singular, plural, filterDesc string) string {
	statement := fmt.Sprintf("Found %d %s%s", page.TotalCount, Pluralize(page.TotalCount, singular, plural), filterDesc)
	if page.TotalPages > 1 || page.PageNum > 1 {
		statement += fmt.Sprintf(", showing page %d of %d (%d per page)", page.PageNum, page.TotalPages, page.PageSize)
	}
	if len(page.Items) == 0 && page.TotalCount > 0 {
		statement += "; the requested page is out of range"
	}
	return statement
}

// JSONBlock renders v as an indented JSON text block.
func JSONBlock(v any) mcp.TextContent {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewTextContent(fmt.Sprintf("failed to render data: %v", err))
	}
	return mcp.NewTextContent(string(data))
}

// ToolResult converts guarded text blocks and metadata into an MCP tool result.
// The metadata is attached as structured content.
func ToolResult(content []mcp.TextContent, meta Meta) *mcp.CallToolResult {
	blocks := make([]mcp.Content, 0, len(content))
	for _, c := range content {
		blocks = append(blocks, c)
	}
	return &mcp.CallToolResult{
		Content:           blocks,
		StructuredContent: meta,
	}
}
