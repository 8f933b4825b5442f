package output

import (
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPluralize(t *testing.T) {
	assert.Equal(t, "accessories", Pluralize(0, "accessory", "accessories"))
	assert.Equal(t, "accessory", Pluralize(1, "accessory", "accessories"))
	assert.Equal(t, "accessories", Pluralize(2, "accessory", "accessories"))
}

func TestCountStatement(t *testing.T) {
	tests := []struct {
		name   string
		page   Page[int]
		desc   string
		expect string
	}{
		{
			name:   "single item",
			page:   Paginate(seq(1), 1, 20, 20),
			expect: "Found 1 accessory",
		},
		{
			name:   "no items",
			page:   Paginate(seq(0), 1, 20, 20),
			expect: "Found 0 accessories",
		},
		{
			name:   "filters and pages",
			page:   Paginate(seq(12), 2, 5, 20),
			desc:   " (in room 3)",
			expect: "Found 12 accessories (in room 3), showing page 2 of 3 (5 per page)",
		},
		{
			name:   "out of range page",
			page:   Paginate(seq(3), 5, 20, 20),
			expect: "Found 3 accessories, showing page 5 of 1 (20 per page); the requested page is out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, CountStatement(tt.page, "accessory", "accessories", tt.desc))
		})
	}
}

func TestPageMeta(t *testing.T) {
	meta := PageMeta(Paginate(seq(12), 2, 5, 20), nil)

	assert.Equal(t, 12, meta.TotalCount)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 5, meta.PageSize)
	assert.True(t, meta.HasMore)
	assert.NotNil(t, meta.Filters)
}

func TestMeta_OmitsUnsetPayloads(t *testing.T) {
	data, err := json.Marshal(Meta{Filters: map[string]any{"metaOnly": true}})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NotContains(t, decoded, "accessories")
	assert.NotContains(t, decoded, "rooms")
	assert.NotContains(t, decoded, "hubs")
	assert.Contains(t, decoded, "filters")

	data, err = json.Marshal(Meta{Accessories: []int{}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"accessories":[]`)
}

func TestToolResult(t *testing.T) {
	content := []mcp.TextContent{mcp.NewTextContent("Found 1 hub"), JSONBlock([]string{"SN-1"})}
	meta := Meta{TotalCount: 1, TotalPages: 1, CurrentPage: 1, PageSize: 20}

	result := ToolResult(content, meta)

	require.Len(t, result.Content, 2)
	assert.False(t, result.IsError)
	text, ok := result.Content[1].(mcp.TextContent)
	require.True(t, ok)
	assert.JSONEq(t, `["SN-1"]`, text.Text)
	assert.Equal(t, meta, result.StructuredContent)
}
