package cmd

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shady2k/spruthub-mcp-server/internal/server"
	"github.com/shady2k/spruthub-mcp-server/internal/spruthub/testdata"
)

// startStreamableHTTP serves a full MCP server backed by hub over httptest
// and returns an initialized client.
func startStreamableHTTP(t *testing.T, hub *testdata.MockClient) (*client.Client, *httptest.Server) {
	t.Helper()

	sc, err := server.NewServerContext(context.Background(),
		server.WithHubClient(hub),
		server.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })

	mcpSrv, err := newMCPServer(sc)
	require.NoError(t, err)

	config := newDefaultServeConfig()
	handler, _ := newStreamableHTTPHandler(mcpSrv, config, sc)
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mcpClient, err := client.NewStreamableHttpClient(ts.URL + config.HTTPEndpoint)
	require.NoError(t, err, "failed to create MCP client")
	require.NoError(t, mcpClient.Start(ctx), "failed to start MCP client transport")
	t.Cleanup(func() { _ = mcpClient.Close() })

	_, err = mcpClient.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "serve-http-test",
				Version: "1.0.0",
			},
		},
	})
	require.NoError(t, err, "failed to initialize MCP client")

	return mcpClient, ts
}

func callTool(t *testing.T, c *client.Client, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := c.CallTool(ctx, mcp.CallToolRequest{
		Request: mcp.Request{Method: "tools/call"},
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func TestStreamableHTTPEndToEnd(t *testing.T) {
	hub := &testdata.MockClient{Accessories: testdata.Inventory(60), Rooms: testdata.Rooms()}
	mcpClient, _ := startStreamableHTTP(t, hub)

	t.Run("list tools", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		tools, err := mcpClient.ListTools(ctx, mcp.ListToolsRequest{})
		require.NoError(t, err)
		assert.Len(t, tools.Tools, 6)
	})

	t.Run("list accessories applies smart defaults", func(t *testing.T) {
		result := callTool(t, mcpClient, "spruthub_list_accessories", map[string]any{"limit": 30})
		require.False(t, result.IsError)
		require.NotEmpty(t, result.Content)

		text, ok := result.Content[0].(mcp.TextContent)
		require.True(t, ok)
		assert.Contains(t, text.Text, "Found 60 accessories")

		// Structured content arrives as decoded JSON on the client side.
		raw, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		var meta struct {
			PageSize   int `json:"pageSize"`
			TotalCount int `json:"totalCount"`
		}
		require.NoError(t, json.Unmarshal(raw, &meta))
		assert.Equal(t, 10, meta.PageSize)
		assert.Equal(t, 60, meta.TotalCount)
	})

	t.Run("count accessories", func(t *testing.T) {
		result := callTool(t, mcpClient, "spruthub_count_accessories", map[string]any{"roomId": 1})
		require.False(t, result.IsError)
		text, ok := result.Content[0].(mcp.TextContent)
		require.True(t, ok)
		assert.Contains(t, text.Text, "20 accessories")
	})

	t.Run("unknown accessory is a tool error", func(t *testing.T) {
		result := callTool(t, mcpClient, "spruthub_get_accessory", map[string]any{"accessoryId": 9999})
		assert.True(t, result.IsError)
	})
}

func TestStreamableHTTPHealthEndpoints(t *testing.T) {
	_, ts := startStreamableHTTP(t, &testdata.MockClient{})

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}
