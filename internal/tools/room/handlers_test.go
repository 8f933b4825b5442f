package room

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shady2k/spruthub-mcp-server/internal/server"
	"github.com/shady2k/spruthub-mcp-server/internal/spruthub"
	"github.com/shady2k/spruthub-mcp-server/internal/spruthub/testdata"
	"github.com/shady2k/spruthub-mcp-server/internal/tools/output"
)

func newTestServerContext(t *testing.T, client spruthub.Client) *server.ServerContext {
	t.Helper()
	sc, err := server.NewServerContext(context.Background(),
		server.WithHubClient(client),
		server.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	return sc
}

func callListRooms(t *testing.T, sc *server.ServerContext, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	result, err := handleListRooms(context.Background(), request, sc)
	require.NoError(t, err)
	return result
}

func TestSummarize(t *testing.T) {
	rooms := []spruthub.Room{
		{ID: 3, Name: "Hall", Order: 2},
		{ID: 1, Name: "Kitchen", Order: 1},
		{ID: 2, Name: "Bedroom", Order: 1},
		{ID: 4, Name: "Attic", Order: 3},
	}

	got := Summarize(rooms, testdata.Inventory(12))

	assert.Equal(t, []Summary{
		{ID: 1, Name: "Kitchen", AccessoriesCount: 4, OnlineCount: 3},
		{ID: 2, Name: "Bedroom", AccessoriesCount: 4, OnlineCount: 3},
		{ID: 3, Name: "Hall", AccessoriesCount: 4, OnlineCount: 3},
		{ID: 4, Name: "Attic"},
	}, got)
	assert.Equal(t, 3, rooms[0].ID, "input must not be reordered")
}

func TestHandleListRooms(t *testing.T) {
	mock := &testdata.MockClient{Rooms: testdata.Rooms(), Accessories: testdata.Inventory(9)}
	sc := newTestServerContext(t, mock)

	result := callListRooms(t, sc, map[string]any{})
	require.False(t, result.IsError)
	require.Len(t, result.Content, 2)
	assert.Equal(t, "Found 3 rooms", result.Content[0].(mcp.TextContent).Text)

	meta, ok := result.StructuredContent.(output.Meta)
	require.True(t, ok)
	assert.Equal(t, 3, meta.TotalCount)
	rooms, ok := meta.Rooms.([]Summary)
	require.True(t, ok)
	assert.Equal(t, Summary{ID: 1, Name: "Kitchen", AccessoriesCount: 3, OnlineCount: 2}, rooms[0])

	assert.Equal(t, 1, mock.Calls("ListRooms"))
	assert.Equal(t, 1, mock.Calls("ListAccessories"))
}

func TestHandleListRooms_Pagination(t *testing.T) {
	rooms := make([]spruthub.Room, 0, 7)
	for i := 1; i <= 7; i++ {
		rooms = append(rooms, spruthub.Room{ID: i, Name: fmt.Sprintf("Room %d", i)})
	}
	sc := newTestServerContext(t, &testdata.MockClient{Rooms: rooms})

	result := callListRooms(t, sc, map[string]any{"page": float64(2), "limit": float64(3)})
	require.False(t, result.IsError)

	meta := result.StructuredContent.(output.Meta)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasMore)
	page := meta.Rooms.([]Summary)
	require.Len(t, page, 3)
	assert.Equal(t, 4, page[0].ID)
}

func TestHandleListRooms_MetaOnly(t *testing.T) {
	sc := newTestServerContext(t, &testdata.MockClient{Rooms: testdata.Rooms()})

	result := callListRooms(t, sc, map[string]any{"metaOnly": true})
	require.False(t, result.IsError)
	require.Len(t, result.Content, 1)

	meta := result.StructuredContent.(output.Meta)
	assert.Nil(t, meta.Rooms)
	assert.Equal(t, true, meta.Filters["metaOnly"])
}

func TestHandleListRooms_Errors(t *testing.T) {
	t.Run("bad argument", func(t *testing.T) {
		sc := newTestServerContext(t, &testdata.MockClient{})
		result := callListRooms(t, sc, map[string]any{"metaOnly": "perhaps"})
		assert.True(t, result.IsError)
	})

	t.Run("hub failure", func(t *testing.T) {
		sc := newTestServerContext(t, &testdata.MockClient{ListErr: errors.New("connection reset")})
		result := callListRooms(t, sc, nil)
		require.True(t, result.IsError)
		assert.Equal(t, "Failed to list rooms: connection reset", result.Content[0].(mcp.TextContent).Text)
	})
}

func TestRegisterRoomTools(t *testing.T) {
	sc := newTestServerContext(t, &testdata.MockClient{})
	s := mcpserver.NewMCPServer("test", "0.0.1", mcpserver.WithToolCapabilities(true))

	require.NoError(t, RegisterRoomTools(s, sc))
	assert.Contains(t, s.ListTools(), ToolListRooms)
}
