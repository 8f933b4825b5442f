package room

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/shady2k/spruthub-mcp-server/internal/server"
	"github.com/shady2k/spruthub-mcp-server/internal/tools"
)

// ToolListRooms is the name of the room listing tool.
const ToolListRooms = "spruthub_list_rooms"

// RegisterRoomTools registers the room tools with the MCP server.
func RegisterRoomTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	opts := []mcp.ToolOption{
		mcp.WithDescription(`List Sprut.hub rooms with the number of accessories and online accessories in each.
Use the room ID as roomId when listing or counting accessories.`),
		mcp.WithBoolean("metaOnly",
			mcp.Description("Return only counts and pagination, without rooms"),
		),
	}
	opts = append(opts, tools.PaginationParams()...)

	s.AddTool(mcp.NewTool(ToolListRooms, opts...),
		tools.WrapWithAuditLogging(ToolListRooms, handleListRooms, sc))
	return nil
}
