package hub

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/shady2k/spruthub-mcp-server/internal/server"
	"github.com/shady2k/spruthub-mcp-server/internal/tools"
)

// ToolListHubs is the name of the hub listing tool.
const ToolListHubs = "spruthub_list_hubs"

// RegisterHubTools registers the hub tools with the MCP server.
func RegisterHubTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	opts := []mcp.ToolOption{
		mcp.WithDescription("List the Sprut.hub controllers on the account with their online state and firmware version."),
	}
	opts = append(opts, tools.PaginationParams()...)

	s.AddTool(mcp.NewTool(ToolListHubs, opts...),
		tools.WrapWithAuditLogging(ToolListHubs, handleListHubs, sc))
	return nil
}
