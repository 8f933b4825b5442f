package accessory

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/shady2k/spruthub-mcp-server/internal/server"
	"github.com/shady2k/spruthub-mcp-server/internal/tools"
)

// Tool names.
const (
	ToolListAccessories       = "spruthub_list_accessories"
	ToolCountAccessories      = "spruthub_count_accessories"
	ToolGetAccessory          = "spruthub_get_accessory"
	ToolControlCharacteristic = "spruthub_control_characteristic"
)

// filterParams returns the FilterSpec tool options shared by listing and counting.
func filterParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("roomId",
			mcp.Description("Only accessories in this room (see spruthub_list_rooms)"),
		),
		mcp.WithBoolean("controllableOnly",
			mcp.Description("Only accessories with at least one writable characteristic"),
		),
		mcp.WithString("nameFilter",
			mcp.Description("Case-insensitive substring of the accessory name"),
		),
		mcp.WithString("deviceTypeFilter",
			mcp.Description(fmt.Sprintf(
				"Service type substring (e.g. Lightbulb, Thermostat) or capability token: %s",
				strings.Join(KnownCapabilities(), ", "))),
		),
		mcp.WithString("manufacturerFilter",
			mcp.Description("Case-insensitive substring of the manufacturer"),
		),
		mcp.WithString("modelFilter",
			mcp.Description("Case-insensitive substring of the model"),
		),
		mcp.WithBoolean("onlineOnly",
			mcp.Description("Only online accessories (wins over offlineOnly)"),
		),
		mcp.WithBoolean("offlineOnly",
			mcp.Description("Only offline accessories"),
		),
	}
}

// RegisterAccessoryTools registers the accessory tools with the MCP server.
func RegisterAccessoryTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// spruthub_list_accessories
	listOpts := []mcp.ToolOption{
		mcp.WithDescription(`List Sprut.hub accessories with filtering and pagination.

Large results are shaped automatically unless you set the parameter yourself:
- more than the auto-summary threshold (default 10): summary=true
- more than 50: limit is capped at 10
- more than 100: metaOnly=true (counts only)

Prefer filters over paging through everything. Examples:
- Lights in room 3: {"roomId": 3, "deviceTypeFilter": "light"}
- Offline sensors: {"deviceTypeFilter": "temperature", "offlineOnly": true}
- Full details of page 2: {"summary": false, "page": 2, "limit": 5}`),
	}
	listOpts = append(listOpts, filterParams()...)
	listOpts = append(listOpts, tools.DisplayParams()...)
	s.AddTool(mcp.NewTool(ToolListAccessories, listOpts...),
		tools.WrapWithAuditLogging(ToolListAccessories, handleListAccessories, sc))

	// spruthub_count_accessories
	countOpts := []mcp.ToolOption{
		mcp.WithDescription(`Count Sprut.hub accessories matching the filters, with online, offline,
controllable and per-room breakdowns. Returns no item payload; use it before listing large sets.`),
	}
	countOpts = append(countOpts, filterParams()...)
	s.AddTool(mcp.NewTool(ToolCountAccessories, countOpts...),
		tools.WrapWithAuditLogging(ToolCountAccessories, handleCountAccessories, sc))

	// spruthub_get_accessory
	getTool := mcp.NewTool(ToolGetAccessory,
		mcp.WithDescription("Get one accessory by ID with its services and characteristics."),
		mcp.WithNumber("accessoryId",
			mcp.Required(),
			mcp.Description("Accessory ID"),
		),
		mcp.WithBoolean("summary",
			mcp.Description("Return the compact projection instead of the full accessory (default false)"),
		),
	)
	s.AddTool(getTool, tools.WrapWithAuditLogging(ToolGetAccessory, handleGetAccessory, sc))

	// spruthub_control_characteristic
	controlTool := mcp.NewTool(ToolControlCharacteristic,
		mcp.WithDescription(`Write a value to a characteristic, e.g. switch a light on.
Use spruthub_get_accessory first to find the service and characteristic IDs; only
characteristics with control.write=true accept values. Disabled in read-only mode.`),
		mcp.WithNumber("accessoryId",
			mcp.Required(),
			mcp.Description("Accessory ID"),
		),
		mcp.WithNumber("serviceId",
			mcp.Required(),
			mcp.Description("Service ID (sId)"),
		),
		mcp.WithNumber("characteristicId",
			mcp.Required(),
			mcp.Description("Characteristic ID (cId)"),
		),
		mcp.WithString("value",
			mcp.Required(),
			mcp.Description("New value, e.g. \"true\", \"75\" or \"21.5\"; converted to the characteristic's current value type"),
		),
	)
	s.AddTool(controlTool, tools.WrapWithAuditLogging(ToolControlCharacteristic, handleControlCharacteristic, sc, tools.Mutating()))

	return nil
}
