package hub

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shady2k/spruthub-mcp-server/internal/instrumentation"
	"github.com/shady2k/spruthub-mcp-server/internal/server"
	"github.com/shady2k/spruthub-mcp-server/internal/spruthub"
	"github.com/shady2k/spruthub-mcp-server/internal/tools"
	"github.com/shady2k/spruthub-mcp-server/internal/tools/output"
)

func handleListHubs(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	page, err := tools.OptionalInt(args, "page")
	if err != nil {
		return tools.BadInput(err), nil
	}
	limit, err := tools.OptionalInt(args, "limit")
	if err != nil {
		return tools.BadInput(err), nil
	}

	hubs, err := tools.CallHub(ctx, sc, instrumentation.OperationListHubs,
		func(ctx context.Context, c spruthub.Client) ([]spruthub.Hub, error) {
			return c.ListHubs(ctx)
		})
	if err != nil {
		return tools.UpstreamError("list hubs", err), nil
	}

	processor := sc.OutputProcessor()
	display := processor.Resolve(output.DisplaySpec{Page: page, Limit: limit})
	p := output.Paginate(hubs, display.Page, display.Limit, processor.Config().MaxDevicesPerPage)

	online := 0
	for _, h := range hubs {
		if h.Online {
			online++
		}
	}
	statement := output.CountStatement(p, "hub", "hubs", "")
	statement += fmt.Sprintf(" (%d online)", online)

	meta := output.PageMeta(p, nil)
	meta.Hubs = p.Items

	env := output.Envelope{
		Content: []mcp.TextContent{
			mcp.NewTextContent(statement),
			output.JSONBlock(p.Items),
		},
		Meta: meta,
	}
	return processor.Finalize(ctx, ToolListHubs, env), nil
}
