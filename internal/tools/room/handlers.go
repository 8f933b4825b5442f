package room

import (
	"cmp"
	"context"
	"slices"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/shady2k/spruthub-mcp-server/internal/instrumentation"
	"github.com/shady2k/spruthub-mcp-server/internal/server"
	"github.com/shady2k/spruthub-mcp-server/internal/spruthub"
	"github.com/shady2k/spruthub-mcp-server/internal/tools"
	"github.com/shady2k/spruthub-mcp-server/internal/tools/output"
)

// Summary is a room with its accessory counts.
type Summary struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	AccessoriesCount int    `json:"accessoriesCount"`
	OnlineCount      int    `json:"onlineCount"`
}

// Summarize joins rooms with the accessories assigned to them. Rooms are
// ordered by their display order, then by ID.
func Summarize(rooms []spruthub.Room, accessories []spruthub.Accessory) []Summary {
	sorted := slices.Clone(rooms)
	slices.SortStableFunc(sorted, func(a, b spruthub.Room) int {
		return cmp.Or(cmp.Compare(a.Order, b.Order), cmp.Compare(a.ID, b.ID))
	})

	out := make([]Summary, 0, len(sorted))
	for _, r := range sorted {
		s := Summary{ID: r.ID, Name: r.Name}
		for _, a := range accessories {
			if !spruthub.InRoom(a, r.ID) {
				continue
			}
			s.AccessoriesCount++
			if a.Online {
				s.OnlineCount++
			}
		}
		out = append(out, s)
	}
	return out
}

func handleListRooms(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	var requested output.DisplaySpec
	var err error
	if requested.Page, err = tools.OptionalInt(args, "page"); err != nil {
		return tools.BadInput(err), nil
	}
	if requested.Limit, err = tools.OptionalInt(args, "limit"); err != nil {
		return tools.BadInput(err), nil
	}
	if requested.MetaOnly, err = tools.OptionalBool(args, "metaOnly"); err != nil {
		return tools.BadInput(err), nil
	}

	var rooms []spruthub.Room
	var accessories []spruthub.Accessory

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rooms, err = tools.CallHub(gctx, sc, instrumentation.OperationListRooms,
			func(ctx context.Context, c spruthub.Client) ([]spruthub.Room, error) {
				return c.ListRooms(ctx)
			})
		return err
	})
	g.Go(func() error {
		var err error
		accessories, err = tools.CallHub(gctx, sc, instrumentation.OperationListAccessories,
			func(ctx context.Context, c spruthub.Client) ([]spruthub.Accessory, error) {
				return c.ListAccessories(ctx)
			})
		return err
	})
	if err := g.Wait(); err != nil {
		return tools.UpstreamError("list rooms", err), nil
	}

	summaries := Summarize(rooms, accessories)

	processor := sc.OutputProcessor()
	spec, _ := processor.Defaults(ctx, ToolListRooms, len(summaries), requested)
	display := processor.Resolve(spec)
	page := output.Paginate(summaries, display.Page, display.Limit, processor.Config().MaxDevicesPerPage)

	statement := output.CountStatement(page, "room", "rooms", "")
	meta := output.PageMeta(page, map[string]any{"metaOnly": display.MetaOnly})

	env := output.Envelope{Meta: meta}
	if display.MetaOnly {
		env.Content = []mcp.TextContent{mcp.NewTextContent(statement)}
	} else {
		env.Meta.Rooms = page.Items
		env.Content = []mcp.TextContent{
			mcp.NewTextContent(statement),
			output.JSONBlock(page.Items),
		}
	}
	return processor.Finalize(ctx, ToolListRooms, env), nil
}
