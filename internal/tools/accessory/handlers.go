package accessory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shady2k/spruthub-mcp-server/internal/instrumentation"
	"github.com/shady2k/spruthub-mcp-server/internal/logging"
	"github.com/shady2k/spruthub-mcp-server/internal/server"
	"github.com/shady2k/spruthub-mcp-server/internal/spruthub"
	"github.com/shady2k/spruthub-mcp-server/internal/tools"
	"github.com/shady2k/spruthub-mcp-server/internal/tools/output"
)

func fetchAccessories(ctx context.Context, sc *server.ServerContext) ([]spruthub.Accessory, error) {
	return tools.CallHub(ctx, sc, instrumentation.OperationListAccessories,
		func(ctx context.Context, c spruthub.Client) ([]spruthub.Accessory, error) {
			return c.ListAccessories(ctx)
		})
}

// handleListAccessories runs the full shaping pipeline over a fresh inventory snapshot.
func handleListAccessories(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	filters, err := ParseFilterSpec(args)
	if err != nil {
		return tools.BadInput(err), nil
	}
	requested, err := tools.ParseDisplaySpec(args)
	if err != nil {
		return tools.BadInput(err), nil
	}

	accessories, err := fetchAccessories(ctx, sc)
	if err != nil {
		return tools.UpstreamError("list accessories", err), nil
	}

	filtered := ApplyFilters(accessories, filters)
	logFiltered(sc, ToolListAccessories, filters, len(accessories), len(filtered))

	processor := sc.OutputProcessor()
	spec, _ := processor.Defaults(ctx, ToolListAccessories, len(filtered), requested)
	display := processor.Resolve(spec)
	page := output.Paginate(filtered, display.Page, display.Limit, processor.Config().MaxDevicesPerPage)

	env := Assemble(page, display, filters, BuildFilterDescription(filters))
	return processor.Finalize(ctx, ToolListAccessories, env), nil
}

// handleCountAccessories filters the inventory and returns counts only.
func handleCountAccessories(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	filters, err := ParseFilterSpec(request.GetArguments())
	if err != nil {
		return tools.BadInput(err), nil
	}

	accessories, err := fetchAccessories(ctx, sc)
	if err != nil {
		return tools.UpstreamError("count accessories", err), nil
	}

	filtered := ApplyFilters(accessories, filters)
	logFiltered(sc, ToolCountAccessories, filters, len(accessories), len(filtered))

	processor := sc.OutputProcessor()
	env := AssembleCount(filtered, filters, processor.Config().MaxDevicesPerPage)
	return processor.Finalize(ctx, ToolCountAccessories, env), nil
}

func logFiltered(sc *server.ServerContext, tool string, filters FilterSpec, fetched, kept int) {
	if !filters.Active() {
		return
	}
	logger := logging.WithTool(sc.Logger(), tool)
	if filters.RoomID != nil {
		logger = logger.With(logging.RoomID(*filters.RoomID))
	}
	logger.Debug("accessories filtered", slog.Int("fetched", fetched), logging.Count(kept))
}

// handleGetAccessory returns a single accessory, in full unless summary is requested.
func handleGetAccessory(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	id, err := tools.RequiredInt(args, "accessoryId")
	if err != nil {
		return tools.BadInput(err), nil
	}
	summary, err := tools.OptionalBool(args, "summary")
	if err != nil {
		return tools.BadInput(err), nil
	}

	accessories, err := fetchAccessories(ctx, sc)
	if err != nil {
		return tools.UpstreamError("get accessory", err), nil
	}

	accessory, ok := findAccessory(accessories, id)
	if !ok {
		return tools.UpstreamError("get accessory", fmt.Errorf("%w: %d", spruthub.ErrAccessoryNotFound, id)), nil
	}

	display := output.ResolvedDisplay{Summary: summary != nil && *summary, Page: 1, Limit: 1}
	page := output.Paginate([]spruthub.Accessory{accessory}, 1, 1, 1)
	env := Assemble(page, display, FilterSpec{}, fmt.Sprintf(" with ID %d", id))
	env.Meta.Filters["accessoryId"] = id

	processor := sc.OutputProcessor()
	return processor.Finalize(ctx, ToolGetAccessory, env), nil
}

// handleControlCharacteristic writes a value after checking the characteristic accepts writes.
func handleControlCharacteristic(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if result := tools.CheckMutatingOperation(sc, "control"); result != nil {
		return result, nil
	}

	args := request.GetArguments()
	var cmd spruthub.Command
	var err error
	if cmd.AccessoryID, err = tools.RequiredInt(args, "accessoryId"); err != nil {
		return tools.BadInput(err), nil
	}
	if cmd.ServiceID, err = tools.RequiredInt(args, "serviceId"); err != nil {
		return tools.BadInput(err), nil
	}
	if cmd.CharacteristicID, err = tools.RequiredInt(args, "characteristicId"); err != nil {
		return tools.BadInput(err), nil
	}
	raw, ok := args["value"]
	if !ok || raw == nil {
		return tools.BadInput(errors.New("value is required")), nil
	}

	accessories, err := fetchAccessories(ctx, sc)
	if err != nil {
		return tools.UpstreamError("control characteristic", err), nil
	}

	accessory, ok := findAccessory(accessories, cmd.AccessoryID)
	if !ok {
		return tools.UpstreamError("control characteristic",
			fmt.Errorf("%w: %d", spruthub.ErrAccessoryNotFound, cmd.AccessoryID)), nil
	}
	characteristic, ok := accessory.FindCharacteristic(cmd.ServiceID, cmd.CharacteristicID)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Accessory %d has no characteristic %d/%d",
			cmd.AccessoryID, cmd.ServiceID, cmd.CharacteristicID)), nil
	}
	if !characteristic.Writable() {
		return mcp.NewToolResultError(fmt.Sprintf("Characteristic %s (%d/%d) of %q is read-only",
			characteristic.Type, cmd.ServiceID, cmd.CharacteristicID, accessory.Name)), nil
	}

	cmd.Value, err = coerceValue(raw, currentValue(characteristic))
	if err != nil {
		return tools.BadInput(err), nil
	}

	_, err = tools.CallHub(ctx, sc, instrumentation.OperationSendCommand,
		func(ctx context.Context, c spruthub.Client) (struct{}, error) {
			return struct{}{}, c.SendCommand(ctx, cmd)
		})
	if err != nil {
		return tools.UpstreamError("control characteristic", err), nil
	}

	sc.Logger().Info("characteristic updated",
		logging.AccessoryID(cmd.AccessoryID),
		logging.CharacteristicID(cmd.ServiceID, cmd.CharacteristicID))

	return mcp.NewToolResultText(fmt.Sprintf("Set %s (%d/%d) of %q to %v",
		characteristic.Type, cmd.ServiceID, cmd.CharacteristicID, accessory.Name, cmd.Value)), nil
}

func findAccessory(accessories []spruthub.Accessory, id int) (spruthub.Accessory, bool) {
	for _, a := range accessories {
		if a.ID == id {
			return a, true
		}
	}
	return spruthub.Accessory{}, false
}

func currentValue(c spruthub.Characteristic) any {
	if c.Value != nil {
		return c.Value
	}
	if c.Control != nil {
		return c.Control.Value
	}
	return nil
}

// coerceValue converts a requested value to the type of the characteristic's
// current value. Without a current value, strings are read as bool, then
// number, then kept as text.
func coerceValue(raw, current any) (any, error) {
	switch current.(type) {
	case bool:
		return toBool(raw)
	case float64, float32, int, int64:
		return toNumber(raw)
	case string:
		return fmt.Sprint(raw), nil
	}

	if s, ok := raw.(string); ok {
		if b, err := toBool(s); err == nil {
			return b, nil
		}
		if n, err := toNumber(s); err == nil {
			return n, nil
		}
		return s, nil
	}
	return raw, nil
}

func toBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case float64:
		return v != 0, nil
	case int:
		return v != 0, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "on":
			return true, nil
		case "off":
			return false, nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, fmt.Errorf("value %q is not a boolean", v)
		}
		return b, nil
	default:
		return false, fmt.Errorf("value %v is not a boolean", raw)
	}
}

// toNumber returns an int for whole values and a float64 otherwise.
func toNumber(raw any) (any, error) {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case int:
		return v, nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a number", v)
		}
		f = parsed
	default:
		return nil, fmt.Errorf("value %v is not a number", raw)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("value %v is not a finite number", f)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int(f), nil
	}
	return f, nil
}
