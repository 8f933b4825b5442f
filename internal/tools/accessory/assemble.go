package accessory

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shady2k/spruthub-mcp-server/internal/spruthub"
	"github.com/shady2k/spruthub-mcp-server/internal/tools/output"
)

// Summarize projects an accessory to its compact shape.
func Summarize(a spruthub.Accessory) Summary {
	return Summary{
		ID:            a.ID,
		Name:          a.Name,
		Manufacturer:  a.Manufacturer,
		Model:         a.Model,
		Online:        a.Online,
		RoomID:        a.RoomID,
		ServicesCount: len(a.Services),
		Controllable:  a.IsControllable(),
	}
}

// project returns summaries or full accessories as the data payload.
func project(items []spruthub.Accessory, summary bool) any {
	if !summary {
		out := make([]spruthub.Accessory, len(items))
		copy(out, items)
		return out
	}
	out := make([]Summary, 0, len(items))
	for _, a := range items {
		out = append(out, Summarize(a))
	}
	return out
}

// describeFilters merges the resolved filters and display flags for meta.filters.
func describeFilters(filters FilterSpec, display output.ResolvedDisplay) map[string]any {
	m := filters.ToMap()
	m["summary"] = display.Summary
	m["metaOnly"] = display.MetaOnly
	return m
}

// Assemble builds the listing envelope for one page.
//
// The first text block is the count statement. Unless display.MetaOnly is set,
// a JSON block with the page items follows and meta.accessories carries the
// same items, either as summaries or as full accessories.
func Assemble(page output.Page[spruthub.Accessory], display output.ResolvedDisplay, filters FilterSpec, filterDesc string) output.Envelope {
	statement := output.CountStatement(page, "accessory", "accessories", filterDesc)
	meta := output.PageMeta(page, describeFilters(filters, display))

	if display.MetaOnly {
		if page.TotalCount > 0 {
			statement += ". Items omitted (metaOnly); narrow the filters or set metaOnly=false to list them"
		}
		return output.Envelope{
			Content: []mcp.TextContent{mcp.NewTextContent(statement)},
			Meta:    meta,
		}
	}

	items := project(page.Items, display.Summary)
	meta.Accessories = items
	return output.Envelope{
		Content: []mcp.TextContent{
			mcp.NewTextContent(statement),
			output.JSONBlock(items),
		},
		Meta: meta,
	}
}

// CountStats computes the breakdown for the counting tool. Rooms are ordered by ID.
func CountStats(accessories []spruthub.Accessory) Stats {
	var stats Stats
	byRoom := make(map[int]int)
	for _, a := range accessories {
		if a.Online {
			stats.Online++
		} else {
			stats.Offline++
		}
		if a.IsControllable() {
			stats.Controllable++
		}
		byRoom[a.RoomID]++
	}

	stats.ByRoom = make([]RoomCount, 0, len(byRoom))
	for _, roomID := range slices.Sorted(maps.Keys(byRoom)) {
		stats.ByRoom = append(stats.ByRoom, RoomCount{RoomID: roomID, Count: byRoom[roomID]})
	}
	return stats
}

// AssembleCount builds the meta-only envelope of the counting tool.
func AssembleCount(filtered []spruthub.Accessory, filters FilterSpec, maxPerPage int) output.Envelope {
	stats := CountStats(filtered)
	total := len(filtered)

	statement := fmt.Sprintf("Found %d %s%s: %d online, %d offline, %d controllable",
		total, output.Pluralize(total, "accessory", "accessories"), BuildFilterDescription(filters),
		stats.Online, stats.Offline, stats.Controllable)

	if len(stats.ByRoom) > 0 {
		busiest := slices.MaxFunc(stats.ByRoom, func(a, b RoomCount) int {
			return cmp.Or(cmp.Compare(a.Count, b.Count), cmp.Compare(b.RoomID, a.RoomID))
		})
		statement += fmt.Sprintf(" across %d %s (most in room %d: %d)",
			len(stats.ByRoom), output.Pluralize(len(stats.ByRoom), "room", "rooms"), busiest.RoomID, busiest.Count)
	}

	// Pagination fields describe how a listing with the same filters would page.
	page := output.Paginate(filtered, 1, maxPerPage, maxPerPage)
	filterMap := filters.ToMap()
	filterMap["metaOnly"] = true
	meta := output.PageMeta(page, filterMap)
	meta.Stats = stats

	return output.Envelope{
		Content: []mcp.TextContent{mcp.NewTextContent(statement)},
		Meta:    meta,
	}
}
