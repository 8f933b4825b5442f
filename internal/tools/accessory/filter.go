package accessory

import (
	"fmt"
	"strings"

	"github.com/shady2k/spruthub-mcp-server/internal/spruthub"
)

// ApplyFilters returns the accessories matching spec, in their original order.
//
// Predicates run in a fixed order:
//  1. room, decided by spruthub.InRoom
//  2. controllable only
//  3. name
//  4. device type (service type, or characteristic type via the capability map)
//  5. manufacturer, then model
//  6. online/offline, where onlineOnly wins when both are set
//
// The input slice is never modified; the result is always a new slice.
func ApplyFilters(accessories []spruthub.Accessory, spec FilterSpec) []spruthub.Accessory {
	result := make([]spruthub.Accessory, len(accessories))
	copy(result, accessories)

	if spec.RoomID != nil {
		roomID := *spec.RoomID
		result = keep(result, func(a spruthub.Accessory) bool {
			return spruthub.InRoom(a, roomID)
		})
	}

	if spec.ControllableOnly {
		controllable := make(map[int]struct{})
		for _, a := range result {
			if a.IsControllable() {
				controllable[a.ID] = struct{}{}
			}
		}
		result = keep(result, func(a spruthub.Accessory) bool {
			_, ok := controllable[a.ID]
			return ok
		})
	}

	if spec.NameFilter != "" {
		result = keep(result, func(a spruthub.Accessory) bool {
			return a.Name != "" && containsFold(a.Name, spec.NameFilter)
		})
	}

	if spec.DeviceTypeFilter != "" {
		result = keep(result, func(a spruthub.Accessory) bool {
			return matchesDeviceType(a, spec.DeviceTypeFilter)
		})
	}

	if spec.ManufacturerFilter != "" {
		result = keep(result, func(a spruthub.Accessory) bool {
			return containsFold(a.Manufacturer, spec.ManufacturerFilter)
		})
	}

	if spec.ModelFilter != "" {
		result = keep(result, func(a spruthub.Accessory) bool {
			return containsFold(a.Model, spec.ModelFilter)
		})
	}

	switch {
	case spec.OnlineOnly:
		result = keep(result, func(a spruthub.Accessory) bool { return a.Online })
	case spec.OfflineOnly:
		result = keep(result, func(a spruthub.Accessory) bool { return !a.Online })
	}

	return result
}

func matchesDeviceType(a spruthub.Accessory, token string) bool {
	for _, s := range a.Services {
		if containsFold(s.Type, token) {
			return true
		}
		for _, c := range s.Characteristics {
			if MatchesCapability(c.Type, token) {
				return true
			}
		}
	}
	return false
}

// keep filters in place; callers pass a slice they own.
func keep(items []spruthub.Accessory, pred func(spruthub.Accessory) bool) []spruthub.Accessory {
	out := items[:0]
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// BuildFilterDescription renders the active filters as " (clause, clause)" in
// predicate order, or "" when no filter is set.
func BuildFilterDescription(spec FilterSpec) string {
	var clauses []string
	if spec.RoomID != nil {
		clauses = append(clauses, fmt.Sprintf("in room %d", *spec.RoomID))
	}
	if spec.ControllableOnly {
		clauses = append(clauses, "controllable only")
	}
	if spec.NameFilter != "" {
		clauses = append(clauses, fmt.Sprintf("name contains %q", spec.NameFilter))
	}
	if spec.DeviceTypeFilter != "" {
		clauses = append(clauses, fmt.Sprintf("device type %q", spec.DeviceTypeFilter))
	}
	if spec.ManufacturerFilter != "" {
		clauses = append(clauses, fmt.Sprintf("manufacturer %q", spec.ManufacturerFilter))
	}
	if spec.ModelFilter != "" {
		clauses = append(clauses, fmt.Sprintf("model %q", spec.ModelFilter))
	}
	switch {
	case spec.OnlineOnly:
		clauses = append(clauses, "online only")
	case spec.OfflineOnly:
		clauses = append(clauses, "offline only")
	}

	if len(clauses) == 0 {
		return ""
	}
	return " (" + strings.Join(clauses, ", ") + ")"
}
