package accessory

import (
	"github.com/shady2k/spruthub-mcp-server/internal/tools"
)

// FilterSpec selects accessories. Every field is optional; the zero value matches everything.
type FilterSpec struct {
	RoomID             *int   `json:"roomId,omitempty"`
	ControllableOnly   bool   `json:"controllableOnly,omitempty"`
	NameFilter         string `json:"nameFilter,omitempty"`
	DeviceTypeFilter   string `json:"deviceTypeFilter,omitempty"`
	ManufacturerFilter string `json:"manufacturerFilter,omitempty"`
	ModelFilter        string `json:"modelFilter,omitempty"`
	OnlineOnly         bool   `json:"onlineOnly,omitempty"`
	OfflineOnly        bool   `json:"offlineOnly,omitempty"`
}

// Active reports whether any filter is set.
func (f FilterSpec) Active() bool {
	return f.RoomID != nil || f.ControllableOnly || f.NameFilter != "" || f.DeviceTypeFilter != "" ||
		f.ManufacturerFilter != "" || f.ModelFilter != "" || f.OnlineOnly || f.OfflineOnly
}

// ToMap returns the active filters keyed by their argument names, for meta.filters.
// OfflineOnly is dropped when OnlineOnly is also set, since it has no effect.
func (f FilterSpec) ToMap() map[string]any {
	m := make(map[string]any)
	if f.RoomID != nil {
		m["roomId"] = *f.RoomID
	}
	if f.ControllableOnly {
		m["controllableOnly"] = true
	}
	if f.NameFilter != "" {
		m["nameFilter"] = f.NameFilter
	}
	if f.DeviceTypeFilter != "" {
		m["deviceTypeFilter"] = f.DeviceTypeFilter
	}
	if f.ManufacturerFilter != "" {
		m["manufacturerFilter"] = f.ManufacturerFilter
	}
	if f.ModelFilter != "" {
		m["modelFilter"] = f.ModelFilter
	}
	if f.OnlineOnly {
		m["onlineOnly"] = true
	} else if f.OfflineOnly {
		m["offlineOnly"] = true
	}
	return m
}

// ParseFilterSpec reads the filter arguments of a tool request.
func ParseFilterSpec(args map[string]any) (FilterSpec, error) {
	var spec FilterSpec
	var err error

	if spec.RoomID, err = tools.OptionalInt(args, "roomId"); err != nil {
		return spec, err
	}

	for key, dst := range map[string]*bool{
		"controllableOnly": &spec.ControllableOnly,
		"onlineOnly":       &spec.OnlineOnly,
		"offlineOnly":      &spec.OfflineOnly,
	} {
		v, err := tools.OptionalBool(args, key)
		if err != nil {
			return spec, err
		}
		if v != nil {
			*dst = *v
		}
	}

	spec.NameFilter = tools.OptionalString(args, "nameFilter")
	spec.DeviceTypeFilter = tools.OptionalString(args, "deviceTypeFilter")
	spec.ManufacturerFilter = tools.OptionalString(args, "manufacturerFilter")
	spec.ModelFilter = tools.OptionalString(args, "modelFilter")
	return spec, nil
}

// Summary is the compact projection of an accessory.
type Summary struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Manufacturer  string `json:"manufacturer"`
	Model         string `json:"model"`
	Online        bool   `json:"online"`
	RoomID        int    `json:"roomId"`
	ServicesCount int    `json:"servicesCount"`
	Controllable  bool   `json:"controllable"`
}

// RoomCount is the number of accessories in one room.
type RoomCount struct {
	RoomID int `json:"roomId"`
	Count  int `json:"count"`
}

// Stats is the breakdown returned by the counting tool.
type Stats struct {
	Online       int         `json:"online"`
	Offline      int         `json:"offline"`
	Controllable int         `json:"controllable"`
	ByRoom       []RoomCount `json:"byRoom"`
}
