package accessory

import (
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// capabilityMap translates a coarse device-type token into the characteristic
// type substrings that identify it. Keep entries in sync with clients that
// already send these tokens; changing a list changes which accessories match.
var capabilityMap = map[string][]string{
	"air_quality": {"airqualitysensor", "airquality"},
	"temperature": {"temperature", "currenttemperature"},
	"humidity":    {"humidity", "currentrelativehumidity"},
	"co2":         {"carbondioxide", "co2"},
	"pm25":        {"pm2_5density", "pm25"},
	"pm10":        {"pm10density", "pm10"},
	"voc":         {"vocdensity", "voc"},
	"light":       {"brightness", "hue", "saturation", "on"},
	"switch":      {"on", "switch"},
	"motion":      {"motiondetected", "motion"},
	"contact":     {"contactsensorstate", "contact"},
}

// CapabilityTerms returns the characteristic type substrings for a device-type
// token. Unknown tokens map to themselves.
func CapabilityTerms(token string) []string {
	key := fold(token)
	if terms, ok := capabilityMap[key]; ok {
		out := make([]string, len(terms))
		copy(out, terms)
		return out
	}
	return []string{key}
}

// MatchesCapability reports whether a characteristic type matches the device-type token.
// Matching is a case-insensitive substring test, so "light" matches "On" and,
// because "contactsensorstate" contains "on", contact sensors too.
func MatchesCapability(characteristicType, token string) bool {
	if token == "" {
		return false
	}
	ct := fold(characteristicType)
	for _, term := range CapabilityTerms(token) {
		if strings.Contains(ct, term) {
			return true
		}
	}
	return false
}

// KnownCapabilities returns the device-type tokens with a dedicated mapping, sorted.
func KnownCapabilities() []string {
	return slices.Sorted(maps.Keys(capabilityMap))
}

// fold case-folds s for comparison. A Caser is stateful, so one is made per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// containsFold reports whether substr is within s, ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(fold(s), fold(substr))
}
