package accessory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilityTerms(t *testing.T) {
	assert.Equal(t, []string{"temperature", "currenttemperature"}, CapabilityTerms("Temperature"))
	assert.Equal(t, []string{"thermostat"}, CapabilityTerms("Thermostat"))

	terms := CapabilityTerms("co2")
	terms[0] = "mutated"
	assert.Equal(t, "carbondioxide", CapabilityTerms("co2")[0])
}

func TestMatchesCapability(t *testing.T) {
	tests := []struct {
		characteristic string
		token          string
		want           bool
	}{
		{"CurrentTemperature", "temperature", true},
		{"CurrentTemperature", "air_quality", false},
		{"AirQuality", "air_quality", true},
		{"CarbonDioxideLevel", "co2", true},
		{"PM2_5Density", "pm25", true},
		{"CurrentRelativeHumidity", "humidity", true},
		{"On", "light", true},
		{"Brightness", "LIGHT", true},
		{"On", "switch", true},
		{"ContactSensorState", "contact", true},
		{"ContactSensorState", "light", true},
		{"MotionDetected", "motion", true},
		{"MotionDetected", "contact", false},
		{"TargetPosition", "position", true},
		{"On", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.characteristic+"/"+tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesCapability(tt.characteristic, tt.token))
		})
	}
}

func TestKnownCapabilities(t *testing.T) {
	known := KnownCapabilities()
	assert.IsIncreasing(t, known)
	assert.Contains(t, known, "air_quality")
	assert.Len(t, known, len(capabilityMap))
}
