package accessory

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shady2k/spruthub-mcp-server/internal/spruthub"
	"github.com/shady2k/spruthub-mcp-server/internal/spruthub/testdata"
	"github.com/shady2k/spruthub-mcp-server/internal/tools/output"
)

func TestSummarize(t *testing.T) {
	s := Summarize(testdata.Lightbulb(7, 2, "Desk Lamp"))
	assert.Equal(t, Summary{
		ID:            7,
		Name:          "Desk Lamp",
		Manufacturer:  "Aqara",
		Model:         "ZNLDP12LM",
		Online:        true,
		RoomID:        2,
		ServicesCount: 2,
		Controllable:  true,
	}, s)

	assert.False(t, Summarize(testdata.ContactSensor(1, 1, "Door")).Controllable)
}

func TestAssemble(t *testing.T) {
	inventory := testdata.Inventory(25)
	filters := FilterSpec{RoomID: intPtr(1)}

	t.Run("summary page", func(t *testing.T) {
		page := output.Paginate(inventory, 2, 10, 20)
		display := output.ResolvedDisplay{Summary: true, Page: 2, Limit: 10}

		env := Assemble(page, display, filters, BuildFilterDescription(filters))

		require.Len(t, env.Content, 2)
		assert.Equal(t, "Found 25 accessories (in room 1), showing page 2 of 3 (10 per page)", env.Content[0].Text)

		var items []Summary
		require.NoError(t, json.Unmarshal([]byte(env.Content[1].Text), &items))
		require.Len(t, items, 10)
		assert.Equal(t, 11, items[0].ID)

		assert.Equal(t, 25, env.Meta.TotalCount)
		assert.Equal(t, 3, env.Meta.TotalPages)
		assert.Equal(t, 2, env.Meta.CurrentPage)
		assert.True(t, env.Meta.HasMore)
		assert.Equal(t, map[string]any{"roomId": 1, "summary": true, "metaOnly": false}, env.Meta.Filters)
		assert.IsType(t, []Summary{}, env.Meta.Accessories)
	})

	t.Run("full page", func(t *testing.T) {
		page := output.Paginate(inventory[:3], 1, 20, 20)
		display := output.ResolvedDisplay{Summary: false, Page: 1, Limit: 20}

		env := Assemble(page, display, FilterSpec{}, "")

		require.Len(t, env.Content, 2)
		assert.Equal(t, "Found 3 accessories", env.Content[0].Text)
		full, ok := env.Meta.Accessories.([]spruthub.Accessory)
		require.True(t, ok)
		require.Len(t, full, 3)
		assert.NotEmpty(t, full[0].Services)
	})

	t.Run("meta only", func(t *testing.T) {
		page := output.Paginate(inventory, 1, 10, 20)
		display := output.ResolvedDisplay{Summary: true, Page: 1, Limit: 10, MetaOnly: true}

		env := Assemble(page, display, FilterSpec{}, "")

		require.Len(t, env.Content, 1)
		assert.Contains(t, env.Content[0].Text, "Found 25 accessories")
		assert.Contains(t, env.Content[0].Text, "Items omitted (metaOnly)")
		assert.Nil(t, env.Meta.Accessories)
		assert.Equal(t, 25, env.Meta.TotalCount)
		assert.Equal(t, true, env.Meta.Filters["metaOnly"])
	})

	t.Run("empty result", func(t *testing.T) {
		page := output.Paginate([]spruthub.Accessory{}, 1, 10, 20)
		display := output.ResolvedDisplay{Summary: true, Page: 1, Limit: 10, MetaOnly: true}

		env := Assemble(page, display, FilterSpec{NameFilter: "nothing"}, ` (name contains "nothing")`)

		require.Len(t, env.Content, 1)
		assert.Equal(t, `Found 0 accessories (name contains "nothing")`, env.Content[0].Text)
		assert.Equal(t, 0, env.Meta.TotalPages)
		assert.False(t, env.Meta.HasMore)
	})
}

func TestCountStats(t *testing.T) {
	inventory := testdata.Inventory(12)
	stats := CountStats(inventory)

	// Sensors with IDs divisible by 4 are offline: 4, 8 and 12.
	assert.Equal(t, 9, stats.Online)
	assert.Equal(t, 3, stats.Offline)
	assert.Equal(t, 6, stats.Controllable)
	assert.Equal(t, []RoomCount{
		{RoomID: 1, Count: 4},
		{RoomID: 2, Count: 4},
		{RoomID: 3, Count: 4},
	}, stats.ByRoom)
}

func TestAssembleCount(t *testing.T) {
	inventory := []spruthub.Accessory{
		testdata.Lightbulb(1, 2, "Lamp"),
		testdata.Lightbulb(2, 2, "Lamp 2"),
		testdata.TemperatureSensor(3, 1, "Sensor", false),
	}

	env := AssembleCount(inventory, FilterSpec{OnlineOnly: false, ManufacturerFilter: "a"}, 2)

	require.Len(t, env.Content, 1)
	assert.Equal(t,
		`Found 3 accessories (manufacturer "a"): 2 online, 1 offline, 2 controllable across 2 rooms (most in room 2: 2)`,
		env.Content[0].Text)
	assert.Equal(t, 3, env.Meta.TotalCount)
	assert.Equal(t, 2, env.Meta.TotalPages)
	assert.Equal(t, 2, env.Meta.PageSize)
	assert.True(t, env.Meta.HasMore)
	assert.Nil(t, env.Meta.Accessories)
	assert.Equal(t, map[string]any{"manufacturerFilter": "a", "metaOnly": true}, env.Meta.Filters)

	stats, ok := env.Meta.Stats.(Stats)
	require.True(t, ok)
	assert.Equal(t, 2, stats.Controllable)
}

func TestAssembleCount_Empty(t *testing.T) {
	env := AssembleCount(nil, FilterSpec{}, 20)

	require.Len(t, env.Content, 1)
	assert.Equal(t, "Found 0 accessories: 0 online, 0 offline, 0 controllable", env.Content[0].Text)
	assert.Equal(t, 0, env.Meta.TotalCount)
}
