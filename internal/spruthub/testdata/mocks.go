// Package testdata provides a mock hub client and inventory fixtures for tests.
package testdata

import (
	"context"
	"fmt"
	"sync"

	"github.com/shady2k/spruthub-mcp-server/internal/spruthub"
)

// Compile-time interface compliance check.
var _ spruthub.Client = (*MockClient)(nil)

// MockClient implements spruthub.Client over in-memory fixtures.
// Commands received through SendCommand are recorded in order.
type MockClient struct {
	Accessories []spruthub.Accessory
	Rooms       []spruthub.Room
	Hubs        []spruthub.Hub

	ListErr    error
	CommandErr error
	NotOnline  bool

	mu       sync.Mutex
	commands []spruthub.Command
	calls    map[string]int
}

// ListAccessories implements spruthub.Client.
func (m *MockClient) ListAccessories(_ context.Context) ([]spruthub.Accessory, error) {
	m.record("ListAccessories")
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Accessories, nil
}

// ListRooms implements spruthub.Client.
func (m *MockClient) ListRooms(_ context.Context) ([]spruthub.Room, error) {
	m.record("ListRooms")
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Rooms, nil
}

// ListHubs implements spruthub.Client.
func (m *MockClient) ListHubs(_ context.Context) ([]spruthub.Hub, error) {
	m.record("ListHubs")
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Hubs, nil
}

// SendCommand implements spruthub.Client.
func (m *MockClient) SendCommand(_ context.Context, cmd spruthub.Command) error {
	m.record("SendCommand")
	if m.CommandErr != nil {
		return m.CommandErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = append(m.commands, cmd)
	return nil
}

// Connected implements spruthub.Client.
func (m *MockClient) Connected() bool {
	return !m.NotOnline
}

// Close implements spruthub.Client.
func (m *MockClient) Close() error {
	m.record("Close")
	return nil
}

// Commands returns the commands received so far.
func (m *MockClient) Commands() []spruthub.Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]spruthub.Command, len(m.commands))
	copy(out, m.commands)
	return out
}

// Calls returns how many times the named method was invoked.
func (m *MockClient) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockClient) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

// Lightbulb returns an online lightbulb with a writable On characteristic.
func Lightbulb(id, roomID int, name string) spruthub.Accessory {
	return spruthub.Accessory{
		ID:           id,
		Name:         name,
		Manufacturer: "Aqara",
		Model:        "ZNLDP12LM",
		Online:       true,
		RoomID:       roomID,
		Services: []spruthub.Service{
			{ID: 1, Type: "AccessoryInformation", Characteristics: []spruthub.Characteristic{
				{ID: 1, Type: "Name", Value: name},
			}},
			{ID: 13, Type: "Lightbulb", Name: name, Characteristics: []spruthub.Characteristic{
				{ID: 14, Type: "On", Value: false, Control: &spruthub.Control{Write: true, Value: false}},
				{ID: 15, Type: "Brightness", Value: 50, Control: &spruthub.Control{Write: true, Value: 50}},
			}},
		},
	}
}

// TemperatureSensor returns a read-only temperature sensor.
func TemperatureSensor(id, roomID int, name string, online bool) spruthub.Accessory {
	return spruthub.Accessory{
		ID:           id,
		Name:         name,
		Manufacturer: "Xiaomi",
		Model:        "WSDCGQ11LM",
		Online:       online,
		RoomID:       roomID,
		Services: []spruthub.Service{
			{ID: 10, Type: "TemperatureSensor", Characteristics: []spruthub.Characteristic{
				{ID: 11, Type: "CurrentTemperature", Value: 21.5},
			}},
		},
	}
}

// ContactSensor returns a read-only door sensor.
func ContactSensor(id, roomID int, name string) spruthub.Accessory {
	return spruthub.Accessory{
		ID:           id,
		Name:         name,
		Manufacturer: "Aqara",
		Model:        "MCCGQ11LM",
		Online:       true,
		RoomID:       roomID,
		Services: []spruthub.Service{
			{ID: 10, Type: "ContactSensor", Characteristics: []spruthub.Characteristic{
				{ID: 11, Type: "ContactSensorState", Value: 0},
			}},
		},
	}
}

// Inventory returns n accessories alternating between lightbulbs and
// temperature sensors, spread over three rooms.
func Inventory(n int) []spruthub.Accessory {
	out := make([]spruthub.Accessory, 0, n)
	for i := 1; i <= n; i++ {
		room := (i-1)%3 + 1
		if i%2 == 1 {
			out = append(out, Lightbulb(i, room, fmt.Sprintf("Lamp %d", i)))
		} else {
			out = append(out, TemperatureSensor(i, room, fmt.Sprintf("Sensor %d", i), i%4 != 0))
		}
	}
	return out
}

// Rooms returns three rooms with IDs 1..3.
func Rooms() []spruthub.Room {
	return []spruthub.Room{
		{ID: 1, Name: "Kitchen", Visible: true},
		{ID: 2, Name: "Bedroom", Visible: true},
		{ID: 3, Name: "Hall", Visible: true},
	}
}
