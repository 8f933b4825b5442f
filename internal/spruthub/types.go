package spruthub

// Accessory is a device exposed by the hub.
type Accessory struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Manufacturer string    `json:"manufacturer"`
	Model        string    `json:"model"`
	Online       bool      `json:"online"`
	RoomID       int       `json:"roomId"`
	Services     []Service `json:"services"`
}

// Service describes one capability of an accessory.
type Service struct {
	ID              int              `json:"sId"`
	Name            string           `json:"name,omitempty"`
	Type            string           `json:"type"`
	Characteristics []Characteristic `json:"characteristics"`
}

// Characteristic is a single readable or writable value of a service.
type Characteristic struct {
	ID      int      `json:"cId"`
	Type    string   `json:"type"`
	Value   any      `json:"value,omitempty"`
	Control *Control `json:"control,omitempty"`
}

// Control carries the controllability of a characteristic.
type Control struct {
	Write bool `json:"write"`
	Value any  `json:"value,omitempty"`
}

// Writable reports whether the characteristic accepts commands.
func (c Characteristic) Writable() bool {
	return c.Control != nil && c.Control.Write
}

// IsControllable reports whether any characteristic of the accessory is writable.
func (a Accessory) IsControllable() bool {
	for _, s := range a.Services {
		for _, c := range s.Characteristics {
			if c.Writable() {
				return true
			}
		}
	}
	return false
}

// FindCharacteristic returns the characteristic addressed by service and characteristic IDs.
func (a Accessory) FindCharacteristic(serviceID, characteristicID int) (Characteristic, bool) {
	for _, s := range a.Services {
		if s.ID != serviceID {
			continue
		}
		for _, c := range s.Characteristics {
			if c.ID == characteristicID {
				return c, true
			}
		}
	}
	return Characteristic{}, false
}

// Room groups accessories.
type Room struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Order   int    `json:"order,omitempty"`
	Visible bool   `json:"visible"`
}

// Hub is a Sprut.hub controller registered on the account.
type Hub struct {
	Serial   string `json:"serial"`
	Name     string `json:"name"`
	Online   bool   `json:"online"`
	Master   bool   `json:"master"`
	Version  string `json:"version,omitempty"`
	Platform string `json:"platform,omitempty"`
}

// Command writes a value to one characteristic.
type Command struct {
	AccessoryID      int `json:"aId"`
	ServiceID        int `json:"sId"`
	CharacteristicID int `json:"cId"`
	Value            any `json:"value"`
}

// InRoom reports whether the accessory is assigned to the room.
func InRoom(a Accessory, roomID int) bool {
	return a.RoomID == roomID
}
