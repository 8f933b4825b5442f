package spruthub

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotConnected is returned when the hub connection is unavailable.
	ErrNotConnected = errors.New("not connected to Sprut.hub")

	// ErrClientClosed is returned for calls made after Close.
	ErrClientClosed = errors.New("hub client is closed")

	// ErrAccessoryNotFound is returned when an accessory ID is not in the inventory.
	ErrAccessoryNotFound = errors.New("accessory not found")

	// ErrLoginFailed is returned when the hub does not issue a session token.
	ErrLoginFailed = errors.New("hub login failed")
)

// MissingConfigError reports connection settings that must be provided
// before a hub client can be established.
type MissingConfigError struct {
	Missing []string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("missing Sprut.hub connection parameters: %s (set them in the environment or the config file)",
		strings.Join(e.Missing, ", "))
}

// RPCError is an error object returned by the hub.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("hub error %d: %s", e.Code, e.Message)
}

// IsMissingConfig reports whether err is a *MissingConfigError.
func IsMissingConfig(err error) bool {
	var target *MissingConfigError
	return errors.As(err, &target)
}
