package spruthub

import "time"

// Environment variables that carry the hub connection parameters.
const (
	EnvURL      = "SPRUTHUB_WS_URL"
	EnvEmail    = "SPRUTHUB_EMAIL"
	EnvPassword = "SPRUTHUB_PASSWORD"
	EnvSerial   = "SPRUTHUB_SERIAL"
)

const (
	// DefaultRequestTimeout bounds a single request/response round trip.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultHandshakeTimeout bounds the WebSocket handshake.
	DefaultHandshakeTimeout = 10 * time.Second
)

// Config holds the hub connection parameters.
type Config struct {
	URL      string `json:"url" yaml:"url"`
	Email    string `json:"email" yaml:"email"`
	Password string `json:"-" yaml:"password"`
	Serial   string `json:"serial" yaml:"serial"`

	RequestTimeout   time.Duration `json:"requestTimeout" yaml:"requestTimeout"`
	HandshakeTimeout time.Duration `json:"handshakeTimeout" yaml:"handshakeTimeout"`
}

// Validate checks that every required connection parameter is present.
// It returns a *MissingConfigError listing the environment variables to set.
func (c Config) Validate() error {
	var missing []string
	if c.URL == "" {
		missing = append(missing, EnvURL)
	}
	if c.Email == "" {
		missing = append(missing, EnvEmail)
	}
	if c.Password == "" {
		missing = append(missing, EnvPassword)
	}
	if c.Serial == "" {
		missing = append(missing, EnvSerial)
	}
	if len(missing) > 0 {
		return &MissingConfigError{Missing: missing}
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = DefaultHandshakeTimeout
	}
	return c
}
