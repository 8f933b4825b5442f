package output

// Default limits for response shaping.
// These are tuned for typical LLM context windows.
const (
	// DefaultMaxResponseSize is the default hard limit on response size in characters.
	DefaultMaxResponseSize = 50000

	// DefaultMaxDevicesPerPage is the default cap on the page size.
	DefaultMaxDevicesPerPage = 20

	// DefaultWarnThreshold is the response size above which a warning is logged.
	DefaultWarnThreshold = 30000

	// DefaultAutoSummaryThreshold is the item count above which summary mode is switched on.
	DefaultAutoSummaryThreshold = 10

	// DefaultPageSize is used when neither the caller nor smart defaults set a limit.
	DefaultPageSize = 20

	// AbsoluteMaxResponseSize is the absolute maximum response size (1M characters).
	AbsoluteMaxResponseSize = 1_000_000

	// AbsoluteMaxDevicesPerPage is the absolute maximum page size.
	AbsoluteMaxDevicesPerPage = 500
)

// Fixed smart-default cut points. They are configuration constants, not derived values.
const (
	// LimitThreshold is the item count above which the page size is capped at CappedLimit.
	LimitThreshold = 50

	// CappedLimit is the page size applied above LimitThreshold.
	CappedLimit = 10

	// MetaOnlyThreshold is the item count above which metaOnly is switched on.
	MetaOnlyThreshold = 100
)

// Config holds configuration for response shaping.
type Config struct {
	// MaxResponseSize is the hard limit on response size in characters.
	// Default: 50000, Absolute max: 1000000
	MaxResponseSize int `json:"maxResponseSize" yaml:"maxResponseSize"`

	// MaxDevicesPerPage caps the requested page size.
	// Default: 20, Absolute max: 500
	MaxDevicesPerPage int `json:"maxDevicesPerPage" yaml:"maxDevicesPerPage"`

	// WarnThreshold is the response size above which a warning is logged.
	// Default: 30000
	WarnThreshold int `json:"warnThreshold" yaml:"warnThreshold"`

	// EnableTruncation enables cutting oversized responses.
	// Default: true
	EnableTruncation bool `json:"enableTruncation" yaml:"enableTruncation"`

	// EnableSmartDefaults enables size-driven display defaults.
	// Default: true
	EnableSmartDefaults bool `json:"enableSmartDefaults" yaml:"enableSmartDefaults"`

	// AutoSummaryThreshold is the item count above which summary mode is switched on.
	// Default: 10
	AutoSummaryThreshold int `json:"autoSummaryThreshold" yaml:"autoSummaryThreshold"`
}

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxResponseSize:      DefaultMaxResponseSize,
		MaxDevicesPerPage:    DefaultMaxDevicesPerPage,
		WarnThreshold:        DefaultWarnThreshold,
		EnableTruncation:     true,
		EnableSmartDefaults:  true,
		AutoSummaryThreshold: DefaultAutoSummaryThreshold,
	}
}

// Validate validates the configuration and applies absolute limits.
// It returns a validated copy with any out-of-range values capped.
func (c *Config) Validate() *Config {
	validated := *c

	// Apply minimum bounds
	if validated.MaxResponseSize <= 0 {
		validated.MaxResponseSize = DefaultMaxResponseSize
	}
	if validated.MaxDevicesPerPage <= 0 {
		validated.MaxDevicesPerPage = DefaultMaxDevicesPerPage
	}
	if validated.WarnThreshold <= 0 {
		validated.WarnThreshold = DefaultWarnThreshold
	}
	if validated.AutoSummaryThreshold < 0 {
		validated.AutoSummaryThreshold = DefaultAutoSummaryThreshold
	}

	// Apply absolute maximum bounds
	if validated.MaxResponseSize > AbsoluteMaxResponseSize {
		validated.MaxResponseSize = AbsoluteMaxResponseSize
	}
	if validated.MaxDevicesPerPage > AbsoluteMaxDevicesPerPage {
		validated.MaxDevicesPerPage = AbsoluteMaxDevicesPerPage
	}

	return &validated
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
