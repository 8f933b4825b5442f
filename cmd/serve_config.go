package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/shady2k/spruthub-mcp-server/internal/server"
	"github.com/shady2k/spruthub-mcp-server/internal/spruthub"
	"github.com/shady2k/spruthub-mcp-server/internal/tools/output"
)

// Environment variables read by the serve and accessories commands, in
// addition to the hub connection variables defined in the spruthub package.
const (
	envMaxResponseSize      = "SPRUTHUB_MAX_RESPONSE_SIZE"
	envMaxDevicesPerPage    = "SPRUTHUB_MAX_DEVICES_PER_PAGE"
	envWarnThreshold        = "SPRUTHUB_WARN_THRESHOLD"
	envEnableTruncation     = "SPRUTHUB_ENABLE_TRUNCATION"
	envEnableSmartDefaults  = "SPRUTHUB_ENABLE_SMART_DEFAULTS"
	envAutoSummaryThreshold = "SPRUTHUB_AUTO_SUMMARY_THRESHOLD"
	envReadOnly             = "SPRUTHUB_READ_ONLY"
	envRequestTimeout       = "SPRUTHUB_REQUEST_TIMEOUT"
	envLogFormat            = "SPRUTHUB_LOG_FORMAT"
	envMetricsAddr          = "METRICS_ADDR"
)

// Log formats.
const (
	logFormatText = "text"
	logFormatJSON = "json"
)

// ServeConfig holds all configuration for the serve command.
type ServeConfig struct {
	// Transport settings
	Transport string `yaml:"transport"`
	HTTPAddr  string `yaml:"httpAddr"`

	// Endpoint paths
	SSEEndpoint     string `yaml:"sseEndpoint"`
	MessageEndpoint string `yaml:"messageEndpoint"`
	HTTPEndpoint    string `yaml:"httpEndpoint"`

	DebugMode bool   `yaml:"debug"`
	LogFormat string `yaml:"logFormat"`

	// ReadOnly blocks every tool that writes to the hub.
	ReadOnly bool `yaml:"readOnly"`

	Hub     spruthub.Config    `yaml:"hub"`
	Output  output.Config      `yaml:"output"`
	Metrics MetricsServeConfig `yaml:"metrics"`
}

// MetricsServeConfig configures the dedicated Prometheus metrics server.
// The server only starts when instrumentation is enabled.
type MetricsServeConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// newDefaultServeConfig returns the configuration used when nothing else is set.
func newDefaultServeConfig() ServeConfig {
	return ServeConfig{
		Transport:       transportStdio,
		HTTPAddr:        ":8080",
		SSEEndpoint:     "/sse",
		MessageEndpoint: "/message",
		HTTPEndpoint:    "/mcp",
		LogFormat:       logFormatText,
		Hub: spruthub.Config{
			RequestTimeout: spruthub.DefaultRequestTimeout,
		},
		Output: *output.DefaultConfig(),
		Metrics: MetricsServeConfig{
			Enabled: true,
			Addr:    server.DefaultMetricsAddr,
		},
	}
}

// resolveServeConfig layers the configuration sources. Later layers win:
// defaults, then the YAML file, then the environment, then flags the user set
// explicitly. flagValues holds the parsed flag values; only changed flags are applied.
func resolveServeConfig(fs *pflag.FlagSet, flagValues ServeConfig, configPath string) (ServeConfig, error) {
	config := newDefaultServeConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, &config); err != nil {
			return config, err
		}
	}

	applyEnv(&config)
	applyChangedFlags(fs, flagValues, &config)

	config.Output = *config.Output.Validate()
	return config, nil
}

// loadConfigFile decodes a YAML file over config. Keys missing from the file
// keep their current values.
func loadConfigFile(path string, config *ServeConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides config with every variable that is set. Invalid values
// are logged and ignored.
func applyEnv(config *ServeConfig) {
	loadEnvIfSet(&config.Hub.URL, spruthub.EnvURL)
	loadEnvIfSet(&config.Hub.Email, spruthub.EnvEmail)
	loadEnvIfSet(&config.Hub.Password, spruthub.EnvPassword)
	loadEnvIfSet(&config.Hub.Serial, spruthub.EnvSerial)
	loadEnvIfSet(&config.LogFormat, envLogFormat)
	loadEnvIfSet(&config.Metrics.Addr, envMetricsAddr)

	if d, ok := parseDurationEnv(os.Getenv(envRequestTimeout), envRequestTimeout); ok {
		config.Hub.RequestTimeout = d
	}
	if b, ok := parseBoolEnv(os.Getenv(envReadOnly), envReadOnly); ok {
		config.ReadOnly = b
	}

	if n, ok := parseIntEnv(os.Getenv(envMaxResponseSize), envMaxResponseSize); ok {
		config.Output.MaxResponseSize = n
	}
	if n, ok := parseIntEnv(os.Getenv(envMaxDevicesPerPage), envMaxDevicesPerPage); ok {
		config.Output.MaxDevicesPerPage = n
	}
	if n, ok := parseIntEnv(os.Getenv(envWarnThreshold), envWarnThreshold); ok {
		config.Output.WarnThreshold = n
	}
	if b, ok := parseBoolEnv(os.Getenv(envEnableTruncation), envEnableTruncation); ok {
		config.Output.EnableTruncation = b
	}
	if b, ok := parseBoolEnv(os.Getenv(envEnableSmartDefaults), envEnableSmartDefaults); ok {
		config.Output.EnableSmartDefaults = b
	}
	if n, ok := parseIntEnv(os.Getenv(envAutoSummaryThreshold), envAutoSummaryThreshold); ok {
		config.Output.AutoSummaryThreshold = n
	}
}

// applyChangedFlags copies the flags the user set explicitly into config.
// This properly handles explicit zero values such as --read-only=false.
func applyChangedFlags(fs *pflag.FlagSet, flags ServeConfig, config *ServeConfig) {
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}

	set("transport", func() { config.Transport = flags.Transport })
	set("http-addr", func() { config.HTTPAddr = flags.HTTPAddr })
	set("sse-endpoint", func() { config.SSEEndpoint = flags.SSEEndpoint })
	set("message-endpoint", func() { config.MessageEndpoint = flags.MessageEndpoint })
	set("http-endpoint", func() { config.HTTPEndpoint = flags.HTTPEndpoint })
	set("debug", func() { config.DebugMode = flags.DebugMode })
	set("log-format", func() { config.LogFormat = flags.LogFormat })
	set("read-only", func() { config.ReadOnly = flags.ReadOnly })

	set("ws-url", func() { config.Hub.URL = flags.Hub.URL })
	set("email", func() { config.Hub.Email = flags.Hub.Email })
	set("serial", func() { config.Hub.Serial = flags.Hub.Serial })
	set("request-timeout", func() { config.Hub.RequestTimeout = flags.Hub.RequestTimeout })

	set("max-response-size", func() { config.Output.MaxResponseSize = flags.Output.MaxResponseSize })
	set("max-devices-per-page", func() { config.Output.MaxDevicesPerPage = flags.Output.MaxDevicesPerPage })
	set("warn-threshold", func() { config.Output.WarnThreshold = flags.Output.WarnThreshold })
	set("enable-truncation", func() { config.Output.EnableTruncation = flags.Output.EnableTruncation })
	set("enable-smart-defaults", func() { config.Output.EnableSmartDefaults = flags.Output.EnableSmartDefaults })
	set("auto-summary-threshold", func() { config.Output.AutoSummaryThreshold = flags.Output.AutoSummaryThreshold })

	set("enable-metrics-server", func() { config.Metrics.Enabled = flags.Metrics.Enabled })
	set("metrics-addr", func() { config.Metrics.Addr = flags.Metrics.Addr })
}

// bindHubFlags registers the hub connection and output-shaping flags shared by
// serve and accessories.
func bindHubFlags(fs *pflag.FlagSet, flags *ServeConfig, configPath *string) {
	defaults := newDefaultServeConfig()

	fs.StringVar(configPath, "config", "", "Path to a YAML config file (flags and environment take precedence)")
	fs.StringVar(&flags.Hub.URL, "ws-url", "", "Sprut.hub WebSocket URL (can also be set via "+spruthub.EnvURL+")")
	fs.StringVar(&flags.Hub.Email, "email", "", "Sprut.hub account e-mail (can also be set via "+spruthub.EnvEmail+")")
	fs.StringVar(&flags.Hub.Serial, "serial", "", "Sprut.hub serial number (can also be set via "+spruthub.EnvSerial+")")
	fs.DurationVar(&flags.Hub.RequestTimeout, "request-timeout", defaults.Hub.RequestTimeout, "Timeout for a single hub request")

	fs.IntVar(&flags.Output.MaxResponseSize, "max-response-size", defaults.Output.MaxResponseSize, "Response size limit in characters")
	fs.IntVar(&flags.Output.MaxDevicesPerPage, "max-devices-per-page", defaults.Output.MaxDevicesPerPage, "Largest page size a caller may request")
	fs.IntVar(&flags.Output.WarnThreshold, "warn-threshold", defaults.Output.WarnThreshold, "Response size above which a warning is logged")
	fs.BoolVar(&flags.Output.EnableTruncation, "enable-truncation", defaults.Output.EnableTruncation, "Truncate responses above the size limit")
	fs.BoolVar(&flags.Output.EnableSmartDefaults, "enable-smart-defaults", defaults.Output.EnableSmartDefaults, "Pick summary, limit and metaOnly from the result size")
	fs.IntVar(&flags.Output.AutoSummaryThreshold, "auto-summary-threshold", defaults.Output.AutoSummaryThreshold, "Item count above which summary mode is switched on")

	fs.BoolVar(&flags.DebugMode, "debug", false, "Enable debug logging")
	fs.StringVar(&flags.LogFormat, "log-format", defaults.LogFormat, "Log format: text or json (logs always go to stderr)")
}

// loadEnvIfSet overwrites target with the environment variable when it is set.
func loadEnvIfSet(target *string, envKey string) {
	if v := os.Getenv(envKey); v != "" {
		*target = v
	}
}

// parseIntEnv parses an integer from an environment variable value.
// Returns the parsed int and true if successful, or zero and false if parsing fails.
// Logs a warning if the value is present but invalid.
func parseIntEnv(value, envName string) (int, bool) {
	if value == "" {
		return 0, false
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("ignoring invalid integer", "env", envName, "value", value, "error", err)
		return 0, false
	}
	return n, true
}

// parseBoolEnv parses a boolean from an environment variable value.
func parseBoolEnv(value, envName string) (bool, bool) {
	if value == "" {
		return false, false
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		slog.Warn("ignoring invalid boolean", "env", envName, "value", value, "error", err)
		return false, false
	}
	return b, true
}

// parseDurationEnv parses a duration from an environment variable value.
func parseDurationEnv(value, envName string) (time.Duration, bool) {
	if value == "" {
		return 0, false
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("ignoring invalid duration", "env", envName, "value", value, "error", err)
		return 0, false
	}
	return d, true
}

// newLogger builds the process logger. Logs go to stderr because stdout
// carries the stdio transport.
func newLogger(format string, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if format == logFormatJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
