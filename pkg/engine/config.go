package engine

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/germanamz/abacus/pkg/calculator"
	"gopkg.in/yaml.v3"
)

// Config is the top-level abacus configuration.
type Config struct {
	AbacusDir string        `yaml:"-"` // Set by CLI, not from YAML.
	Display   DisplayConfig `yaml:"display"`
	Web       WebConfig     `yaml:"web"`
	MCP       MCPConfig     `yaml:"mcp"`
	Log       LogConfig     `yaml:"log"`
}

// DisplayConfig controls how operands are rendered.
type DisplayConfig struct {
	ThousandsSeparator string `yaml:"thousands_separator"`
	DecimalSeparator   string `yaml:"decimal_separator"`
	PressFeedback      string `yaml:"press_feedback"` // Button highlight duration (e.g. "100ms", "0" to disable).
}

// WebConfig holds browser frontend settings.
type WebConfig struct {
	Addr string `yaml:"addr"`
}

// MCPConfig holds MCP server settings.
type MCPConfig struct {
	Name string `yaml:"name"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error.
	File  string `yaml:"file"`  // Empty means the default under the abacus dir.
}

// DefaultConfig returns the configuration used when no file is present.
// Values loaded from YAML override these field by field.
func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			ThousandsSeparator: calculator.DefaultFormatter.Thousands,
			DecimalSeparator:   calculator.DefaultFormatter.Decimal,
			PressFeedback:      "100ms",
		},
		Web: WebConfig{Addr: "127.0.0.1:8080"},
		MCP: MCPConfig{Name: "abacus"},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
// Environment variables referenced as ${VAR} or $VAR in the YAML are expanded
// before parsing.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return Config{}, fmt.Errorf("engine: load config: %w", err)
	}

	return parseConfig([]byte(os.ExpandEnv(string(data))))
}

// LoadConfigRaw reads a YAML file without expanding environment variables,
// so the result can be edited and written back unchanged.
func LoadConfigRaw(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return Config{}, fmt.Errorf("engine: load config: %w", err)
	}

	return parseConfig(data)
}

func parseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("engine: parse config: %w", err)
	}

	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("engine: marshal config: %w", err)
	}
	return data, nil
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if err := validateSeparator("thousands_separator", c.Display.ThousandsSeparator); err != nil {
		return err
	}
	if err := validateSeparator("decimal_separator", c.Display.DecimalSeparator); err != nil {
		return err
	}
	if c.Display.ThousandsSeparator == c.Display.DecimalSeparator {
		return fmt.Errorf("engine: config: display: thousands and decimal separators must differ")
	}

	if _, err := parseFeedback(c.Display.PressFeedback); err != nil {
		return err
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}

	return nil
}

// Formatter returns the display formatter described by the configuration.
func (c Config) Formatter() calculator.Formatter {
	return calculator.Formatter{
		Thousands: c.Display.ThousandsSeparator,
		Decimal:   c.Display.DecimalSeparator,
	}
}

// PressFeedback returns how long a pressed button stays highlighted.
// Invalid values, rejected by Validate, yield zero.
func (c Config) PressFeedback() time.Duration {
	d, _ := parseFeedback(c.Display.PressFeedback)
	return d
}

// LogLevel returns the configured slog level. Invalid values, rejected by
// Validate, yield slog.LevelInfo.
func (c Config) LogLevel() slog.Level {
	l, _ := parseLevel(c.Log.Level)
	return l
}

func validateSeparator(name, sep string) error {
	if utf8.RuneCountInString(sep) != 1 {
		return fmt.Errorf("engine: config: display: %s must be a single character, got %q", name, sep)
	}
	if strings.ContainsAny(sep, "0123456789-") {
		return fmt.Errorf("engine: config: display: %s cannot be a digit or minus sign", name)
	}
	return nil
}

func parseFeedback(s string) (time.Duration, error) {
	if s == "" || s == "0" {
		return 0, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("engine: config: display: invalid press_feedback %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("engine: config: display: press_feedback must not be negative")
	}

	return d, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("engine: config: log: unknown level %q", s)
	}
}
