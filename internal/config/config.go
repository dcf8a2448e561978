// =============================================================================
// Receipt Desk - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a YAML file. Every
// setting has a default, so the application runs without any file at all.
//
// CONFIGURATION FILE (receiptdesk.yaml):
//   name_column: Name
//   receipt:
//     title: Fee Receipt
//     fields: [Name, Admission Number, Class, ...]
//     logo_left: Jims_logo.jpg
//     logo_center: Jims_name.jpg
//   print:
//     enabled: true
//     backend: auto
//   export:
//     write_summary: false
//   log_level: info
//   log_format: console
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up when --config is not given.
const DefaultFile = "receiptdesk.yaml"

// DefaultReceiptFields is the ordered field list printed on every receipt.
// The names must match the spreadsheet headers exactly.
var DefaultReceiptFields = []string{
	"Name", "Admission Number", "Class", "Bank Reference ID",
	"Order ID", "Transaction ID", "Status", "Amount", "Date",
}

// Valid print backend names. "auto" picks one from the running OS.
var printBackends = map[string]bool{
	"auto": true, "windows": true, "darwin": true, "unix": true, "none": true,
}

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the global application configuration.
type Config struct {
	// NameColumn is the designated name column. It must match a header
	// exactly (case-sensitive) for filtering and name-based file names.
	// Default: "Name"
	NameColumn string `yaml:"name_column"`

	// Sheet is the worksheet read from .xlsx files.
	// Default: "" (the first sheet)
	Sheet string `yaml:"sheet"`

	// Receipt controls the generated document.
	Receipt ReceiptConfig `yaml:"receipt"`

	// Print controls dispatch of generated documents.
	Print PrintConfig `yaml:"print"`

	// Export controls batch export side outputs.
	Export ExportConfig `yaml:"export"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects "console" (human readable) or "json".
	// Default: "console"
	LogFormat string `yaml:"log_format"`
}

// ReceiptConfig describes the receipt layout.
type ReceiptConfig struct {
	// Title is printed centred above the field table.
	// Default: "Fee Receipt"
	Title string `yaml:"title"`

	// Fields is the fixed, ordered list of fields on every receipt.
	// Default: DefaultReceiptFields
	Fields []string `yaml:"fields"`

	// LogoLeft and LogoCenter are optional header images. A missing file
	// is skipped silently.
	LogoLeft   string `yaml:"logo_left"`
	LogoCenter string `yaml:"logo_center"`
}

// PrintConfig describes how generated files reach the printer.
type PrintConfig struct {
	// Enabled sends every rendered receipt to the print facility.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// Backend forces a platform backend.
	// Valid values: "auto", "windows", "darwin", "unix", "none"
	// Default: "auto"
	Backend string `yaml:"backend"`
}

// ExportConfig holds batch export settings.
type ExportConfig struct {
	// WriteSummary writes an export_summary_<timestamp>.txt file into the
	// output directory after every batch.
	WriteSummary bool `yaml:"write_summary"`
}

// PrintEnabled reports whether dispatch is switched on.
func (c *Config) PrintEnabled() bool {
	return c.Print.Enabled == nil || *c.Print.Enabled
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration from a YAML file.
//
// PARAMETERS:
//   - path: The path to the configuration file.
//
// RETURNS:
//   - A pointer to the Config struct. A missing file yields the defaults.
//   - An error if the file exists but cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration bytes, applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.NameColumn == "" {
		cfg.NameColumn = "Name"
	}
	if cfg.Receipt.Title == "" {
		cfg.Receipt.Title = "Fee Receipt"
	}
	if len(cfg.Receipt.Fields) == 0 {
		cfg.Receipt.Fields = append([]string(nil), DefaultReceiptFields...)
	}
	if cfg.Receipt.LogoLeft == "" {
		cfg.Receipt.LogoLeft = "Jims_logo.jpg"
	}
	if cfg.Receipt.LogoCenter == "" {
		cfg.Receipt.LogoCenter = "Jims_name.jpg"
	}
	if cfg.Print.Backend == "" {
		cfg.Print.Backend = "auto"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
	}
}

// validate checks values that have a closed set of options.
func validate(cfg *Config) error {
	cfg.Print.Backend = strings.ToLower(strings.TrimSpace(cfg.Print.Backend))
	if !printBackends[cfg.Print.Backend] {
		return fmt.Errorf("unknown print backend %q", cfg.Print.Backend)
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}

	switch cfg.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}

	for i, field := range cfg.Receipt.Fields {
		if strings.TrimSpace(field) == "" {
			return fmt.Errorf("receipt field %d is empty", i+1)
		}
	}

	return nil
}
