package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dustin/go-humanize"

	"github.com/drittich/media-device-copier/pkg/models"
	"github.com/drittich/media-device-copier/pkg/strategy"
)

// Config represents the application configuration
type Config struct {
	Transfer   TransferConfig   `yaml:"transfer"`
	Strategies []StrategyConfig `yaml:"strategies"`
	Filters    FiltersConfig    `yaml:"filters"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// TransferConfig holds per-request defaults
type TransferConfig struct {
	SkipExisting bool `yaml:"skip_existing"`
	Move         bool `yaml:"move"`
	CreateTarget bool `yaml:"create_target"` // Create the target root if missing
	// BandwidthLimit caps device throughput, e.g. "2MB" or "512KiB". Empty is unlimited.
	BandwidthLimit string `yaml:"bandwidth_limit"`
}

// StrategyConfig is one entry of the download pipeline
type StrategyConfig struct {
	Name  string `yaml:"name"`
	Delay string `yaml:"delay"` // Go duration, e.g. "250ms"
}

// FiltersConfig holds request planning filters
type FiltersConfig struct {
	SubfolderRegex string   `yaml:"subfolder_regex"`
	FileRegex      string   `yaml:"file_regex"`
	Exclude        []string `yaml:"exclude"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show progress bar
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Format     string `yaml:"format"`      // "json" or "text"
	Level      string `yaml:"level"`       // "debug", "info", "warn", "error"
	File       string `yaml:"file"`        // Log file path (empty = console only)
	MaxSize    int64  `yaml:"max_size"`    // Rotate after this many bytes
	MaxBackups int    `yaml:"max_backups"` // Rotated files to keep
}

// Default returns the default configuration
func Default() *Config {
	var strategies []StrategyConfig
	for _, s := range strategy.DefaultStrategies() {
		strategies = append(strategies, StrategyConfig{Name: s.Name, Delay: s.Delay.String()})
	}

	return &Config{
		Transfer: TransferConfig{
			SkipExisting: true,
			Move:         false,
			CreateTarget: true,
		},
		Strategies: strategies,
		Filters: FiltersConfig{
			Exclude: []string{
				".thumbnails/",
				".trashed-*",
			},
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Format:     "json",
			Level:      "info",
			File:       "",
			MaxSize:    10 * 1024 * 1024,
			MaxBackups: 3,
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.Strategies) == 0 {
		return &models.ValidationError{
			Field:   "strategies",
			Message: "at least one strategy is required",
		}
	}
	seen := make(map[string]bool)
	for i, s := range c.Strategies {
		field := fmt.Sprintf("strategies[%d]", i)
		if strings.TrimSpace(s.Name) == "" {
			return &models.ValidationError{Field: field + ".name", Message: "must not be empty"}
		}
		if seen[s.Name] {
			return &models.ValidationError{Field: field + ".name", Message: fmt.Sprintf("duplicate strategy %q", s.Name)}
		}
		seen[s.Name] = true
		if _, err := parseDelay(s.Delay); err != nil {
			return &models.ValidationError{Field: field + ".delay", Message: err.Error()}
		}
	}

	if _, err := c.BandwidthBytes(); err != nil {
		return &models.ValidationError{Field: "transfer.bandwidth_limit", Message: err.Error()}
	}

	if c.Filters.SubfolderRegex != "" {
		if _, err := regexp.Compile(c.Filters.SubfolderRegex); err != nil {
			return &models.ValidationError{Field: "filters.subfolder_regex", Message: err.Error()}
		}
	}
	if c.Filters.FileRegex != "" {
		if _, err := regexp.Compile(c.Filters.FileRegex); err != nil {
			return &models.ValidationError{Field: "filters.file_regex", Message: err.Error()}
		}
	}
	for _, pattern := range c.Filters.Exclude {
		if !doublestar.ValidatePattern(strings.TrimSuffix(pattern, "/")) {
			return &models.ValidationError{Field: "filters.exclude", Message: fmt.Sprintf("invalid pattern %q", pattern)}
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	if c.Logging.MaxSize < 0 {
		return &models.ValidationError{Field: "logging.max_size", Message: "must not be negative"}
	}
	if c.Logging.MaxBackups < 0 {
		return &models.ValidationError{Field: "logging.max_backups", Message: "must not be negative"}
	}

	return nil
}

// StrategyList builds the download pipeline described by the configuration.
// Each entry is a delayed raw download.
func (c *Config) StrategyList() ([]strategy.Strategy, error) {
	list := make([]strategy.Strategy, 0, len(c.Strategies))
	for _, s := range c.Strategies {
		delay, err := parseDelay(s.Delay)
		if err != nil {
			return nil, fmt.Errorf("invalid delay for strategy %s: %w", s.Name, err)
		}
		list = append(list, strategy.Delayed(s.Name, delay))
	}
	return list, nil
}

// BandwidthBytes returns the bandwidth limit in bytes per second, 0 when unlimited
func (c *Config) BandwidthBytes() (int64, error) {
	limit := strings.TrimSpace(c.Transfer.BandwidthLimit)
	if limit == "" || limit == "0" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(strings.TrimSuffix(limit, "/s"))
	if err != nil {
		return 0, fmt.Errorf("invalid bandwidth %q", c.Transfer.BandwidthLimit)
	}
	return int64(n), nil
}

func parseDelay(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	return d, nil
}
