package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/drittich/media-device-copier/pkg/config"
	"github.com/drittich/media-device-copier/pkg/models"
)

// validateCopyFlags checks the local side of a copy
func validateCopyFlags(direction models.Direction, cfg *config.Config) error {
	if direction == models.DirectionUpload {
		info, err := os.Stat(copyFlags.Source)
		if os.IsNotExist(err) {
			return fmt.Errorf("source path does not exist: %s", copyFlags.Source)
		} else if err != nil {
			return fmt.Errorf("failed to access source path: %w", err)
		} else if !info.IsDir() {
			return fmt.Errorf("source path is not a directory: %s", copyFlags.Source)
		}
		return nil
	}

	info, err := os.Stat(copyFlags.Dest)
	if os.IsNotExist(err) {
		if copyFlags.CreateDest || cfg.Transfer.CreateTarget {
			if err := os.MkdirAll(copyFlags.Dest, 0755); err != nil {
				return fmt.Errorf("failed to create destination directory: %w", err)
			}
			return nil
		}
		return fmt.Errorf("destination path does not exist: %s (use --create-dest to create it)", copyFlags.Dest)
	} else if err != nil {
		return fmt.Errorf("failed to access destination path: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("destination path exists but is not a directory: %s", copyFlags.Dest)
	}
	return nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	return config.Load(globalFlags.ConfigFile)
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("skip-existing") {
		cfg.Transfer.SkipExisting = copyFlags.SkipExisting
	}
	if flags.Changed("move") {
		cfg.Transfer.Move = copyFlags.Move
	}

	if copyFlags.Bandwidth != "" {
		cfg.Transfer.BandwidthLimit = copyFlags.Bandwidth
	}

	// Filters
	if copyFlags.SubfolderRegex != "" {
		cfg.Filters.SubfolderRegex = copyFlags.SubfolderRegex
	}
	if copyFlags.FileRegex != "" {
		cfg.Filters.FileRegex = copyFlags.FileRegex
	}
	if len(copyFlags.Exclude) > 0 {
		cfg.Filters.Exclude = copyFlags.Exclude
	}

	// Output format
	if copyFlags.Output != "" {
		cfg.Output.Format = copyFlags.Output
	}

	// Disable progress in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}

	// Logging
	if copyFlags.LogFile != "" {
		cfg.Logging.Enabled = true
		cfg.Logging.File = copyFlags.LogFile
	}
	if copyFlags.LogFormat != "" {
		cfg.Logging.Format = copyFlags.LogFormat
	}
	if copyFlags.LogLevel != "" {
		cfg.Logging.Level = copyFlags.LogLevel
	}

	return cfg.Validate()
}
