package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "media-device-copier",
		Short: "Copy and move media between a device and local folders",
		Long: `media-device-copier copies, skips or moves files between a removable
media device and the local filesystem. Existing files are reconciled by size
and modification time, and unreliable device downloads are retried through an
ordered strategy pipeline.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(NewDownloadCommand())
	rootCmd.AddCommand(NewUploadCommand())
	rootCmd.AddCommand(NewStrategiesCommand())
	rootCmd.AddCommand(NewClassifyCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}
