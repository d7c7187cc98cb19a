package cli

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds global flag values
type GlobalFlags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
}

var globalFlags GlobalFlags

// AddGlobalFlags adds global flags to the root command
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(
		&globalFlags.ConfigFile,
		"config",
		"",
		"config file (default is $HOME/.config/media-device-copier/config.yaml)",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Verbose,
		"verbose",
		"v",
		false,
		"verbose output (logs to stderr)",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Quiet,
		"quiet",
		"q",
		false,
		"suppress non-error output",
	)
}

// GetGlobalFlags returns the global flags
func GetGlobalFlags() *GlobalFlags {
	return &globalFlags
}

// CopyFlags holds download and upload command flags
type CopyFlags struct {
	Device       string
	Source       string
	Dest         string
	Move         bool
	SkipExisting bool
	DryRun       bool
	CreateDest   bool
	Bandwidth    string
	// Filters
	SubfolderRegex string
	FileRegex      string
	Exclude        []string
	Output         string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var copyFlags CopyFlags

func addCopyFlags(cmd *cobra.Command, sourceHelp, destHelp string) {
	cmd.Flags().StringVar(&copyFlags.Device, "device", "", "directory where the device storage is mounted (required)")
	cmd.Flags().StringVarP(&copyFlags.Source, "source", "s", "", sourceHelp+" (required)")
	cmd.Flags().StringVarP(&copyFlags.Dest, "dest", "d", "", destHelp+" (required)")
	cmd.MarkFlagRequired("device")
	cmd.MarkFlagRequired("source")
	cmd.MarkFlagRequired("dest")

	cmd.Flags().BoolVar(&copyFlags.Move, "move", false, "delete each source file after it was copied")
	cmd.Flags().BoolVar(&copyFlags.SkipExisting, "skip-existing", true, "skip files whose destination already matches")
	cmd.Flags().BoolVar(&copyFlags.DryRun, "dry-run", false, "plan only, don't copy")
	cmd.Flags().BoolVar(&copyFlags.CreateDest, "create-dest", false, "create the local destination directory if it doesn't exist")
	cmd.Flags().StringVar(&copyFlags.Bandwidth, "bandwidth", "", "limit device throughput, e.g. 2MB (per second)")
	cmd.Flags().StringVar(&copyFlags.SubfolderRegex, "subfolder-regex", "", "only descend into subfolders whose relative path matches")
	cmd.Flags().StringVar(&copyFlags.FileRegex, "file-regex", "", "only copy files whose name matches")
	cmd.Flags().StringSliceVar(&copyFlags.Exclude, "exclude", []string{}, "glob patterns to exclude")
	cmd.Flags().StringVarP(&copyFlags.Output, "output", "o", "", "output format: human, json")

	// Logging flags
	cmd.Flags().StringVar(&copyFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&copyFlags.LogFormat, "log-format", "", "log format: text, json")
	cmd.Flags().StringVar(&copyFlags.LogLevel, "log-level", "", "log level: debug, info, warn, error")
}
