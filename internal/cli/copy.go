package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/drittich/media-device-copier/pkg/config"
	"github.com/drittich/media-device-copier/pkg/device"
	"github.com/drittich/media-device-copier/pkg/logging"
	"github.com/drittich/media-device-copier/pkg/models"
	"github.com/drittich/media-device-copier/pkg/output"
	"github.com/drittich/media-device-copier/pkg/plan"
	"github.com/drittich/media-device-copier/pkg/storage"
	"github.com/drittich/media-device-copier/pkg/strategy"
	"github.com/drittich/media-device-copier/pkg/transfer"
)

// ExitError carries a non-zero process exit code out of a command
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewDownloadCommand creates the download command
func NewDownloadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Copy files from the device to a local folder",
		Long: `Copy files from a device directory to a local directory.
Downloads go through a fallback strategy pipeline that retries transient device
failures. Files that cannot be read by any strategy are skipped.`,
		RunE: runCopy(models.DirectionDownload),
	}
	addCopyFlags(cmd, "device directory to copy from", "local directory to copy to")
	return cmd
}

// NewUploadCommand creates the upload command
func NewUploadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Copy files from a local folder to the device",
		Long:  `Copy files from a local directory to a device directory.`,
		RunE:  runCopy(models.DirectionUpload),
	}
	addCopyFlags(cmd, "local directory to copy from", "device directory to copy to")
	return cmd
}

func runCopy(direction models.Direction) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		// Load configuration
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Override config with command-line flags
		if err := applyFlagsToConfig(cmd, cfg); err != nil {
			return fmt.Errorf("invalid options: %w", err)
		}

		if err := validateCopyFlags(direction, cfg); err != nil {
			return err
		}

		dev, err := device.NewMounted(copyFlags.Device)
		if err != nil {
			return fmt.Errorf("failed to open device: %w", err)
		}
		bandwidth, err := cfg.BandwidthBytes()
		if err != nil {
			return err
		}
		dev.SetBandwidthLimit(bandwidth)

		logger, err := createLogger(cfg, cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logger.Close()

		strategies, err := cfg.StrategyList()
		if err != nil {
			return err
		}

		planner, err := plan.New(dev, plan.Options{
			Direction:      direction,
			SourceRoot:     copyFlags.Source,
			TargetRoot:     copyFlags.Dest,
			SubfolderRegex: cfg.Filters.SubfolderRegex,
			FileRegex:      cfg.Filters.FileRegex,
			Exclude:        cfg.Filters.Exclude,
			SkipExisting:   cfg.Transfer.SkipExisting,
			Move:           cfg.Transfer.Move,
		})
		if err != nil {
			return err
		}
		requests, err := planner.Plan(ctx)
		if err != nil {
			return fmt.Errorf("failed to plan %s: %w", direction, err)
		}

		// Create output formatter
		formatter, err := output.New(cfg.Output.Format, cfg.Output.Progress)
		if err != nil {
			return err
		}
		var writer io.Writer = cmd.OutOrStdout()
		if cfg.Output.Quiet {
			writer = io.Discard
		}

		if copyFlags.DryRun {
			return printPlan(writer, formatter, direction, requests)
		}

		engine := transfer.NewEngine(dev, storage.NewOS(), transfer.Config{
			Pipeline: strategy.Config{Strategies: strategies},
			Logger:   logger,
		})
		session := transfer.NewSession(engine, transfer.SessionConfig{
			Direction: direction,
			Formatter: formatter,
			Writer:    writer,
			Logger:    logger,
		})

		report, err := session.Run(ctx, requests)
		if report == nil {
			return fmt.Errorf("%s failed: %w", direction, err)
		}
		if err != nil {
			return &ExitError{Code: report.Status.ExitCode(), Err: fmt.Errorf("%s stopped: %w", direction, err)}
		}

		// Exit with appropriate code
		if code := report.Status.ExitCode(); code != 0 {
			return &ExitError{Code: code}
		}
		return nil
	}
}

// printPlan lists planned requests without transferring anything
func printPlan(w io.Writer, formatter output.Formatter, direction models.Direction, requests []models.TransferRequest) error {
	report := &models.CopyReport{Direction: direction, DryRun: true}
	report.Stats.FilesPlanned = len(requests)

	if err := formatter.Start(w, len(requests), direction); err != nil {
		return err
	}
	if formatter.Name() != "json" {
		for _, req := range requests {
			fmt.Fprintf(w, "would %s %s -> %s\n", direction, req.SourcePath, req.TargetPath)
		}
	}
	return formatter.Complete(report)
}

// createLogger creates a logger based on configuration
func createLogger(cfg *config.Config, stderr io.Writer) (logging.Logger, error) {
	var console io.Writer
	if globalFlags.Verbose {
		console = stderr
	}
	file := ""
	if cfg.Logging.Enabled {
		file = cfg.Logging.File
	}

	// If neither destination is active, return null logger
	if console == nil && file == "" {
		return logging.NewNullLogger(), nil
	}

	logger, err := logging.New(logging.Config{
		Level:      logging.ParseLevel(cfg.Logging.Level),
		Console:    console,
		File:       file,
		Format:     logging.ParseFormat(cfg.Logging.Format),
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		return nil, err
	}
	return logger, nil
}
