package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewStrategiesCommand creates the strategies command
func NewStrategiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "Show the download strategy pipeline",
		Long: `List the download strategies in the order they are tried.
Each strategy waits for its delay and then retries the raw device download.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			list, err := cfg.StrategyList()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, s := range list {
				fmt.Fprintf(out, "%d. %-16s delay %s\n", i+1, s.Name, s.Delay)
			}
			return nil
		},
	}
}
