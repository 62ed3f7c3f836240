package cli

import (
	"github.com/spf13/cobra"

	"github.com/fjglira/issuebench/internal/config"
)

var reportResultFile string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Publish a result written by an earlier run",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		p, err := newPipeline(cfg, config.LoadEnv())
		if err != nil {
			return err
		}
		return p.Report(cmd.Context(), reportResultFile)
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportResultFile, "result-file", "result.json", "result JSON to publish")
	reportCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the report instead of publishing it")
	rootCmd.AddCommand(reportCmd)
}
