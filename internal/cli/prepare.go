package cli

import (
	"github.com/spf13/cobra"

	"github.com/fjglira/issuebench/internal/config"
)

var planFile string

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Compile the issue and install its dependencies",
	Long:  `Compiles the triggering issue, installs its dependencies and writes the plan as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		p, err := newPipeline(cfg, config.LoadEnv())
		if err != nil {
			return err
		}
		return p.Prepare(cmd.Context(), planFile)
	},
}

func init() {
	prepareCmd.Flags().StringVar(&planFile, "plan-file", "plan.json", "where to write the compiled plan")
	rootCmd.AddCommand(prepareCmd)
}
