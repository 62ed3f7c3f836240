package cli

import (
	"github.com/spf13/cobra"

	"github.com/fjglira/issuebench/internal/config"
	"github.com/fjglira/issuebench/internal/pipeline"
)

var (
	resultFile  string
	runPlanFile string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Benchmark the triggering issue and comment the results",
	Long: `Loads the issue from GITHUB_EVENT or GITHUB_EVENT_PATH, compiles its body,
installs the declared dependencies, runs every suite and posts the report.
With --plan-file the plan written by "issuebench prepare" is run as is.

Under act (ACT=true) or with --dry-run the report is printed instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		p, err := newPipeline(cfg, config.LoadEnv())
		if err != nil {
			return err
		}
		return p.Run(cmd.Context(), pipeline.RunOptions{PlanFile: runPlanFile, ResultFile: resultFile})
	},
}

func init() {
	runCmd.Flags().StringVar(&runPlanFile, "plan-file", "", "run a plan written by prepare instead of compiling the issue")
	runCmd.Flags().StringVar(&resultFile, "result-file", "", "also write the raw result JSON to this path")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the report instead of publishing it")
	rootCmd.AddCommand(runCmd)
}
