package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fjglira/issuebench/internal/config"
)

var (
	cfgFile string
	verbose bool
	dryRun  bool
	log     = logrus.New()
	// logFile is closed by Execute once the command finishes.
	logFile io.Closer
)

// rootCmd is the base command for issuebench.
var rootCmd = &cobra.Command{
	Use:   "issuebench",
	Short: "Run shell micro-benchmarks described in a GitHub issue",
	Long: `issuebench compiles the markdown body of a GitHub issue into benchmark
suites, runs them and posts the results back as a comment.

Suites are "# headings", tests are "## headings" followed by code blocks,
and "## Setup", "## Teardown" and "## Dependencies" are reserved.
Settings live in an optional YAML file (issuebench.yaml).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "issuebench.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// ExecuteContext runs the root command. ctx is cancelled on interrupt and
// reaches every blocking step through cmd.Context().
func ExecuteContext(ctx context.Context) error {
	defer func() {
		if logFile != nil {
			logFile.Close()
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

// Logger returns the logger shared by all commands.
func Logger() *logrus.Logger {
	return log
}

// loadConfig loads and validates the config file and applies its logging
// settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if err := configureLogging(cfg.Logging); err != nil {
		return nil, err
	}
	log.Debugf("Loaded config from %s", cfgFile)
	return cfg, nil
}

func configureLogging(lc config.LoggingConfig) error {
	if !verbose && lc.Level != "" {
		level, err := logrus.ParseLevel(lc.Level)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		log.SetLevel(level)
	}
	if lc.File != "" && logFile == nil {
		f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}
	return nil
}
