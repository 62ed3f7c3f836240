package config

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/fjglira/issuebench/internal/domain"
)

// reactions accepted by the GitHub reactions API.
var validReactions = map[string]bool{
	"+1": true, "-1": true, "laugh": true, "confused": true,
	"heart": true, "hooray": true, "rocket": true, "eyes": true,
}

// Validate checks the Config for required fields and valid values.
func Validate(cfg *Config) error {
	var errs []string

	// Benchmark validation
	if d, err := time.ParseDuration(cfg.Benchmark.Time); err != nil {
		errs = append(errs, fmt.Sprintf("benchmark.time is not a valid duration: %q", cfg.Benchmark.Time))
	} else if d <= 0 {
		errs = append(errs, "benchmark.time must be positive")
	}
	if cfg.Benchmark.TestTimeout != "" {
		if d, err := time.ParseDuration(cfg.Benchmark.TestTimeout); err != nil || d < 0 {
			errs = append(errs, fmt.Sprintf("benchmark.test_timeout is not a valid duration: %q", cfg.Benchmark.TestTimeout))
		}
	}

	// Compiler validation
	switch cfg.Compiler.SetupScope {
	case "global", "suite":
	default:
		errs = append(errs, fmt.Sprintf("compiler.setup_scope must be one of: global, suite (got %q)", cfg.Compiler.SetupScope))
	}
	switch cfg.Compiler.DependencyStrategy {
	case "list", "require":
	default:
		errs = append(errs, fmt.Sprintf("compiler.dependency_strategy must be one of: list, require (got %q)", cfg.Compiler.DependencyStrategy))
	}

	// Dependencies validation
	if !cfg.Dependencies.SkipInstall {
		if strings.TrimSpace(cfg.Dependencies.InstallCommand) == "" {
			errs = append(errs, "dependencies.install_command must not be empty unless skip_install is set")
		} else if _, err := template.New("install").Parse(cfg.Dependencies.InstallCommand); err != nil {
			errs = append(errs, fmt.Sprintf("dependencies.install_command is not a valid template: %v", err))
		}
	}

	// GitHub validation
	if cfg.GitHub.BotLogin == "" {
		errs = append(errs, "github.bot_login must not be empty")
	}
	if !validReactions[cfg.GitHub.ProgressReaction] {
		errs = append(errs, fmt.Sprintf("github.progress_reaction is not a GitHub reaction: %q", cfg.GitHub.ProgressReaction))
	}
	if !validReactions[cfg.GitHub.DoneReaction] {
		errs = append(errs, fmt.Sprintf("github.done_reaction is not a GitHub reaction: %q", cfg.GitHub.DoneReaction))
	}

	// Report validation
	if cfg.Report.Template == "" {
		errs = append(errs, "report.template must not be empty")
	}

	// Validate logging level
	if cfg.Logging.Level != "" {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[cfg.Logging.Level] {
			errs = append(errs, fmt.Sprintf("logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level))
		}
	}

	if len(errs) > 0 {
		return domain.NewError("config", "", 0, fmt.Sprintf("validation failed: %s", strings.Join(errs, "; ")), nil)
	}

	return nil
}
