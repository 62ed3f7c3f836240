package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fjglira/issuebench/internal/domain"
)

// Config is the top-level configuration struct.
type Config struct {
	Benchmark    BenchmarkConfig    `yaml:"benchmark"`
	Compiler     CompilerConfig     `yaml:"compiler"`
	Dependencies DependenciesConfig `yaml:"dependencies"`
	Runner       RunnerConfig       `yaml:"runner"`
	GitHub       GitHubConfig       `yaml:"github"`
	Report       ReportConfig       `yaml:"report"`
	Logging      LoggingConfig      `yaml:"logging"`
}

type BenchmarkConfig struct {
	// Time is the measuring budget per test, e.g. "1s".
	Time        string `yaml:"time"`
	TestTimeout string `yaml:"test_timeout"`
	ChartImages bool   `yaml:"chart_images"`
}

type CompilerConfig struct {
	SetupScope         string `yaml:"setup_scope"`
	DependencyStrategy string `yaml:"dependency_strategy"`
}

type DependenciesConfig struct {
	InstallCommand string `yaml:"install_command"`
	SkipInstall    bool   `yaml:"skip_install"`
}

type RunnerConfig struct {
	Dir             string   `yaml:"dir"`
	BlockedPatterns []string `yaml:"blocked_patterns"`
}

type GitHubConfig struct {
	BotLogin         string `yaml:"bot_login"`
	ProgressReaction string `yaml:"progress_reaction"`
	DoneReaction     string `yaml:"done_reaction"`
	DryRun           bool   `yaml:"dry_run"`
	// BaseURL points the client at another API endpoint (GHES or tests).
	BaseURL string `yaml:"base_url"`
}

type ReportConfig struct {
	TemplateDir string `yaml:"template_dir"`
	Template    string `yaml:"template"`
	Preview     bool   `yaml:"preview"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads a YAML configuration file over the defaults. A missing file is
// not an error: the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, domain.NewError("config", path, 0, "failed to read config file", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, domain.NewError("config", path, 0, "failed to parse config file", err)
	}

	return cfg, nil
}

// BenchTime returns the parsed measuring budget. Call Validate first.
func (c *Config) BenchTime() time.Duration {
	d, _ := time.ParseDuration(c.Benchmark.Time)
	return d
}

// TestTimeout returns the parsed per-call timeout, zero when unset.
func (c *Config) TestTimeout() time.Duration {
	if c.Benchmark.TestTimeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Benchmark.TestTimeout)
	return d
}
