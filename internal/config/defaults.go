package config

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Benchmark: BenchmarkConfig{
			Time:        "1s",
			TestTimeout: "30s",
			ChartImages: true,
		},
		Compiler: CompilerConfig{
			SetupScope:         "global",
			DependencyStrategy: "list",
		},
		Dependencies: DependenciesConfig{
			InstallCommand: "go install {{ . }}",
		},
		Runner: RunnerConfig{
			BlockedPatterns: []string{
				"rm -rf /",
				"mkfs",
				"dd if=",
				"> /dev/sd",
				":(){ :|:& };:",
			},
		},
		GitHub: GitHubConfig{
			BotLogin:         "github-actions[bot]",
			ProgressReaction: "rocket",
			DoneReaction:     "+1",
		},
		Report: ReportConfig{
			Template: "report.md",
			Preview:  true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
