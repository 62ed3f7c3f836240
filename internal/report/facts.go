package report

import (
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"

	"github.com/fjglira/issuebench/internal/domain"
	"github.com/fjglira/issuebench/internal/engine"
	"github.com/fjglira/issuebench/internal/runner"
)

// CollectFacts gathers runner metadata. Anything gopsutil cannot determine
// falls back to what the Go runtime knows.
func CollectFacts(now time.Time) domain.RunnerFacts {
	facts := domain.RunnerFacts{
		GoVersion:     runtime.Version(),
		ShellVersion:  runner.Version(),
		OS:            runtime.GOOS,
		Arch:          runtime.GOARCH,
		CPUModel:      "unknown",
		CPUCores:      runtime.NumCPU(),
		Date:          now,
		EngineVersion: engine.Version(),
	}

	if info, err := host.Info(); err == nil {
		if info.OS != "" {
			facts.OS = info.OS
		}
		facts.Release = info.KernelVersion
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 && infos[0].ModelName != "" {
		facts.CPUModel = infos[0].ModelName
	}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		facts.CPUCores = n
	}
	return facts
}
