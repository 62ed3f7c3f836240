package config

import (
	"github.com/spf13/viper"
)

// Env holds the values read from the process environment.
type Env struct {
	Token     string
	Event     string
	EventPath string
	// Act is set when running under nektos/act, which forces a dry run.
	Act bool
}

// LoadEnv reads GITHUB_TOKEN, GITHUB_EVENT, GITHUB_EVENT_PATH and ACT.
func LoadEnv() Env {
	v := viper.New()
	_ = v.BindEnv("token", "GITHUB_TOKEN")
	_ = v.BindEnv("event", "GITHUB_EVENT")
	_ = v.BindEnv("event_path", "GITHUB_EVENT_PATH")
	_ = v.BindEnv("act", "ACT")
	v.SetDefault("act", false)

	return Env{
		Token:     v.GetString("token"),
		Event:     v.GetString("event"),
		EventPath: v.GetString("event_path"),
		Act:       v.GetBool("act"),
	}
}
