package provision

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/sirupsen/logrus"
	"mvdan.cc/sh/v3/syntax"

	"github.com/fjglira/issuebench/internal/domain"
	"github.com/fjglira/issuebench/internal/runner"
)

// Installer makes dependency identifiers available before snippets run.
type Installer interface {
	Install(ctx context.Context, deps []string) error
}

// CommandInstaller runs an install command once per dependency. The command
// is a text/template rendered with the identifier as its data.
type CommandInstaller struct {
	tmpl   *template.Template
	runner runner.SnippetRunner
	log    *logrus.Logger
}

// NewCommandInstaller parses the command template.
func NewCommandInstaller(command string, r runner.SnippetRunner, log *logrus.Logger) (*CommandInstaller, error) {
	tmpl, err := template.New("install").Option("missingkey=error").Parse(command)
	if err != nil {
		return nil, domain.NewErrorWithSuggestion("provision", "", 0,
			"invalid install command template",
			"use {{ . }} where the dependency name goes, e.g. \"go install {{ . }}\"",
			err)
	}
	return &CommandInstaller{tmpl: tmpl, runner: r, log: log}, nil
}

// Install installs deps in order. The first failure aborts.
func (i *CommandInstaller) Install(ctx context.Context, deps []string) error {
	if len(deps) == 0 {
		return nil
	}

	sc, err := i.runner.NewContext()
	if err != nil {
		return domain.NewError("provision", "", 0, "failed to create install shell", err)
	}

	for _, dep := range deps {
		cmd, err := i.Command(dep)
		if err != nil {
			return err
		}
		i.log.Infof("Installing '%s'...", dep)
		i.log.Debugf("Install command: %s", cmd)

		s, err := i.runner.Compile("install "+dep, cmd)
		if err != nil {
			return domain.NewError("provision", "", 0, fmt.Sprintf("cannot install %q", dep), err)
		}
		if err := sc.Run(ctx, s); err != nil {
			return domain.NewErrorWithSuggestion("provision", "", 0,
				fmt.Sprintf("failed to install %q", dep),
				"check the dependency name in the issue or dependencies.install_command in issuebench.yaml",
				err)
		}
		i.log.Infof("Installed '%s'", dep)
	}
	return nil
}

// Command renders the install command for one dependency. The identifier
// comes from the issue body, so it is shell-quoted before substitution.
func (i *CommandInstaller) Command(dep string) (string, error) {
	quoted, err := syntax.Quote(dep, syntax.LangBash)
	if err != nil {
		return "", domain.NewError("provision", "", 0, fmt.Sprintf("cannot quote dependency %q", dep), err)
	}
	var buf bytes.Buffer
	if err := i.tmpl.Execute(&buf, quoted); err != nil {
		return "", domain.NewError("provision", "", 0, fmt.Sprintf("failed to render install command for %q", dep), err)
	}
	return buf.String(), nil
}

// NopInstaller only logs what would be installed.
type NopInstaller struct {
	Log *logrus.Logger
}

func (n NopInstaller) Install(_ context.Context, deps []string) error {
	for _, dep := range deps {
		n.Log.Infof("Skipping install of '%s'", dep)
	}
	return nil
}
