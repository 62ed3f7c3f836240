package github

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Publisher writes run feedback back to the issue that triggered it.
type Publisher interface {
	// AddReaction adds a reaction to the issue and returns its ID.
	AddReaction(ctx context.Context, content string) (int64, error)
	// DeleteReaction removes a reaction previously added by AddReaction.
	DeleteReaction(ctx context.Context, id int64) error
	// SaveComment creates the report comment, or replaces the one left by
	// an earlier run.
	SaveComment(ctx context.Context, body string) (int64, error)
}

// ConsolePublisher prints instead of calling the API. Used for dry runs.
type ConsolePublisher struct {
	out     io.Writer
	log     logrus.FieldLogger
	preview func(string) (string, error)
}

// NewConsolePublisher returns a publisher that writes comments to out. When
// preview is set, comment bodies are passed through it before printing.
func NewConsolePublisher(out io.Writer, log logrus.FieldLogger, preview func(string) (string, error)) *ConsolePublisher {
	return &ConsolePublisher{out: out, log: log, preview: preview}
}

func (p *ConsolePublisher) AddReaction(_ context.Context, content string) (int64, error) {
	p.log.Infof("Dry run: would add reaction %q", content)
	return 0, nil
}

func (p *ConsolePublisher) DeleteReaction(_ context.Context, id int64) error {
	p.log.Infof("Dry run: would delete reaction %d", id)
	return nil
}

func (p *ConsolePublisher) SaveComment(_ context.Context, body string) (int64, error) {
	p.log.Info("Dry run: printing report instead of commenting")
	if p.preview != nil {
		rendered, err := p.preview(body)
		if err != nil {
			p.log.Warnf("Preview failed, printing raw markdown: %v", err)
		} else {
			body = rendered
		}
	}
	if _, err := fmt.Fprintln(p.out, body); err != nil {
		return 0, err
	}
	return 0, nil
}
