package event

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/go-github/v61/github"

	"github.com/fjglira/issuebench/internal/domain"
)

// Issue is the part of an issues event payload the pipeline needs.
type Issue struct {
	Number int
	Title  string
	Body   string
	Owner  string
	Repo   string
}

// RunTitle returns the run title, "<number> - <title>".
func (i *Issue) RunTitle() string {
	return fmt.Sprintf("%d - %s", i.Number, i.Title)
}

// Source names the issue in logs and errors.
func (i *Issue) Source() string {
	return fmt.Sprintf("%s/%s#%d", i.Owner, i.Repo, i.Number)
}

// Load reads the event payload from the inline JSON if set, otherwise from
// the file at path.
func Load(inline, path string) (*Issue, error) {
	data := []byte(inline)
	source := "GITHUB_EVENT"
	if strings.TrimSpace(inline) == "" {
		if path == "" {
			return nil, domain.NewErrorWithSuggestion("event", "", 0,
				"no event payload",
				"set GITHUB_EVENT to the event JSON or GITHUB_EVENT_PATH to a file containing it",
				nil)
		}
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, domain.NewError("event", path, 0, "failed to read event payload", err)
		}
		source = path
	}
	return Parse(source, data)
}

// Parse decodes an issues event payload and checks the fields the run
// depends on.
func Parse(source string, data []byte) (*Issue, error) {
	var evt github.IssuesEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		return nil, domain.NewError("event", source, 0, "failed to decode event payload", err)
	}

	issue := &Issue{
		Number: evt.GetIssue().GetNumber(),
		Title:  evt.GetIssue().GetTitle(),
		Body:   evt.GetIssue().GetBody(),
		Owner:  evt.GetRepo().GetOwner().GetLogin(),
		Repo:   evt.GetRepo().GetName(),
	}

	if strings.TrimSpace(issue.Body) == "" {
		return nil, domain.NewError("event", source, 0, "issue body not found", nil)
	}
	if issue.Number == 0 {
		return nil, domain.NewError("event", source, 0, "issue number not found", nil)
	}
	if issue.Owner == "" || issue.Repo == "" {
		return nil, domain.NewError("event", source, 0, "repository owner or name not found", nil)
	}
	return issue, nil
}
