package github

import (
	"context"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/go-github/v61/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// DefaultBotLogin is the author of comments posted with the Actions token.
const DefaultBotLogin = "github-actions[bot]"

// Target identifies the issue a Client writes to.
type Target struct {
	Owner  string
	Repo   string
	Number int
}

// Options configures a Client.
type Options struct {
	Token    string
	BotLogin string
	// BaseURL overrides the API endpoint, mostly for tests.
	BaseURL string
}

// Client publishes to an issue through the GitHub REST API.
type Client struct {
	gh       *github.Client
	target   Target
	botLogin string
	log      logrus.FieldLogger
}

// NewClient creates an authenticated client for target.
func NewClient(ctx context.Context, target Target, opts Options, log logrus.FieldLogger) (*Client, error) {
	if opts.Token == "" {
		return nil, errors.New("GITHUB_TOKEN is not set")
	}
	if target.Owner == "" || target.Repo == "" || target.Number == 0 {
		return nil, errors.Newf("incomplete issue target %s/%s#%d", target.Owner, target.Repo, target.Number)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
	tc := oauth2.NewClient(ctx, ts)
	gh := github.NewClient(tc)

	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid GitHub base URL %s", opts.BaseURL)
		}
		gh.BaseURL = u
	}

	botLogin := opts.BotLogin
	if botLogin == "" {
		botLogin = DefaultBotLogin
	}

	return &Client{gh: gh, target: target, botLogin: botLogin, log: log}, nil
}

func (c *Client) AddReaction(ctx context.Context, content string) (int64, error) {
	r, _, err := c.gh.Reactions.CreateIssueReaction(ctx, c.target.Owner, c.target.Repo, c.target.Number, content)
	if err != nil {
		return 0, errors.Wrapf(err, "adding %q reaction to issue #%d", content, c.target.Number)
	}
	c.log.Debugf("Added reaction %q (%d)", content, r.GetID())
	return r.GetID(), nil
}

func (c *Client) DeleteReaction(ctx context.Context, id int64) error {
	if _, err := c.gh.Reactions.DeleteIssueReaction(ctx, c.target.Owner, c.target.Repo, c.target.Number, id); err != nil {
		return errors.Wrapf(err, "deleting reaction %d from issue #%d", id, c.target.Number)
	}
	c.log.Debugf("Deleted reaction %d", id)
	return nil
}

func (c *Client) SaveComment(ctx context.Context, body string) (int64, error) {
	existing, err := c.findComment(ctx)
	if err != nil {
		return 0, err
	}

	comment := &github.IssueComment{Body: github.String(body)}
	if existing != nil {
		edited, _, err := c.gh.Issues.EditComment(ctx, c.target.Owner, c.target.Repo, existing.GetID(), comment)
		if err != nil {
			return 0, errors.Wrapf(err, "updating comment %d", existing.GetID())
		}
		c.log.Infof("Updated comment %s", edited.GetHTMLURL())
		return edited.GetID(), nil
	}

	created, _, err := c.gh.Issues.CreateComment(ctx, c.target.Owner, c.target.Repo, c.target.Number, comment)
	if err != nil {
		return 0, errors.Wrapf(err, "creating comment on issue #%d", c.target.Number)
	}
	c.log.Infof("Created comment %s", created.GetHTMLURL())
	return created.GetID(), nil
}

// findComment returns the first comment authored by the bot, or nil.
func (c *Client) findComment(ctx context.Context) (*github.IssueComment, error) {
	opts := &github.IssueListCommentsOptions{ListOptions: github.ListOptions{PerPage: 100}}
	for {
		comments, resp, err := c.gh.Issues.ListComments(ctx, c.target.Owner, c.target.Repo, c.target.Number, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "listing comments on issue #%d", c.target.Number)
		}
		for _, comment := range comments {
			if comment.GetUser().GetLogin() == c.botLogin {
				return comment, nil
			}
		}
		if resp.NextPage == 0 {
			return nil, nil
		}
		opts.Page = resp.NextPage
	}
}
