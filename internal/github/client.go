// Package github talks to the GitHub REST API on behalf of linked repositories.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pmn/cla-assistant/internal/entities"

	gh "github.com/google/go-github/v66/github"
	"go.uber.org/zap"
)

const perPage = 100

// Options configures a Client.
type Options struct {
	// BaseURL of the REST API, with a trailing slash.
	BaseURL       string
	UserAgent     string
	StatusContext string
	// TargetURL is linked from commit statuses; optional.
	TargetURL string
}

// Client lists pull request data and publishes commit statuses.
type Client struct {
	log           *zap.SugaredLogger
	base          *gh.Client
	statusContext string
	targetURL     string
}

// New constructs a Client.
func New(log *zap.SugaredLogger, httpClient *http.Client, opts Options) (*Client, error) {
	base := gh.NewClient(httpClient)
	if opts.BaseURL != "" {
		u, err := url.Parse(opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("parse github base url: %w", err)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		base.BaseURL = u
	}
	if opts.UserAgent != "" {
		base.UserAgent = opts.UserAgent
	}
	return &Client{
		log:           log.Named("github"),
		base:          base,
		statusContext: opts.StatusContext,
		targetURL:     opts.TargetURL,
	}, nil
}

func (c *Client) withToken(token string) *gh.Client {
	if token == "" {
		return c.base
	}
	return c.base.WithAuthToken(token)
}

// PRCommitters returns the commit authors of a pull request in commit order.
// Authors without a GitHub account are reported by their git name.
func (c *Client) PRCommitters(ctx context.Context, owner, repo string, number int, token string) ([]entities.Committer, error) {
	client := c.withToken(token)
	opts := &gh.ListOptions{PerPage: perPage}

	committers := make([]entities.Committer, 0)
	for {
		commits, resp, err := client.PullRequests.ListCommits(ctx, owner, repo, number, opts)
		if err != nil {
			c.log.Warnw("failed to list pr commits", "error", err, "owner", owner, "repo", repo, "number", number)
			return nil, fmt.Errorf("%w: list commits of %s/%s#%d: %w", entities.ErrTransport, owner, repo, number, err)
		}
		for _, commit := range commits {
			name := commit.GetAuthor().GetLogin()
			if name == "" {
				name = commit.GetCommit().GetAuthor().GetName()
			}
			if name != "" {
				committers = append(committers, entities.Committer{Name: name})
			}
		}
		if resp.NextPage == 0 {
			return committers, nil
		}
		opts.Page = resp.NextPage
	}
}

// OpenPullRequests returns every open pull request of a repository.
func (c *Client) OpenPullRequests(ctx context.Context, owner, repo, token string) ([]entities.PullRequest, error) {
	client := c.withToken(token)
	opts := &gh.PullRequestListOptions{State: "open", ListOptions: gh.ListOptions{PerPage: perPage}}

	prs := make([]entities.PullRequest, 0)
	for {
		page, resp, err := client.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			c.log.Warnw("failed to list open prs", "error", err, "owner", owner, "repo", repo)
			return nil, fmt.Errorf("%w: list pull requests of %s/%s: %w", entities.ErrTransport, owner, repo, err)
		}
		for _, pr := range page {
			prs = append(prs, entities.PullRequest{
				Number:  pr.GetNumber(),
				Author:  pr.GetUser().GetLogin(),
				HeadSHA: pr.GetHead().GetSHA(),
			})
		}
		if resp.NextPage == 0 {
			return prs, nil
		}
		opts.Page = resp.NextPage
	}
}

// UpdateStatus publishes the CLA state of a pull request as a commit status
// on its head commit. The head is looked up when the update carries no SHA.
func (c *Client) UpdateStatus(ctx context.Context, upd entities.StatusUpdate) error {
	client := c.withToken(upd.Token)

	sha := upd.SHA
	if sha == "" {
		pr, _, err := client.PullRequests.Get(ctx, upd.Owner, upd.Repo, upd.Number)
		if err != nil {
			return fmt.Errorf("%w: get pull request %s/%s#%d: %w", entities.ErrTransport, upd.Owner, upd.Repo, upd.Number, err)
		}
		sha = pr.GetHead().GetSHA()
	}

	state, description := "pending", "Contributor License Agreement is not signed yet."
	if upd.Signed {
		state, description = "success", "Contributor License Agreement is signed."
	}
	status := &gh.RepoStatus{
		State:       gh.String(state),
		Description: gh.String(description),
		Context:     gh.String(c.statusContext),
	}
	if c.targetURL != "" {
		status.TargetURL = gh.String(c.targetURL)
	}

	if _, _, err := client.Repositories.CreateStatus(ctx, upd.Owner, upd.Repo, sha, status); err != nil {
		c.log.Warnw("failed to create status", "error", err, "owner", upd.Owner, "repo", upd.Repo, "sha", sha)
		return fmt.Errorf("%w: create status on %s/%s@%s: %w", entities.ErrTransport, upd.Owner, upd.Repo, sha, err)
	}

	c.log.Infow("status updated", "owner", upd.Owner, "repo", upd.Repo, "number", upd.Number, "state", state)
	return nil
}
