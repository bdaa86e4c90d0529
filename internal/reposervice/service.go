// Package reposervice answers repository configuration questions: which gist
// a repository uses, who committed to a pull request, which pull requests
// are open.
package reposervice

import (
	"context"

	"github.com/pmn/cla-assistant/internal/entities"
	"github.com/pmn/cla-assistant/internal/repository"

	"go.uber.org/zap"
)

// PullRequestSource lists pull request data from the code host.
type PullRequestSource interface {
	PRCommitters(ctx context.Context, owner, repo string, number int, token string) ([]entities.Committer, error)
	OpenPullRequests(ctx context.Context, owner, repo, token string) ([]entities.PullRequest, error)
}

// Service combines stored repository links with code host lookups.
type Service struct {
	log   *zap.SugaredLogger
	repos repository.RepoInterface
	prs   PullRequestSource
}

// New constructs a Service.
func New(log *zap.SugaredLogger, repos repository.RepoInterface, prs PullRequestSource) *Service {
	return &Service{
		log:   log.Named("reposervice"),
		repos: repos,
		prs:   prs,
	}
}

// Get returns the gist link and token of a repository.
func (s *Service) Get(ctx context.Context, repo, owner string) (*entities.RepoConfig, error) {
	return s.repos.GetRepo(ctx, repo, owner)
}

// Link stores the gist link of a repository. An empty gist URL is allowed
// and leaves the repository without a CLA; a pinned version then is not.
func (s *Service) Link(ctx context.Context, cfg entities.RepoConfig) (*entities.RepoConfig, error) {
	if cfg.GistURL != "" || cfg.GistVersion != "" {
		if _, err := cfg.Locator().ID(); err != nil {
			return nil, err
		}
	}
	linked, err := s.repos.UpsertRepo(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.log.Infow("repo linked", "repo", cfg.Repo, "owner", cfg.Owner, "gist_url", cfg.GistURL)
	return linked, nil
}

// PRCommitters returns the committers of a pull request of the repository.
func (s *Service) PRCommitters(ctx context.Context, cfg entities.RepoConfig, number int) ([]entities.Committer, error) {
	return s.prs.PRCommitters(ctx, cfg.Owner, cfg.Repo, number, cfg.Token)
}

// OpenPullRequests returns the open pull requests of the repository.
func (s *Service) OpenPullRequests(ctx context.Context, cfg entities.RepoConfig) ([]entities.PullRequest, error) {
	return s.prs.OpenPullRequests(ctx, cfg.Owner, cfg.Repo, cfg.Token)
}
