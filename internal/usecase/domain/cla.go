// Package domain contains application services orchestrating CLA checks and signatures.
package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/pmn/cla-assistant/internal/entities"
)

// Check reports whether a user, or every committer of a pull request, signed
// the current CLA revision of a repository. Repositories without a gist are
// reported as not signed.
func (u *Usecase) Check(ctx context.Context, q entities.CheckQuery) (*entities.CheckResult, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if q.Repo == "" || q.Owner == "" {
		return nil, fmt.Errorf("%w: repo and owner are required", entities.ErrInvalidArgument)
	}
	if (q.User == "") == (q.Number <= 0) {
		return nil, fmt.Errorf("%w: exactly one of user and number is required", entities.ErrInvalidArgument)
	}

	if q.User != "" {
		l, err := u.lookupSignature(ctx, q.Repo, q.Owner, q.User)
		if err != nil {
			return nil, err
		}
		return &entities.CheckResult{Signed: l.Signed, Gist: l.Gist}, nil
	}

	cfg, err := u.repoConfig(ctx, q.Repo, q.Owner)
	if err != nil {
		return nil, err
	}
	if cfg == nil || cfg.GistURL == "" {
		return &entities.CheckResult{Signed: false}, nil
	}

	gist, err := u.resolver.Resolve(ctx, cfg.Locator(), cfg.Token)
	if err != nil {
		u.log.Warnw("failed to resolve gist", "error", err, "repo", q.Repo, "owner", q.Owner)
		return nil, err
	}

	committers, err := u.repos.PRCommitters(ctx, *cfg, q.Number)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(committers))
	for _, c := range committers {
		names = append(names, c.Name)
	}

	res, err := u.aggregator.Aggregate(ctx, names, entities.CLAQuery{
		Repo:        q.Repo,
		Owner:       q.Owner,
		GistURL:     cfg.GistURL,
		GistVersion: gist.Version,
	})
	if err != nil {
		return nil, err
	}

	u.log.Infow("pull request checked", "repo", q.Repo, "owner", q.Owner, "number", q.Number,
		"signed", res.Signed, "not_signed", res.NotSigned)
	return &entities.CheckResult{Signed: res.AllSigned, Gist: gist, Committers: res}, nil
}

type revisionLookup struct {
	u *Usecase
}

func (l revisionLookup) Lookup(ctx context.Context, repo, owner, user string) (*Lookup, error) {
	return l.u.lookupSignature(ctx, repo, owner, user)
}

func (u *Usecase) lookupSignature(ctx context.Context, repo, owner, user string) (*Lookup, error) {
	cfg, err := u.repoConfig(ctx, repo, owner)
	if err != nil {
		return nil, err
	}
	if cfg == nil || cfg.GistURL == "" {
		return &Lookup{Repo: cfg}, nil
	}

	gist, err := u.resolver.Resolve(ctx, cfg.Locator(), cfg.Token)
	if err != nil {
		u.log.Warnw("failed to resolve gist", "error", err, "repo", repo, "owner", owner)
		return nil, err
	}

	cla, err := u.store.FindExact(ctx, entities.CLAQuery{
		Repo:        repo,
		Owner:       owner,
		User:        user,
		GistURL:     cfg.GistURL,
		GistVersion: gist.Version,
	})
	if err != nil {
		return nil, err
	}
	return &Lookup{Signed: cla != nil, Repo: cfg, Gist: gist}, nil
}

// repoConfig returns nil without error for repositories that are not linked.
func (u *Usecase) repoConfig(ctx context.Context, repo, owner string) (*entities.RepoConfig, error) {
	cfg, err := u.repos.Get(ctx, repo, owner)
	if errors.Is(err, entities.ErrRepoNotFound) {
		u.log.Debugw("repo not linked", "repo", repo, "owner", owner)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Sign records that a user accepted the current CLA revision. Signing an
// already signed revision succeeds without side effects.
func (u *Usecase) Sign(ctx context.Context, req entities.SignRequest) (*entities.SignResult, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if req.Repo == "" || req.Owner == "" || req.User == "" {
		return nil, fmt.Errorf("%w: repo, owner and user are required", entities.ErrInvalidArgument)
	}

	l, err := u.lookup.Lookup(ctx, req.Repo, req.Owner, req.User)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, fmt.Errorf("revision lookup for %s/%s returned no result", req.Owner, req.Repo)
	}
	if l.Signed {
		u.log.Debugw("cla already signed", "repo", req.Repo, "owner", req.Owner, "user", req.User)
		return &entities.SignResult{Signed: true}, nil
	}

	cfg := l.Repo
	if cfg == nil {
		if cfg, err = u.repos.Get(ctx, req.Repo, req.Owner); err != nil {
			return nil, err
		}
	}
	gist := l.Gist
	if gist == nil {
		if gist, err = u.resolver.Resolve(ctx, cfg.Locator(), cfg.Token); err != nil {
			return nil, err
		}
	}

	created, err := u.creator.Append(ctx, entities.CLA{
		Repo:        req.Repo,
		Owner:       req.Owner,
		User:        req.User,
		UserID:      req.UserID,
		GistURL:     cfg.GistURL,
		GistVersion: gist.Version,
		CreatedAt:   u.now().UTC(),
	})
	if err != nil {
		u.log.Errorw("failed to store cla", "error", err, "repo", req.Repo, "owner", req.Owner, "user", req.User)
		if !errors.Is(err, entities.ErrPersistence) {
			err = fmt.Errorf("%w: %w", entities.ErrPersistence, err)
		}
		return nil, err
	}

	u.log.Infow("cla signed", "repo", req.Repo, "owner", req.Owner, "user", req.User, "gist_version", gist.Version)
	return &entities.SignResult{
		Signed:       true,
		Created:      created,
		PullRequests: u.notifyPullRequests(ctx, *cfg, gist.Version, req.User),
	}, nil
}

// notifyPullRequests republishes the status of the open pull requests
// authored by user and returns their numbers. A pull request is reported as
// signed only when all of its committers signed version. Failures are logged
// only: the signature is already stored.
func (u *Usecase) notifyPullRequests(ctx context.Context, cfg entities.RepoConfig, version, user string) []int {
	prs, err := u.repos.OpenPullRequests(ctx, cfg)
	if err != nil {
		u.log.Warnw("failed to list open pull requests", "error", err, "repo", cfg.Repo, "owner", cfg.Owner)
		return nil
	}

	numbers := make([]int, 0)
	for _, pr := range prs {
		if pr.Author != user {
			continue
		}
		numbers = append(numbers, pr.Number)

		committers, err := u.repos.PRCommitters(ctx, cfg, pr.Number)
		if err != nil {
			u.log.Warnw("failed to list committers", "error", err, "repo", cfg.Repo, "owner", cfg.Owner, "number", pr.Number)
			continue
		}
		names := make([]string, 0, len(committers))
		for _, c := range committers {
			names = append(names, c.Name)
		}
		res, err := u.aggregator.Aggregate(ctx, names, entities.CLAQuery{
			Repo:        cfg.Repo,
			Owner:       cfg.Owner,
			GistURL:     cfg.GistURL,
			GistVersion: version,
		})
		if err != nil {
			u.log.Warnw("failed to check committers", "error", err, "repo", cfg.Repo, "owner", cfg.Owner, "number", pr.Number)
			continue
		}

		if err := u.status.UpdateStatus(ctx, entities.StatusUpdate{
			Repo:   cfg.Repo,
			Owner:  cfg.Owner,
			Number: pr.Number,
			SHA:    pr.HeadSHA,
			Token:  cfg.Token,
			Signed: res.AllSigned,
		}); err != nil {
			u.log.Warnw("failed to update status", "error", err, "repo", cfg.Repo, "owner", cfg.Owner, "number", pr.Number)
		}
	}
	return numbers
}

// GetSignedCLA returns the newest signature per repository of a user.
func (u *Usecase) GetSignedCLA(ctx context.Context, user string) ([]entities.CLA, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if user == "" {
		return nil, fmt.Errorf("%w: user is required", entities.ErrInvalidArgument)
	}
	return u.store.ListByUser(ctx, user)
}

// GetAll returns every signature of the current CLA revision of a repository.
func (u *Usecase) GetAll(ctx context.Context, repo, owner string) ([]entities.CLA, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if repo == "" || owner == "" {
		return nil, fmt.Errorf("%w: repo and owner are required", entities.ErrInvalidArgument)
	}

	cfg, err := u.repos.Get(ctx, repo, owner)
	if err != nil {
		return nil, err
	}
	gist, err := u.resolver.Resolve(ctx, cfg.Locator(), cfg.Token)
	if err != nil {
		return nil, err
	}
	return u.store.ListCurrent(ctx, repo, owner, cfg.GistURL, gist.Version)
}

// GetLastSignature returns the newest signature of a user on the repository
// gist regardless of revision, or nil when the user never signed.
func (u *Usecase) GetLastSignature(ctx context.Context, repo, owner, user string) (*entities.CLA, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if repo == "" || owner == "" || user == "" {
		return nil, fmt.Errorf("%w: repo, owner and user are required", entities.ErrInvalidArgument)
	}

	cfg, err := u.repos.Get(ctx, repo, owner)
	if err != nil {
		return nil, err
	}
	return u.store.FindLatest(ctx, entities.CLAQuery{Repo: repo, Owner: owner, User: user, GistURL: cfg.GistURL})
}

// LinkRepo stores the gist link of a repository.
func (u *Usecase) LinkRepo(ctx context.Context, cfg entities.RepoConfig) (*entities.RepoConfig, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if cfg.Repo == "" || cfg.Owner == "" {
		return nil, fmt.Errorf("%w: repo and owner are required", entities.ErrInvalidArgument)
	}
	return u.repos.Link(ctx, cfg)
}
