package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/pmn/cla-assistant/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	selectRepoQuery = `SELECT repo, owner, gist_url, gist_version, token, created_at FROM repos WHERE repo=$1 AND owner=$2`
	upsertRepoQuery = `
INSERT INTO repos(repo, owner, gist_url, gist_version, token)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (owner, repo) DO UPDATE
SET gist_url = EXCLUDED.gist_url, gist_version = EXCLUDED.gist_version, token = EXCLUDED.token
RETURNING created_at`
)

// GetRepo returns the gist link of a repository.
func (p *Postgres) GetRepo(ctx context.Context, repo, owner string) (*entities.RepoConfig, error) {
	var cfg entities.RepoConfig
	err := p.db.QueryRow(ctx, selectRepoQuery, repo, owner).
		Scan(&cfg.Repo, &cfg.Owner, &cfg.GistURL, &cfg.GistVersion, &cfg.Token, &cfg.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrRepoNotFound
		}
		p.log.Errorw("failed to get repo", "error", err, "repo", repo, "owner", owner)
		return nil, fmt.Errorf("%w: get repo: %w", entities.ErrPersistence, err)
	}
	return &cfg, nil
}

// UpsertRepo creates or replaces the gist link of a repository.
func (p *Postgres) UpsertRepo(ctx context.Context, cfg entities.RepoConfig) (*entities.RepoConfig, error) {
	if err := p.db.QueryRow(ctx, upsertRepoQuery, cfg.Repo, cfg.Owner, cfg.GistURL, cfg.GistVersion, cfg.Token).
		Scan(&cfg.CreatedAt); err != nil {
		p.log.Errorw("failed to upsert repo", "error", err, "repo", cfg.Repo, "owner", cfg.Owner)
		return nil, fmt.Errorf("%w: upsert repo: %w", entities.ErrPersistence, err)
	}

	p.log.Infow("repo linked", "repo", cfg.Repo, "owner", cfg.Owner, "gist_url", cfg.GistURL)
	return &cfg, nil
}
