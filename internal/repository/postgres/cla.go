package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/pmn/cla-assistant/internal/entities"
	"github.com/pmn/cla-assistant/internal/repository/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	claColumns = `id, repo, owner, user_login, user_id, gist_url, gist_version, created_at`

	findExactQuery = `SELECT ` + claColumns + ` FROM clas
WHERE repo=$1 AND owner=$2 AND user_login=$3 AND gist_url=$4 AND gist_version=$5
ORDER BY created_at DESC
LIMIT 1`
	findLatestQuery = `SELECT ` + claColumns + ` FROM clas
WHERE repo=$1 AND owner=$2 AND user_login=$3 AND ($4 = '' OR gist_url=$4)
ORDER BY created_at DESC
LIMIT 1`
	insertCLAQuery  = `INSERT INTO clas(` + claColumns + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	listByUserQuery = `SELECT ` + claColumns + ` FROM clas
WHERE user_login=$1
ORDER BY created_at DESC`
	listCurrentQuery = `SELECT ` + claColumns + ` FROM clas
WHERE repo=$1 AND owner=$2 AND gist_url=$3 AND gist_version=$4
ORDER BY created_at DESC`
)

// FindExact returns a record signed for exactly the queried gist version.
func (p *Postgres) FindExact(ctx context.Context, q entities.CLAQuery) (*entities.CLA, error) {
	cla, err := p.findOne(ctx, findExactQuery, q.Repo, q.Owner, q.User, q.GistURL, q.GistVersion)
	if err != nil {
		p.log.Errorw("failed to find cla", "error", err, "repo", q.Repo, "owner", q.Owner, "user", q.User)
		return nil, fmt.Errorf("%w: find cla: %w", entities.ErrPersistence, err)
	}
	return cla, nil
}

// FindLatest returns the newest record of the user regardless of gist version.
func (p *Postgres) FindLatest(ctx context.Context, q entities.CLAQuery) (*entities.CLA, error) {
	cla, err := p.findOne(ctx, findLatestQuery, q.Repo, q.Owner, q.User, q.GistURL)
	if err != nil {
		p.log.Errorw("failed to find last signature", "error", err, "repo", q.Repo, "owner", q.Owner, "user", q.User)
		return nil, fmt.Errorf("%w: find last signature: %w", entities.ErrPersistence, err)
	}
	return cla, nil
}

func (p *Postgres) findOne(ctx context.Context, sql string, args ...any) (*entities.CLA, error) {
	rows, err := p.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	cla, err := pgx.CollectOneRow(rows, scanCLA)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cla, nil
}

// Append inserts a new record with a fresh id.
func (p *Postgres) Append(ctx context.Context, cla entities.CLA) (*entities.CLA, error) {
	cla.ID = uuid.NewString()
	if cla.CreatedAt.IsZero() {
		cla.CreatedAt = p.now().UTC()
	}

	if _, err := p.db.Exec(ctx, insertCLAQuery,
		cla.ID, cla.Repo, cla.Owner, cla.User, cla.UserID, cla.GistURL, cla.GistVersion, cla.CreatedAt,
	); err != nil {
		p.log.Errorw("failed to insert cla", "error", err, "repo", cla.Repo, "owner", cla.Owner, "user", cla.User)
		return nil, fmt.Errorf("%w: insert cla: %w", entities.ErrPersistence, err)
	}

	p.log.Infow("cla appended", "id", cla.ID, "repo", cla.Repo, "owner", cla.Owner, "user", cla.User, "gist_version", cla.GistVersion)
	return &cla, nil
}

// ListByUser returns the newest record per repository signed by user.
func (p *Postgres) ListByUser(ctx context.Context, user string) ([]entities.CLA, error) {
	clas, err := p.list(ctx, listByUserQuery, user)
	if err != nil {
		p.log.Errorw("failed to list user clas", "error", err, "user", user)
		return nil, fmt.Errorf("%w: list user clas: %w", entities.ErrPersistence, err)
	}
	return query.LatestPerRepo(clas), nil
}

// ListCurrent returns records of repo/owner signed for gistVersion.
func (p *Postgres) ListCurrent(ctx context.Context, repo, owner, gistURL, gistVersion string) ([]entities.CLA, error) {
	clas, err := p.list(ctx, listCurrentQuery, repo, owner, gistURL, gistVersion)
	if err != nil {
		p.log.Errorw("failed to list current clas", "error", err, "repo", repo, "owner", owner)
		return nil, fmt.Errorf("%w: list current clas: %w", entities.ErrPersistence, err)
	}
	return clas, nil
}

func (p *Postgres) list(ctx context.Context, sql string, args ...any) ([]entities.CLA, error) {
	rows, err := p.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	clas, err := pgx.CollectRows(rows, scanCLA)
	if err != nil {
		return nil, err
	}
	if clas == nil {
		clas = make([]entities.CLA, 0)
	}
	return clas, nil
}

func scanCLA(row pgx.CollectableRow) (entities.CLA, error) {
	var c entities.CLA
	err := row.Scan(&c.ID, &c.Repo, &c.Owner, &c.User, &c.UserID, &c.GistURL, &c.GistVersion, &c.CreatedAt)
	return c, err
}
