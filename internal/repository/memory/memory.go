// Package memory implements the repository in process memory.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pmn/cla-assistant/internal/entities"
	"github.com/pmn/cla-assistant/internal/repository/query"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type repoKey struct{ owner, repo string }

// Memory keeps acceptance records in an append-only slice.
type Memory struct {
	log *zap.SugaredLogger

	mu    sync.RWMutex
	clas  []entities.CLA
	repos map[repoKey]entities.RepoConfig
	now   func() time.Time
}

// New creates an empty in-memory repository.
func New(log *zap.SugaredLogger) *Memory {
	return &Memory{
		log:   log.Named("repo.memory"),
		repos: make(map[repoKey]entities.RepoConfig),
		now:   time.Now,
	}
}

// OnStart is a no-op.
func (m *Memory) OnStart(_ context.Context) error {
	m.log.Infow("memory repository ready")
	return nil
}

// OnStop is a no-op.
func (m *Memory) OnStop(_ context.Context) error { return nil }

// Ping always succeeds.
func (m *Memory) Ping(_ context.Context) error { return nil }

// FindExact returns the newest record matching every field of q. The gist
// url and version are always compared, empty values included.
func (m *Memory) FindExact(_ context.Context, q entities.CLAQuery) (*entities.CLA, error) {
	return m.newest(func(c entities.CLA) bool {
		return query.Matches(c, q) && c.GistURL == q.GistURL && c.GistVersion == q.GistVersion
	}), nil
}

// FindLatest returns the newest record for q ignoring the gist version.
func (m *Memory) FindLatest(_ context.Context, q entities.CLAQuery) (*entities.CLA, error) {
	q.GistVersion = ""
	return m.newest(func(c entities.CLA) bool {
		return query.Matches(c, q)
	}), nil
}

func (m *Memory) newest(keep func(entities.CLA) bool) *entities.CLA {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var found *entities.CLA
	for i := range m.clas {
		c := m.clas[i]
		if !keep(c) {
			continue
		}
		if found == nil || c.CreatedAt.After(found.CreatedAt) {
			found = &c
		}
	}
	return found
}

// Append stores a copy of cla with a fresh id.
func (m *Memory) Append(_ context.Context, cla entities.CLA) (*entities.CLA, error) {
	cla.ID = uuid.NewString()
	if cla.CreatedAt.IsZero() {
		cla.CreatedAt = m.now()
	}

	m.mu.Lock()
	m.clas = append(m.clas, cla)
	m.mu.Unlock()

	m.log.Infow("cla appended", "repo", cla.Repo, "owner", cla.Owner, "user", cla.User, "gist_version", cla.GistVersion)
	return &cla, nil
}

// ListByUser returns the newest record per repository signed by user.
func (m *Memory) ListByUser(_ context.Context, user string) ([]entities.CLA, error) {
	return query.LatestPerRepo(m.filter(func(c entities.CLA) bool {
		return c.User == user
	})), nil
}

// ListCurrent returns records of repo/owner for gistURL signed at gistVersion.
func (m *Memory) ListCurrent(_ context.Context, repo, owner, gistURL, gistVersion string) ([]entities.CLA, error) {
	return query.CurrentVersion(m.filter(func(c entities.CLA) bool {
		return c.Repo == repo && c.Owner == owner && c.GistURL == gistURL
	}), gistVersion), nil
}

func (m *Memory) filter(keep func(entities.CLA) bool) []entities.CLA {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make([]entities.CLA, 0)
	for _, c := range m.clas {
		if keep(c) {
			res = append(res, c)
		}
	}
	return res
}

// GetRepo returns the gist link of a repository.
func (m *Memory) GetRepo(_ context.Context, repo, owner string) (*entities.RepoConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cfg, ok := m.repos[repoKey{owner: owner, repo: repo}]
	if !ok {
		return nil, entities.ErrRepoNotFound
	}
	return &cfg, nil
}

// UpsertRepo creates or replaces the gist link of a repository.
func (m *Memory) UpsertRepo(_ context.Context, cfg entities.RepoConfig) (*entities.RepoConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := repoKey{owner: cfg.Owner, repo: cfg.Repo}
	if prev, ok := m.repos[k]; ok {
		cfg.CreatedAt = prev.CreatedAt
	} else {
		cfg.CreatedAt = m.now()
	}
	m.repos[k] = cfg
	return &cfg, nil
}
