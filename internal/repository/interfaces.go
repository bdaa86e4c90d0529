// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"

	"github.com/pmn/cla-assistant/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
	// Ping reports whether the backend can serve requests.
	Ping(ctx context.Context) error
}

// CLAInterface is the append-only acceptance ledger. Lookups that match
// nothing return a nil record or an empty slice, never an error.
type CLAInterface interface {
	// FindExact returns a record matching the query including its gist version.
	FindExact(ctx context.Context, q entities.CLAQuery) (*entities.CLA, error)
	// FindLatest returns the newest record for the query regardless of gist version.
	FindLatest(ctx context.Context, q entities.CLAQuery) (*entities.CLA, error)
	// Append inserts a new record. It never overwrites or deduplicates.
	Append(ctx context.Context, cla entities.CLA) (*entities.CLA, error)
	// ListByUser returns the newest record per repository signed by user.
	ListByUser(ctx context.Context, user string) ([]entities.CLA, error)
	// ListCurrent returns records of repo/owner signed for the given gist version.
	ListCurrent(ctx context.Context, repo, owner, gistURL, gistVersion string) ([]entities.CLA, error)
}

// RepoInterface stores repository to gist links.
type RepoInterface interface {
	GetRepo(ctx context.Context, repo, owner string) (*entities.RepoConfig, error)
	UpsertRepo(ctx context.Context, cfg entities.RepoConfig) (*entities.RepoConfig, error)
}
