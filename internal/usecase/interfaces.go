package usecase

import (
	"context"

	"github.com/pmn/cla-assistant/internal/entities"
)

// CLAUsecaseInterface abstracts CLA check and signature operations for delivery layer.
type CLAUsecaseInterface interface {
	Check(ctx context.Context, q entities.CheckQuery) (*entities.CheckResult, error)
	Sign(ctx context.Context, req entities.SignRequest) (*entities.SignResult, error)
	GetSignedCLA(ctx context.Context, user string) ([]entities.CLA, error)
	GetAll(ctx context.Context, repo, owner string) ([]entities.CLA, error)
	GetLastSignature(ctx context.Context, repo, owner, user string) (*entities.CLA, error)
}

// RepoUsecaseInterface abstracts repository linking.
type RepoUsecaseInterface interface {
	LinkRepo(ctx context.Context, cfg entities.RepoConfig) (*entities.RepoConfig, error)
}
