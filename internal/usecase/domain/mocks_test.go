package domain

import (
	"context"

	"github.com/pmn/cla-assistant/internal/entities"

	"github.com/stretchr/testify/mock"
)

type repoServiceMock struct{ mock.Mock }

var _ RepoService = (*repoServiceMock)(nil)

func (m *repoServiceMock) Get(ctx context.Context, repo, owner string) (*entities.RepoConfig, error) {
	args := m.Called(ctx, repo, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RepoConfig), args.Error(1)
}

func (m *repoServiceMock) Link(ctx context.Context, cfg entities.RepoConfig) (*entities.RepoConfig, error) {
	args := m.Called(ctx, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RepoConfig), args.Error(1)
}

func (m *repoServiceMock) PRCommitters(ctx context.Context, cfg entities.RepoConfig, number int) ([]entities.Committer, error) {
	args := m.Called(ctx, cfg, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Committer), args.Error(1)
}

func (m *repoServiceMock) OpenPullRequests(ctx context.Context, cfg entities.RepoConfig) ([]entities.PullRequest, error) {
	args := m.Called(ctx, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.PullRequest), args.Error(1)
}

type resolverMock struct{ mock.Mock }

var _ GistResolver = (*resolverMock)(nil)

func (m *resolverMock) Resolve(ctx context.Context, locator entities.GistLocator, token string) (*entities.Gist, error) {
	args := m.Called(ctx, locator, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Gist), args.Error(1)
}

type statusMock struct{ mock.Mock }

var _ StatusNotifier = (*statusMock)(nil)

func (m *statusMock) UpdateStatus(ctx context.Context, upd entities.StatusUpdate) error {
	return m.Called(ctx, upd).Error(0)
}

type storeMock struct{ mock.Mock }

func (m *storeMock) FindExact(ctx context.Context, q entities.CLAQuery) (*entities.CLA, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CLA), args.Error(1)
}

func (m *storeMock) FindLatest(ctx context.Context, q entities.CLAQuery) (*entities.CLA, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CLA), args.Error(1)
}

func (m *storeMock) Append(ctx context.Context, cla entities.CLA) (*entities.CLA, error) {
	args := m.Called(ctx, cla)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CLA), args.Error(1)
}

func (m *storeMock) ListByUser(ctx context.Context, user string) ([]entities.CLA, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.CLA), args.Error(1)
}

func (m *storeMock) ListCurrent(ctx context.Context, repo, owner, gistURL, gistVersion string) ([]entities.CLA, error) {
	args := m.Called(ctx, repo, owner, gistURL, gistVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.CLA), args.Error(1)
}
