package handlers_fiber

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pmn/cla-assistant/internal/api"
	"github.com/pmn/cla-assistant/internal/entities"
	"github.com/pmn/cla-assistant/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type usecaseMock struct{ mock.Mock }

var _ usecase.InterfaceUsecase = (*usecaseMock)(nil)

func (m *usecaseMock) Check(ctx context.Context, q entities.CheckQuery) (*entities.CheckResult, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CheckResult), args.Error(1)
}

func (m *usecaseMock) Sign(ctx context.Context, req entities.SignRequest) (*entities.SignResult, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SignResult), args.Error(1)
}

func (m *usecaseMock) GetSignedCLA(ctx context.Context, user string) ([]entities.CLA, error) {
	args := m.Called(user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.CLA), args.Error(1)
}

func (m *usecaseMock) GetAll(ctx context.Context, repo, owner string) ([]entities.CLA, error) {
	args := m.Called(repo, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.CLA), args.Error(1)
}

func (m *usecaseMock) GetLastSignature(ctx context.Context, repo, owner, user string) (*entities.CLA, error) {
	args := m.Called(repo, owner, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CLA), args.Error(1)
}

func (m *usecaseMock) LinkRepo(ctx context.Context, cfg entities.RepoConfig) (*entities.RepoConfig, error) {
	args := m.Called(cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RepoConfig), args.Error(1)
}

func newTestApp(t *testing.T) (*fiber.App, *usecaseMock) {
	t.Helper()
	uc := &usecaseMock{}
	t.Cleanup(func() { uc.AssertExpectations(t) })

	app := fiber.New()
	NewHandler(zap.NewNop().Sugar(), uc).Register(app)
	return app, uc
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestGetCheckPullRequest(t *testing.T) {
	app, uc := newTestApp(t)
	uc.On("Check", entities.CheckQuery{Repo: "myRepo", Owner: "owner", Number: 3}).Return(&entities.CheckResult{
		Signed: false,
		Gist:   &entities.Gist{URL: "u", Version: "r1", Files: map[string]string{"cla.md": "terms"}},
		Committers: &entities.CommitterResult{
			Signed:    []string{"login"},
			NotSigned: []string{"login2"},
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cla/check?repo=myRepo&owner=owner&number=3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[api.CheckResponse](t, resp)
	require.False(t, body.Signed)
	require.Equal(t, "r1", body.Gist.Version)
	require.Equal(t, []string{"login"}, body.Committers.Signed)
	require.Equal(t, []string{"login2"}, body.Committers.NotSigned)
}

func TestGetCheckUserNotSignedIsOK(t *testing.T) {
	app, uc := newTestApp(t)
	uc.On("Check", entities.CheckQuery{Repo: "myRepo", Owner: "owner", User: "login"}).
		Return(&entities.CheckResult{Signed: false}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cla/check?repo=myRepo&owner=owner&user=login", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[api.CheckResponse](t, resp)
	require.False(t, body.Signed)
	require.Nil(t, body.Committers)
}

func TestGetCheckBadNumber(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cla/check?repo=myRepo&owner=owner&number=abc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetCheckUpstreamError(t *testing.T) {
	app, uc := newTestApp(t)
	uc.On("Check", mock.Anything).Return(nil, entities.ErrTransport)

	req := httptest.NewRequest(http.MethodGet, "/api/cla/check?repo=myRepo&owner=owner&user=login", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestPostSignCreated(t *testing.T) {
	app, uc := newTestApp(t)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	uc.On("Sign", entities.SignRequest{Repo: "myRepo", Owner: "owner", User: "login"}).Return(&entities.SignResult{
		Signed: true,
		Created: &entities.CLA{
			ID: "id1", Repo: "myRepo", Owner: "owner", User: "login",
			GistURL: "g", GistVersion: "r1", CreatedAt: at,
		},
		PullRequests: []int{1},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/cla/sign",
		strings.NewReader(`{"repo":"myRepo","owner":"owner","user":"login"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decode[api.SignResponse](t, resp)
	require.True(t, body.Signed)
	require.Equal(t, "r1", body.CLA.GistVersion)
	require.Equal(t, []int{1}, body.PullRequests)
}

func TestPostSignAlreadySigned(t *testing.T) {
	app, uc := newTestApp(t)
	uc.On("Sign", mock.Anything).Return(&entities.SignResult{Signed: true}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/cla/sign",
		strings.NewReader(`{"repo":"myRepo","owner":"owner","user":"login"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[api.SignResponse](t, resp)
	require.Nil(t, body.CLA)
}

func TestPostSignInvalidBody(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/cla/sign", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPostSignInvalidLocator(t *testing.T) {
	app, uc := newTestApp(t)
	uc.On("Sign", mock.Anything).Return(nil, &entities.LocatorError{})

	req := httptest.NewRequest(http.MethodPost, "/api/cla/sign",
		strings.NewReader(`{"repo":"myRepo","owner":"owner","user":"login"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decode[api.ErrorResponse](t, resp)
	require.Equal(t, `The gist url "undefined" seems to be invalid`, body.Error.Message)
}

func TestGetSigned(t *testing.T) {
	app, uc := newTestApp(t)
	uc.On("GetSignedCLA", "login").Return([]entities.CLA{{ID: "a", Repo: "r", Owner: "o", User: "login"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cla/signed?user=login", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[api.CLAList](t, resp)
	require.Len(t, body.CLAs, 1)
	require.Equal(t, "a", body.CLAs[0].ID)
}

func TestGetAllEmpty(t *testing.T) {
	app, uc := newTestApp(t)
	uc.On("GetAll", "myRepo", "owner").Return([]entities.CLA{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cla/all?repo=myRepo&owner=owner", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[api.CLAList](t, resp)
	require.NotNil(t, body.CLAs)
	require.Empty(t, body.CLAs)
}

func TestGetAllRepoNotLinked(t *testing.T) {
	app, uc := newTestApp(t)
	uc.On("GetAll", "myRepo", "owner").Return(nil, entities.ErrRepoNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/cla/all?repo=myRepo&owner=owner", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetLastNone(t *testing.T) {
	app, uc := newTestApp(t)
	uc.On("GetLastSignature", "myRepo", "owner", "login").Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cla/last?repo=myRepo&owner=owner&user=login", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[api.LastSignatureResponse](t, resp)
	require.Nil(t, body.CLA)
}

func TestPutRepo(t *testing.T) {
	app, uc := newTestApp(t)
	cfg := entities.RepoConfig{Repo: "myRepo", Owner: "owner", GistURL: "https://gist.github.com/octo/gistId", Token: "abc"}
	stored := cfg
	stored.CreatedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	uc.On("LinkRepo", cfg).Return(&stored, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/repos", strings.NewReader(
		`{"repo":"myRepo","owner":"owner","gist_url":"https://gist.github.com/octo/gistId","token":"abc"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[map[string]any](t, resp)
	require.Equal(t, "myRepo", body["repo"])
	require.NotContains(t, body, "token")
}
