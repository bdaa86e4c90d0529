package handlers_fiber

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pmn/cla-assistant/internal/api"
	"github.com/pmn/cla-assistant/internal/entities"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorInvalidLocatorMessage(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return writeError(c, fmt.Errorf("resolve gist: %w", &entities.LocatorError{}))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body api.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, api.INVALIDLOCATOR, body.Error.Code)
	require.Equal(t, `The gist url "undefined" seems to be invalid`, body.Error.Message)
}

func TestWriteErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   api.ErrorCode
	}{
		{name: "invalid_argument", err: entities.ErrInvalidArgument, status: http.StatusBadRequest, code: api.INVALIDARGUMENT},
		{name: "repo_not_found", err: entities.ErrRepoNotFound, status: http.StatusNotFound, code: api.NOTFOUND},
		{name: "transport", err: fmt.Errorf("%w: status 503", entities.ErrTransport), status: http.StatusBadGateway, code: api.UPSTREAM},
		{name: "parse", err: entities.ErrParse, status: http.StatusBadGateway, code: api.UPSTREAM},
		{name: "persistence", err: entities.ErrPersistence, status: http.StatusInternalServerError, code: api.INTERNAL},
		{name: "unknown", err: fmt.Errorf("boom"), status: http.StatusInternalServerError, code: api.INTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return writeError(c, tt.err)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tt.status, resp.StatusCode)

			var body api.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.Equal(t, tt.code, body.Error.Code)
		})
	}
}
