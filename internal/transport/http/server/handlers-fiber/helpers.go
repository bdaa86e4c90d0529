package handlers_fiber

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/pmn/cla-assistant/internal/api"
	"github.com/pmn/cla-assistant/internal/entities"

	"github.com/gofiber/fiber/v2"
)

func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	code := api.INTERNAL
	msg := "internal error"

	switch {
	case errors.Is(err, entities.ErrInvalidArgument):
		status = http.StatusBadRequest
		code = api.INVALIDARGUMENT
		msg = err.Error()
	case errors.Is(err, entities.ErrRepoNotFound):
		status = http.StatusNotFound
		code = api.NOTFOUND
		msg = "repository is not linked to a CLA"
	case errors.Is(err, entities.ErrInvalidLocator):
		status = http.StatusUnprocessableEntity
		code = api.INVALIDLOCATOR
		msg = locatorMessage(err)
	case errors.Is(err, entities.ErrTransport), errors.Is(err, entities.ErrParse):
		status = http.StatusBadGateway
		code = api.UPSTREAM
		msg = "gist store unavailable"
	}

	return c.Status(status).JSON(errorResponse(code, msg))
}

// locatorMessage returns the bare LocatorError text without wrapping prefixes.
func locatorMessage(err error) string {
	var le *entities.LocatorError
	if errors.As(err, &le) {
		return le.Error()
	}
	return err.Error()
}

func errorResponse(code api.ErrorCode, msg string) api.ErrorResponse {
	return api.ErrorResponse{Error: api.ErrorBody{Code: code, Message: msg}}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(errorResponse(api.INVALIDARGUMENT, msg))
}

// queryNumber parses the optional pull request number; 0 means absent.
func queryNumber(c *fiber.Ctx) (int, bool) {
	raw := c.Query("number")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
