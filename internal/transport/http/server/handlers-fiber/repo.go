package handlers_fiber

import (
	"net/http"

	"github.com/pmn/cla-assistant/internal/api"
	"github.com/pmn/cla-assistant/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// PutRepo links a repository to its CLA gist.
func (h *Handler) PutRepo(c *fiber.Ctx) error {
	var body api.RepoLinkRequest
	if err := c.BodyParser(&body); err != nil {
		h.log.Errorw("failed to parse body", "error", err.Error())
		return badRequest(c, "invalid body")
	}

	cfg, err := h.uc.LinkRepo(c.Context(), mapper.FromAPIRepoLink(body))
	if err != nil {
		h.log.Errorw("failed to link repo", "error", err.Error())
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPIRepo(*cfg))
}
