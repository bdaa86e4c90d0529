package handlers_fiber

import (
	"net/http"

	"github.com/pmn/cla-assistant/internal/api"
	"github.com/pmn/cla-assistant/internal/entities"
	"github.com/pmn/cla-assistant/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// GetCheck reports whether a user or all committers of a PR signed the CLA.
func (h *Handler) GetCheck(c *fiber.Ctx) error {
	number, ok := queryNumber(c)
	if !ok {
		return badRequest(c, "number must be a positive integer")
	}

	res, err := h.uc.Check(c.Context(), entities.CheckQuery{
		Repo:   c.Query("repo"),
		Owner:  c.Query("owner"),
		User:   c.Query("user"),
		Number: number,
	})
	if err != nil {
		h.log.Errorw("failed to check cla", "error", err.Error())
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPICheck(*res))
}

// PostSign records a signature of the current CLA revision.
func (h *Handler) PostSign(c *fiber.Ctx) error {
	var body api.SignRequest
	if err := c.BodyParser(&body); err != nil {
		h.log.Errorw("failed to parse body", "error", err.Error())
		return badRequest(c, "invalid body")
	}

	res, err := h.uc.Sign(c.Context(), mapper.FromAPISign(body))
	if err != nil {
		h.log.Errorw("failed to sign cla", "error", err.Error())
		return writeError(c, err)
	}

	status := http.StatusOK
	if res.Created != nil {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(mapper.ToAPISign(*res))
}

// GetSigned lists the newest signature per repository of a user.
func (h *Handler) GetSigned(c *fiber.Ctx) error {
	clas, err := h.uc.GetSignedCLA(c.Context(), c.Query("user"))
	if err != nil {
		h.log.Errorw("failed to list signed clas", "error", err.Error())
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(api.CLAList{CLAs: mapper.ToAPICLAList(clas)})
}

// GetAll lists the signatures of the current CLA revision of a repository.
func (h *Handler) GetAll(c *fiber.Ctx) error {
	clas, err := h.uc.GetAll(c.Context(), c.Query("repo"), c.Query("owner"))
	if err != nil {
		h.log.Errorw("failed to list clas", "error", err.Error())
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(api.CLAList{CLAs: mapper.ToAPICLAList(clas)})
}

// GetLast returns the newest signature of a user regardless of revision.
func (h *Handler) GetLast(c *fiber.Ctx) error {
	cla, err := h.uc.GetLastSignature(c.Context(), c.Query("repo"), c.Query("owner"), c.Query("user"))
	if err != nil {
		h.log.Errorw("failed to get last signature", "error", err.Error())
		return writeError(c, err)
	}

	resp := api.LastSignatureResponse{}
	if cla != nil {
		out := mapper.ToAPICLA(*cla)
		resp.CLA = &out
	}
	return c.Status(http.StatusOK).JSON(resp)
}
