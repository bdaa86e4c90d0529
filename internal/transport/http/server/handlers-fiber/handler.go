// Package handlers_fiber wires HTTP delivery components.
package handlers_fiber

import (
	"github.com/pmn/cla-assistant/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the CLA API using service layer interfaces.
type Handler struct {
	log *zap.SugaredLogger
	uc  usecase.InterfaceUsecase
}

// NewHandler constructs an HTTP server with service dependencies.
func NewHandler(log *zap.SugaredLogger, usecase usecase.InterfaceUsecase) *Handler {
	return &Handler{
		log: log,
		uc:  usecase,
	}
}

// Register mounts the API routes on router.
func (h *Handler) Register(router fiber.Router) {
	cla := router.Group("/api/cla")
	cla.Get("/check", h.GetCheck)
	cla.Post("/sign", h.PostSign)
	cla.Get("/signed", h.GetSigned)
	cla.Get("/all", h.GetAll)
	cla.Get("/last", h.GetLast)

	router.Put("/api/repos", h.PutRepo)
}
