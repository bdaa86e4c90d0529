// Package middleware contains HTTP middlewares for delivery.
package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// RequestLogger logs HTTP requests with method, path, status and duration.
// Server errors are logged at error level and client errors at warn level.
// Request strings are copied since fiber reuses their buffers.
func RequestLogger(log *zap.SugaredLogger) fiber.Handler {
	log = log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		dur := time.Since(start)
		reqID, _ := c.Locals("requestid").(string)
		if reqID == "" {
			reqID = c.Get(fiber.HeaderXRequestID)
		}
		reqID = utils.CopyString(reqID)

		status := c.Response().StatusCode()
		kv := []any{
			"method", utils.CopyString(c.Method()),
			"path", utils.CopyString(c.Path()),
			"status", status,
			"duration_ms", float64(dur.Microseconds()) / 1000.0,
			"request_id", reqID,
		}
		if repo := c.Query("repo"); repo != "" {
			kv = append(kv, "repo", utils.CopyString(repo), "owner", utils.CopyString(c.Query("owner")))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			log.Errorw("request failed", kv...)
		case status >= fiber.StatusBadRequest:
			log.Warnw("request rejected", kv...)
		default:
			log.Infow("request served", kv...)
		}
		return err
	}
}
