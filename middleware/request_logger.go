package middleware

import (
	"hostel-booking/logger"
	"hostel-booking/utils"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger hands a sanitized copy of every request/response to the
// async logger after the handler chain completes.
func RequestLogger(asyncLogger *logger.AsyncLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		asyncLogger.Log(utils.CreateSanitizedLogEntry(c))
		return err
	}
}
