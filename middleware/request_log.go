package middleware

import (
	"time"

	"tour-booking/logger"
	"tour-booking/utils"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger queues every exchange on the async logger after the
// handler has run.
func RequestLogger(asyncLogger *logger.AsyncLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		startedAt := time.Now()
		err := c.Next()

		var actorID *uint
		if actor, ok := CurrentActor(c); ok {
			id := actor.UserID
			actorID = &id
		}
		asyncLogger.Log(utils.CreateSanitizedLogEntry(c, actorID, startedAt))
		return err
	}
}
