package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tour-booking/types"

	"github.com/gofiber/fiber/v2"
)

const maxLoggedBodyLength = 4000

// ParseIDParam reads a positive numeric route parameter such as :id
func ParseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}

// truncateBody keeps request logs bounded
func truncateBody(body string) string {
	if len(body) <= maxLoggedBodyLength {
		return body
	}
	return body[:maxLoggedBodyLength] + "...[TRUNCATED]"
}

// sanitizeRequestBody drops multipart payloads and bounds the rest
func sanitizeRequestBody(c *fiber.Ctx) string {
	if strings.Contains(c.Get("Content-Type"), "multipart/form-data") {
		return "[MULTIPART_FORM_DATA]"
	}
	return truncateBody(string(c.Body()))
}

// CreateSanitizedLogEntry copies everything it needs out of the fiber context,
// whose buffers are reused once the handler returns.
func CreateSanitizedLogEntry(c *fiber.Ctx, actorID *uint, startedAt time.Time) types.LogEntry {
	return types.LogEntry{
		Method:       string([]byte(c.Method())),
		URL:          string([]byte(c.OriginalURL())),
		RequestBody:  sanitizeRequestBody(c),
		ResponseBody: truncateBody(string(append([]byte(nil), c.Response().Body()...))),
		StatusCode:   c.Response().StatusCode(),
		ActorID:      actorID,
		DurationMs:   time.Since(startedAt).Milliseconds(),
		CreatedAt:    startedAt,
	}
}
