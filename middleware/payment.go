package middleware

import (
	"crypto/subtle"

	"tour-booking/logger"
	"tour-booking/types"

	"github.com/gofiber/fiber/v2"
)

const PaymentSecretHeader = "X-Payment-Secret"

// RequirePaymentSecret guards the payment callback with a shared secret.
// An empty secret disables the endpoint.
func RequirePaymentSecret(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		given := c.Get(PaymentSecretHeader)
		if secret == "" || subtle.ConstantTimeCompare([]byte(given), []byte(secret)) != 1 {
			logger.Warning("Rejected payment callback from " + c.IP())
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Invalid payment callback credentials",
				Status:  fiber.StatusUnauthorized,
				Code:    "unauthorized",
			})
		}
		return c.Next()
	}
}
