package quote

import (
	"tour-booking/middleware"
	"tour-booking/services/negotiation"
	"tour-booking/types"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps a negotiation error kind to its HTTP status
func statusFor(kind negotiation.Kind) int {
	switch kind {
	case negotiation.KindValidation:
		return fiber.StatusUnprocessableEntity
	case negotiation.KindNotFound:
		return fiber.StatusNotFound
	case negotiation.KindForbidden:
		return fiber.StatusForbidden
	case negotiation.KindConflict:
		return fiber.StatusConflict
	case negotiation.KindExpired:
		return fiber.StatusGone
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err in the ApiResponse envelope
func respondError(c *fiber.Ctx, err error) error {
	kind := negotiation.KindOf(err)
	status := statusFor(kind)
	return c.Status(status).JSON(types.ApiResponse{
		Message: negotiation.MessageOf(err),
		Status:  status,
		Code:    string(kind),
	})
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	resp := types.ApiResponse{
		Message: message,
		Status:  fiber.StatusBadRequest,
		Code:    string(negotiation.KindValidation),
	}
	if err != nil {
		resp.Data = fiber.Map{"errors": err.Error()}
	}
	return c.Status(fiber.StatusBadRequest).JSON(resp)
}

func success(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(types.ApiResponse{
		Message: message,
		Status:  status,
		Data:    data,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
		Message: "Authentication required",
		Status:  fiber.StatusUnauthorized,
		Code:    "unauthorized",
	})
}

// currentActor reads the actor set by the auth middleware
func currentActor(c *fiber.Ctx) (types.Actor, bool) {
	return middleware.CurrentActor(c)
}
