package quote

import (
	"tour-booking/logger"
	"tour-booking/services/negotiation"
	quoteTypes "tour-booking/types/quote"

	"github.com/gofiber/fiber/v2"
)

// PaymentController receives settlement callbacks from the payment provider
type PaymentController struct {
	Service *negotiation.Service
}

func NewPaymentController(service *negotiation.Service) *PaymentController {
	return &PaymentController{Service: service}
}

// Callback marks the referenced quote as paid
func (pc *PaymentController) Callback(c *fiber.Ctx) error {
	var req quoteTypes.PaymentCallbackRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse payment callback", err)
		return badRequest(c, "Invalid request body", nil)
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, "Validation failed", err)
	}

	q, err := pc.Service.MarkPaidByReference(c.UserContext(), req.Reference, req.Amount, req.PaymentReference)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusOK, "Payment recorded", fiber.Map{
		"reference":     q.Reference,
		"booking_label": q.BookingLabel(),
		"status":        q.Status,
	})
}
