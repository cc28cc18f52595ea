package quote

import (
	"tour-booking/logger"
	quoteModel "tour-booking/models/quote"
	"tour-booking/services/negotiation"
	quoteTypes "tour-booking/types/quote"
	"tour-booking/utils"

	"github.com/gofiber/fiber/v2"
)

// QuoteController handles quote negotiation HTTP requests
type QuoteController struct {
	Service *negotiation.Service
}

// NewQuoteController creates a new quote controller
func NewQuoteController(service *negotiation.Service) *QuoteController {
	return &QuoteController{Service: service}
}

func toLineItems(payload []quoteTypes.LineItemPayload) quoteModel.LineItems {
	if len(payload) == 0 {
		return quoteModel.LineItems{}
	}
	items := make(quoteModel.LineItems, 0, len(payload))
	for _, p := range payload {
		items = append(items, quoteModel.LineItem{Item: p.Item, Price: p.Price})
	}
	return items
}

// statusFilter reads the optional ?status= query parameter
func statusFilter(c *fiber.Ctx) *quoteModel.QuoteStatus {
	raw := c.Query("status")
	if raw == "" {
		return nil
	}
	status := quoteModel.QuoteStatus(raw)
	return &status
}

// Submit creates a new quote request for the logged in customer
func (qc *QuoteController) Submit(c *fiber.Ctx) error {
	actor, found := currentActor(c)
	if !found {
		return unauthorized(c)
	}

	var req quoteTypes.SubmitQuoteRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return badRequest(c, "Invalid request body", nil)
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, "Validation failed", err)
	}

	preferredDate, err := utils.ParseCalendarDate(req.PreferredDate)
	if err != nil {
		return badRequest(c, "Preferred date must be in YYYY-MM-DD format", nil)
	}

	q, err := qc.Service.Submit(c.UserContext(), actor, negotiation.TripParams{
		TourID:              req.TourID,
		PreferredDate:       preferredDate,
		FlexibleDates:       req.FlexibleDates,
		Adults:              req.Adults,
		Children:            req.Children,
		ChildAges:           req.ChildAges,
		BudgetRange:         req.BudgetRange,
		SpecialRequirements: req.SpecialRequirements,
		CustomerName:        req.CustomerName,
		CustomerEmail:       req.CustomerEmail,
		CustomerPhone:       req.CustomerPhone,
		CustomerWhatsApp:    req.CustomerWhatsApp,
	})
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusCreated, "Quote request submitted successfully", q)
}

// Show returns a single quote request as the caller may see it
func (qc *QuoteController) Show(c *fiber.Ctx) error {
	actor, found := currentActor(c)
	if !found {
		return unauthorized(c)
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid quote request ID", nil)
	}

	view, err := qc.Service.Get(c.UserContext(), actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusOK, "Quote request retrieved successfully", view)
}

// ListMine lists the customer's own quote requests
func (qc *QuoteController) ListMine(c *fiber.Ctx) error {
	actor, found := currentActor(c)
	if !found {
		return unauthorized(c)
	}

	views, err := qc.Service.ListForCustomer(c.UserContext(), actor, statusFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusOK, "Quote requests retrieved successfully", views)
}

// ListIncoming lists quote requests on the operator's tours
func (qc *QuoteController) ListIncoming(c *fiber.Ctx) error {
	actor, found := currentActor(c)
	if !found {
		return unauthorized(c)
	}

	views, err := qc.Service.ListForOperator(c.UserContext(), actor, statusFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusOK, "Quote requests retrieved successfully", views)
}

// Respond stores the operator's quote or a revision of it
func (qc *QuoteController) Respond(c *fiber.Ctx) error {
	actor, found := currentActor(c)
	if !found {
		return unauthorized(c)
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid quote request ID", nil)
	}

	var req quoteTypes.RespondQuoteRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return badRequest(c, "Invalid request body", nil)
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, "Validation failed", err)
	}

	q, err := qc.Service.Respond(c.UserContext(), actor, id, negotiation.QuoteTerms{
		QuotedPrice:   req.QuotedPrice,
		Inclusions:    toLineItems(req.QuotedInclusions),
		Exclusions:    toLineItems(req.QuotedExclusions),
		Terms:         req.QuotedTerms,
		ValidityHours: req.QuoteValidityHours,
	})
	if err != nil {
		return respondError(c, err)
	}

	message := "Quote sent successfully"
	if q.RevisionCount > 0 {
		message = "Quote revised successfully"
	}
	return success(c, fiber.StatusOK, message, q)
}

// Accept takes the operator's current offer
func (qc *QuoteController) Accept(c *fiber.Ctx) error {
	actor, found := currentActor(c)
	if !found {
		return unauthorized(c)
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid quote request ID", nil)
	}

	q, err := qc.Service.Accept(c.UserContext(), actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusOK, "Quote accepted successfully", q)
}

// Reject turns the operator's current offer down
func (qc *QuoteController) Reject(c *fiber.Ctx) error {
	actor, found := currentActor(c)
	if !found {
		return unauthorized(c)
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid quote request ID", nil)
	}

	var req quoteTypes.RejectQuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", nil)
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, "Validation failed", err)
	}

	q, err := qc.Service.Reject(c.UserContext(), actor, id, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusOK, "Quote rejected", q)
}

// Cancel withdraws the quote request; the body is optional
func (qc *QuoteController) Cancel(c *fiber.Ctx) error {
	actor, found := currentActor(c)
	if !found {
		return unauthorized(c)
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid quote request ID", nil)
	}

	var req quoteTypes.CancelQuoteRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body", nil)
		}
		if err := req.Validate(); err != nil {
			return badRequest(c, "Validation failed", err)
		}
	}

	q, err := qc.Service.Cancel(c.UserContext(), actor, id, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusOK, "Quote request cancelled", q)
}

// PostMessage adds a message to the quote conversation
func (qc *QuoteController) PostMessage(c *fiber.Ctx) error {
	actor, found := currentActor(c)
	if !found {
		return unauthorized(c)
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid quote request ID", nil)
	}

	var req quoteTypes.PostMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", nil)
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, "Validation failed", err)
	}

	msg, err := qc.Service.PostMessage(c.UserContext(), actor, id, req.Message)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusCreated, "Message sent", msg)
}

// ListMessages returns the whole conversation, oldest first
func (qc *QuoteController) ListMessages(c *fiber.Ctx) error {
	actor, found := currentActor(c)
	if !found {
		return unauthorized(c)
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid quote request ID", nil)
	}

	messages, err := qc.Service.ListMessages(c.UserContext(), actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusOK, "Messages retrieved successfully", messages)
}

// LatestMessage returns the newest message or null
func (qc *QuoteController) LatestMessage(c *fiber.Ctx) error {
	actor, found := currentActor(c)
	if !found {
		return unauthorized(c)
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid quote request ID", nil)
	}

	msg, err := qc.Service.LatestMessage(c.UserContext(), actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fiber.StatusOK, "Latest message retrieved successfully", msg)
}
