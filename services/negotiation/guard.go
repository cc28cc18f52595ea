package negotiation

import (
	quoteModel "tour-booking/models/quote"
	"tour-booking/models/user"
	"tour-booking/types"
)

const (
	noAccessMessage        = "You do not have access to this quote request"
	pendingApprovalMessage = "Your operator account is pending approval"
)

// Authorize resolves which side of the negotiation actor is on. Only the
// quote's customer and the approved operator owning the tour get through;
// admins do not take part in negotiations.
func Authorize(actor types.Actor, q *quoteModel.QuoteRequest) (quoteModel.SenderType, error) {
	switch {
	case actor.IsCustomer():
		if q.UserID == actor.UserID {
			return quoteModel.SenderCustomer, nil
		}
	case actor.IsOperator():
		if !actor.OperatorApproved {
			return "", forbiddenError(pendingApprovalMessage)
		}
		if actor.OperatorProfileID != nil && q.Tour.OperatorProfileID == *actor.OperatorProfileID {
			return quoteModel.SenderOperator, nil
		}
	}
	return "", forbiddenError(noAccessMessage)
}

// RequireCustomer allows only the customer who owns q.
func RequireCustomer(actor types.Actor, q *quoteModel.QuoteRequest) error {
	sender, err := Authorize(actor, q)
	if err != nil {
		return err
	}
	if sender != quoteModel.SenderCustomer {
		return forbiddenError("Only the customer can do this")
	}
	return nil
}

// RequireOperator allows only the approved operator owning the quote's tour.
func RequireOperator(actor types.Actor, q *quoteModel.QuoteRequest) error {
	sender, err := Authorize(actor, q)
	if err != nil {
		return err
	}
	if sender != quoteModel.SenderOperator {
		return forbiddenError("Only the tour operator can do this")
	}
	return nil
}

// CanRead is Authorize plus the admin read bypass.
func CanRead(actor types.Actor, q *quoteModel.QuoteRequest) error {
	if actor.IsAdmin() {
		return nil
	}
	_, err := Authorize(actor, q)
	return err
}

// CustomerContact is the customer block of a quote as shown to the viewer.
type CustomerContact struct {
	Name           string  `json:"name"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	WhatsAppNumber *string `json:"whatsapp_number,omitempty"`
}

// QuoteView is the read-side projection of a quote request.
type QuoteView struct {
	quoteModel.QuoteRequest
	BookingLabel  string                   `json:"booking_label"`
	Customer      CustomerContact          `json:"customer"`
	LatestMessage *quoteModel.QuoteMessage `json:"latest_message,omitempty"`
}

// ContactVisible reports whether actor may see the customer's live contact
// details. Operators only get them once the booking is paid.
func ContactVisible(actor types.Actor, q *quoteModel.QuoteRequest) bool {
	if actor.IsOperator() {
		return q.Status == quoteModel.QuoteStatusPaid
	}
	return true
}

// Project builds the view of q for actor. live is the customer's current
// profile and may be nil when it is not needed or could not be loaded.
// The stored record is never modified.
func Project(actor types.Actor, q *quoteModel.QuoteRequest, live *user.User) QuoteView {
	view := QuoteView{
		QuoteRequest: *q,
		BookingLabel: q.BookingLabel(),
		Customer:     CustomerContact{Name: q.CustomerName},
	}

	if !ContactVisible(actor, q) {
		view.CustomerEmail = ""
		view.CustomerPhone = nil
		view.CustomerWhatsApp = nil
		return view
	}

	if live != nil {
		email := live.Email
		view.Customer.Email = &email
		view.Customer.Phone = live.Phone
		view.Customer.WhatsAppNumber = live.WhatsAppNumber
	}
	return view
}
