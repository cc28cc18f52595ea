package quote

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// SubmitQuoteRequest is the customer form for a new quote request
type SubmitQuoteRequest struct {
	TourID              uint    `json:"tour_id" validate:"required"`
	PreferredDate       string  `json:"preferred_date" validate:"required,datetime=2006-01-02"`
	FlexibleDates       bool    `json:"flexible_dates"`
	Adults              int     `json:"adults" validate:"required,min=1"`
	Children            int     `json:"children" validate:"min=0"`
	ChildAges           []int   `json:"child_ages" validate:"omitempty,dive,min=0,max=17"`
	BudgetRange         string  `json:"budget_range" validate:"omitempty,max=100"`
	SpecialRequirements string  `json:"special_requirements" validate:"omitempty,max=5000"`
	CustomerName        string  `json:"customer_name" validate:"required,min=1,max=255"`
	CustomerEmail       string  `json:"customer_email" validate:"required,email,max=255"`
	CustomerPhone       *string `json:"customer_phone" validate:"omitempty,max=20"`
	CustomerWhatsApp    *string `json:"customer_whatsapp" validate:"omitempty,max=20"`
}

func (req *SubmitQuoteRequest) Validate() error {
	return validate.Struct(req)
}

// LineItemPayload is one inclusion or exclusion as sent by the operator
type LineItemPayload struct {
	Item  string `json:"item" validate:"required,max=255"`
	Price *int64 `json:"price" validate:"omitempty,min=0"`
}

// RespondQuoteRequest carries the operator's (re)quote
type RespondQuoteRequest struct {
	QuotedPrice        int64             `json:"quoted_price" validate:"required,gt=0"`
	QuotedInclusions   []LineItemPayload `json:"quoted_inclusions" validate:"omitempty,dive"`
	QuotedExclusions   []LineItemPayload `json:"quoted_exclusions" validate:"omitempty,dive"`
	QuotedTerms        string            `json:"quoted_terms" validate:"omitempty,max=10000"`
	QuoteValidityHours *int              `json:"quote_validity_hours"`
}

func (req *RespondQuoteRequest) Validate() error {
	return validate.Struct(req)
}

// RejectQuoteRequest is sent when the customer turns an offer down
type RejectQuoteRequest struct {
	Reason string `json:"reason" validate:"required,max=2000"`
}

func (req *RejectQuoteRequest) Validate() error {
	return validate.Struct(req)
}

// CancelQuoteRequest is sent when the customer withdraws; reason is optional
type CancelQuoteRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=2000"`
}

func (req *CancelQuoteRequest) Validate() error {
	return validate.Struct(req)
}

// PostMessageRequest appends to the quote conversation
type PostMessageRequest struct {
	Message string `json:"message" validate:"required,max=5000"`
}

func (req *PostMessageRequest) Validate() error {
	return validate.Struct(req)
}

// PaymentCallbackRequest is posted by the payment collaborator on settlement
type PaymentCallbackRequest struct {
	Reference        string `json:"reference" validate:"required"`
	Amount           int64  `json:"amount" validate:"required,gt=0"`
	PaymentReference string `json:"payment_reference" validate:"required,max=255"`
}

func (req *PaymentCallbackRequest) Validate() error {
	return validate.Struct(req)
}
