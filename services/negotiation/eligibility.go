package negotiation

import (
	"strings"
	"time"

	quoteModel "tour-booking/models/quote"
	"tour-booking/models/tour"
	"tour-booking/utils"
)

const tourUnavailableMessage = "Tour not found or no longer available"

// TripParams is what a customer fills in when asking for a quote.
type TripParams struct {
	TourID              uint
	PreferredDate       time.Time
	FlexibleDates       bool
	Adults              int
	Children            int
	ChildAges           []int
	BudgetRange         string
	SpecialRequirements string

	CustomerName     string
	CustomerEmail    string
	CustomerPhone    *string
	CustomerWhatsApp *string
}

// CheckEligibility runs the submit-time checks against the tour as it is
// right now. It is never re-run later in the lifecycle.
//
// A missing tour, an inactive tour and a tour of an unapproved operator all
// produce the same not-found error.
func CheckEligibility(t *tour.Tour, params TripParams, today time.Time) error {
	if !t.IsBookable() {
		return notFoundError(tourUnavailableMessage)
	}

	if params.Adults < 1 {
		return validationError("At least one adult is required")
	}
	if params.Children < 0 {
		return validationError("Number of children cannot be negative")
	}
	if len(params.ChildAges) > 0 && len(params.ChildAges) != params.Children {
		return validationError("Please provide an age for each child (%d children, %d ages)", params.Children, len(params.ChildAges))
	}
	for _, age := range params.ChildAges {
		if age < 0 || age > 17 {
			return validationError("Child ages must be between 0 and 17")
		}
	}

	if t.MaxCapacity != nil && params.Adults+params.Children > *t.MaxCapacity {
		return validationError("This tour accepts at most %d travellers", *t.MaxCapacity)
	}

	if params.PreferredDate.IsZero() {
		return validationError("Preferred date is required")
	}
	if utils.IsBeforeDay(params.PreferredDate, today) {
		return validationError("Preferred date cannot be in the past")
	}

	if strings.TrimSpace(params.CustomerName) == "" {
		return validationError("Your name is required")
	}
	if strings.TrimSpace(params.CustomerEmail) == "" {
		return validationError("Your email is required")
	}
	return nil
}

func newQuoteRequest(customerID uint, params TripParams) *quoteModel.QuoteRequest {
	var childAges quoteModel.IntSlice
	if len(params.ChildAges) > 0 {
		childAges = append(quoteModel.IntSlice(nil), params.ChildAges...)
	}
	return &quoteModel.QuoteRequest{
		UserID:              customerID,
		TourID:              params.TourID,
		PreferredDate:       utils.CalendarDate(params.PreferredDate),
		FlexibleDates:       params.FlexibleDates,
		Adults:              params.Adults,
		Children:            params.Children,
		ChildAges:           childAges,
		BudgetRange:         strings.TrimSpace(params.BudgetRange),
		SpecialRequirements: strings.TrimSpace(params.SpecialRequirements),
		CustomerName:        strings.TrimSpace(params.CustomerName),
		CustomerEmail:       strings.TrimSpace(params.CustomerEmail),
		CustomerPhone:       params.CustomerPhone,
		CustomerWhatsApp:    params.CustomerWhatsApp,
		QuoteValidityHours:  defaultValidityHours,
		Status:              quoteModel.QuoteStatusPending,
		Version:             1,
	}
}
