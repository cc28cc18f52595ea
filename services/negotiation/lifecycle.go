package negotiation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tour-booking/constants"
	"tour-booking/logger"
	quoteModel "tour-booking/models/quote"
	"tour-booking/types"
)

// QuoteTerms is the operator's offer. Prices are in cents.
type QuoteTerms struct {
	QuotedPrice   int64
	Inclusions    quoteModel.LineItems
	Exclusions    quoteModel.LineItems
	Terms         string
	ValidityHours *int
}

func (t QuoteTerms) validityHours() (int, error) {
	if t.ValidityHours == nil {
		return defaultValidityHours, nil
	}
	if *t.ValidityHours <= 0 {
		return 0, validationError("Quote validity must be at least one hour")
	}
	return *t.ValidityHours, nil
}

func (t QuoteTerms) validate() error {
	if t.QuotedPrice <= 0 {
		return validationError("Quoted price must be greater than zero")
	}
	if err := t.Inclusions.Validate(); err != nil {
		return validationError("Inclusions: %s", err.Error())
	}
	if err := t.Exclusions.Validate(); err != nil {
		return validationError("Exclusions: %s", err.Error())
	}
	return nil
}

// transitionConflict explains why action is not possible from status
func transitionConflict(action string, status quoteModel.QuoteStatus) *Error {
	switch {
	case action == ActionCancel && status == quoteModel.QuoteStatusPaid:
		return conflictError("Cannot cancel a paid booking")
	case action == ActionRespond && (status == quoteModel.QuoteStatusAccepted || status == quoteModel.QuoteStatusPaid):
		return conflictError("This quote has already been accepted and can no longer be revised")
	case status.IsTerminal():
		return conflictError(fmt.Sprintf("This quote request is already %s", status))
	default:
		return conflictError(fmt.Sprintf("A quote request that is %s cannot be %s", status, pastTense(action)))
	}
}

func pastTense(action string) string {
	switch action {
	case ActionRespond:
		return "quoted"
	case ActionAccept:
		return "accepted"
	case ActionReject:
		return "rejected"
	case ActionCancel:
		return "cancelled"
	case ActionPay:
		return "paid"
	default:
		return "expired"
	}
}

// Submit creates a pending quote request for the customer.
func (s *Service) Submit(ctx context.Context, actor types.Actor, params TripParams) (*quoteModel.QuoteRequest, error) {
	if !actor.IsCustomer() {
		return nil, forbiddenError("Only customers can request quotes")
	}

	t, err := s.store.GetTour(ctx, params.TourID)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, notFoundError(tourUnavailableMessage)
	}
	if err != nil {
		return nil, s.internal(fmt.Sprintf("load tour %d", params.TourID), err)
	}

	now := s.now()
	if err := CheckEligibility(t, params, now); err != nil {
		return nil, err
	}

	q := newQuoteRequest(actor.UserID, params)
	err = WithRetries(func() error {
		q.Reference = s.newReference(s.now())
		return s.store.CreateQuote(ctx, q)
	}, constants.MaxReferenceRetries, func(err error) bool {
		return errors.Is(err, ErrDuplicateReference)
	})
	if err != nil {
		return nil, s.internal("create quote", err)
	}

	logger.Success(fmt.Sprintf("Quote request %s submitted for tour %d", q.Reference, q.TourID))
	s.notify(EventSubmitted, q, uintPtr(actor.UserID))
	return q, nil
}

// Respond stores the operator's offer and moves the quote to quoted. Quoting
// an already quoted request is a revision.
func (s *Service) Respond(ctx context.Context, actor types.Actor, quoteID uint, terms QuoteTerms) (*quoteModel.QuoteRequest, error) {
	q, err := s.loadQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if err := RequireOperator(actor, q); err != nil {
		return nil, err
	}
	if !ValidTransition(ActionRespond, q.Status) {
		return nil, transitionConflict(ActionRespond, q.Status)
	}
	if err := terms.validate(); err != nil {
		return nil, err
	}
	hours, err := terms.validityHours()
	if err != nil {
		return nil, err
	}

	now := s.now()
	from := q.Status
	isRevision := from != quoteModel.QuoteStatusPending

	price := terms.QuotedPrice
	q.Status = quoteModel.QuoteStatusQuoted
	q.QuotedPrice = &price
	q.QuotedInclusions = terms.Inclusions
	q.QuotedExclusions = terms.Exclusions
	q.QuotedTerms = strings.TrimSpace(terms.Terms)
	q.QuoteValidityHours = hours
	q.QuotedAt = timePtr(now)
	q.QuoteExpiresAt = timePtr(now.Add(time.Duration(hours) * time.Hour))
	if isRevision {
		q.RevisionCount++
		q.LastRevisedAt = timePtr(now)
	} else {
		q.RevisionCount = 0
	}

	eventType := EventQuoted
	if isRevision {
		eventType = EventRevised
	}
	if err := s.commit(ctx, q, from, eventType, uintPtr(actor.UserID)); err != nil {
		return nil, err
	}

	s.notify(eventType, q, uintPtr(actor.UserID))
	return q, nil
}

// Accept takes the current offer. It fails once the offer has expired.
func (s *Service) Accept(ctx context.Context, actor types.Actor, quoteID uint) (*quoteModel.QuoteRequest, error) {
	q, err := s.loadQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if err := RequireCustomer(actor, q); err != nil {
		return nil, err
	}

	now := s.now()
	// same answer whether or not the sweeper got to it first
	if q.Status == quoteModel.QuoteStatusExpired ||
		(q.Status == quoteModel.QuoteStatusQuoted && q.IsExpiredAt(now)) {
		return nil, offerExpired(q)
	}
	if !ValidTransition(ActionAccept, q.Status) {
		return nil, transitionConflict(ActionAccept, q.Status)
	}

	q.Status = quoteModel.QuoteStatusAccepted
	q.AcceptedAt = timePtr(now)
	if s.paymentLinks != nil {
		link, err := s.paymentLinks(q)
		if err != nil {
			// the customer can still be sent a link later
			logger.Error(fmt.Sprintf("Failed to build payment link for %s", q.Reference), err)
		} else if link != "" {
			q.PaymentLink = &link
		}
	}

	if err := s.commit(ctx, q, quoteModel.QuoteStatusQuoted, EventAccepted, uintPtr(actor.UserID)); err != nil {
		return nil, err
	}

	s.notify(EventAccepted, q, uintPtr(actor.UserID))
	return q, nil
}

// Reject declines the current offer.
func (s *Service) Reject(ctx context.Context, actor types.Actor, quoteID uint, reason string) (*quoteModel.QuoteRequest, error) {
	q, err := s.loadQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if err := RequireCustomer(actor, q); err != nil {
		return nil, err
	}
	if !ValidTransition(ActionReject, q.Status) {
		return nil, transitionConflict(ActionReject, q.Status)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, validationError("Please tell the operator why you are declining")
	}

	q.Status = quoteModel.QuoteStatusRejected
	q.RejectedAt = timePtr(s.now())
	q.RejectionReason = reason

	if err := s.commit(ctx, q, quoteModel.QuoteStatusQuoted, EventRejected, uintPtr(actor.UserID)); err != nil {
		return nil, err
	}

	s.notify(EventRejected, q, uintPtr(actor.UserID))
	return q, nil
}

// Cancel withdraws the request. Paid bookings cannot be cancelled here.
func (s *Service) Cancel(ctx context.Context, actor types.Actor, quoteID uint, reason string) (*quoteModel.QuoteRequest, error) {
	q, err := s.loadQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if err := RequireCustomer(actor, q); err != nil {
		return nil, err
	}
	if !ValidTransition(ActionCancel, q.Status) {
		return nil, transitionConflict(ActionCancel, q.Status)
	}

	from := q.Status
	q.Status = quoteModel.QuoteStatusCancelled
	q.CancelledAt = timePtr(s.now())
	q.CancellationReason = strings.TrimSpace(reason)

	if err := s.commit(ctx, q, from, EventCancelled, uintPtr(actor.UserID)); err != nil {
		return nil, err
	}

	s.notify(EventCancelled, q, uintPtr(actor.UserID))
	return q, nil
}

// MarkPaid settles an accepted quote. It is called by the payment
// collaborator, not by a person, so there is no actor.
func (s *Service) MarkPaid(ctx context.Context, quoteID uint, amount int64, paymentReference string) (*quoteModel.QuoteRequest, error) {
	q, err := s.loadQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	return s.markPaid(ctx, q, amount, paymentReference)
}

// MarkPaidByReference is MarkPaid keyed by the public quote reference.
func (s *Service) MarkPaidByReference(ctx context.Context, reference string, amount int64, paymentReference string) (*quoteModel.QuoteRequest, error) {
	q, err := s.store.GetQuoteByReference(ctx, strings.TrimSpace(reference))
	if errors.Is(err, ErrRecordNotFound) {
		return nil, notFoundError("Quote request not found")
	}
	if err != nil {
		return nil, s.internal("load quote by reference", err)
	}
	return s.markPaid(ctx, q, amount, paymentReference)
}

func (s *Service) markPaid(ctx context.Context, q *quoteModel.QuoteRequest, amount int64, paymentReference string) (*quoteModel.QuoteRequest, error) {
	paymentReference = strings.TrimSpace(paymentReference)
	if paymentReference == "" {
		return nil, validationError("Payment reference is required")
	}

	if q.Status == quoteModel.QuoteStatusPaid && q.PaymentReference != nil && *q.PaymentReference == paymentReference {
		logger.Warning(fmt.Sprintf("Payment %s for %s replayed", paymentReference, q.Reference))
		return nil, conflictError("This quote has already been paid")
	}
	if !ValidTransition(ActionPay, q.Status) {
		return nil, transitionConflict(ActionPay, q.Status)
	}
	if q.QuotedPrice == nil || amount != *q.QuotedPrice {
		logger.Warningf("Payment anomaly on %s: paid %d, quoted %v, payment reference %s",
			q.Reference, amount, derefInt64(q.QuotedPrice), paymentReference)
		return nil, validationError("Paid amount does not match the quoted price")
	}

	q.Status = quoteModel.QuoteStatusPaid
	q.PaidAt = timePtr(s.now())
	q.PaidAmount = &amount
	q.PaymentReference = &paymentReference

	if err := s.commit(ctx, q, quoteModel.QuoteStatusAccepted, EventPaid, nil); err != nil {
		return nil, err
	}

	logger.Success(fmt.Sprintf("Quote %s paid (%d)", q.Reference, amount))
	s.notify(EventPaid, q, nil)
	return q, nil
}

// ExpireStale moves quoted requests whose offer ran out to expired and
// returns how many were changed. Records that changed concurrently are skipped.
func (s *Service) ExpireStale(ctx context.Context, batchSize int) (int, error) {
	now := s.now()
	quotes, err := s.store.ListExpiredQuotes(ctx, now, batchSize)
	if err != nil {
		return 0, s.internal("list expired quotes", err)
	}

	expired := 0
	for i := range quotes {
		q := &quotes[i]
		if !ValidTransition(ActionExpire, q.Status) || !q.IsExpiredAt(now) {
			continue
		}
		q.Status = quoteModel.QuoteStatusExpired
		if err := s.commit(ctx, q, quoteModel.QuoteStatusQuoted, EventExpired, nil); err != nil {
			if IsKind(err, KindConflict) {
				continue
			}
			return expired, err
		}
		expired++
		s.notify(EventExpired, q, nil)
	}
	return expired, nil
}

func offerExpired(q *quoteModel.QuoteRequest) *Error {
	if q.QuoteExpiresAt == nil {
		return expiredError("This quote has expired, please ask the operator for a new one")
	}
	return expiredError(fmt.Sprintf("This quote expired on %s, please ask the operator for a new one",
		q.QuoteExpiresAt.UTC().Format("02 Jan 2006 15:04 UTC")))
}

func derefInt64(v *int64) interface{} {
	if v == nil {
		return "none"
	}
	return *v
}
