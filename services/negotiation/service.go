package negotiation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tour-booking/constants"
	"tour-booking/logger"
	quoteModel "tour-booking/models/quote"
)

const defaultValidityHours = constants.DefaultQuoteValidityHours

// Event types handed to the Notifier
const (
	EventSubmitted     = "quote.submitted"
	EventQuoted        = "quote.quoted"
	EventRevised       = "quote.revised"
	EventAccepted      = "quote.accepted"
	EventRejected      = "quote.rejected"
	EventCancelled     = "quote.cancelled"
	EventPaid          = "quote.paid"
	EventExpired       = "quote.expired"
	EventMessagePosted = "quote.message_posted"
)

// Event describes something that happened to a quote request.
type Event struct {
	Type       string                 `json:"type"`
	QuoteID    uint                   `json:"quote_id"`
	Reference  string                 `json:"reference"`
	Status     quoteModel.QuoteStatus `json:"status"`
	ActorID    *uint                  `json:"actor_id,omitempty"`
	MessageID  *uint                  `json:"message_id,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// Notifier receives events after they are committed. Notify must not block.
type Notifier interface {
	Notify(event Event)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Event) {}

// PaymentLinkBuilder returns the link the customer pays an accepted quote at.
type PaymentLinkBuilder func(q *quoteModel.QuoteRequest) (string, error)

// Service is the quote negotiation engine.
type Service struct {
	store        Store
	notifier     Notifier
	now          func() time.Time
	newReference ReferenceGenerator
	paymentLinks PaymentLinkBuilder
}

type Option func(*Service)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithReferenceGenerator(gen ReferenceGenerator) Option {
	return func(s *Service) { s.newReference = gen }
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithPaymentLinkBuilder(b PaymentLinkBuilder) Option {
	return func(s *Service) { s.paymentLinks = b }
}

// NewService creates a new negotiation service
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:        store,
		notifier:     nopNotifier{},
		now:          time.Now,
		newReference: NewReference,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// loadQuote fetches a quote with its tour, mapping store errors to domain errors
func (s *Service) loadQuote(ctx context.Context, id uint) (*quoteModel.QuoteRequest, error) {
	q, err := s.store.GetQuote(ctx, id)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, notFoundError("Quote request not found")
	}
	if err != nil {
		return nil, s.internal(fmt.Sprintf("load quote %d", id), err)
	}
	return q, nil
}

// commit writes q if it is still in expected state, translating a lost race
// into a conflict.
func (s *Service) commit(ctx context.Context, q *quoteModel.QuoteRequest, expected quoteModel.QuoteStatus, eventType string, actorID *uint) error {
	event := quoteModel.QuoteStatusEvent{
		QuoteRequestID: q.ID,
		FromStatus:     expected,
		ToStatus:       q.Status,
		EventType:      eventType,
		ActorID:        actorID,
	}
	err := s.store.UpdateQuote(ctx, q, expected, event)
	if errors.Is(err, ErrStaleRecord) {
		return conflictError("This quote request was changed by someone else, please reload and try again")
	}
	if err != nil {
		return s.internal(fmt.Sprintf("update quote %d", q.ID), err)
	}
	return nil
}

func (s *Service) internal(op string, err error) *Error {
	logger.Error("Quote negotiation: "+op, err)
	return internalError(err)
}

func (s *Service) notify(eventType string, q *quoteModel.QuoteRequest, actorID *uint) {
	s.notifier.Notify(Event{
		Type:       eventType,
		QuoteID:    q.ID,
		Reference:  q.Reference,
		Status:     q.Status,
		ActorID:    actorID,
		OccurredAt: s.now(),
	})
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func uintPtr(v uint) *uint {
	return &v
}
