package negotiation

import (
	"context"
	"errors"
	"time"

	quoteModel "tour-booking/models/quote"
	"tour-booking/models/tour"
	"tour-booking/models/user"
)

var (
	ErrRecordNotFound     = errors.New("record not found")
	ErrStaleRecord        = errors.New("record changed since it was read")
	ErrDuplicateReference = errors.New("duplicate quote reference")
)

// Store is the record store behind the negotiation engine. Implementations
// must make UpdateQuote conditional on both the expected status and the
// version the caller read, returning ErrStaleRecord when nothing matched.
type Store interface {
	GetTour(ctx context.Context, id uint) (*tour.Tour, error)
	GetUser(ctx context.Context, id uint) (*user.User, error)

	// CreateQuote inserts q together with its "submitted" status event.
	// A reference clash must surface as ErrDuplicateReference.
	CreateQuote(ctx context.Context, q *quoteModel.QuoteRequest) error
	GetQuote(ctx context.Context, id uint) (*quoteModel.QuoteRequest, error)
	GetQuoteByReference(ctx context.Context, reference string) (*quoteModel.QuoteRequest, error)
	UpdateQuote(ctx context.Context, q *quoteModel.QuoteRequest, expected quoteModel.QuoteStatus, event quoteModel.QuoteStatusEvent) error
	ListQuotesByUser(ctx context.Context, userID uint, status *quoteModel.QuoteStatus) ([]quoteModel.QuoteRequest, error)
	ListQuotesByOperator(ctx context.Context, operatorProfileID uint, status *quoteModel.QuoteStatus) ([]quoteModel.QuoteRequest, error)
	ListExpiredQuotes(ctx context.Context, now time.Time, limit int) ([]quoteModel.QuoteRequest, error)

	CreateMessage(ctx context.Context, m *quoteModel.QuoteMessage) error
	ListMessages(ctx context.Context, quoteID uint) ([]quoteModel.QuoteMessage, error)
	LatestMessage(ctx context.Context, quoteID uint) (*quoteModel.QuoteMessage, error)
}
