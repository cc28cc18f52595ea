package negotiation

import (
	"context"
	"errors"
	"time"

	quoteModel "tour-booking/models/quote"
	"tour-booking/models/tour"
	"tour-booking/models/user"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const pgUniqueViolation = "23505"

// GormStore is the Postgres-backed Store.
type GormStore struct {
	DB *gorm.DB
}

// NewGormStore creates a new GORM store
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// IsDuplicateKeyError reports whether err is a unique constraint violation.
func IsDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}
	return err
}

func (s *GormStore) GetTour(ctx context.Context, id uint) (*tour.Tour, error) {
	var t tour.Tour
	if err := s.DB.WithContext(ctx).Preload("OperatorProfile").First(&t, id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &t, nil
}

func (s *GormStore) GetUser(ctx context.Context, id uint) (*user.User, error) {
	var u user.User
	if err := s.DB.WithContext(ctx).Where("deleted_at IS NULL").First(&u, id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &u, nil
}

func (s *GormStore) CreateQuote(ctx context.Context, q *quoteModel.QuoteRequest) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(q).Error; err != nil {
			if IsDuplicateKeyError(err) {
				return ErrDuplicateReference
			}
			return err
		}

		return tx.Create(&quoteModel.QuoteStatusEvent{
			QuoteRequestID: q.ID,
			ToStatus:       q.Status,
			EventType:      "submitted",
			ActorID:        &q.UserID,
		}).Error
	})
}

func (s *GormStore) GetQuote(ctx context.Context, id uint) (*quoteModel.QuoteRequest, error) {
	var q quoteModel.QuoteRequest
	if err := s.DB.WithContext(ctx).Preload("Tour.OperatorProfile").First(&q, id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &q, nil
}

func (s *GormStore) GetQuoteByReference(ctx context.Context, reference string) (*quoteModel.QuoteRequest, error) {
	var q quoteModel.QuoteRequest
	err := s.DB.WithContext(ctx).Preload("Tour.OperatorProfile").
		Where("reference = ?", reference).First(&q).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &q, nil
}

// mutableColumns lists every column a lifecycle transition may change
func mutableColumns(q *quoteModel.QuoteRequest, version int, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"status":               q.Status,
		"quoted_price":         q.QuotedPrice,
		"quoted_inclusions":    q.QuotedInclusions,
		"quoted_exclusions":    q.QuotedExclusions,
		"quoted_terms":         q.QuotedTerms,
		"quote_validity_hours": q.QuoteValidityHours,
		"quoted_at":            q.QuotedAt,
		"quote_expires_at":     q.QuoteExpiresAt,
		"revision_count":       q.RevisionCount,
		"last_revised_at":      q.LastRevisedAt,
		"accepted_at":          q.AcceptedAt,
		"rejected_at":          q.RejectedAt,
		"rejection_reason":     q.RejectionReason,
		"cancelled_at":         q.CancelledAt,
		"cancellation_reason":  q.CancellationReason,
		"paid_at":              q.PaidAt,
		"paid_amount":          q.PaidAmount,
		"payment_reference":    q.PaymentReference,
		"payment_link":         q.PaymentLink,
		"version":              version,
		"updated_at":           now,
	}
}

// UpdateQuote writes q only if the row still has the expected status and the
// version q was read at.
func (s *GormStore) UpdateQuote(ctx context.Context, q *quoteModel.QuoteRequest, expected quoteModel.QuoteStatus, event quoteModel.QuoteStatusEvent) error {
	now := time.Now()
	nextVersion := q.Version + 1

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&quoteModel.QuoteRequest{}).
			Where("id = ? AND status = ? AND version = ?", q.ID, expected, q.Version).
			Updates(mutableColumns(q, nextVersion, now))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleRecord
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return err
	}

	q.Version = nextVersion
	q.UpdatedAt = now
	return nil
}

func (s *GormStore) ListQuotesByUser(ctx context.Context, userID uint, status *quoteModel.QuoteStatus) ([]quoteModel.QuoteRequest, error) {
	query := s.DB.WithContext(ctx).Preload("Tour.OperatorProfile").Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var quotes []quoteModel.QuoteRequest
	err := query.Order("created_at DESC, id DESC").Find(&quotes).Error
	return quotes, err
}

func (s *GormStore) ListQuotesByOperator(ctx context.Context, operatorProfileID uint, status *quoteModel.QuoteStatus) ([]quoteModel.QuoteRequest, error) {
	query := s.DB.WithContext(ctx).Preload("Tour.OperatorProfile").
		Select("quote_requests.*").
		Joins("JOIN tours ON tours.id = quote_requests.tour_id").
		Where("tours.operator_profile_id = ?", operatorProfileID)
	if status != nil {
		query = query.Where("quote_requests.status = ?", *status)
	}

	var quotes []quoteModel.QuoteRequest
	err := query.Order("quote_requests.created_at DESC, quote_requests.id DESC").Find(&quotes).Error
	return quotes, err
}

func (s *GormStore) ListExpiredQuotes(ctx context.Context, now time.Time, limit int) ([]quoteModel.QuoteRequest, error) {
	var quotes []quoteModel.QuoteRequest
	err := s.DB.WithContext(ctx).Preload("Tour.OperatorProfile").
		Where("status = ? AND quote_expires_at < ?", quoteModel.QuoteStatusQuoted, now).
		Order("quote_expires_at ASC").
		Limit(limit).
		Find(&quotes).Error
	return quotes, err
}

func (s *GormStore) CreateMessage(ctx context.Context, m *quoteModel.QuoteMessage) error {
	return s.DB.WithContext(ctx).Create(m).Error
}

func (s *GormStore) ListMessages(ctx context.Context, quoteID uint) ([]quoteModel.QuoteMessage, error) {
	var messages []quoteModel.QuoteMessage
	err := s.DB.WithContext(ctx).
		Where("quote_request_id = ?", quoteID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

func (s *GormStore) LatestMessage(ctx context.Context, quoteID uint) (*quoteModel.QuoteMessage, error) {
	var messages []quoteModel.QuoteMessage
	err := s.DB.WithContext(ctx).
		Where("quote_request_id = ?", quoteID).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, ErrRecordNotFound
	}
	return &messages[0], nil
}
