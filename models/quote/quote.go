package quote

import (
	"strings"
	"time"

	"tour-booking/models/tour"
	"tour-booking/models/user"
)

// QuoteRequest is a customer's request for a custom-priced tour package and
// the operator's offer negotiated on it.
type QuoteRequest struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Reference string `gorm:"type:varchar(32);not null;uniqueIndex" json:"reference"`

	// Customer who submitted the request
	UserID uint      `gorm:"not null;index" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"-"`

	TourID uint      `gorm:"not null;index" json:"tour_id"`
	Tour   tour.Tour `gorm:"foreignKey:TourID" json:"-"`

	// Trip parameters, immutable after submission
	PreferredDate       time.Time `gorm:"type:date;not null" json:"preferred_date"`
	FlexibleDates       bool      `gorm:"not null;default:false" json:"flexible_dates"`
	Adults              int       `gorm:"not null" json:"adults"`
	Children            int       `gorm:"not null;default:0" json:"children"`
	ChildAges           IntSlice  `gorm:"type:jsonb" json:"child_ages,omitempty"`
	BudgetRange         string    `gorm:"type:varchar(100)" json:"budget_range,omitempty"`
	SpecialRequirements string    `gorm:"type:text" json:"special_requirements,omitempty"`

	// Contact details as typed on the form, decoupled from the live profile
	CustomerName     string  `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail    string  `gorm:"type:varchar(255);not null" json:"customer_email,omitempty"`
	CustomerPhone    *string `gorm:"type:varchar(20)" json:"customer_phone,omitempty"`
	CustomerWhatsApp *string `gorm:"column:customer_whatsapp;type:varchar(20)" json:"customer_whatsapp,omitempty"`

	// Operator offer
	QuotedPrice        *int64     `json:"quoted_price,omitempty"`
	QuotedInclusions   LineItems  `gorm:"type:jsonb" json:"quoted_inclusions,omitempty"`
	QuotedExclusions   LineItems  `gorm:"type:jsonb" json:"quoted_exclusions,omitempty"`
	QuotedTerms        string     `gorm:"type:text" json:"quoted_terms,omitempty"`
	QuoteValidityHours int        `gorm:"not null;default:72" json:"quote_validity_hours"`
	QuotedAt           *time.Time `json:"quoted_at,omitempty"`
	QuoteExpiresAt     *time.Time `gorm:"index" json:"quote_expires_at,omitempty"`
	RevisionCount      int        `gorm:"not null;default:0" json:"revision_count"`
	LastRevisedAt      *time.Time `json:"last_revised_at,omitempty"`

	Status QuoteStatus `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`

	AcceptedAt         *time.Time `json:"accepted_at,omitempty"`
	RejectedAt         *time.Time `json:"rejected_at,omitempty"`
	RejectionReason    string     `gorm:"type:text" json:"rejection_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `gorm:"type:text" json:"cancellation_reason,omitempty"`
	PaidAt             *time.Time `json:"paid_at,omitempty"`
	PaidAmount         *int64     `json:"paid_amount,omitempty"`
	PaymentReference   *string    `gorm:"type:varchar(255)" json:"payment_reference,omitempty"`
	PaymentLink        *string    `gorm:"type:varchar(2048)" json:"payment_link,omitempty"`

	// Bumped on every write, used for conditional updates
	Version int `gorm:"not null;default:1" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the QuoteRequest model
func (QuoteRequest) TableName() string {
	return "quote_requests"
}

// IsExpiredAt reports whether the offer can no longer be accepted at t.
// An offer is still acceptable at exactly QuoteExpiresAt.
func (q *QuoteRequest) IsExpiredAt(t time.Time) bool {
	return q.QuoteExpiresAt != nil && t.After(*q.QuoteExpiresAt)
}

// Travellers is the party size the capacity rule applies to.
func (q *QuoteRequest) Travellers() int {
	return q.Adults + q.Children
}

// BookingLabel is the reference shown to people once the quote is paid.
func (q *QuoteRequest) BookingLabel() string {
	if q.Status == QuoteStatusPaid && strings.HasPrefix(q.Reference, "QR-") {
		return "BK-" + strings.TrimPrefix(q.Reference, "QR-")
	}
	return q.Reference
}
