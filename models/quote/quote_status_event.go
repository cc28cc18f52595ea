package quote

import (
	"time"
)

// QuoteStatusEvent records a status change of a quote request
type QuoteStatusEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	QuoteRequestID uint `gorm:"not null;index" json:"quote_request_id"`

	FromStatus QuoteStatus `gorm:"size:20" json:"from_status,omitempty"`
	ToStatus   QuoteStatus `gorm:"size:20;not null" json:"to_status"`
	EventType  string      `gorm:"type:varchar(50);not null;index" json:"event_type"` // submitted, quoted, revised, accepted, ...
	ActorID    *uint       `json:"actor_id,omitempty"`
	CreatedAt  time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the QuoteStatusEvent model
func (QuoteStatusEvent) TableName() string {
	return "quote_status_events"
}
