package quote

import "time"

// QuoteMessage is one entry of the conversation attached to a quote request.
// Messages are never edited or deleted.
type QuoteMessage struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	QuoteRequestID uint       `gorm:"not null;index" json:"quote_request_id"`
	SenderID       uint       `gorm:"not null" json:"sender_id"`
	SenderType     SenderType `gorm:"type:varchar(20);not null" json:"sender_type"`
	Message        string     `gorm:"type:text;not null" json:"message"`
	CreatedAt      time.Time  `gorm:"not null;index" json:"created_at"`
}

// TableName sets the table name for the QuoteMessage model
func (QuoteMessage) TableName() string {
	return "quote_messages"
}
