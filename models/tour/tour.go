package tour

import (
	"time"

	"tour-booking/models/user"
)

// Tour is an operator's listing that customers request quotes for.
type Tour struct {
	ID                uint                 `gorm:"primaryKey;autoIncrement" json:"id"`
	OperatorProfileID uint                 `gorm:"not null;index" json:"operator_profile_id"`
	OperatorProfile   user.OperatorProfile `gorm:"foreignKey:OperatorProfileID" json:"-"`
	Title             string               `gorm:"type:varchar(255);not null" json:"title"`
	IsActive          bool                 `gorm:"not null;default:true" json:"is_active"`
	MaxCapacity       *int                 `gorm:"type:int" json:"max_capacity,omitempty"`
	BasePrice         int64                `gorm:"not null;default:0" json:"base_price"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsBookable reports whether new quote requests may be submitted for the tour.
func (t *Tour) IsBookable() bool {
	return t != nil && t.IsActive && t.OperatorProfile.IsApproved()
}
