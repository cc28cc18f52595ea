package user

import (
	"time"

	"tour-booking/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a platform account: a traveler, an operator's login or an admin.
type User struct {
	ID             uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid           string         `gorm:"type:varchar(255);not null;unique" json:"uuid"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Email          string         `gorm:"type:varchar(255);not null;unique" json:"email"`
	Phone          *string        `gorm:"type:varchar(20)" json:"phone,omitempty"`
	WhatsAppNumber *string        `gorm:"column:whatsapp_number;type:varchar(20)" json:"whatsapp_number,omitempty"`
	Role           constants.Role `gorm:"type:varchar(20);not null;default:user" json:"role"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate assigns the public UUID when the caller did not.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Uuid == "" {
		u.Uuid = uuid.NewString()
	}
	return nil
}

// OperatorProfile is the business profile behind an operator login.
type OperatorProfile struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint   `gorm:"not null;uniqueIndex" json:"user_id"`
	User           User   `gorm:"foreignKey:UserID" json:"-"`
	CompanyName    string `gorm:"type:varchar(255);not null" json:"company_name"`
	ApprovalStatus string `gorm:"type:varchar(20);not null;default:pending" json:"approval_status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsApproved returns true once an admin has approved the operator.
func (p *OperatorProfile) IsApproved() bool {
	return p != nil && p.ApprovalStatus == constants.ApprovalApproved
}
