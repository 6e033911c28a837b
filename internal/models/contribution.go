package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContributionStatus string

const (
	ContributionStatusPending ContributionStatus = "pending"
	ContributionStatusPaid    ContributionStatus = "paid"
)

type Contribution struct {
	ID         uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	GiftID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"gift_id"`
	Gift       Gift               `json:"gift,omitempty"`
	UserID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	User       User               `json:"user,omitempty"`
	Amount     int                `gorm:"not null" json:"amount"`
	Status     ContributionStatus `gorm:"not null;default:'pending'" json:"status"`
	ExternalID string             `gorm:"not null;index" json:"external_id"`
	PaymentURL string             `json:"payment_url,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

func (contribution *Contribution) BeforeCreate(tx *gorm.DB) (err error) {
	if contribution.ID == uuid.Nil {
		contribution.ID = uuid.New()
	}
	return
}
