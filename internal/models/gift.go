package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GiftStatus string

const (
	GiftStatusAvailable   GiftStatus = "available"
	GiftStatusReserved    GiftStatus = "reserved"
	GiftStatusPurchased   GiftStatus = "purchased"
	GiftStatusContributed GiftStatus = "contributed"
)

// Price and amounts are in minor currency units.
type Gift struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	EventID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"event_id"`
	Title         string     `gorm:"not null" json:"title"`
	Price         int        `gorm:"not null" json:"price"`
	Status        GiftStatus `gorm:"not null;default:'available'" json:"status"`
	Pinned        bool       `json:"pinned"`
	Collaborative bool       `json:"collaborative"`
	CurrentAmount int        `gorm:"not null;default:0" json:"current_amount"`
	TargetAmount  *int       `json:"target_amount,omitempty"`
	ReservedByID  *uuid.UUID `gorm:"type:uuid" json:"reserved_by_id,omitempty"`
	ReservedBy    *User      `gorm:"foreignKey:ReservedByID" json:"reserved_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (gift *Gift) BeforeCreate(tx *gorm.DB) (err error) {
	if gift.ID == uuid.Nil {
		gift.ID = uuid.New()
	}
	return
}
