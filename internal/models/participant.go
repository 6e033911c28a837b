package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ParticipantRole string

const (
	ParticipantRoleHost  ParticipantRole = "host"
	ParticipantRoleAdmin ParticipantRole = "admin"
	ParticipantRoleGuest ParticipantRole = "guest"
)

type ParticipantStatus string

const (
	ParticipantStatusInvited   ParticipantStatus = "invited"
	ParticipantStatusConfirmed ParticipantStatus = "confirmed"
	ParticipantStatusDeclined  ParticipantStatus = "declined"
	ParticipantStatusPending   ParticipantStatus = "pending"
)

type Participant struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	EventID     uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_event_user" json:"event_id"`
	UserID      uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_event_user" json:"user_id"`
	User        User              `json:"user,omitempty"`
	Role        ParticipantRole   `gorm:"not null;default:'guest'" json:"role"`
	Status      ParticipantStatus `gorm:"not null;default:'invited'" json:"status"`
	InvitedAt   time.Time         `gorm:"not null" json:"invited_at"`
	RespondedAt *time.Time        `json:"responded_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (participant *Participant) BeforeCreate(tx *gorm.DB) (err error) {
	if participant.ID == uuid.Nil {
		participant.ID = uuid.New()
	}
	if participant.InvitedAt.IsZero() {
		participant.InvitedAt = time.Now().UTC()
	}
	return
}
