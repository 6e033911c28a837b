package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// PredefinedTemplate is a static catalog entry used to prefill an event at
// the start of a creation flow. Seeded at startup, immutable at runtime.
type PredefinedTemplate struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name                 string         `gorm:"unique;not null" json:"name"`
	Type                 EventType      `gorm:"not null" json:"type"`
	Icon                 string         `json:"icon,omitempty"`
	Emojis               pq.StringArray `gorm:"type:text[]" json:"emojis,omitempty"`
	DefaultRecurringDate *string        `json:"default_recurring_date,omitempty"`
	InvitationPolicy     string         `gorm:"type:text" json:"invitation_policy,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

func (template *PredefinedTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if template.ID == uuid.Nil {
		template.ID = uuid.New()
	}
	return
}
