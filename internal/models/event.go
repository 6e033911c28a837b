package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventType string

const (
	EventTypeCollective EventType = "collective"
	EventTypeIndividual EventType = "individual"
	EventTypeSpecial    EventType = "special"
)

type Location struct {
	Address    string   `json:"address,omitempty"`
	City       string   `json:"city,omitempty"`
	PostalCode string   `json:"postal_code,omitempty"`
	Country    string   `json:"country,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

type Event struct {
	gorm.Model
	ID              uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	Type            EventType           `gorm:"not null;default:'collective'" json:"type"`
	TemplateID      *uuid.UUID          `gorm:"type:uuid" json:"template_id,omitempty"`
	Template        *PredefinedTemplate `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
	Title           string              `gorm:"not null" json:"title"`
	Subtitle        string              `json:"subtitle,omitempty"`
	Description     string              `json:"description,omitempty"`
	Emoji           string              `json:"emoji,omitempty"`
	Color           string              `json:"color,omitempty"`
	Illustration    string              `json:"illustration,omitempty"`
	BackgroundImage string              `json:"background_image,omitempty"`
	StartDate       time.Time           `gorm:"not null" json:"start_date"`
	EndDate         *time.Time          `json:"end_date,omitempty"`
	AllDay          bool                `json:"all_day"`
	IsPrivate       bool                `json:"is_private"`
	Location        Location            `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	UserID          uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	User            User                `json:"user,omitempty"`
	Participants    []Participant       `json:"participants,omitempty"`
	Gifts           []Gift              `json:"gifts,omitempty"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}
