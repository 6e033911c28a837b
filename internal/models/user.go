package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ID             uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	Email          string        `gorm:"unique;not null" json:"email"`
	Password       string        `gorm:"not null" json:"-"`
	Name           string        `gorm:"not null" json:"name"`
	PhoneNumber    string        `json:"phone_number,omitempty"`
	Events         []Event       `gorm:"foreignKey:UserID" json:"events,omitempty"`
	Participations []Participant `gorm:"foreignKey:UserID" json:"participations,omitempty"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return
}
