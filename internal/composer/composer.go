package composer

import (
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rheannec/planora/internal/models"
)

var (
	ErrTitleRequired     = errors.New("title must be at least 3 characters")
	ErrStartDateRequired = errors.New("start date is required")
	ErrEndBeforeStart    = errors.New("end date must not be before start date")
)

// EventPatch is the partial event a single wizard step hands back. All
// fields are optional; a nil field leaves the accumulated value untouched.
type EventPatch struct {
	Type            *models.EventType  `json:"type,omitempty"`
	TemplateID      *uuid.UUID         `json:"template_id,omitempty"`
	Title           *string            `json:"title,omitempty"`
	Subtitle        *string            `json:"subtitle,omitempty"`
	Description     *string            `json:"description,omitempty"`
	Emoji           *string            `json:"emoji,omitempty"`
	Color           *string            `json:"color,omitempty"`
	Illustration    *string            `json:"illustration,omitempty"`
	BackgroundImage *string            `json:"background_image,omitempty"`
	StartDate       *time.Time         `json:"start_date,omitempty"`
	EndDate         *time.Time         `json:"end_date,omitempty"`
	AllDay          *bool              `json:"all_day,omitempty"`
	IsPrivate       *bool              `json:"is_private,omitempty"`
	Location        *models.Location   `json:"location,omitempty"`
	Hosts           []uuid.UUID        `json:"hosts,omitempty"`
	Participants    []ParticipantPatch `json:"participants,omitempty"`
	Gifts           []GiftPatch        `json:"gifts,omitempty"`
}

type ParticipantPatch struct {
	UserID uuid.UUID              `json:"user_id"`
	Role   models.ParticipantRole `json:"role,omitempty"`
}

type GiftPatch struct {
	Title         string `json:"title"`
	Price         int    `json:"price"`
	Pinned        bool   `json:"pinned,omitempty"`
	Collaborative bool   `json:"collaborative,omitempty"`
	TargetAmount  *int   `json:"target_amount,omitempty"`
}

// EffectiveType is the event type the flow is currently routing on.
func (p EventPatch) EffectiveType() models.EventType {
	if p.Type != nil {
		return *p.Type
	}
	return models.EventTypeCollective
}

// Merge folds a step's output into the accumulated patch. Non-nil fields
// overwrite; non-nil slices replace. Individual events keep at most one
// host: excess selections are truncated to the first, not rejected.
func Merge(base, patch EventPatch) EventPatch {
	merged := base

	if patch.Type != nil {
		merged.Type = patch.Type
	}
	if patch.TemplateID != nil {
		merged.TemplateID = patch.TemplateID
	}
	if patch.Title != nil {
		merged.Title = patch.Title
	}
	if patch.Subtitle != nil {
		merged.Subtitle = patch.Subtitle
	}
	if patch.Description != nil {
		merged.Description = patch.Description
	}
	if patch.Emoji != nil {
		merged.Emoji = patch.Emoji
	}
	if patch.Color != nil {
		merged.Color = patch.Color
	}
	if patch.Illustration != nil {
		merged.Illustration = patch.Illustration
	}
	if patch.BackgroundImage != nil {
		merged.BackgroundImage = patch.BackgroundImage
	}
	if patch.StartDate != nil {
		merged.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		merged.EndDate = patch.EndDate
	}
	if patch.AllDay != nil {
		merged.AllDay = patch.AllDay
	}
	if patch.IsPrivate != nil {
		merged.IsPrivate = patch.IsPrivate
	}
	if patch.Location != nil {
		merged.Location = patch.Location
	}
	if patch.Hosts != nil {
		merged.Hosts = patch.Hosts
	}
	if patch.Participants != nil {
		merged.Participants = patch.Participants
	}
	if patch.Gifts != nil {
		merged.Gifts = patch.Gifts
	}

	if merged.EffectiveType() == models.EventTypeIndividual && len(merged.Hosts) > 1 {
		log.Printf("composer: individual event allows a single host, keeping %s and dropping %d selection(s)", merged.Hosts[0], len(merged.Hosts)-1)
		merged.Hosts = merged.Hosts[:1]
	}

	return merged
}

// Finalize validates the accumulated patch and builds the event to persist.
func Finalize(patch EventPatch) (models.Event, error) {
	title := ""
	if patch.Title != nil {
		title = strings.TrimSpace(*patch.Title)
	}
	if utf8.RuneCountInString(title) < 3 {
		return models.Event{}, ErrTitleRequired
	}
	if patch.StartDate == nil {
		return models.Event{}, ErrStartDateRequired
	}
	if patch.EndDate != nil && patch.EndDate.Before(*patch.StartDate) {
		return models.Event{}, ErrEndBeforeStart
	}

	event := models.Event{
		Type:       patch.EffectiveType(),
		TemplateID: patch.TemplateID,
		Title:      title,
		StartDate:  *patch.StartDate,
		EndDate:    patch.EndDate,
	}
	if patch.Subtitle != nil {
		event.Subtitle = *patch.Subtitle
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.Emoji != nil {
		event.Emoji = *patch.Emoji
	}
	if patch.Color != nil {
		event.Color = *patch.Color
	}
	if patch.Illustration != nil {
		event.Illustration = *patch.Illustration
	}
	if patch.BackgroundImage != nil {
		event.BackgroundImage = *patch.BackgroundImage
	}
	if patch.AllDay != nil {
		event.AllDay = *patch.AllDay
	}
	if patch.IsPrivate != nil {
		event.IsPrivate = *patch.IsPrivate
	}
	if patch.Location != nil {
		event.Location = *patch.Location
	}

	hosts := patch.Hosts
	if event.Type == models.EventTypeIndividual && len(hosts) > 1 {
		log.Printf("composer: individual event allows a single host, keeping %s and dropping %d selection(s)", hosts[0], len(hosts)-1)
		hosts = hosts[:1]
	}
	for _, hostID := range hosts {
		event.Participants = append(event.Participants, models.Participant{
			UserID: hostID,
			Role:   models.ParticipantRoleHost,
			Status: models.ParticipantStatusConfirmed,
		})
	}
	for _, p := range patch.Participants {
		if isHost(hosts, p.UserID) {
			continue
		}
		role := p.Role
		if role == "" {
			role = models.ParticipantRoleGuest
		}
		event.Participants = append(event.Participants, models.Participant{
			UserID: p.UserID,
			Role:   role,
			Status: models.ParticipantStatusInvited,
		})
	}

	for _, g := range patch.Gifts {
		event.Gifts = append(event.Gifts, models.Gift{
			Title:         g.Title,
			Price:         g.Price,
			Pinned:        g.Pinned,
			Collaborative: g.Collaborative,
			TargetAmount:  g.TargetAmount,
			Status:        models.GiftStatusAvailable,
		})
	}

	return event, nil
}

func isHost(hosts []uuid.UUID, userID uuid.UUID) bool {
	for _, h := range hosts {
		if h == userID {
			return true
		}
	}
	return false
}
