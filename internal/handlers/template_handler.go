package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rheannec/planora/internal/composer"
	"github.com/rheannec/planora/internal/drafts"
	"github.com/rheannec/planora/internal/helpers"
	"github.com/rheannec/planora/internal/models"
	"github.com/rheannec/planora/internal/sequencer"
)

func ListTemplates(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var templates []models.PredefinedTemplate
	if err := gormDB.Order("name ASC").Find(&templates).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving templates.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"templates": templates,
	})
}

func CreateDraftFromTemplate(c *gin.Context) {
	templateID := c.Param("id")

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	userUUID := userID.(uuid.UUID)

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var template models.PredefinedTemplate
	if err := gormDB.Where("id = ?", templateID).First(&template).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Template not found.")
		return
	}

	eventType := template.Type
	patch := composer.EventPatch{
		Type:       &eventType,
		TemplateID: &template.ID,
	}
	if template.Icon != "" {
		icon := template.Icon
		patch.Emoji = &icon
	}
	if template.DefaultRecurringDate != nil {
		if startDate, ok := nextOccurrence(*template.DefaultRecurringDate, time.Now().UTC()); ok {
			allDay := true
			patch.StartDate = &startDate
			patch.AllDay = &allDay
		}
	}

	draft, err := drafts.NewStore(gormDB).Save(userUUID, patch, sequencer.First(), nil)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to save draft.")
		return
	}

	c.JSON(http.StatusCreated, draftNavigation(draft))
}

// nextOccurrence resolves a recurring "MM-DD" to its next calendar date at
// midnight UTC, this year or the next.
func nextOccurrence(recurring string, now time.Time) (time.Time, bool) {
	var month, day int
	if _, err := fmt.Sscanf(recurring, "%d-%d", &month, &day); err != nil {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	occurrence := time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if occurrence.Before(now) {
		occurrence = occurrence.AddDate(1, 0, 0)
	}
	return occurrence, true
}
