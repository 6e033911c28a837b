package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rheannec/planora/internal/helpers"
	"github.com/rheannec/planora/internal/models"
)

type AddParticipantRequest struct {
	UserID uuid.UUID              `json:"user_id" binding:"required"`
	Role   models.ParticipantRole `json:"role"`
}

type UpdateParticipantStatusRequest struct {
	Status models.ParticipantStatus `json:"status" binding:"required"`
}

func AddParticipant(c *gin.Context) {
	eventID := c.Param("id")

	var req AddParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	role := req.Role
	if role == "" {
		role = models.ParticipantRoleGuest
	}
	if role != models.ParticipantRoleHost && role != models.ParticipantRoleAdmin && role != models.ParticipantRoleGuest {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid role.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Where("id = ? AND user_id = ?", eventID, userID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusForbidden, "Event not found or you don't have permission to invite.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error verifying event ownership.")
		return
	}

	var invitee models.User
	if err := gormDB.Where("id = ?", req.UserID).First(&invitee).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}

	var existing models.Participant
	if result := gormDB.Where("event_id = ? AND user_id = ?", event.ID, req.UserID).First(&existing); result.Error == nil {
		helpers.RespondWithError(c, http.StatusConflict, "User is already a participant.")
		return
	}

	if role == models.ParticipantRoleHost && event.Type == models.EventTypeIndividual {
		var hostCount int64
		gormDB.Model(&models.Participant{}).Where("event_id = ? AND role = ?", event.ID, models.ParticipantRoleHost).Count(&hostCount)
		if hostCount > 0 {
			helpers.RespondWithError(c, http.StatusConflict, "Individual events can have only one host.")
			return
		}
	}

	participant := models.Participant{
		EventID: event.ID,
		UserID:  req.UserID,
		Role:    role,
		Status:  models.ParticipantStatusInvited,
	}

	if err := gormDB.Create(&participant).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to add participant.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Participant added successfully.",
		"participant_id": participant.ID,
	})
}

func UpdateParticipantStatus(c *gin.Context) {
	eventID := c.Param("id")

	participantUserID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid user ID.")
		return
	}

	var req UpdateParticipantStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	switch req.Status {
	case models.ParticipantStatusConfirmed, models.ParticipantStatusDeclined, models.ParticipantStatusPending:
	default:
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid status.")
		return
	}

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

	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	// A participant answers for themselves; the owner can answer for anyone.
	if participantUserID != userUUID && event.UserID != userUUID {
		helpers.RespondWithError(c, http.StatusForbidden, "You can only update your own invitation.")
		return
	}

	var participant models.Participant
	if err := gormDB.Where("event_id = ? AND user_id = ?", event.ID, participantUserID).First(&participant).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Participant not found.")
		return
	}

	now := time.Now().UTC()
	participant.Status = req.Status
	participant.RespondedAt = &now

	if err := gormDB.Save(&participant).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update participant.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Participant updated successfully.",
		"participant": participant,
	})
}
