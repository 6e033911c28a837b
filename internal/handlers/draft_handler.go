package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rheannec/planora/internal/composer"
	"github.com/rheannec/planora/internal/drafts"
	"github.com/rheannec/planora/internal/helpers"
	"github.com/rheannec/planora/internal/sequencer"
)

type SaveDraftRequest struct {
	DraftID  *uuid.UUID          `json:"draft_id"`
	LastStep sequencer.Step      `json:"last_step" binding:"required"`
	Patch    composer.EventPatch `json:"patch"`
}

func SaveDraft(c *gin.Context) {
	var req SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if !sequencer.IsValid(req.LastStep) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Unknown step.")
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

	store := drafts.NewStore(gormDB)

	base := composer.EventPatch{}
	if req.DraftID != nil {
		if existing, found := store.Get(userUUID, *req.DraftID); found {
			base = existing.Payload
		}
	}
	merged := composer.Merge(base, req.Patch)

	draft, err := store.Save(userUUID, merged, req.LastStep, req.DraftID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to save draft.")
		return
	}

	c.JSON(http.StatusOK, draftNavigation(draft))
}

func ListDrafts(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"drafts": drafts.NewStore(gormDB).List(userUUID),
	})
}

func GetDraft(c *gin.Context) {
	draftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid draft ID.")
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

	draft, found := drafts.NewStore(gormDB).Get(userUUID, draftID)
	if !found {
		helpers.RespondWithError(c, http.StatusNotFound, "Draft not found.")
		return
	}

	c.JSON(http.StatusOK, draftNavigation(draft))
}

func DeleteDraft(c *gin.Context) {
	draftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid draft ID.")
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

	if !drafts.NewStore(gormDB).Delete(userUUID, draftID) {
		helpers.RespondWithError(c, http.StatusNotFound, "Draft not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Draft deleted successfully.",
	})
}

func FinalizeDraft(c *gin.Context) {
	draftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid draft ID.")
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

	store := drafts.NewStore(gormDB)

	draft, found := store.Get(userUUID, draftID)
	if !found {
		helpers.RespondWithError(c, http.StatusNotFound, "Draft not found.")
		return
	}

	event, err := composer.Finalize(draft.Payload)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	event.UserID = userUUID
	ensureHost(&event, userUUID)

	if err := gormDB.Create(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	// The event is already persisted; a draft that survives its own
	// finalization is an orphan to clean up later, not a failure.
	if !store.Delete(userUUID, draftID) {
		log.Printf("drafts: orphaned draft %s for user %s after finalize", draftID, userUUID)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Event created successfully.",
		"event_id": event.ID,
		"event":    event,
	})
}

func draftNavigation(draft drafts.Draft) gin.H {
	eventType := draft.Payload.EffectiveType()

	response := gin.H{
		"draft_id":  draft.DraftID,
		"last_step": draft.LastStep,
		"draft":     draft,
	}
	if next, ok := sequencer.Next(eventType, draft.LastStep); ok {
		response["next_step"] = next
	}
	if back, ok := sequencer.Back(eventType, draft.LastStep); ok {
		response["back_step"] = back
	}
	return response
}
