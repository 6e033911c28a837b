package handlers

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xendit/xendit-go/v6/invoice"
	"gorm.io/gorm"

	"github.com/rheannec/planora/internal/helpers"
	"github.com/rheannec/planora/internal/middleware"
	"github.com/rheannec/planora/internal/models"
)

type GiftRequest struct {
	Title         string `json:"title" binding:"required"`
	Price         int    `json:"price" binding:"required,min=1"`
	Pinned        bool   `json:"pinned"`
	Collaborative bool   `json:"collaborative"`
	TargetAmount  *int   `json:"target_amount"`
}

type ContributeRequest struct {
	Amount int `json:"amount" binding:"required,min=1"`
}

type PaymentNotificationRequest struct {
	ExternalID string `json:"external_id" binding:"required"`
	Status     string `json:"status" binding:"required"`
}

func AddGift(c *gin.Context) {
	eventID := c.Param("id")

	var req GiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if req.Collaborative && req.TargetAmount == nil {
		target := req.Price
		req.TargetAmount = &target
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

	if event.UserID != userUUID && !isParticipant(gormDB, event.ID, userUUID) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to add gifts to this event.")
		return
	}

	gift := models.Gift{
		EventID:       event.ID,
		Title:         req.Title,
		Price:         req.Price,
		Pinned:        req.Pinned,
		Collaborative: req.Collaborative,
		TargetAmount:  req.TargetAmount,
		Status:        models.GiftStatusAvailable,
	}

	if err := gormDB.Create(&gift).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create gift.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Gift added successfully.",
		"gift_id": gift.ID,
	})
}

func isParticipant(gormDB *gorm.DB, eventID, userID uuid.UUID) bool {
	var count int64
	gormDB.Model(&models.Participant{}).Where("event_id = ? AND user_id = ?", eventID, userID).Count(&count)
	return count > 0
}

func ReserveGift(c *gin.Context) {
	giftID := c.Param("id")

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

	var gift models.Gift
	if err := gormDB.Where("id = ?", giftID).First(&gift).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Gift not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving gift.")
		return
	}

	if gift.Status != models.GiftStatusAvailable {
		helpers.RespondWithError(c, http.StatusConflict, "Gift is not available.")
		return
	}

	gift.Status = models.GiftStatusReserved
	gift.ReservedByID = &userUUID

	if err := gormDB.Save(&gift).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to reserve gift.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Gift reserved successfully.",
		"gift":    gift,
	})
}

func ContributeGift(c *gin.Context) {
	giftID := c.Param("id")

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
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

	var gift models.Gift
	if err := gormDB.Where("id = ?", giftID).First(&gift).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Gift not found.")
		return
	}

	if !gift.Collaborative {
		helpers.RespondWithError(c, http.StatusBadRequest, "Gift does not accept contributions.")
		return
	}
	if gift.Status == models.GiftStatusContributed || gift.Status == models.GiftStatusPurchased {
		helpers.RespondWithError(c, http.StatusConflict, "Gift is already fully funded.")
		return
	}

	var user models.User
	if err := gormDB.First(&user, userUUID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}

	xenditClient := middleware.GetXenditClient(c)
	if xenditClient == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Payment client not found.")
		return
	}

	externalID := helpers.EncryptExternalID(gift.ID, userUUID)

	createInvoiceRequest := *invoice.NewCreateInvoiceRequest(externalID, float64(req.Amount))
	createInvoiceRequest.SetDescription("Participation - " + gift.Title)
	createInvoiceRequest.SetPayerEmail(user.Email)

	inv, _, errSdk := xenditClient.InvoiceApi.CreateInvoice(c.Request.Context()).
		CreateInvoiceRequest(createInvoiceRequest).
		Execute()
	if errSdk != nil {
		helpers.RespondWithError(c, http.StatusBadGateway, "Failed to create payment link.")
		return
	}

	contribution := models.Contribution{
		GiftID:     gift.ID,
		UserID:     userUUID,
		Amount:     req.Amount,
		Status:     models.ContributionStatusPending,
		ExternalID: externalID,
		PaymentURL: inv.GetInvoiceUrl(),
	}

	if err := gormDB.Create(&contribution).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to record contribution.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":         "Contribution created. Complete the payment to confirm.",
		"contribution_id": contribution.ID,
		"payment_url":     contribution.PaymentURL,
	})
}

func PaymentNotification(c *gin.Context) {
	callbackToken := c.GetHeader("x-callback-token")
	if callbackToken == "" || callbackToken != os.Getenv("XENDIT_CALLBACK_TOKEN") {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid callback token.")
		return
	}

	var req PaymentNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid notification payload.")
		return
	}

	if req.Status != "PAID" && req.Status != "SETTLED" {
		c.JSON(http.StatusOK, gin.H{"message": "Notification ignored."})
		return
	}

	giftID, contributorID, err := helpers.DecryptExternalID(req.ExternalID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid external ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var contribution models.Contribution
	if err := gormDB.Where("external_id = ?", req.ExternalID).First(&contribution).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Contribution not found.")
		return
	}

	if contribution.GiftID != giftID || contribution.UserID != contributorID {
		helpers.RespondWithError(c, http.StatusBadRequest, "External ID does not match the contribution.")
		return
	}

	if contribution.Status == models.ContributionStatusPaid {
		c.JSON(http.StatusOK, gin.H{"message": "Contribution already settled."})
		return
	}

	var gift models.Gift
	if err := gormDB.Where("id = ?", contribution.GiftID).First(&gift).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Gift not found.")
		return
	}

	contribution.Status = models.ContributionStatusPaid
	gift.CurrentAmount += contribution.Amount
	if gift.TargetAmount != nil && gift.CurrentAmount >= *gift.TargetAmount {
		gift.Status = models.GiftStatusContributed
	}

	err = gormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&contribution).Error; err != nil {
			return err
		}
		return tx.Save(&gift).Error
	})
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to settle contribution.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contribution settled successfully.",
		"gift_id": gift.ID,
	})
}
