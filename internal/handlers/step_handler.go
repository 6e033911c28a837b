package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rheannec/planora/internal/helpers"
	"github.com/rheannec/planora/internal/models"
	"github.com/rheannec/planora/internal/sequencer"
)

func NextStep(c *gin.Context) {
	eventType, step, ok := stepQuery(c)
	if !ok {
		return
	}

	next, found := sequencer.Next(eventType, step)
	if !found {
		c.JSON(http.StatusOK, gin.H{
			"step":     nil,
			"terminal": sequencer.IsTerminal(step),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"step":     next,
		"terminal": sequencer.IsTerminal(next),
	})
}

func BackStep(c *gin.Context) {
	eventType, step, ok := stepQuery(c)
	if !ok {
		return
	}

	back, found := sequencer.Back(eventType, step)
	if !found {
		c.JSON(http.StatusOK, gin.H{"step": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"step": back})
}

func stepQuery(c *gin.Context) (models.EventType, sequencer.Step, bool) {
	eventType := models.EventType(c.DefaultQuery("type", string(models.EventTypeCollective)))
	switch eventType {
	case models.EventTypeCollective, models.EventTypeIndividual, models.EventTypeSpecial:
	default:
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event type.")
		return "", "", false
	}

	step := sequencer.Step(c.Query("step"))
	if !sequencer.IsValid(step) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Unknown step.")
		return "", "", false
	}

	return eventType, step, true
}
