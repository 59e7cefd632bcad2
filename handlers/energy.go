package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// GetEnergy handles GET /api/energy - per-appliance consumption breakdown
func GetEnergy(c *gin.Context) {
	windowDays := 30
	if days := c.Query("days"); days != "" {
		parsed, err := strconv.Atoi(days)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		windowDays = parsed
	}

	agg, err := energySvc.Aggregate(currentUserID(c), windowDays)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, agg)
}

// PostReading handles POST /api/energy/readings
func PostReading(c *gin.Context) {
	var req struct {
		ApplianceID string  `json:"applianceId" binding:"required"`
		Consumption float64 `json:"consumption"`
		Timestamp   *string `json:"timestamp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	at := time.Time{}
	if req.Timestamp != nil {
		parsed, err := time.Parse(time.RFC3339, *req.Timestamp)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "timestamp must be RFC3339"})
			return
		}
		at = parsed
	}

	userID := currentUserID(c)
	reading, err := energySvc.RecordReading(userID, req.ApplianceID, req.Consumption, at)
	if err != nil {
		respondError(c, err)
		return
	}

	if feedHub != nil {
		feedHub.PublishReading(userID, reading)
	}

	c.JSON(http.StatusCreated, reading)
}
