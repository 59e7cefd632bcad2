package handlers

import (
	"net/http"

	"github.com/Jamuna1221/WattLab/models"
	"github.com/gin-gonic/gin"
)

// GetAlerts handles GET /api/alerts
func GetAlerts(c *gin.Context) {
	severity := models.AlertSeverity(c.Query("severity"))

	alerts, err := alertSvc.List(currentUserID(c), severity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// PostAlert handles POST /api/alerts - used by rule evaluation pipelines to
// record an advisory message for the caller
func PostAlert(c *gin.Context) {
	var req struct {
		ApplianceID *string              `json:"applianceId"`
		Message     string               `json:"message" binding:"required"`
		Severity    models.AlertSeverity `json:"severity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID := currentUserID(c)
	alert, err := alertSvc.Create(userID, req.ApplianceID, req.Message, req.Severity)
	if err != nil {
		respondError(c, err)
		return
	}

	if feedHub != nil {
		feedHub.PublishAlert(userID, alert)
	}

	c.JSON(http.StatusCreated, alert)
}
