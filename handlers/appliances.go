package handlers

import (
	"net/http"

	"github.com/Jamuna1221/WattLab/services"
	"github.com/gin-gonic/gin"
)

// GetAppliances handles GET /api/appliances
func GetAppliances(c *gin.Context) {
	appliances, err := applianceSvc.List(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appliances)
}

// PostAppliance handles POST /api/appliances
func PostAppliance(c *gin.Context) {
	var req services.NewApplianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	appliance, err := applianceSvc.Add(currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appliance)
}

// DeleteAppliance handles DELETE /api/appliances/:id
func DeleteAppliance(c *gin.Context) {
	err := applianceSvc.Remove(c.Param("id"), currentUserID(c), currentRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appliance deleted"})
}
