package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetBillPrediction handles GET /api/ml/predict-bill
func GetBillPrediction(c *gin.Context) {
	windowDays := 30
	if days := c.Query("days"); days != "" {
		parsed, err := strconv.Atoi(days)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		windowDays = parsed
	}

	prediction, err := estimator.Estimate(currentUserID(c), windowDays)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prediction)
}

// GetRecommendations handles GET /api/ml/recommendations
func GetRecommendations(c *gin.Context) {
	recs, err := recommender.ForUser(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}
