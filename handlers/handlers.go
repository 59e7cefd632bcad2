// Package handlers wires the HTTP surface to the core services
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Jamuna1221/WattLab/models"
	"github.com/Jamuna1221/WattLab/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	db           *gorm.DB
	authSvc      *services.AuthService
	applianceSvc *services.ApplianceService
	energySvc    *services.EnergyService
	alertSvc     *services.AlertService
	settingsSvc  *services.SettingsService
	estimator    *services.BillEstimator
	recommender  *services.RecommendationEngine
)

// Init builds the service layer on top of db. Must be called before any
// route is served.
func Init(gdb *gorm.DB) {
	db = gdb
	settingsSvc = services.NewSettingsService(db)
	authSvc = services.NewAuthService(db, services.NewLocalIdentity(db))
	applianceSvc = services.NewApplianceService(db)
	energySvc = services.NewEnergyService(db)
	alertSvc = services.NewAlertService(db, settingsSvc)
	recommender = services.NewRecommendationEngine(db)
	estimator = services.NewBillEstimator(energySvc, settingsSvc, recommender)
}

// respondError maps service errors to HTTP statuses. Store failures are
// logged and surfaced without internal detail.
func respondError(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, services.ErrProfileNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User profile not found"})
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
	case errors.Is(err, services.ErrRegistrationFailed):
		log.Printf("⚠️ Registration failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed"})
	case errors.Is(err, services.ErrServiceUnavailable):
		log.Printf("⚠️ Service unavailable: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
	default:
		log.Printf("⚠️ Unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// currentUserID returns the authenticated user's id from the Gin context
func currentUserID(c *gin.Context) uint {
	return c.GetUint("userID")
}

// currentRole returns the authenticated user's role from the Gin context
func currentRole(c *gin.Context) models.UserRole {
	return models.UserRole(c.GetString("role"))
}
