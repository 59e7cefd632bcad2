package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Jamuna1221/WattLab/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserOverview is a user row enriched with usage figures for the admin table
type UserOverview struct {
	models.User
	ApplianceCount   int64   `json:"applianceCount"`
	TotalConsumption float64 `json:"totalConsumption"`
}

// GetUsers handles GET /api/admin/users
func GetUsers(c *gin.Context) {
	var users []models.User
	if err := db.Order("id ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	overviews := make([]UserOverview, len(users))
	for i, user := range users {
		overviews[i].User = user

		if err := db.Model(&models.Appliance{}).Where("user_id = ?", user.ID).Count(&overviews[i].ApplianceCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user stats"})
			return
		}
		if err := db.Model(&models.EnergyReading{}).
			Select("COALESCE(SUM(energy_readings.consumption), 0)").
			Joins("JOIN appliances ON appliances.id = energy_readings.appliance_id").
			Where("appliances.user_id = ?", user.ID).
			Scan(&overviews[i].TotalConsumption).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user stats"})
			return
		}
	}

	c.JSON(http.StatusOK, overviews)
}

// CreateUser handles POST /api/admin/users - admin-provisioned accounts may
// carry any role, unlike self-registration
func CreateUser(c *gin.Context) {
	var req struct {
		Name     string            `json:"name" binding:"required"`
		Email    string            `json:"email" binding:"required"`
		Password string            `json:"password" binding:"required"`
		Role     models.UserRole   `json:"role"`
		Status   models.UserStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleAdmin && role != models.RoleUser {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be admin or user"})
		return
	}
	status := req.Status
	if status == "" {
		status = models.StatusActive
	}

	user, err := authSvc.Register(req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := db.Model(user).Updates(map[string]interface{}{"role": role, "status": status}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set role"})
		return
	}
	user.Role = role
	user.Status = status

	c.JSON(http.StatusCreated, user)
}

// UpdateUserStatus handles PATCH /api/admin/users/:id/status
func UpdateUserStatus(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var req struct {
		Status models.UserStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Status != models.StatusActive && req.Status != models.StatusInactive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be active or inactive"})
		return
	}

	var user models.User
	if err := db.First(&user, uint(userID)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	if err := db.Model(&user).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}
	user.Status = req.Status

	c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /api/admin/users/:id - removes the user together
// with their credentials, appliances, readings and alerts
func DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var user models.User
	if err := db.First(&user, uint(userID)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var applianceIDs []string
		if err := tx.Model(&models.Appliance{}).Where("user_id = ?", user.ID).Pluck("id", &applianceIDs).Error; err != nil {
			return err
		}
		if len(applianceIDs) > 0 {
			if err := tx.Where("appliance_id IN ?", applianceIDs).Delete(&models.EnergyReading{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Appliance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Alert{}).Error; err != nil {
			return err
		}
		if err := tx.Where("subject_id = ?", user.SubjectID).Delete(&models.Credential{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		log.Printf("⚠️ Failed to delete user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// GetSystemStats handles GET /api/admin/stats
func GetSystemStats(c *gin.Context) {
	var stats struct {
		TotalUsers       int64   `json:"totalUsers"`
		ActiveUsers      int64   `json:"activeUsers"`
		TotalAppliances  int64   `json:"totalAppliances"`
		TotalConsumption float64 `json:"totalConsumption"`
		ActiveAlerts     int64   `json:"activeAlerts"`
	}

	if err := db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}
	if err := db.Model(&models.User{}).Where("status = ?", models.StatusActive).Count(&stats.ActiveUsers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}
	if err := db.Model(&models.Appliance{}).Count(&stats.TotalAppliances).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	total, err := energySvc.TotalConsumption(30)
	if err != nil {
		respondError(c, err)
		return
	}
	stats.TotalConsumption = total

	cutoff := time.Now().AddDate(0, 0, -settingsSvc.AlertRetentionDays())
	if err := db.Model(&models.Alert{}).Where("created_at >= ?", cutoff).Count(&stats.ActiveAlerts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetSettings handles GET /api/admin/settings
func GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ratePerKwh":         settingsSvc.RatePerKwh(),
		"alertRetentionDays": settingsSvc.AlertRetentionDays(),
	})
}

// UpdateSettings handles PUT /api/admin/settings
func UpdateSettings(c *gin.Context) {
	var req struct {
		RatePerKwh         *float64 `json:"ratePerKwh"`
		AlertRetentionDays *int     `json:"alertRetentionDays"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.RatePerKwh != nil {
		if err := settingsSvc.SetRatePerKwh(*req.RatePerKwh); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.AlertRetentionDays != nil {
		if err := settingsSvc.SetAlertRetentionDays(*req.AlertRetentionDays); err != nil {
			respondError(c, err)
			return
		}
	}

	GetSettings(c)
}
