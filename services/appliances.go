package services

import (
	"fmt"
	"strings"

	"github.com/Jamuna1221/WattLab/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewApplianceRequest is the typed payload for registering an appliance
type NewApplianceRequest struct {
	Name       string               `json:"name" binding:"required"`
	Type       models.ApplianceType `json:"type" binding:"required"`
	RatedPower float64              `json:"ratedPower" binding:"required"`
	Location   string               `json:"location"`
}

// ApplianceService owns the per-user appliance registry
type ApplianceService struct {
	db *gorm.DB
}

// NewApplianceService creates an ApplianceService
func NewApplianceService(db *gorm.DB) *ApplianceService {
	return &ApplianceService{db: db}
}

// List returns the user's appliances, id-ascending
func (s *ApplianceService) List(userID uint) ([]models.Appliance, error) {
	var appliances []models.Appliance
	err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&appliances).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	return appliances, nil
}

// Add validates the request and registers a new appliance for the user.
// The appliance starts inactive until its first reading arrives.
func (s *ApplianceService) Add(userID uint, req NewApplianceRequest) (*models.Appliance, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewValidationError("name", "must not be empty")
	}
	if !models.ValidApplianceType(req.Type) {
		return nil, NewValidationError("type", fmt.Sprintf("unknown appliance type %q", req.Type))
	}
	if req.RatedPower <= 0 {
		return nil, NewValidationError("ratedPower", "must be greater than zero")
	}

	appliance := models.Appliance{
		ID:         "app_" + uuid.NewString(),
		UserID:     userID,
		Name:       name,
		Type:       req.Type,
		RatedPower: req.RatedPower,
		IsActive:   false,
	}
	if location := strings.TrimSpace(req.Location); location != "" {
		appliance.Location = &location
	}

	if err := s.db.Create(&appliance).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	return &appliance, nil
}

// Remove deletes an appliance and its readings. Non-admin callers may only
// remove their own appliances.
func (s *ApplianceService) Remove(applianceID string, callerID uint, callerRole models.UserRole) error {
	var appliance models.Appliance
	if err := s.db.First(&appliance, "id = ?", applianceID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	if callerRole != models.RoleAdmin && appliance.UserID != callerID {
		return ErrForbidden
	}

	if err := s.db.Where("appliance_id = ?", applianceID).Delete(&models.EnergyReading{}).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	if err := s.db.Delete(&appliance).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	return nil
}
