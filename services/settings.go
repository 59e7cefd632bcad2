package services

import (
	"fmt"
	"strconv"

	"github.com/Jamuna1221/WattLab/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Setting keys and their defaults
const (
	SettingRatePerKwh         = "rate_per_kwh"
	SettingAlertRetentionDays = "alert_retention_days"
	DefaultRatePerKwh         = 0.12
	DefaultAlertRetentionDays = 30
)

// SettingsService reads and writes admin-tunable system settings
type SettingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a SettingsService
func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// RatePerKwh returns the configured energy rate, or the default when unset
func (s *SettingsService) RatePerKwh() float64 {
	return s.floatSetting(SettingRatePerKwh, DefaultRatePerKwh)
}

// AlertRetentionDays returns the alert retention window in days
func (s *SettingsService) AlertRetentionDays() int {
	return int(s.floatSetting(SettingAlertRetentionDays, DefaultAlertRetentionDays))
}

// SetRatePerKwh stores the energy rate
func (s *SettingsService) SetRatePerKwh(rate float64) error {
	if rate <= 0 {
		return NewValidationError("ratePerKwh", "must be greater than zero")
	}
	return s.put(SettingRatePerKwh, strconv.FormatFloat(rate, 'f', -1, 64))
}

// SetAlertRetentionDays stores the alert retention window
func (s *SettingsService) SetAlertRetentionDays(days int) error {
	if days <= 0 {
		return NewValidationError("alertRetentionDays", "must be greater than zero")
	}
	return s.put(SettingAlertRetentionDays, strconv.Itoa(days))
}

func (s *SettingsService) floatSetting(key string, fallback float64) float64 {
	var setting models.SystemSetting
	if err := s.db.First(&setting, "key = ?", key).Error; err != nil {
		// Missing or unreadable settings fall back to the default
		return fallback
	}
	value, err := strconv.ParseFloat(setting.Value, 64)
	if err != nil {
		return fallback
	}
	return value
}

func (s *SettingsService) put(key, value string) error {
	setting := models.SystemSetting{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	return nil
}
