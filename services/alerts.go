package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/Jamuna1221/WattLab/models"
	"gorm.io/gorm"
)

// AlertService lists and records advisory alerts
type AlertService struct {
	db       *gorm.DB
	settings *SettingsService
}

// NewAlertService creates an AlertService
func NewAlertService(db *gorm.DB, settings *SettingsService) *AlertService {
	return &AlertService{db: db, settings: settings}
}

// List returns the user's alerts newest-first, excluding anything older than
// the configured retention window. Severity filters when non-empty.
func (s *AlertService) List(userID uint, severity models.AlertSeverity) ([]models.Alert, error) {
	cutoff := time.Now().AddDate(0, 0, -s.settings.AlertRetentionDays())

	query := s.db.Where("user_id = ? AND created_at >= ?", userID, cutoff)
	if severity != "" {
		if !models.ValidAlertSeverity(severity) {
			return nil, NewValidationError("severity", fmt.Sprintf("unknown severity %q", severity))
		}
		query = query.Where("severity = ?", severity)
	}

	var alerts []models.Alert
	if err := query.Order("created_at DESC").Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	return alerts, nil
}

// Create records a new alert. Alerts are immutable once stored.
func (s *AlertService) Create(userID uint, applianceID *string, message string, severity models.AlertSeverity) (*models.Alert, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, NewValidationError("message", "must not be empty")
	}
	if severity == "" {
		severity = models.SeverityInfo
	}
	if !models.ValidAlertSeverity(severity) {
		return nil, NewValidationError("severity", fmt.Sprintf("unknown severity %q", severity))
	}

	alert := models.Alert{
		UserID:      userID,
		ApplianceID: applianceID,
		Message:     message,
		Severity:    severity,
	}
	if err := s.db.Create(&alert).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	return &alert, nil
}

// PurgeExpired deletes alerts older than the retention window and returns
// how many rows went away. Used by the cleanup binary.
func (s *AlertService) PurgeExpired() (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -s.settings.AlertRetentionDays())
	result := s.db.Where("created_at < ?", cutoff).Delete(&models.Alert{})
	if result.Error != nil {
		return 0, fmt.Errorf("%w: %v", ErrServiceUnavailable, result.Error)
	}
	return result.RowsAffected, nil
}
