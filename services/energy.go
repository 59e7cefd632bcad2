package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Jamuna1221/WattLab/models"
	"gorm.io/gorm"
)

// ApplianceConsumption is one row of an aggregation result
type ApplianceConsumption struct {
	ApplianceID string  `json:"applianceId"`
	Name        string  `json:"name"`
	Consumption float64 `json:"consumption"` // kWh over the window
	Percentage  float64 `json:"percentage"`  // share of the total, 2 decimals
}

// Aggregate is the per-user consumption breakdown for a reporting window
type Aggregate struct {
	PerAppliance []ApplianceConsumption `json:"perAppliance"`
	Total        float64                `json:"total"`
	WindowDays   int                    `json:"windowDays"`
}

// EnergyService aggregates readings and ingests new ones
type EnergyService struct {
	db *gorm.DB
}

// NewEnergyService creates an EnergyService
func NewEnergyService(db *gorm.DB) *EnergyService {
	return &EnergyService{db: db}
}

// Aggregate sums consumption per appliance for the user over the last
// windowDays days. Results are sorted by descending consumption with
// appliance id as the tie-break; percentages are zero when the total is zero.
func (s *EnergyService) Aggregate(userID uint, windowDays int) (*Aggregate, error) {
	if windowDays <= 0 {
		windowDays = 30
	}
	since := time.Now().AddDate(0, 0, -windowDays)

	var rows []struct {
		ApplianceID string
		Name        string
		Consumption float64
	}
	err := s.db.Model(&models.EnergyReading{}).
		Select("appliances.id as appliance_id, appliances.name as name, COALESCE(SUM(energy_readings.consumption), 0) as consumption").
		Joins("JOIN appliances ON appliances.id = energy_readings.appliance_id").
		Where("appliances.user_id = ? AND energy_readings.timestamp >= ?", userID, since).
		Group("appliances.id, appliances.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	agg := &Aggregate{
		PerAppliance: make([]ApplianceConsumption, 0, len(rows)),
		WindowDays:   windowDays,
	}
	for _, row := range rows {
		agg.Total += row.Consumption
		agg.PerAppliance = append(agg.PerAppliance, ApplianceConsumption{
			ApplianceID: row.ApplianceID,
			Name:        row.Name,
			Consumption: row.Consumption,
		})
	}

	for i := range agg.PerAppliance {
		if agg.Total > 0 {
			agg.PerAppliance[i].Percentage = round2(agg.PerAppliance[i].Consumption / agg.Total * 100)
		}
	}

	sort.Slice(agg.PerAppliance, func(i, j int) bool {
		a, b := agg.PerAppliance[i], agg.PerAppliance[j]
		if a.Consumption != b.Consumption {
			return a.Consumption > b.Consumption
		}
		return a.ApplianceID < b.ApplianceID
	})

	return agg, nil
}

// RecordReading stores a consumption sample for one of the user's appliances.
// The first reading flips the appliance active.
func (s *EnergyService) RecordReading(userID uint, applianceID string, consumption float64, at time.Time) (*models.EnergyReading, error) {
	if consumption < 0 {
		return nil, NewValidationError("consumption", "must not be negative")
	}

	var appliance models.Appliance
	if err := s.db.First(&appliance, "id = ?", applianceID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	if appliance.UserID != userID {
		return nil, ErrForbidden
	}

	if at.IsZero() {
		at = time.Now()
	}

	reading := models.EnergyReading{
		ApplianceID: applianceID,
		Consumption: consumption,
		Timestamp:   at,
	}
	if err := s.db.Create(&reading).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	if !appliance.IsActive {
		if err := s.db.Model(&appliance).Update("is_active", true).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
		}
	}

	return &reading, nil
}

// TotalConsumption sums all readings in the window across all users
func (s *EnergyService) TotalConsumption(windowDays int) (float64, error) {
	since := time.Now().AddDate(0, 0, -windowDays)
	var total float64
	err := s.db.Model(&models.EnergyReading{}).
		Select("COALESCE(SUM(consumption), 0)").
		Where("timestamp >= ?", since).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	return total, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
