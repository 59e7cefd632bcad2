package models

import (
	"time"
)

// ApplianceType enum
type ApplianceType string

const (
	ApplianceHVAC          ApplianceType = "HVAC"
	ApplianceKitchen       ApplianceType = "KITCHEN"
	ApplianceLaundry       ApplianceType = "LAUNDRY"
	ApplianceLighting      ApplianceType = "LIGHTING"
	ApplianceEntertainment ApplianceType = "ENTERTAINMENT"
	ApplianceWaterHeating  ApplianceType = "WATER_HEATING"
	ApplianceOther         ApplianceType = "OTHER"
)

// ApplianceTypes lists every valid appliance category
var ApplianceTypes = []ApplianceType{
	ApplianceHVAC,
	ApplianceKitchen,
	ApplianceLaundry,
	ApplianceLighting,
	ApplianceEntertainment,
	ApplianceWaterHeating,
	ApplianceOther,
}

// ValidApplianceType reports whether t is a known category
func ValidApplianceType(t ApplianceType) bool {
	for _, known := range ApplianceTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Appliance model - a metered device owned by exactly one user
type Appliance struct {
	ID         string        `gorm:"primaryKey;column:id" json:"id"`
	UserID     uint          `gorm:"column:user_id;index" json:"userId"`
	User       *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Name       string        `gorm:"column:name;not null" json:"name"`
	Type       ApplianceType `gorm:"column:type;index" json:"type"`
	RatedPower float64       `gorm:"column:rated_power" json:"ratedPower"` // watts
	Location   *string       `gorm:"column:location" json:"location,omitempty"`

	// Inactive until the first reading arrives, so dashboards never show
	// "active" devices with no data behind them
	IsActive bool `gorm:"column:is_active;default:false" json:"isActive"`

	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Readings []EnergyReading `gorm:"foreignKey:ApplianceID" json:"readings,omitempty"`
}

func (Appliance) TableName() string {
	return "appliances"
}

// EnergyReading model - one consumption sample for an appliance
type EnergyReading struct {
	ID          int64      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ApplianceID string     `gorm:"column:appliance_id;index" json:"applianceId"`
	Appliance   *Appliance `gorm:"foreignKey:ApplianceID" json:"appliance,omitempty"`
	Consumption float64    `gorm:"column:consumption" json:"consumption"` // kWh, never negative
	Timestamp   time.Time  `gorm:"column:timestamp;default:CURRENT_TIMESTAMP;index" json:"timestamp"`
}

func (EnergyReading) TableName() string {
	return "energy_readings"
}

// AlertSeverity enum
type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "INFO"
	SeverityWarning  AlertSeverity = "WARNING"
	SeverityCritical AlertSeverity = "CRITICAL"
)

// ValidAlertSeverity reports whether s is a known severity
func ValidAlertSeverity(s AlertSeverity) bool {
	return s == SeverityInfo || s == SeverityWarning || s == SeverityCritical
}

// Alert model - advisory message for a user, immutable once created
type Alert struct {
	ID          int64         `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID      uint          `gorm:"column:user_id;index" json:"userId"`
	ApplianceID *string       `gorm:"column:appliance_id;index" json:"applianceId,omitempty"`
	Appliance   *Appliance    `gorm:"foreignKey:ApplianceID" json:"appliance,omitempty"`
	Message     string        `gorm:"column:message;not null" json:"message"`
	Severity    AlertSeverity `gorm:"column:severity;index" json:"severity"`
	CreatedAt   time.Time     `gorm:"column:created_at;default:CURRENT_TIMESTAMP;index" json:"createdAt"`
}

func (Alert) TableName() string {
	return "alerts"
}

// SystemSetting model - admin-tunable key/value pairs (energy rate, retention)
type SystemSetting struct {
	Key       string    `gorm:"primaryKey;column:key" json:"key"`
	Value     string    `gorm:"column:value;not null" json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (SystemSetting) TableName() string {
	return "system_settings"
}
