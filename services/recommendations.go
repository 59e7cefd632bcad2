package services

import (
	"fmt"

	"github.com/Jamuna1221/WattLab/models"
	"gorm.io/gorm"
)

// Recommendation is an energy-saving tip for a category of appliance
type Recommendation struct {
	Category         models.ApplianceType `json:"category"`
	Recommendation   string               `json:"recommendation"`
	PotentialSavings float64              `json:"potentialSavings"` // fraction of cost, 0..1
}

// Rule-based tips per appliance category. The fractions are conservative
// figures lifted from the product's advisory content.
var recommendationRules = map[models.ApplianceType]Recommendation{
	models.ApplianceHVAC: {
		Category:         models.ApplianceHVAC,
		Recommendation:   "Set AC to 24°C for optimal efficiency",
		PotentialSavings: 0.15,
	},
	models.ApplianceLighting: {
		Category:         models.ApplianceLighting,
		Recommendation:   "Replace old bulbs with LED",
		PotentialSavings: 0.30,
	},
	models.ApplianceKitchen: {
		Category:         models.ApplianceKitchen,
		Recommendation:   "Run dishwasher only when full",
		PotentialSavings: 0.10,
	},
	models.ApplianceLaundry: {
		Category:         models.ApplianceLaundry,
		Recommendation:   "Wash with cold water and full loads",
		PotentialSavings: 0.12,
	},
	models.ApplianceWaterHeating: {
		Category:         models.ApplianceWaterHeating,
		Recommendation:   "Lower the water heater thermostat to 50°C",
		PotentialSavings: 0.10,
	},
	models.ApplianceEntertainment: {
		Category:         models.ApplianceEntertainment,
		Recommendation:   "Switch devices off at the wall instead of standby",
		PotentialSavings: 0.05,
	},
}

// RecommendationEngine produces per-user tips based on owned appliance types
type RecommendationEngine struct {
	db *gorm.DB
}

// NewRecommendationEngine creates a RecommendationEngine
func NewRecommendationEngine(db *gorm.DB) *RecommendationEngine {
	return &RecommendationEngine{db: db}
}

// ForUser returns one tip per appliance category the user owns
func (r *RecommendationEngine) ForUser(userID uint) ([]Recommendation, error) {
	var types []models.ApplianceType
	err := r.db.Model(&models.Appliance{}).
		Where("user_id = ?", userID).
		Distinct("type").
		Order("type ASC").
		Pluck("type", &types).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	recs := make([]Recommendation, 0, len(types))
	for _, t := range types {
		if rule, ok := recommendationRules[t]; ok {
			recs = append(recs, rule)
		}
	}
	return recs, nil
}

// SavingsPotential implements SavingsAdvisor: the best single-category saving
// applied to the predicted cost. Returns 0 when nothing applies.
func (r *RecommendationEngine) SavingsPotential(userID uint, predictedCost float64) float64 {
	recs, err := r.ForUser(userID)
	if err != nil {
		return 0
	}
	best := 0.0
	for _, rec := range recs {
		if rec.PotentialSavings > best {
			best = rec.PotentialSavings
		}
	}
	return predictedCost * best
}
