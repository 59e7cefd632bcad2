package services

// BillPrediction is the estimated cost for the upcoming billing month
type BillPrediction struct {
	PredictedConsumption float64 `json:"predictedConsumption"` // kWh per 30-day month
	PredictedCost        float64 `json:"predictedCost"`
	RatePerKwh           float64 `json:"ratePerKwh"`
	SavingsPotential     float64 `json:"savingsPotential"`
}

// SavingsAdvisor supplies an advisory savings figure for a predicted cost.
// The estimator works without one and reports zero savings.
type SavingsAdvisor interface {
	SavingsPotential(userID uint, predictedCost float64) float64
}

// BillEstimator projects a user's recent consumption onto a monthly bill
type BillEstimator struct {
	energy   *EnergyService
	settings *SettingsService
	advisor  SavingsAdvisor
}

// NewBillEstimator creates a BillEstimator; advisor may be nil
func NewBillEstimator(energy *EnergyService, settings *SettingsService, advisor SavingsAdvisor) *BillEstimator {
	return &BillEstimator{energy: energy, settings: settings, advisor: advisor}
}

// Estimate aggregates the user's consumption over the window, scales it to a
// 30-day month and prices it at the configured rate. Calling it twice with
// unchanged inputs yields identical output.
func (e *BillEstimator) Estimate(userID uint, windowDays int) (*BillPrediction, error) {
	if windowDays <= 0 {
		windowDays = 30
	}

	agg, err := e.energy.Aggregate(userID, windowDays)
	if err != nil {
		return nil, err
	}

	rate := e.settings.RatePerKwh()
	monthly := round2(agg.Total / float64(windowDays) * 30)

	prediction := &BillPrediction{
		PredictedConsumption: monthly,
		PredictedCost:        round2(monthly * rate),
		RatePerKwh:           rate,
	}
	if e.advisor != nil {
		prediction.SavingsPotential = round2(e.advisor.SavingsPotential(userID, prediction.PredictedCost))
	}

	return prediction, nil
}
