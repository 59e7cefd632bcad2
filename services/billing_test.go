package services_test

import (
	"math"
	"testing"
	"time"

	"github.com/Jamuna1221/WattLab/models"
	"github.com/Jamuna1221/WattLab/services"
)

func TestEstimate_DefaultRate(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "Owner", "owner@wattlab.com")
	registry := services.NewApplianceService(db)
	energy := services.NewEnergyService(db)
	settings := services.NewSettingsService(db)
	estimator := services.NewBillEstimator(energy, settings, nil)

	seedAppliance(t, energy, registry, user.ID, "Heater", 60.0)

	prediction, err := estimator.Estimate(user.ID, 30)
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}

	// 60 kWh over 30 days projects to 60 kWh per month
	if math.Abs(prediction.PredictedConsumption-60.0) > 1e-9 {
		t.Errorf("expected predicted consumption 60, got %f", prediction.PredictedConsumption)
	}
	if prediction.RatePerKwh != services.DefaultRatePerKwh {
		t.Errorf("expected default rate %f, got %f", services.DefaultRatePerKwh, prediction.RatePerKwh)
	}
	want := 60.0 * services.DefaultRatePerKwh
	if math.Abs(prediction.PredictedCost-want) > 0.01 {
		t.Errorf("expected predicted cost %f, got %f", want, prediction.PredictedCost)
	}
	if prediction.SavingsPotential != 0 {
		t.Errorf("expected zero savings without an advisor, got %f", prediction.SavingsPotential)
	}
}

func TestEstimate_ConfiguredRate(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "Owner", "owner@wattlab.com")
	registry := services.NewApplianceService(db)
	energy := services.NewEnergyService(db)
	settings := services.NewSettingsService(db)
	estimator := services.NewBillEstimator(energy, settings, nil)

	if err := settings.SetRatePerKwh(0.25); err != nil {
		t.Fatalf("set rate failed: %v", err)
	}
	seedAppliance(t, energy, registry, user.ID, "Heater", 100.0)

	prediction, err := estimator.Estimate(user.ID, 30)
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}
	if math.Abs(prediction.PredictedCost-25.0) > 0.01 {
		t.Errorf("expected cost 25.0 at rate 0.25, got %f", prediction.PredictedCost)
	}
}

func TestEstimate_Idempotent(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "Owner", "owner@wattlab.com")
	registry := services.NewApplianceService(db)
	energy := services.NewEnergyService(db)
	settings := services.NewSettingsService(db)
	estimator := services.NewBillEstimator(energy, settings, services.NewRecommendationEngine(db))

	seedAppliance(t, energy, registry, user.ID, "AC", 42.5)

	first, err := estimator.Estimate(user.ID, 30)
	if err != nil {
		t.Fatalf("first estimate failed: %v", err)
	}
	second, err := estimator.Estimate(user.ID, 30)
	if err != nil {
		t.Fatalf("second estimate failed: %v", err)
	}

	if *first != *second {
		t.Errorf("estimate must be idempotent: %+v vs %+v", first, second)
	}
}

func TestEstimate_ScalesShortWindowToMonth(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "Owner", "owner@wattlab.com")
	registry := services.NewApplianceService(db)
	energy := services.NewEnergyService(db)
	settings := services.NewSettingsService(db)
	estimator := services.NewBillEstimator(energy, settings, nil)

	appliance := seedAppliance(t, energy, registry, user.ID, "Heater")
	if _, err := energy.RecordReading(user.ID, appliance.ID, 7.0, time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	prediction, err := estimator.Estimate(user.ID, 7)
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}

	// 7 kWh over 7 days projects to 30 kWh per month
	if math.Abs(prediction.PredictedConsumption-30.0) > 1e-9 {
		t.Errorf("expected 30 kWh monthly projection, got %f", prediction.PredictedConsumption)
	}
}

func TestEstimate_SavingsFromRecommendations(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "Owner", "owner@wattlab.com")
	registry := services.NewApplianceService(db)
	energy := services.NewEnergyService(db)
	settings := services.NewSettingsService(db)
	engine := services.NewRecommendationEngine(db)
	estimator := services.NewBillEstimator(energy, settings, engine)

	appliance, err := registry.Add(user.ID, services.NewApplianceRequest{
		Name: "Air Conditioner", Type: models.ApplianceHVAC, RatedPower: 1500,
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := energy.RecordReading(user.ID, appliance.ID, 100.0, time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	prediction, err := estimator.Estimate(user.ID, 30)
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}

	// HVAC tip carries a 15% potential saving on the predicted cost
	want := prediction.PredictedCost * 0.15
	if math.Abs(prediction.SavingsPotential-want) > 0.01 {
		t.Errorf("expected savings %f, got %f", want, prediction.SavingsPotential)
	}
}

func TestEstimate_NoReadings(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "Owner", "owner@wattlab.com")
	energy := services.NewEnergyService(db)
	settings := services.NewSettingsService(db)
	estimator := services.NewBillEstimator(energy, settings, nil)

	prediction, err := estimator.Estimate(user.ID, 30)
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}
	if prediction.PredictedConsumption != 0 || prediction.PredictedCost != 0 {
		t.Errorf("expected zero prediction without readings, got %+v", prediction)
	}
}
