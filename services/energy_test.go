package services_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Jamuna1221/WattLab/models"
	"github.com/Jamuna1221/WattLab/services"
)

// seedAppliance creates an appliance and records one reading per consumption
func seedAppliance(t *testing.T, energy *services.EnergyService, registry *services.ApplianceService, userID uint, name string, consumptions ...float64) *models.Appliance {
	t.Helper()

	appliance, err := registry.Add(userID, services.NewApplianceRequest{
		Name: name, Type: models.ApplianceOther, RatedPower: 1000,
	})
	if err != nil {
		t.Fatalf("add %s failed: %v", name, err)
	}
	for _, c := range consumptions {
		if _, err := energy.RecordReading(userID, appliance.ID, c, time.Now().Add(-time.Hour)); err != nil {
			t.Fatalf("record reading for %s failed: %v", name, err)
		}
	}
	return appliance
}

func TestAggregate_Breakdown(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "Owner", "owner@wattlab.com")
	registry := services.NewApplianceService(db)
	energy := services.NewEnergyService(db)

	seedAppliance(t, energy, registry, user.ID, "Air Conditioner", 45.5)
	seedAppliance(t, energy, registry, user.ID, "Refrigerator", 28.3)
	seedAppliance(t, energy, registry, user.ID, "Water Heater", 32.1)
	seedAppliance(t, energy, registry, user.ID, "Washing Machine", 23.6)

	agg, err := energy.Aggregate(user.ID, 30)
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}

	if math.Abs(agg.Total-129.5) > 1e-9 {
		t.Errorf("expected total 129.5, got %f", agg.Total)
	}
	if len(agg.PerAppliance) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(agg.PerAppliance))
	}

	// Sorted by descending consumption
	wantConsumption := []float64{45.5, 32.1, 28.3, 23.6}
	wantPercentage := []float64{35.14, 24.79, 21.85, 18.22}
	for i, row := range agg.PerAppliance {
		if math.Abs(row.Consumption-wantConsumption[i]) > 1e-9 {
			t.Errorf("row %d: expected consumption %f, got %f", i, wantConsumption[i], row.Consumption)
		}
		if math.Abs(row.Percentage-wantPercentage[i]) > 0.01 {
			t.Errorf("row %d: expected percentage %f, got %f", i, wantPercentage[i], row.Percentage)
		}
	}

	sum := 0.0
	for _, row := range agg.PerAppliance {
		sum += row.Percentage
	}
	if math.Abs(sum-100) > 0.1 {
		t.Errorf("percentages must sum to 100 within 0.1, got %f", sum)
	}
}

func TestAggregate_ZeroTotal(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "Owner", "owner@wattlab.com")
	registry := services.NewApplianceService(db)
	energy := services.NewEnergyService(db)

	seedAppliance(t, energy, registry, user.ID, "Idle Device", 0)
	seedAppliance(t, energy, registry, user.ID, "Other Idle Device", 0)

	agg, err := energy.Aggregate(user.ID, 30)
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if agg.Total != 0 {
		t.Errorf("expected zero total, got %f", agg.Total)
	}
	for _, row := range agg.PerAppliance {
		if row.Percentage != 0 {
			t.Errorf("expected 0 percentage with zero total, got %f", row.Percentage)
		}
	}
}

func TestAggregate_TieBreakByApplianceID(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "Owner", "owner@wattlab.com")
	registry := services.NewApplianceService(db)
	energy := services.NewEnergyService(db)

	seedAppliance(t, energy, registry, user.ID, "First", 10)
	seedAppliance(t, energy, registry, user.ID, "Second", 10)
	seedAppliance(t, energy, registry, user.ID, "Third", 10)

	agg, err := energy.Aggregate(user.ID, 30)
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}

	for i := 1; i < len(agg.PerAppliance); i++ {
		if agg.PerAppliance[i-1].ApplianceID >= agg.PerAppliance[i].ApplianceID {
			t.Errorf("equal consumptions must order by ascending appliance id, got %s before %s",
				agg.PerAppliance[i-1].ApplianceID, agg.PerAppliance[i].ApplianceID)
		}
	}
}

func TestAggregate_WindowExcludesOldReadings(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "Owner", "owner@wattlab.com")
	registry := services.NewApplianceService(db)
	energy := services.NewEnergyService(db)

	appliance := seedAppliance(t, energy, registry, user.ID, "Heater", 5.0)
	if _, err := energy.RecordReading(user.ID, appliance.ID, 99.0, time.Now().AddDate(0, 0, -45)); err != nil {
		t.Fatalf("record old reading failed: %v", err)
	}

	agg, err := energy.Aggregate(user.ID, 30)
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if math.Abs(agg.Total-5.0) > 1e-9 {
		t.Errorf("expected 45-day-old reading to be excluded, total %f", agg.Total)
	}
}

func TestRecordReading_ActivatesAppliance(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "Owner", "owner@wattlab.com")
	registry := services.NewApplianceService(db)
	energy := services.NewEnergyService(db)

	appliance, err := registry.Add(user.ID, services.NewApplianceRequest{
		Name: "Dishwasher", Type: models.ApplianceKitchen, RatedPower: 1100,
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if appliance.IsActive {
		t.Fatal("appliance must start inactive")
	}

	if _, err := energy.RecordReading(user.ID, appliance.ID, 1.2, time.Now()); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	var refreshed models.Appliance
	if err := db.First(&refreshed, "id = ?", appliance.ID).Error; err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if !refreshed.IsActive {
		t.Error("first reading must activate the appliance")
	}
}

func TestRecordReading_Errors(t *testing.T) {
	db := newTestDB(t)
	owner := newTestUser(t, db, "Owner", "owner@wattlab.com")
	other := newTestUser(t, db, "Other", "other@wattlab.com")
	registry := services.NewApplianceService(db)
	energy := services.NewEnergyService(db)

	appliance, err := registry.Add(owner.ID, services.NewApplianceRequest{
		Name: "TV", Type: models.ApplianceEntertainment, RatedPower: 200,
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if _, err := energy.RecordReading(owner.ID, appliance.ID, -1, time.Now()); !services.IsValidation(err) {
		t.Errorf("expected ValidationError for negative consumption, got %v", err)
	}
	if _, err := energy.RecordReading(owner.ID, "app_missing", 1, time.Now()); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown appliance, got %v", err)
	}
	if _, err := energy.RecordReading(other.ID, appliance.ID, 1, time.Now()); !errors.Is(err, services.ErrForbidden) {
		t.Errorf("expected ErrForbidden for foreign appliance, got %v", err)
	}
}
