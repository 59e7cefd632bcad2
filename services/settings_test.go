package services_test

import (
	"testing"

	"github.com/Jamuna1221/WattLab/services"
)

func TestSettings_Defaults(t *testing.T) {
	db := newTestDB(t)
	settings := services.NewSettingsService(db)

	if got := settings.RatePerKwh(); got != services.DefaultRatePerKwh {
		t.Errorf("expected default rate %f, got %f", services.DefaultRatePerKwh, got)
	}
	if got := settings.AlertRetentionDays(); got != services.DefaultAlertRetentionDays {
		t.Errorf("expected default retention %d, got %d", services.DefaultAlertRetentionDays, got)
	}
}

func TestSettings_Roundtrip(t *testing.T) {
	db := newTestDB(t)
	settings := services.NewSettingsService(db)

	if err := settings.SetRatePerKwh(0.31); err != nil {
		t.Fatalf("set rate failed: %v", err)
	}
	if got := settings.RatePerKwh(); got != 0.31 {
		t.Errorf("expected rate 0.31, got %f", got)
	}

	// Overwriting keeps a single row per key
	if err := settings.SetRatePerKwh(0.18); err != nil {
		t.Fatalf("set rate failed: %v", err)
	}
	if got := settings.RatePerKwh(); got != 0.18 {
		t.Errorf("expected rate 0.18, got %f", got)
	}

	if err := settings.SetAlertRetentionDays(90); err != nil {
		t.Fatalf("set retention failed: %v", err)
	}
	if got := settings.AlertRetentionDays(); got != 90 {
		t.Errorf("expected retention 90, got %d", got)
	}
}

func TestSettings_Validation(t *testing.T) {
	db := newTestDB(t)
	settings := services.NewSettingsService(db)

	if err := settings.SetRatePerKwh(0); !services.IsValidation(err) {
		t.Errorf("expected ValidationError for zero rate, got %v", err)
	}
	if err := settings.SetRatePerKwh(-0.1); !services.IsValidation(err) {
		t.Errorf("expected ValidationError for negative rate, got %v", err)
	}
	if err := settings.SetAlertRetentionDays(0); !services.IsValidation(err) {
		t.Errorf("expected ValidationError for zero retention, got %v", err)
	}
}
