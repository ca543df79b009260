package service

import (
	"errors"
	"testing"

	"github.com/smallwins/internal/nutrition"
)

func TestSettingServiceDefaults(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewSettingService(gdb)

	settings, err := svc.GetSettings(1)
	if err != nil {
		t.Fatalf("GetSettings returned error: %v", err)
	}
	if settings.CalorieTarget != 1800 || settings.ProteinTarget != 90 {
		t.Fatalf("unexpected default targets: %+v", settings)
	}
	if settings.FamilyMode || settings.PortionMultiplier != 1 {
		t.Fatalf("unexpected default family settings: %+v", settings)
	}
	if settings.Mission != nutrition.DefaultMission {
		t.Fatalf("unexpected default mission: %q", settings.Mission)
	}
}

func TestSettingServiceUpdate(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewSettingService(gdb)

	saved, err := svc.UpdateSettings(1, SettingsInput{
		CalorieTarget:     2000,
		ProteinTarget:     120,
		FamilyMode:        true,
		PortionMultiplier: 1.5,
		Mission:           "  Drink **8 cups** daily ",
	})
	if err != nil {
		t.Fatalf("UpdateSettings returned error: %v", err)
	}
	if saved.Mission != "Drink **8 cups** daily" {
		t.Fatalf("expected trimmed mission, got %q", saved.Mission)
	}

	// 再次保存走 upsert 分支
	if _, err := svc.UpdateSettings(1, SettingsInput{CalorieTarget: 2100, ProteinTarget: 120, FamilyMode: true, PortionMultiplier: 2}); err != nil {
		t.Fatalf("second UpdateSettings returned error: %v", err)
	}

	loaded, err := svc.GetSettings(1)
	if err != nil {
		t.Fatalf("GetSettings returned error: %v", err)
	}
	if loaded.CalorieTarget != 2100 || loaded.PortionMultiplier != 2 || !loaded.FamilyMode {
		t.Fatalf("unexpected loaded settings: %+v", loaded)
	}
	if loaded.Mission != nutrition.DefaultMission {
		t.Fatalf("expected mission to fall back to default, got %q", loaded.Mission)
	}

	other, err := svc.GetSettings(2)
	if err != nil {
		t.Fatalf("GetSettings returned error: %v", err)
	}
	if other.CalorieTarget != 1800 {
		t.Fatalf("settings leaked across users: %+v", other)
	}
}

func TestSettingServiceValidation(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewSettingService(gdb)

	if _, err := svc.UpdateSettings(1, SettingsInput{CalorieTarget: 0, ProteinTarget: 90}); !errors.Is(err, nutrition.ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
	if _, err := svc.UpdateSettings(1, SettingsInput{CalorieTarget: 1800, ProteinTarget: 90, PortionMultiplier: 4}); !errors.Is(err, nutrition.ErrInvalidMultiplier) {
		t.Fatalf("expected ErrInvalidMultiplier, got %v", err)
	}
}
