package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/smallwins/internal/db"
	"github.com/smallwins/internal/nutrition"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestEntryServiceCreateAndListForDay(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewEntryService(gdb)

	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	yesterday := day.AddDate(0, 0, -1).Add(20 * time.Hour)

	if _, err := svc.Create(1, nutrition.Entry{Name: "Late snack", Calories: 200, Meal: nutrition.Snacks, CreatedAt: yesterday}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	first, err := svc.Create(1, nutrition.Entry{Name: "Oatmeal", Calories: 160, Protein: 6, Meal: nutrition.Breakfast, CreatedAt: day.Add(8 * time.Hour)})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected entry to have ID")
	}
	if _, err := svc.Create(1, nutrition.Entry{Name: "Wrap", Calories: 390, Protein: 28, Meal: nutrition.Lunch, CreatedAt: day.Add(12 * time.Hour)}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Create(2, nutrition.Entry{Name: "Other user", Calories: 500, Meal: nutrition.Lunch, CreatedAt: day.Add(12 * time.Hour)}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	entries, err := svc.ListForDay(1, day.Add(15*time.Hour))
	if err != nil {
		t.Fatalf("ListForDay returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "Wrap" || entries[1].Name != "Oatmeal" {
		t.Fatalf("expected newest first, got %s then %s", entries[0].Name, entries[1].Name)
	}
	if entries[1].Meal != nutrition.Breakfast {
		t.Fatalf("unexpected meal: %s", entries[1].Meal)
	}
}

func TestEntryServiceRejectsMalformed(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewEntryService(gdb)

	if _, err := svc.Create(1, nutrition.Entry{Name: "Bad", Calories: -1}); !errors.Is(err, nutrition.ErrMalformedEntry) {
		t.Fatalf("expected ErrMalformedEntry, got %v", err)
	}
}

func TestEntryServiceDelete(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewEntryService(gdb)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)
	svc.now = fixedClock(now)

	entry, err := svc.Create(1, nutrition.Entry{Name: "Toast", Calories: 120, Meal: nutrition.Breakfast})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := svc.Delete(2, entry.ID); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound for other user, got %v", err)
	}
	if err := svc.Delete(1, entry.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(1, entry.ID); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound on second delete, got %v", err)
	}

	entries, err := svc.ListForDay(1, now)
	if err != nil {
		t.Fatalf("ListForDay returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}
