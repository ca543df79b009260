package db

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func TestInitCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "test.db")

	if err := Init(Options{Driver: DriverSQLite, Path: path}); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := DB.DB(); err == nil {
			sqlDB.Close()
		}
		DB = nil
	})

	if !DB.Migrator().HasTable(&Entry{}) {
		t.Fatal("expected entries table to exist")
	}
	if !DB.Migrator().HasTable(&EarnedBadge{}) {
		t.Fatal("expected earned_badges table to exist")
	}
}

func TestInitRejectsUnknownDriver(t *testing.T) {
	if err := Init(Options{Driver: "oracle"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
	if err := Init(Options{Driver: DriverPostgres}); err == nil {
		t.Fatal("expected error for postgres without DSN")
	}
}

func TestEnsureUserIsIdempotent(t *testing.T) {
	gdb := openTestDB(t)

	first, created, err := EnsureUser(gdb, " Parent@Example.com ", "Sam")
	if err != nil {
		t.Fatalf("EnsureUser returned error: %v", err)
	}
	if !created {
		t.Fatal("expected first call to create user")
	}
	if first.Email != "parent@example.com" {
		t.Fatalf("expected normalized email, got %s", first.Email)
	}

	second, created, err := EnsureUser(gdb, "parent@example.com", "")
	if err != nil {
		t.Fatalf("EnsureUser returned error: %v", err)
	}
	if created {
		t.Fatal("expected second call to reuse user")
	}
	if second.ID != first.ID {
		t.Fatalf("expected same user id, got %d and %d", first.ID, second.ID)
	}

	if _, _, err := EnsureUser(gdb, "  ", "x"); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("expected ErrEmailRequired, got %v", err)
	}
}
