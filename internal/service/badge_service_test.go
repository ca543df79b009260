package service

import (
	"testing"
	"time"

	"github.com/smallwins/internal/nutrition"
)

func TestBadgeServiceRecordIsIdempotent(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewBadgeService(gdb)
	day := time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)

	water := nutrition.Badge{Key: nutrition.BadgeWater, Label: "8 Cups of Water", Icon: "💧"}
	breakfast := nutrition.Badge{Key: nutrition.BadgeBreakfast, Label: "Logged Breakfast", Icon: "🥣"}

	if err := svc.Record(1, day, []nutrition.Badge{water}); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if err := svc.Record(1, day.Add(time.Hour), []nutrition.Badge{water, breakfast}); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if err := svc.Record(1, day, nil); err != nil {
		t.Fatalf("Record with no badges returned error: %v", err)
	}

	badges, err := svc.ListForDay(1, day)
	if err != nil {
		t.Fatalf("ListForDay returned error: %v", err)
	}
	if len(badges) != 2 {
		t.Fatalf("expected 2 badges, got %d", len(badges))
	}
	if badges[0].Key != nutrition.BadgeWater || badges[1].Key != nutrition.BadgeBreakfast {
		t.Fatalf("unexpected badge order: %+v", badges)
	}

	next, err := svc.ListForDay(1, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("ListForDay returned error: %v", err)
	}
	if len(next) != 0 {
		t.Fatalf("expected badges to be scoped per day, got %d", len(next))
	}
}
