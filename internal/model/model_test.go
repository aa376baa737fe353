package model

import (
	"errors"
	"testing"
	"time"
)

func TestBuildEvent(t *testing.T) {
	t.Run("keeps exactly the parseable slots in input order", func(t *testing.T) {
		event, err := BuildEvent("Team sync", "Europe/Madrid", []string{
			"2026-03-04T18:30",
			"not-a-date",
			"2026-03-05T09:00",
			"",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(event.Slots) != 2 {
			t.Fatalf("expected 2 slots, got %d", len(event.Slots))
		}
		first, err := time.Parse(time.RFC3339, event.Slots[0].StartUTC)
		if err != nil {
			t.Fatalf("slot StartUTC not RFC3339: %v", err)
		}
		second, _ := time.Parse(time.RFC3339, event.Slots[1].StartUTC)
		if !first.Before(second) {
			t.Fatalf("slot order does not follow input order")
		}
		if event.Timezone != "Europe/Madrid" {
			t.Fatalf("unexpected timezone %q", event.Timezone)
		}
	})

	t.Run("assigns unique slot ids even in the same instant", func(t *testing.T) {
		inputs := make([]string, 50)
		for i := range inputs {
			inputs[i] = "2026-03-04T18:30"
		}
		event, err := BuildEvent("Team sync", "", inputs)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		seen := make(map[string]bool, len(event.Slots))
		for _, slot := range event.Slots {
			if slot.ID == "" || seen[slot.ID] {
				t.Fatalf("duplicate or empty slot id %q", slot.ID)
			}
			seen[slot.ID] = true
		}
	})

	t.Run("trims the title and defaults the timezone", func(t *testing.T) {
		event, err := BuildEvent("  Team sync  ", "  ", []string{"2026-03-04T18:30"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if event.Title != "Team sync" || event.Timezone != "UTC" {
			t.Fatalf("unexpected event: %+v", event)
		}
	})

	t.Run("rejects blank titles", func(t *testing.T) {
		if _, err := BuildEvent("   ", "UTC", []string{"2026-03-04T18:30"}); !errors.Is(err, ErrEmptyTitle) {
			t.Fatalf("expected ErrEmptyTitle, got %v", err)
		}
	})

	t.Run("rejects events with no surviving slots", func(t *testing.T) {
		if _, err := BuildEvent("Team sync", "UTC", nil); !errors.Is(err, ErrNoValidSlots) {
			t.Fatalf("expected ErrNoValidSlots for nil, got %v", err)
		}
		if _, err := BuildEvent("Team sync", "UTC", []string{"", "junk"}); !errors.Is(err, ErrNoValidSlots) {
			t.Fatalf("expected ErrNoValidSlots, got %v", err)
		}
	})
}

func TestBuildResponse(t *testing.T) {
	t.Run("builds a trimmed response with an id", func(t *testing.T) {
		resp, err := BuildResponse("  Alex  ", []string{"slot-a", "slot-b"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resp.Name != "Alex" || resp.ID == "" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("rejects blank names and empty selections", func(t *testing.T) {
		if _, err := BuildResponse("   ", []string{"slot-a"}); !errors.Is(err, ErrEmptyName) {
			t.Fatalf("expected ErrEmptyName, got %v", err)
		}
		if _, err := BuildResponse("Alex", nil); !errors.Is(err, ErrNoSelection) {
			t.Fatalf("expected ErrNoSelection, got %v", err)
		}
	})

	t.Run("does not validate selections against any slot set", func(t *testing.T) {
		// Stale clients may reference slots from an old snapshot; those ids
		// are filtered at aggregation time, never rejected here.
		resp, err := BuildResponse("Alex", []string{"slot-from-old-snapshot"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(resp.SelectedSlotIDs) != 1 {
			t.Fatalf("selection was altered: %+v", resp.SelectedSlotIDs)
		}
	})
}
