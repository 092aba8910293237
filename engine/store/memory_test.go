package store_test

import (
	"context"
	"testing"

	"github.com/fieldops/attest-engine/engine"
	"github.com/fieldops/attest-engine/engine/store"
)

func TestMemory_PutGetEvent(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	odo := int64(1000)
	ev := engine.CheckEvent{
		ID:            "ev-1",
		Identity:      engine.Identity{Name: "Taro"},
		Type:          engine.Departure,
		Timestamp:     "2024-05-01T07:00",
		OdometerStart: &odo,
	}
	if err := mem.PutEvent(ctx, ev); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := mem.GetEvent(ctx, "ev-1")
	if err != nil || got == nil {
		t.Fatalf("get: %v", err)
	}
	if got.Identity.Name != "Taro" || *got.OdometerStart != 1000 {
		t.Errorf("round trip mismatch: %+v", got)
	}

	if missing, _ := mem.GetEvent(ctx, "nope"); missing != nil {
		t.Error("absent event should return nil")
	}
}

func TestMemory_PutOverwritesByID(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	ev := engine.CheckEvent{ID: "ev-1", Type: engine.Departure, Timestamp: "2024-05-01T07:00"}
	if err := mem.PutEvent(ctx, ev); err != nil {
		t.Fatalf("put: %v", err)
	}

	d := int64(120)
	ev.CachedDistance = &d
	if err := mem.PutEvent(ctx, ev); err != nil {
		t.Fatalf("put: %v", err)
	}

	events, err := mem.ListEvents(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event after upsert, got %d", len(events))
	}
	if events[0].CachedDistance == nil || *events[0].CachedDistance != 120 {
		t.Errorf("expected updated cached distance, got %v", events[0].CachedDistance)
	}
}

func TestMemory_ListOrderIsDeterministic(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		if err := mem.PutReport(ctx, engine.DailyReport{ID: engine.ReportID(id)}); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	reports, err := mem.ListReports(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []engine.ReportID{"a", "b", "c"}
	for i, r := range reports {
		if r.ID != want[i] {
			t.Errorf("reports[%d] = %s, want %s", i, r.ID, want[i])
		}
	}
}
