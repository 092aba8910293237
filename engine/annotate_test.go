package engine_test

import (
	"context"
	"testing"

	"github.com/fieldops/attest-engine/engine"
	"github.com/fieldops/attest-engine/engine/store"
)

func TestAnnotate_WritesCachedDistanceToBothHalves(t *testing.T) {
	// GIVEN: A valid pairing with delta 120 and an annotating engine
	// WHEN: Running Summaries
	// THEN: Both stored events carry cachedDistance = 120

	mem := store.NewMemory()
	eng := engine.New(mem) // Annotate defaults to true
	mustPut(t, mem, []engine.CheckEvent{
		departureAt("ev-1", taro, "2024-05-01T07:00", 1000),
		arrivalAt("ev-2", taro, "2024-05-01T19:00", 1120),
	}, nil)

	if _, err := eng.Summaries(context.Background(), may2024()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, id := range []engine.EventID{"ev-1", "ev-2"} {
		ev, err := mem.GetEvent(context.Background(), id)
		if err != nil || ev == nil {
			t.Fatalf("get %s: %v", id, err)
		}
		if ev.CachedDistance == nil || *ev.CachedDistance != 120 {
			t.Errorf("%s: expected cachedDistance 120, got %v", id, ev.CachedDistance)
		}
	}
}

func TestAnnotate_ReadOnlyEngineSkipsWriteBack(t *testing.T) {
	eng, mem := newEngine(t) // Annotate = false
	mustPut(t, mem, []engine.CheckEvent{
		departureAt("ev-1", taro, "2024-05-01T07:00", 1000),
		arrivalAt("ev-2", taro, "2024-05-01T19:00", 1120),
	}, nil)

	if _, err := eng.Summaries(context.Background(), may2024()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ev, _ := mem.GetEvent(context.Background(), "ev-1")
	if ev.CachedDistance != nil {
		t.Errorf("read-only run must not annotate, got %v", *ev.CachedDistance)
	}
}

func TestAnnotate_SkipsIncompleteAndNonPositivePairings(t *testing.T) {
	mem := store.NewMemory()
	eng := engine.New(mem)
	mustPut(t, mem, []engine.CheckEvent{
		departureAt("ev-1", taro, "2024-05-02T07:00", 1000), // no arrival
		departureAt("ev-2", taro, "2024-05-03T07:00", 1050), // rollover pair
		arrivalAt("ev-3", taro, "2024-05-03T19:00", 1000),
	}, nil)

	if _, err := eng.Summaries(context.Background(), may2024()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, id := range []engine.EventID{"ev-1", "ev-2", "ev-3"} {
		ev, _ := mem.GetEvent(context.Background(), id)
		if ev.CachedDistance != nil {
			t.Errorf("%s: no annotation expected, got %v", id, *ev.CachedDistance)
		}
	}
}

func TestAnnotate_IdempotentAcrossRepeatedQueries(t *testing.T) {
	// Rewriting the same value from the same two source records is safe;
	// the aggregation result does not drift.

	mem := store.NewMemory()
	eng := engine.New(mem)
	mustPut(t, mem, []engine.CheckEvent{
		departureAt("ev-1", taro, "2024-05-01T07:00", 1000),
		arrivalAt("ev-2", taro, "2024-05-01T19:00", 1120),
	}, nil)

	first := singleSummary(t, eng, may2024())
	second := singleSummary(t, eng, may2024())

	if first.TotalDistance != 120 || second.TotalDistance != 120 {
		t.Errorf("distance must not drift: %d then %d",
			first.TotalDistance, second.TotalDistance)
	}

	ev, _ := mem.GetEvent(context.Background(), "ev-1")
	if ev.CachedDistance == nil || *ev.CachedDistance != 120 {
		t.Errorf("expected stable cachedDistance 120, got %v", ev.CachedDistance)
	}
}
