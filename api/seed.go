/*
seed.go - Demo dataset for development and demos

PURPOSE:
  Populates the store with a small but representative month of field
  data: paired days, a missing arrival, an odometer rollover, and
  reports whose financial fields drift across the known candidate
  names. Useful for exercising every view without a real fleet.

NOTE:
  Seeding writes through the normal store surface and does not reset
  anything. Only use in development/demo environments.
*/
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fieldops/attest-engine/engine"
)

// LoadSeed handles POST /api/seed.
func (h *Handler) LoadSeed(w http.ResponseWriter, r *http.Request) {
	if err := Seed(r.Context(), h.Store); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load seed data", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "seeded"})
}

// Seed writes the demo dataset into the store.
func Seed(ctx context.Context, st engine.RecordStore) error {
	taro := engine.Identity{Name: "Taro", Base: "BaseA", Phone: "090-1111-2222"}
	jiro := engine.Identity{Name: "Jiro", Base: "BaseB", Phone: "080-3333-4444"}

	events := []engine.CheckEvent{
		// Full pairing, 120 km
		departure("seed-ev-1", taro, "2024-05-01T07:00", 1000),
		arrival("seed-ev-2", taro, "2024-05-01T19:00", 1120),
		// Departure without arrival
		departure("seed-ev-3", taro, "2024-05-02T07:10", 1120),
		// Odometer rollover: paired, zero distance
		departure("seed-ev-4", taro, "2024-05-03T07:00", 1050),
		arrival("seed-ev-5", taro, "2024-05-03T18:30", 1000),
		// Second driver
		departure("seed-ev-6", jiro, "2024-05-01T06:50", 42000),
		arrival("seed-ev-7", jiro, "2024-05-01T20:15", 42310),
	}

	reports := []engine.DailyReport{
		{
			ID:       "seed-rp-1",
			Identity: taro,
			WorkDate: "2024-05-01",
			Fields: map[string]any{
				"sales": 5000, "cost": 1200,
				"project": "Route 12 delivery", "memo": "normal run",
			},
		},
		{
			// Drifted field names from another submission path
			ID:       "seed-rp-2",
			Identity: taro,
			WorkDate: "2024-05-04",
			Fields: map[string]any{
				"uriage": "8000", "genka": "2500", "rieki": "5500",
			},
		},
		{
			ID:       "seed-rp-3",
			Identity: jiro,
			WorkDate: "2024-05-01",
			Fields:   map[string]any{"salesTotal": 12000},
		},
	}

	for _, ev := range events {
		if err := st.PutEvent(ctx, ev); err != nil {
			return fmt.Errorf("seeding event %s: %w", ev.ID, err)
		}
	}
	for _, rp := range reports {
		if err := st.PutReport(ctx, rp); err != nil {
			return fmt.Errorf("seeding report %s: %w", rp.ID, err)
		}
	}
	return nil
}

func departure(id string, who engine.Identity, ts string, odo int64) engine.CheckEvent {
	return engine.CheckEvent{
		ID:            engine.EventID(id),
		Identity:      who,
		Type:          engine.Departure,
		Timestamp:     ts,
		OdometerStart: &odo,
	}
}

func arrival(id string, who engine.Identity, ts string, odo int64) engine.CheckEvent {
	return engine.CheckEvent{
		ID:          engine.EventID(id),
		Identity:    who,
		Type:        engine.Arrival,
		Timestamp:   ts,
		OdometerEnd: &odo,
	}
}
