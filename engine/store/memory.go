// Package store provides RecordStore implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/fieldops/attest-engine/engine"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	events  map[engine.EventID]engine.CheckEvent
	reports map[engine.ReportID]engine.DailyReport
}

func NewMemory() *Memory {
	return &Memory{
		events:  make(map[engine.EventID]engine.CheckEvent),
		reports: make(map[engine.ReportID]engine.DailyReport),
	}
}

// ListEvents returns every stored event, ordered by ID for determinism.
func (m *Memory) ListEvents(_ context.Context) ([]engine.CheckEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]engine.CheckEvent, 0, len(m.events))
	for _, ev := range m.events {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) ListReports(_ context.Context) ([]engine.DailyReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]engine.DailyReport, 0, len(m.reports))
	for _, r := range m.reports {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetEvent(_ context.Context, id engine.EventID) (*engine.CheckEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ev, ok := m.events[id]
	if !ok {
		return nil, nil
	}
	return &ev, nil
}

func (m *Memory) GetReport(_ context.Context, id engine.ReportID) (*engine.DailyReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.reports[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *Memory) PutEvent(_ context.Context, ev engine.CheckEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[ev.ID] = ev
	return nil
}

func (m *Memory) PutReport(_ context.Context, r engine.DailyReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[r.ID] = r
	return nil
}
