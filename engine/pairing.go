/*
pairing.go - Departure/arrival pairing per identity and calendar day

PURPOSE:
  Matches the morning departure attestation with the evening arrival
  attestation for each calendar day, derives the distance traveled from
  the odometer readings, and classifies days whose counterpart is missing.

SLOT SEMANTICS:
  One slot per (identity, day) with a departure half and an arrival half.
  Placement is last-write-wins: a second departure on the same day
  overwrites the first. This is intentional single-slot-per-day behavior
  carried over from the field workflow (a re-submitted attestation
  supersedes the earlier one); do not turn this into a multi-event model.

DISTANCE CONTRACT:
  delta = arrival.OdometerEnd - departure.OdometerStart
  Only delta > 0 contributes distance. delta <= 0 (rollover, data-entry
  error) contributes zero but the day still counts as fully paired - it
  is NOT flagged as missing. The strict > is a behavior contract.

SEE ALSO:
  - aggregate.go: folds pairings into MonthlySummary
  - annotate.go:  cachedDistance write-back for valid pairings
*/
package engine

import "sort"

// =============================================================================
// DAY SLOT - One departure/arrival pair in the making
// =============================================================================

// DaySlot holds at most one departure and one arrival for a single
// identity on a single calendar day.
type DaySlot struct {
	Day       Day
	Departure *CheckEvent
	Arrival   *CheckEvent
}

// Complete reports whether both halves are present.
func (s *DaySlot) Complete() bool { return s.Departure != nil && s.Arrival != nil }

// Distance returns the odometer delta for a complete slot and whether it
// counts toward total distance. Missing odometer readings and
// non-positive deltas score zero; the latter still counts as a valid
// pairing (see DISTANCE CONTRACT above).
func (s *DaySlot) Distance() (int64, bool) {
	if !s.Complete() {
		return 0, false
	}
	if s.Departure.OdometerStart == nil || s.Arrival.OdometerEnd == nil {
		return 0, false
	}
	delta := *s.Arrival.OdometerEnd - *s.Departure.OdometerStart
	if delta > 0 {
		return delta, true
	}
	return 0, false
}

// =============================================================================
// PAIRING RESULT
// =============================================================================

// Pairing is the evaluated outcome for one group over a query range.
type Pairing struct {
	// Slots indexed by day; every day with at least one event has a slot.
	Slots map[Day]*DaySlot

	// Days ordered ascending, for deterministic iteration.
	Days []Day

	TotalDistance    int64
	MissingDeparture []Day
	MissingArrival   []Day
}

// =============================================================================
// PAIRING ENGINE
// =============================================================================

// Pair places a group's range-filtered events into day slots and
// evaluates them. Events whose date cannot be resolved or falls outside
// the period are skipped silently.
func Pair(events []CheckEvent, period Period) *Pairing {
	slots := make(map[Day]*DaySlot)

	for i := range events {
		ev := &events[i]
		day, ok := EventDay(*ev)
		if !ok || !period.Contains(day) {
			continue
		}
		slot := slots[day]
		if slot == nil {
			slot = &DaySlot{Day: day}
			slots[day] = slot
		}
		// Last write wins within a slot half.
		switch ev.Type {
		case Departure:
			slot.Departure = ev
		case Arrival:
			slot.Arrival = ev
		}
	}

	p := &Pairing{Slots: slots}
	for day := range slots {
		p.Days = append(p.Days, day)
	}
	sort.Slice(p.Days, func(i, j int) bool { return p.Days[i].Before(p.Days[j]) })

	for _, day := range p.Days {
		slot := slots[day]
		switch {
		case slot.Complete():
			if d, ok := slot.Distance(); ok {
				p.TotalDistance += d
			}
		case slot.Departure != nil:
			p.MissingArrival = append(p.MissingArrival, day)
		case slot.Arrival != nil:
			p.MissingDeparture = append(p.MissingDeparture, day)
		}
	}
	return p
}
