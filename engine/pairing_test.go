package engine

import "testing"

func evDeparture(id, ts string, odo int64) CheckEvent {
	return CheckEvent{ID: EventID(id), Type: Departure, Timestamp: ts, OdometerStart: &odo}
}

func evArrival(id, ts string, odo int64) CheckEvent {
	return CheckEvent{ID: EventID(id), Type: Arrival, Timestamp: ts, OdometerEnd: &odo}
}

func TestPair_PartitionsDaysExactly(t *testing.T) {
	// Every day with at least one event is either fully paired or in
	// exactly one missing list; the sets are disjoint.
	events := []CheckEvent{
		evDeparture("d1", "2024-05-01T07:00", 1000),
		evArrival("a1", "2024-05-01T19:00", 1100),
		evDeparture("d2", "2024-05-02T07:00", 1100),
		evArrival("a3", "2024-05-03T19:00", 1300),
	}

	p := Pair(events, Period{From: "2024-05-01", To: "2024-05-31"})

	paired := make(map[Day]bool)
	for day, slot := range p.Slots {
		if slot.Complete() {
			paired[day] = true
		}
	}
	if !paired["2024-05-01"] || len(paired) != 1 {
		t.Errorf("expected exactly 2024-05-01 paired, got %v", paired)
	}
	if len(p.MissingArrival) != 1 || p.MissingArrival[0] != "2024-05-02" {
		t.Errorf("expected missingArrival [2024-05-02], got %v", p.MissingArrival)
	}
	if len(p.MissingDeparture) != 1 || p.MissingDeparture[0] != "2024-05-03" {
		t.Errorf("expected missingDeparture [2024-05-03], got %v", p.MissingDeparture)
	}

	// Union of paired + missing == all days with events.
	total := len(paired) + len(p.MissingArrival) + len(p.MissingDeparture)
	if total != len(p.Slots) {
		t.Errorf("classification must partition the %d event days, covered %d",
			len(p.Slots), total)
	}
}

func TestPair_StrictlyPositiveDeltaContract(t *testing.T) {
	cases := []struct {
		name    string
		start   int64
		end     int64
		want    int64
		counted bool
	}{
		{"positive delta counts", 1000, 1120, 120, true},
		{"zero delta does not count", 1000, 1000, 0, false},
		{"negative delta does not count", 1050, 1000, 0, false},
		{"delta of one counts", 1000, 1001, 1, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slot := &DaySlot{
				Day:       "2024-05-01",
				Departure: &CheckEvent{Type: Departure, OdometerStart: &tc.start},
				Arrival:   &CheckEvent{Type: Arrival, OdometerEnd: &tc.end},
			}
			got, counted := slot.Distance()
			if got != tc.want || counted != tc.counted {
				t.Errorf("Distance() = (%d, %v), want (%d, %v)",
					got, counted, tc.want, tc.counted)
			}
		})
	}
}

func TestPair_MissingOdometerReadingScoresZero(t *testing.T) {
	// Both events present but the arrival has no reading: a complete
	// pairing with no measurable distance, not a missing flag.
	start := int64(1000)
	slot := &DaySlot{
		Day:       "2024-05-01",
		Departure: &CheckEvent{Type: Departure, OdometerStart: &start},
		Arrival:   &CheckEvent{Type: Arrival},
	}

	if !slot.Complete() {
		t.Fatal("slot with both halves is complete")
	}
	if d, counted := slot.Distance(); d != 0 || counted {
		t.Errorf("expected (0, false), got (%d, %v)", d, counted)
	}
}

func TestPair_SkipsUndatedAndOutOfRangeEvents(t *testing.T) {
	events := []CheckEvent{
		evDeparture("d1", "", 1000),                  // no resolvable date
		evDeparture("d2", "2024-04-01T07:00", 1000),  // out of range
		evDeparture("d3", "2024-05-01T07:00", 1000),
	}

	p := Pair(events, Period{From: "2024-05-01", To: "2024-05-31"})

	if len(p.Slots) != 1 {
		t.Errorf("expected 1 slot, got %d", len(p.Slots))
	}
}

func TestPair_DaysAreSortedAscending(t *testing.T) {
	events := []CheckEvent{
		evDeparture("d3", "2024-05-20T07:00", 1),
		evDeparture("d1", "2024-05-01T07:00", 1),
		evDeparture("d2", "2024-05-10T07:00", 1),
	}

	p := Pair(events, Period{From: "2024-05-01", To: "2024-05-31"})

	want := []Day{"2024-05-01", "2024-05-10", "2024-05-20"}
	for i, d := range p.Days {
		if d != want[i] {
			t.Errorf("Days[%d] = %s, want %s", i, d, want[i])
		}
	}
}
