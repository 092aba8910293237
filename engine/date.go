package engine

import (
	"time"
)

// =============================================================================
// DAY - Canonical comparable calendar date
// =============================================================================

// Day is a calendar date in "YYYY-MM-DD" form. The string representation
// is the canonical one: lexicographic order equals chronological order,
// which keeps range checks and map keys trivial. The zero value ""
// means "no date".
type Day string

const dayLayout = "2006-01-02"

// ParseDay validates s as a calendar date. Returns ("", false) on any
// malformed input; callers treat that as silent exclusion, not an error.
func ParseDay(s string) (Day, bool) {
	if len(s) != len(dayLayout) {
		return "", false
	}
	if _, err := time.Parse(dayLayout, s); err != nil {
		return "", false
	}
	return Day(s), true
}

// NewDay builds a Day from components. Intended for tests and seeds.
func NewDay(year int, month time.Month, day int) Day {
	return Day(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(dayLayout))
}

func (d Day) IsZero() bool { return d == "" }

func (d Day) Before(other Day) bool { return d < other }
func (d Day) After(other Day) bool  { return d > other }

// Time returns the date at midnight UTC, or the zero time for a zero Day.
func (d Day) Time() time.Time {
	t, err := time.Parse(dayLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d Day) String() string { return string(d) }

// =============================================================================
// DATE NORMALIZER
// =============================================================================

// NormalizeDate resolves a record's calendar date from heterogeneous
// source fields. Candidates are tried in priority order (e.g. event
// timestamp before fallback creation timestamp); the first non-empty one
// wins and its first ten characters must parse as a calendar date.
//
// Returns ("", false) when no candidate is present or the winning
// candidate is malformed. That excludes the record silently: lenient
// input handling is a policy here, not an error path.
func NormalizeDate(candidates ...string) (Day, bool) {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if len(c) > len(dayLayout) {
			c = c[:len(dayLayout)]
		}
		return ParseDay(c)
	}
	return "", false
}

// EventDay resolves a CheckEvent's calendar date: attestation timestamp
// first, server-side creation time as fallback.
func EventDay(ev CheckEvent) (Day, bool) {
	return NormalizeDate(ev.Timestamp, ev.CreatedAt)
}

// ReportDay resolves a DailyReport's calendar date: declared work date
// first, creation time as fallback.
func ReportDay(r DailyReport) (Day, bool) {
	return NormalizeDate(r.WorkDate, r.CreatedAt)
}

// =============================================================================
// PERIOD - Inclusive date range
// =============================================================================

// Period is an inclusive range of calendar days. A zero From or To is
// unbounded on that side.
type Period struct {
	From Day
	To   Day
}

// Contains reports whether d falls within the period. A zero d is always
// out of range (a record without a resolvable date never matches a query).
func (p Period) Contains(d Day) bool {
	if d.IsZero() {
		return false
	}
	if !p.From.IsZero() && d.Before(p.From) {
		return false
	}
	if !p.To.IsZero() && d.After(p.To) {
		return false
	}
	return true
}

// Bounded reports whether both ends of the period are set.
func (p Period) Bounded() bool { return !p.From.IsZero() && !p.To.IsZero() }

func (p Period) String() string {
	return "[" + p.From.String() + ", " + p.To.String() + "]"
}
