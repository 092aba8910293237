package engine

import (
	"testing"
	"time"
)

func TestNormalizeDate_TruncatesTimestampToDate(t *testing.T) {
	day, ok := NormalizeDate("2024-05-01T07:00")
	if !ok || day != "2024-05-01" {
		t.Errorf("expected 2024-05-01, got %q (ok=%v)", day, ok)
	}
}

func TestNormalizeDate_FirstNonEmptyCandidateWins(t *testing.T) {
	day, ok := NormalizeDate("", "2024-05-02 09:30:00", "2024-05-03")
	if !ok || day != "2024-05-02" {
		t.Errorf("expected 2024-05-02, got %q (ok=%v)", day, ok)
	}
}

func TestNormalizeDate_MalformedWinnerExcludesSilently(t *testing.T) {
	// The winning candidate is malformed; later valid candidates do NOT
	// rescue it - the record is excluded.
	if day, ok := NormalizeDate("not-a-date-at-all", "2024-05-03"); ok {
		t.Errorf("expected exclusion, got %q", day)
	}
	if day, ok := NormalizeDate(); ok {
		t.Errorf("expected exclusion for no candidates, got %q", day)
	}
	if day, ok := NormalizeDate("2024-13-40T00:00"); ok {
		t.Errorf("expected exclusion for impossible date, got %q", day)
	}
}

func TestParseDay_RejectsShortAndPaddedForms(t *testing.T) {
	for _, raw := range []string{"2024-5-1", "20240501", "2024/05/01", ""} {
		if _, ok := ParseDay(raw); ok {
			t.Errorf("expected rejection of %q", raw)
		}
	}
}

func TestPeriod_InclusiveBounds(t *testing.T) {
	p := Period{From: "2024-05-01", To: "2024-05-31"}

	for _, d := range []Day{"2024-05-01", "2024-05-15", "2024-05-31"} {
		if !p.Contains(d) {
			t.Errorf("expected %s in range", d)
		}
	}
	for _, d := range []Day{"2024-04-30", "2024-06-01"} {
		if p.Contains(d) {
			t.Errorf("expected %s out of range", d)
		}
	}
}

func TestPeriod_AbsentBoundIsUnbounded(t *testing.T) {
	if !(Period{To: "2024-05-31"}).Contains("1999-01-01") {
		t.Error("absent from-bound should be unbounded")
	}
	if !(Period{From: "2024-05-01"}).Contains("2999-01-01") {
		t.Error("absent to-bound should be unbounded")
	}
	if !(Period{}).Contains("2024-05-01") {
		t.Error("fully unbounded period should contain any real date")
	}
}

func TestPeriod_ZeroDayAlwaysOutOfRange(t *testing.T) {
	if (Period{}).Contains("") {
		t.Error("a record without a resolvable date never matches")
	}
}

func TestNewDay_FormatsCanonically(t *testing.T) {
	if d := NewDay(2024, time.May, 1); d != "2024-05-01" {
		t.Errorf("expected 2024-05-01, got %q", d)
	}
}
