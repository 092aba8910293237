package export_test

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fieldops/attest-engine/engine"
	"github.com/fieldops/attest-engine/export"
)

func TestWriteSummariesCSV_RowPerSummary(t *testing.T) {
	summaries := []engine.MonthlySummary{
		{
			Identity:         engine.Identity{Name: "Taro", Base: "BaseA", Phone: "090-1111-2222"},
			PeriodFrom:       "2024-05-01",
			PeriodTo:         "2024-05-31",
			WorkDays:         4,
			TotalDistance:    120,
			EventCount:       5,
			ReportCount:      2,
			MissingArrival:   []engine.Day{"2024-05-02", "2024-05-07"},
			TotalSales:       decimal.NewFromInt(13000),
			TotalCost:        decimal.NewFromInt(3700),
			TotalProfit:      decimal.NewFromInt(9300),
		},
	}

	var buf strings.Builder
	if err := export.WriteSummariesCSV(&buf, summaries); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}

	row := records[1]
	if row[0] != "Taro" || row[6] != "120" {
		t.Errorf("unexpected row: %v", row)
	}
	// Missing dates share one cell, joined with ";".
	if row[10] != "2024-05-02;2024-05-07" {
		t.Errorf("expected joined missing arrivals, got %q", row[10])
	}
	if row[13] != "9300" {
		t.Errorf("expected profit 9300, got %q", row[13])
	}
}

func TestWriteSummariesCSV_EmptyInputStillWritesHeader(t *testing.T) {
	var buf strings.Builder
	if err := export.WriteSummariesCSV(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected header only, got %d lines", len(lines))
	}
}

func TestWriteGroupsCSV_EmitsEventAndReportRows(t *testing.T) {
	odo := int64(1000)
	groups := []engine.Group{
		{
			Identity: engine.Identity{Name: "Taro", Base: "BaseA"},
			Events: []engine.CheckEvent{
				{ID: "ev-1", Type: engine.Departure, Timestamp: "2024-05-01T07:00", OdometerStart: &odo},
			},
			Reports: []engine.DailyReport{
				{ID: "rp-1", WorkDate: "2024-05-01"},
			},
		},
	}

	var buf strings.Builder
	if err := export.WriteGroupsCSV(&buf, groups); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + event row + report row, got %d", len(records))
	}
	if records[1][3] != "event" || records[2][3] != "report" {
		t.Errorf("unexpected kinds: %q, %q", records[1][3], records[2][3])
	}
}
