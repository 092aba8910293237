/*
Package export renders aggregation results as file artifacts.

Adapters consume the engine's output and the original query filters; they
never mutate either. An export failure does not invalidate the
aggregation already computed - the caller decides whether to retry.

The pack standard for tabular output is encoding/csv; no third-party CSV
dependency exists in this codebase.
*/
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fieldops/attest-engine/engine"
)

// SummaryHeader is the column layout for monthly summary exports.
var SummaryHeader = []string{
	"name", "base", "phone",
	"period_from", "period_to",
	"work_days", "total_distance",
	"event_count", "report_count",
	"missing_departure", "missing_arrival",
	"total_sales", "total_cost", "total_profit",
}

// WriteSummariesCSV writes one row per MonthlySummary. Missing-date lists
// are joined with ";" to stay inside a single cell.
func WriteSummariesCSV(w io.Writer, summaries []engine.MonthlySummary) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(SummaryHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, s := range summaries {
		row := []string{
			s.Identity.Name,
			s.Identity.Base,
			s.Identity.Phone,
			s.PeriodFrom.String(),
			s.PeriodTo.String(),
			strconv.Itoa(s.WorkDays),
			strconv.FormatInt(s.TotalDistance, 10),
			strconv.Itoa(s.EventCount),
			strconv.Itoa(s.ReportCount),
			joinDays(s.MissingDeparture),
			joinDays(s.MissingArrival),
			s.TotalSales.String(),
			s.TotalCost.String(),
			s.TotalProfit.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteGroupsCSV writes one row per record inside each group, for raw
// list/detail exports.
func WriteGroupsCSV(w io.Writer, groups []engine.Group) error {
	cw := csv.NewWriter(w)

	header := []string{"name", "base", "phone", "kind", "date", "type", "odometer_start", "odometer_end"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, g := range groups {
		for _, ev := range g.Events {
			day, _ := engine.EventDay(ev)
			row := []string{
				g.Identity.Name, g.Identity.Base, g.Identity.Phone,
				"event", day.String(), string(ev.Type),
				formatOdometer(ev.OdometerStart), formatOdometer(ev.OdometerEnd),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}
		for _, r := range g.Reports {
			day, _ := engine.ReportDay(r)
			row := []string{
				g.Identity.Name, g.Identity.Base, g.Identity.Phone,
				"report", day.String(), "", "", "",
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func joinDays(days []engine.Day) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = d.String()
	}
	return strings.Join(parts, ";")
}

func formatOdometer(p *int64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatInt(*p, 10)
}
