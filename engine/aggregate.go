/*
aggregate.go - Monthly rollup per identity group

PURPOSE:
  Folds one group's pairing facts and daily reports into a single
  MonthlySummary: work-day count, total distance, record counts, missing
  attestation lists, and financial totals.

FIELD-NAME DRIFT:
  The same financial fact arrives under different field names depending
  on the submission path ("sales" vs "salesTotal" vs "uriage" vs
  "total"). Resolution goes through an ordered-candidate resolver so the
  precedence is auditable in one place rather than scattered through
  ad hoc fallback chains.

LENIENT COERCION:
  A financial value that fails to parse as a number counts as zero.
  Silent by design: field submissions are best-effort and a bad cell
  must not abort a whole month's report.

SEE ALSO:
  - pairing.go: produces the pairing facts consumed here
  - query.go:   drives aggregation across all groups
*/
package engine

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// FIELD RESOLVER - Ordered-candidate numeric lookup
// =============================================================================

// Candidate field names per financial fact, in precedence order. The
// first present numeric value wins.
var (
	salesCandidates  = []string{"sales", "salesTotal", "uriage", "total"}
	costCandidates   = []string{"cost", "costTotal", "genka", "expense"}
	profitCandidates = []string{"profit", "profitTotal", "rieki"}
)

// ResolveAmount returns the value of the first candidate key that is
// present and numeric, and whether any candidate resolved. Values that
// are present but non-numeric coerce to zero (and count as resolved):
// the submitter stated the fact, even if the cell is garbage.
func ResolveAmount(fields map[string]any, candidates []string) (decimal.Decimal, bool) {
	for _, key := range candidates {
		v, ok := fields[key]
		if !ok || v == nil {
			continue
		}
		return coerceDecimal(v), true
	}
	return decimal.Zero, false
}

func coerceDecimal(v any) decimal.Decimal {
	switch x := v.(type) {
	case float64:
		return decimal.NewFromFloat(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Zero
		}
		return d
	case decimal.Decimal:
		return x
	default:
		return decimal.Zero
	}
}

// =============================================================================
// ROLLUP - Per-report financial resolution
// =============================================================================

// Rollup is the resolved financial triple for one report.
type Rollup struct {
	Sales  decimal.Decimal
	Cost   decimal.Decimal
	Profit decimal.Decimal
}

// RollupOf resolves one report's financial fields. Anything unresolved
// defaults to zero; when profit itself is absent it derives as
// sales - cost over those defaults (so a report carrying only sales
// yields profit == sales).
func RollupOf(r DailyReport) Rollup {
	sales, _ := ResolveAmount(r.Fields, salesCandidates)
	cost, _ := ResolveAmount(r.Fields, costCandidates)
	profit, profitOK := ResolveAmount(r.Fields, profitCandidates)

	if !profitOK {
		profit = sales.Sub(cost)
	}
	return Rollup{Sales: sales, Cost: cost, Profit: profit}
}

// =============================================================================
// AGGREGATOR
// =============================================================================

// Aggregate computes one group's MonthlySummary for the query period.
// Pure with respect to the store: the summary is owned by the calling
// query and carries no shared state across queries.
func Aggregate(g Group, period Period) MonthlySummary {
	summary := MonthlySummary{
		Identity:    g.Identity,
		PeriodFrom:  period.From,
		PeriodTo:    period.To,
		TotalSales:  decimal.Zero,
		TotalCost:   decimal.Zero,
		TotalProfit: decimal.Zero,
	}

	workDays := make(map[Day]struct{})

	events := eventsInPeriod(g.Events, period)
	for _, ev := range events {
		day, _ := EventDay(ev)
		workDays[day] = struct{}{}
	}
	summary.EventCount = len(events)

	pairing := Pair(events, period)
	summary.TotalDistance = pairing.TotalDistance
	summary.MissingDeparture = pairing.MissingDeparture
	summary.MissingArrival = pairing.MissingArrival

	for _, r := range g.Reports {
		day, ok := ReportDay(r)
		if !ok || !period.Contains(day) {
			continue
		}
		workDays[day] = struct{}{}
		summary.ReportCount++

		rollup := RollupOf(r)
		summary.TotalSales = summary.TotalSales.Add(rollup.Sales)
		summary.TotalCost = summary.TotalCost.Add(rollup.Cost)
		summary.TotalProfit = summary.TotalProfit.Add(rollup.Profit)
	}

	summary.WorkDays = len(workDays)
	return summary
}

func eventsInPeriod(events []CheckEvent, period Period) []CheckEvent {
	var out []CheckEvent
	for _, ev := range events {
		day, ok := EventDay(ev)
		if ok && period.Contains(day) {
			out = append(out, ev)
		}
	}
	return out
}
