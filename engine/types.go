/*
Package engine provides the record-matching and aggregation core.

PURPOSE:
  This package contains the domain types and algorithms for turning two
  loosely-structured record collections (check-events and daily reports)
  into per-person monthly figures: work-days, distance traveled, missing
  attestations, and financial totals.

KEY CONCEPTS IN THIS FILE (types.go):
  - Identity: name/base/phone as declared at submission time
  - CheckEvent: one departure or arrival attestation
  - DailyReport: one optional per-day activity/financial report
  - Group: all records resolved to the same person (engine-internal)
  - MonthlySummary: the aggregated output handed to export adapters

DESIGN PRINCIPLES:
  1. Read-only inputs: CheckEvent/DailyReport are created outside the core
     and are never mutated, except the one documented cachedDistance
     annotation (see annotate.go)
  2. Precision: uses decimal.Decimal for financial totals to avoid
     floating-point errors
  3. Leniency: malformed optional data resolves to zero or exclusion,
     never to an error (see aggregate.go, date.go)

SEE ALSO:
  - identity.go: grouping key derivation and filter matching
  - pairing.go:  departure/arrival pairing per calendar day
  - aggregate.go: monthly rollup
  - store.go:    the RecordStore capability the engine consumes
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

// IdentityKey is the deterministic grouping key for one person.
// Derived by KeyOf in identity.go; never persisted.
type IdentityKey string

// EventID and ReportID identify stored records.
type EventID string
type ReportID string

// =============================================================================
// IDENTITY - As declared at submission time
// =============================================================================

// Identity carries the name/base/phone a field worker declared when
// submitting a record. It is NOT validated against a master list;
// two submissions with differently-formatted names produce different
// groups (documented limitation, see identity.go).
type Identity struct {
	Name  string `json:"name"`
	Base  string `json:"base"`
	Phone string `json:"phone"`
}

// =============================================================================
// CHECK EVENT - One attestation submission
// =============================================================================

type EventType string

const (
	Departure EventType = "departure"
	Arrival   EventType = "arrival"
)

// CheckEvent is a single twice-daily attendance/vehicle-check attestation.
//
// INVARIANT: OdometerStart is meaningful only when Type == Departure, and
// OdometerEnd only when Type == Arrival. The engine never reads the field
// inconsistent with Type.
type CheckEvent struct {
	ID       EventID   `json:"id"`
	Identity Identity  `json:"identity"`
	Type     EventType `json:"type"`

	// Timestamp is the attestation date+time as submitted, typically
	// "YYYY-MM-DDTHH:MM" or "YYYY-MM-DD HH:MM:SS". Only the first ten
	// characters participate in date matching (see date.go).
	Timestamp string `json:"timestamp"`

	// CreatedAt is the server-side submission time, used as a fallback
	// date source when Timestamp is absent.
	CreatedAt string `json:"created_at,omitempty"`

	OdometerStart *int64 `json:"odometer_start,omitempty"` // Departure only
	OdometerEnd   *int64 `json:"odometer_end,omitempty"`   // Arrival only

	// Attestation payload. Opaque to the engine, passed through to views.
	AlcoholReading   string            `json:"alcohol_reading,omitempty"`
	AbnormalFlag     bool              `json:"abnormal_flag,omitempty"`
	ChecklistResults map[string]string `json:"checklist_results,omitempty"`

	// CachedDistance is the one sanctioned write-back: after a valid
	// same-day pairing both paired events receive the computed distance
	// so later single-day reads need not recompute it. Idempotent; not
	// read by the pairing algorithm itself.
	CachedDistance *int64 `json:"cached_distance,omitempty"`
}

// =============================================================================
// DAILY REPORT - Optional per-day activity report
// =============================================================================

// DailyReport is one optional activity/financial report for a work day.
//
// The financial quantities arrive under drifting field names (the same
// semantic value may appear as "sales", "salesTotal", "uriage", ...,
// depending on the submission path). They are kept raw in Fields and
// resolved by the ordered-candidate resolver in aggregate.go.
type DailyReport struct {
	ID       ReportID `json:"id"`
	Identity Identity `json:"identity"`

	// WorkDate is the report's declared date. CreatedAt is the fallback.
	WorkDate  string `json:"work_date"`
	CreatedAt string `json:"created_at,omitempty"`

	// Fields holds the raw submitted payload: financial values under
	// drifting names plus free-form distance/project/memo entries.
	Fields map[string]any `json:"fields,omitempty"`
}

// =============================================================================
// GROUP - Engine-internal clustering of one person's records
// =============================================================================

// Group is built fresh on every query and never persisted. The Record
// Store does not know groups exist.
type Group struct {
	Key      IdentityKey
	Identity Identity
	Events   []CheckEvent
	Reports  []DailyReport
}

// =============================================================================
// MONTHLY SUMMARY - Aggregated output per group
// =============================================================================

// MonthlySummary is the engine's output for one identity over a query
// range. Export adapters consume it and must not mutate it.
type MonthlySummary struct {
	Identity   Identity `json:"identity"`
	PeriodFrom Day      `json:"period_from"`
	PeriodTo   Day      `json:"period_to"`

	WorkDays      int   `json:"work_days"`
	TotalDistance int64 `json:"total_distance"`
	EventCount    int   `json:"event_count"`
	ReportCount   int   `json:"report_count"`

	MissingDeparture []Day `json:"missing_departure"`
	MissingArrival   []Day `json:"missing_arrival"`

	TotalSales  decimal.Decimal `json:"total_sales"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	TotalProfit decimal.Decimal `json:"total_profit"`
}

// =============================================================================
// QUERY - Caller-supplied range and filter
// =============================================================================

// Filter narrows a query to matching identities. Empty fields match
// everything; see MatchesFilter in identity.go for the exact semantics.
type Filter struct {
	Base  string `json:"base,omitempty"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Query is the input to Groups and Summaries. From/To are inclusive;
// an absent bound is unbounded on that side (Summaries additionally
// requires both bounds, see query.go).
type Query struct {
	From   Day    `json:"from"`
	To     Day    `json:"to"`
	Filter Filter `json:"filter"`
}

func (q Query) Period() Period { return Period{From: q.From, To: q.To} }
