/*
store.go - The persistence capability the engine consumes

PURPOSE:
  Defines the interface between the aggregation core and whatever holds
  the records. The engine consumes this capability; it never assumes a
  particular storage technology.

READ-MOSTLY CONTRACT:
  The engine reads via full-collection scans and key lookups. Its only
  write is the cachedDistance annotation (PutEvent, see annotate.go),
  which is idempotent and commutative - recomputing and rewriting the
  same value from the same two source records is always safe, so no
  locking is required even if two queries race on the same pair.

SNAPSHOT SEMANTICS:
  A scan is a best-effort snapshot, not a transaction. A concurrent
  submitter can land a record mid-query; the query result simply does
  not include it and is not corrected retroactively.

IMPLEMENTATIONS:
  - store/sqlite:      durable production store
  - engine/store:      in-memory store for tests and dev
*/
package engine

import "context"

// RecordStore holds the two record collections. Scans return the full
// collection; no pagination is required at this system's scale.
type RecordStore interface {
	// ListEvents returns every stored CheckEvent.
	ListEvents(ctx context.Context) ([]CheckEvent, error)

	// ListReports returns every stored DailyReport.
	ListReports(ctx context.Context) ([]DailyReport, error)

	// GetEvent returns one event by ID, or (nil, nil) when absent.
	GetEvent(ctx context.Context, id EventID) (*CheckEvent, error)

	// GetReport returns one report by ID, or (nil, nil) when absent.
	GetReport(ctx context.Context, id ReportID) (*DailyReport, error)

	// PutEvent upserts an event. The engine uses this only for the
	// cachedDistance write-back; submission paths use it to store new
	// attestations.
	PutEvent(ctx context.Context, ev CheckEvent) error

	// PutReport upserts a report.
	PutReport(ctx context.Context, r DailyReport) error
}
