/*
query.go - Query orchestration: scan, filter, group, pair, aggregate

PURPOSE:
  Drives one aggregation run end to end. Everything after the store scan
  executes strictly sequentially: there is no fan-out across identities
  and no suspension point inside pairing or aggregation. Groups are
  processed in stable order by identity key, so two runs over the same
  snapshot produce identical output ordering.

CANCELLATION:
  None. A run goes to completion or fails. A caller abandoning a stale
  query discards its result; a newer run's result supersedes an older
  one in the caller's own state, never inside the engine.

SEE ALSO:
  - store.go:    the scan boundary (the only suspension point)
  - annotate.go: optional cachedDistance write-back after pairing
*/
package engine

import (
	"context"
	"sort"
)

// Engine runs queries against an injected record store.
type Engine struct {
	Store RecordStore

	// Annotate enables the cachedDistance write-back after pairing.
	// A read-only engine (tests, ad hoc tooling) leaves it false.
	Annotate bool
}

func New(store RecordStore) *Engine {
	return &Engine{Store: store, Annotate: true}
}

// =============================================================================
// GROUPS - Raw grouped records for list/detail views
// =============================================================================

// Groups returns the range- and filter-restricted records clustered per
// identity, ordered stably by identity key. A query matching nothing
// returns an empty slice, not an error.
func (e *Engine) Groups(ctx context.Context, q Query) ([]Group, error) {
	events, err := e.Store.ListEvents(ctx)
	if err != nil {
		return nil, &StoreError{Collection: "events", Err: err}
	}
	reports, err := e.Store.ListReports(ctx)
	if err != nil {
		return nil, &StoreError{Collection: "reports", Err: err}
	}

	period := q.Period()
	byKey := make(map[IdentityKey]*Group)

	for _, ev := range events {
		day, ok := EventDay(ev)
		if !ok || !period.Contains(day) {
			continue
		}
		if !MatchesFilter(ev.Identity, q.Filter) {
			continue
		}
		g := groupFor(byKey, ev.Identity)
		g.Events = append(g.Events, ev)
	}

	for _, r := range reports {
		day, ok := ReportDay(r)
		if !ok || !period.Contains(day) {
			continue
		}
		if !MatchesFilter(r.Identity, q.Filter) {
			continue
		}
		g := groupFor(byKey, r.Identity)
		g.Reports = append(g.Reports, r)
	}

	groups := make([]Group, 0, len(byKey))
	for _, g := range byKey {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups, nil
}

func groupFor(byKey map[IdentityKey]*Group, id Identity) *Group {
	key := KeyOf(id)
	g := byKey[key]
	if g == nil {
		// The first record's declared identity names the group.
		g = &Group{Key: key, Identity: id}
		byKey[key] = g
	}
	return g
}

// =============================================================================
// SUMMARIES - Aggregated report rows
// =============================================================================

// Summaries runs the full pipeline and returns one MonthlySummary per
// group, in the same stable order as Groups. Both date bounds are
// required: a monthly report over an unbounded range is a caller bug.
func (e *Engine) Summaries(ctx context.Context, q Query) ([]MonthlySummary, error) {
	if !q.Period().Bounded() {
		return nil, ErrMissingDateBound
	}

	groups, err := e.Groups(ctx, q)
	if err != nil {
		return nil, err
	}

	summaries := make([]MonthlySummary, 0, len(groups))
	for _, g := range groups {
		summaries = append(summaries, Aggregate(g, q.Period()))
		if e.Annotate {
			// Best effort: an annotation failure must not invalidate
			// the aggregation already computed.
			_ = e.AnnotateDistances(ctx, g, q.Period())
		}
	}
	return summaries, nil
}
