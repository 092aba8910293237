/*
annotate.go - cachedDistance write-back for valid same-day pairings

PURPOSE:
  The single sanctioned mutation of stored records. After a complete
  pairing with a positive odometer delta, both paired events receive the
  computed distance as a cached annotation so a later single-day view
  does not re-run pairing.

SAFETY:
  Idempotent and commutative: the value is a pure function of the two
  source records, so racing queries rewrite the same number. The
  annotation is never read by the pairing algorithm itself, and a slot
  already carrying the correct value is skipped to avoid pointless
  store writes.

  Kept as a separate step after pairing - not interleaved into the
  pairing computation - so a read-only engine run can simply skip it.
*/
package engine

import "context"

// AnnotateDistances writes cachedDistance onto both halves of every
// complete, positively-scored pairing in the group. Errors are returned
// to the caller but callers treat annotation as best effort.
func (e *Engine) AnnotateDistances(ctx context.Context, g Group, period Period) error {
	pairing := Pair(g.Events, period)

	for _, day := range pairing.Days {
		slot := pairing.Slots[day]
		d, ok := slot.Distance()
		if !ok {
			continue
		}
		if err := e.annotateEvent(ctx, *slot.Departure, d); err != nil {
			return err
		}
		if err := e.annotateEvent(ctx, *slot.Arrival, d); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) annotateEvent(ctx context.Context, ev CheckEvent, distance int64) error {
	if ev.CachedDistance != nil && *ev.CachedDistance == distance {
		return nil
	}
	ev.CachedDistance = &distance
	return e.Store.PutEvent(ctx, ev)
}
