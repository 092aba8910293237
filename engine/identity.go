/*
identity.go - Deterministic identity resolution and query filtering

PURPOSE:
  Clusters independently-submitted records that belong to the same person.
  There is no master person list: the grouping key is derived purely from
  what the submitter typed.

KEY DERIVATION:
  key = trim(name) + "_" + normalizePhone(phone)
  key = trim(name) + "_" + trim(base)        (when phone is empty)

  normalizePhone strips whitespace and hyphens, so "090-1111-2222" and
  "09011112222" collapse to the same key.

KNOWN LIMITATION (intentional, not a bug):
  Matching is deterministic. Two submissions for the same person with
  differently-spelled names produce two groups, and two different people
  sharing a name with empty phones produce one. No fuzzy matching is
  attempted; fixing either case is a product decision, not an engine one.

SEE ALSO:
  - query.go: builds Groups from KeyOf
  - types.go: Identity, Filter
*/
package engine

import "strings"

// KeyOf derives the grouping key for a record's declared identity.
// Pure function: same inputs always yield the same key.
func KeyOf(id Identity) IdentityKey {
	name := strings.TrimSpace(id.Name)
	phone := NormalizePhone(id.Phone)
	if phone != "" {
		return IdentityKey(name + "_" + phone)
	}
	return IdentityKey(name + "_" + strings.TrimSpace(id.Base))
}

// NormalizePhone strips whitespace and hyphens. "090-1111-2222",
// "090 1111 2222" and "09011112222" all normalize identically.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		switch r {
		case ' ', '\t', '-', '－', '　':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MatchesFilter reports whether a declared identity passes the query
// filter. Name and base use case-sensitive substring containment; phone
// is an exact match after normalization. An empty filter field matches
// everything.
func MatchesFilter(id Identity, f Filter) bool {
	if f.Name != "" && !strings.Contains(id.Name, f.Name) {
		return false
	}
	if f.Base != "" && !strings.Contains(id.Base, f.Base) {
		return false
	}
	if f.Phone != "" && NormalizePhone(id.Phone) != NormalizePhone(f.Phone) {
		return false
	}
	return true
}
