// Package caseless provides case-insensitive, locale-independent string
// comparison for engine labels and "uses" tags.
package caseless

import (
	"sort"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// Normalize returns the case-folded form of s, suitable as a map key for
// case-insensitive comparison. Folding (rather than Lower/Upper) is
// locale-independent, matching spec's "invariant-culture" requirement.
func Normalize(s string) string {
	return folder.String(s)
}

// Equal reports whether a and b are equal under case folding.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Set is a case-insensitive string set that preserves the first-seen
// casing of each member for display purposes.
type Set struct {
	members map[string]string // normalized -> original
}

// NewSet builds a Set from the given values.
func NewSet(values ...string) Set {
	s := Set{}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts v into the set if not already present (under folding).
func (s *Set) Add(v string) {
	if s.members == nil {
		s.members = make(map[string]string)
	}
	key := Normalize(v)
	if _, ok := s.members[key]; !ok {
		s.members[key] = v
	}
}

// Has reports whether v is a member of the set, case-insensitively.
func (s Set) Has(v string) bool {
	_, ok := s.members[Normalize(v)]
	return ok
}

// Len returns the number of distinct (case-folded) members.
func (s Set) Len() int {
	return len(s.members)
}

// Values returns the set's members in their first-seen casing, sorted by
// normalized form for deterministic output.
func (s Set) Values() []string {
	keys := make([]string, 0, len(s.members))
	for k := range s.members {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = s.members[k]
	}
	return out
}
