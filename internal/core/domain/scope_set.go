package domain

import (
	"sort"
	"strings"
	"unique"
)

// ScopeSet is a canonicalized, interned set of data-scope names (e.g.
// "credit_score", "income"). Interning keeps records comparable by value, so
// two consents over the same scopes hash and compare identically regardless of
// the order the scopes were supplied in.
type ScopeSet struct {
	h unique.Handle[string]
}

// NewScopeSet canonicalizes (trim, drop empties, sort, dedupe) and interns the
// given scope names.
func NewScopeSet(scopes ...string) ScopeSet {
	cleaned := make([]string, 0, len(scopes))
	for _, s := range scopes {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		cleaned = append(cleaned, s)
	}
	sort.Strings(cleaned)
	cleaned = dedupeSorted(cleaned)
	return ScopeSet{h: unique.Make(strings.Join(cleaned, ","))}
}

func dedupeSorted(in []string) []string {
	out := in[:0]
	for i, s := range in {
		if i == 0 || in[i-1] != s {
			out = append(out, s)
		}
	}
	return out
}

// Values returns the scope names in canonical order.
func (s ScopeSet) Values() []string {
	joined := s.String()
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}

// Contains reports whether the set includes the given scope name.
func (s ScopeSet) Contains(scope string) bool {
	for _, v := range s.Values() {
		if v == scope {
			return true
		}
	}
	return false
}

// Len returns the number of scopes in the set.
func (s ScopeSet) Len() int {
	if s.String() == "" {
		return 0
	}
	return strings.Count(s.String(), ",") + 1
}

// String returns the canonical comma-joined form.
func (s ScopeSet) String() string {
	var zero unique.Handle[string]
	if s.h == zero {
		return ""
	}
	return s.h.Value()
}
