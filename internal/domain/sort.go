package domain

import "strings"

// Comparator orders two options; negative means a before b. Supplying
// one to the selection set keeps the observed order fully sorted after
// every insertion, not just appended.
type Comparator func(a, b Option) int

// ByLabel orders options alphabetically by label, ignoring case.
// Ties fall back to the value identity so the order is total.
func ByLabel(a, b Option) int {
	if c := strings.Compare(strings.ToLower(a.Label), strings.ToLower(b.Label)); c != 0 {
		return c
	}
	return strings.Compare(a.Key(), b.Key())
}
