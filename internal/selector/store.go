package selector

import (
	"sort"

	"multiselect/internal/domain"
)

// Store holds the candidate universe: the full set of options the
// control can offer. Insertion order is preserved unless a comparator
// is configured, in which case every filtered view is fully re-sorted.
type Store struct {
	options []domain.Option
	matcher domain.Matcher
	sortCmp domain.Comparator
}

// NewStore builds a universe from the given options, deduplicating by
// value identity (first write wins).
func NewStore(options []domain.Option) *Store {
	s := &Store{matcher: domain.SubstringMatcher}
	for _, opt := range options {
		s.Insert(opt)
	}
	return s
}

// SetMatcher swaps the match predicate used by Filter.
func (s *Store) SetMatcher(m domain.Matcher) {
	if m != nil {
		s.matcher = m
	}
}

// SetComparator configures view ordering. Nil keeps universe order.
func (s *Store) SetComparator(cmp domain.Comparator) {
	s.sortCmp = cmp
}

// Matcher returns the configured match predicate.
func (s *Store) Matcher() domain.Matcher {
	return s.matcher
}

// Insert appends an option to the universe. It is idempotent: if an
// option with the same value already exists the universe is left
// untouched and Insert reports false.
func (s *Store) Insert(opt domain.Option) bool {
	if s.Contains(opt.Key()) {
		return false
	}
	s.options = append(s.options, opt)
	return true
}

// Contains reports whether an option with the given value exists.
func (s *Store) Contains(value string) bool {
	for _, opt := range s.options {
		if opt.Key() == value {
			return true
		}
	}
	return false
}

// Lookup returns the stored option with the given value.
func (s *Store) Lookup(value string) (domain.Option, bool) {
	for _, opt := range s.options {
		if opt.Key() == value {
			return opt, true
		}
	}
	return domain.Option{}, false
}

// Len returns the universe size.
func (s *Store) Len() int {
	return len(s.options)
}

// Options returns a copy of the universe in its current order.
func (s *Store) Options() []domain.Option {
	return domain.CloneAll(s.options)
}

// Filter returns the candidates whose label matches the query under the
// configured matcher. An empty query matches all. When exclude is
// non-nil, candidates it reports true for are omitted (used for
// consume-from-list semantics). The result is a fresh slice; the view
// is recomputed on every call and can never go stale.
func (s *Store) Filter(query string, exclude func(value string) bool) []domain.Option {
	view := make([]domain.Option, 0, len(s.options))
	for _, opt := range s.options {
		if exclude != nil && exclude(opt.Key()) {
			continue
		}
		if !s.matcher(query, opt.Label) {
			continue
		}
		view = append(view, opt)
	}
	if s.sortCmp != nil {
		sort.SliceStable(view, func(i, j int) bool {
			return s.sortCmp(view[i], view[j]) < 0
		})
	}
	return view
}

// HasExact reports whether any candidate's label equals raw, ignoring
// case. The creation policy uses this to block duplicate creation.
func (s *Store) HasExact(raw string) bool {
	for _, opt := range s.options {
		if domain.ExactFold(raw, opt.Label) {
			return true
		}
	}
	return false
}
