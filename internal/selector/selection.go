package selector

import (
	"fmt"
	"sort"

	"multiselect/internal/domain"
	"multiselect/internal/errors"
)

// Selection is the ordered, duplicate-free set of chosen options.
// Order is insertion order unless a comparator is configured, in which
// case the whole set is re-sorted after every insertion so the observed
// order is always fully sorted, never "sorted except the last element".
type Selection struct {
	items    []domain.Option
	limit    int // 0 = unlimited
	sortCmp  domain.Comparator
	onChange func([]domain.Option)
}

// NewSelection creates an empty selection. limit 0 means unlimited.
func NewSelection(limit int, cmp domain.Comparator) *Selection {
	return &Selection{limit: limit, sortCmp: cmp}
}

// SetOnChange registers the observer invoked with an immutable snapshot
// after every committed mutation.
func (s *Selection) SetOnChange(fn func([]domain.Option)) {
	s.onChange = fn
}

// Limit returns the configured maximum, 0 meaning unlimited.
func (s *Selection) Limit() int {
	return s.limit
}

// Len returns the number of selected options.
func (s *Selection) Len() int {
	return len(s.items)
}

// Contains reports whether an option with the given value is selected.
func (s *Selection) Contains(value string) bool {
	for _, it := range s.items {
		if it.Key() == value {
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the current selection in observed order.
func (s *Selection) Snapshot() []domain.Option {
	return domain.CloneAll(s.items)
}

// Add inserts an option. It fails with duplicate_value if the value is
// already selected and limit_exceeded if the set is full; the set is
// unchanged on failure.
func (s *Selection) Add(opt domain.Option) error {
	if s.Contains(opt.Key()) {
		return errors.New(errors.CodeDuplicateValue,
			fmt.Sprintf("value %q already selected", opt.Key()), nil)
	}
	if s.limit > 0 && len(s.items) >= s.limit {
		return errors.New(errors.CodeLimitExceeded,
			fmt.Sprintf("selection limit %d reached", s.limit), nil)
	}
	s.items = append(s.items, opt)
	s.resort()
	s.notify()
	return nil
}

// Remove deletes the option with the given value. Order of the
// remaining elements is preserved; a previously sorted order cannot be
// violated by a removal, so no re-sort happens.
func (s *Selection) Remove(value string) (domain.Option, error) {
	for i, it := range s.items {
		if it.Key() == value {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.notify()
			return it, nil
		}
	}
	return domain.Option{}, errors.New(errors.CodeNotFound,
		fmt.Sprintf("value %q not selected", value), nil)
}

// RemoveAll empties the set unconditionally. It always succeeds and is
// idempotent; the change notification fires only when something was
// actually removed. Reports whether the set was non-empty.
func (s *Selection) RemoveAll() bool {
	if len(s.items) == 0 {
		return false
	}
	s.items = nil
	s.notify()
	return true
}

// Replace swaps the whole selection, used by persistence restore and by
// consumers overwriting the bound value. Validation (uniqueness, limit)
// runs before anything is committed; on failure the prior selection is
// left untouched and invalid_restore is returned.
func (s *Selection) Replace(opts []domain.Option) error {
	seen := make(map[string]struct{}, len(opts))
	for _, opt := range opts {
		if _, dup := seen[opt.Key()]; dup {
			return errors.New(errors.CodeInvalidRestore,
				fmt.Sprintf("duplicate value %q in restored selection", opt.Key()), nil)
		}
		seen[opt.Key()] = struct{}{}
	}
	if s.limit > 0 && len(opts) > s.limit {
		return errors.New(errors.CodeInvalidRestore,
			fmt.Sprintf("restored selection of %d exceeds limit %d", len(opts), s.limit), nil)
	}
	s.items = domain.CloneAll(opts)
	s.resort()
	s.notify()
	return nil
}

func (s *Selection) resort() {
	if s.sortCmp == nil {
		return
	}
	sort.SliceStable(s.items, func(i, j int) bool {
		return s.sortCmp(s.items[i], s.items[j]) < 0
	})
}

func (s *Selection) notify() {
	if s.onChange != nil {
		s.onChange(s.Snapshot())
	}
}
