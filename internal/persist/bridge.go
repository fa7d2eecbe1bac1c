// Package persist is the load/save boundary that lets a control's
// selection survive restarts. Load is called once at mount, before the
// control accepts its first event. Save runs after every committed
// selection mutation; callers dispatch it off the input path and must
// not block on it.
package persist

import "multiselect/internal/domain"

// Bridge is the persistence contract. Implementations must round-trip
// Value and Label losslessly: Save(Load()) is the identity on a
// well-formed option list.
type Bridge interface {
	Load() ([]domain.Option, error)
	Save([]domain.Option) error
}

// Noop is the bridge for controls without persistence.
type Noop struct{}

// Load always returns an empty selection.
func (Noop) Load() ([]domain.Option, error) { return nil, nil }

// Save discards the snapshot.
func (Noop) Save([]domain.Option) error { return nil }
