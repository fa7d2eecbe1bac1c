package selector

import (
	"strings"

	"multiselect/internal/domain"
)

// Decision is the creation policy's verdict for unmatched free text.
type Decision int

const (
	// DecisionDisallow - no option may be synthesized.
	DecisionDisallow Decision = iota
	// DecisionSelectOnly - synthesize and select, but keep the universe
	// untouched; the option disappears from future views once deselected.
	DecisionSelectOnly
	// DecisionAppendAndSelect - synthesize, append to the universe so it
	// stays pickable later, then select.
	DecisionAppendAndSelect
)

// CreatePolicy decides whether free text the user typed may become a
// new option, and whether that option joins the permanent universe.
type CreatePolicy struct {
	Allow  bool
	Append bool
}

// Decide inspects raw text against the universe. Creation is refused
// when disabled, when the text is blank, and when a candidate already
// carries that exact label (prevents accidental duplicate creation).
func (p CreatePolicy) Decide(raw string, store *Store) (domain.Option, Decision) {
	if !p.Allow {
		return domain.Option{}, DecisionDisallow
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return domain.Option{}, DecisionDisallow
	}
	if store != nil && store.HasExact(trimmed) {
		return domain.Option{}, DecisionDisallow
	}
	opt := domain.New(trimmed)
	if p.Append {
		return opt, DecisionAppendAndSelect
	}
	return opt, DecisionSelectOnly
}
