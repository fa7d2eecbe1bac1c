// Package domain holds the core entities of the multiselect control.
package domain

// Option is one selectable entry. Label is what the user sees and what
// filtering runs against; Value is the identity used for uniqueness and
// equality. Two options may share a label but never a value.
type Option struct {
	Label    string
	Value    string
	Disabled bool
	Meta     map[string]string
}

// New constructs an option whose value defaults to its label.
func New(label string) Option {
	return Option{Label: label, Value: label}
}

// NewWithValue constructs an option with an explicit value identity.
func NewWithValue(label, value string) Option {
	return Option{Label: label, Value: value}
}

// Key returns the identity used for uniqueness checks. Options built by
// literal struct construction may leave Value empty; the label then
// stands in as the identity.
func (o Option) Key() string {
	if o.Value != "" {
		return o.Value
	}
	return o.Label
}

// Equal reports whether two options carry the same identity.
func Equal(a, b Option) bool {
	return a.Key() == b.Key()
}

// CloneAll returns a defensive copy of an option slice. Meta maps are
// shared; the control never mutates them.
func CloneAll(opts []Option) []Option {
	if opts == nil {
		return nil
	}
	out := make([]Option, len(opts))
	copy(out, opts)
	return out
}
