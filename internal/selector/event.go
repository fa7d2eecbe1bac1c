// Package selector implements the interaction core of a searchable
// single/multi-select control: the candidate universe, the ordered
// selection set, the navigation cursor, the creation policy, and the
// state machine that ties them together. It has no terminal
// dependencies; rendering wrappers live in internal/ui.
package selector

// Key identifies the navigation keys the machine reacts to.
type Key int

const (
	KeyDown Key = iota
	KeyUp
	KeyEnter
	KeyTab
	KeyEscape
)

// ClickTarget identifies what was clicked.
type ClickTarget int

const (
	// ClickOption - a candidate row in the dropdown.
	ClickOption ClickTarget = iota
	// ClickRemove - the remove affordance on a selected item.
	ClickRemove
	// ClickRemoveAll - the clear-all affordance.
	ClickRemoveAll
)

// Event is the closed set of inputs the machine consumes. Each concrete
// event maps to one transition; the machine matches them exhaustively.
type Event interface {
	isEvent()
}

// FocusEvent reports the control gaining focus.
type FocusEvent struct{}

// BlurEvent reports focus leaving the control. Blur alone never closes
// the dropdown; only Tab and Escape close.
type BlurEvent struct{}

// KeyEvent carries a navigation keystroke.
type KeyEvent struct {
	Key Key
}

// InputEvent carries the full filter text after a keystroke.
type InputEvent struct {
	Text string
}

// ClickEvent carries a pointer action. Value identifies the option for
// ClickOption and ClickRemove; it is ignored for ClickRemoveAll.
type ClickEvent struct {
	Target ClickTarget
	Value  string
}

func (FocusEvent) isEvent() {}
func (BlurEvent) isEvent()  {}
func (KeyEvent) isEvent()   {}
func (InputEvent) isEvent() {}
func (ClickEvent) isEvent() {}
