package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard shortcuts for the select control.
// Each binding includes the actual keys and help text for display.
type KeyMap struct {
	// Dropdown navigation
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding

	// Closing
	Tab    key.Binding
	Escape key.Binding

	// Chip navigation
	Left      key.Binding
	Right     key.Binding
	Backspace key.Binding

	// Selection actions
	RemoveAll key.Binding
	Copy      key.Binding
}

// DefaultKeyMap returns the default keybindings for the control.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/↓", "Move through options"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↑/↓", "Move through options"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎", "Select option"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Close and move on"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close dropdown"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←/→", "Navigate chips"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("←/→", "Navigate chips"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace", "delete"),
			key.WithHelp("⌫", "Remove chip"),
		),
		RemoveAll: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "Remove all selected"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "Copy selection"),
		),
	}
}
