package ui

import (
	"github.com/charmbracelet/lipgloss"

	"multiselect/internal/ui/theme"
)

// Styles are functions, not vars, so they pick up theme switches at render time.

func styleInput() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderNormal()).
		Padding(0, 1)
}

func styleInputFocused() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderFocused()).
		Padding(0, 1)
}

func styleOption() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Text()).
		PaddingLeft(2)
}

func styleOptionActive() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Primary()).
		Background(theme.Current().BackgroundSecondary()).
		Bold(true).
		PaddingLeft(1)
}

func styleOptionDisabled() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted()).
		Strikethrough(true).
		PaddingLeft(2)
}

func styleHint() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted())
}

func styleNoMatch() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted()).
		Italic(true)
}

func styleCreateRow() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Accent()).
		Bold(true).
		PaddingLeft(1)
}

func styleStatus() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Error()).
		Italic(true)
}
