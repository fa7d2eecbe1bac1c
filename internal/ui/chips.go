package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"multiselect/internal/domain"
	"multiselect/internal/ui/theme"
)

// Chip visual states for pill rendering.
type chipState int

const (
	chipNormal chipState = iota
	chipHighlight
)

// Powerline glyphs for pill-shaped chips.
const (
	pillLeft  = "" // left half-circle
	pillRight = "" // right half-circle
)

// renderPill renders a selected option as a pill-shaped chip. The pill
// has curved powerline edges and a solid fill behind the label.
func renderPill(opt domain.Option, state chipState) string {
	t := theme.Current()

	var fill lipgloss.TerminalColor
	switch state {
	case chipHighlight:
		fill = t.Primary()
	default:
		fill = t.Accent()
	}

	leftCap := lipgloss.NewStyle().Foreground(fill).Render(pillLeft)
	labelStyle := lipgloss.NewStyle().
		Foreground(t.Background()).
		Background(fill)
	if state == chipHighlight {
		labelStyle = labelStyle.Bold(true)
	}
	rightCap := lipgloss.NewStyle().Foreground(fill).Render(pillRight)

	return leftCap + labelStyle.Render(opt.Label) + rightCap
}

// wrapChips lays rendered chips out over as many lines as the width
// requires, never breaking inside a chip. Plain word wrapping would
// split a pill at the spaces inside its label, so the measurement uses
// lipgloss.Width per chip instead.
func wrapChips(chips []string, width int) string {
	if width <= 0 {
		return strings.Join(chips, " ")
	}

	var lines []string
	var line []string
	lineWidth := 0

	for _, chip := range chips {
		w := lipgloss.Width(chip)
		needed := w
		if len(line) > 0 {
			needed++
		}
		if lineWidth+needed > width && len(line) > 0 {
			lines = append(lines, strings.Join(line, " "))
			line = []string{chip}
			lineWidth = w
		} else {
			line = append(line, chip)
			lineWidth += needed
		}
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}

	return strings.Join(lines, "\n")
}
