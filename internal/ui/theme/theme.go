// Package theme provides a semantic color system for the multiselect UI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the semantic colors used by the select control.
// All methods return AdaptiveColor for automatic light/dark terminal support.
type Theme interface {
	Primary() lipgloss.AdaptiveColor // Accent for focused borders and the active row
	Accent() lipgloss.AdaptiveColor  // Chip fill and create-row highlight

	Error() lipgloss.AdaptiveColor   // Declined operations, restore failures
	Success() lipgloss.AdaptiveColor // Confirmed additions

	Text() lipgloss.AdaptiveColor      // Primary text
	TextMuted() lipgloss.AdaptiveColor // Placeholder, hints, scroll indicators

	Background() lipgloss.AdaptiveColor          // Main background
	BackgroundSecondary() lipgloss.AdaptiveColor // Active dropdown row

	BorderNormal() lipgloss.AdaptiveColor  // Resting control border
	BorderFocused() lipgloss.AdaptiveColor // Focused control border
}
