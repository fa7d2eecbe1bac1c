package theme

import "github.com/charmbracelet/lipgloss"

// Nord color palette
// https://www.nordtheme.com/docs/colors-and-palettes
var nord = struct {
	Nord0  string // Polar Night
	Nord1  string
	Nord3  string
	Nord4  string // Snow Storm
	Nord6  string
	Nord8  string // Frost
	Nord9  string
	Nord10 string
	Nord11 string // Aurora
	Nord14 string
}{
	Nord0:  "#2E3440",
	Nord1:  "#3B4252",
	Nord3:  "#4C566A",
	Nord4:  "#D8DEE9",
	Nord6:  "#ECEFF4",
	Nord8:  "#88C0D0",
	Nord9:  "#81A1C1",
	Nord10: "#5E81AC",
	Nord11: "#BF616A",
	Nord14: "#A3BE8C",
}

// NordTheme implements Theme with the Nord color palette.
type NordTheme struct{}

func (n NordTheme) Primary() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: nord.Nord10, Dark: nord.Nord8}
}

func (n NordTheme) Accent() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: nord.Nord10, Dark: nord.Nord9}
}

func (n NordTheme) Error() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: nord.Nord11, Dark: nord.Nord11}
}

func (n NordTheme) Success() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#4c7a34", Dark: nord.Nord14}
}

func (n NordTheme) Text() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: nord.Nord0, Dark: nord.Nord4}
}

func (n NordTheme) TextMuted() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#7b88a1", Dark: nord.Nord3}
}

func (n NordTheme) Background() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: nord.Nord6, Dark: nord.Nord0}
}

func (n NordTheme) BackgroundSecondary() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: nord.Nord4, Dark: nord.Nord1}
}

func (n NordTheme) BorderNormal() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#aeb7c4", Dark: nord.Nord3}
}

func (n NordTheme) BorderFocused() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: nord.Nord10, Dark: nord.Nord8}
}

func init() {
	Register("nord", NordTheme{})
}
