package theme

import "github.com/charmbracelet/lipgloss"

// Dracula color palette
// https://draculatheme.com/contribute
var dracula = struct {
	Background  string
	CurrentLine string
	Foreground  string
	Comment     string
	Cyan        string
	Green       string
	Purple      string
	Red         string
}{
	Background:  "#282a36",
	CurrentLine: "#44475a",
	Foreground:  "#f8f8f2",
	Comment:     "#6272a4",
	Cyan:        "#8be9fd",
	Green:       "#50fa7b",
	Purple:      "#bd93f9",
	Red:         "#ff5555",
}

// DraculaTheme implements Theme with the Dracula color palette.
type DraculaTheme struct{}

func (d DraculaTheme) Primary() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#7e57c2", Dark: dracula.Purple}
}

func (d DraculaTheme) Accent() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#0097a7", Dark: dracula.Cyan}
}

func (d DraculaTheme) Error() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#c62828", Dark: dracula.Red}
}

func (d DraculaTheme) Success() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: dracula.Green}
}

func (d DraculaTheme) Text() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#282a36", Dark: dracula.Foreground}
}

func (d DraculaTheme) TextMuted() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#90a4ae", Dark: dracula.Comment}
}

func (d DraculaTheme) Background() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#f8f8f2", Dark: dracula.Background}
}

func (d DraculaTheme) BackgroundSecondary() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: dracula.CurrentLine}
}

func (d DraculaTheme) BorderNormal() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#b0bec5", Dark: dracula.CurrentLine}
}

func (d DraculaTheme) BorderFocused() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#7e57c2", Dark: dracula.Purple}
}

func init() {
	Register("dracula", DraculaTheme{})
}
