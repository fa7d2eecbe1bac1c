// Demo program for the multiselect control: a fruit picker with
// persistence, theme cycling, and an event log.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"multiselect/internal/config"
	"multiselect/internal/debug"
	"multiselect/internal/domain"
	"multiselect/internal/persist"
	"multiselect/internal/selector"
	"multiselect/internal/ui"
	"multiselect/internal/ui/theme"
)

var sampleOptions = []domain.Option{
	domain.New("🍇 Grapes"),
	domain.New("🍈 Melon"),
	domain.New("🍉 Watermelon"),
	domain.New("🍊 Tangerine"),
	domain.New("🍋 Lemon"),
	domain.New("🍌 Banana"),
	domain.New("🍍 Pineapple"),
	domain.New("🥭 Mango"),
	domain.New("🍎 Apple"),
	domain.New("🍑 Peach"),
	domain.New("🍒 Cherries"),
	domain.New("🥝 Kiwi"),
}

const helpMarkdown = `# Fruit Picker

A searchable multi-select control.

## Keys

| Key | Action |
|-----|--------|
| type | Filter options |
| ` + "`↑/↓`" + ` | Move through options |
| ` + "`⏎`" + ` | Select the active option |
| ` + "`←`" + ` (empty input) | Navigate chips |
| ` + "`⌫`" + ` | Remove the highlighted chip |
| ` + "`tab` / `esc`" + ` | Close the dropdown |
| ` + "`ctrl+r`" + ` | Remove all selected |
| ` + "`ctrl+y`" + ` | Copy selection to clipboard |
| ` + "`ctrl+t`" + ` | Cycle theme |
| ` + "`ctrl+g`" + ` | Toggle this help |
| ` + "`ctrl+c`" + ` | Quit |

Selections are saved to the history database after every change.
`

type model struct {
	multi      ui.MultiSelect
	log        []string
	showHelp   bool
	renderHelp func(string) string
}

func (m model) Init() tea.Cmd {
	return m.multi.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+g":
			m.showHelp = !m.showHelp
			return m, nil
		case "ctrl+t":
			name := theme.Cycle()
			if err := config.SaveTheme(name); err != nil {
				debug.Logf("save theme: %v", err)
			}
			m.addLog("Theme: " + name)
			return m, nil
		}
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

	case ui.SelectionChangedMsg:
		labels := make([]string, len(msg.Selected))
		for i, opt := range msg.Selected {
			labels[i] = opt.Label
		}
		m.addLog("Selection: [" + strings.Join(labels, ", ") + "]")

	case ui.OptionCreatedMsg:
		m.addLog("Created: " + msg.Option.Label)

	case ui.RemoveAllMsg:
		m.addLog("Removed all")

	case ui.DeclinedMsg:
		m.addLog("Declined: " + msg.Err.Error())

	case ui.CopiedMsg:
		m.addLog("Copied: " + msg.Text)

	case ui.SaveFailedMsg:
		m.addLog("Save failed: " + msg.Err.Error())

	case ui.TabMsg:
		m.addLog("Tab: would advance to the next field")
	}

	var cmd tea.Cmd
	m.multi, cmd = m.multi.Update(msg)
	return m, cmd
}

func (m *model) addLog(entry string) {
	m.log = append(m.log, entry)
	if len(m.log) > 8 {
		m.log = m.log[1:]
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	logStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			MarginTop(1)
)

func (m model) View() string {
	if m.showHelp {
		return m.renderHelp(helpMarkdown)
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("Fruit Picker"))
	s.WriteString("\n\n")

	s.WriteString(m.multi.View())
	s.WriteString("\n")

	s.WriteString(helpStyle.Render("ctrl+g help • ctrl+t theme (" + theme.CurrentName() + ") • ctrl+c quit"))
	s.WriteString("\n")

	if len(m.log) > 0 {
		s.WriteString(logStyle.Render("\nLog:"))
		s.WriteString("\n")
		for _, entry := range m.log {
			s.WriteString(logStyle.Render("  " + entry))
			s.WriteString("\n")
		}
	}

	return s.String()
}

func buildHelpRenderer(width int) func(string) string {
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}

func machineOptions() []selector.ConfigOption {
	var opts []selector.ConfigOption
	if n := config.GetInt(config.KeyMaxSelect); n > 0 {
		opts = append(opts, selector.WithMaxSelect(n))
	}
	if config.GetBool(config.KeyAllowNew) {
		opts = append(opts, selector.WithUserOptions(config.GetBool(config.KeyAppendNew)))
	}
	if config.IsSet(config.KeyCloseOnSelect) {
		opts = append(opts, selector.WithCloseOnSelect(config.GetBool(config.KeyCloseOnSelect)))
	}
	if config.GetBool(config.KeyFuzzyMatch) {
		opts = append(opts, selector.WithMatcher(domain.FuzzyMatcher))
	}
	return opts
}

func buildBridge(dbPath, control string) persist.Bridge {
	if dbPath == "" {
		return persist.Noop{}
	}
	store, err := persist.NewSQLiteStore(dbPath, control)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: history disabled: %v\n", err)
		return persist.Noop{}
	}
	return store
}

func main() {
	if err := config.Initialize(); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	debugFlag := flag.Bool("debug", false, "Write debug output to the log file")
	dbPathFlag := flag.String("db-path", config.GetString(config.KeyHistoryPath), "Path to the selection history database (empty disables persistence)")
	controlFlag := flag.String("control", config.GetString(config.KeyHistoryControl), "Control name for selection history")
	flag.Parse()

	if err := debug.Init(*debugFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug logging unavailable: %v\n", err)
	}
	defer debug.Close()

	if name := config.GetString(config.KeyTheme); name != "" {
		if !theme.Set(name) {
			fmt.Fprintf(os.Stderr, "Warning: unknown theme %q, available: %s\n",
				name, strings.Join(theme.Available(), ", "))
		}
	}

	multi := ui.NewMultiSelect(sampleOptions, machineOptions()...).
		WithWidth(50).
		WithMaxVisible(6).
		WithPlaceholder("Take your pick...").
		WithBridge(buildBridge(*dbPathFlag, *controlFlag))

	// Persisted state must be in place before the first event.
	if err := multi.Restore(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not restore selection: %v\n", err)
	}
	multi.Focus()

	m := model{
		multi:      multi,
		renderHelp: buildHelpRenderer(70),
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}
