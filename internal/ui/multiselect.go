package ui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"multiselect/internal/debug"
	"multiselect/internal/domain"
	"multiselect/internal/persist"
	"multiselect/internal/selector"
)

// SelectionChangedMsg is sent after every selection mutation.
type SelectionChangedMsg struct {
	Selected []domain.Option
}

// OpenChangedMsg is sent when the dropdown opens or closes.
type OpenChangedMsg struct {
	Open bool
}

// ActiveChangedMsg is sent when the cursor lands on a different row.
// Index is selector.NoActive when no row is active.
type ActiveChangedMsg struct {
	Index int
}

// OptionCreatedMsg is sent when free text is committed as a new option.
type OptionCreatedMsg struct {
	Option domain.Option
}

// RemoveAllMsg is sent when the whole selection is cleared at once.
type RemoveAllMsg struct{}

// DeclinedMsg carries a rejected mutation (duplicate, limit, disabled).
type DeclinedMsg struct {
	Err error
}

// TabMsg signals Tab was pressed so a parent can advance focus.
type TabMsg struct{}

// CopiedMsg is sent after the selection was copied to the clipboard.
type CopiedMsg struct {
	Text string
}

// SaveFailedMsg reports an asynchronous persistence failure. The
// in-memory selection is unaffected.
type SaveFailedMsg struct {
	Err error
}

// msgBuffer collects machine notifications during a single Update so
// they can be re-emitted as bubbletea messages afterwards.
type msgBuffer struct {
	msgs []tea.Msg
}

func (b *msgBuffer) push(msg tea.Msg) {
	b.msgs = append(b.msgs, msg)
}

func (b *msgBuffer) take() []tea.Msg {
	msgs := b.msgs
	b.msgs = nil
	return msgs
}

// MultiSelect is the terminal rendering of the select control. It owns
// a textinput for the filter query and delegates every interaction
// decision to the selector machine; the machine's notifications come
// back out as bubbletea messages.
type MultiSelect struct {
	machine *selector.Machine
	buffer  *msgBuffer
	input   textinput.Model
	keys    KeyMap
	bridge  persist.Bridge

	Width      int
	MaxVisible int

	scrollOffset int
	navIndex     int // highlighted chip, -1 when not navigating
	focused      bool
	status       string
}

// NewMultiSelect builds the control over the given candidate universe.
// Machine options pass through to the interaction core.
func NewMultiSelect(options []domain.Option, machineOpts ...selector.ConfigOption) MultiSelect {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Prompt = "> "

	buffer := &msgBuffer{}
	notify := selector.Notifications{
		SelectionChanged: func(sel []domain.Option) {
			buffer.push(SelectionChangedMsg{Selected: sel})
		},
		OpenChanged: func(open bool) {
			buffer.push(OpenChangedMsg{Open: open})
		},
		ActiveChanged: func(i int) {
			buffer.push(ActiveChangedMsg{Index: i})
		},
		OptionCreated: func(opt domain.Option) {
			buffer.push(OptionCreatedMsg{Option: opt})
		},
		RemoveAllInvoked: func() {
			buffer.push(RemoveAllMsg{})
		},
		Declined: func(err error) {
			buffer.push(DeclinedMsg{Err: err})
		},
	}
	machineOpts = append(machineOpts, selector.WithNotifications(notify))

	m := MultiSelect{
		machine:    selector.New(options, machineOpts...),
		buffer:     buffer,
		input:      ti,
		keys:       DefaultKeyMap(),
		Width:      50,
		MaxVisible: 5,
		navIndex:   -1,
	}
	m.input.Width = m.Width - 4
	return m
}

// WithWidth sets the display width.
func (m MultiSelect) WithWidth(w int) MultiSelect {
	m.Width = w
	m.input.Width = w - 4
	return m
}

// WithMaxVisible sets the maximum visible rows in the dropdown.
func (m MultiSelect) WithMaxVisible(n int) MultiSelect {
	m.MaxVisible = n
	return m
}

// WithPlaceholder sets the placeholder text.
func (m MultiSelect) WithPlaceholder(s string) MultiSelect {
	m.input.Placeholder = s
	return m
}

// WithBridge attaches a persistence bridge. Saves are dispatched
// asynchronously after every selection change.
func (m MultiSelect) WithBridge(b persist.Bridge) MultiSelect {
	m.bridge = b
	return m
}

// Restore seeds the selection from the bridge. Call once before the
// program starts so persisted state is in place ahead of the first
// event.
func (m *MultiSelect) Restore() error {
	if m.bridge == nil {
		return nil
	}
	opts, err := m.bridge.Load()
	if err != nil {
		return err
	}
	if err := m.machine.Restore(opts); err != nil {
		return err
	}
	m.buffer.take() // startup notifications are not re-emitted
	return nil
}

// Init implements tea.Model.
func (m MultiSelect) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m MultiSelect) Update(msg tea.Msg) (MultiSelect, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	if !m.focused {
		return m, nil
	}
	if m.navIndex >= 0 {
		return m.handleChipNavKey(keyMsg)
	}
	return m.handleKey(keyMsg)
}

func (m MultiSelect) handleKey(msg tea.KeyMsg) (MultiSelect, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.machine.Handle(selector.KeyEvent{Key: selector.KeyUp})
		m.ensureVisible()
		return m, m.drain()

	case key.Matches(msg, m.keys.Down):
		m.machine.Handle(selector.KeyEvent{Key: selector.KeyDown})
		m.ensureVisible()
		return m, m.drain()

	case key.Matches(msg, m.keys.Enter):
		m.machine.Handle(selector.KeyEvent{Key: selector.KeyEnter})
		m.syncInput()
		m.ensureVisible()
		return m, m.drain()

	case key.Matches(msg, m.keys.Tab):
		m.machine.Handle(selector.KeyEvent{Key: selector.KeyTab})
		m.syncInput()
		m.scrollOffset = 0
		return m, tea.Batch(m.drain(), func() tea.Msg { return TabMsg{} })

	case key.Matches(msg, m.keys.Escape):
		m.machine.Handle(selector.KeyEvent{Key: selector.KeyEscape})
		m.syncInput()
		m.scrollOffset = 0
		return m, m.drain()

	case key.Matches(msg, m.keys.RemoveAll):
		m.machine.Handle(selector.ClickEvent{Target: selector.ClickRemoveAll})
		return m, m.drain()

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyCmd()

	case key.Matches(msg, m.keys.Left):
		// Left on an empty input enters chip navigation.
		if m.input.Value() == "" && m.machine.SelectedCount() > 0 {
			m.navIndex = m.machine.SelectedCount() - 1
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.machine.Handle(selector.InputEvent{Text: m.input.Value()})
		m.scrollOffset = 0
		m.ensureVisible()
		return m, tea.Batch(cmd, m.drain())
	}
	return m, cmd
}

func (m MultiSelect) handleChipNavKey(msg tea.KeyMsg) (MultiSelect, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		if m.navIndex > 0 {
			m.navIndex--
		}
		return m, nil

	case key.Matches(msg, m.keys.Right):
		if m.navIndex < m.machine.SelectedCount()-1 {
			m.navIndex++
			return m, nil
		}
		m.navIndex = -1
		return m, nil

	case key.Matches(msg, m.keys.Backspace):
		selected := m.machine.Selected()
		if m.navIndex < 0 || m.navIndex >= len(selected) {
			return m, nil
		}
		removed := selected[m.navIndex]
		m.machine.Handle(selector.ClickEvent{
			Target: selector.ClickRemove,
			Value:  removed.Key(),
		})
		if count := m.machine.SelectedCount(); count == 0 {
			m.navIndex = -1
		} else if m.navIndex >= count {
			m.navIndex = count - 1
		}
		return m, m.drain()

	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Tab):
		m.navIndex = -1
		return m, nil

	case key.Matches(msg, m.keys.RemoveAll):
		m.navIndex = -1
		m.machine.Handle(selector.ClickEvent{Target: selector.ClickRemoveAll})
		return m, m.drain()
	}

	// Typing exits chip navigation and goes to the filter.
	if msg.Type == tea.KeyRunes {
		m.navIndex = -1
		return m.handleKey(msg)
	}
	return m, nil
}

// syncInput pulls the machine's query back into the textinput after
// transitions that reset it (select in multi mode, close).
func (m *MultiSelect) syncInput() {
	if q := m.machine.Query(); q != m.input.Value() {
		m.input.SetValue(q)
		m.input.CursorEnd()
	}
}

// ensureVisible scrolls the dropdown window so the active row stays on
// screen.
func (m *MultiSelect) ensureVisible() {
	active := m.machine.ActiveIndex()
	if active < 0 {
		m.scrollOffset = 0
		return
	}
	if active < m.scrollOffset {
		m.scrollOffset = active
	}
	if active >= m.scrollOffset+m.MaxVisible {
		m.scrollOffset = active - m.MaxVisible + 1
	}
	maxOffset := len(m.machine.View()) - m.MaxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.scrollOffset > maxOffset {
		m.scrollOffset = maxOffset
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// drain converts buffered machine notifications into bubbletea
// commands and schedules a save when the selection changed.
func (m *MultiSelect) drain() tea.Cmd {
	msgs := m.buffer.take()
	var cmds []tea.Cmd
	var dirty []domain.Option
	for _, msg := range msgs {
		msg := msg
		switch v := msg.(type) {
		case SelectionChangedMsg:
			dirty = v.Selected
			m.status = ""
		case DeclinedMsg:
			m.status = v.Err.Error()
		}
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	if dirty != nil && m.bridge != nil {
		cmds = append(cmds, m.saveCmd(dirty))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m MultiSelect) saveCmd(selected []domain.Option) tea.Cmd {
	bridge := m.bridge
	return func() tea.Msg {
		if err := bridge.Save(selected); err != nil {
			debug.Logf("save failed: %v", err)
			return SaveFailedMsg{Err: err}
		}
		return nil
	}
}

func (m MultiSelect) copyCmd() tea.Cmd {
	selected := m.machine.Selected()
	if len(selected) == 0 {
		return nil
	}
	labels := make([]string, len(selected))
	for i, opt := range selected {
		labels[i] = opt.Label
	}
	text := strings.Join(labels, ", ")
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			debug.Logf("clipboard copy failed: %v", err)
			return nil
		}
		return CopiedMsg{Text: text}
	}
}

// View implements tea.Model.
func (m MultiSelect) View() string {
	var b strings.Builder

	if chips := m.renderChips(); chips != "" {
		b.WriteString(chips)
		b.WriteString("\n")
	}

	inputStyle := styleInput().Width(m.Width)
	if m.focused {
		inputStyle = styleInputFocused().Width(m.Width)
	}
	b.WriteString(inputStyle.Render(m.input.View()))

	if m.machine.IsOpen() {
		b.WriteString("\n")
		b.WriteString(m.renderDropdown())
	}

	if m.machine.SelectedCount() > 1 {
		b.WriteString("\n")
		b.WriteString(styleHint().Render("  ctrl+r to remove all"))
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(styleStatus().Render(wordwrap.String("  "+m.status, m.Width)))
	}

	return b.String()
}

func (m MultiSelect) renderChips() string {
	selected := m.machine.Selected()
	if len(selected) == 0 {
		return ""
	}
	chips := make([]string, len(selected))
	for i, opt := range selected {
		state := chipNormal
		if i == m.navIndex {
			state = chipHighlight
		}
		chips[i] = renderPill(opt, state)
	}
	return wrapChips(chips, m.Width)
}

func (m MultiSelect) renderDropdown() string {
	var b strings.Builder

	view := m.machine.View()
	if len(view) == 0 {
		if prompt, ok := m.machine.CreatePrompt(); ok {
			b.WriteString(styleCreateRow().Render("⏎ to add new: " + prompt))
		} else {
			b.WriteString(styleNoMatch().Render("  No matches"))
		}
		return b.String()
	}

	if m.scrollOffset > 0 {
		b.WriteString(styleHint().Render("  ▲ more above"))
		b.WriteString("\n")
	}

	end := m.scrollOffset + m.MaxVisible
	if end > len(view) {
		end = len(view)
	}
	active := m.machine.ActiveIndex()
	for i := m.scrollOffset; i < end; i++ {
		opt := view[i]
		switch {
		case i == active:
			b.WriteString(styleOptionActive().Render("▸ " + opt.Label))
		case opt.Disabled:
			b.WriteString(styleOptionDisabled().Render(opt.Label))
		default:
			b.WriteString(styleOption().Render(opt.Label))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if end < len(view) {
		b.WriteString("\n")
		b.WriteString(styleHint().Render("  ▼ more below"))
	}

	return b.String()
}

// Focus gives the control focus and opens the dropdown.
func (m *MultiSelect) Focus() tea.Cmd {
	m.focused = true
	m.machine.Handle(selector.FocusEvent{})
	cmd := m.input.Focus()
	return tea.Batch(cmd, m.drain())
}

// Blur removes focus. The dropdown stays as it is; only Tab and Escape
// close it.
func (m *MultiSelect) Blur() tea.Cmd {
	m.focused = false
	m.navIndex = -1
	m.machine.Handle(selector.BlurEvent{})
	m.input.Blur()
	return m.drain()
}

// Focused reports whether the control has focus.
func (m MultiSelect) Focused() bool {
	return m.focused
}

// SetDisabled toggles the control's machine.
func (m *MultiSelect) SetDisabled(disabled bool) tea.Cmd {
	m.machine.SetDisabled(disabled)
	return m.drain()
}

// Machine exposes the interaction core for callers that need direct
// state access.
func (m MultiSelect) Machine() *selector.Machine {
	return m.machine
}

// Selected returns a snapshot of the selection.
func (m MultiSelect) Selected() []domain.Option {
	return m.machine.Selected()
}

// InputValue returns the current filter text (for testing).
func (m MultiSelect) InputValue() string {
	return m.input.Value()
}

// InChipNav reports whether chip navigation is active.
func (m MultiSelect) InChipNav() bool {
	return m.navIndex >= 0
}

// NavIndex returns the highlighted chip index, -1 when not navigating.
func (m MultiSelect) NavIndex() int {
	return m.navIndex
}

// ScrollOffset returns the first visible dropdown row (for testing).
func (m MultiSelect) ScrollOffset() int {
	return m.scrollOffset
}
