package selector

import (
	"strings"

	"multiselect/internal/domain"
	"multiselect/internal/errors"
)

// Notifications carries the outbound callbacks the machine emits.
// All fields are optional.
type Notifications struct {
	SelectionChanged func([]domain.Option)
	OpenChanged      func(bool)
	ActiveChanged    func(int)
	OptionCreated    func(domain.Option)
	RemoveAllInvoked func()
	// Declined reports a non-fatal rejected mutation (duplicate value,
	// limit reached, disabled option, remove of an absent value). The
	// machine stays in its current state.
	Declined func(error)
}

type config struct {
	maxSelect        int
	matcher          domain.Matcher
	sortSelected     domain.Comparator
	sortOptions      domain.Comparator
	allowNew         bool
	appendNew        bool
	closeOnSelect    bool
	closeOnSelectSet bool
	excludeSelected  bool
	wrap             bool
	keepQuery        bool
	disabled         bool
	notify           Notifications
}

// ConfigOption customizes a Machine at construction.
type ConfigOption func(*config)

// WithMaxSelect caps the selection size. 0 means unlimited; 1 switches
// the control to single-select semantics.
func WithMaxSelect(n int) ConfigOption {
	return func(c *config) { c.maxSelect = n }
}

// WithMatcher swaps the filter predicate (default case-insensitive substring).
func WithMatcher(m domain.Matcher) ConfigOption {
	return func(c *config) { c.matcher = m }
}

// WithSortSelected keeps the selection fully sorted by cmp after every add.
func WithSortSelected(cmp domain.Comparator) ConfigOption {
	return func(c *config) { c.sortSelected = cmp }
}

// WithSortOptions re-sorts every filtered view by cmp instead of
// preserving universe order.
func WithSortOptions(cmp domain.Comparator) ConfigOption {
	return func(c *config) { c.sortOptions = cmp }
}

// WithUserOptions lets unmatched free text become a new option.
// appendToUniverse chooses whether created options join the permanent
// universe or live only in the selection.
func WithUserOptions(appendToUniverse bool) ConfigOption {
	return func(c *config) {
		c.allowNew = true
		c.appendNew = appendToUniverse
	}
}

// WithCloseOnSelect overrides the default close behaviour after a
// commit (default: close for single-select, stay open for multi).
func WithCloseOnSelect(close bool) ConfigOption {
	return func(c *config) {
		c.closeOnSelect = close
		c.closeOnSelectSet = true
	}
}

// WithExcludeSelected omits already-selected candidates from the view.
func WithExcludeSelected() ConfigOption {
	return func(c *config) { c.excludeSelected = true }
}

// WithWrapNavigation makes arrow keys wrap at the list ends instead of
// saturating.
func WithWrapNavigation() ConfigOption {
	return func(c *config) { c.wrap = true }
}

// WithKeepQueryOnClose keeps the typed filter when the dropdown closes.
func WithKeepQueryOnClose() ConfigOption {
	return func(c *config) { c.keepQuery = true }
}

// WithDisabled starts the control disabled; no transitions fire.
func WithDisabled() ConfigOption {
	return func(c *config) { c.disabled = true }
}

// WithNotifications registers outbound callbacks.
func WithNotifications(n Notifications) ConfigOption {
	return func(c *config) { c.notify = n }
}

// Machine is the interaction state machine: it consumes raw input
// events and reconciles open/closed state, the filter query, the
// filtered view, the cursor, and the selection. One Machine owns all of
// that state exclusively and processes one event to completion at a
// time; no locking is needed beyond "one logical owner, one event at a
// time".
type Machine struct {
	store  *Store
	sel    *Selection
	cursor Cursor
	policy CreatePolicy
	notify Notifications

	query string
	open  bool
	view  []domain.Option

	lastActive      int
	disabled        bool
	excludeSelected bool
	keepQuery       bool
	closeOnSelect   bool
}

// New builds a machine over the given candidate universe. The machine
// starts closed with an empty selection.
func New(options []domain.Option, opts ...ConfigOption) *Machine {
	cfg := config{matcher: domain.SubstringMatcher}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.closeOnSelectSet {
		cfg.closeOnSelect = cfg.maxSelect == 1
	}

	store := NewStore(options)
	store.SetMatcher(cfg.matcher)
	store.SetComparator(cfg.sortOptions)

	m := &Machine{
		store:           store,
		sel:             NewSelection(cfg.maxSelect, cfg.sortSelected),
		cursor:          NewCursor(cfg.wrap),
		policy:          CreatePolicy{Allow: cfg.allowNew, Append: cfg.appendNew},
		notify:          cfg.notify,
		lastActive:      NoActive,
		disabled:        cfg.disabled,
		excludeSelected: cfg.excludeSelected,
		keepQuery:       cfg.keepQuery,
		closeOnSelect:   cfg.closeOnSelect,
	}
	m.sel.SetOnChange(func(snapshot []domain.Option) {
		if m.notify.SelectionChanged != nil {
			m.notify.SelectionChanged(snapshot)
		}
	})
	m.recompute()
	return m
}

// Handle processes one input event to completion. Every transition that
// touches the universe, query, or selection re-derives the filtered
// view and re-clamps the cursor before returning, so the cursor is
// never read against a stale view length.
func (m *Machine) Handle(ev Event) {
	if m.disabled {
		return
	}
	switch ev := ev.(type) {
	case FocusEvent:
		m.setOpen(true)
		m.refresh()
	case BlurEvent:
		// Blur alone never closes; only Tab and Escape do. This keeps
		// the dropdown up while focus visits an internal element such
		// as a chip's remove affordance.
	case InputEvent:
		// Typing reopens a closed dropdown; focus never left.
		m.query = ev.Text
		m.setOpen(true)
		m.refresh()
	case KeyEvent:
		m.handleKey(ev.Key)
	case ClickEvent:
		m.handleClick(ev)
	}
}

func (m *Machine) handleKey(key Key) {
	if !m.open {
		// Arrows reopen a closed dropdown instead of moving a cursor
		// nobody can see.
		if key == KeyDown || key == KeyUp {
			m.setOpen(true)
			m.refresh()
		}
		return
	}
	switch key {
	case KeyDown:
		m.cursor.Move(1, len(m.view))
		m.emitActive()
	case KeyUp:
		m.cursor.Move(-1, len(m.view))
		m.emitActive()
	case KeyEnter:
		if opt, ok := m.Active(); ok {
			m.selectOption(opt)
			return
		}
		m.createFromQuery()
	case KeyTab, KeyEscape:
		m.close()
	}
}

func (m *Machine) handleClick(ev ClickEvent) {
	switch ev.Target {
	case ClickOption:
		if !m.open {
			return
		}
		for i, opt := range m.view {
			if opt.Key() == ev.Value {
				m.cursor.Set(i, len(m.view))
				m.emitActive()
				m.selectOption(opt)
				return
			}
		}
	case ClickRemove:
		if _, err := m.sel.Remove(ev.Value); err != nil {
			m.declined(err)
			return
		}
		m.refresh()
	case ClickRemoveAll:
		if m.sel.RemoveAll() {
			if m.notify.RemoveAllInvoked != nil {
				m.notify.RemoveAllInvoked()
			}
			m.refresh()
		}
	}
}

// selectOption commits a candidate pick and applies the post-select
// behaviour: single-select closes, multi-select clears the query and
// stays open.
func (m *Machine) selectOption(opt domain.Option) {
	if opt.Disabled {
		m.declined(errors.New(errors.CodeOptionDisabled,
			"option "+opt.Key()+" is disabled", nil))
		return
	}
	if !m.commit(opt) {
		return
	}
	m.afterSelect()
}

// commit adds opt to the selection. In single-select mode picking a new
// option swaps out the previous one atomically rather than failing on
// the limit.
func (m *Machine) commit(opt domain.Option) bool {
	if m.sel.Limit() == 1 && m.sel.Len() == 1 && !m.sel.Contains(opt.Key()) {
		if err := m.sel.Replace([]domain.Option{opt}); err != nil {
			m.declined(err)
			return false
		}
		return true
	}
	if err := m.sel.Add(opt); err != nil {
		m.declined(err)
		return false
	}
	return true
}

func (m *Machine) createFromQuery() {
	opt, decision := m.policy.Decide(m.query, m.store)
	switch decision {
	case DecisionDisallow:
		return
	case DecisionAppendAndSelect:
		m.store.Insert(opt)
	case DecisionSelectOnly:
	}
	if !m.commit(opt) {
		m.refresh()
		return
	}
	if m.notify.OptionCreated != nil {
		m.notify.OptionCreated(opt)
	}
	m.afterSelect()
}

func (m *Machine) afterSelect() {
	if m.closeOnSelect {
		m.close()
		return
	}
	m.query = ""
	m.refresh()
}

func (m *Machine) close() {
	if !m.keepQuery {
		m.query = ""
	}
	m.cursor.Reset()
	m.setOpen(false)
	m.refresh()
}

func (m *Machine) setOpen(open bool) {
	if m.open == open {
		return
	}
	m.open = open
	if m.notify.OpenChanged != nil {
		m.notify.OpenChanged(open)
	}
}

// refresh re-derives the filtered view from (universe, query,
// selection), re-clamps the cursor, and reports cursor movement.
func (m *Machine) refresh() {
	m.recompute()
	m.emitActive()
}

func (m *Machine) recompute() {
	var exclude func(string) bool
	if m.excludeSelected {
		exclude = m.sel.Contains
	}
	m.view = m.store.Filter(m.query, exclude)
	if m.open {
		m.cursor.Clamp(len(m.view))
	} else {
		m.cursor.Reset()
	}
}

func (m *Machine) emitActive() {
	if m.cursor.Index() == m.lastActive {
		return
	}
	m.lastActive = m.cursor.Index()
	if m.notify.ActiveChanged != nil {
		m.notify.ActiveChanged(m.lastActive)
	}
}

func (m *Machine) declined(err error) {
	if m.notify.Declined != nil {
		m.notify.Declined(err)
	}
}

// Restore seeds the selection from persisted state, performing the same
// validation as Replace. Called once at mount, before the first event.
func (m *Machine) Restore(opts []domain.Option) error {
	if err := m.sel.Replace(opts); err != nil {
		return err
	}
	m.refresh()
	return nil
}

// SetDisabled toggles the control. A disabled control fires no
// transitions; disabling while open also closes the dropdown.
func (m *Machine) SetDisabled(disabled bool) {
	m.disabled = disabled
	if disabled && m.open {
		m.close()
	}
}

// IsOpen reports whether the dropdown is showing.
func (m *Machine) IsOpen() bool {
	return m.open
}

// Query returns the current filter text.
func (m *Machine) Query() string {
	return m.query
}

// View returns a copy of the current filtered view.
func (m *Machine) View() []domain.Option {
	return domain.CloneAll(m.view)
}

// ActiveIndex returns the cursor position in the view, or NoActive.
func (m *Machine) ActiveIndex() int {
	return m.cursor.Index()
}

// Active returns the candidate under the cursor.
func (m *Machine) Active() (domain.Option, bool) {
	i := m.cursor.Index()
	if i < 0 || i >= len(m.view) {
		return domain.Option{}, false
	}
	return m.view[i], true
}

// Selected returns an immutable snapshot of the selection in observed order.
func (m *Machine) Selected() []domain.Option {
	return m.sel.Snapshot()
}

// SelectedCount returns the selection size.
func (m *Machine) SelectedCount() int {
	return m.sel.Len()
}

// Universe returns a copy of the candidate universe.
func (m *Machine) Universe() []domain.Option {
	return m.store.Options()
}

// HasCandidate reports whether the universe contains the value.
func (m *Machine) HasCandidate(value string) bool {
	return m.store.Contains(value)
}

// CreatePrompt returns the trimmed free text for the synthetic "add
// new" row, shown when the view is empty and the creation policy would
// allow the text to become an option.
func (m *Machine) CreatePrompt() (string, bool) {
	if !m.open || len(m.view) != 0 {
		return "", false
	}
	if _, decision := m.policy.Decide(m.query, m.store); decision == DecisionDisallow {
		return "", false
	}
	return strings.TrimSpace(m.query), true
}
