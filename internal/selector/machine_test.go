package selector

import (
	"testing"

	"multiselect/internal/domain"
	"multiselect/internal/errors"
)

// recorder captures outbound notifications for assertions.
type recorder struct {
	selections [][]domain.Option
	opens      []bool
	actives    []int
	created    []domain.Option
	removeAll  int
	declined   []error
}

func (r *recorder) notifications() Notifications {
	return Notifications{
		SelectionChanged: func(s []domain.Option) { r.selections = append(r.selections, s) },
		OpenChanged:      func(o bool) { r.opens = append(r.opens, o) },
		ActiveChanged:    func(i int) { r.actives = append(r.actives, i) },
		OptionCreated:    func(o domain.Option) { r.created = append(r.created, o) },
		RemoveAllInvoked: func() { r.removeAll++ },
		Declined:         func(err error) { r.declined = append(r.declined, err) },
	}
}

func typeText(m *Machine, text string) {
	m.Handle(InputEvent{Text: text})
}

func labels(opts []domain.Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Label
	}
	return out
}

func TestFocusOpensAndBlurNeverCloses(t *testing.T) {
	m := New(fruitOptions())

	if m.IsOpen() {
		t.Fatal("machine must start closed")
	}

	m.Handle(FocusEvent{})
	if !m.IsOpen() {
		t.Fatal("focus must open the dropdown")
	}
	if len(m.View()) != 3 {
		t.Errorf("expected full view on open, got %d", len(m.View()))
	}
	if m.ActiveIndex() != 0 {
		t.Errorf("expected cursor on first row, got %d", m.ActiveIndex())
	}

	// Committed contract: blur alone never closes; only Tab and Escape do.
	m.Handle(BlurEvent{})
	if !m.IsOpen() {
		t.Error("blur must not close the dropdown")
	}
}

func TestTabAndEscapeClose(t *testing.T) {
	t.Run("TabResetsQueryAndCursor", func(t *testing.T) {
		m := New(fruitOptions())
		m.Handle(FocusEvent{})
		typeText(m, "Ban")

		m.Handle(KeyEvent{Key: KeyTab})
		if m.IsOpen() {
			t.Error("tab must close")
		}
		if m.Query() != "" {
			t.Errorf("expected query reset on close, got %q", m.Query())
		}
		if m.ActiveIndex() != NoActive {
			t.Errorf("expected cursor reset, got %d", m.ActiveIndex())
		}
	})

	t.Run("EscapeClosesWithoutMutatingSelection", func(t *testing.T) {
		m := New(fruitOptions())
		m.Handle(FocusEvent{})
		m.Handle(KeyEvent{Key: KeyEnter}) // select first
		before := len(m.Selected())

		m.Handle(FocusEvent{})
		m.Handle(KeyEvent{Key: KeyEscape})
		if m.IsOpen() {
			t.Error("escape must close")
		}
		if len(m.Selected()) != before {
			t.Error("escape must not mutate the selection")
		}
	})

	t.Run("KeepQueryOnClose", func(t *testing.T) {
		m := New(fruitOptions(), WithKeepQueryOnClose())
		m.Handle(FocusEvent{})
		typeText(m, "Ban")
		m.Handle(KeyEvent{Key: KeyEscape})
		if m.Query() != "Ban" {
			t.Errorf("expected query preserved, got %q", m.Query())
		}
	})
}

func TestScenarioA_FilterToExactMatch(t *testing.T) {
	m := New(fruitOptions())
	m.Handle(FocusEvent{})
	typeText(m, "Pineapple")

	view := m.View()
	if len(view) != 1 || view[0].Label != "🍍 Pineapple" {
		t.Fatalf("expected view exactly [🍍 Pineapple], got %v", labels(view))
	}
}

func TestCursorClampedAfterEveryRecompute(t *testing.T) {
	m := New(fruitOptions())
	m.Handle(FocusEvent{})

	// Walk to the last row, then shrink the view to one candidate.
	m.Handle(KeyEvent{Key: KeyDown})
	m.Handle(KeyEvent{Key: KeyDown})
	if m.ActiveIndex() != 2 {
		t.Fatalf("expected cursor at 2, got %d", m.ActiveIndex())
	}

	typeText(m, "Grapes")
	if got := len(m.View()); got != 1 {
		t.Fatalf("expected 1 candidate, got %d", got)
	}
	if m.ActiveIndex() != 0 {
		t.Errorf("cursor must be re-clamped into the new view, got %d", m.ActiveIndex())
	}

	typeText(m, "no such fruit")
	if m.ActiveIndex() != NoActive {
		t.Errorf("cursor must go sentinel on empty view, got %d", m.ActiveIndex())
	}
}

func TestArrowKeysSaturate(t *testing.T) {
	m := New(fruitOptions())
	m.Handle(FocusEvent{})

	for i := 0; i < 6; i++ {
		m.Handle(KeyEvent{Key: KeyDown})
	}
	if m.ActiveIndex() != 2 {
		t.Errorf("expected saturation on last row, got %d", m.ActiveIndex())
	}
	for i := 0; i < 6; i++ {
		m.Handle(KeyEvent{Key: KeyUp})
	}
	if m.ActiveIndex() != 0 {
		t.Errorf("expected saturation on first row, got %d", m.ActiveIndex())
	}
}

func TestEnterSelectsActiveCandidate(t *testing.T) {
	t.Run("MultiSelectClearsQueryAndStaysOpen", func(t *testing.T) {
		rec := &recorder{}
		m := New(fruitOptions(), WithNotifications(rec.notifications()))
		m.Handle(FocusEvent{})
		typeText(m, "Pine")
		m.Handle(KeyEvent{Key: KeyEnter})

		selected := m.Selected()
		if len(selected) != 1 || selected[0].Label != "🍍 Pineapple" {
			t.Fatalf("expected Pineapple selected, got %v", labels(selected))
		}
		if !m.IsOpen() {
			t.Error("multi-select must stay open after a pick")
		}
		if m.Query() != "" {
			t.Errorf("multi-select must clear the query after a pick, got %q", m.Query())
		}
		if len(rec.selections) == 0 {
			t.Error("expected a selection-changed notification")
		}
	})

	t.Run("SingleSelectCloses", func(t *testing.T) {
		m := New(fruitOptions(), WithMaxSelect(1))
		m.Handle(FocusEvent{})
		m.Handle(KeyEvent{Key: KeyEnter})

		if m.IsOpen() {
			t.Error("single-select must close after a pick")
		}
		if len(m.Selected()) != 1 {
			t.Errorf("expected 1 selected, got %d", len(m.Selected()))
		}
	})

	t.Run("SingleSelectSwapsPreviousPick", func(t *testing.T) {
		m := New(fruitOptions(), WithMaxSelect(1))
		m.Handle(FocusEvent{})
		m.Handle(KeyEvent{Key: KeyEnter}) // Banana

		m.Handle(FocusEvent{})
		typeText(m, "Grapes")
		m.Handle(KeyEvent{Key: KeyEnter})

		selected := m.Selected()
		if len(selected) != 1 || selected[0].Label != "🍇 Grapes" {
			t.Fatalf("expected swap to Grapes, got %v", labels(selected))
		}
	})

	t.Run("DuplicatePickIsDeclined", func(t *testing.T) {
		rec := &recorder{}
		m := New(fruitOptions(), WithNotifications(rec.notifications()))
		m.Handle(FocusEvent{})
		m.Handle(KeyEvent{Key: KeyEnter})
		m.Handle(KeyEvent{Key: KeyEnter})

		if len(m.Selected()) != 1 {
			t.Fatalf("expected 1 selected, got %d", len(m.Selected()))
		}
		if len(rec.declined) != 1 || !errors.IsCode(rec.declined[0], errors.CodeDuplicateValue) {
			t.Errorf("expected one duplicate_value decline, got %v", rec.declined)
		}
	})

	t.Run("LimitHitIsDeclined", func(t *testing.T) {
		rec := &recorder{}
		m := New(fruitOptions(), WithMaxSelect(2), WithNotifications(rec.notifications()))
		m.Handle(FocusEvent{})
		m.Handle(KeyEvent{Key: KeyEnter})
		m.Handle(KeyEvent{Key: KeyDown})
		m.Handle(KeyEvent{Key: KeyEnter})
		m.Handle(KeyEvent{Key: KeyDown})
		m.Handle(KeyEvent{Key: KeyEnter})

		if len(m.Selected()) != 2 {
			t.Fatalf("expected selection capped at 2, got %d", len(m.Selected()))
		}
		found := false
		for _, err := range rec.declined {
			if errors.IsCode(err, errors.CodeLimitExceeded) {
				found = true
			}
		}
		if !found {
			t.Error("expected a limit_exceeded decline")
		}
	})

	t.Run("DisabledOptionIsDeclined", func(t *testing.T) {
		rec := &recorder{}
		opts := []domain.Option{{Label: "Ok", Value: "ok"}, {Label: "Off", Value: "off", Disabled: true}}
		m := New(opts, WithNotifications(rec.notifications()))
		m.Handle(FocusEvent{})
		m.Handle(KeyEvent{Key: KeyDown})
		m.Handle(KeyEvent{Key: KeyEnter})

		if len(m.Selected()) != 0 {
			t.Error("disabled option must not be selectable")
		}
		if len(rec.declined) != 1 || !errors.IsCode(rec.declined[0], errors.CodeOptionDisabled) {
			t.Errorf("expected option_disabled decline, got %v", rec.declined)
		}
	})
}

func TestClickOnCandidate(t *testing.T) {
	m := New(fruitOptions())
	m.Handle(FocusEvent{})
	m.Handle(ClickEvent{Target: ClickOption, Value: "🍍 Pineapple"})

	selected := m.Selected()
	if len(selected) != 1 || selected[0].Label != "🍍 Pineapple" {
		t.Fatalf("click must behave like Enter on that candidate, got %v", labels(selected))
	}
}

func TestScenarioB_RemoveLastSelected(t *testing.T) {
	m := New(fruitOptions())
	m.Handle(FocusEvent{})
	m.Handle(KeyEvent{Key: KeyEnter}) // Banana

	m.Handle(ClickEvent{Target: ClickRemove, Value: "🍌 Banana"})
	if len(m.Selected()) != 0 {
		t.Errorf("expected empty selection, got %v", labels(m.Selected()))
	}
}

func TestScenarioC_RemoveAll(t *testing.T) {
	rec := &recorder{}
	m := New(fruitOptions(), WithNotifications(rec.notifications()))
	m.Handle(FocusEvent{})
	m.Handle(KeyEvent{Key: KeyEnter})
	m.Handle(KeyEvent{Key: KeyDown})
	m.Handle(KeyEvent{Key: KeyEnter})
	if len(m.Selected()) != 2 {
		t.Fatalf("expected 2 selected, got %d", len(m.Selected()))
	}

	m.Handle(ClickEvent{Target: ClickRemoveAll})
	if len(m.Selected()) != 0 {
		t.Error("remove-all must empty the selection in one call")
	}
	if rec.removeAll != 1 {
		t.Errorf("expected one remove-all notification, got %d", rec.removeAll)
	}

	// Second invocation is a silent no-op.
	m.Handle(ClickEvent{Target: ClickRemoveAll})
	if rec.removeAll != 1 {
		t.Error("remove-all on an empty set must not notify again")
	}
}

func TestScenarioD_SelectOnlyCreation(t *testing.T) {
	rec := &recorder{}
	m := New(fruitOptions(), WithUserOptions(false), WithNotifications(rec.notifications()))
	m.Handle(FocusEvent{})
	typeText(m, "Durian")

	if prompt, ok := m.CreatePrompt(); !ok || prompt != "Durian" {
		t.Fatalf("expected create prompt for Durian, got %q/%v", prompt, ok)
	}

	m.Handle(KeyEvent{Key: KeyEnter})

	selected := m.Selected()
	if len(selected) != 1 || selected[0].Label != "Durian" {
		t.Fatalf("expected Durian selected, got %v", labels(selected))
	}
	if m.HasCandidate("Durian") {
		t.Error("select-only creation must not touch the candidate universe")
	}
	if len(rec.created) != 1 || rec.created[0].Label != "Durian" {
		t.Errorf("expected option-created notification for Durian, got %v", rec.created)
	}
}

func TestScenarioE_AppendCreationSurvivesDeselect(t *testing.T) {
	m := New(fruitOptions(), WithUserOptions(true))
	m.Handle(FocusEvent{})
	typeText(m, "Miracle Berry")
	m.Handle(KeyEvent{Key: KeyEnter})

	if !m.HasCandidate("Miracle Berry") {
		t.Fatal("append mode must insert the created option into the universe")
	}

	m.Handle(ClickEvent{Target: ClickRemove, Value: "Miracle Berry"})
	if len(m.Selected()) != 0 {
		t.Fatal("expected empty selection after removal")
	}

	m.Handle(FocusEvent{})
	typeText(m, "Miracle Berry")
	view := m.View()
	if len(view) != 1 || view[0].Label != "Miracle Berry" {
		t.Errorf("created option must remain pickable, view = %v", labels(view))
	}
}

func TestCreationRefusals(t *testing.T) {
	t.Run("NotAllowedByDefault", func(t *testing.T) {
		m := New(fruitOptions())
		m.Handle(FocusEvent{})
		typeText(m, "Durian")
		m.Handle(KeyEvent{Key: KeyEnter})
		if len(m.Selected()) != 0 {
			t.Error("creation must be off by default")
		}
		if _, ok := m.CreatePrompt(); ok {
			t.Error("create prompt must not show when creation is disabled")
		}
	})

	t.Run("NoPromptWhileCandidatesMatch", func(t *testing.T) {
		m := New(fruitOptions(), WithUserOptions(false))
		m.Handle(FocusEvent{})
		typeText(m, "Pine")
		if _, ok := m.CreatePrompt(); ok {
			t.Error("create prompt only shows when no candidates match")
		}
	})
}

func TestScenarioF_SortSelected(t *testing.T) {
	frameworks := []domain.Option{
		domain.New("Svelte"),
		domain.New("Vue"),
		domain.New("React"),
	}
	m := New(frameworks, WithSortSelected(domain.ByLabel))
	m.Handle(FocusEvent{})

	pick := func(label string) {
		typeText(m, label)
		m.Handle(KeyEvent{Key: KeyEnter})
	}
	pick("Svelte")
	pick("Vue")

	// Order must be fully sorted immediately after the third add.
	pick("React")
	got := labels(m.Selected())
	want := []string{"React", "Svelte", "Vue"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v immediately after third add, got %v", want, got)
		}
	}
}

func TestExcludeSelectedConsumesFromList(t *testing.T) {
	m := New(fruitOptions(), WithExcludeSelected())
	m.Handle(FocusEvent{})
	m.Handle(KeyEvent{Key: KeyEnter}) // Banana

	for _, opt := range m.View() {
		if opt.Label == "🍌 Banana" {
			t.Error("selected candidate must be omitted from the view")
		}
	}

	m.Handle(ClickEvent{Target: ClickRemove, Value: "🍌 Banana"})
	if len(m.View()) != 3 {
		t.Error("removed candidate must reappear in the view")
	}
}

func TestDisabledControlFiresNoTransitions(t *testing.T) {
	m := New(fruitOptions(), WithDisabled())
	m.Handle(FocusEvent{})
	if m.IsOpen() {
		t.Error("disabled control must not open")
	}
	m.Handle(InputEvent{Text: "Ban"})
	if m.Query() != "" {
		t.Error("disabled control must not accept input")
	}
}

func TestRestore(t *testing.T) {
	t.Run("SeedsSelection", func(t *testing.T) {
		m := New(fruitOptions())
		err := m.Restore([]domain.Option{domain.New("🍌 Banana")})
		if err != nil {
			t.Fatalf("restore failed: %v", err)
		}
		if len(m.Selected()) != 1 {
			t.Error("expected restored selection")
		}
	})

	t.Run("InvalidRestoreLeavesPriorState", func(t *testing.T) {
		m := New(fruitOptions(), WithMaxSelect(1))
		err := m.Restore([]domain.Option{domain.New("A"), domain.New("B")})
		if !errors.IsCode(err, errors.CodeInvalidRestore) {
			t.Fatalf("expected invalid_restore, got %v", err)
		}
		if len(m.Selected()) != 0 {
			t.Error("failed restore must leave the selection untouched")
		}
	})
}

func TestOpenAndActiveNotifications(t *testing.T) {
	rec := &recorder{}
	m := New(fruitOptions(), WithNotifications(rec.notifications()))

	m.Handle(FocusEvent{})
	m.Handle(KeyEvent{Key: KeyDown})
	m.Handle(KeyEvent{Key: KeyTab})

	if len(rec.opens) != 2 || rec.opens[0] != true || rec.opens[1] != false {
		t.Errorf("expected open-state notifications [true false], got %v", rec.opens)
	}
	// 0 on open, 1 after the arrow, sentinel after close.
	want := []int{0, 1, NoActive}
	if len(rec.actives) != len(want) {
		t.Fatalf("expected active notifications %v, got %v", want, rec.actives)
	}
	for i := range want {
		if rec.actives[i] != want[i] {
			t.Fatalf("expected active notifications %v, got %v", want, rec.actives)
		}
	}
}

func TestClosedDropdownReopens(t *testing.T) {
	t.Run("OnTyping", func(t *testing.T) {
		m := New(fruitOptions())
		m.Handle(FocusEvent{})
		m.Handle(KeyEvent{Key: KeyEscape})

		typeText(m, "Ban")
		if !m.IsOpen() {
			t.Error("typing must reopen the dropdown")
		}
		if got := labels(m.View()); len(got) != 1 || got[0] != "🍌 Banana" {
			t.Errorf("expected filtered view after reopen, got %v", got)
		}
	})

	t.Run("OnArrowDown", func(t *testing.T) {
		m := New(fruitOptions())
		m.Handle(FocusEvent{})
		m.Handle(KeyEvent{Key: KeyEscape})

		m.Handle(KeyEvent{Key: KeyDown})
		if !m.IsOpen() {
			t.Error("arrow down must reopen the dropdown")
		}
		if m.ActiveIndex() != 0 {
			t.Errorf("expected cursor on first row after reopen, got %d", m.ActiveIndex())
		}
	})
}
