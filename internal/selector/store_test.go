package selector

import (
	"testing"

	"multiselect/internal/domain"
)

func fruitOptions() []domain.Option {
	return []domain.Option{
		domain.New("🍌 Banana"),
		domain.New("🍍 Pineapple"),
		domain.New("🍇 Grapes"),
	}
}

func TestStoreFilter(t *testing.T) {
	t.Run("EmptyQueryMatchesAll", func(t *testing.T) {
		s := NewStore(fruitOptions())
		view := s.Filter("", nil)
		if len(view) != 3 {
			t.Fatalf("expected 3 candidates, got %d", len(view))
		}
	})

	t.Run("SoundnessAndCompleteness", func(t *testing.T) {
		s := NewStore(fruitOptions())
		query := "an"
		view := s.Filter(query, nil)

		inView := make(map[string]bool)
		for _, opt := range view {
			inView[opt.Key()] = true
			if !s.Matcher()(query, opt.Label) {
				t.Errorf("view contains non-matching option %q", opt.Label)
			}
		}
		for _, opt := range s.Options() {
			if !inView[opt.Key()] && s.Matcher()(query, opt.Label) {
				t.Errorf("matching option %q missing from view", opt.Label)
			}
		}
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		s := NewStore(fruitOptions())
		view := s.Filter("PINEAPPLE", nil)
		if len(view) != 1 || view[0].Label != "🍍 Pineapple" {
			t.Fatalf("expected exactly Pineapple, got %v", view)
		}
	})

	t.Run("ExcludePredicate", func(t *testing.T) {
		s := NewStore(fruitOptions())
		view := s.Filter("", func(value string) bool {
			return value == "🍌 Banana"
		})
		if len(view) != 2 {
			t.Fatalf("expected 2 candidates after exclusion, got %d", len(view))
		}
		for _, opt := range view {
			if opt.Key() == "🍌 Banana" {
				t.Error("excluded option present in view")
			}
		}
	})

	t.Run("PreservesUniverseOrder", func(t *testing.T) {
		s := NewStore(fruitOptions())
		view := s.Filter("", nil)
		want := []string{"🍌 Banana", "🍍 Pineapple", "🍇 Grapes"}
		for i, label := range want {
			if view[i].Label != label {
				t.Fatalf("expected %q at %d, got %q", label, i, view[i].Label)
			}
		}
	})

	t.Run("ComparatorResortsView", func(t *testing.T) {
		s := NewStore([]domain.Option{
			domain.New("Vue"),
			domain.New("react"),
			domain.New("Svelte"),
		})
		s.SetComparator(domain.ByLabel)
		view := s.Filter("", nil)
		want := []string{"react", "Svelte", "Vue"}
		for i, label := range want {
			if view[i].Label != label {
				t.Fatalf("expected sorted view %v, got index %d = %q", want, i, view[i].Label)
			}
		}
	})
}

func TestStoreInsert(t *testing.T) {
	t.Run("Appends", func(t *testing.T) {
		s := NewStore(fruitOptions())
		if !s.Insert(domain.New("Durian")) {
			t.Fatal("expected insert to succeed")
		}
		opts := s.Options()
		if opts[len(opts)-1].Label != "Durian" {
			t.Error("expected new option appended at the end")
		}
	})

	t.Run("IdempotentOnDuplicateValue", func(t *testing.T) {
		s := NewStore(fruitOptions())
		first := domain.NewWithValue("Banana (original)", "b")
		second := domain.NewWithValue("Banana (imposter)", "b")
		if !s.Insert(first) {
			t.Fatal("first insert should succeed")
		}
		if s.Insert(second) {
			t.Error("duplicate value insert should be a no-op")
		}
		got, ok := s.Lookup("b")
		if !ok || got.Label != "Banana (original)" {
			t.Error("first write should win on duplicate insert")
		}
	})

	t.Run("ConstructorDeduplicates", func(t *testing.T) {
		s := NewStore([]domain.Option{domain.New("A"), domain.New("A"), domain.New("B")})
		if s.Len() != 2 {
			t.Errorf("expected 2 unique options, got %d", s.Len())
		}
	})
}

func TestStoreHasExact(t *testing.T) {
	s := NewStore(fruitOptions())
	if !s.HasExact("🍌 banana") {
		t.Error("expected case-insensitive exact label match")
	}
	if s.HasExact("Banana") {
		t.Error("partial label should not count as exact")
	}
}
