package theme

import (
	"sort"
	"sync"
)

var registry = &themeRegistry{
	themes: make(map[string]Theme),
}

type themeRegistry struct {
	mu      sync.RWMutex
	themes  map[string]Theme
	name    string
	current Theme
}

// Register adds a theme to the registry.
// The first registered theme becomes the default.
func Register(name string, t Theme) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.themes[name] = t
	if registry.current == nil {
		registry.name = name
		registry.current = t
	}
}

// Set switches to a registered theme by name.
// Returns true if the theme was found and set.
func Set(name string) bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	t, ok := registry.themes[name]
	if !ok {
		return false
	}
	registry.name = name
	registry.current = t
	return true
}

// Current returns the active theme.
func Current() Theme {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.current
}

// CurrentName returns the name of the active theme.
func CurrentName() string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.name
}

// Available returns all registered theme names in sorted order.
func Available() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.sortedNames()
}

// Cycle switches to the next theme in the sorted list and
// returns the name of the new active theme.
func Cycle() string {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	names := registry.sortedNames()
	if len(names) == 0 {
		return ""
	}

	idx := 0
	for i, name := range names {
		if name == registry.name {
			idx = i
			break
		}
	}
	next := names[(idx+1)%len(names)]
	registry.name = next
	registry.current = registry.themes[next]
	return next
}

func (r *themeRegistry) sortedNames() []string {
	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
