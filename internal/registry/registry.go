// Package registry provides a global registry of gameplay modes.
// Modes register themselves in init() functions, allowing the CLI, the SSH
// server and the menus to discover them without hardcoded lists.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Mode describes one way to play: how many paddles share the field and
// which keys drive them.
type Mode struct {
	// ID is the CLI name (e.g., "classic", "duo"). Also used as the
	// history/storage key.
	ID string

	// Title is a human-readable name for display.
	Title string

	// Description is a one-line summary for `list`.
	Description string

	// Paddles is the number of paddles on the field.
	Paddles int
}

var (
	modes = make(map[string]Mode)
	mu    sync.RWMutex
)

// Register adds a mode to the registry.
// Typically called from an init() function.
// Panics if a mode with the same ID is already registered.
func Register(m Mode) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := modes[m.ID]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", m.ID))
	}
	if m.Paddles <= 0 {
		panic(fmt.Sprintf("registry: mode %q needs at least one paddle", m.ID))
	}

	modes[m.ID] = m
}

// List returns all registered modes, sorted by ID.
func List() []Mode {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Mode, 0, len(modes))
	for _, m := range modes {
		result = append(result, m)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get looks up a mode by its ID.
// Returns an error if the mode ID is not registered.
func Get(id string) (Mode, error) {
	mu.RLock()
	defer mu.RUnlock()

	m, ok := modes[id]
	if !ok {
		return Mode{}, fmt.Errorf("registry: unknown mode %q", id)
	}

	return m, nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := modes[id]
	return ok
}
