// Package registry provides a global registry for board generation profiles.
// Profiles register themselves in init() functions, allowing the CLI and the
// tables to deal boards by name without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
)

// Profile is a named recipe for dealing boards.
type Profile struct {
	// ID is a unique identifier (e.g., "classic", "spiral").
	// Used for CLI commands and score storage.
	ID string

	// Title is a human-readable name for display.
	Title string

	Settings    core.GenerationSettings
	Constraints core.Constraints
}

// ProfileInfo contains metadata about a registered profile.
type ProfileInfo struct {
	ID    string
	Title string
}

// ErrUnknownProfile is returned by Create for an unregistered ID.
var ErrUnknownProfile = errors.New("registry: unknown profile")

// Factory returns a fresh profile value.
type Factory func() Profile

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a profile factory to the registry.
// Typically called from an init() function.
// Panics on an empty ID, an ID containing a colon (reserved for level
// profiles) or an ID that is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if id == "" || strings.Contains(id, ":") {
		panic(fmt.Sprintf("registry: invalid profile id %q", id))
	}
	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: profile %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title
}

// List returns information about all registered profiles, sorted by ID.
func List() []ProfileInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ProfileInfo, 0, len(factories))
	for id := range factories {
		result = append(result, ProfileInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	slices.SortFunc(result, func(a, b ProfileInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

// Create returns the profile registered under id.
// Returns an error if the profile ID is not registered.
func Create(id string) (Profile, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return Profile{}, fmt.Errorf("%w %q", ErrUnknownProfile, id)
	}

	p := f()
	p.ID = id
	return p, nil
}

// Exists checks if a profile with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
