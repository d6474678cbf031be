// Package registry provides a global registry for level factories.
// Levels register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Level is a fixed platform layout.
type Level struct {
	ID    string
	Title string

	// Platforms are immutable for the life of a session. Index 0 is the
	// ground; nothing spawns on it unless it is the only platform.
	Platforms []core.Rect

	// StartX and StartPlatform place the player: standing on
	// Platforms[StartPlatform] with its left edge at StartX.
	StartX        int
	StartPlatform int
}

// Validate checks that the level can host a session.
func (l Level) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("registry: level has no id")
	}
	if len(l.Platforms) == 0 {
		return fmt.Errorf("registry: level %q has no platforms", l.ID)
	}
	if l.StartPlatform < 0 || l.StartPlatform >= len(l.Platforms) {
		return fmt.Errorf("registry: level %q start platform %d out of range", l.ID, l.StartPlatform)
	}
	for i, p := range l.Platforms {
		if p.W <= 0 || p.H <= 0 {
			return fmt.Errorf("registry: level %q platform %d has empty size", l.ID, i)
		}
	}
	return nil
}

// StartRect returns where a w x h player stands at the start of the level.
func (l Level) StartRect(w, h int) core.Rect {
	p := l.Platforms[l.StartPlatform]
	return core.NewRect(l.StartX, p.Y-h, w, h)
}

// LevelInfo contains metadata about a registered level.
type LevelInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new copy of a level.
type Factory func() Level

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a level factory to the registry.
// Typically called from an init() function.
// Panics if a level with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: level %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title
}

// List returns information about all registered levels, sorted by ID.
func List() []LevelInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]LevelInfo, 0, len(factories))
	for id := range factories {
		result = append(result, LevelInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a level by its ID.
// Returns an error if the level ID is not registered.
func Create(id string) (Level, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return Level{}, fmt.Errorf("registry: unknown level %q", id)
	}

	lvl := f()
	// Callers get their own platform slice.
	lvl.Platforms = append([]core.Rect(nil), lvl.Platforms...)
	return lvl, nil
}

// Exists checks if a level with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
