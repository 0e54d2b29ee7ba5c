// Package registry maps game IDs to factories. Game packages register
// themselves from init, so the platform and CLI only need a blank import.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/beamgrid/beamgrid/internal/core"
)

// ErrUnknownGame is returned by Create for an unregistered ID.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is a simulation driven one fixed tick at a time. Games never touch
// the terminal, storage or audio; they report what they need through the
// intents and sounds in each StepResult.
type Game interface {
	// ID is the stable identifier used by the CLI and for storage keys.
	ID() string
	Title() string

	// Reset starts over with the given screen size, pacing and progress.
	Reset(cfg core.RuntimeConfig)

	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
}

// Resizer is implemented by games that can follow a terminal resize
// without a Reset.
type Resizer interface {
	Resize(w, h int)
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory returns a fresh game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu    sync.RWMutex
	games = make(map[string]entry)
)

// Register adds a factory under id. Registering the same id twice panics.
func Register(id string, f Factory) {
	info := GameInfo{ID: id, Title: f().Title()}

	mu.Lock()
	defer mu.Unlock()
	if _, dup := games[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	games[id] = entry{info: info, factory: f}
}

func lookup(id string) (entry, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := games[id]
	return e, ok
}

// List returns every registered game ordered by ID.
func List() []GameInfo {
	mu.RLock()
	out := make([]GameInfo, 0, len(games))
	for _, e := range games {
		out = append(out, e.info)
	}
	mu.RUnlock()

	slices.SortFunc(out, func(a, b GameInfo) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Create builds a new instance of the game registered under id.
func Create(id string) (Game, error) {
	e, ok := lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := lookup(id)
	return ok
}
