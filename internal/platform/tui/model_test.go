package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/beamgrid/beamgrid/internal/audio"
	"github.com/beamgrid/beamgrid/internal/core"
	"github.com/beamgrid/beamgrid/internal/storage"
)

// scriptedGame returns canned step results and records its input.
type scriptedGame struct {
	results []core.StepResult
	steps   int
	resets  int
	resized [2]int
	last    core.InputFrame
}

func (g *scriptedGame) ID() string    { return "beam" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) { g.resets++ }

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.last = in.Clone()
	defer func() { g.steps++ }()
	if g.steps < len(g.results) {
		return g.results[g.steps]
	}
	return core.StepResult{}
}

func (g *scriptedGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "scripted") }
func (g *scriptedGame) State() core.GameState   { return core.GameState{} }
func (g *scriptedGame) Resize(w, h int)         { g.resized = [2]int{w, h} }

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newScriptedModel(t *testing.T, store *storage.Store, player audio.Player, results ...core.StepResult) (Model, *scriptedGame) {
	t.Helper()
	game := &scriptedGame{results: results}
	m := NewModel(game, store, player, core.DefaultConfig(), "alice")
	m.Init()
	return m, game
}

func tick(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(TickMsg{})
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func TestModelProgressAndSolves(t *testing.T) {
	store := openStore(t)
	player := audio.NewSilent(true)

	m, _ := newScriptedModel(t, store, player,
		core.StepResult{
			Sounds:  []core.Sound{core.SoundGem},
			Intents: []core.Intent{core.Solved(1, 12.5, 4), core.OpenLevel(2)},
			State:   core.GameState{Score: 1},
		},
	)
	m, cmd := tick(t, m)
	if cmd == nil {
		t.Error("tick loop should continue")
	}

	if level, _ := store.MaxLevel("beam", "alice"); level != 2 {
		t.Errorf("progress not saved, got %d", level)
	}
	if m.MaxLevel() != 2 {
		t.Errorf("model should track max level, got %d", m.MaxLevel())
	}
	solves, _ := store.BestSolves("beam", 1, 10)
	if len(solves) != 1 || solves[0].Player != "alice" || solves[0].Moves != 4 || solves[0].Seconds != 12.5 {
		t.Errorf("solve not saved: %+v", solves)
	}
	if played := player.Played(); len(played) != 1 || played[0] != core.SoundGem {
		t.Errorf("sounds not forwarded: %v", played)
	}
}

func TestModelSoundSetting(t *testing.T) {
	store := openStore(t)
	player := audio.NewSilent(true)

	m, _ := newScriptedModel(t, store, player,
		core.StepResult{Intents: []core.Intent{core.SetSound(false)}},
		core.StepResult{Sounds: []core.Sound{core.SoundPing}},
	)
	m, _ = tick(t, m)
	m, _ = tick(t, m)

	if m.Sound() || player.Enabled() {
		t.Error("sound should be off")
	}
	if len(player.Played()) != 0 {
		t.Error("disabled player should not play")
	}
	if on, _ := store.BoolSetting(SettingKey("alice", SoundSetting), true); on {
		t.Error("sound setting should be stored per player")
	}
}

func TestModelBackSavesScore(t *testing.T) {
	store := openStore(t)

	m, _ := newScriptedModel(t, store, nil,
		core.StepResult{State: core.GameState{Score: 3}},
		core.StepResult{Intents: []core.Intent{{Kind: core.IntentBack}}, State: core.GameState{Score: 3}},
	)
	m, _ = tick(t, m)
	if m.BackToMenu() {
		t.Fatal("should still be playing")
	}
	m, cmd := tick(t, m)
	if !m.BackToMenu() || m.Quitting() {
		t.Errorf("back = %v, quitting = %v", m.BackToMenu(), m.Quitting())
	}
	if cmd == nil {
		t.Error("leaving should stop the program")
	}
	if high, _ := store.HighScore("beam"); high != 3 {
		t.Errorf("session score should be saved, got %d", high)
	}
}

func TestModelExitIntent(t *testing.T) {
	m, _ := newScriptedModel(t, nil, nil,
		core.StepResult{Intents: []core.Intent{{Kind: core.IntentExit}}},
	)
	m, _ = tick(t, m)
	if !m.Quitting() {
		t.Error("exit intent should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty when quitting")
	}
}

func TestModelInput(t *testing.T) {
	m, game := newScriptedModel(t, nil, nil)

	next, _ := m.Update(runeKey('d'))
	m = next.(Model)
	next, _ = m.Update(tea.MouseMsg{X: 5, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = next.(Model)
	next, _ = m.Update(tea.MouseMsg{X: 7, Y: 6, Action: tea.MouseActionMotion})
	m = next.(Model)
	m, _ = tick(t, m)

	if !game.last.Has(core.ActionRight) {
		t.Error("key should reach the game")
	}
	if len(game.last.Pointer) != 2 || game.last.Pointer[0].Kind != core.PointerPress || game.last.Pointer[1].X != 7 {
		t.Errorf("pointer events not forwarded in order: %+v", game.last.Pointer)
	}

	m, _ = tick(t, m)
	if !game.last.Empty() {
		t.Error("input should be cleared after each tick")
	}

	next, cmd := m.Update(runeKey('q'))
	if !next.(Model).Quitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func TestModelResize(t *testing.T) {
	m, game := newScriptedModel(t, nil, nil)
	resets := game.resets

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)
	if game.resized != [2]int{100, 40} {
		t.Errorf("Resize not called, got %v", game.resized)
	}
	if game.resets != resets {
		t.Error("resizable games should not be reset")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40 {
		t.Error("screen should follow the window")
	}
}

func TestSettingKey(t *testing.T) {
	if SettingKey("", "sound") != "sound" {
		t.Error("local player uses the bare key")
	}
	if SettingKey("bob", "sound") != "sound:bob" {
		t.Error("remote players get scoped keys")
	}
}
