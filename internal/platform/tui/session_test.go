package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/beamgrid/beamgrid/internal/audio"
	"github.com/beamgrid/beamgrid/internal/core"
)

func sessionConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.ScreenW = 80
	cfg.ScreenH = 30
	return cfg
}

func send(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	s, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return s
}

// press delivers a key and runs one tick so the game sees it.
func press(t *testing.T, m SessionModel, msg tea.KeyMsg) SessionModel {
	t.Helper()
	m = send(t, m, msg)
	return send(t, m, TickMsg{})
}

func TestSessionMenuListsLevels(t *testing.T) {
	m := NewSessionModel(nil, audio.NewSilent(false), sessionConfig(), "")

	if len(m.menu.items) < 2 {
		t.Fatalf("expected embedded levels, got %d", len(m.menu.items))
	}
	if m.menu.items[0].Locked || !m.menu.items[1].Locked {
		t.Error("only level 1 should be open for a new player")
	}
	if !strings.Contains(m.View(), "Select a level") {
		t.Error("session should start on level select")
	}

	// Locked levels cannot be chosen.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenMenu {
		t.Error("locked level should not start")
	}
}

func TestSessionPlayAndReturn(t *testing.T) {
	m := NewSessionModel(nil, audio.NewSilent(false), sessionConfig(), "")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.game == nil {
		t.Fatal("enter should start the selected level")
	}
	m = send(t, m, TickMsg{})
	if !strings.Contains(m.View(), "Level 1") {
		t.Error("game view should show the level")
	}

	// In-game menu: Level Select is the third entry.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.screen != screenMenu || m.game != nil {
		t.Fatalf("Level Select should return to the menu, screen = %d", m.screen)
	}
	if m.quitting {
		t.Error("returning to the menu should not quit the session")
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := NewSessionModel(nil, nil, sessionConfig(), "")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatal("tab should open best solves")
	}
	if !strings.Contains(m.View(), "BEST SOLVES - Level 1") {
		t.Errorf("unexpected scoreboard view:\n%s", m.View())
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.scores.levelCursor != 1 {
		t.Error("right should select the next level")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Error("esc should go back to level select")
	}

	next, cmd := m.Update(runeKey('q'))
	if !next.(SessionModel).quitting || cmd == nil {
		t.Error("q should quit the session")
	}
}

func TestSessionLoadsProgress(t *testing.T) {
	store := openStore(t)
	store.IncreaseMaxLevel("beam", "carol", 3)
	store.SetBoolSetting(SettingKey("carol", SoundSetting), false)

	player := audio.NewSilent(true)
	m := NewSessionModel(store, player, sessionConfig(), "carol")

	if m.config.MaxLevel != 3 {
		t.Errorf("max level = %d, expected 3", m.config.MaxLevel)
	}
	if player.Enabled() {
		t.Error("stored sound setting should apply to the player")
	}
	if m.menu.items[m.menu.cursor].Number != 3 {
		t.Errorf("cursor should start on the highest open level, got %d", m.menu.items[m.menu.cursor].Number)
	}
}
