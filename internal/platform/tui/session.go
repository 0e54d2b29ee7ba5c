package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/beamgrid/beamgrid/internal/audio"
	"github.com/beamgrid/beamgrid/internal/core"
	"github.com/beamgrid/beamgrid/internal/games/beam"
	"github.com/beamgrid/beamgrid/internal/games/beam/levels"
	"github.com/beamgrid/beamgrid/internal/registry"
	"github.com/beamgrid/beamgrid/internal/storage"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the full session flow: level select, game and
// best solves. It is the top-level model both locally and over SSH.
type SessionModel struct {
	store    *storage.Store
	audio    audio.Player
	config   core.RuntimeConfig
	username string
	levels   []levels.Level

	screen   sessionScreen
	menu     MenuModel
	game     *Model
	scores   *ScoreboardModel
	quitting bool
}

// NewSessionModel creates a session for username. Saved progress and the
// sound setting are read from store when it is available.
func NewSessionModel(store *storage.Store, player audio.Player, cfg core.RuntimeConfig, username string) SessionModel {
	if player == nil {
		player = audio.NewSilent(cfg.Sound)
	}
	if store != nil {
		if maxLevel, err := store.MaxLevel(beam.ID, username); err == nil {
			cfg.MaxLevel = maxLevel
		} else {
			log.Warn("cannot load progress", "player", username, "err", err)
		}
		if on, err := store.BoolSetting(SettingKey(username, SoundSetting), cfg.Sound); err == nil {
			cfg.Sound = on
		}
	}
	player.SetEnabled(cfg.Sound)

	lvls, err := beam.Levels().LoadAll()
	if err != nil {
		log.Error("cannot load levels", "err", err)
	}

	m := SessionModel{
		store:    store,
		audio:    player,
		config:   cfg,
		username: username,
		levels:   lvls,
	}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	return NewMenuModel(m.levels, m.store, m.config, beam.ID)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		scores := NewScoreboardModel(m.store, beam.ID, m.menu.items, m.config.ScreenW, m.config.ScreenH)
		m.scores = &scores
		m.screen = screenScores
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		game, err := registry.Create(beam.ID)
		if err != nil {
			log.Error("cannot create game", "err", err)
			return m, nil
		}
		cfg := m.config
		cfg.StartLevel = m.menu.Selected().Number
		model := NewModel(game, m.store, m.audio, cfg, m.username)
		m.game = &model
		m.screen = screenGame
		return m, m.game.Init()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = &game
	}

	switch {
	case m.game.Quitting():
		m.quitting = true
		return m, tea.Quit

	case m.game.BackToMenu():
		// The game's tea.Quit is dropped; the session keeps running.
		m.config.MaxLevel = m.game.MaxLevel()
		m.config.Sound = m.game.Sound()
		m.game = nil
		m.menu = m.newMenu()
		m.screen = screenMenu
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if scores, ok := next.(ScoreboardModel); ok {
		m.scores = &scores
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.scores.IsGoingBack():
		m.scores = nil
		m.menu = m.newMenu()
		m.screen = screenMenu
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// RunSession runs level select, games and best solves until the player
// quits.
func RunSession(store *storage.Store, player audio.Player, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(store, player, cfg, ""),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	return err
}
