package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/beamgrid/beamgrid/internal/audio"
	"github.com/beamgrid/beamgrid/internal/config"
	"github.com/beamgrid/beamgrid/internal/core"
	"github.com/beamgrid/beamgrid/internal/registry"
	"github.com/beamgrid/beamgrid/internal/storage"
)

// SoundSetting is the settings key holding the sound toggle.
const SoundSetting = "sound"

// SettingKey scopes a setting to a player. The local player uses the bare
// name.
func SettingKey(player, name string) string {
	if player == "" {
		return name
	}
	return name + ":" + player
}

// Model is the Bubble Tea model running one game. It owns the tick loop
// and carries out the intents and sounds each step produces.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	audio      audio.Player
	player     string
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	scoreSaved bool // session score is saved once, on leaving
}

// NewModel creates a model for game. store and player may be nil.
func NewModel(game registry.Game, store *storage.Store, player audio.Player, cfg core.RuntimeConfig, playerName string) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if player == nil {
		player = audio.NewSilent(cfg.Sound)
	}
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		audio:      player,
		player:     playerName,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if ev, ok := MapMouse(msg); ok {
			m.inputFrame.AddPointer(ev)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.leave()
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	m.apply(result)
	if m.quitting || m.backToMenu {
		m.leave()
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickRate)
}

// apply plays the step's sounds and carries out its intents.
func (m *Model) apply(res core.StepResult) {
	for _, s := range res.Sounds {
		m.audio.Play(s)
	}

	for _, in := range res.Intents {
		switch in.Kind {
		case core.IntentOpenLevel:
			if m.store == nil {
				m.config.MaxLevel = max(m.config.MaxLevel, in.Level)
				continue
			}
			maxLevel, err := m.store.IncreaseMaxLevel(m.game.ID(), m.player, in.Level)
			if err != nil {
				log.Warn("cannot save progress", "level", in.Level, "err", err)
				continue
			}
			m.config.MaxLevel = maxLevel

		case core.IntentSolved:
			if m.store == nil {
				continue
			}
			_, err := m.store.SaveSolve(storage.Solve{
				GameID:  m.game.ID(),
				Level:   in.Level,
				Player:  m.player,
				Seconds: in.Seconds,
				Moves:   in.Moves,
			})
			if err != nil {
				log.Warn("cannot save solve", "level", in.Level, "err", err)
			}

		case core.IntentSetSound:
			m.config.Sound = in.Sound
			m.audio.SetEnabled(in.Sound)
			if m.store != nil {
				if err := m.store.SetBoolSetting(SettingKey(m.player, SoundSetting), in.Sound); err != nil {
					log.Warn("cannot save sound setting", "err", err)
				}
			}

		case core.IntentExit:
			m.quitting = true

		case core.IntentBack:
			m.backToMenu = true
		}
	}
}

// leave saves the session score once.
func (m *Model) leave() {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true
	if m.store == nil || m.gameState.Score == 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
		log.Warn("cannot save score", "err", err)
	}
}

// saveScreenshot writes the current screen to ~/.beamgrid/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := config.UserPath("screenshots")
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn("cannot create screenshot directory", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		log.Warn("cannot save screenshot", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Quitting reports whether the player asked to exit the program.
func (m Model) Quitting() bool {
	return m.quitting
}

// BackToMenu reports whether the game asked to return to level select.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// MaxLevel returns the highest level opened, including this session.
func (m Model) MaxLevel() int {
	return m.config.MaxLevel
}

// Sound returns the current sound setting.
func (m Model) Sound() bool {
	return m.config.Sound
}

// Run plays game in the terminal until the player quits or leaves it.
func Run(game registry.Game, store *storage.Store, player audio.Player, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(game, store, player, cfg, ""),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // hover and drag need motion events
	)
	_, err := p.Run()
	return err
}
