package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/beamgrid/beamgrid/internal/core"
	beamcore "github.com/beamgrid/beamgrid/internal/games/beam/core"
	"github.com/beamgrid/beamgrid/internal/games/beam/levels"
	"github.com/beamgrid/beamgrid/internal/storage"
)

// LevelItem is one row of the level select menu.
type LevelItem struct {
	Number int
	Name   string
	Locked bool
	Best   string // fastest solve, empty when never solved
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuCursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuLockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	menuBestStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	menuBackdropStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	menuHelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// MenuModel is the Bubble Tea model for level select.
type MenuModel struct {
	items          []LevelItem
	backdrop       string
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *LevelItem
	openScoreboard bool
}

// NewMenuModel builds level select over lvls. Levels above cfg.MaxLevel
// are listed but locked. The cursor starts on the highest open level.
func NewMenuModel(lvls []levels.Level, store *storage.Store, cfg core.RuntimeConfig, gameID string) MenuModel {
	best := make(map[int]storage.LevelSummary)
	if store != nil {
		sums, err := store.LevelSummaries(gameID)
		if err != nil {
			log.Warn("cannot load level summaries", "err", err)
		}
		for _, s := range sums {
			best[s.Level] = s
		}
	}

	m := MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	for _, lvl := range lvls {
		if !lvl.Playable() {
			if lvl.Grid != nil {
				m.backdrop = beamcore.RenderASCII(lvl.Grid)
			}
			continue
		}
		item := LevelItem{
			Number: lvl.Number,
			Name:   lvl.Name,
			Locked: lvl.Number > cfg.MaxLevel,
		}
		if s, ok := best[lvl.Number]; ok {
			item.Best = fmt.Sprintf("%.1fs / %d moves", s.BestSeconds, s.FewestMoves)
		}
		if !item.Locked {
			m.cursor = len(m.items)
		}
		m.items = append(m.items, item)
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 && !m.items[m.cursor].Locked {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("B E A M G R I D"), m.width))
	b.WriteString("\n\n")

	if m.backdrop != "" && m.height >= len(m.items)+20 {
		for _, line := range strings.Split(strings.TrimRight(m.backdrop, "\n"), "\n") {
			b.WriteString(centerText(menuBackdropStyle.Render(line), m.width))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(centerText("Select a level", m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(menuLockedStyle.Render("No levels found"), m.width))
		b.WriteString("\n")
	}
	for i, item := range m.items {
		b.WriteString(centerText(m.renderItem(i, item), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "Up/Down: Navigate  |  Enter: Play  |  Tab: Best solves  |  Q: Quit"
	b.WriteString(centerText(menuHelpStyle.Render(help), m.width))
	b.WriteString("\n")
	return b.String()
}

func (m MenuModel) renderItem(i int, item LevelItem) string {
	label := fmt.Sprintf("%2d  %-24s", item.Number, item.Name)
	if item.Locked {
		return menuLockedStyle.Render("   " + label + "  locked")
	}
	best := ""
	if item.Best != "" {
		best = "  " + menuBestStyle.Render(item.Best)
	}
	if i == m.cursor {
		return menuCursorStyle.Render(" > "+label) + best
	}
	return "   " + label + best
}

// Selected returns the selected level, or nil if none selected.
func (m MenuModel) Selected() *LevelItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within width, measuring the visible width so
// styled strings line up.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
