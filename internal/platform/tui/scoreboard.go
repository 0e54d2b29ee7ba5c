package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/beamgrid/beamgrid/internal/storage"
)

const (
	minWidthForSidebar = 80 // narrower terminals get level tabs instead
	sidebarWidth       = 24
	maxSolves          = 100
)

// ScoreboardKeyMap defines the key bindings for the best solves screen.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		NextLevel: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next level")),
		PrevLevel: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←/S-tab", "prev level")),
		Back:      key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	boardTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardPanelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardActiveStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardMutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardSummaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// ScoreboardModel shows the best solves of each level.
type ScoreboardModel struct {
	gameID      string
	levels      []LevelItem
	levelCursor int
	store       *storage.Store
	solves      []storage.Solve
	summaries   map[int]storage.LevelSummary
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
}

// NewScoreboardModel creates the best solves screen for the given levels.
func NewScoreboardModel(store *storage.Store, gameID string, lvls []LevelItem, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		gameID:    gameID,
		levels:    lvls,
		store:     store,
		summaries: make(map[int]storage.LevelSummary),
		keys:      DefaultScoreboardKeyMap(),
		help:      help.New(),
		width:     width,
		height:    height,
	}
	if store != nil {
		sums, err := store.LevelSummaries(gameID)
		if err != nil {
			log.Warn("cannot load level summaries", "err", err)
		}
		for _, s := range sums {
			m.summaries[s.Level] = s
		}
	}
	m.table = m.createTable()
	m.loadSolves()
	return m
}

func (m ScoreboardModel) sidebar() bool {
	return m.width >= minWidthForSidebar
}

func (m ScoreboardModel) createTable() table.Model {
	avail := m.width - 6
	if m.sidebar() {
		avail -= sidebarWidth + 4
	}
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 12},
		{Title: "Time", Width: 8},
		{Title: "Moves", Width: 6},
		{Title: "Date", Width: 13},
	}
	if extra := avail - 44 - 2*len(columns); extra > 0 {
		columns[1].Width += min(extra, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *ScoreboardModel) currentLevel() (LevelItem, bool) {
	if len(m.levels) == 0 {
		return LevelItem{}, false
	}
	return m.levels[m.levelCursor], true
}

func (m *ScoreboardModel) loadSolves() {
	m.solves = nil
	if lvl, ok := m.currentLevel(); ok && m.store != nil {
		solves, err := m.store.BestSolves(m.gameID, lvl.Number, maxSolves)
		if err != nil {
			log.Warn("cannot load solves", "level", lvl.Number, "err", err)
		}
		m.solves = solves
	}

	rows := make([]table.Row, len(m.solves))
	for i, s := range m.solves {
		player := s.Player
		if player == "" {
			player = "local"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			player,
			fmt.Sprintf("%.1fs", s.Seconds),
			fmt.Sprintf("%d", s.Moves),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) moveLevel(delta int) {
	if len(m.levels) == 0 {
		return
	}
	m.levelCursor = (m.levelCursor + delta + len(m.levels)) % len(m.levels)
	m.loadSolves()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextLevel):
			m.moveLevel(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevLevel):
			m.moveLevel(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.loadSolves()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "BEST SOLVES"
	if lvl, ok := m.currentLevel(); ok {
		title = fmt.Sprintf("BEST SOLVES - Level %d: %s", lvl.Number, lvl.Name)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(boardSummaryStyle.Render(m.summaryLine()), m.width))
	b.WriteString("\n\n")

	body := boardPanelStyle.Render(m.tableContent())
	if m.sidebar() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", body))
	} else {
		b.WriteString(centerText(m.renderTabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(body)
	}

	b.WriteString("\n")
	b.WriteString(boardMutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) summaryLine() string {
	lvl, ok := m.currentLevel()
	if !ok {
		return ""
	}
	s, ok := m.summaries[lvl.Number]
	if !ok {
		return "never solved"
	}
	return fmt.Sprintf("%d solves | best %.1fs | fewest %d moves | last %s",
		s.Solves, s.BestSeconds, s.FewestMoves, s.LastSolved.Format("Jan 02"))
}

func (m ScoreboardModel) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString("Levels\n")
	sb.WriteString(strings.Repeat("─", sidebarWidth-4))
	sb.WriteString("\n")

	for i, lvl := range m.levels {
		name := fmt.Sprintf("%2d %s", lvl.Number, lvl.Name)
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		switch {
		case i == m.levelCursor:
			sb.WriteString(boardActiveStyle.Render("> " + name))
		case lvl.Locked:
			sb.WriteString(boardMutedStyle.Render("  " + name))
		default:
			sb.WriteString("  " + name)
		}
		sb.WriteString("\n")
	}
	return boardPanelStyle.Width(sidebarWidth).Render(sb.String())
}

// renderTabs shows the neighbours of the current level on narrow screens.
func (m ScoreboardModel) renderTabs() string {
	if len(m.levels) == 0 {
		return ""
	}
	var tabs []string
	for d := -1; d <= 1; d++ {
		i := m.levelCursor + d
		if i < 0 || i >= len(m.levels) {
			continue
		}
		label := fmt.Sprintf("%d", m.levels[i].Number)
		if d == 0 {
			tabs = append(tabs, boardTabStyle.Render("Level "+label))
		} else {
			tabs = append(tabs, boardMutedStyle.Render(" "+label+" "))
		}
	}
	return "< " + strings.Join(tabs, " ") + " >"
}

func (m ScoreboardModel) tableContent() string {
	if len(m.solves) == 0 {
		return boardMutedStyle.Italic(true).Padding(2, 4).
			Render("No solves recorded yet.\nLight every gem to set a time!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
