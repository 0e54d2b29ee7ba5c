// Package beam provides the beam puzzle game: reflect a light beam onto
// every gem by sliding mirrors along their tracks.
package beam

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/beamgrid/beamgrid/internal/config"
	platformcore "github.com/beamgrid/beamgrid/internal/core"
	"github.com/beamgrid/beamgrid/internal/games/beam/core"
	"github.com/beamgrid/beamgrid/internal/games/beam/levels"
	"github.com/beamgrid/beamgrid/internal/registry"
)

// ID is the registry and storage identifier of the game.
const ID = "beam"

// page is the screen the game is showing.
type page int

const (
	pageIntro page = iota
	pagePlaying
	pageSolution
	pageMenu
	pageSettings
	pageFinished
	pageError
)

// Menu entries, in display order.
var menuItems = []string{"Continue", "Settings", "Level Select", "Exit"}

const (
	menuContinue = iota
	menuSettings
	menuLevelSelect
	menuExit
)

// Game implements the beam puzzle.
type Game struct {
	cfg    config.BeamConfig
	loader *levels.Loader

	numbers     []int // playable level numbers in order
	level       levels.Level
	grid        *core.Grid
	sim         *core.Simulator
	drag        *core.DragController
	tickSeconds float64

	clock     platformcore.PageClock
	page      page
	underMenu page // page the menu was opened over
	menuIndex int
	setIndex  int
	loadErr   string

	// Status
	count    int // gems lit by the last beam update
	moves    int
	playTime float64 // seconds spent on the playing page
	score    int
	sound    bool
	hint     bool

	// Pointer and keyboard cursor
	hover    core.Coord
	hoverOK  bool
	cursor   core.Coord
	keyDrag  bool // the held piece was grabbed with the keyboard
	keyPoint core.Vec2

	// Screen dimensions
	screenW  int
	screenH  int
	layout   layout
	tooSmall bool
}

// Package-level defaults used by the registry factory.
var (
	defaultConfig = config.DefaultBeamConfig()
	defaultLoader = levels.Embedded()
)

// Configure sets the configuration and level source for games created by
// the registry. A nil loader keeps the embedded levels.
func Configure(cfg config.BeamConfig, loader *levels.Loader) {
	defaultConfig = cfg
	if loader != nil {
		defaultLoader = loader
	}
}

// Levels returns the level source used by registry-created games.
func Levels() *levels.Loader {
	return defaultLoader
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New(defaultConfig, defaultLoader)
	})
}

// New creates a beam game reading levels from loader.
func New(cfg config.BeamConfig, loader *levels.Loader) *Game {
	return &Game{
		cfg:    cfg,
		loader: loader,
		sound:  cfg.Audio.Enabled,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Beam"
}

// Reset loads the starting level. StartLevel wins over MaxLevel; both are
// clamped to the levels that exist.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.tickSeconds = cfg.TickSeconds()
	g.clock = platformcore.NewPageClock(cfg.TickRate)
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.sound = cfg.Sound
	g.score = 0
	g.loadErr = ""

	nums, err := g.loader.Numbers()
	if err != nil || len(nums) == 0 {
		log.Error("no playable levels", "err", err)
		g.fail("No levels found")
		return
	}
	g.numbers = nums

	start := cfg.StartLevel
	if start <= 0 {
		start = cfg.MaxLevel
	}
	g.openLevel(g.clampLevel(start))
}

// clampLevel returns n, or the closest existing level not above it.
func (g *Game) clampLevel(n int) int {
	best := g.numbers[0]
	for _, num := range g.numbers {
		if num <= n {
			best = num
		}
	}
	return best
}

// nextLevel returns the level after the current one.
func (g *Game) nextLevel() (int, bool) {
	for _, num := range g.numbers {
		if num > g.level.Number {
			return num, true
		}
	}
	return 0, false
}

// openLevel loads level n and starts its intro.
func (g *Game) openLevel(n int) {
	lvl, err := g.loader.LoadNumber(n)
	if err != nil {
		log.Error("cannot load level", "number", n, "err", err)
		g.fail(fmt.Sprintf("Cannot load level %d", n))
		return
	}
	log.Debug("level loaded", "number", lvl.Number, "name", lvl.Name, "size", fmt.Sprintf("%dx%d", lvl.Grid.W, lvl.Grid.H))

	g.level = lvl
	g.grid = lvl.Grid
	g.sim = core.NewSimulator(g.grid)
	g.sim.PauseSeconds = g.cfg.Simulation.PauseSeconds
	g.sim.GemPunch = g.cfg.Effects.GemPunch
	g.drag = core.NewDragController(g.grid)
	g.drag.CellSize = g.cfg.Drag.CellSize
	g.drag.SubSteps = g.cfg.Drag.SubSteps

	g.count = 0
	g.moves = 0
	g.playTime = 0
	g.hint = false
	g.hoverOK = false
	g.keyDrag = false
	g.cursor = g.firstMovable()
	g.menuIndex = 0

	g.grid.TileMovableEffect(core.Hide())
	g.clock.Enter()
	g.page = pageIntro
	g.calculateLayout()
}

// firstMovable returns the first movable piece, for the keyboard cursor.
func (g *Game) firstMovable() core.Coord {
	if cs := g.grid.Find(core.Tile.IsMovable); len(cs) > 0 {
		return cs[0]
	}
	return core.C(0, 0)
}

func (g *Game) fail(msg string) {
	g.loadErr = msg
	g.page = pageError
	g.grid = nil
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	var res platformcore.StepResult
	g.clock.Tick()

	switch g.page {
	case pageIntro:
		g.stepIntro(in)
	case pagePlaying:
		g.stepPlaying(in, &res)
	case pageSolution:
		g.stepSolution(&res)
	case pageMenu:
		g.stepMenu(in, &res)
	case pageSettings:
		g.stepSettings(in, &res)
	case pageFinished, pageError:
		switch {
		case in.Has(platformcore.ActionRestart) && g.page == pageFinished:
			g.openLevel(g.numbers[0])
			res.Emit(platformcore.OpenLevel(g.level.Number))
		case in.Has(platformcore.ActionConfirm), in.Has(platformcore.ActionBack):
			res.Emit(platformcore.Intent{Kind: platformcore.IntentBack})
		}
	}

	res.State = g.State()
	return res
}

// stepIntro traces the beam with the pieces hidden, then fades them in.
func (g *Game) stepIntro(in platformcore.InputFrame) {
	if g.openMenu(in) {
		return
	}
	now := g.clock.Elapsed()
	g.count = g.sim.Update(g.cfg.Simulation.PlaySteps, now)
	if now < g.cfg.Timing.IntroSeconds {
		return
	}
	g.grid.TileMovableEffect(core.SizedFadeIn(now, g.cfg.Timing.FadeInScale, g.cfg.Timing.FadeInSeconds))
	g.page = pagePlaying
}

// stepSolution replays the beam over the solved grid, then moves on.
func (g *Game) stepSolution(res *platformcore.StepResult) {
	now := g.clock.Elapsed()
	steps := int(now / g.cfg.Simulation.SolutionStepSeconds)
	count := g.sim.Update(steps, now)
	if count > g.count {
		res.Play(platformcore.SoundGemSolved)
	}
	g.count = count

	if g.fade() < 1 {
		return
	}

	next, ok := g.nextLevel()
	if !ok {
		g.page = pageFinished
		return
	}
	g.openLevel(next)
	res.Emit(platformcore.OpenLevel(next))
}

// fade is the solution fade-out progress in [0,1].
func (g *Game) fade() float64 {
	if g.page != pageSolution {
		return 0
	}
	t := g.clock.Elapsed() - g.cfg.Timing.SolutionSeconds
	if t <= 0 {
		return 0
	}
	return platformcore.Clamp(t*g.cfg.Timing.FadeSpeed, 0, 1)
}

// openMenu opens the in-game menu on Back or Pause.
func (g *Game) openMenu(in platformcore.InputFrame) bool {
	if !in.Has(platformcore.ActionBack) && !in.Has(platformcore.ActionPause) {
		return false
	}
	g.releaseHeld()
	g.underMenu = g.page
	g.page = pageMenu
	g.menuIndex = menuContinue
	g.clock.Suspend()
	return true
}

func (g *Game) stepMenu(in platformcore.InputFrame, res *platformcore.StepResult) {
	switch {
	case in.Has(platformcore.ActionUp):
		g.menuIndex = (g.menuIndex + len(menuItems) - 1) % len(menuItems)
	case in.Has(platformcore.ActionDown):
		g.menuIndex = (g.menuIndex + 1) % len(menuItems)
	case in.Has(platformcore.ActionBack), in.Has(platformcore.ActionPause):
		g.closeMenu()
	case in.Has(platformcore.ActionConfirm), in.Has(platformcore.ActionGrab):
		switch g.menuIndex {
		case menuContinue:
			g.closeMenu()
		case menuSettings:
			g.page = pageSettings
			g.setIndex = 0
		case menuLevelSelect:
			res.Emit(platformcore.Intent{Kind: platformcore.IntentBack})
		case menuExit:
			res.Emit(platformcore.Intent{Kind: platformcore.IntentExit})
		}
	}
}

func (g *Game) closeMenu() {
	g.page = g.underMenu
	g.clock.Resume()
}

// Settings entries: sound toggle and back.
const settingsItems = 2

func (g *Game) stepSettings(in platformcore.InputFrame, res *platformcore.StepResult) {
	switch {
	case in.Has(platformcore.ActionUp), in.Has(platformcore.ActionDown):
		g.setIndex = (g.setIndex + 1) % settingsItems
	case in.Has(platformcore.ActionBack):
		g.page = pageMenu
	case in.Has(platformcore.ActionConfirm), in.Has(platformcore.ActionGrab),
		in.Has(platformcore.ActionLeft), in.Has(platformcore.ActionRight):
		if g.setIndex == 0 {
			g.sound = !g.sound
			res.Emit(platformcore.SetSound(g.sound))
		} else if in.Has(platformcore.ActionConfirm) || in.Has(platformcore.ActionGrab) {
			g.page = pageMenu
		}
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:    g.score,
		Level:    g.level.Number,
		GameOver: g.page == pageFinished || g.page == pageError,
		Paused:   g.page == pageMenu || g.page == pageSettings,
	}
}

// Resize adapts the layout to a new screen size.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.calculateLayout()
}

// Level returns the level on screen.
func (g *Game) Level() levels.Level {
	return g.level
}

// Grid returns the live grid, or nil when no level is loaded.
func (g *Game) Grid() *core.Grid {
	return g.grid
}
