package beam

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/beamgrid/beamgrid/internal/config"
	platformcore "github.com/beamgrid/beamgrid/internal/core"
	"github.com/beamgrid/beamgrid/internal/games/beam/core"
	"github.com/beamgrid/beamgrid/internal/games/beam/levels"
)

// Level 1 at 80x30 with 4x2 cells: the 7x5 grid starts at column 26, row 11.
const (
	originX = 26
	originY = 11
)

func testRuntime() platformcore.RuntimeConfig {
	return platformcore.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  30,
		TickRate: 60,
		MaxLevel: 1,
		Sound:    true,
	}
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := New(config.DefaultBeamConfig(), levels.Embedded())
	g.Reset(testRuntime())
	if g.page != pageIntro {
		t.Fatalf("expected intro after reset, got page %d (%s)", g.page, g.loadErr)
	}
	return g
}

// frame builds an input frame with the given actions.
func frame(actions ...platformcore.Action) platformcore.InputFrame {
	in := platformcore.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func pointer(kind platformcore.PointerKind, x, y int) platformcore.InputFrame {
	in := platformcore.NewInputFrame()
	in.AddPointer(platformcore.PointerEvent{Kind: kind, X: x, Y: y})
	return in
}

// hasRay reports whether any cell carries the beam.
func hasRay(g *core.Grid) bool {
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.Ray(x, y) != core.Empty {
				return true
			}
		}
	}
	return false
}

// skipIntro steps until the pieces are playable.
func skipIntro(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 1000 && g.page == pageIntro; i++ {
		g.Step(frame())
	}
	if g.page != pagePlaying {
		t.Fatalf("intro did not end, page %d", g.page)
	}
}

// placeSolution moves every movable piece to its solution cell.
func placeSolution(g *Game) {
	sol := g.grid.ApplySolution()
	for y := 0; y < g.grid.H; y++ {
		for x := 0; x < g.grid.W; x++ {
			g.grid.SetFront(x, y, sol.Front(x, y))
		}
	}
}

func hasSound(res []platformcore.StepResult, s platformcore.Sound) bool {
	for _, r := range res {
		for _, got := range r.Sounds {
			if got == s {
				return true
			}
		}
	}
	return false
}

func findIntent(res []platformcore.StepResult, kind platformcore.IntentKind) (platformcore.Intent, bool) {
	for _, r := range res {
		for _, in := range r.Intents {
			if in.Kind == kind {
				return in, true
			}
		}
	}
	return platformcore.Intent{}, false
}

func TestIntroHidesPiecesThenFadesIn(t *testing.T) {
	g := newTestGame(t)

	if k := g.grid.Effect(2, 2).Kind; k != core.EffectHide {
		t.Fatalf("movable piece should be hidden during intro, got %v", k)
	}

	for i := 0; i < 149; i++ {
		g.Step(frame())
	}
	if g.page != pageIntro {
		t.Fatalf("intro ended early at %.3fs", g.clock.Elapsed())
	}
	if !hasRay(g.grid) {
		t.Error("beam should be traced while the intro is shown")
	}

	g.Step(frame())
	if g.page != pagePlaying {
		t.Fatalf("expected playing after 2.5s, page %d", g.page)
	}
	eff := g.grid.Effect(2, 2)
	if eff.Kind != core.EffectSizedFadeIn || eff.StartScale != 3 {
		t.Errorf("expected SizedFadeIn with scale 3, got %+v", eff)
	}
	if g.grid.Effect(1, 1).Kind != core.EffectNone {
		t.Error("fixed tiles should not get the fade-in effect")
	}
}

func TestSolvingOpensNextLevel(t *testing.T) {
	g := newTestGame(t)
	skipIntro(t, g)
	placeSolution(g)

	var results []platformcore.StepResult
	for i := 0; i < 2000 && g.level.Number == 1; i++ {
		results = append(results, g.Step(frame()))
	}

	solved, ok := findIntent(results, platformcore.IntentSolved)
	if !ok {
		t.Fatal("expected a Solved intent")
	}
	if solved.Level != 1 || solved.Moves != 0 || solved.Seconds <= 0 {
		t.Errorf("unexpected Solved intent %v", solved)
	}
	if !hasSound(results, platformcore.SoundGem) {
		t.Error("lighting a gem while playing should play SoundGem")
	}
	if !hasSound(results, platformcore.SoundGemSolved) {
		t.Error("solution replay should play SoundGemSolved")
	}
	open, ok := findIntent(results, platformcore.IntentOpenLevel)
	if !ok || open.Level != 2 {
		t.Fatalf("expected OpenLevel(2), got %v", open)
	}

	st := g.State()
	if st.Level != 2 || st.Score != 1 {
		t.Errorf("state after solve = %+v", st)
	}
	if g.page != pageIntro {
		t.Errorf("next level should start with its intro, page %d", g.page)
	}
}

func TestSolutionReplayTiming(t *testing.T) {
	g := newTestGame(t)
	skipIntro(t, g)
	placeSolution(g)

	for i := 0; i < 100 && g.page == pagePlaying; i++ {
		g.Step(frame())
	}
	if g.page != pageSolution {
		t.Fatalf("expected solution page, got %d", g.page)
	}

	// The replay holds for the configured seconds before fading.
	for i := 0; i < 180; i++ {
		g.Step(frame())
	}
	if g.page != pageSolution || g.fade() != 0 {
		t.Fatalf("fade should start after 3s, page %d fade %.2f", g.page, g.fade())
	}
	if g.count != 1 {
		t.Errorf("replayed beam should light the gem, count %d", g.count)
	}

	for i := 0; i < 20; i++ {
		g.Step(frame())
	}
	if f := g.fade(); f <= 0 || f >= 1 {
		t.Errorf("expected partial fade, got %.2f", f)
	}
}

func TestKeyboardDrag(t *testing.T) {
	g := newTestGame(t)
	skipIntro(t, g)

	if g.cursor != core.C(2, 2) {
		t.Fatalf("cursor should start on the first movable piece, got %v", g.cursor)
	}

	g.Step(frame(platformcore.ActionGrab))
	if !g.drag.Active() || !g.keyDrag {
		t.Fatal("Grab should pick up the piece under the cursor")
	}

	g.Step(frame(platformcore.ActionLeft))
	if g.drag.Cell() != core.C(1, 2) {
		t.Fatalf("held piece should move one cell left, at %v", g.drag.Cell())
	}

	res := g.Step(frame(platformcore.ActionLeft))
	if g.drag.Cell() != core.C(1, 2) {
		t.Errorf("wall should stop the piece, at %v", g.drag.Cell())
	}
	if !hasSound([]platformcore.StepResult{res}, platformcore.SoundPing) {
		t.Error("blocked move should ping")
	}

	g.Step(frame(platformcore.ActionGrab))
	if g.drag.Active() {
		t.Fatal("second Grab should drop the piece")
	}
	if g.grid.Front(1, 2) != core.MovableTopRight || g.grid.Front(2, 2) != core.Empty {
		t.Error("piece was not dropped at its new cell")
	}
	if g.moves != 1 {
		t.Errorf("moves = %d, expected 1", g.moves)
	}

	// With nothing held the arrows only move the cursor.
	g.Step(frame(platformcore.ActionUp))
	if g.cursor != core.C(1, 1) || g.grid.Front(1, 2) != core.MovableTopRight {
		t.Errorf("cursor at %v after Up", g.cursor)
	}
}

func TestPointerDrag(t *testing.T) {
	g := newTestGame(t)
	skipIntro(t, g)

	// Cell (2,2) covers columns 34-37 and rows 15-16.
	g.Step(pointer(platformcore.PointerPress, originX+9, originY+4))
	if !g.drag.Active() || g.drag.Tile() != core.MovableTopRight {
		t.Fatal("press should grab the mirror")
	}

	// One column is 16 units; the cell changes only past half a cell.
	g.Step(pointer(platformcore.PointerMove, originX+11, originY+4))
	if g.drag.Cell() != core.C(2, 2) {
		t.Errorf("two columns should not commit a move, at %v", g.drag.Cell())
	}
	g.Step(pointer(platformcore.PointerMove, originX+13, originY+4))
	if g.drag.Cell() != core.C(3, 2) {
		t.Errorf("four columns should reach the next cell, at %v", g.drag.Cell())
	}

	g.Step(pointer(platformcore.PointerRelease, originX+13, originY+4))
	if g.drag.Active() || g.grid.Front(3, 2) != core.MovableTopRight {
		t.Error("release should drop the piece")
	}
	if g.moves != 1 {
		t.Errorf("moves = %d", g.moves)
	}

	// Pressing on a fixed tile grabs nothing.
	g.Step(pointer(platformcore.PointerPress, originX+5, originY+2))
	if g.drag.Active() {
		t.Error("the ray source is not movable")
	}
}

func TestHoverPunch(t *testing.T) {
	g := newTestGame(t)
	skipIntro(t, g)

	g.Step(pointer(platformcore.PointerMove, originX+9, originY+4))
	eff := g.grid.Effect(2, 2)
	if eff.Kind != core.EffectPunch || eff.Dir != core.V(5, 5) {
		t.Fatalf("hovering a piece should punch it, got %+v", eff)
	}
	start := eff.Start

	for i := 0; i < 10; i++ {
		g.Step(frame())
	}
	g.Step(pointer(platformcore.PointerMove, originX+10, originY+5))
	if g.grid.Effect(2, 2).Start != start {
		t.Error("moving within the same cell should not punch again")
	}

	g.Step(pointer(platformcore.PointerMove, originX+1, originY+4))
	g.Step(pointer(platformcore.PointerMove, originX+9, originY+4))
	if g.grid.Effect(2, 2).Start == start {
		t.Error("re-entering the cell should punch again")
	}
}

func TestMenuAndSettings(t *testing.T) {
	g := newTestGame(t)
	skipIntro(t, g)

	g.Step(frame(platformcore.ActionBack))
	if g.page != pageMenu || !g.State().Paused {
		t.Fatalf("Back should open the menu, page %d", g.page)
	}
	frozen := g.clock.Elapsed()
	for i := 0; i < 30; i++ {
		g.Step(frame())
	}
	if g.clock.Elapsed() != frozen {
		t.Error("page clock should be frozen while the menu is open")
	}

	g.Step(frame(platformcore.ActionDown))
	g.Step(frame(platformcore.ActionConfirm))
	if g.page != pageSettings {
		t.Fatalf("expected settings page, got %d", g.page)
	}
	res := g.Step(frame(platformcore.ActionConfirm))
	if len(res.Intents) != 1 || res.Intents[0] != platformcore.SetSound(false) {
		t.Errorf("toggling sound should emit SetSound(false), got %v", res.Intents)
	}
	if g.clock.Elapsed() != frozen {
		t.Error("page clock should stay frozen under settings")
	}
	g.Step(frame(platformcore.ActionBack))
	if g.page != pageMenu {
		t.Fatalf("Back from settings should return to the menu, got %d", g.page)
	}

	tests := []struct {
		moves int
		kind  platformcore.IntentKind
	}{
		{1, platformcore.IntentBack}, // Level Select
		{2, platformcore.IntentExit},
	}
	for _, tc := range tests {
		g.menuIndex = menuSettings
		for i := 0; i < tc.moves; i++ {
			g.Step(frame(platformcore.ActionDown))
		}
		res := g.Step(frame(platformcore.ActionConfirm))
		if len(res.Intents) != 1 || res.Intents[0].Kind != tc.kind {
			t.Errorf("menu entry %d: got %v, expected %v", g.menuIndex, res.Intents, tc.kind)
		}
	}

	g.Step(frame(platformcore.ActionBack))
	if g.page != pagePlaying || g.clock.Suspended() {
		t.Error("closing the menu should resume play")
	}
	g.Step(frame())
	if g.clock.Elapsed() <= frozen {
		t.Error("clock should advance again")
	}
}

func TestMenuDropsHeldPiece(t *testing.T) {
	g := newTestGame(t)
	skipIntro(t, g)

	g.Step(frame(platformcore.ActionGrab))
	g.Step(frame(platformcore.ActionRight))
	g.Step(frame(platformcore.ActionBack))

	if g.drag.Active() {
		t.Fatal("opening the menu should drop the held piece")
	}
	if g.grid.Front(3, 2) != core.MovableTopRight {
		t.Error("piece should stay where it was carried")
	}
}

func TestRestartReloadsLevel(t *testing.T) {
	g := newTestGame(t)
	skipIntro(t, g)

	g.Step(frame(platformcore.ActionGrab))
	g.Step(frame(platformcore.ActionRight))
	g.Step(frame(platformcore.ActionGrab))

	g.Step(frame(platformcore.ActionRestart))
	if g.page != pageIntro || g.moves != 0 {
		t.Errorf("restart should reload the level, page %d moves %d", g.page, g.moves)
	}
	if g.grid.Front(2, 2) != core.MovableTopRight {
		t.Error("restart should restore the pieces")
	}
}

func TestResetStartLevel(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		max      int
		expected int
	}{
		{"resume at max level", 0, 3, 3},
		{"explicit start wins", 2, 5, 2},
		{"beyond last level", 99, 1, 6},
		{"no progress", 0, 0, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rc := testRuntime()
			rc.StartLevel = tc.start
			rc.MaxLevel = tc.max
			g := New(config.DefaultBeamConfig(), levels.Embedded())
			g.Reset(rc)
			if g.State().Level != tc.expected {
				t.Errorf("level = %d, expected %d", g.State().Level, tc.expected)
			}
		})
	}
}

func TestHintOverlay(t *testing.T) {
	g := newTestGame(t)
	skipIntro(t, g)

	g.Step(frame(platformcore.ActionHint))
	if !g.hint {
		t.Fatal("H should toggle the hint")
	}

	scr := platformcore.NewScreen(80, 30)
	g.Render(scr)
	// The solution puts the mirror at (4,1); the glyph sits on the middle row.
	cell := scr.GetCell(originX+4*4+1, originY+1*2+1)
	if cell.Rune != '◥' || cell.Color != platformcore.ColorMagenta {
		t.Errorf("expected hint glyph at the solution cell, got %q %v", cell.Rune, cell.Color)
	}

	g.Step(frame(platformcore.ActionHint))
	if g.hint {
		t.Error("H should toggle the hint off")
	}
}

func TestRenderPlaying(t *testing.T) {
	g := newTestGame(t)
	skipIntro(t, g)
	for i := 0; i < 60; i++ {
		g.Step(frame())
	}

	scr := platformcore.NewScreen(80, 30)
	g.Render(scr)
	out := scr.String()

	if !strings.Contains(out, "Level 1: First Light") {
		t.Error("HUD should name the level")
	}
	if !strings.Contains(scr.Row(originY+2+1), "▶") {
		t.Error("ray source should be drawn")
	}
	if c := scr.GetCell(originX+2*4, originY+2+1); c.Rune != '─' || c.Color != platformcore.ColorBrightYellow {
		t.Errorf("beam should cross cell (2,1), got %q", c.Rune)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New(config.DefaultBeamConfig(), levels.Embedded())
	rc := testRuntime()
	rc.ScreenW, rc.ScreenH = 10, 8
	g.Reset(rc)

	scr := platformcore.NewScreen(10, 8)
	g.Render(scr)
	if !g.tooSmall {
		t.Fatal("expected too small layout")
	}

	// Growing the window restores the grid with the configured cell size.
	g.Resize(80, 30)
	if g.tooSmall || g.layout.cellW != 4 || g.layout.originX != originX {
		t.Errorf("unexpected layout after resize: %+v", g.layout)
	}
}

const singleLevel = `number: 1
name: Only
front:
  - "#######"
  - "#>..q.#"
  - "#.....#"
  - "#...G.#"
  - "#######"
`

func TestLastLevelFinishes(t *testing.T) {
	fsys := fstest.MapFS{"level1.yaml": {Data: []byte(singleLevel)}}
	g := New(config.DefaultBeamConfig(), levels.NewLoader(fsys, "."))
	g.Reset(testRuntime())
	skipIntro(t, g)

	for i := 0; i < 2000 && g.page != pageFinished; i++ {
		g.Step(frame())
	}
	if !g.State().GameOver {
		t.Fatal("solving the last level should finish the game")
	}

	res := g.Step(frame(platformcore.ActionRestart))
	if open, ok := findIntent([]platformcore.StepResult{res}, platformcore.IntentOpenLevel); !ok || open.Level != 1 {
		t.Errorf("restart after finishing should reopen level 1, got %v", res.Intents)
	}
}

func TestNoLevels(t *testing.T) {
	g := New(config.DefaultBeamConfig(), levels.NewLoader(fstest.MapFS{}, "."))
	g.Reset(testRuntime())

	if !g.State().GameOver {
		t.Fatal("a game without levels should be over")
	}
	scr := platformcore.NewScreen(80, 30)
	g.Render(scr)
	if !strings.Contains(scr.String(), "No levels found") {
		t.Error("missing levels message")
	}

	res := g.Step(frame(platformcore.ActionBack))
	if len(res.Intents) != 1 || res.Intents[0].Kind != platformcore.IntentBack {
		t.Errorf("Back should leave the game, got %v", res.Intents)
	}
}
