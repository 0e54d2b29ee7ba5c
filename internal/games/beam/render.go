package beam

import (
	"fmt"
	"math"

	platformcore "github.com/beamgrid/beamgrid/internal/core"
	"github.com/beamgrid/beamgrid/internal/games/beam/core"
)

const hudHeight = 4

// layout places the grid on the screen.
type layout struct {
	cellW, cellH     int // terminal characters per grid cell
	originX, originY int // screen position of cell (0,0)
}

// calculateLayout fits the grid below the HUD, shrinking cells to 2x1
// when the configured size does not fit.
func (g *Game) calculateLayout() {
	g.layout.cellW = g.cfg.Render.CellW
	g.layout.cellH = g.cfg.Render.CellH
	if g.grid == nil {
		return
	}

	availW := g.screenW
	availH := g.screenH - hudHeight - 1 // footer line
	if g.grid.W*g.layout.cellW > availW || g.grid.H*g.layout.cellH > availH {
		g.layout.cellW, g.layout.cellH = 2, 1
	}

	gw := g.grid.W * g.layout.cellW
	gh := g.grid.H * g.layout.cellH
	if gw > availW || gh > availH {
		g.tooSmall = true
		return
	}
	g.tooSmall = false

	g.layout.originX = (g.screenW - gw) / 2
	g.layout.originY = hudHeight + (availH-gh)/2
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.page == pageError {
		g.renderOverlay(dst, g.loadErr, "Press Esc to go back")
		return
	}
	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	if g.fade() < 1 {
		g.renderGrid(dst)
	}

	switch g.page {
	case pageIntro:
		g.renderOverlay(dst, fmt.Sprintf("Level %d", g.level.Number), g.level.Name)
	case pageSolution:
		if g.fade() < 0.5 {
			g.renderOverlay(dst, "Level Complete", fmt.Sprintf("%d moves", g.moves))
		}
	case pageMenu:
		g.renderMenu(dst, "Menu", menuItems, g.menuIndex)
	case pageSettings:
		sound := "Sound: Off"
		if g.sound {
			sound = "Sound: On"
		}
		g.renderMenu(dst, "Settings", []string{sound, "Back"}, g.setIndex)
	case pageFinished:
		g.renderOverlay(dst, "All levels solved!", "R: start over  Esc: level select")
	}
}

// renderHUD draws the status bar and control hints.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := " Beam"
	if g.grid != nil {
		hud = fmt.Sprintf(" Beam | Level %d: %s | Gems: %d/%d | Moves: %d | Time: %.0fs",
			g.level.Number, g.level.Name, g.count, g.grid.CountJewels(), g.moves, g.playTime)
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)
	dst.DrawHLine(0, 1, dst.Width(), '─', platformcore.ColorGray)

	controls := " Mouse: drag mirrors | Arrows+Space: move | H: hint | R: restart | Esc: menu"
	dst.DrawTextWithColor(0, 2, controls, platformcore.ColorGray)
	dst.DrawHLine(0, 3, dst.Width(), '─', platformcore.ColorGray)
}

// renderGrid draws the back layer, the beam, the pieces and the cursor.
func (g *Game) renderGrid(dst *platformcore.Screen) {
	now := g.clock.Elapsed()
	dim := g.fade() >= 0.5

	for y := 0; y < g.grid.H; y++ {
		for x := 0; x < g.grid.W; x++ {
			sx, sy := g.cellOrigin(x, y)
			if g.grid.Back(x, y) != core.Empty {
				g.fillCell(dst, sx, sy, '·', platformcore.ColorDarkGray)
			}

			eff := g.grid.Effect(x, y)
			if ray := g.grid.Ray(x, y); ray != core.Empty {
				dx, dy := g.toChars(eff.Offset(now))
				g.drawRay(dst, sx+dx, sy+dy, ray)
			}

			t := g.grid.Front(x, y)
			if t == core.Empty || !eff.Visible(now) {
				continue
			}
			size := core.V(g.cfg.Drag.CellSize, g.cfg.Drag.CellSize)
			pos := core.V(float64(x)*size.X, float64(y)*size.Y)
			tr := eff.Apply(now, pos, size, 1)
			if tr.Alpha < 0.3 {
				continue
			}
			// Scaled tiles keep their centre.
			shift := tr.Pos.Add(tr.Size.Scale(0.5)).Sub(pos.Add(size.Scale(0.5)))
			dx, dy := g.toChars(shift)

			r, c := tileArt(t, g.grid.Ray(x, y) != core.Empty)
			if tr.Alpha < 0.7 || dim {
				c = platformcore.ColorDarkGray
			}
			g.drawTile(dst, sx+dx, sy+dy, t, r, c)
		}
	}

	if g.hint && g.page == pagePlaying {
		g.renderHint(dst)
	}

	if g.drag != nil && g.drag.Active() {
		cell := g.drag.Cell()
		sx, sy := g.cellOrigin(cell.X, cell.Y)
		dx, dy := g.toChars(g.drag.Offset())
		r, _ := tileArt(g.drag.Tile(), false)
		g.drawTile(dst, sx+dx, sy+dy, g.drag.Tile(), r, platformcore.ColorBrightWhite)
	}

	if g.page == pagePlaying && g.layout.cellW >= 3 {
		sx, sy := g.cellOrigin(g.cursor.X, g.cursor.Y)
		mid := sy + g.layout.cellH/2
		dst.SetWithColor(sx, mid, '[', platformcore.ColorBrightWhite)
		dst.SetWithColor(sx+g.layout.cellW-1, mid, ']', platformcore.ColorBrightWhite)
	}
}

// renderHint marks where the solution places each movable piece.
func (g *Game) renderHint(dst *platformcore.Screen) {
	for y := 0; y < g.grid.H; y++ {
		for x := 0; x < g.grid.W; x++ {
			t := g.grid.Solution(x, y)
			if !t.IsMovable() || g.grid.Front(x, y) == t {
				continue
			}
			sx, sy := g.cellOrigin(x, y)
			r, _ := tileArt(t, false)
			g.drawTile(dst, sx, sy, t, r, platformcore.ColorMagenta)
		}
	}
}

func (g *Game) cellOrigin(x, y int) (int, int) {
	return g.layout.originX + x*g.layout.cellW, g.layout.originY + y*g.layout.cellH
}

// toChars converts a logical offset into whole terminal characters.
func (g *Game) toChars(v core.Vec2) (int, int) {
	cs := g.cfg.Drag.CellSize
	return int(math.Round(v.X * float64(g.layout.cellW) / cs)),
		int(math.Round(v.Y * float64(g.layout.cellH) / cs))
}

func (g *Game) fillCell(dst *platformcore.Screen, sx, sy int, r rune, c platformcore.Color) {
	for cy := 0; cy < g.layout.cellH; cy++ {
		dst.DrawHLine(sx, sy+cy, g.layout.cellW, r, c)
	}
}

// drawRay draws a beam segment through the middle of a cell.
func (g *Game) drawRay(dst *platformcore.Screen, sx, sy int, ray core.Tile) {
	midX := sx + g.layout.cellW/2
	midY := sy + g.layout.cellH/2
	c := platformcore.ColorBrightYellow

	switch ray {
	case core.RayHorizontal:
		dst.DrawHLine(sx, midY, g.layout.cellW, '─', c)
	case core.RayVertical:
		dst.DrawVLine(midX, sy, g.layout.cellH, '│', c)
	case core.RayCross:
		dst.DrawHLine(sx, midY, g.layout.cellW, '─', c)
		dst.DrawVLine(midX, sy, g.layout.cellH, '│', c)
		dst.SetWithColor(midX, midY, '┼', c)
	}
}

// drawTile draws a piece. Walls fill the cell; other pieces sit on the
// middle row inside a one-character margin.
func (g *Game) drawTile(dst *platformcore.Screen, sx, sy int, t core.Tile, r rune, c platformcore.Color) {
	if t.IsWall() || t == core.Solid {
		g.fillCell(dst, sx, sy, r, c)
		return
	}
	w := g.layout.cellW - 2
	x := sx + 1
	if w < 1 {
		w, x = g.layout.cellW, sx
	}
	dst.DrawHLine(x, sy+g.layout.cellH/2, w, r, c)
}

// tileArt returns the rune and color for a front tile. Lit gems are bright.
func tileArt(t core.Tile, lit bool) (rune, platformcore.Color) {
	switch t {
	case core.Solid:
		return '▓', platformcore.ColorDarkGray
	case core.PassHorizontal:
		return '═', platformcore.ColorGray
	case core.PassVertical:
		return '║', platformcore.ColorGray
	case core.RaySourceUp:
		return '▲', platformcore.ColorOrange
	case core.RaySourceRight:
		return '▶', platformcore.ColorOrange
	case core.RaySourceDown:
		return '▼', platformcore.ColorOrange
	case core.RaySourceLeft:
		return '◀', platformcore.ColorOrange
	case core.RayTeleport1:
		return '◎', platformcore.ColorMagenta
	case core.RayTeleport2:
		return '◉', platformcore.ColorBrightMagenta
	case core.MovableTopLeft:
		return '◤', platformcore.ColorBrightCyan
	case core.MovableTopRight:
		return '◥', platformcore.ColorBrightCyan
	case core.MovableBottomLeft:
		return '◣', platformcore.ColorBrightCyan
	case core.MovableBottomRight:
		return '◢', platformcore.ColorBrightCyan
	case core.ImmovableTopLeft:
		return '◤', platformcore.ColorBlue
	case core.ImmovableTopRight:
		return '◥', platformcore.ColorBlue
	case core.ImmovableBottomLeft:
		return '◣', platformcore.ColorBlue
	case core.ImmovableBottomRight:
		return '◢', platformcore.ColorBlue
	case core.GemRed:
		return '◆', gemColor(platformcore.ColorRed, platformcore.ColorBrightRed, lit)
	case core.GemGreen:
		return '◆', gemColor(platformcore.ColorGreen, platformcore.ColorBrightGreen, lit)
	case core.GemYellow:
		return '◆', gemColor(platformcore.ColorYellow, platformcore.ColorBrightYellow, lit)
	case core.GemPurple:
		return '◆', gemColor(platformcore.ColorMagenta, platformcore.ColorBrightMagenta, lit)
	}
	if t.IsWall() {
		return '█', platformcore.ColorGray
	}
	return t.Glyph(), platformcore.ColorWhite
}

func gemColor(dark, bright platformcore.Color, lit bool) platformcore.Color {
	if lit {
		return bright
	}
	return dark
}

// renderMenu draws a boxed list with the selected entry marked.
func (g *Game) renderMenu(dst *platformcore.Screen, title string, items []string, selected int) {
	w := len(title)
	for _, it := range items {
		w = max(w, len(it)+2)
	}
	box := dst.Bounds().Centered(w+6, len(items)+4)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, platformcore.ColorWhite)
	dst.DrawTextCenteredWithColor(box.Y+1, title, platformcore.ColorBrightCyan)

	for i, it := range items {
		line := "  " + it
		c := platformcore.ColorGray
		if i == selected {
			line = "> " + it
			c = platformcore.ColorBrightYellow
		}
		dst.DrawTextWithColor(box.X+3, box.Y+2+i, line, c)
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := dst.Bounds().Centered(w, 5)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, platformcore.ColorWhite)
	dst.DrawTextCenteredWithColor(box.Y+1, line1, platformcore.ColorBrightWhite)
	dst.DrawTextCenteredWithColor(box.Y+3, line2, platformcore.ColorGray)
}
