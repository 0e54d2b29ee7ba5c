package beam

import (
	"github.com/charmbracelet/log"

	platformcore "github.com/beamgrid/beamgrid/internal/core"
	"github.com/beamgrid/beamgrid/internal/games/beam/core"
)

// stepPlaying resolves input, then recomputes the beam with any carried
// piece in place.
func (g *Game) stepPlaying(in platformcore.InputFrame, res *platformcore.StepResult) {
	if g.openMenu(in) {
		return
	}
	if in.Has(platformcore.ActionRestart) {
		g.openLevel(g.level.Number)
		return
	}
	if in.Has(platformcore.ActionHint) && g.grid.HasSolution() {
		g.hint = !g.hint
	}

	g.playTime += g.tickSeconds
	now := g.clock.Elapsed()

	for _, ev := range in.Pointer {
		g.handlePointer(ev, now, res)
	}
	g.handleKeys(in, res)

	var count int
	g.drag.Hold(func() {
		count = g.sim.Update(g.cfg.Simulation.PlaySteps, now)
	})
	if count > g.count {
		res.Play(platformcore.SoundGem)
	}
	g.count = count

	// A carried piece must be dropped before the level counts as solved.
	if g.drag.Active() {
		return
	}
	if core.IsSolved(count, g.grid) {
		g.solve(res)
	}
}

func (g *Game) handlePointer(ev platformcore.PointerEvent, now float64, res *platformcore.StepResult) {
	p := g.toLogical(ev.X, ev.Y)

	switch ev.Kind {
	case platformcore.PointerPress:
		if g.drag.Active() {
			return
		}
		if g.drag.Press(p) {
			g.keyDrag = false
			g.cursor = g.drag.Cell()
		}
	case platformcore.PointerRelease:
		if !g.keyDrag {
			g.releaseHeld()
		}
	case platformcore.PointerMove:
		if g.drag.Active() && !g.keyDrag {
			if r := g.drag.Move(p); r.Collision {
				res.Play(platformcore.SoundPing)
			}
			g.cursor = g.drag.Cell()
			return
		}
		g.updateHover(p, now)
	}
}

// updateHover punches a movable piece when the pointer enters its cell.
func (g *Game) updateHover(p core.Vec2, now float64) {
	c, ok := g.drag.CellAt(p)
	if !ok {
		g.hoverOK = false
		return
	}
	if g.hoverOK && c == g.hover {
		return
	}
	g.hover, g.hoverOK = c, true

	if g.grid.Front(c.X, c.Y).IsMovable() {
		k := g.cfg.Effects.HoverPunch
		g.grid.SetEffect(c.X, c.Y, core.Punch(now, core.V(k, k)))
	}
}

// handleKeys moves the cursor, or the piece grabbed with Grab by exactly
// one cell of pointer travel per arrow press.
func (g *Game) handleKeys(in platformcore.InputFrame, res *platformcore.StepResult) {
	if in.Has(platformcore.ActionGrab) {
		switch {
		case g.drag.Active() && g.keyDrag:
			g.releaseHeld()
		case !g.drag.Active():
			g.keyPoint = g.cellCenter(g.cursor)
			g.keyDrag = g.drag.Press(g.keyPoint)
		}
	}

	dir, ok := arrowDir(in)
	if !ok {
		return
	}

	if !g.drag.Active() {
		if next := g.cursor.Step(dir); g.grid.InBounds(next.X, next.Y) {
			g.cursor = next
		}
		return
	}
	if !g.keyDrag {
		return
	}

	r := g.drag.Move(g.keyPoint.Add(dir.Vec().Scale(g.cfg.Drag.CellSize)))
	if r.Collision || r.Moved == 0 {
		res.Play(platformcore.SoundPing)
	}
	g.cursor = g.drag.Cell()
	g.keyPoint = g.cellCenter(g.cursor)
}

func arrowDir(in platformcore.InputFrame) (core.Dir, bool) {
	switch {
	case in.Has(platformcore.ActionUp):
		return core.DirUp, true
	case in.Has(platformcore.ActionDown):
		return core.DirDown, true
	case in.Has(platformcore.ActionLeft):
		return core.DirLeft, true
	case in.Has(platformcore.ActionRight):
		return core.DirRight, true
	}
	return 0, false
}

// releaseHeld drops the carried piece where it is. Returns whether it
// landed on a different cell.
func (g *Game) releaseHeld() bool {
	g.keyDrag = false
	r, ok := g.drag.Release()
	if !ok || r.To == r.From {
		return false
	}
	g.moves++
	return true
}

// solve records the finish and starts the solution replay.
func (g *Game) solve(res *platformcore.StepResult) {
	res.Emit(platformcore.Solved(g.level.Number, g.playTime, g.moves))
	g.score++
	log.Info("level solved", "number", g.level.Number, "seconds", g.playTime, "moves", g.moves)

	g.hint = false
	g.hoverOK = false
	g.grid.ClearRay()
	g.grid.ClearEffects()
	g.sim.Reset()
	g.count = 0
	g.clock.Enter()
	g.page = pageSolution
}

// cellCenter returns the logical position of the centre of c.
func (g *Game) cellCenter(c core.Coord) core.Vec2 {
	cs := g.cfg.Drag.CellSize
	return core.V((float64(c.X)+0.5)*cs, (float64(c.Y)+0.5)*cs)
}

// toLogical maps a terminal cell to grid-logical units, using the centre
// of the character.
func (g *Game) toLogical(x, y int) core.Vec2 {
	cs := g.cfg.Drag.CellSize
	ux := cs / float64(g.layout.cellW)
	uy := cs / float64(g.layout.cellH)
	return core.V(
		(float64(x-g.layout.originX)+0.5)*ux,
		(float64(y-g.layout.originY)+0.5)*uy,
	)
}
