package core

import "math"

// Default drag geometry, in logical pointer units.
const (
	DefaultCellSize = 64.0
	DefaultSubSteps = 15
)

// Direction bits reported in DragResult masks.
const (
	BitRight uint8 = 1 << iota
	BitLeft
	BitDown
	BitUp
)

// DragResult describes the outcome of one pointer move.
type DragResult struct {
	// Offset is the visual displacement of the held tile from its cell.
	Offset Vec2
	// Hit has a bit set for every direction the tile was pushed against
	// something it cannot enter.
	Hit uint8
	// Moved has a bit set for every direction the tile changed cell.
	Moved uint8
	// Collision is true when the tile changed cell and then hit an
	// obstacle within the same move. The platform plays a click for it.
	Collision bool
}

// Release describes where a dropped tile landed.
type Release struct {
	Tile Tile
	From Coord
	To   Coord
}

// DragController lets the player carry a movable tile across the grid.
//
// While a tile is held it is removed from the front layer. Pointer motion is
// resolved in small sub-steps so a fast drag still slides cell by cell and
// stops at the first obstacle. A tile may only enter a cell that has track on
// the back layer and nothing on the front layer.
type DragController struct {
	grid *Grid

	CellSize float64
	SubSteps int

	active bool
	tile   Tile
	origin Coord // cell the tile was picked up from
	cell   Coord // current logical cell
	anchor Vec2  // pointer position that corresponds to the cell's rest position
	cursor Vec2  // last resolved pointer position
}

// NewDragController creates an idle controller over g.
func NewDragController(g *Grid) *DragController {
	return &DragController{
		grid:     g,
		CellSize: DefaultCellSize,
		SubSteps: DefaultSubSteps,
	}
}

// Active reports whether a tile is currently held.
func (d *DragController) Active() bool {
	return d.active
}

// Tile returns the held tile, or Empty when idle.
func (d *DragController) Tile() Tile {
	if !d.active {
		return Empty
	}
	return d.tile
}

// Cell returns the current logical cell of the held tile.
func (d *DragController) Cell() Coord {
	return d.cell
}

// Offset returns the visual displacement of the held tile from its cell.
func (d *DragController) Offset() Vec2 {
	if !d.active {
		return Vec2{}
	}
	return d.cursor.Sub(d.anchor)
}

// CellAt converts a pointer position into a grid cell.
// Returns false for positions outside the grid.
func (d *DragController) CellAt(p Vec2) (Coord, bool) {
	if p.X < 0 || p.Y < 0 {
		return Coord{}, false
	}
	c := C(int(math.Floor(p.X/d.CellSize)), int(math.Floor(p.Y/d.CellSize)))
	return c, d.grid.InBounds(c.X, c.Y)
}

// Press grabs the movable tile under p. Returns false when nothing was
// grabbed. A press while a tile is already held is ignored.
func (d *DragController) Press(p Vec2) bool {
	if d.active {
		return false
	}
	c, ok := d.CellAt(p)
	if !ok {
		return false
	}
	t := d.grid.Front(c.X, c.Y)
	if !t.IsMovable() {
		return false
	}
	d.grid.SetFront(c.X, c.Y, Empty)
	d.active = true
	d.tile = t
	d.origin = c
	d.cell = c
	d.anchor = p
	d.cursor = p
	return true
}

// Release drops the held tile at its current cell.
// Returns false when no tile was held.
func (d *DragController) Release() (Release, bool) {
	if !d.active {
		return Release{}, false
	}
	d.grid.SetFront(d.cell.X, d.cell.Y, d.tile)
	r := Release{Tile: d.tile, From: d.origin, To: d.cell}
	d.active = false
	d.tile = Empty
	return r, true
}

// Cancel puts the held tile back where it was picked up.
func (d *DragController) Cancel() {
	if !d.active {
		return
	}
	d.grid.SetFront(d.origin.X, d.origin.Y, d.tile)
	d.active = false
	d.tile = Empty
}

// blocked reports whether the held tile may not enter the neighbour of its
// current cell in direction dir.
func (d *DragController) blocked(dir Dir) bool {
	n := d.cell.Step(dir)
	if !d.grid.InBounds(n.X, n.Y) {
		return true
	}
	return d.grid.Front(n.X, n.Y) != Empty || d.grid.Back(n.X, n.Y) == Empty
}

// Move resolves pointer motion to p.
//
// Each sub-step clamps the pointer delta on any axis heading into a blocked
// cell, then commits a cell change once the delta passes half a cell. After
// all sub-steps, if the tile ended on an occupied cell or off the track it
// reverts to the cell it held before this call.
func (d *DragController) Move(p Vec2) DragResult {
	if !d.active {
		return DragResult{}
	}

	var hit, moved uint8
	startCell, startAnchor := d.cell, d.anchor
	half := d.CellSize / 2

	for i := 0; i < d.SubSteps; i++ {
		delta := p.Sub(d.anchor)

		if delta.X > 0 && d.blocked(DirRight) {
			delta.X = 0
			hit |= BitRight
		} else if delta.X < 0 && d.blocked(DirLeft) {
			delta.X = 0
			hit |= BitLeft
		}
		if delta.Y > 0 && d.blocked(DirDown) {
			delta.Y = 0
			hit |= BitDown
		} else if delta.Y < 0 && d.blocked(DirUp) {
			delta.Y = 0
			hit |= BitUp
		}

		if delta.X > half {
			d.cell.X++
			delta.X -= d.CellSize
			d.anchor.X += d.CellSize
			moved |= BitRight
		} else if delta.X < -half {
			d.cell.X--
			delta.X += d.CellSize
			d.anchor.X -= d.CellSize
			moved |= BitLeft
		}
		if delta.Y > half {
			d.cell.Y++
			delta.Y -= d.CellSize
			d.anchor.Y += d.CellSize
			moved |= BitDown
		} else if delta.Y < -half {
			d.cell.Y--
			delta.Y += d.CellSize
			d.anchor.Y -= d.CellSize
			moved |= BitUp
		}

		d.cursor = d.anchor.Add(delta)
	}

	if d.grid.Front(d.cell.X, d.cell.Y) != Empty || d.grid.Back(d.cell.X, d.cell.Y) == Empty {
		d.cell, d.anchor = startCell, startAnchor
		d.cursor = d.anchor
	}

	return DragResult{
		Offset:    d.Offset(),
		Hit:       hit,
		Moved:     moved,
		Collision: moved&hit != 0,
	}
}

// Hold places the held tile at its current cell while fn runs, then lifts
// it again. With no tile held fn simply runs. The beam simulation uses this
// so a carried mirror already bends the beam.
func (d *DragController) Hold(fn func()) {
	if !d.active {
		fn()
		return
	}
	d.grid.SetFront(d.cell.X, d.cell.Y, d.tile)
	defer d.grid.SetFront(d.cell.X, d.cell.Y, Empty)
	fn()
}
