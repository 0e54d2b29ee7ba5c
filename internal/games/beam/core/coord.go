package core

import "fmt"

// Coord is a cell of the grid. Y grows downward.
type Coord struct {
	X, Y int
}

// C builds a Coord.
func C(x, y int) Coord { return Coord{X: x, Y: y} }

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add offsets c by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return C(c.X+dx, c.Y+dy)
}

// Step moves one cell toward d. The result may be off the grid.
func (c Coord) Step(d Dir) Coord {
	return c.Add(d.Delta())
}

// Wrap steps toward d, wrapping around the edges of a w by h grid so a
// beam leaving one side enters on the opposite one.
func (c Coord) Wrap(d Dir, w, h int) Coord {
	n := c.Step(d)
	return C((n.X%w+w)%w, (n.Y%h+h)%h)
}
