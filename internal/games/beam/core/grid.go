package core

import (
	"errors"
	"fmt"
)

// HeaderSize is the number of bytes before the first layer in a binary level.
const HeaderSize = 4

// Errors reported while decoding a binary level.
var (
	ErrTruncated     = errors.New("level data truncated")
	ErrBadDimensions = errors.New("level has zero width or height")
	ErrUnknownTile   = errors.New("unknown tile code")
)

// LoadError describes where a binary level failed to decode.
type LoadError struct {
	Layer  string // "header", "back", "front" or "solution"
	Offset int    // byte offset into the buffer
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s layer at byte %d: %v", e.Layer, e.Offset, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Grid is a fixed-size level with four tile layers and per-cell effects.
// All layers are stored in row-major order: index = y*W + x.
//
//	back     floor and track; Empty means no track
//	front    pieces, walls, gems, sources and teleports
//	solution where the movable pieces sit once solved
//	ray      beam overlay, rewritten by every Simulator.Update
type Grid struct {
	W int
	H int

	back     []Tile
	front    []Tile
	solution []Tile
	ray      []Tile
	effect   []Effect

	hasSolution bool
}

// NewGrid creates a grid with all layers Empty.
func NewGrid(w, h int) *Grid {
	n := w * h
	return &Grid{
		W:        w,
		H:        h,
		back:     make([]Tile, n),
		front:    make([]Tile, n),
		solution: make([]Tile, n),
		ray:      make([]Tile, n),
		effect:   make([]Effect, n),
	}
}

// ParseGrid decodes a binary level:
//
//	byte 0       reserved
//	byte 1       width
//	byte 2       height
//	byte 3       has-solution flag
//	4..          back, front, solution layers of W*H bytes each
//
// Every tile code is checked; unknown codes are an error.
func ParseGrid(buf []byte) (*Grid, error) {
	if len(buf) < HeaderSize {
		return nil, &LoadError{Layer: "header", Offset: len(buf), Err: ErrTruncated}
	}
	w, h := int(buf[1]), int(buf[2])
	if w == 0 || h == 0 {
		return nil, &LoadError{Layer: "header", Offset: 1, Err: ErrBadDimensions}
	}
	n := w * h
	if len(buf) < HeaderSize+3*n {
		return nil, &LoadError{Layer: layerAt(len(buf), n), Offset: len(buf), Err: ErrTruncated}
	}

	g := NewGrid(w, h)
	g.hasSolution = buf[3] != 0
	layers := []struct {
		name string
		dst  []Tile
	}{
		{"back", g.back},
		{"front", g.front},
		{"solution", g.solution},
	}
	off := HeaderSize
	for _, l := range layers {
		for i := 0; i < n; i++ {
			t, ok := TileFromCode(buf[off+i])
			if !ok {
				return nil, &LoadError{
					Layer:  l.name,
					Offset: off + i,
					Err:    fmt.Errorf("%w %d at %s", ErrUnknownTile, buf[off+i], C(i%w, i/w)),
				}
			}
			l.dst[i] = t
		}
		off += n
	}
	return g, nil
}

// layerAt names the layer a truncated buffer ends in.
func layerAt(size, n int) string {
	switch {
	case size < HeaderSize+n:
		return "back"
	case size < HeaderSize+2*n:
		return "front"
	default:
		return "solution"
	}
}

// Encode serializes the grid in the binary level format.
// The ray layer and effects are not stored.
func (g *Grid) Encode() []byte {
	n := g.W * g.H
	buf := make([]byte, HeaderSize+3*n)
	buf[1] = byte(g.W)
	buf[2] = byte(g.H)
	if g.hasSolution {
		buf[3] = 1
	}
	for i := 0; i < n; i++ {
		buf[HeaderSize+i] = byte(g.back[i])
		buf[HeaderSize+n+i] = byte(g.front[i])
		buf[HeaderSize+2*n+i] = byte(g.solution[i])
	}
	return buf
}

// index converts a coordinate to a flat array index.
// Panics on coordinates outside the grid.
func (g *Grid) index(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("grid: %s outside %dx%d", C(x, y), g.W, g.H))
	}
	return y*g.W + x
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Front returns the front-layer tile at (x, y).
func (g *Grid) Front(x, y int) Tile {
	return g.front[g.index(x, y)]
}

// Back returns the back-layer tile at (x, y).
func (g *Grid) Back(x, y int) Tile {
	return g.back[g.index(x, y)]
}

// Ray returns the ray-overlay tile at (x, y).
func (g *Grid) Ray(x, y int) Tile {
	return g.ray[g.index(x, y)]
}

// Solution returns the solution-layer tile at (x, y).
func (g *Grid) Solution(x, y int) Tile {
	return g.solution[g.index(x, y)]
}

// Effect returns the effect attached to (x, y).
func (g *Grid) Effect(x, y int) Effect {
	return g.effect[g.index(x, y)]
}

// SetFront places a tile on the front layer.
func (g *Grid) SetFront(x, y int, t Tile) {
	g.front[g.index(x, y)] = t
}

// SetBack places a tile on the back layer. It is for building grids only:
// the back layer must not change once a level is loaded.
func (g *Grid) SetBack(x, y int, t Tile) {
	g.back[g.index(x, y)] = t
}

// SetSolution places a tile on the solution layer and marks the grid as
// carrying a solution.
func (g *Grid) SetSolution(x, y int, t Tile) {
	g.solution[g.index(x, y)] = t
	g.hasSolution = true
}

// SetRay places a tile on the ray overlay.
func (g *Grid) SetRay(x, y int, t Tile) {
	g.ray[g.index(x, y)] = t
}

// SetEffect attaches an effect to (x, y), replacing any previous one.
func (g *Grid) SetEffect(x, y int, e Effect) {
	g.effect[g.index(x, y)] = e
}

// SetHasSolution marks whether the solution layer is meaningful.
func (g *Grid) SetHasSolution(v bool) {
	g.hasSolution = v
}

// HasSolution reports whether the level carries a solution layer.
func (g *Grid) HasSolution() bool {
	return g.hasSolution
}

// ClearRay empties the ray overlay.
func (g *Grid) ClearRay() {
	for i := range g.ray {
		g.ray[i] = Empty
	}
}

// ClearEffects removes every effect.
func (g *Grid) ClearEffects() {
	for i := range g.effect {
		g.effect[i] = NoEffect()
	}
}

// CountJewels returns the number of gems on the front layer.
func (g *Grid) CountJewels() int {
	count := 0
	for _, t := range g.front {
		if t.IsGem() {
			count++
		}
	}
	return count
}

// TileMovableEffect applies e to every movable tile on the front layer.
func (g *Grid) TileMovableEffect(e Effect) {
	for i, t := range g.front {
		if t.IsMovable() {
			g.effect[i] = e
		}
	}
}

// Find returns the coordinates of every front tile matching pred,
// in row-major order.
func (g *Grid) Find(pred func(Tile) bool) []Coord {
	var coords []Coord
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if pred(g.front[y*g.W+x]) {
				coords = append(coords, C(x, y))
			}
		}
	}
	return coords
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		W:           g.W,
		H:           g.H,
		back:        append([]Tile(nil), g.back...),
		front:       append([]Tile(nil), g.front...),
		solution:    append([]Tile(nil), g.solution...),
		ray:         append([]Tile(nil), g.ray...),
		effect:      append([]Effect(nil), g.effect...),
		hasSolution: g.hasSolution,
	}
	return c
}

// ApplySolution returns a copy of the grid with every movable piece moved
// to where the solution layer places it. Fixed tiles always come from the
// front layer. Returns nil when the level has no solution.
func (g *Grid) ApplySolution() *Grid {
	if !g.hasSolution {
		return nil
	}
	c := g.Clone()
	for i, t := range c.front {
		if t.IsMovable() {
			c.front[i] = Empty
		}
	}
	for i, t := range c.solution {
		if t.IsMovable() {
			c.front[i] = t
		}
	}
	c.ClearRay()
	c.ClearEffects()
	return c
}

// FrontEqual reports whether two grids have the same front layer.
func (g *Grid) FrontEqual(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, t := range g.front {
		if other.front[i] != t {
			return false
		}
	}
	return true
}
