package core_test

import (
	"testing"

	"github.com/beamgrid/beamgrid/internal/games/beam/core"
)

// legend maps characters used in test layouts to front tiles.
// Every character except ' ' also lays track on the back layer.
var legend = map[rune]core.Tile{
	'.': core.Empty,
	'>': core.RaySourceRight,
	'<': core.RaySourceLeft,
	'^': core.RaySourceUp,
	'v': core.RaySourceDown,
	'#': core.WallBlocker,
	'=': core.PassHorizontal,
	'H': core.PassVertical,
	'G': core.GemGreen,
	'R': core.GemRed,
	'r': core.MovableTopLeft,
	'q': core.MovableTopRight,
	'L': core.MovableBottomLeft,
	'J': core.MovableBottomRight,
	'a': core.ImmovableTopLeft,
	'b': core.ImmovableTopRight,
	'c': core.ImmovableBottomLeft,
	'd': core.ImmovableBottomRight,
	'O': core.RayTeleport1,
	'0': core.RayTeleport2,
}

// build creates a grid from rows of layout characters.
func build(t *testing.T, rows ...string) *core.Grid {
	t.Helper()
	h := len(rows)
	w := len(rows[0])
	g := core.NewGrid(w, h)
	for y, row := range rows {
		if len(row) != w {
			t.Fatalf("row %d has width %d, want %d", y, len(row), w)
		}
		for x, ch := range row {
			if ch == ' ' {
				continue
			}
			tile, ok := legend[ch]
			if !ok {
				t.Fatalf("unknown layout character %q", ch)
			}
			g.SetBack(x, y, core.Floor1)
			g.SetFront(x, y, tile)
		}
	}
	return g
}

// rayRows renders the ray overlay for comparison.
func rayRows(g *core.Grid) string {
	return core.RenderRay(g)
}
