package core

import (
	"fmt"
	"strings"
)

// RenderASCII creates an ASCII representation of the grid.
// This is used for debugging, testing (golden outputs), and the CLI.
//
// Format:
//   - front tiles use Tile.Glyph
//   - ray overlay is drawn where the front layer is empty
//   - track without a piece is '.', no track is ' '
func RenderASCII(g *Grid) string {
	var sb strings.Builder
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			sb.WriteRune(cellGlyph(g, x, y))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderRay renders only the ray overlay; cells without ray are '.'.
func RenderRay(g *Grid) string {
	var sb strings.Builder
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if r := g.Ray(x, y); r != Empty {
				sb.WriteRune(r.Glyph())
			} else {
				sb.WriteRune('.')
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderSummary renders a header line followed by the grid.
func RenderSummary(g *Grid, count int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Size: %dx%d | Gems: %d/%d | Solution: %v\n",
		g.W, g.H, count, g.CountJewels(), g.HasSolution()))
	sb.WriteString(strings.Repeat("-", g.W) + "\n")
	sb.WriteString(RenderASCII(g))
	return sb.String()
}

func cellGlyph(g *Grid, x, y int) rune {
	if f := g.Front(x, y); f != Empty {
		return f.Glyph()
	}
	if r := g.Ray(x, y); r != Empty {
		return r.Glyph()
	}
	if g.Back(x, y) == Empty {
		return ' '
	}
	return '.'
}
