// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beamgrid/beamgrid/internal/games/beam/core"
	"gopkg.in/yaml.v3"
)

// Row encodings for YAML levels.
const (
	EncodingGlyphs = "glyphs" // one character per cell, mapped through the legend
	EncodingCodes  = "codes"  // whitespace separated tile codes or names
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	Number   int               `yaml:"number"`
	Name     string            `yaml:"name"`
	Encoding string            `yaml:"encoding,omitempty"`
	Legend   map[string]string `yaml:"legend,omitempty"`
	Back     []string          `yaml:"back,omitempty"`
	Front    []string          `yaml:"front"`
	Solution []string          `yaml:"solution,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	Number int
	Name   string
	Grid   *core.Grid
}

// DefaultLegend maps glyph characters to front tiles. Every glyph except
// ' ' also lays track on the back layer.
var DefaultLegend = map[rune]core.Tile{
	'.': core.Empty,
	'#': core.WallBlocker,
	'>': core.RaySourceRight,
	'<': core.RaySourceLeft,
	'^': core.RaySourceUp,
	'v': core.RaySourceDown,
	'=': core.PassHorizontal,
	'|': core.PassVertical,
	'R': core.GemRed,
	'G': core.GemGreen,
	'Y': core.GemYellow,
	'P': core.GemPurple,
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
	'%': core.Solid,
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if len(yl.Front) == 0 {
		return Level{}, fmt.Errorf("level %d: no front rows", yl.Number)
	}

	legend, err := buildLegend(yl.Legend)
	if err != nil {
		return Level{}, err
	}

	var g *core.Grid
	switch yl.Encoding {
	case "", EncodingGlyphs:
		g, err = parseGlyphs(yl, legend)
	case EncodingCodes:
		g, err = parseCodes(yl)
	default:
		err = fmt.Errorf("unknown encoding %q", yl.Encoding)
	}
	if err != nil {
		return Level{}, fmt.Errorf("level %d: %w", yl.Number, err)
	}
	if g.W > MaxDimension || g.H > MaxDimension {
		return Level{}, fmt.Errorf("level %d: %dx%d exceeds %d cells per side", yl.Number, g.W, g.H, MaxDimension)
	}

	return Level{Number: yl.Number, Name: yl.Name, Grid: g}, nil
}

// buildLegend merges per-file overrides into the default legend.
func buildLegend(overrides map[string]string) (map[rune]core.Tile, error) {
	legend := make(map[rune]core.Tile, len(DefaultLegend)+len(overrides))
	for r, t := range DefaultLegend {
		legend[r] = t
	}
	for key, name := range overrides {
		runes := []rune(key)
		if len(runes) != 1 {
			return nil, fmt.Errorf("legend key %q must be a single character", key)
		}
		t, err := parseToken(name)
		if err != nil {
			return nil, fmt.Errorf("legend %q: %w", key, err)
		}
		legend[runes[0]] = t
	}
	return legend, nil
}

func parseGlyphs(yl YAMLLevel, legend map[rune]core.Tile) (*core.Grid, error) {
	front, w, err := glyphRows(yl.Front, legend)
	if err != nil {
		return nil, fmt.Errorf("front: %w", err)
	}
	h := len(front)
	g := core.NewGrid(w, h)

	for y, row := range front {
		for x, t := range row {
			g.SetFront(x, y, t)
		}
	}

	if len(yl.Back) > 0 {
		back, bw, err := glyphRows(yl.Back, legend)
		if err != nil {
			return nil, fmt.Errorf("back: %w", err)
		}
		if bw != w || len(back) != h {
			return nil, fmt.Errorf("back is %dx%d, front is %dx%d", bw, len(back), w, h)
		}
		for y, row := range back {
			for x, t := range row {
				g.SetBack(x, y, t)
			}
		}
	} else {
		// Track under every non-blank glyph, in a checkerboard of floors.
		for y, line := range yl.Front {
			for x, ch := range []rune(line) {
				if ch == ' ' {
					continue
				}
				if (x+y)%2 == 0 {
					g.SetBack(x, y, core.Floor1)
				} else {
					g.SetBack(x, y, core.Floor2)
				}
			}
		}
	}

	if len(yl.Solution) > 0 {
		sol, sw, err := glyphRows(yl.Solution, legend)
		if err != nil {
			return nil, fmt.Errorf("solution: %w", err)
		}
		if sw != w || len(sol) != h {
			return nil, fmt.Errorf("solution is %dx%d, front is %dx%d", sw, len(sol), w, h)
		}
		for y, row := range sol {
			for x, t := range row {
				if t.IsMovable() {
					g.SetSolution(x, y, t)
				}
			}
		}
		g.SetHasSolution(true)
	}
	return g, nil
}

func glyphRows(rows []string, legend map[rune]core.Tile) ([][]core.Tile, int, error) {
	out := make([][]core.Tile, len(rows))
	w := -1
	for y, line := range rows {
		runes := []rune(line)
		if w < 0 {
			w = len(runes)
		} else if len(runes) != w {
			return nil, 0, fmt.Errorf("row %d has width %d, want %d", y, len(runes), w)
		}
		out[y] = make([]core.Tile, w)
		for x, ch := range runes {
			if ch == ' ' {
				out[y][x] = core.Empty
				continue
			}
			t, ok := legend[ch]
			if !ok {
				return nil, 0, fmt.Errorf("unknown glyph %q at (%d,%d)", ch, x, y)
			}
			out[y][x] = t
		}
	}
	if w <= 0 {
		return nil, 0, fmt.Errorf("empty rows")
	}
	return out, w, nil
}

func parseCodes(yl YAMLLevel) (*core.Grid, error) {
	front, err := codeRows(yl.Front)
	if err != nil {
		return nil, fmt.Errorf("front: %w", err)
	}
	w, h := len(front[0]), len(front)
	g := core.NewGrid(w, h)

	layers := []struct {
		name string
		rows []string
		set  func(x, y int, t core.Tile)
	}{
		{"back", yl.Back, g.SetBack},
		{"solution", yl.Solution, g.SetSolution},
	}
	for y, row := range front {
		for x, t := range row {
			g.SetFront(x, y, t)
		}
	}
	for _, l := range layers {
		if len(l.rows) == 0 {
			continue
		}
		tiles, err := codeRows(l.rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", l.name, err)
		}
		if len(tiles) != h || len(tiles[0]) != w {
			return nil, fmt.Errorf("%s is %dx%d, front is %dx%d", l.name, len(tiles[0]), len(tiles), w, h)
		}
		for y, row := range tiles {
			for x, t := range row {
				l.set(x, y, t)
			}
		}
	}
	return g, nil
}

func codeRows(rows []string) ([][]core.Tile, error) {
	out := make([][]core.Tile, len(rows))
	for y, line := range rows {
		fields := strings.Fields(line)
		if y > 0 && len(fields) != len(out[0]) {
			return nil, fmt.Errorf("row %d has width %d, want %d", y, len(fields), len(out[0]))
		}
		out[y] = make([]core.Tile, len(fields))
		for x, f := range fields {
			t, err := parseToken(f)
			if err != nil {
				return nil, fmt.Errorf("(%d,%d): %w", x, y, err)
			}
			out[y][x] = t
		}
	}
	if len(out) == 0 || len(out[0]) == 0 {
		return nil, fmt.Errorf("empty rows")
	}
	return out, nil
}

// parseToken accepts a numeric tile code or a tile name.
func parseToken(s string) (core.Tile, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 255 {
			return 0, fmt.Errorf("%w %d", core.ErrUnknownTile, n)
		}
		t, ok := core.TileFromCode(byte(n))
		if !ok {
			return 0, fmt.Errorf("%w %d", core.ErrUnknownTile, n)
		}
		return t, nil
	}
	t, ok := core.ParseTile(s)
	if !ok {
		return 0, fmt.Errorf("%w %q", core.ErrUnknownTile, s)
	}
	return t, nil
}

// EncodeYAML writes a level in the codes encoding.
func EncodeYAML(l Level) ([]byte, error) {
	g := l.Grid
	yl := YAMLLevel{
		Number:   l.Number,
		Name:     l.Name,
		Encoding: EncodingCodes,
		Back:     codeLines(g, g.Back),
		Front:    codeLines(g, g.Front),
	}
	if g.HasSolution() {
		yl.Solution = codeLines(g, g.Solution)
	}
	return yaml.Marshal(yl)
}

func codeLines(g *core.Grid, at func(x, y int) core.Tile) []string {
	lines := make([]string, g.H)
	for y := 0; y < g.H; y++ {
		fields := make([]string, g.W)
		for x := 0; x < g.W; x++ {
			fields[x] = strconv.Itoa(int(at(x, y)))
		}
		lines[y] = strings.Join(fields, " ")
	}
	return lines
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".mp"}
}
