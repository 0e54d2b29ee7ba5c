package levels_test

import (
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/beamgrid/beamgrid/internal/games/beam/core"
	"github.com/beamgrid/beamgrid/internal/games/beam/levels"
	"github.com/beamgrid/beamgrid/internal/games/beam/levels/formats"
)

func TestEmbeddedLoadAll(t *testing.T) {
	lvls, err := levels.Embedded().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(lvls) < 7 {
		t.Fatalf("expected at least 7 embedded levels, got %d", len(lvls))
	}
	for i, lvl := range lvls {
		if lvl.Number != i {
			t.Errorf("levels not numbered consecutively: index %d has number %d", i, lvl.Number)
		}
		if lvl.Name == "" {
			t.Errorf("level %d has no name", lvl.Number)
		}
	}

	nums, err := levels.Embedded().Numbers()
	if err != nil {
		t.Fatalf("Numbers failed: %v", err)
	}
	if nums[0] != 1 {
		t.Errorf("backdrop should not be playable, first playable is %d", nums[0])
	}
}

func TestEmbeddedLevelsSolvable(t *testing.T) {
	lvls, err := levels.Embedded().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	for _, lvl := range lvls {
		if !lvl.Playable() {
			continue
		}
		t.Run(lvl.Name, func(t *testing.T) {
			g := lvl.Grid
			if !g.HasSolution() {
				t.Fatal("playable level must carry a solution")
			}
			if err := core.Validate(g, 500); err != nil {
				t.Fatalf("validation failed: %v", err)
			}

			count, _ := core.NewSimulator(g.Clone()).Settle(500, 0, core.SettleLimit)
			if count == g.CountJewels() {
				t.Errorf("level starts solved (%d gems lit)", count)
			}
		})
	}
}

func TestLoadNumber(t *testing.T) {
	lvl, err := levels.Embedded().LoadNumber(1)
	if err != nil {
		t.Fatalf("LoadNumber(1) failed: %v", err)
	}
	if lvl.Name != "First Light" {
		t.Errorf("expected 'First Light', got %q", lvl.Name)
	}
	if lvl.Grid.W != 7 || lvl.Grid.H != 5 {
		t.Errorf("expected 7x5, got %dx%d", lvl.Grid.W, lvl.Grid.H)
	}

	// Each load returns an independent grid.
	again, _ := levels.Embedded().LoadNumber(1)
	lvl.Grid.SetFront(1, 1, core.Empty)
	if again.Grid.Front(1, 1) != core.RaySourceRight {
		t.Error("grids returned by LoadNumber must not be shared")
	}

	_, err = levels.Embedded().LoadNumber(999)
	if !errors.Is(err, levels.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoaderFormats(t *testing.T) {
	fsys := fstest.MapFS{
		"level1.yaml": {Data: []byte(`
name: Codes
encoding: codes
front:
  - "RaySourceRight 0 49 15"
back:
  - "54 54 54 54"
`)},
		"level2.mp":   {Data: []byte{0, 2, 1, 0, 54, 54, 23, 49, 0, 0}},
		"broken.yaml": {Data: []byte("front: [\"#?#\"]")},
		"notes.txt":   {Data: []byte("ignored")},
	}
	loader := levels.NewLoader(fsys, ".")

	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(lvls) != 2 {
		t.Fatalf("expected 2 levels (broken file skipped), got %d", len(lvls))
	}

	codes := lvls[0]
	if codes.Number != 1 || codes.Name != "Codes" {
		t.Errorf("expected level 1 'Codes', got %d %q", codes.Number, codes.Name)
	}
	if codes.Grid.Front(0, 0) != core.RaySourceRight || codes.Grid.Front(2, 0) != core.GemRed {
		t.Errorf("codes encoding parsed wrong:\n%s", core.RenderASCII(codes.Grid))
	}
	if codes.Grid.Back(3, 0) != core.Floor2 {
		t.Errorf("expected explicit back layer, got %v", codes.Grid.Back(3, 0))
	}

	bin := lvls[1]
	if bin.Number != 2 || bin.Name != "Level 2" {
		t.Errorf("expected binary level 2, got %d %q", bin.Number, bin.Name)
	}
	if bin.Grid.Front(0, 0) != core.RaySourceRight || bin.Grid.Front(1, 0) != core.GemRed {
		t.Errorf("binary level parsed wrong:\n%s", core.RenderASCII(bin.Grid))
	}
}

func TestLoaderErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"unnamed.mp":   {Data: []byte{0, 1, 1, 0, 54, 23, 0}},
		"level3.mp":    {Data: []byte{0, 2, 1, 0, 54, 54, 23, 2, 0, 0}},
		"level4.yaml":  {Data: []byte("front: [\">.<G\"]")},
		"level5.yaml":  {Data: []byte("encoding: codes\nfront: [\"23 99\"]")},
		"level6.yaml":  {Data: []byte("front: [\">.G\", \">.\"]")},
		"level7.yaml":  {Data: []byte("encoding: runes\nfront: [\">\"]")},
		"level8.yaml":  {Data: []byte("legend: {xy: Solid}\nfront: [\">\"]")},
		"level9.yaml":  {Data: []byte("front: [\">G\"]\nsolution: [\">\"]")},
		"level10.yaml": {Data: []byte("name: no rows")},
	}
	loader := levels.NewLoader(fsys, ".")
	loader.Strict = true

	testCases := []struct {
		path    string
		unknown bool
	}{
		{"unnamed.mp", false},
		{"level3.mp", true},
		{"level4.yaml", false},
		{"level5.yaml", true},
		{"level6.yaml", false},
		{"level7.yaml", false},
		{"level8.yaml", false},
		{"level9.yaml", false},
		{"level10.yaml", false},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			_, err := loader.LoadFile(tc.path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.unknown && !errors.Is(err, core.ErrUnknownTile) {
				t.Errorf("expected ErrUnknownTile, got %v", err)
			}
		})
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	src, err := levels.Embedded().LoadNumber(3)
	if err != nil {
		t.Fatalf("LoadNumber failed: %v", err)
	}
	dir := t.TempDir()

	for _, name := range []string{"level3.mp", "level3.yaml"} {
		t.Run(name, func(t *testing.T) {
			if err := levels.WriteFile(filepath.Join(dir, name), src); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}
			got, err := levels.NewDirLoader(dir).LoadFile(name)
			if err != nil {
				t.Fatalf("LoadFile failed: %v", err)
			}
			if got.Number != 3 {
				t.Errorf("expected number 3, got %d", got.Number)
			}
			a, b := src.Grid, got.Grid
			if a.W != b.W || a.H != b.H {
				t.Fatalf("expected %dx%d, got %dx%d", a.W, a.H, b.W, b.H)
			}
			for y := 0; y < a.H; y++ {
				for x := 0; x < a.W; x++ {
					if a.Back(x, y) != b.Back(x, y) || a.Front(x, y) != b.Front(x, y) ||
						a.Solution(x, y) != b.Solution(x, y) {
						t.Errorf("layers differ at (%d,%d)", x, y)
					}
				}
			}
			if !b.HasSolution() {
				t.Error("solution flag lost")
			}
		})
	}
}

func TestEncodeMPRejectsOversize(t *testing.T) {
	_, err := formats.EncodeMP(formats.Level{Number: 1, Grid: core.NewGrid(300, 1)})
	if err == nil {
		t.Error("expected oversize grid to be rejected")
	}
}
