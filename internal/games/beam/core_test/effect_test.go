package core_test

import (
	"math"
	"testing"

	"github.com/beamgrid/beamgrid/internal/games/beam/core"
)

func TestPunchDecays(t *testing.T) {
	e := core.Punch(2.0, core.V(40, 0))

	if off := e.Offset(2.0); off.Len() > 1e-9 {
		t.Errorf("punch should start at rest, got %v", off)
	}
	if off := e.Offset(2.05); off.X <= 0 {
		t.Errorf("punch should first move along its direction, got %v", off)
	}
	if off := e.Offset(3.0); off.Len() > 0.01 {
		t.Errorf("punch should have decayed after one second, got %v", off)
	}

	tr := e.Apply(2.05, core.V(100, 100), core.V(64, 64), 1)
	if tr.Size != core.V(64, 64) || tr.Alpha != 1 {
		t.Errorf("punch should only move the tile, got %+v", tr)
	}
	if tr.Pos.Sub(core.V(100, 100)).Sub(e.Offset(2.05)).Len() > 1e-9 {
		t.Errorf("Apply and Offset disagree: %v vs %v", tr.Pos, e.Offset(2.05))
	}
}

func TestSizedFadeIn(t *testing.T) {
	e := core.SizedFadeIn(1.0, 3.0, 1.0)
	pos, size := core.V(0, 0), core.V(64, 64)

	start := e.Apply(1.0, pos, size, 1)
	if start.Alpha != 0 {
		t.Errorf("expected alpha 0 at start, got %v", start.Alpha)
	}
	if start.Size != core.V(192, 192) {
		t.Errorf("expected triple size at start, got %v", start.Size)
	}
	if start.Pos != core.V(-64, -64) {
		t.Errorf("expected scaling about the center, got %v", start.Pos)
	}

	mid := e.Apply(1.5, pos, size, 1)
	if math.Abs(mid.Alpha-0.5) > 1e-9 {
		t.Errorf("expected alpha 0.5 half way, got %v", mid.Alpha)
	}

	end := e.Apply(5.0, pos, size, 0.8)
	if end.Size != size || end.Pos != pos || math.Abs(end.Alpha-0.8) > 1e-9 {
		t.Errorf("expected full size and alpha after the fade, got %+v", end)
	}
	if e.Offset(1.5) != core.V(0, 0) {
		t.Error("fade-in should not offset the tile")
	}
}

func TestHideAndNone(t *testing.T) {
	pos, size := core.V(10, 20), core.V(64, 64)

	if tr := core.Hide().Apply(0, pos, size, 1); tr.Alpha != 0 || tr.Pos != pos {
		t.Errorf("hide should only zero alpha, got %+v", tr)
	}
	if core.Hide().Visible(0) {
		t.Error("hidden tile should not be visible")
	}
	if tr := core.NoEffect().Apply(3, pos, size, 0.7); tr.Pos != pos || tr.Size != size || tr.Alpha != 0.7 {
		t.Errorf("no effect should pass values through, got %+v", tr)
	}
}
