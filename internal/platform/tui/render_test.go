package tui

import (
	"strings"
	"testing"

	"github.com/beamgrid/beamgrid/internal/core"
)

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawTextWithColor(0, 0, "Gems", core.ColorCyan)
	s.DrawTextWithColor(5, 0, "3/4", core.ColorBrightYellow)
	s.DrawText(0, 2, "bottom")

	out := RenderScreen(s)
	for _, want := range []string{"Gems", "3/4", "bottom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if lines := strings.Count(out, "\n"); lines != 2 {
		t.Errorf("expected 3 rows, got %d newlines", lines)
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	if got := styleFor(core.Color(250)).Render("x"); got != "x" {
		t.Errorf("unknown colors should render unstyled, got %q", got)
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q", got)
	}
	if got := centerText("toolong", 3); got != "toolong" {
		t.Errorf("text wider than the screen should pass through, got %q", got)
	}
}
