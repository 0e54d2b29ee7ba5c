package core

import "math"

// EffectKind identifies a per-cell visual effect.
type EffectKind uint8

const (
	EffectNone EffectKind = iota
	EffectHide
	EffectPunch
	EffectSizedFadeIn
)

// String returns the string representation of an effect kind.
func (k EffectKind) String() string {
	switch k {
	case EffectNone:
		return "None"
	case EffectHide:
		return "Hide"
	case EffectPunch:
		return "Punch"
	case EffectSizedFadeIn:
		return "SizedFadeIn"
	default:
		return "Unknown"
	}
}

// Effect is a transient visual effect attached to a grid cell.
// Times are seconds of page time, the same clock passed to Simulator.Update.
type Effect struct {
	Kind  EffectKind
	Start float64

	// Punch
	Dir Vec2

	// SizedFadeIn
	StartScale float64
	Duration   float64
}

// NoEffect returns the empty effect.
func NoEffect() Effect {
	return Effect{Kind: EffectNone}
}

// Hide returns an effect that makes the tile invisible.
func Hide() Effect {
	return Effect{Kind: EffectHide}
}

// Punch returns a decaying spring offset along dir, starting at start.
func Punch(start float64, dir Vec2) Effect {
	return Effect{Kind: EffectPunch, Start: start, Dir: dir}
}

// SizedFadeIn returns an effect that grows the tile from startScale to full
// size while fading it in.
func SizedFadeIn(start, startScale, duration float64) Effect {
	return Effect{Kind: EffectSizedFadeIn, Start: start, StartScale: startScale, Duration: duration}
}

// Transform is the render-time placement of a tile after its effect.
type Transform struct {
	Pos   Vec2
	Size  Vec2
	Alpha float64
}

// punchScale is a decaying spring: sin(3t)*exp(-t) with t in tenths of a second.
func punchScale(elapsed float64) float64 {
	t := elapsed * 10
	return math.Sin(t*3) * math.Exp(-t)
}

// Apply computes where and how a tile at pos with the given size and alpha
// is drawn at time now.
func (e Effect) Apply(now float64, pos, size Vec2, alpha float64) Transform {
	switch e.Kind {
	case EffectHide:
		return Transform{Pos: pos, Size: size, Alpha: 0}
	case EffectPunch:
		return Transform{Pos: pos.Add(e.Dir.Scale(punchScale(now - e.Start))), Size: size, Alpha: alpha}
	case EffectSizedFadeIn:
		k := math.Min(now-e.Start, 1)
		factor := e.StartScale + k*(1-e.StartScale)
		center := pos.Add(size.Scale(0.5))
		scaled := size.Scale(factor)
		return Transform{
			Pos:   center.Sub(scaled.Scale(0.5)),
			Size:  scaled,
			Alpha: k * alpha,
		}
	default:
		return Transform{Pos: pos, Size: size, Alpha: alpha}
	}
}

// Offset returns only the positional displacement of the effect at now.
// Used for overlays (such as the ray) that follow a punched tile.
func (e Effect) Offset(now float64) Vec2 {
	if e.Kind != EffectPunch {
		return Vec2{}
	}
	return e.Dir.Scale(punchScale(now - e.Start))
}

// Visible reports whether a tile with this effect is drawn at all at now.
func (e Effect) Visible(now float64) bool {
	switch e.Kind {
	case EffectHide:
		return false
	case EffectSizedFadeIn:
		return now > e.Start
	}
	return true
}
