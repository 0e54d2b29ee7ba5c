package core

import "slices"

// Default beam timing.
const (
	// DefaultPauseSeconds is how long the beam holds at each turn or
	// teleport before it continues.
	DefaultPauseSeconds = 0.075

	// GemPunchStrength is the Punch magnitude given to a gem the beam
	// newly reaches.
	GemPunchStrength = 40.0
)

// transition records when the beam first reached an undrawn cell
// (a mirror or a teleport exit).
type transition struct {
	at      Coord
	entered float64
}

// Simulator recomputes the beam over a grid.
// It keeps the turn timestamps between calls so the beam can advance
// progressively, pausing briefly at each turn or teleport.
type Simulator struct {
	grid *Grid

	// PauseSeconds is the hold time at each turn or teleport.
	PauseSeconds float64
	// GemPunch is the magnitude of the Punch effect on newly reached gems.
	GemPunch float64

	transitions []transition
	lastRay     []Tile
}

// NewSimulator creates a simulator bound to g.
func NewSimulator(g *Grid) *Simulator {
	return &Simulator{
		grid:         g,
		PauseSeconds: DefaultPauseSeconds,
		GemPunch:     GemPunchStrength,
		lastRay:      make([]Tile, g.W*g.H),
	}
}

// Grid returns the grid this simulator writes to.
func (s *Simulator) Grid() *Grid {
	return s.grid
}

// Reset drops all recorded turns so the beam starts again from its source.
func (s *Simulator) Reset() {
	s.transitions = nil
}

// Transitions returns the number of turn records retained by the last Update.
func (s *Simulator) Transitions() int {
	return len(s.transitions)
}

// Start locates the ray source scanning row-major.
// Returns false when the grid has no source; the beam then starts at the
// origin travelling Up.
func (s *Simulator) Start() (Coord, Dir, bool) {
	g := s.grid
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if d, ok := g.Front(x, y).SourceDir(); ok {
				return C(x, y), d, true
			}
		}
	}
	return C(0, 0), DirUp, false
}

// teleportPairs maps each teleport position to its partner.
// Symbols that do not occur exactly twice form no pair.
func (s *Simulator) teleportPairs() map[Coord]Coord {
	bySymbol := make(map[Tile][]Coord)
	for _, c := range s.grid.Find(Tile.IsTeleport) {
		t := s.grid.Front(c.X, c.Y)
		bySymbol[t] = append(bySymbol[t], c)
	}
	pairs := make(map[Coord]Coord)
	for _, coords := range bySymbol {
		if len(coords) != 2 {
			continue
		}
		pairs[coords[0]] = coords[1]
		pairs[coords[1]] = coords[0]
	}
	return pairs
}

// findTransition returns the record for c from the previous call.
func (s *Simulator) findTransition(c Coord) (transition, bool) {
	for _, t := range s.transitions {
		if t.at == c {
			return t, true
		}
	}
	return transition{}, false
}

// Update recomputes the ray layer and returns the number of distinct gems
// the beam crosses.
//
// The beam leaves its source and advances at most maxSteps cells. It stops
// at blockers and ray sources, bends at mirrors, and jumps between paired
// teleports. Every mirror or teleport exit is a pause point: the beam only
// continues past it once PauseSeconds have elapsed since it first got there.
// Gems the beam did not cross on the previous call get a Punch effect.
// Cells wrap toroidally at the grid edges.
func (s *Simulator) Update(maxSteps int, now float64) int {
	g := s.grid
	copy(s.lastRay, g.ray)
	g.ClearRay()

	pos, dir, _ := s.Start()
	pairs := s.teleportPairs()
	var kept []transition
	count := 0

	pos = pos.Wrap(dir, g.W, g.H)
trace:
	for step := 0; step < maxSteps; step++ {
		tile := g.Front(pos.X, pos.Y)
		if tile.IsRayBlocker(dir) || tile.IsRaySource() {
			break
		}

		draw := true
		switch {
		case tile.IsGem():
			idx := pos.Y*g.W + pos.X
			if g.ray[idx] == Empty {
				count++
				if s.lastRay[idx] == Empty {
					g.effect[idx] = Punch(now, dir.Vec().Scale(s.GemPunch))
				}
			}
		case tile.IsMirror():
			out, ok := tile.Reflect(dir)
			if !ok {
				break trace
			}
			dir = out
			draw = false
		case tile.IsTeleport():
			if dst, ok := pairs[pos]; ok {
				pos = dst
				draw = false
			}
		}

		if draw {
			switch {
			case g.Ray(pos.X, pos.Y) != Empty:
				g.SetRay(pos.X, pos.Y, RayCross)
			case dir.Vertical():
				g.SetRay(pos.X, pos.Y, RayVertical)
			default:
				g.SetRay(pos.X, pos.Y, RayHorizontal)
			}
		} else {
			t, seen := s.findTransition(pos)
			if !seen {
				kept = append(kept, transition{at: pos, entered: now})
				break
			}
			kept = append(kept, t)
			if now-t.entered < s.PauseSeconds {
				break
			}
		}

		pos = pos.Wrap(dir, g.W, g.H)
	}

	s.transitions = kept
	return count
}

// Settle runs Update repeatedly, advancing time past the pause on every
// call, until the beam stops growing or limit calls have been made. It
// returns the final gem count and the time reached. Used to evaluate a grid
// without waiting in real time.
func (s *Simulator) Settle(maxSteps int, start float64, limit int) (int, float64) {
	step := s.PauseSeconds * 2
	now := start
	count := s.Update(maxSteps, now)
	prev := append([]Tile(nil), s.grid.ray...)
	prevTransitions := len(s.transitions)
	for i := 0; i < limit; i++ {
		now += step
		count = s.Update(maxSteps, now)
		if len(s.transitions) == prevTransitions && slices.Equal(prev, s.grid.ray) {
			break
		}
		copy(prev, s.grid.ray)
		prevTransitions = len(s.transitions)
	}
	return count, now
}
