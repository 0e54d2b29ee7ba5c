package core

import "fmt"

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validation codes.
const (
	CodeNoSource         = "NO_SOURCE"
	CodeMultipleSources  = "MULTIPLE_SOURCES"
	CodeUnpairedTeleport = "UNPAIRED_TELEPORT"
	CodeNoGems           = "NO_GEMS"
	CodeBadSolution      = "BAD_SOLUTION"
	CodeUnsolved         = "UNSOLVED_SOLUTION"
)

// SettleLimit bounds the number of simulation calls used when checking that
// a solution lights every gem.
const SettleLimit = 1000

// Validate performs comprehensive validation of a level.
// Checks:
//   - Exactly one ray source
//   - Every teleport symbol occurs exactly twice
//   - At least one gem
//   - The solution layer holds the same pieces as the front layer
//   - The solution lights every gem
func Validate(g *Grid, maxSteps int) error {
	if err := validateSource(g); err != nil {
		return err
	}
	if err := validateTeleports(g); err != nil {
		return err
	}
	if g.CountJewels() == 0 {
		return ValidationError{Code: CodeNoGems, Message: "level has no gems"}
	}
	if !g.HasSolution() {
		return nil
	}
	if err := validateSolutionPieces(g); err != nil {
		return err
	}
	return validateSolved(g, maxSteps)
}

// QuickValidate performs the structural checks only, without simulation.
func QuickValidate(g *Grid) error {
	if err := validateSource(g); err != nil {
		return err
	}
	return validateTeleports(g)
}

func validateSource(g *Grid) error {
	sources := g.Find(Tile.IsRaySource)
	switch {
	case len(sources) == 0:
		return ValidationError{Code: CodeNoSource, Message: "level has no ray source"}
	case len(sources) > 1:
		return ValidationError{
			Code:    CodeMultipleSources,
			Message: fmt.Sprintf("level has %d ray sources, first at %s", len(sources), sources[0]),
		}
	}
	return nil
}

func validateTeleports(g *Grid) error {
	for _, t := range []Tile{RayTeleport1, RayTeleport2} {
		n := len(g.Find(func(x Tile) bool { return x == t }))
		if n != 0 && n != 2 {
			return ValidationError{
				Code:    CodeUnpairedTeleport,
				Message: fmt.Sprintf("%s occurs %d times, want 2", t, n),
			}
		}
	}
	return nil
}

// validateSolutionPieces checks that the solution holds the same movable
// pieces as the front layer, each on free track.
func validateSolutionPieces(g *Grid) error {
	counts := make(map[Tile]int)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			f, s := g.Front(x, y), g.Solution(x, y)
			if f.IsMovable() {
				counts[f]++
			}
			if s.IsMovable() {
				counts[s]--
				if g.Back(x, y) == Empty {
					return ValidationError{
						Code:    CodeBadSolution,
						Message: fmt.Sprintf("solution places %s off track at %s", s, C(x, y)),
					}
				}
			}
			if s.IsMovable() && !f.IsMovable() && f != Empty {
				return ValidationError{
					Code:    CodeBadSolution,
					Message: fmt.Sprintf("solution places %s on fixed tile %s at %s", s, f, C(x, y)),
				}
			}
		}
	}
	for t, n := range counts {
		if n != 0 {
			return ValidationError{
				Code:    CodeBadSolution,
				Message: fmt.Sprintf("solution has a different number of %s pieces", t),
			}
		}
	}
	return nil
}

func validateSolved(g *Grid, maxSteps int) error {
	solved := g.ApplySolution()
	want := solved.CountJewels()
	got, _ := NewSimulator(solved).Settle(maxSteps, 0, SettleLimit)
	if got != want {
		return ValidationError{
			Code:    CodeUnsolved,
			Message: fmt.Sprintf("solution lights %d of %d gems", got, want),
		}
	}
	return nil
}

// IsSolved reports whether the beam currently crosses every gem.
func IsSolved(count int, g *Grid) bool {
	return count == g.CountJewels()
}
