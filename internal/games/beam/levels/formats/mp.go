package formats

import (
	"fmt"

	"github.com/beamgrid/beamgrid/internal/games/beam/core"
)

// MaxDimension is the largest width or height the binary format can store.
const MaxDimension = 255

// ParseMP parses a binary level. The number is not stored in the file and
// comes from the caller (usually the file name).
func ParseMP(data []byte, number int) (Level, error) {
	g, err := core.ParseGrid(data)
	if err != nil {
		return Level{}, fmt.Errorf("level %d: %w", number, err)
	}
	return Level{
		Number: number,
		Name:   fmt.Sprintf("Level %d", number),
		Grid:   g,
	}, nil
}

// EncodeMP serializes a level in the binary format.
func EncodeMP(l Level) ([]byte, error) {
	if l.Grid == nil {
		return nil, fmt.Errorf("level %d: no grid", l.Number)
	}
	if l.Grid.W > MaxDimension || l.Grid.H > MaxDimension {
		return nil, fmt.Errorf("level %d: %dx%d does not fit the binary format", l.Number, l.Grid.W, l.Grid.H)
	}
	return l.Grid.Encode(), nil
}
