// Package levels provides level loading functionality for the beam puzzle.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/beamgrid/beamgrid/internal/games/beam/core"
	"github.com/beamgrid/beamgrid/internal/games/beam/levels/formats"
)

// ErrNotFound is returned when no level carries the requested number.
var ErrNotFound = errors.New("level not found")

//go:embed data/*.yaml
var embedded embed.FS

// BackdropLevel is the number of the decorative level shown behind menus.
const BackdropLevel = 0

// Level represents a complete level definition.
type Level struct {
	Number   int
	Name     string
	Grid     *core.Grid
	FilePath string
}

// Playable reports whether the level is part of the puzzle sequence.
func (l Level) Playable() bool {
	return l.Number != BackdropLevel
}

// Loader handles loading levels from a file system.
type Loader struct {
	FS   fs.FS
	Root string

	// Strict rejects levels that fail structural validation
	// instead of loading them.
	Strict bool
}

// NewLoader creates a new level loader reading root inside fsys.
func NewLoader(fsys fs.FS, root string) *Loader {
	return &Loader{FS: fsys, Root: root}
}

// NewDirLoader creates a loader over a directory on disk.
func NewDirLoader(dir string) *Loader {
	return NewLoader(os.DirFS(dir), ".")
}

// Embedded returns a loader over the levels built into the binary.
func Embedded() *Loader {
	return NewLoader(embedded, "data")
}

// LoadAll recursively scans and loads all level files.
// Files that fail to load are skipped with a warning.
// Returns levels sorted by number for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level
	seen := make(map[int]string)

	err := fs.WalkDir(l.FS, l.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			log.Warn("skipping level file", "path", p, "err", err)
			return nil
		}
		if prev, dup := seen[level.Number]; dup {
			log.Warn("duplicate level number", "number", level.Number, "path", p, "kept", prev)
			return nil
		}
		seen[level.Number] = p

		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].Number < levels[j].Number
	})
	return levels, nil
}

// LoadFile loads a single level file. The path is relative to the loader's
// file system.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	parsed, err := parseByExtension(data, p)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	if l.Strict && parsed.Number != BackdropLevel {
		if err := core.QuickValidate(parsed.Grid); err != nil {
			return Level{}, fmt.Errorf("validating file %s: %w", p, err)
		}
	}

	return Level{
		Number:   parsed.Number,
		Name:     parsed.Name,
		Grid:     parsed.Grid,
		FilePath: p,
	}, nil
}

// LoadNumber loads the level with the given number.
// The returned grid is fresh and may be modified by the caller.
func (l *Loader) LoadNumber(n int) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.Number == n {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %d", ErrNotFound, n)
}

// Numbers returns the numbers of all playable levels in order.
func (l *Loader) Numbers() ([]int, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	nums := make([]int, 0, len(levels))
	for _, lvl := range levels {
		if lvl.Playable() {
			nums = append(nums, lvl.Number)
		}
	}
	return nums, nil
}

var numberInName = regexp.MustCompile(`(?i)^level(\d+)$`)

// numberFromPath extracts N from ".../levelN.ext".
func numberFromPath(p string) (int, bool) {
	base := strings.TrimSuffix(path.Base(p), path.Ext(p))
	m := numberInName.FindStringSubmatch(base)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	return n, err == nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, p string) (formats.Level, error) {
	ext := strings.ToLower(path.Ext(p))
	n, named := numberFromPath(p)

	switch ext {
	case ".yaml", ".yml":
		lvl, err := formats.ParseYAML(data)
		if err != nil {
			return formats.Level{}, err
		}
		if lvl.Number == 0 && named {
			lvl.Number = n
		}
		if lvl.Name == "" {
			lvl.Name = fmt.Sprintf("Level %d", lvl.Number)
		}
		return lvl, nil
	case ".mp":
		if !named {
			return formats.Level{}, fmt.Errorf("binary level name must be level<N>.mp")
		}
		return formats.ParseMP(data, n)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// WriteFile writes a level to disk, choosing the format by extension.
func WriteFile(dst string, lvl Level) error {
	fl := formats.Level{Number: lvl.Number, Name: lvl.Name, Grid: lvl.Grid}

	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(dst)); ext {
	case ".mp":
		data, err = formats.EncodeMP(fl)
	case ".yaml", ".yml":
		data, err = formats.EncodeYAML(fl)
	default:
		err = fmt.Errorf("unsupported extension: %s", ext)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", dst, err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dst, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}
