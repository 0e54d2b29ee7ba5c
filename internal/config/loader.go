package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory holding configs, the database, the log
// and the SSH host key.
const AppDir = ".beamgrid"

// LoadBeam loads the beam puzzle configuration.
// Search order: customPath -> ~/.beamgrid/configs/beam.yaml -> ./configs/beam.yaml -> embedded default.
// Files are applied over the defaults, so a partial file only changes the
// keys it names.
func LoadBeam(customPath string) (BeamConfig, error) {
	cfg := DefaultBeamConfig()

	// A custom path must exist and parse.
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{UserPath("configs", "beam.yaml"), filepath.Join("configs", "beam.yaml")}
	for _, p := range candidates {
		if p == "" {
			continue
		}
		if loaded, ok := tryFile(p); ok {
			return loaded, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultBeamYAML, &cfg); err != nil {
		return DefaultBeamConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryFile loads an optional config file. Unreadable or invalid files are
// skipped so a broken user file never stops the game.
func tryFile(p string) (BeamConfig, bool) {
	data, err := os.ReadFile(p)
	if err != nil {
		return BeamConfig{}, false
	}
	cfg := DefaultBeamConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BeamConfig{}, false
	}
	if err := cfg.Validate(); err != nil {
		return BeamConfig{}, false
	}
	return cfg, true
}

// UserPath returns a path under ~/.beamgrid, or empty if home is unavailable.
func UserPath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, AppDir}, elem...)...)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(p string) (string, error) {
	if p == "" || p[0] != '~' {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}
