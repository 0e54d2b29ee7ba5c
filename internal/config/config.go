// Package config provides YAML-based configuration loading for the beam
// puzzle.
package config

import (
	"errors"
	"fmt"
)

// BeamConfig contains all configuration for the beam puzzle.
type BeamConfig struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Drag       DragConfig       `yaml:"drag"`
	Timing     TimingConfig     `yaml:"timing"`
	Effects    EffectsConfig    `yaml:"effects"`
	Render     RenderConfig     `yaml:"render"`
	Audio      AudioConfig      `yaml:"audio"`
}

// SimulationConfig defines beam pacing.
type SimulationConfig struct {
	PlaySteps           int     `yaml:"play_steps"`
	SolutionStepSeconds float64 `yaml:"solution_step_seconds"`
	PauseSeconds        float64 `yaml:"pause_seconds"`
}

// DragConfig defines the drag resolver parameters.
type DragConfig struct {
	CellSize float64 `yaml:"cell_size"`
	SubSteps int     `yaml:"sub_steps"`
}

// TimingConfig defines page transition timings, in seconds.
type TimingConfig struct {
	IntroSeconds    float64 `yaml:"intro_seconds"`
	SolutionSeconds float64 `yaml:"solution_seconds"`
	FadeSpeed       float64 `yaml:"fade_speed"`
	FadeInScale     float64 `yaml:"fade_in_scale"`
	FadeInSeconds   float64 `yaml:"fade_in_seconds"`
}

// EffectsConfig defines effect strengths.
type EffectsConfig struct {
	GemPunch   float64 `yaml:"gem_punch"`
	HoverPunch float64 `yaml:"hover_punch"`
}

// RenderConfig defines how grid cells map to terminal characters.
type RenderConfig struct {
	CellW int `yaml:"cell_w"`
	CellH int `yaml:"cell_h"`
}

// AudioConfig defines sound output.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"` // 0.0 - 1.0
	SampleRate int     `yaml:"sample_rate"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks that the values can drive the game.
func (c BeamConfig) Validate() error {
	checks := []struct {
		ok   bool
		what string
	}{
		{c.Simulation.PlaySteps > 0, "simulation.play_steps must be positive"},
		{c.Simulation.SolutionStepSeconds > 0, "simulation.solution_step_seconds must be positive"},
		{c.Simulation.PauseSeconds >= 0, "simulation.pause_seconds must not be negative"},
		{c.Drag.CellSize > 0, "drag.cell_size must be positive"},
		{c.Drag.SubSteps > 0, "drag.sub_steps must be positive"},
		{c.Timing.FadeSpeed > 0, "timing.fade_speed must be positive"},
		{c.Render.CellW >= 2, "render.cell_w must be at least 2"},
		{c.Render.CellH >= 1, "render.cell_h must be at least 1"},
		{c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume must be within 0..1"},
		{c.Audio.SampleRate > 0, "audio.sample_rate must be positive"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalid, chk.what)
		}
	}
	return nil
}
