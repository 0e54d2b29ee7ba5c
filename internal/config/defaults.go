package config

import (
	_ "embed"
)

//go:embed defaults/beam.yaml
var defaultBeamYAML []byte

// DefaultBeamConfig returns the built-in beam puzzle configuration.
func DefaultBeamConfig() BeamConfig {
	return BeamConfig{
		Simulation: SimulationConfig{
			PlaySteps:           500,
			SolutionStepSeconds: 0.05,
			PauseSeconds:        0.075,
		},
		Drag: DragConfig{
			CellSize: 64,
			SubSteps: 15,
		},
		Timing: TimingConfig{
			IntroSeconds:    2.5,
			SolutionSeconds: 3.0,
			FadeSpeed:       1.7,
			FadeInScale:     3,
			FadeInSeconds:   1,
		},
		Effects: EffectsConfig{
			GemPunch:   40,
			HoverPunch: 5,
		},
		Render: RenderConfig{
			CellW: 4,
			CellH: 2,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.5,
			SampleRate: 48000,
		},
	}
}
