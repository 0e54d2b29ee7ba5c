// Package audio plays the puzzle's sound effects through the system speaker.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/beamgrid/beamgrid/internal/config"
	"github.com/beamgrid/beamgrid/internal/core"
)

// Player is the sound sink used by the frontends.
type Player interface {
	Play(s core.Sound)
	SetEnabled(on bool)
	Enabled() bool
	Close()
}

// SoundManager mixes effects into a single speaker stream.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	volume      float64
	enabled     bool
	initialized bool
}

// NewSoundManager creates a sound manager. Nothing is audible until
// Initialize succeeds.
func NewSoundManager(cfg config.AudioConfig) *SoundManager {
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 48000
	}
	return &SoundManager{
		mixer:   &beep.Mixer{},
		rate:    beep.SampleRate(rate),
		volume:  cfg.Volume,
		enabled: cfg.Enabled,
	}
}

// Initialize opens the speaker. Callers should log the error and keep
// going silently; terminals without an audio device are common.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Play starts an effect. It is a no-op when disabled or not initialized.
func (sm *SoundManager) Play(s core.Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || !sm.enabled {
		return
	}
	streamer := Effect(s, sm.rate, sm.volume)
	if streamer == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

// SetEnabled toggles playback. Disabling drops any effect still playing.
func (sm *SoundManager) SetEnabled(on bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.enabled = on
	if !on && sm.initialized {
		speaker.Lock()
		sm.mixer.Clear()
		speaker.Unlock()
	}
}

// Enabled reports whether effects are played.
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.enabled
}

// Close stops all sounds.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker Close; an empty mixer keeps the device quiet.
	sm.initialized = false
}

// Silent is a Player that only tracks the enabled flag. SSH sessions use
// it since the server's speaker is not the player's.
type Silent struct {
	mu      sync.Mutex
	enabled bool
	played  []core.Sound
}

// NewSilent creates a silent player.
func NewSilent(enabled bool) *Silent {
	return &Silent{enabled: enabled}
}

func (s *Silent) Play(snd core.Sound) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enabled {
		s.played = append(s.played, snd)
	}
}

func (s *Silent) SetEnabled(on bool) {
	s.mu.Lock()
	s.enabled = on
	s.mu.Unlock()
}

func (s *Silent) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

func (s *Silent) Close() {}

// Played returns the sounds requested while enabled.
func (s *Silent) Played() []core.Sound {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Sound, len(s.played))
	copy(out, s.played)
	return out
}
