package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/beamgrid/beamgrid/internal/core"
)

// Effect durations.
const (
	pingDuration      = 150 * time.Millisecond
	gemNote1Duration  = 70 * time.Millisecond
	gemNote2Duration  = 110 * time.Millisecond
	chordNoteDuration = 80 * time.Millisecond
	chordTailDuration = 200 * time.Millisecond
	toneAttack        = 5 * time.Millisecond
)

// tone is a sine oscillator with a linear attack and release.
type tone struct {
	freq    float64
	phase   float64
	pos     int
	total   int
	attack  int
	release int
	rate    beep.SampleRate
}

func newTone(freq float64, d, release time.Duration, rate beep.SampleRate) *tone {
	total := rate.N(d)
	rel := rate.N(release)
	if rel > total {
		rel = total
	}
	return &tone{
		freq:    freq,
		total:   total,
		attack:  rate.N(toneAttack),
		release: rel,
		rate:    rate,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}

		gain := 1.0
		if t.attack > 0 && t.pos < t.attack {
			gain = float64(t.pos) / float64(t.attack)
		}
		if left := t.total - t.pos; t.release > 0 && left < t.release {
			gain = math.Min(gain, float64(left)/float64(t.release))
		}

		v := gain * math.Sin(2*math.Pi*t.phase)
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// newVolume scales a stream linearly; 0 is silent since log2(0) is -Inf.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// pingSound is a short decaying A5 for a blocked drag.
func pingSound(rate beep.SampleRate) beep.Streamer {
	return newTone(880, pingDuration, pingDuration-toneAttack, rate)
}

// gemSound is a two-note chime (C6, G6) for a newly lit gem.
func gemSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		newTone(1046.5, gemNote1Duration, 20*time.Millisecond, rate),
		newTone(1568.0, gemNote2Duration, 90*time.Millisecond, rate),
	)
}

// gemSolvedSound is a rising C major arpeggio with a held top note.
func gemSolvedSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		newTone(523.25, chordNoteDuration, 20*time.Millisecond, rate),
		newTone(659.25, chordNoteDuration, 20*time.Millisecond, rate),
		newTone(783.99, chordNoteDuration, 20*time.Millisecond, rate),
		beep.Mix(
			newVolume(newTone(1046.5, chordTailDuration, 160*time.Millisecond, rate), 0.7),
			newVolume(newTone(1318.5, chordTailDuration, 160*time.Millisecond, rate), 0.3),
		),
	)
}

// Effect returns a fresh streamer for s at the given volume, or nil for
// an unknown sound.
func Effect(s core.Sound, rate beep.SampleRate, volume float64) beep.Streamer {
	var st beep.Streamer
	switch s {
	case core.SoundPing:
		st = pingSound(rate)
	case core.SoundGem:
		st = gemSound(rate)
	case core.SoundGemSolved:
		st = gemSolvedSound(rate)
	default:
		return nil
	}
	return newVolume(st, volume)
}
