package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/beamgrid/beamgrid/internal/audio"
	"github.com/beamgrid/beamgrid/internal/config"
	"github.com/beamgrid/beamgrid/internal/core"
	"github.com/beamgrid/beamgrid/internal/storage"
)

// runtimeConfig builds the game config from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.Sound = beamConfig.Audio.Enabled
	return cfg
}

// openStore opens the database. Failures are reported and the game runs
// without saving.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

// newPlayer starts the speaker, falling back to silence when no audio
// device is available.
func newPlayer() audio.Player {
	sm := audio.NewSoundManager(beamConfig.Audio)
	if err := sm.Initialize(); err != nil {
		log.Warn("audio unavailable, playing silently", "err", err)
		return audio.NewSilent(beamConfig.Audio.Enabled)
	}
	return sm
}

// logToFile sends the package logger to the log file while the terminal
// UI owns the screen. The returned func closes the file.
func logToFile() func() {
	f, err := openLog(flagLogPath)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }
	}
	log.SetOutput(f)
	log.SetReportTimestamp(true)
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}
}

func openLog(path string) (*os.File, error) {
	p, err := config.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
