// Package tui runs the puzzle in the terminal with Bubble Tea, locally or
// over SSH. It maps keys and the mouse to game input, paces simulation
// ticks and carries out the intents games emit.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd schedules the next simulation tick. Rates below 1 fall back to 60.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate < 1 {
		tickRate = 60
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
