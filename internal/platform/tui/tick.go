// Package tui provides the Bubble Tea integration for candysoda.
// It renders boards and drives a table from the keyboard.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusTTL is how long a status message stays on screen.
const statusTTL = 3 * time.Second

// clearStatusMsg asks the model to drop the status line it showed as seq.
type clearStatusMsg struct{ seq int }

// clearStatusCmd returns a Bubble Tea command that clears status seq after d.
func clearStatusCmd(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
