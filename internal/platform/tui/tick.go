// Package tui hosts an app inside Bubble Tea, either on the local terminal
// or behind a Wish SSH server. It translates terminal messages into input
// records and paces frames with tea.Tick.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg asks the model to run one frame.
type FrameMsg time.Time

func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
