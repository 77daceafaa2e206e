// Package render presents the cell buffer layers draw into as styled
// terminal output.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/frameloop/internal/core"
)

var errNotOpen = errors.New("render: window is not open")

// palette maps core colors to ANSI color numbers. ColorDefault has none.
var palette = [...]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// Terminal is the rendering sink driven by the outer loop: ClearWindow
// before the frame, Present after the layers have drawn.
type Terminal struct {
	styles []lipgloss.Style
	screen *core.Screen
	title  string
	frame  string
	open   bool
	count  uint64
}

// NewTerminal creates a closed renderer that styles output for r. A nil r
// uses the process's default renderer; SSH sessions pass their own so color
// detection follows the remote terminal.
func NewTerminal(r *lipgloss.Renderer) *Terminal {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	styles := make([]lipgloss.Style, len(palette))
	for c, ansi := range palette {
		styles[c] = r.NewStyle()
		if ansi != "" {
			styles[c] = styles[c].Foreground(lipgloss.Color(ansi))
		}
	}
	return &Terminal{styles: styles, screen: core.NewScreen(0, 0)}
}

// Init opens a width x height window.
func (t *Terminal) Init(title string, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("render: cannot open %dx%d window", width, height)
	}
	t.title = title
	t.screen.Resize(width, height)
	t.screen.Clear()
	t.frame = ""
	t.open = true
	return nil
}

// Quit closes the window. Later presents are ignored.
func (t *Terminal) Quit() {
	t.open = false
	t.frame = ""
}

func (t *Terminal) Open() bool { return t.open }

func (t *Terminal) Title() string { return t.title }

// Screen returns the buffer layers draw into.
func (t *Terminal) Screen() *core.Screen { return t.screen }

// Resize follows the host terminal. Sizes of zero or less are rejected.
func (t *Terminal) Resize(width, height int) error {
	if !t.open {
		return errNotOpen
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("render: cannot resize to %dx%d", width, height)
	}
	t.screen.Resize(width, height)
	return nil
}

// ClearWindow blanks the buffer for the next frame.
func (t *Terminal) ClearWindow() {
	t.screen.Clear()
}

// Present renders the buffer into the frame returned by Frame.
func (t *Terminal) Present() {
	if !t.open {
		return
	}
	t.frame = t.renderScreen()
	t.count++
}

// Frame returns the last presented output.
func (t *Terminal) Frame() string { return t.frame }

// Presented returns how many frames have been presented.
func (t *Terminal) Presented() uint64 { return t.count }

// renderScreen styles each run of same-colored cells once.
func (t *Terminal) renderScreen() string {
	s := t.screen
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		cells := s.Cells(y)
		for x := 0; x < len(cells); {
			color := cells[x].Color
			run.Reset()
			for ; x < len(cells) && cells[x].Color == color; x++ {
				run.WriteRune(cells[x].Rune)
			}
			sb.WriteString(t.style(color).Render(run.String()))
		}
	}
	return sb.String()
}

func (t *Terminal) style(c core.Color) lipgloss.Style {
	if c.Valid() {
		return t.styles[c]
	}
	return t.styles[core.ColorDefault]
}
