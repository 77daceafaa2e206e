package render

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/frameloop/internal/core"
)

func newPlain() *Terminal {
	// A renderer on a non-terminal writer has no color profile, so frames
	// are plain text.
	return NewTerminal(lipgloss.NewRenderer(io.Discard))
}

func TestInitRejectsEmptyWindow(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -1, -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newPlain()
			assert.Error(t, r.Init("x", tc.width, tc.height))
			assert.False(t, r.Open())
		})
	}
}

func TestPresentRendersScreen(t *testing.T) {
	r := newPlain()
	require.NoError(t, r.Init("frameloop", 6, 2))
	assert.Equal(t, "frameloop", r.Title())

	r.Screen().DrawTextColor(0, 0, "ab", core.ColorGreen)
	r.Screen().DrawText(2, 0, "cd")
	r.Screen().SetStyled(5, 1, '@', core.ColorOrange)
	r.Present()

	assert.Equal(t, "abcd  \n     @", r.Frame())
	assert.Equal(t, uint64(1), r.Presented())

	r.ClearWindow()
	assert.Equal(t, "      \n      ", r.Screen().String())
	assert.Equal(t, "abcd  \n     @", r.Frame(), "the last frame stays until the next present")
}

func TestResize(t *testing.T) {
	r := newPlain()
	assert.Error(t, r.Resize(10, 10), "resizing a closed window")

	require.NoError(t, r.Init("", 4, 4))
	require.NoError(t, r.Resize(8, 2))
	assert.Equal(t, 8, r.Screen().Width())
	assert.Equal(t, 2, r.Screen().Height())
	assert.Error(t, r.Resize(0, 2))
}

func TestQuitStopsPresenting(t *testing.T) {
	r := newPlain()
	require.NoError(t, r.Init("", 3, 1))
	r.Present()
	r.Quit()

	r.Screen().DrawText(0, 0, "xyz")
	r.Present()
	assert.Empty(t, r.Frame())
	assert.Equal(t, uint64(1), r.Presented())
	assert.False(t, r.Open())
}

func TestUnknownColorFallsBack(t *testing.T) {
	r := newPlain()
	require.NoError(t, r.Init("", 2, 1))
	r.Screen().SetStyled(0, 0, 'z', core.Color(200))
	r.Present()
	assert.Equal(t, "z ", r.Frame())
}
