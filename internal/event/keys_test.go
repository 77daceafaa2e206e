package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKeyCode(t *testing.T) {
	tests := []struct {
		name     string
		expected KeyCode
		wantErr  bool
	}{
		{"w", 'w', false},
		{"W", 'w', false},
		{"space", KeySpace, false},
		{"Enter", KeyReturn, false},
		{"return", KeyReturn, false},
		{"esc", KeyEscape, false},
		{"f1", KeyF1, false},
		{"up", KeyUp, false},
		{"?", '?', false},
		{":", ':', false},
		{"hyperdrive", KeyUnknown, true},
		{"", KeyUnknown, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, err := ParseKeyCode(tc.name)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, code)
		})
	}
}

func TestKeyCodeStringRoundTrip(t *testing.T) {
	for _, code := range []KeyCode{KeyA, KeySpace, KeyReturn, KeyF12, KeyPageDown, '/'} {
		parsed, err := ParseKeyCode(code.String())
		assert.NoError(t, err, code.String())
		assert.Equal(t, code, parsed)
	}
}

func TestModifiersMatches(t *testing.T) {
	tests := []struct {
		name   string
		held   Modifiers
		filter Modifiers
		want   bool
	}{
		{"none held matches none", ModNone, ModNone, true},
		{"shift held fails none", ModLShift, ModNone, false},
		{"left ctrl matches ctrl", ModLCtrl, ModCtrl, true},
		{"right ctrl matches ctrl", ModRCtrl, ModCtrl, true},
		{"alt does not match ctrl", ModLAlt, ModCtrl, false},
		{"left shift matches left shift", ModLShift | ModLCtrl, ModLShift, true},
		{"right shift fails left shift", ModRShift, ModLShift, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.held.Matches(tc.filter))
		})
	}
}

func TestModifiersValidate(t *testing.T) {
	assert.NoError(t, ModNone.Validate())
	assert.NoError(t, (ModLShift | ModRAlt).Validate())
	assert.NoError(t, ModCtrl.Validate())
	assert.Error(t, (ModCtrl | ModLShift).Validate())
	assert.Error(t, Modifiers(1<<11).Validate(), "bare composite marker")
	assert.Error(t, Modifiers(1<<15).Validate())
}
