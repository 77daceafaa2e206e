package event

import (
	"fmt"
	"strings"
)

// KeyCode identifies a physical key. Keys with an ASCII representation use
// their lowercase character; the rest are numbered above 0x7f.
type KeyCode uint32

const (
	KeyUnknown   KeyCode = 0
	KeyBackspace KeyCode = '\b'
	KeyTab       KeyCode = '\t'
	KeyReturn    KeyCode = '\r'
	KeyEscape    KeyCode = '\033'
	KeySpace     KeyCode = ' '
	KeyDelete    KeyCode = '\177'

	Key0 KeyCode = '0'
	Key9 KeyCode = '9'
	KeyA KeyCode = 'a'
	KeyZ KeyCode = 'z'
)

const (
	KeyCapslock KeyCode = 0x80 + iota
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyPrintscreen
	KeyScrolllock
	KeyPause
	KeyInsert
	KeyHome
	KeyPageUp
	KeyEnd
	KeyPageDown
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyLCtrl
	KeyLShift
	KeyLAlt
	KeyLSuper
	KeyRCtrl
	KeyRShift
	KeyRAlt
	KeyRSuper
)

var specialNames = map[KeyCode]string{
	KeyBackspace:   "backspace",
	KeyTab:         "tab",
	KeyReturn:      "enter",
	KeyEscape:      "esc",
	KeySpace:       "space",
	KeyDelete:      "delete",
	KeyCapslock:    "capslock",
	KeyF1:          "f1",
	KeyF2:          "f2",
	KeyF3:          "f3",
	KeyF4:          "f4",
	KeyF5:          "f5",
	KeyF6:          "f6",
	KeyF7:          "f7",
	KeyF8:          "f8",
	KeyF9:          "f9",
	KeyF10:         "f10",
	KeyF11:         "f11",
	KeyF12:         "f12",
	KeyPrintscreen: "printscreen",
	KeyScrolllock:  "scrolllock",
	KeyPause:       "pause",
	KeyInsert:      "insert",
	KeyHome:        "home",
	KeyPageUp:      "pgup",
	KeyEnd:         "end",
	KeyPageDown:    "pgdown",
	KeyRight:       "right",
	KeyLeft:        "left",
	KeyDown:        "down",
	KeyUp:          "up",
	KeyLCtrl:       "lctrl",
	KeyLShift:      "lshift",
	KeyLAlt:        "lalt",
	KeyLSuper:      "lsuper",
	KeyRCtrl:       "rctrl",
	KeyRShift:      "rshift",
	KeyRAlt:        "ralt",
	KeyRSuper:      "rsuper",
}

var namedKeys = func() map[string]KeyCode {
	m := make(map[string]KeyCode, len(specialNames)+3)
	for code, name := range specialNames {
		m[name] = code
	}
	// Aliases accepted in config files.
	m["return"] = KeyReturn
	m["escape"] = KeyEscape
	m[" "] = KeySpace
	return m
}()

// IsCharKey reports whether code has a printable ASCII representation.
func IsCharKey(code KeyCode) bool {
	return code > ' ' && code < KeyDelete
}

// ParseKeyCode resolves a key name such as "w", "space" or "f1".
func ParseKeyCode(name string) (KeyCode, error) {
	if code, ok := namedKeys[strings.ToLower(name)]; ok {
		return code, nil
	}
	r := []rune(name)
	if len(r) == 1 && IsCharKey(KeyCode(r[0])) {
		return lower(KeyCode(r[0])), nil
	}
	return KeyUnknown, fmt.Errorf("event: unknown key name %q", name)
}

func (k KeyCode) String() string {
	if name, ok := specialNames[k]; ok {
		return name
	}
	if IsCharKey(k) {
		return string(rune(k))
	}
	if k == KeyUnknown {
		return "unknown"
	}
	return fmt.Sprintf("key(%#x)", uint32(k))
}

func lower(k KeyCode) KeyCode {
	if k >= 'A' && k <= 'Z' {
		return k + ('a' - 'A')
	}
	return k
}

// Modifiers is the set of modifier keys held with a key. The composite
// values Ctrl, Shift, Alt and Super include both sides plus a marker bit and
// match either side when used as a filter.
type Modifiers uint16

const (
	ModNone    Modifiers = 0
	ModLShift  Modifiers = 1 << 0
	ModRShift  Modifiers = 1 << 1
	ModLCtrl   Modifiers = 1 << 2
	ModRCtrl   Modifiers = 1 << 3
	ModLAlt    Modifiers = 1 << 4
	ModRAlt    Modifiers = 1 << 5
	ModLSuper  Modifiers = 1 << 6
	ModRSuper  Modifiers = 1 << 7
	ModNumlock Modifiers = 1 << 8
	ModCaps    Modifiers = 1 << 9
	ModMode    Modifiers = 1 << 10
	ModCtrl    Modifiers = 1<<11 | ModLCtrl | ModRCtrl
	ModShift   Modifiers = 1<<12 | ModLShift | ModRShift
	ModAlt     Modifiers = 1<<13 | ModLAlt | ModRAlt
	ModSuper   Modifiers = 1<<14 | ModLSuper | ModRSuper

	physicalMods  Modifiers = 1<<11 - 1
	compositeBits Modifiers = 1<<11 | 1<<12 | 1<<13 | 1<<14
)

// Validate checks that m is usable as a filter: either a set of physical
// modifiers or exactly one composite value.
func (m Modifiers) Validate() error {
	if m&^(physicalMods|compositeBits) != 0 {
		return fmt.Errorf("event: invalid modifier bits %#x", uint16(m))
	}
	marks := m & compositeBits
	if marks == 0 {
		return nil
	}
	switch m {
	case ModCtrl, ModShift, ModAlt, ModSuper:
		return nil
	}
	return fmt.Errorf("event: invalid modifier combination %#x", uint16(m))
}

// Matches reports whether the held modifiers m satisfy filter. ModNone only
// matches when nothing is held.
func (m Modifiers) Matches(filter Modifiers) bool {
	switch filter {
	case ModNone:
		return m&physicalMods == 0
	case ModCtrl, ModShift, ModAlt, ModSuper:
		return m&filter&physicalMods != 0
	default:
		return m&filter == filter
	}
}

// MouseCode identifies a mouse button.
type MouseCode uint8

const (
	MouseNone MouseCode = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseX1
	MouseX2
)

// MouseButtons is the number of distinct MouseCode values.
const MouseButtons = int(MouseX2) + 1

func (m MouseCode) String() string {
	switch m {
	case MouseNone:
		return "none"
	case MouseLeft:
		return "left"
	case MouseMiddle:
		return "middle"
	case MouseRight:
		return "right"
	case MouseX1:
		return "x1"
	case MouseX2:
		return "x2"
	default:
		return fmt.Sprintf("mouse(%d)", uint8(m))
	}
}
