package termio

// SpecialKey enumerates the non-printable keys the encoder knows how to
// translate into escape sequences.
type SpecialKey uint8

const (
	KeyNone SpecialKey = iota
	KeyReturn
	KeyTab
	KeyEscape
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyPageUp
	KeyPageDown
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
)

// Modifiers carries the held-modifier state for a key or mouse event.
type Modifiers struct {
	Shift   bool
	Option  bool
	Control bool
	Cmd     bool
}

// KeyEvent is the input encoder's view of a key press: either Rune (a
// printable character) or Special is set, never both meaningfully.
type KeyEvent struct {
	Rune    rune
	Special SpecialKey
	Modifiers
}

// arrowModifierCode computes m = 1 + shift?1 + option?2 + control?4, the
// CSI parameter xterm uses to encode modified arrow/Home/End/function
// keys.
func arrowModifierCode(mod Modifiers) int {
	m := 1
	if mod.Shift {
		m += 1
	}
	if mod.Option {
		m += 2
	}
	if mod.Control {
		m += 4
	}
	return m
}

func hasAnyModifier(mod Modifiers) bool {
	return mod.Shift || mod.Option || mod.Control
}
