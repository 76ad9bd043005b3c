// Package termio implements the pure, side-effect-free functions that turn
// key/mouse/scroll events into the byte sequences an xterm-compatible
// terminal expects on its stdin. Mode-flag bit meanings are
// aligned with github.com/danielgatis/go-headless-term's own TerminalMode
// naming so a caller holding that terminal's mode state can translate it
// into ModeFlags with simple bit tests.
package termio

// ModeFlags is a bitset of terminal input-encoding modes.
type ModeFlags uint32

const (
	ModeAppCursor ModeFlags = 1 << iota
	ModeBracketedPaste
	ModeSGRMouse
	ModeMouseReportClick
	ModeMouseMotion
	ModeMouseDrag
	ModeAltScreen
)

// Has reports whether every bit in want is set in m.
func (m ModeFlags) Has(want ModeFlags) bool { return m&want == want }
