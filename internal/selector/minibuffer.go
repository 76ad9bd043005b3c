package selector

import "github.com/kungfusheep/glyphcore/internal/bufcore"

// MiniBuffer wraps a text buffer used as a single-line editing surface. It
// holds no viewport and does not handle key events itself: callers invoke
// its editing methods directly and use Filtered to keep Return/Up/Down out
// of it (normally routing them to a Selector). MiniBuffer does not itself
// reject a '\n' passed to InsertChar.
type MiniBuffer struct {
	tb *bufcore.TextBuffer
}

// NewMiniBuffer returns an empty mini-buffer.
func NewMiniBuffer() *MiniBuffer {
	return &MiniBuffer{tb: bufcore.NewTextBuffer()}
}

// Content returns the current single-line text.
func (m *MiniBuffer) Content() string { return m.tb.Content() }

// CursorCol returns the cursor's column (the buffer never has more than
// one line, so there is no meaningful row).
func (m *MiniBuffer) CursorCol() int { return m.tb.Cursor().Col }

// SelectionRange returns the selection as a column range, if any.
func (m *MiniBuffer) SelectionRange() (start, end int, ok bool) {
	s, e, has := m.tb.SelectionRange()
	if !has {
		return 0, 0, false
	}
	return s.Col, e.Col, true
}

// HasSelection reports whether there is an active selection.
func (m *MiniBuffer) HasSelection() bool { return m.tb.HasSelection() }

// Clear resets the mini-buffer to empty content with no selection.
func (m *MiniBuffer) Clear() {
	m.tb = bufcore.NewTextBuffer()
}

// InsertChar, DeleteBackward, DeleteForward, MoveLeft, MoveRight delegate
// directly to the underlying buffer; these are the commands a buffer
// focus target would dispatch for any key that is not filtered out.
func (m *MiniBuffer) InsertChar(ch rune) { m.tb.InsertChar(ch) }
func (m *MiniBuffer) DeleteBackward()    { m.tb.DeleteBackward() }
func (m *MiniBuffer) DeleteForward()     { m.tb.DeleteForward() }
func (m *MiniBuffer) MoveLeft()          { m.tb.MoveLeft() }
func (m *MiniBuffer) MoveRight()         { m.tb.MoveRight() }
func (m *MiniBuffer) MoveToLineStart()   { m.tb.MoveToLineStart() }
func (m *MiniBuffer) MoveToLineEnd()     { m.tb.MoveToLineEnd() }

// Filtered reports whether special is one of the keys the mini-buffer
// does not consume (Return, Up, Down): callers should route these to the
// selector/list widget driving the mini-buffer instead.
func Filtered(special SpecialKey) bool {
	switch special {
	case KeyReturn, KeyUp, KeyDown:
		return true
	default:
		return false
	}
}
