package bufview

import (
	"github.com/kungfusheep/glyphcore/internal/bufcore"
	"github.com/kungfusheep/glyphcore/internal/style"
)

// LineStyler renders one line of a text buffer into styled spans; normally
// satisfied by a syntax highlighter, but a plain-text fallback is always
// available so a buffer is renderable even with no grammar loaded.
type LineStyler interface {
	StyledLine(line int) style.StyledLine
}

// plainStyler renders every line as a single unstyled span.
type plainStyler struct{ tb *bufcore.TextBuffer }

func (p plainStyler) StyledLine(line int) style.StyledLine {
	return style.PlainLine(p.tb.LineContent(line))
}

// TextBufferView adapts a bufcore.TextBuffer to the BufferView contract.
// Mutating commands (run by a focus target) report their DirtyLines via
// MarkDirty; TakeDirtyLines drains the accumulated summary.
type TextBufferView struct {
	tb      *bufcore.TextBuffer
	styler  LineStyler
	dirty   bufcore.DirtyLines
	cursorShape style.CursorShape
	blinking    bool
}

// NewTextBufferView wraps tb. If styler is nil, lines render as plain text.
func NewTextBufferView(tb *bufcore.TextBuffer, styler LineStyler) *TextBufferView {
	v := &TextBufferView{tb: tb, styler: styler, cursorShape: style.CursorBlock, blinking: true}
	if v.styler == nil {
		v.styler = plainStyler{tb: tb}
	}
	return v
}

// Buffer returns the underlying text buffer for command execution.
func (v *TextBufferView) Buffer() *bufcore.TextBuffer { return v.tb }

// MarkDirty merges d into the accumulated dirty summary.
func (v *TextBufferView) MarkDirty(d bufcore.DirtyLines) {
	v.dirty = bufcore.Merge(v.dirty, d, v.tb.LineCount())
}

// SetCursorShape sets the cursor rendering shape.
func (v *TextBufferView) SetCursorShape(shape style.CursorShape) { v.cursorShape = shape }

// SetBlinking toggles cursor blink visibility state (used by CursorBlink events).
func (v *TextBufferView) SetBlinking(b bool) { v.blinking = b }

func (v *TextBufferView) LineCount() int { return v.tb.LineCount() }

func (v *TextBufferView) StyledLine(i int) style.StyledLine { return v.styler.StyledLine(i) }

func (v *TextBufferView) TakeDirtyLines() DirtyLines {
	d := v.dirty
	v.dirty = bufcore.None()
	return FromBufcore(d)
}

func (v *TextBufferView) CursorInfo() CursorInfo {
	c := v.tb.Cursor()
	shape := v.cursorShape
	if !v.blinking {
		shape = style.CursorHidden
	}
	return CursorInfo{Line: c.Line, Col: c.Col, Shape: shape, Blinking: v.blinking}
}

func (v *TextBufferView) IsEditable() bool { return true }
