// Package focus defines the contract every input-receiving pane content
// implements (text buffer, selector, terminal, find-strip), and the
// stateless key-to-command table for the built-in text buffer target.
package focus

import (
	"github.com/kungfusheep/glyphcore/internal/bufcore"
	"github.com/kungfusheep/glyphcore/internal/termio"
	"github.com/kungfusheep/glyphcore/internal/viewport"
)

// Handled reports whether a focus target consumed an event.
type Handled bool

const (
	No  Handled = false
	Yes Handled = true
)

// Context carries the geometry a focus target's handlers use to keep the
// cursor in view. Implementations hold their own buffer/viewport references
// and their own dirty-line accumulator (BufferTarget uses TBV).
type Context struct {
	LineHeightPx int
	ViewWidthPx  int
	ViewHeightPx int
}

// Target is the contract every focusable pane content implements.
type Target interface {
	HandleKey(e termio.KeyEvent, ctx *Context) Handled
	HandleScroll(dyPx int, ctx *Context)
	HandleMouse(col, row int, kind MouseKind, ctx *Context) Handled
}

// MouseKind discriminates the mouse actions a focus target receives.
type MouseKind uint8

const (
	MouseDown MouseKind = iota
	MouseUp
	MouseDrag
)

// Command is a resolved buffer operation, independent of how it was
// triggered.
type Command uint8

const (
	CmdNone Command = iota
	CmdInsertChar
	CmdInsertNewline
	CmdInsertTab
	CmdDeleteBackward
	CmdDeleteForward
	CmdDeleteToLineStart
	CmdDeleteToLineEnd
	CmdMoveLeft
	CmdMoveRight
	CmdMoveUp
	CmdMoveDown
	CmdMoveToLineStart
	CmdMoveToLineEnd
	CmdMoveToBufferStart
	CmdMoveToBufferEnd
)

// ResolveCommand is a pure table lookup from a key event to the command it
// triggers, with no modal state. Returns CmdNone for keys with no buffer
// meaning.
func ResolveCommand(e termio.KeyEvent) (Command, bool) {
	if e.Special == termio.KeyNone && e.Rune != 0 && !e.Modifiers.Control && !e.Modifiers.Cmd {
		return CmdInsertChar, true
	}

	if e.Modifiers.Control && e.Special == termio.KeyNone {
		switch e.Rune {
		case 'a':
			return CmdMoveToLineStart, true
		case 'e':
			return CmdMoveToLineEnd, true
		}
	}

	switch e.Special {
	case termio.KeyReturn:
		return CmdInsertNewline, true
	case termio.KeyTab:
		return CmdInsertTab, true
	case termio.KeyBackspace:
		return CmdDeleteBackward, true
	case termio.KeyDelete:
		return CmdDeleteForward, true
	case termio.KeyLeft:
		return CmdMoveLeft, true
	case termio.KeyRight:
		return CmdMoveRight, true
	case termio.KeyUp:
		return CmdMoveUp, true
	case termio.KeyDown:
		return CmdMoveDown, true
	case termio.KeyHome:
		return CmdMoveToLineStart, true
	case termio.KeyEnd:
		return CmdMoveToLineEnd, true
	}
	return CmdNone, false
}

// BufferTarget is the built-in Target wrapping a text buffer, its
// viewport, and a TextBufferView used to accumulate dirty lines.
type BufferTarget struct {
	Buf  *bufcore.TextBuffer
	View *viewport.Viewport
	TBV  BufferViewSink
}

// BufferViewSink is the minimal dirty-accumulation surface BufferTarget
// needs from a bufview.TextBufferView, named so focus does not need to
// import the concrete type to accept any compatible sink.
type BufferViewSink interface {
	MarkDirty(bufcore.DirtyLines)
}

// HandleKey resolves e to a command and applies it to Buf, marking dirty
// lines and ensuring the cursor stays visible.
func (t *BufferTarget) HandleKey(e termio.KeyEvent, ctx *Context) Handled {
	cmd, ok := ResolveCommand(e)
	if !ok {
		return No
	}

	beforeLine := t.Buf.Cursor().Line
	var dirty bufcore.DirtyLines

	switch cmd {
	case CmdInsertChar:
		dirty = t.Buf.InsertChar(e.Rune)
	case CmdInsertNewline:
		dirty = t.Buf.InsertChar('\n')
	case CmdInsertTab:
		dirty = t.Buf.InsertChar('\t')
	case CmdDeleteBackward:
		dirty = t.Buf.DeleteBackward()
	case CmdDeleteForward:
		dirty = t.Buf.DeleteForward()
	case CmdDeleteToLineStart:
		dirty = t.Buf.DeleteToLineStart()
	case CmdDeleteToLineEnd:
		dirty = t.Buf.DeleteToLineEnd()
	case CmdMoveLeft:
		t.Buf.MoveLeft()
		dirty = cursorMoveDirty(beforeLine, t.Buf.Cursor().Line)
	case CmdMoveRight:
		t.Buf.MoveRight()
		dirty = cursorMoveDirty(beforeLine, t.Buf.Cursor().Line)
	case CmdMoveUp:
		t.Buf.MoveUp()
		dirty = cursorMoveDirty(beforeLine, t.Buf.Cursor().Line)
	case CmdMoveDown:
		t.Buf.MoveDown()
		dirty = cursorMoveDirty(beforeLine, t.Buf.Cursor().Line)
	case CmdMoveToLineStart:
		t.Buf.MoveToLineStart()
		dirty = cursorMoveDirty(beforeLine, t.Buf.Cursor().Line)
	case CmdMoveToLineEnd:
		t.Buf.MoveToLineEnd()
		dirty = cursorMoveDirty(beforeLine, t.Buf.Cursor().Line)
	case CmdMoveToBufferStart:
		t.Buf.MoveToBufferStart()
		dirty = cursorMoveDirty(beforeLine, t.Buf.Cursor().Line)
	case CmdMoveToBufferEnd:
		t.Buf.MoveToBufferEnd()
		dirty = cursorMoveDirty(beforeLine, t.Buf.Cursor().Line)
	}

	if t.TBV != nil {
		t.TBV.MarkDirty(dirty)
	}
	t.ensureCursorVisible(ctx)
	return Yes
}

// cursorMoveDirty marks only the cursor's before/after lines dirty for a
// pure movement command.
func cursorMoveDirty(before, after int) bufcore.DirtyLines {
	if before == after {
		return bufcore.Single(before)
	}
	return bufcore.Range(minInt(before, after), maxInt(before, after)+1)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// HandleScroll converts a pixel delta to a line count by rounding
// dy/lineHeight and applies it to the viewport; a non-zero change marks
// the viewport fully dirty.
func (t *BufferTarget) HandleScroll(dyPx int, ctx *Context) {
	if ctx.LineHeightPx <= 0 {
		return
	}
	lines := roundDiv(dyPx, ctx.LineHeightPx)
	if lines == 0 {
		return
	}
	total := t.Buf.LineCount()
	t.View.Scroller.SetScrollOffsetPx(t.View.Scroller.OffsetPx()-lines*ctx.LineHeightPx, total)
	if t.TBV != nil {
		t.TBV.MarkDirty(bufcore.FromLineToEnd(0))
	}
}

// roundDiv rounds n/d to the nearest integer, away from zero on ties.
func roundDiv(n, d int) int {
	if n >= 0 {
		return (n + d/2) / d
	}
	return -((-n + d/2) / d)
}

// HandleMouse places the cursor at the buffer position under col/row. A
// MouseDown moves the cursor and clears the selection; a MouseDrag moves
// the cursor and keeps any existing selection anchor. No mouse event sets
// an anchor, so a drag on its own does not create a selection.
func (t *BufferTarget) HandleMouse(col, row int, kind MouseKind, ctx *Context) Handled {
	line := t.View.Scroller.FirstVisibleRow() + row
	if line < 0 {
		line = 0
	}
	if line >= t.Buf.LineCount() {
		line = t.Buf.LineCount() - 1
	}
	pos := bufcore.Position{Line: line, Col: col}

	switch kind {
	case MouseDown:
		t.Buf.SetCursor(pos)
	case MouseDrag:
		t.Buf.MoveCursorPreservingSelection(pos)
	}
	t.ensureCursorVisible(ctx)
	return Yes
}

// ensureCursorVisible scrolls the viewport minimally so the cursor's line
// is on screen.
func (t *BufferTarget) ensureCursorVisible(ctx *Context) {
	if ctx.LineHeightPx <= 0 {
		return
	}
	total := t.Buf.LineCount()
	t.View.Scroller.UpdateSize(ctx.ViewHeightPx, total)
	t.View.Scroller.EnsureVisible(t.Buf.Cursor().Line, total)
}
