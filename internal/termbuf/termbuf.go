// Package termbuf adapts github.com/danielgatis/go-headless-term's
// Terminal to the bufview.BufferView contract, attaches a PTY-backed child
// process via internal/ptyproc, and applies byte-budgeted draining so a
// bursty child cannot starve input processing.
package termbuf

import (
	"github.com/danielgatis/go-headless-term"

	"github.com/kungfusheep/glyphcore/internal/bufcore"
	"github.com/kungfusheep/glyphcore/internal/bufview"
	"github.com/kungfusheep/glyphcore/internal/ptyproc"
	"github.com/kungfusheep/glyphcore/internal/style"
)

// defaultByteBudget caps how many PTY output bytes one PollEvents call
// consumes, preventing a bursty child from starving input processing.
const defaultByteBudget = 64 * 1024

// TerminalBuffer wraps an emulator grid and, optionally, a live PTY.
type TerminalBuffer struct {
	term *headlessterm.Terminal
	pty  *ptyproc.Handle

	byteBudget int
	dirty      bufcore.DirtyLines
	needsMore  bool
}

// New creates an empty terminal buffer with no attached process.
func New(cols, rows, scrollbackLines int) *TerminalBuffer {
	term := headlessterm.New(
		headlessterm.WithSize(rows, cols),
		headlessterm.WithScrollback(nil),
	)
	term.SetMaxScrollback(scrollbackLines)
	return &TerminalBuffer{term: term, byteBudget: defaultByteBudget}
}

// SpawnShell attaches a PTY running shell in cwd.
func (t *TerminalBuffer) SpawnShell(shell, cwd string) error {
	return t.SpawnCommand(shell, nil, cwd)
}

// SpawnCommand attaches a PTY running cmd/args in cwd.
func (t *TerminalBuffer) SpawnCommand(cmd string, args []string, cwd string) error {
	rows, cols := t.term.Rows(), t.term.Cols()
	h, err := ptyproc.Spawn(cmd, args, cwd, rows, cols, false)
	if err != nil {
		return err
	}
	t.pty = h
	return nil
}

// WriteInput routes bytes to the attached PTY's stdin, if any.
func (t *TerminalBuffer) WriteInput(b []byte) {
	if t.pty == nil {
		return
	}
	_, _ = t.pty.Write(b)
}

// Resize resizes both the emulator grid and the attached PTY (if any),
// and marks the whole viewport dirty.
func (t *TerminalBuffer) Resize(rows, cols int) {
	t.term.Resize(rows, cols)
	if t.pty != nil {
		_ = t.pty.Resize(rows, cols)
	}
	t.dirty = bufcore.FromLineToEnd(0)
}

// PollEvents drains the PTY event channel, feeding output bytes into the
// emulator until the configured byte budget is reached, and returns whether
// any events were processed. If the budget is exhausted while more output
// is queued, the next queued event is fed as well and NeedsFollowUpWakeup
// reports true so the drain loop can re-enter without blocking user input.
func (t *TerminalBuffer) PollEvents() bool {
	if t.pty == nil {
		return false
	}
	processed := false
	consumed := 0
	t.needsMore = false

	for consumed < t.byteBudget {
		ev, ok := t.pty.TryRecv()
		if !ok {
			break
		}
		processed = true
		switch ev.Kind {
		case ptyproc.EventOutput:
			_, _ = t.term.Write(ev.Bytes)
			consumed += len(ev.Bytes)
			t.dirty = bufcore.Merge(t.dirty, bufcore.FromLineToEnd(0), t.LineCount())
		case ptyproc.EventError:
			// a read error ends the child's output stream; nothing further
			// to drain.
		}
	}
	if consumed >= t.byteBudget {
		// the peek takes the event off the channel, so it is fed here
		// rather than dropped
		if ev, ok := t.pty.TryRecv(); ok {
			if ev.Kind == ptyproc.EventOutput {
				_, _ = t.term.Write(ev.Bytes)
			}
			t.needsMore = true
		}
	}
	return processed
}

// NeedsFollowUpWakeup reports whether the last PollEvents call stopped due
// to the byte budget with more data still queued.
func (t *TerminalBuffer) NeedsFollowUpWakeup() bool { return t.needsMore }

// LineCount implements bufview.BufferView. On the alternate screen it is
// the visible row count; on the primary screen it includes scrollback.
func (t *TerminalBuffer) LineCount() int {
	if t.term.IsAlternateScreen() {
		return t.term.Rows()
	}
	return t.term.ScrollbackLen() + t.term.Rows()
}

// StyledLine implements bufview.BufferView.
func (t *TerminalBuffer) StyledLine(i int) style.StyledLine {
	cols := t.term.Cols()
	var cells []headlessterm.Cell
	if !t.term.IsAlternateScreen() && i < t.term.ScrollbackLen() {
		cells = t.term.ScrollbackLine(i)
	} else {
		row := i
		if !t.term.IsAlternateScreen() {
			row -= t.term.ScrollbackLen()
		}
		cells = make([]headlessterm.Cell, cols)
		for c := 0; c < cols; c++ {
			if cell := t.term.Cell(row, c); cell != nil {
				cells[c] = *cell
			}
		}
	}

	spans := make([]style.Span, 0, 4)
	for c := 0; c < cols; c++ {
		var cell headlessterm.Cell
		if c < len(cells) {
			cell = cells[c]
		}
		ch := cell.Char
		if ch == 0 {
			ch = ' '
		}
		spans = style.AppendMerged(spans, style.Span{Text: string(ch), Style: cellStyle(cell)})
	}
	return style.StyledLine{Spans: spans}
}

func cellStyle(c headlessterm.Cell) style.Style {
	s := style.Default().Foreground(colorFrom(c.Fg)).Background(colorFrom(c.Bg))
	if c.HasFlag(headlessterm.CellFlagBold) {
		s = s.WithBold()
	}
	if c.HasFlag(headlessterm.CellFlagItalic) {
		s = s.WithItalic()
	}
	if c.HasFlag(headlessterm.CellFlagStrike) {
		s = s.WithStrikethrough()
	}
	if c.HasFlag(headlessterm.CellFlagReverse) {
		s = s.WithReverse()
	}
	switch {
	case c.HasFlag(headlessterm.CellFlagDoubleUnderline):
		s = s.WithUnderline(style.UnderlineDouble)
	case c.HasFlag(headlessterm.CellFlagCurlyUnderline):
		s = s.WithUnderline(style.UnderlineCurly)
	case c.HasFlag(headlessterm.CellFlagUnderline):
		s = s.WithUnderline(style.UnderlineSingle)
	}
	return s
}

func colorFrom(c interface{ RGBA() (r, g, b, a uint32) }) style.Color {
	if c == nil {
		return style.DefaultColor()
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return style.DefaultColor()
	}
	return style.RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// TakeDirtyLines implements bufview.BufferView.
func (t *TerminalBuffer) TakeDirtyLines() bufview.DirtyLines {
	d := t.dirty
	t.dirty = bufcore.None()
	return bufview.FromBufcore(d)
}

// CursorInfo implements bufview.BufferView. Document-line position
// includes the scrollback offset on the primary screen.
func (t *TerminalBuffer) CursorInfo() bufview.CursorInfo {
	row, col := t.term.CursorPos()
	line := row
	if !t.term.IsAlternateScreen() {
		line += t.term.ScrollbackLen()
	}
	return bufview.CursorInfo{
		Line:     line,
		Col:      col,
		Shape:    cursorShapeFrom(t.term.CursorStyle()),
		Blinking: isBlinkingStyle(t.term.CursorStyle()) && t.term.CursorVisible(),
	}
}

func cursorShapeFrom(s headlessterm.CursorStyle) style.CursorShape {
	switch s {
	case headlessterm.CursorStyleBlinkingUnderline, headlessterm.CursorStyleSteadyUnderline:
		return style.CursorUnderline
	case headlessterm.CursorStyleBlinkingBar, headlessterm.CursorStyleSteadyBar:
		return style.CursorBeam
	default:
		return style.CursorBlock
	}
}

func isBlinkingStyle(s headlessterm.CursorStyle) bool {
	switch s {
	case headlessterm.CursorStyleBlinkingBlock, headlessterm.CursorStyleBlinkingUnderline, headlessterm.CursorStyleBlinkingBar:
		return true
	default:
		return false
	}
}

// IsEditable implements bufview.BufferView: input always goes through the
// input encoder, never direct text edits.
func (t *TerminalBuffer) IsEditable() bool { return false }

// Close releases the attached PTY, if any.
func (t *TerminalBuffer) Close() error {
	if t.pty == nil {
		return nil
	}
	return t.pty.Close()
}

var _ bufview.BufferView = (*TerminalBuffer)(nil)
