// Package bufview defines the read-only polymorphic contract that both text
// buffers and terminal buffers satisfy, so the viewport and rendering layer
// can treat any pane's content uniformly.
package bufview

import "github.com/kungfusheep/glyphcore/internal/style"

// CursorInfo describes where and how a buffer's cursor should be drawn.
type CursorInfo struct {
	Line, Col int
	Shape     style.CursorShape
	Blinking  bool
}

// BufferView is the capability set every pane's content must expose to be
// rendered and scrolled: line count, a styled line at an index, a way to
// drain accumulated dirty lines, cursor info, and whether the content
// accepts edits.
type BufferView interface {
	// LineCount returns the number of renderable lines.
	LineCount() int
	// StyledLine returns the rendered content of line i.
	StyledLine(i int) style.StyledLine
	// TakeDirtyLines returns and clears the lines that changed since the
	// last call.
	TakeDirtyLines() DirtyLines
	// CursorInfo returns the current cursor position and rendering.
	CursorInfo() CursorInfo
	// IsEditable reports whether input should be routed here as text edits
	// (true) or as raw terminal input (false).
	IsEditable() bool
}

// DirtyKind mirrors bufcore.DirtyKind at the BufferView boundary, so
// bufview does not need to import bufcore just to describe dirtiness.
type DirtyKind uint8

const (
	DirtyNone DirtyKind = iota
	DirtySingle
	DirtyRange
	DirtyFromLineToEnd
)

// DirtyLines is the BufferView-level dirty summary.
type DirtyLines struct {
	Kind     DirtyKind
	Line     int
	From, To int
}
