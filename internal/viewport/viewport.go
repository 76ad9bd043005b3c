package viewport

import "github.com/kungfusheep/glyphcore/internal/bufview"

// RegionKind discriminates the screen-space dirty region a buffer-space
// DirtyLines summary maps onto once intersected with the visible range.
type RegionKind uint8

const (
	RegionNone RegionKind = iota
	RegionLines
	RegionFullViewport
)

// Region is the screen-space dirty-region result of DirtyLinesToRegion.
type Region struct {
	Kind     RegionKind
	From, To int // screen-space row indices, valid when Kind == RegionLines
}

// Viewport layers buffer/wrap awareness on top of a RowScroller.
type Viewport struct {
	Scroller *RowScroller
}

// NewViewport creates a viewport over a rowHeight-px row.
func NewViewport(rowHeight int) *Viewport {
	return &Viewport{Scroller: NewRowScroller(rowHeight)}
}

// DirtyLinesToRegion intersects a buffer-space dirty summary with the
// visible range and emits a screen-space region.
func (v *Viewport) DirtyLinesToRegion(dirty bufview.DirtyLines, totalLines int) Region {
	first, end := v.Scroller.VisibleRange(totalLines)

	switch dirty.Kind {
	case bufview.DirtyNone:
		return Region{Kind: RegionNone}
	case bufview.DirtySingle:
		if dirty.Line < first || dirty.Line >= end {
			return Region{Kind: RegionNone}
		}
		row := dirty.Line - first
		return Region{Kind: RegionLines, From: row, To: row + 1}
	case bufview.DirtyRange:
		from, to := dirty.From, dirty.To
		if to <= first || from >= end {
			return Region{Kind: RegionNone}
		}
		if from <= first {
			return Region{Kind: RegionFullViewport}
		}
		if to > end {
			to = end
		}
		return Region{Kind: RegionLines, From: from - first, To: to - first}
	case bufview.DirtyFromLineToEnd:
		if dirty.Line >= end {
			return Region{Kind: RegionNone}
		}
		if dirty.Line <= first {
			return Region{Kind: RegionFullViewport}
		}
		return Region{Kind: RegionLines, From: dirty.Line - first, To: end - first}
	default:
		return Region{Kind: RegionNone}
	}
}

// WrapLayout reports how a buffer line lays out across wrapped screen rows.
type WrapLayout interface {
	// ScreenRowsForLine returns how many screen rows a line of lineLen
	// characters occupies at the current wrap width.
	ScreenRowsForLine(lineLen int) int
	// BufferColToScreenPos maps a buffer column to its (row within the
	// line, column within that row).
	BufferColToScreenPos(col int) (rowInLine, colInRow int)
}

// BufferLineForScreenRow walks from the top of the buffer to find which
// buffer line owns the targetRow'th wrapped screen row, via a linear scan.
func BufferLineForScreenRow(targetRow, lineCount int, lineLen func(line int) int, layout WrapLayout) (bufferLine, rowOffsetWithinLine, cumulativeRowsBefore int) {
	cumulative := 0
	for line := 0; line < lineCount; line++ {
		rows := layout.ScreenRowsForLine(lineLen(line))
		if rows <= 0 {
			rows = 1
		}
		if targetRow < cumulative+rows {
			return line, targetRow - cumulative, cumulative
		}
		cumulative += rows
	}
	if lineCount == 0 {
		return 0, 0, 0
	}
	return lineCount - 1, 0, cumulative
}

func totalScreenRows(lineCount int, lineLen func(line int) int, layout WrapLayout) int {
	total := 0
	for line := 0; line < lineCount; line++ {
		rows := layout.ScreenRowsForLine(lineLen(line))
		if rows <= 0 {
			rows = 1
		}
		total += rows
	}
	return total
}

func absoluteScreenRow(line, col int, lineLen func(line int) int, layout WrapLayout) int {
	before := 0
	for l := 0; l < line; l++ {
		rows := layout.ScreenRowsForLine(lineLen(l))
		if rows <= 0 {
			rows = 1
		}
		before += rows
	}
	rowInLine, _ := layout.BufferColToScreenPos(col)
	return before + rowInLine
}

// EnsureVisibleWrapped scrolls so the cursor's absolute screen row is
// visible: if above the viewport, the cursor row becomes the top; if
// below, it becomes the bottom; otherwise no scroll happens. firstVisibleLine
// is the buffer line currently at the top of the viewport.
func (v *Viewport) EnsureVisibleWrapped(cursorLine, cursorCol, firstVisibleLine, totalLines int, layout WrapLayout, lineLen func(line int) int) {
	cursorRow := absoluteScreenRow(cursorLine, cursorCol, lineLen, layout)
	firstRow := absoluteScreenRow(firstVisibleLine, 0, lineLen, layout)
	visible := v.Scroller.VisibleRows()
	total := totalScreenRows(totalLines, lineLen, layout)

	switch {
	case cursorRow < firstRow:
		v.Scroller.SetScrollOffsetPx(cursorRow*v.Scroller.rowHeight, total)
	case cursorRow >= firstRow+visible:
		newFirst := cursorRow - visible + 1
		if newFirst < 0 {
			newFirst = 0
		}
		v.Scroller.SetScrollOffsetPx(newFirst*v.Scroller.rowHeight, total)
	}
}

// SetScrollOffsetPxWrapped clamps px using the sum of ScreenRowsForLine
// across every buffer line, not the raw buffer line count.
func (v *Viewport) SetScrollOffsetPxWrapped(px, lineCount int, lineLen func(line int) int, layout WrapLayout) {
	total := totalScreenRows(lineCount, lineLen, layout)
	v.Scroller.SetScrollOffsetPx(px, total)
}
