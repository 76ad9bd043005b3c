package viewport

import "testing"

func TestRowScrollerUpdateSizeComputesVisibleRows(t *testing.T) {
	s := NewRowScroller(10)
	s.UpdateSize(105, 50)
	if s.VisibleRows() != 10 {
		t.Fatalf("VisibleRows = %d, want 10", s.VisibleRows())
	}
}

func TestRowScrollerSetScrollOffsetClamps(t *testing.T) {
	s := NewRowScroller(10)
	s.UpdateSize(100, 5) // visible=10 rows, total=5 rows -> max offset 0
	s.SetScrollOffsetPx(1000, 5)
	if s.OffsetPx() != 0 {
		t.Fatalf("offset = %d, want 0 (nothing to scroll)", s.OffsetPx())
	}

	s.UpdateSize(100, 100) // visible=10, total=100 -> max = 90*10=900
	s.SetScrollOffsetPx(10000, 100)
	if s.OffsetPx() != 900 {
		t.Fatalf("offset = %d, want 900", s.OffsetPx())
	}
	s.SetScrollOffsetPx(-5, 100)
	if s.OffsetPx() != 0 {
		t.Fatalf("offset = %d, want 0 after negative clamp", s.OffsetPx())
	}
}

func TestRowScrollerScrollToSnapsToRow(t *testing.T) {
	s := NewRowScroller(20)
	s.UpdateSize(200, 100)
	s.ScrollTo(5, 100)
	if s.OffsetPx() != 100 {
		t.Fatalf("offset = %d, want 100", s.OffsetPx())
	}
}

func TestRowScrollerEnsureVisibleScrollsMinimally(t *testing.T) {
	s := NewRowScroller(10)
	s.UpdateSize(100, 200) // 10 visible rows
	s.EnsureVisible(50, 200)
	if s.FirstVisibleRow() != 50-9 {
		t.Fatalf("first visible row = %d, want %d (row pinned to bottom)", s.FirstVisibleRow(), 50-9)
	}
	s.EnsureVisible(0, 200)
	if s.FirstVisibleRow() != 0 {
		t.Fatalf("first visible row = %d, want 0 (row pinned to top)", s.FirstVisibleRow())
	}
}

func TestRowScrollerVisibleRangeIncludesPartialBottomRow(t *testing.T) {
	s := NewRowScroller(10)
	s.UpdateSize(95, 100) // visible = 9 whole rows
	first, end := s.VisibleRange(100)
	if first != 0 || end != 10 {
		t.Fatalf("range = [%d,%d), want [0,10)", first, end)
	}
}

func TestRowScrollerResizeInvariantReclamps(t *testing.T) {
	s := NewRowScroller(10)
	s.UpdateSize(100, 200)
	s.SetScrollOffsetPx(900, 200) // near the end
	s.UpdateSize(300, 200)        // grows a lot -> fewer max offset
	if s.OffsetPx() > s.maxOffset(200) {
		t.Fatalf("offset %d exceeds new max %d after resize", s.OffsetPx(), s.maxOffset(200))
	}
}
