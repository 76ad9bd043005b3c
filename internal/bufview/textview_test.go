package bufview

import (
	"testing"

	"github.com/kungfusheep/glyphcore/internal/bufcore"
	"github.com/kungfusheep/glyphcore/internal/style"
)

func TestTextBufferViewPlainStylerRendersLines(t *testing.T) {
	tb := bufcore.NewTextBufferFromString("abc\ndef")
	v := NewTextBufferView(tb, nil)
	if v.LineCount() != 2 {
		t.Fatalf("LineCount = %d, want 2", v.LineCount())
	}
	if got := v.StyledLine(1).Text(); got != "def" {
		t.Fatalf("StyledLine(1).Text() = %q, want %q", got, "def")
	}
}

func TestTextBufferViewAccumulatesDirtyLines(t *testing.T) {
	tb := bufcore.NewTextBufferFromString("abc")
	v := NewTextBufferView(tb, nil)

	tb.SetCursor(bufcore.Position{Line: 0, Col: 3})
	v.MarkDirty(tb.InsertChar('!'))
	v.MarkDirty(tb.InsertChar('?'))

	d := v.TakeDirtyLines()
	if d.Kind != DirtySingle || d.Line != 0 {
		t.Fatalf("dirty = %+v, want Single(0)", d)
	}
	// draining clears the accumulator
	if d2 := v.TakeDirtyLines(); d2.Kind != DirtyNone {
		t.Fatalf("second drain = %+v, want none", d2)
	}
}

func TestTextBufferViewCursorInfoReflectsBlinkState(t *testing.T) {
	tb := bufcore.NewTextBufferFromString("abc")
	v := NewTextBufferView(tb, nil)
	tb.SetCursor(bufcore.Position{Line: 0, Col: 2})

	info := v.CursorInfo()
	if info.Line != 0 || info.Col != 2 {
		t.Fatalf("cursor info = %+v", info)
	}

	v.SetBlinking(false)
	if got := v.CursorInfo().Shape; got != style.CursorHidden {
		t.Fatalf("shape = %v, want CursorHidden once blinking is off", got)
	}
}

func TestTextBufferViewIsEditable(t *testing.T) {
	tb := bufcore.NewTextBufferFromString("")
	v := NewTextBufferView(tb, nil)
	if !v.IsEditable() {
		t.Fatalf("text buffer view should be editable")
	}
}
