package bufcore

import "testing"

func TestLineIndexRebuild(t *testing.T) {
	li := NewLineIndex()
	li.Rebuild([]rune("ab\ncd\n\nef"))
	want := []int{0, 3, 6, 7}
	got := li.LineStarts()
	if len(got) != len(want) {
		t.Fatalf("LineStarts = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("LineStarts = %v, want %v", got, want)
		}
	}
}

func TestLineIndexInsertNewlineAndChar(t *testing.T) {
	li := NewLineIndex()
	li.Rebuild([]rune("abcdef"))
	li.InsertNewline(3) // "abc\ndef"
	if li.LineCount() != 2 {
		t.Fatalf("LineCount = %d, want 2", li.LineCount())
	}
	if li.LineStart(1) != 4 {
		t.Fatalf("LineStart(1) = %d, want 4", li.LineStart(1))
	}
	li.InsertChar(0)
	if li.LineStart(1) != 5 {
		t.Fatalf("after InsertChar(0), LineStart(1) = %d, want 5", li.LineStart(1))
	}
}

func TestLineIndexRemoveNewlineMergesLines(t *testing.T) {
	li := NewLineIndex()
	li.Rebuild([]rune("abc\ndef\nghi"))
	li.RemoveNewline(0)
	if li.LineCount() != 2 {
		t.Fatalf("LineCount = %d, want 2", li.LineCount())
	}
	if li.LineStart(1) != 7 {
		t.Fatalf("LineStart(1) = %d, want 7", li.LineStart(1))
	}
}

func TestLineIndexConsistencyAfterIncrementalOps(t *testing.T) {
	content := "abc\ndef\nghi"
	li := NewLineIndex()
	li.Rebuild([]rune(content))
	li.InsertNewline(1) // "a\nbc\ndef\nghi"

	fresh := NewLineIndex()
	fresh.Rebuild([]rune("a\nbc\ndef\nghi"))
	if !li.Equal(fresh) {
		t.Fatalf("incremental index %v != rebuilt %v", li.LineStarts(), fresh.LineStarts())
	}
}
