package selector

import "testing"

func TestMiniBufferTypingAndBackspace(t *testing.T) {
	m := NewMiniBuffer()
	m.InsertChar('h')
	m.InsertChar('i')
	if m.Content() != "hi" {
		t.Fatalf("content = %q, want %q", m.Content(), "hi")
	}
	m.DeleteBackward()
	if m.Content() != "h" {
		t.Fatalf("content = %q, want %q", m.Content(), "h")
	}
}

func TestMiniBufferClearResetsContent(t *testing.T) {
	m := NewMiniBuffer()
	m.InsertChar('x')
	m.Clear()
	if m.Content() != "" {
		t.Fatalf("content = %q, want empty after Clear", m.Content())
	}
}

func TestFilteredKeysAreReturnUpDown(t *testing.T) {
	for _, k := range []SpecialKey{KeyReturn, KeyUp, KeyDown} {
		if !Filtered(k) {
			t.Fatalf("expected %v to be filtered", k)
		}
	}
	for _, k := range []SpecialKey{KeyEscape, KeyBackspace, KeyNone} {
		if Filtered(k) {
			t.Fatalf("expected %v to not be filtered", k)
		}
	}
}
