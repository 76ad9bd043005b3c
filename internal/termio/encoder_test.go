package termio

import (
	"bytes"
	"testing"
)

func TestEncodeKeyControlLetterMapsToControlByte(t *testing.T) {
	got := EncodeKey(KeyEvent{Rune: 'a', Modifiers: Modifiers{Control: true}}, 0)
	if !bytes.Equal(got, []byte{0x01}) {
		t.Fatalf("got %v, want [0x01]", got)
	}
}

func TestEncodeKeyControlBracket(t *testing.T) {
	got := EncodeKey(KeyEvent{Rune: '[', Modifiers: Modifiers{Control: true}}, 0)
	if !bytes.Equal(got, []byte{0x1B}) {
		t.Fatalf("got %v, want [0x1B]", got)
	}
}

func TestEncodeKeyOptionPrintablePrefixesEscape(t *testing.T) {
	got := EncodeKey(KeyEvent{Rune: 'x', Modifiers: Modifiers{Option: true}}, 0)
	if !bytes.Equal(got, []byte{0x1B, 'x'}) {
		t.Fatalf("got %v, want [0x1B x]", got)
	}
}

func TestEncodeKeyPlainPrintableIsUTF8(t *testing.T) {
	got := EncodeKey(KeyEvent{Rune: 'é'}, 0)
	if string(got) != "é" {
		t.Fatalf("got %q, want %q", got, "é")
	}
}

func TestEncodeKeyBackspaceAndOptionBackspace(t *testing.T) {
	if got := EncodeKey(KeyEvent{Special: KeyBackspace}, 0); !bytes.Equal(got, []byte{0x7F}) {
		t.Fatalf("backspace = %v", got)
	}
	got := EncodeKey(KeyEvent{Special: KeyBackspace, Modifiers: Modifiers{Option: true}}, 0)
	if !bytes.Equal(got, []byte{0x1B, 0x7F}) {
		t.Fatalf("option-backspace = %v", got)
	}
}

// TestInputEncoderArrowWithShiftCtrl checks the shift+ctrl arrow encoding.
func TestInputEncoderArrowWithShiftCtrl(t *testing.T) {
	got := EncodeKey(KeyEvent{Special: KeyUp, Modifiers: Modifiers{Shift: true, Control: true}}, 0)
	want := []byte("\x1b[1;6A")
	if !bytes.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeKeyArrowAppCursorMode(t *testing.T) {
	got := EncodeKey(KeyEvent{Special: KeyUp}, ModeAppCursor)
	if !bytes.Equal(got, []byte{0x1B, 'O', 'A'}) {
		t.Fatalf("got %v", got)
	}
}

func TestEncodeKeyArrowPlainMode(t *testing.T) {
	got := EncodeKey(KeyEvent{Special: KeyDown}, 0)
	if !bytes.Equal(got, []byte{0x1B, '[', 'B'}) {
		t.Fatalf("got %v", got)
	}
}

func TestEncodeKeyInsertDeletePageTilde(t *testing.T) {
	cases := map[SpecialKey]string{
		KeyInsert: "\x1b[2~", KeyDelete: "\x1b[3~", KeyPageUp: "\x1b[5~", KeyPageDown: "\x1b[6~",
	}
	for k, want := range cases {
		got := EncodeKey(KeyEvent{Special: k}, 0)
		if string(got) != want {
			t.Fatalf("%v: got %q, want %q", k, got, want)
		}
	}
}

func TestEncodeKeyF1ToF4(t *testing.T) {
	got := EncodeKey(KeyEvent{Special: KeyF1}, 0)
	if !bytes.Equal(got, []byte{0x1B, 'O', 'P'}) {
		t.Fatalf("got %v", got)
	}
}

func TestEncodeKeyF5ToF12TildeNumbersWithGaps(t *testing.T) {
	cases := map[SpecialKey]string{
		KeyF5: "\x1b[15~", KeyF6: "\x1b[17~", KeyF7: "\x1b[18~", KeyF8: "\x1b[19~",
		KeyF9: "\x1b[20~", KeyF10: "\x1b[21~", KeyF11: "\x1b[23~", KeyF12: "\x1b[24~",
	}
	for k, want := range cases {
		got := EncodeKey(KeyEvent{Special: k}, 0)
		if string(got) != want {
			t.Fatalf("%v: got %q, want %q", k, got, want)
		}
	}
}

func TestEncodePasteBracketed(t *testing.T) {
	got := EncodePaste("hi", ModeBracketedPaste)
	want := "\x1b[200~hi\x1b[201~"
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodePasteUnbracketed(t *testing.T) {
	got := EncodePaste("hi", 0)
	if string(got) != "hi" {
		t.Fatalf("got %q, want %q", got, "hi")
	}
}
