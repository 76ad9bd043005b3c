package termio

import (
	"strconv"
	"unicode"
)

// EncodeKey turns one key event into the bytes to write to the terminal's
// stdin, given the currently active mode flags.
func EncodeKey(e KeyEvent, mode ModeFlags) []byte {
	if e.Special != KeyNone {
		return encodeSpecial(e.Special, e.Modifiers, mode)
	}
	return encodeRune(e.Rune, e.Modifiers)
}

func encodeRune(r rune, mod Modifiers) []byte {
	if mod.Control {
		if b, ok := controlByte(r); ok {
			return []byte{b}
		}
		return []byte(string(r))
	}
	if mod.Option {
		out := []byte{0x1B}
		return append(out, []byte(string(r))...)
	}
	return []byte(string(r))
}

// controlByte implements the control-held printable-letter mapping:
// a..z -> 0x01..0x1A; [ -> 0x1B; \ -> 0x1C; ] -> 0x1D; ^ -> 0x1E;
// _ -> 0x1F; @ or space -> 0x00.
func controlByte(r rune) (byte, bool) {
	lower := unicode.ToLower(r)
	switch {
	case lower >= 'a' && lower <= 'z':
		return byte(lower-'a') + 0x01, true
	case r == '[':
		return 0x1B, true
	case r == '\\':
		return 0x1C, true
	case r == ']':
		return 0x1D, true
	case r == '^':
		return 0x1E, true
	case r == '_':
		return 0x1F, true
	case r == '@' || r == ' ':
		return 0x00, true
	default:
		return 0, false
	}
}

func encodeSpecial(k SpecialKey, mod Modifiers, mode ModeFlags) []byte {
	switch k {
	case KeyReturn:
		return []byte{0x0D}
	case KeyTab:
		return []byte{0x09}
	case KeyEscape:
		return []byte{0x1B}
	case KeyBackspace:
		if mod.Option {
			return []byte{0x1B, 0x7F}
		}
		return []byte{0x7F}
	case KeyUp:
		return encodeArrow('A', mod, mode)
	case KeyDown:
		return encodeArrow('B', mod, mode)
	case KeyRight:
		return encodeArrow('C', mod, mode)
	case KeyLeft:
		return encodeArrow('D', mod, mode)
	case KeyHome:
		return encodeArrow('H', mod, mode)
	case KeyEnd:
		return encodeArrow('F', mod, mode)
	case KeyInsert:
		return encodeTilde(2, mod)
	case KeyDelete:
		return encodeTilde(3, mod)
	case KeyPageUp:
		return encodeTilde(5, mod)
	case KeyPageDown:
		return encodeTilde(6, mod)
	case KeyF1, KeyF2, KeyF3, KeyF4:
		return encodeLowF(k, mod)
	case KeyF5, KeyF6, KeyF7, KeyF8, KeyF9, KeyF10, KeyF11, KeyF12:
		return encodeTilde(highFNumber(k), mod)
	default:
		return nil
	}
}

// encodeArrow handles Up/Down/Left/Right and Home/End, which share the
// same modifier encoding.
func encodeArrow(dir byte, mod Modifiers, mode ModeFlags) []byte {
	if hasAnyModifier(mod) {
		return []byte("\x1b[1;" + strconv.Itoa(arrowModifierCode(mod)) + string(dir))
	}
	if mode.Has(ModeAppCursor) {
		return []byte{0x1B, 'O', dir}
	}
	return []byte{0x1B, '[', dir}
}

func encodeTilde(n int, mod Modifiers) []byte {
	if hasAnyModifier(mod) {
		return []byte("\x1b[" + strconv.Itoa(n) + ";" + strconv.Itoa(arrowModifierCode(mod)) + "~")
	}
	return []byte("\x1b[" + strconv.Itoa(n) + "~")
}

func encodeLowF(k SpecialKey, mod Modifiers) []byte {
	letter := byte('P' + (k - KeyF1))
	if hasAnyModifier(mod) {
		return []byte("\x1b[1;" + strconv.Itoa(arrowModifierCode(mod)) + string(letter))
	}
	return []byte{0x1B, 'O', letter}
}

// highFNumber implements the VT220 tilde numbering for F5-F12, including
// the deliberate gaps at 16 and 22.
func highFNumber(k SpecialKey) int {
	table := map[SpecialKey]int{
		KeyF5: 15, KeyF6: 17, KeyF7: 18, KeyF8: 19,
		KeyF9: 20, KeyF10: 21, KeyF11: 23, KeyF12: 24,
	}
	return table[k]
}

// EncodePaste wraps text in bracketed-paste markers when the mode is
// active; otherwise it returns the raw UTF-8 bytes.
func EncodePaste(text string, mode ModeFlags) []byte {
	if !mode.Has(ModeBracketedPaste) {
		return []byte(text)
	}
	out := make([]byte, 0, len(text)+12)
	out = append(out, "\x1b[200~"...)
	out = append(out, text...)
	out = append(out, "\x1b[201~"...)
	return out
}
