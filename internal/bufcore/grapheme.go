package bufcore

import (
	"github.com/rivo/uniseg"
)

// GraphemeBoundaryLeft returns the largest grapheme-cluster start offset
// that is strictly less than offset (the boundary a move-left or backspace
// from offset reaches), or 0 if offset is at or before the start of chars.
//
// Fast path: ASCII runs are always single-rune grapheme clusters, so when
// the rune immediately before offset is ASCII we skip full segmentation.
// The one case that fast path must not shortcut is an ASCII base rune
// followed by a combining mark (e.g. "e" + U+0301); we detect that by also
// checking whether the rune at offset is a combining mark and only taking
// the fast path when it is not.
func GraphemeBoundaryLeft(chars []rune, offset int) int {
	if offset <= 0 || len(chars) == 0 {
		return 0
	}
	if offset > len(chars) {
		offset = len(chars)
	}
	if chars[offset-1] < 0x80 && !isCombiningRune(peekRune(chars, offset)) {
		return offset - 1
	}
	starts := graphemeStarts(chars)
	result := 0
	for _, s := range starts {
		if s < offset {
			result = s
		} else {
			break
		}
	}
	return result
}

// GraphemeBoundaryRight returns the smallest grapheme-cluster end offset
// that is strictly greater than offset (the boundary a move-right or
// forward-delete from offset reaches), or len(chars) if offset is at or
// past the end.
func GraphemeBoundaryRight(chars []rune, offset int) int {
	if len(chars) == 0 || offset >= len(chars) {
		return len(chars)
	}
	if offset < 0 {
		offset = 0
	}
	current := chars[offset]
	if current < 0x80 {
		if offset+1 >= len(chars) {
			return offset + 1
		}
		next := chars[offset+1]
		if next < 0x80 {
			return offset + 1
		}
		// Non-ASCII follows; could be a combining mark over our ASCII
		// base, so fall through to full segmentation.
	}
	ends := graphemeEnds(chars)
	for _, e := range ends {
		if offset < e {
			return e
		}
	}
	return len(chars)
}

// GraphemeLenBefore returns the character count of the grapheme cluster
// immediately before offset (the size a backspace at offset would delete).
func GraphemeLenBefore(chars []rune, offset int) int {
	return offset - GraphemeBoundaryLeft(chars, offset)
}

// GraphemeLenAt returns the character count of the grapheme cluster that
// contains offset (the size a forward-delete at offset would delete).
func GraphemeLenAt(chars []rune, offset int) int {
	return GraphemeBoundaryRight(chars, offset) - offset
}

// IsGraphemeBoundary reports whether offset falls exactly on a grapheme
// cluster boundary.
func IsGraphemeBoundary(chars []rune, offset int) bool {
	if offset <= 0 || offset >= len(chars) {
		return true
	}
	for _, s := range graphemeStarts(chars) {
		if s == offset {
			return true
		}
	}
	return false
}

func peekRune(chars []rune, offset int) rune {
	if offset < 0 || offset >= len(chars) {
		return 0
	}
	return chars[offset]
}

// isCombiningRune reports whether r is a combining mark / ZWJ that should
// be kept joined to the preceding base rune rather than treated as its own
// boundary. This is the narrow check that defeats the ASCII fast path.
func isCombiningRune(r rune) bool {
	if r == 0x200D { // ZERO WIDTH JOINER
		return true
	}
	if r >= 0x0300 && r <= 0x036F { // combining diacritical marks
		return true
	}
	if r >= 0xFE00 && r <= 0xFE0F { // variation selectors
		return true
	}
	return false
}

// graphemeStarts returns the char-offset start of every grapheme cluster in
// chars, via a full Unicode segmentation pass.
func graphemeStarts(chars []rune) []int {
	s := string(chars)
	starts := make([]int, 0, len(chars))
	idx := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		starts = append(starts, idx)
		idx += len(gr.Runes())
	}
	return starts
}

// graphemeEnds returns the char-offset end of every grapheme cluster in
// chars, via a full Unicode segmentation pass.
func graphemeEnds(chars []rune) []int {
	s := string(chars)
	ends := make([]int, 0, len(chars))
	idx := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		idx += len(gr.Runes())
		ends = append(ends, idx)
	}
	return ends
}
