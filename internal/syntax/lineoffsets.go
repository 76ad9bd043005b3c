package syntax

// lineOffsets maps line number to the byte offset of its first byte,
// maintained incrementally across edits: only the inserted bytes are
// rescanned for newlines, while the trailing entries are copied and shifted.
type lineOffsets struct {
	starts []uint32 // starts[0] == 0 always
}

func newLineOffsets(source []byte) *lineOffsets {
	lo := &lineOffsets{starts: []uint32{0}}
	lo.starts = scanNewlines(source, 0, lo.starts)
	return lo
}

func scanNewlines(b []byte, base uint32, into []uint32) []uint32 {
	for i, c := range b {
		if c == '\n' {
			into = append(into, base+uint32(i)+1)
		}
	}
	return into
}

// lineCount returns the number of lines implied by the index.
func (lo *lineOffsets) lineCount() int { return len(lo.starts) }

// byteOffset returns the byte offset of the first byte of line.
func (lo *lineOffsets) byteOffset(line int) uint32 { return lo.starts[line] }

// lineForByte returns the line containing byte offset off.
func (lo *lineOffsets) lineForByte(off uint32) int {
	lo_, hi := 0, len(lo.starts)-1
	for lo_ < hi {
		mid := (lo_ + hi + 1) / 2
		if lo.starts[mid] <= off {
			lo_ = mid
		} else {
			hi = mid - 1
		}
	}
	return lo_
}

// applyEdit updates the index for an edit [startByte, oldEnd) -> newEnd,
// given the post-edit source. Implements the §4.6 update rule: locate the
// first entry past the edit start, drop any whose preceding newline fell
// inside the deleted range, rescan only the inserted bytes for newlines, then shift
// the remaining trailing entries by the byte-length delta.
func (lo *lineOffsets) applyEdit(source []byte, startByte, oldEnd, newEnd uint32) {
	delta := int64(newEnd) - int64(oldEnd)

	firstAfter := 0
	for firstAfter < len(lo.starts) && lo.starts[firstAfter] <= startByte {
		firstAfter++
	}

	kept := append([]uint32{}, lo.starts[:firstAfter]...)

	dropped := firstAfter
	for dropped < len(lo.starts) && lo.starts[dropped] <= oldEnd {
		dropped++
	}

	var insertedBytes []byte
	if newEnd > startByte && int(newEnd) <= len(source) {
		insertedBytes = source[startByte:newEnd]
	}
	kept = scanNewlines(insertedBytes, startByte, kept)

	for i := dropped; i < len(lo.starts); i++ {
		shifted := int64(lo.starts[i]) + delta
		if shifted < 0 {
			shifted = 0
		}
		kept = append(kept, uint32(shifted))
	}

	lo.starts = kept
}
