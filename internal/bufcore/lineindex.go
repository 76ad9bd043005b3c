package bufcore

// LineIndex maintains the ordered list of line-start character offsets for
// a buffer. lineStarts[0] is always 0; lineStarts[i] for i>0 is one past
// the newline that ended line i-1.
type LineIndex struct {
	lineStarts []int
}

// NewLineIndex returns an index for an empty buffer (one line starting at 0).
func NewLineIndex() *LineIndex {
	return &LineIndex{lineStarts: []int{0}}
}

// Rebuild recomputes the index from scratch given the buffer's full content.
func (li *LineIndex) Rebuild(chars []rune) {
	starts := []int{0}
	for i, r := range chars {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	li.lineStarts = starts
}

// LineCount returns the number of lines.
func (li *LineIndex) LineCount() int {
	return len(li.lineStarts)
}

// LineStart returns the character offset at which line begins.
func (li *LineIndex) LineStart(line int) int {
	return li.lineStarts[line]
}

// LineEnd returns the offset one past the last character of line (not
// including its trailing newline), given the buffer's total length.
func (li *LineIndex) LineEnd(line int, totalLen int) int {
	if line == len(li.lineStarts)-1 {
		return totalLen
	}
	// The line after this one starts one past our newline.
	return li.lineStarts[line+1] - 1
}

// LineLen returns the number of characters on line, excluding its newline.
func (li *LineIndex) LineLen(line int, totalLen int) int {
	return li.LineEnd(line, totalLen) - li.LineStart(line)
}

// LineStarts returns the raw backing slice. Callers must not mutate it.
func (li *LineIndex) LineStarts() []int {
	return li.lineStarts
}

// InsertChar notifies the index that one non-newline character was
// inserted on the given line; every subsequent line start shifts by +1.
func (li *LineIndex) InsertChar(line int) {
	for i := line + 1; i < len(li.lineStarts); i++ {
		li.lineStarts[i]++
	}
}

// InsertNewline notifies the index that a newline was inserted at the
// given character offset: the line containing offset splits in two, and
// every subsequent line start shifts by +1.
func (li *LineIndex) InsertNewline(offset int) {
	line := li.lineForOffset(offset)
	newStart := offset + 1
	li.lineStarts = append(li.lineStarts, 0)
	copy(li.lineStarts[line+2:], li.lineStarts[line+1:])
	li.lineStarts[line+1] = newStart
	for i := line + 2; i < len(li.lineStarts); i++ {
		li.lineStarts[i]++
	}
}

// RemoveChar notifies the index that one non-newline character was deleted
// on the given line; every subsequent line start shifts by -1.
func (li *LineIndex) RemoveChar(line int) {
	for i := line + 1; i < len(li.lineStarts); i++ {
		li.lineStarts[i]--
	}
}

// RemoveNewline notifies the index that the newline ending line was
// deleted, merging line with the next; every subsequent line start shifts
// by -1.
func (li *LineIndex) RemoveNewline(line int) {
	li.lineStarts = append(li.lineStarts[:line+1], li.lineStarts[line+2:]...)
	for i := line + 1; i < len(li.lineStarts); i++ {
		li.lineStarts[i]--
	}
}

// lineForOffset returns the line index containing the given character
// offset, via binary search over lineStarts.
func (li *LineIndex) lineForOffset(offset int) int {
	lo, hi := 0, len(li.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if li.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// LineForOffset is the exported form of lineForOffset, used by callers that
// need to map a raw character offset back to a line number.
func (li *LineIndex) LineForOffset(offset int) int {
	return li.lineForOffset(offset)
}

// Equal reports whether two indexes describe the same line starts; used by
// the debug consistency check.
func (li *LineIndex) Equal(other *LineIndex) bool {
	if len(li.lineStarts) != len(other.lineStarts) {
		return false
	}
	for i := range li.lineStarts {
		if li.lineStarts[i] != other.lineStarts[i] {
			return false
		}
	}
	return true
}
