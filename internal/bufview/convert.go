package bufview

import "github.com/kungfusheep/glyphcore/internal/bufcore"

// FromBufcore converts a bufcore.DirtyLines summary into the BufferView-level
// representation used by viewport and focus-target code that should not need
// to import bufcore directly.
func FromBufcore(d bufcore.DirtyLines) DirtyLines {
	switch d.Kind {
	case bufcore.DirtyNone:
		return DirtyLines{Kind: DirtyNone}
	case bufcore.DirtySingle:
		return DirtyLines{Kind: DirtySingle, Line: d.Line}
	case bufcore.DirtyRange:
		return DirtyLines{Kind: DirtyRange, From: d.From, To: d.To}
	case bufcore.DirtyFromLineToEnd:
		return DirtyLines{Kind: DirtyFromLineToEnd, Line: d.Line}
	default:
		return DirtyLines{Kind: DirtyNone}
	}
}
