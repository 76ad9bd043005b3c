package merge

import (
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// lineOpKind discriminates a line-level diff operation.
type lineOpKind uint8

const (
	opEqual lineOpKind = iota
	opDelete
	opInsert
	opReplace
)

// lineOp is one operation from a base sequence to another, expressed as a
// half-open base-line range [From, To) and the replacement lines (empty for
// a pure delete).
type lineOp struct {
	Kind     lineOpKind
	From, To int
	NewLines []string
}

// gotextdiffTextEdit is the line-range/replacement-text shape this package
// needs out of gotextdiff.TextEdit, kept as its own type so the raw-edit
// translation step has a narrow, swappable seam.
type gotextdiffTextEdit struct {
	from, to int
	newText  string
}

// computeLineEdits diffs base against other at line granularity using
// gotextdiff's Myers implementation (which tokenizes its input by line
// internally), translating its TextEdits into lineOps indexed over base.
func computeLineEdits(base, other []string) []lineOp {
	baseText := joinLines(base)
	otherText := joinLines(other)

	edits := myers.ComputeEdits(span.URIFromPath("base"), baseText, otherText)
	raw := rawOpsFromEdits(adaptEdits(edits))
	raw = coalesceDeleteInsert(raw)

	var ops []lineOp
	cursor := 0
	for _, op := range raw {
		if op.From > cursor {
			for i := cursor; i < op.From; i++ {
				ops = append(ops, lineOp{Kind: opEqual, From: i, To: i + 1})
			}
		}
		ops = append(ops, op)
		cursor = op.To
	}
	for i := cursor; i < len(base); i++ {
		ops = append(ops, lineOp{Kind: opEqual, From: i, To: i + 1})
	}
	return ops
}

// adaptEdits narrows gotextdiff's TextEdit (a byte/line Span plus
// replacement text) down to the from/to line indices and replacement text
// this package operates on.
func adaptEdits(edits []gotextdiff.TextEdit) []gotextdiffTextEdit {
	out := make([]gotextdiffTextEdit, len(edits))
	for i, e := range edits {
		out[i] = gotextdiffTextEdit{
			from:    e.Span.Start().Line() - 1,
			to:      e.Span.End().Line() - 1,
			newText: e.NewText,
		}
	}
	return out
}

// rawOpsFromEdits translates gotextdiff's line-granular TextEdits directly
// into lineOps, without yet filling in the unchanged gaps between them.
func rawOpsFromEdits(edits []gotextdiffTextEdit) []lineOp {
	ops := make([]lineOp, 0, len(edits))
	for _, e := range edits {
		from := e.from
		to := e.to
		newLines := splitNonEmptyLines(e.newText)
		switch {
		case from == to && len(newLines) > 0:
			ops = append(ops, lineOp{Kind: opInsert, From: from, To: from, NewLines: newLines})
		case len(newLines) == 0:
			ops = append(ops, lineOp{Kind: opDelete, From: from, To: to})
		default:
			ops = append(ops, lineOp{Kind: opReplace, From: from, To: to, NewLines: newLines})
		}
	}
	return ops
}

// coalesceDeleteInsert merges a Delete op immediately followed by an Insert
// op at the same base position into a single Replace op: gotextdiff's
// Myers implementation represents a line replacement as an adjacent
// delete-then-insert pair rather than a combined edit, but the three-way
// merge's combination table needs to distinguish Replace from an
// independent Delete plus a free-standing insertion.
func coalesceDeleteInsert(ops []lineOp) []lineOp {
	out := make([]lineOp, 0, len(ops))
	for i := 0; i < len(ops); i++ {
		op := ops[i]
		if op.Kind == opDelete && i+1 < len(ops) {
			next := ops[i+1]
			if next.Kind == opInsert && next.From == op.To {
				out = append(out, lineOp{Kind: opReplace, From: op.From, To: op.To, NewLines: next.NewLines})
				i++
				continue
			}
		}
		out = append(out, op)
	}
	return out
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func splitNonEmptyLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
