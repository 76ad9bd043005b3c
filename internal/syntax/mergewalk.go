package syntax

import "github.com/kungfusheep/glyphcore/internal/style"

// buildStyledLine implements the §4.6.1 merge walk: given a line's byte
// range and the two sorted capture streams (host and injection), it
// interleaves them into one styled line, preferring the injection stream
// whenever the walk position sits inside an injection region, and filling
// every uncovered byte with a plain span so that the concatenation of
// emitted span texts equals the line's source text exactly.
func buildStyledLine(source []byte, lineStart, lineEnd uint32, host, injection []Capture, regions []injectionRegion, theme *Theme) style.StyledLine {
	var spans []style.Span
	covered := lineStart

	// Start both cursors at 0 and let the loop below skip anything already
	// behind covered: host/injection are sorted by StartByte, not EndByte,
	// so an EndByte-keyed binary search over that order is unsound.
	hi := 0
	ii := 0

	emitPlain := func(from, to uint32) {
		if to <= from {
			return
		}
		spans = style.AppendMerged(spans, style.Span{Text: string(source[from:to]), Style: style.Default()})
	}
	emitStyled := func(from, to uint32, name string) {
		if to <= from {
			return
		}
		spans = style.AppendMerged(spans, style.Span{Text: string(source[from:to]), Style: theme.Lookup(name)})
	}

	for covered < lineEnd {
		for hi < len(host) && host[hi].EndByte <= covered {
			hi++
		}
		for ii < len(injection) && injection[ii].EndByte <= covered {
			ii++
		}

		var hostCap, injCap *Capture
		if hi < len(host) && host[hi].StartByte < lineEnd {
			hostCap = &host[hi]
		}
		if ii < len(injection) && injection[ii].StartByte < lineEnd {
			injCap = &injection[ii]
		}
		if hostCap == nil && injCap == nil {
			break
		}

		inInjection := regionContaining(regions, covered) != nil

		useInjection := false
		switch {
		case injCap == nil:
			useInjection = false
		case hostCap == nil:
			useInjection = true
		case inInjection:
			useInjection = true
		case hostCap != nil && injCap != nil && regionContaining(regions, hostCap.StartByte) != nil:
			// a host capture fully inside an injection region loses to it
			useInjection = true
		case injCap.StartByte < hostCap.StartByte:
			useInjection = true
		default:
			useInjection = false
		}

		var chosen *Capture
		if useInjection {
			chosen = injCap
		} else {
			chosen = hostCap
		}
		if chosen == nil {
			break
		}

		spanStart := chosen.StartByte
		if spanStart < covered {
			spanStart = covered
		}
		spanEnd := chosen.EndByte
		if spanEnd > lineEnd {
			spanEnd = lineEnd
		}
		// a host capture running into an injection capture stops there, so
		// the walk reaches the injection region; the host capture is kept
		// for whatever follows the region
		clipped := false
		if !useInjection && injCap != nil && injCap.StartByte > spanStart && injCap.StartByte < spanEnd {
			spanEnd = injCap.StartByte
			clipped = true
		}
		if spanEnd <= spanStart {
			// this capture is already fully covered or out of range; advance
			// whichever pointer produced it and retry
			if useInjection {
				ii++
			} else {
				hi++
			}
			continue
		}

		emitPlain(covered, spanStart)
		emitStyled(spanStart, spanEnd, chosen.Name)
		if spanEnd > covered {
			covered = spanEnd
		}
		if useInjection {
			ii++
		} else if !clipped {
			hi++
		}
	}

	emitPlain(covered, lineEnd)
	return style.StyledLine{Spans: spans}
}
