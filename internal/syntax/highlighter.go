package syntax

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/kungfusheep/glyphcore/internal/style"
)

// Edit describes a single incremental text change, in the coordinates
// tree-sitter needs to reuse the previous parse tree.
type Edit struct {
	StartByte, OldEndByte, NewEndByte    uint32
	StartPoint, OldEndPoint, NewEndPoint sitter.Point
}

type viewportCache struct {
	valid      bool
	generation uint64
	startLine  int
	endLine    int
	lines      []style.StyledLine
}

type injectedTree struct {
	tree       *sitter.Tree
	generation uint64
}

// Highlighter owns one host parse tree plus the lazily-populated subtrees
// for any injected regions, and caches the last highlighted viewport so
// repeated requests at the same generation are free.
type Highlighter struct {
	registry *Registry
	lang     *LanguageConfig
	theme    *Theme

	parser *sitter.Parser
	tree   *sitter.Tree
	source []byte
	lines  *lineOffsets

	generation uint64
	cache      viewportCache

	injRegions  []injectionRegion
	injRegionGeneration uint64
	injTrees    map[string]*injectedTree // key: region identity ("lang:start:end")
}

// NewHighlighter parses source once; the highlight and injections queries
// come already compiled in lang (see NewLanguageConfig). A parse failure
// returns an error; callers should fall back to plain-text rendering
// rather than treat it as fatal.
func NewHighlighter(ctx context.Context, registry *Registry, lang *LanguageConfig, source []byte) (*Highlighter, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(lang.Grammar)
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, err
	}
	h := &Highlighter{
		registry: registry,
		lang:     lang,
		theme:    NewTheme(nil),
		parser:   parser,
		tree:     tree,
		source:   append([]byte(nil), source...),
		lines:    newLineOffsets(source),
		injTrees: make(map[string]*injectedTree),
	}
	return h, nil
}

// SetTheme installs the theme used to resolve capture names to styles.
func (h *Highlighter) SetTheme(th *Theme) { h.theme = th }

// ApplyEdit applies an incremental edit to the cached tree, re-parses using
// it as a base, replaces the source snapshot, incrementally updates the
// line-offset index, and bumps the generation counter.
func (h *Highlighter) ApplyEdit(ctx context.Context, e Edit, newSource []byte) error {
	h.tree.Edit(sitter.EditInput{
		StartIndex:  e.StartByte,
		OldEndIndex: e.OldEndByte,
		NewEndIndex: e.NewEndByte,
		StartPoint:  e.StartPoint,
		OldEndPoint: e.OldEndPoint,
		NewEndPoint: e.NewEndPoint,
	})
	tree, err := h.parser.ParseCtx(ctx, h.tree, newSource)
	if err != nil {
		return err
	}
	h.lines.applyEdit(newSource, e.StartByte, e.OldEndByte, e.NewEndByte)
	h.tree = tree
	h.source = append([]byte(nil), newSource...)
	h.generation++
	h.cache.valid = false
	return nil
}

// LineCount returns the number of lines in the current source snapshot.
func (h *Highlighter) LineCount() int { return h.lines.lineCount() }

// HighlightViewport returns styled lines for [startLine, endLine), using
// the cache when the generation and requested range both match the last
// call.
func (h *Highlighter) HighlightViewport(ctx context.Context, startLine, endLine int) ([]style.StyledLine, error) {
	if endLine > h.lines.lineCount() {
		endLine = h.lines.lineCount()
	}
	if startLine >= endLine {
		return nil, nil
	}
	if h.cache.valid && h.cache.generation == h.generation &&
		h.cache.startLine == startLine && h.cache.endLine == endLine {
		return h.cache.lines, nil
	}

	viewStart := h.lines.byteOffset(startLine)
	var viewEnd uint32
	if endLine >= h.lines.lineCount() {
		viewEnd = uint32(len(h.source))
	} else {
		viewEnd = h.lines.byteOffset(endLine)
	}

	if err := h.refreshInjectionRegions(ctx); err != nil {
		return nil, err
	}

	hostCaptures, err := h.collectHostCaptures(viewStart, viewEnd)
	if err != nil {
		return nil, err
	}
	injCaptures, err := h.collectInjectionCaptures(ctx, viewStart, viewEnd)
	if err != nil {
		return nil, err
	}

	regionsInView := make([]injectionRegion, 0, len(h.injRegions))
	for _, r := range h.injRegions {
		if r.EndByte > viewStart && r.StartByte < viewEnd {
			regionsInView = append(regionsInView, r)
		}
	}

	lines := make([]style.StyledLine, 0, endLine-startLine)
	for ln := startLine; ln < endLine; ln++ {
		lineStart := h.lines.byteOffset(ln)
		var lineEnd uint32
		if ln+1 < h.lines.lineCount() {
			lineEnd = h.lines.byteOffset(ln + 1)
		} else {
			lineEnd = uint32(len(h.source))
		}
		// exclude the trailing newline itself from the styled content
		trimmed := lineEnd
		if trimmed > lineStart && h.source[trimmed-1] == '\n' {
			trimmed--
		}
		lines = append(lines, buildStyledLine(h.source, lineStart, trimmed, hostCaptures, injCaptures, regionsInView, h.theme))
	}

	h.cache = viewportCache{valid: true, generation: h.generation, startLine: startLine, endLine: endLine, lines: lines}
	return lines, nil
}

// collectHostCaptures runs the host highlight query cursor restricted to
// the viewport byte range.
func (h *Highlighter) collectHostCaptures(viewStart, viewEnd uint32) ([]Capture, error) {
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.SetByteRange(viewStart, viewEnd)
	qc.Exec(h.lang.Highlights, h.tree.RootNode())

	var out []Capture
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		m = qc.FilterPredicates(m, h.source)
		for _, c := range m.Captures {
			out = append(out, Capture{
				StartByte: c.Node.StartByte(),
				EndByte:   c.Node.EndByte(),
				Name:      h.lang.Highlights.CaptureNameForId(c.Index),
			})
		}
	}
	sortCaptures(out)
	return out, nil
}

// refreshInjectionRegions re-runs the injections query against the host
// tree when the generation has advanced.
func (h *Highlighter) refreshInjectionRegions(ctx context.Context) error {
	if h.lang.Injections == nil {
		return nil
	}
	if h.injRegionGeneration == h.generation && h.injRegions != nil {
		return nil
	}

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(h.lang.Injections, h.tree.RootNode())

	var regions []injectionRegion
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		region, ok := resolveInjectionMatch(m, h.lang.Injections, h.source)
		if ok {
			regions = append(regions, region)
		}
	}
	sortInjectionRegions(regions)
	h.injRegions = regions
	h.injRegionGeneration = h.generation
	return nil
}

// resolveInjectionMatch extracts the content byte range and resolved
// language name from one injections-query match: an explicit
// @injection.language capture wins, then a #set! injection.language
// predicate, then the first space/tab/comma-separated token of the text of
// a capture whose name ends in "info_string".
func resolveInjectionMatch(m *sitter.QueryMatch, q *sitter.Query, source []byte) (injectionRegion, bool) {
	var content *sitter.QueryCapture
	var langFromCapture string
	var infoString string

	for i := range m.Captures {
		c := &m.Captures[i]
		name := q.CaptureNameForId(c.Index)
		switch name {
		case "injection.content":
			content = c
		case "injection.language":
			langFromCapture = string(source[c.Node.StartByte():c.Node.EndByte()])
		default:
			if strings.HasSuffix(name, "info_string") {
				infoString = string(source[c.Node.StartByte():c.Node.EndByte()])
			}
		}
	}
	if content == nil {
		return injectionRegion{}, false
	}

	lang := langFromCapture
	if lang == "" {
		for _, prop := range q.PredicatesForPattern(uint32(m.PatternIndex)) {
			if len(prop) >= 3 && textOf(q, prop[0]) == "set!" && textOf(q, prop[1]) == "injection.language" {
				lang = textOf(q, prop[2])
			}
		}
	}
	if lang == "" && infoString != "" {
		fields := strings.FieldsFunc(infoString, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' })
		if len(fields) > 0 {
			lang = fields[0]
		}
	}
	if lang == "" {
		return injectionRegion{}, false
	}

	return injectionRegion{
		StartByte: content.Node.StartByte(),
		EndByte:   content.Node.EndByte(),
		Language:  lang,
	}, true
}

// textOf resolves a query predicate step to its literal string value via
// the query's string table.
func textOf(q *sitter.Query, step sitter.QueryPredicateStep) string {
	return q.StringValueForId(step.ValueId)
}

// collectInjectionCaptures ensures every in-view injection region's
// subtree is parsed (lazily, cached by generation) and runs that
// language's highlight query against it, offsetting byte positions back
// into host-document coordinates.
func (h *Highlighter) collectInjectionCaptures(ctx context.Context, viewStart, viewEnd uint32) ([]Capture, error) {
	if len(h.injRegions) == 0 {
		return nil, nil
	}
	var out []Capture
	for _, region := range h.injRegions {
		if region.EndByte <= viewStart || region.StartByte >= viewEnd {
			continue
		}
		lang, ok := h.registry.Lookup(region.Language)
		if !ok {
			continue // unregistered injection language: host highlighting applies
		}
		tree, err := h.subtreeFor(ctx, region, lang)
		if err != nil {
			continue // a broken injected parse degrades to host-only highlighting
		}

		qc := sitter.NewQueryCursor()
		qc.Exec(lang.Highlights, tree.RootNode())
		for {
			m, ok := qc.NextMatch()
			if !ok {
				break
			}
			m = qc.FilterPredicates(m, h.source[region.StartByte:region.EndByte])
			for _, c := range m.Captures {
				out = append(out, Capture{
					StartByte: region.StartByte + c.Node.StartByte(),
					EndByte:   region.StartByte + c.Node.EndByte(),
					Name:      lang.Highlights.CaptureNameForId(c.Index),
				})
			}
		}
		qc.Close()
	}
	sortCaptures(out)
	return out, nil
}

func (h *Highlighter) subtreeFor(ctx context.Context, region injectionRegion, lang *LanguageConfig) (*sitter.Tree, error) {
	key := regionKey(region)
	if cached, ok := h.injTrees[key]; ok && cached.generation == h.generation {
		return cached.tree, nil
	}
	parser := sitter.NewParser()
	parser.SetLanguage(lang.Grammar)
	tree, err := parser.ParseCtx(ctx, nil, h.source[region.StartByte:region.EndByte])
	if err != nil {
		return nil, err
	}
	h.injTrees[key] = &injectedTree{tree: tree, generation: h.generation}
	return tree, nil
}

func regionKey(r injectionRegion) string {
	var b strings.Builder
	b.WriteString(r.Language)
	b.WriteByte(':')
	b.WriteString(uitoa(r.StartByte))
	b.WriteByte(':')
	b.WriteString(uitoa(r.EndByte))
	return b.String()
}

func uitoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
