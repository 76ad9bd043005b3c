// Package style is the shared rendering vocabulary for everything that
// produces styled text: the syntax highlighter, the terminal buffer
// adapter, and the selector/mini-buffer widgets. It adapts the color and
// attribute model of a typical terminal UI's Style/Color types,
// extended with the four-state underline and explicit reverse-video the
// spec's Styled Line calls for.
package style

// ColorMode discriminates how a Color's fields should be interpreted.
type ColorMode uint8

const (
	// ColorDefault defers to the terminal's default foreground/background.
	ColorDefault ColorMode = iota
	// Color16 selects one of the basic 16 ANSI colors via Index.
	Color16
	// Color256 selects one of the 256-color palette via Index.
	Color256
	// ColorRGB is a 24-bit true color via R, G, B.
	ColorRGB
)

// Color represents a terminal color in one of four modes.
type Color struct {
	Mode    ColorMode
	R, G, B uint8
	Index   uint8
}

// DefaultColor returns the terminal's default color.
func DefaultColor() Color { return Color{Mode: ColorDefault} }

// Named16 returns one of the 16 basic ANSI colors.
func Named16(index uint8) Color { return Color{Mode: Color16, Index: index} }

// Indexed256 returns one of the 256-color palette entries.
func Indexed256(index uint8) Color { return Color{Mode: Color256, Index: index} }

// RGB returns a 24-bit true color.
func RGB(r, g, b uint8) Color { return Color{Mode: ColorRGB, R: r, G: g, B: b} }

// Underline discriminates the four underline renderings a cell can have.
type Underline uint8

const (
	UnderlineNone Underline = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineCurly
)

// Style carries every visual attribute a span of text can have.
type Style struct {
	FG            Color
	BG            Color
	Bold          bool
	Italic        bool
	Underline     Underline
	Strikethrough bool
	Reverse       bool
}

// Default returns a style with default colors and no attributes.
func Default() Style {
	return Style{FG: DefaultColor(), BG: DefaultColor()}
}

// Foreground returns a copy of s with FG set.
func (s Style) Foreground(c Color) Style { s.FG = c; return s }

// Background returns a copy of s with BG set.
func (s Style) Background(c Color) Style { s.BG = c; return s }

// WithBold returns a copy of s with bold enabled.
func (s Style) WithBold() Style { s.Bold = true; return s }

// WithItalic returns a copy of s with italic enabled.
func (s Style) WithItalic() Style { s.Italic = true; return s }

// WithUnderline returns a copy of s with the given underline kind.
func (s Style) WithUnderline(u Underline) Style { s.Underline = u; return s }

// WithStrikethrough returns a copy of s with strikethrough enabled.
func (s Style) WithStrikethrough() Style { s.Strikethrough = true; return s }

// WithReverse returns a copy of s with reverse video enabled.
func (s Style) WithReverse() Style { s.Reverse = true; return s }

// Equal reports whether two styles render identically, used to merge
// adjacent spans in the highlighter's merge walk.
func (s Style) Equal(other Style) bool {
	return s == other
}

// Span is a run of text carrying one style.
type Span struct {
	Text  string
	Style Style
}

// StyledLine is an ordered sequence of spans making up one rendered line.
type StyledLine struct {
	Spans []Span
}

// Text concatenates every span's text; used by the highlighter's
// completeness invariant: concatenation equals the source line.
func (l StyledLine) Text() string {
	out := make([]byte, 0, 64)
	for _, sp := range l.Spans {
		out = append(out, sp.Text...)
	}
	return string(out)
}

// PlainLine wraps s as a single unstyled span, used as the fallback when
// highlighting is unavailable.
func PlainLine(s string) StyledLine {
	if s == "" {
		return StyledLine{}
	}
	return StyledLine{Spans: []Span{{Text: s, Style: Default()}}}
}

// AppendMerged appends span to spans, merging it into the last span if the
// styles are identical.
func AppendMerged(spans []Span, span Span) []Span {
	if span.Text == "" {
		return spans
	}
	if n := len(spans); n > 0 && spans[n-1].Style.Equal(span.Style) {
		spans[n-1].Text += span.Text
		return spans
	}
	return append(spans, span)
}

// CursorShape enumerates the supported cursor renderings.
type CursorShape uint8

const (
	CursorBlock CursorShape = iota
	CursorUnderline
	CursorBeam
	CursorHidden
)
