package syntax

import (
	"strings"

	"github.com/kungfusheep/glyphcore/internal/style"
)

// Theme maps capture names to styles, falling back to progressively
// shorter dotted prefixes when an exact capture name is not themed
// ("function.method.call" falls back to "function.method",
// then "function").
type Theme struct {
	byCapture map[string]style.Style
	fallback  style.Style
}

// NewTheme builds a theme from a capture-name -> style table.
func NewTheme(table map[string]style.Style) *Theme {
	return &Theme{byCapture: table, fallback: style.Default()}
}

// Lookup resolves name to a style, trying exact match then progressively
// shorter dotted prefixes, and finally the theme's fallback style.
func (th *Theme) Lookup(name string) style.Style {
	for {
		if s, ok := th.byCapture[name]; ok {
			return s
		}
		idx := strings.LastIndexByte(name, '.')
		if idx < 0 {
			return th.fallback
		}
		name = name[:idx]
	}
}
