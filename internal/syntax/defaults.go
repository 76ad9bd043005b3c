package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/json"
)

// RegisterDefaults populates reg with a small fixed set of grammars: Go and
// JSON. This is a demonstration catalog, not an exhaustive
// language list — callers add more via Register.
func RegisterDefaults(reg *Registry) error {
	goCfg, err := NewLanguageConfig("go", golang.GetLanguage(), goHighlights, "", "")
	if err != nil {
		return err
	}
	reg.Register(goCfg)

	jsonCfg, err := NewLanguageConfig("json", json.GetLanguage(), jsonHighlights, "", "")
	if err != nil {
		return err
	}
	reg.Register(jsonCfg)

	return nil
}

const goHighlights = `
(comment) @comment
(interpreted_string_literal) @string
(raw_string_literal) @string
(rune_literal) @string
(int_literal) @number
(float_literal) @number
(imaginary_literal) @number
(true) @constant.builtin
(false) @constant.builtin
(nil) @constant.builtin

[
  "func" "package" "import" "return" "if" "else" "for" "range" "switch"
  "case" "default" "select" "go" "defer" "chan" "var" "const" "type"
  "struct" "interface" "map" "break" "continue" "fallthrough" "goto"
] @keyword

(function_declaration name: (identifier) @function)
(method_declaration name: (field_identifier) @function.method)
(call_expression function: (identifier) @function.call)
(call_expression function: (selector_expression field: (field_identifier) @function.method.call))
`

const jsonHighlights = `
(string) @string
(number) @number
(true) @constant.builtin
(false) @constant.builtin
(null) @constant.builtin
(pair key: (string) @property)
`
