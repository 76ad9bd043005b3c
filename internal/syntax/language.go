// Package syntax provides incremental tree-sitter based highlighting with
// viewport capture caching and language injection, grounded on
// github.com/smacker/go-tree-sitter.
package syntax

import sitter "github.com/smacker/go-tree-sitter"

// LanguageConfig bundles a grammar with its compiled queries. Highlights is
// required; Injections and Locals are optional and compiled eagerly when
// present. The languages an injections query resolves to are looked up in
// the Registry (filled by Register) only when a region is first highlighted.
type LanguageConfig struct {
	Name       string
	Grammar    *sitter.Language
	Highlights *sitter.Query
	Injections *sitter.Query
	Locals     *sitter.Query
}

// NewLanguageConfig compiles the highlight query (required) and the
// injections/locals queries (optional, empty string to skip). Any query
// compile failure returns an error; callers fall back to plain-text
// rendering rather than treating it as fatal.
func NewLanguageConfig(name string, grammar *sitter.Language, highlights, injections, locals string) (*LanguageConfig, error) {
	hq, err := sitter.NewQuery([]byte(highlights), grammar)
	if err != nil {
		return nil, err
	}
	cfg := &LanguageConfig{Name: name, Grammar: grammar, Highlights: hq}
	if injections != "" {
		iq, err := sitter.NewQuery([]byte(injections), grammar)
		if err != nil {
			return nil, err
		}
		cfg.Injections = iq
	}
	if locals != "" {
		lq, err := sitter.NewQuery([]byte(locals), grammar)
		if err != nil {
			return nil, err
		}
		cfg.Locals = lq
	}
	return cfg, nil
}

// Registry resolves a language by name (as extracted from a file extension
// or an injection's resolved language token).
type Registry struct {
	byName map[string]*LanguageConfig
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*LanguageConfig)}
}

// Register adds or replaces a language under cfg.Name.
func (r *Registry) Register(cfg *LanguageConfig) {
	r.byName[cfg.Name] = cfg
}

// Lookup returns the config registered under name, if any.
func (r *Registry) Lookup(name string) (*LanguageConfig, bool) {
	cfg, ok := r.byName[name]
	return cfg, ok
}

// LookupByExtension maps a file extension (without the leading dot) to a
// language name via a small fixed table, then resolves it through the
// registry.
func (r *Registry) LookupByExtension(ext string) (*LanguageConfig, bool) {
	name, ok := extensionLanguage[ext]
	if !ok {
		return nil, false
	}
	return r.Lookup(name)
}

var extensionLanguage = map[string]string{
	"go":   "go",
	"json": "json",
	"md":   "markdown",
}
