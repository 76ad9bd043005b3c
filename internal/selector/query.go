// Package selector implements the type-to-filter selector widget and the
// single-line mini-buffer built on top of it. The fuzzy
// query grammar follows github.com/junegunn/fzf's query syntax, which
// itself wraps github.com/junegunn/fzf's matching engine.
package selector

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// query syntax:
//
//	"foo"     fuzzy subsequence match
//	"'foo"    exact substring match
//	"^foo"    prefix match
//	"foo$"    suffix match
//	"!foo"    negated fuzzy match
//	"!'foo"   negated exact match
//	"!^foo"   negated prefix match
//	"!foo$"   negated suffix match
//	"a b"     AND — all space-separated terms must match
//	"a | b"   OR  — at least one pipe-separated term must match
func init() {
	algo.Init("default")
}

var fzfSlab = util.MakeSlab(100*1024, 2048)

// Query is a pre-parsed fuzzy-filter query: parse once, score many.
type Query struct {
	groups []queryGroup
}

type queryGroup struct {
	terms []queryTerm
}

type termKind int

const (
	termFuzzy termKind = iota
	termExact
	termPrefix
	termSuffix
)

type queryTerm struct {
	pattern       string
	patRunes      []rune
	kind          termKind
	negated       bool
	caseSensitive bool
}

// ParseQuery parses a raw query string into a reusable Query.
func ParseQuery(raw string) Query {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Query{}
	}

	var q Query
	rest := raw
	for {
		idx := strings.Index(rest, " | ")
		var part string
		if idx < 0 {
			part = rest
		} else {
			part = rest[:idx]
		}

		part = strings.TrimSpace(part)
		if part != "" {
			g := parseGroup(part)
			if len(g.terms) > 0 {
				q.groups = append(q.groups, g)
			}
		}

		if idx < 0 {
			break
		}
		rest = rest[idx+3:]
	}
	return q
}

// Empty reports whether the query has no terms.
func (q *Query) Empty() bool { return len(q.groups) == 0 }

func parseGroup(part string) queryGroup {
	var g queryGroup
	start := -1
	for i := 0; i <= len(part); i++ {
		isSpace := i < len(part) && (part[i] == ' ' || part[i] == '\t')
		atEnd := i == len(part)
		if start < 0 {
			if !isSpace && !atEnd {
				start = i
			}
		} else if isSpace || atEnd {
			g.terms = append(g.terms, parseTerm(part[start:i]))
			start = -1
		}
	}
	return g
}

func parseTerm(tok string) queryTerm {
	t := queryTerm{kind: termFuzzy}

	if len(tok) > 1 && tok[0] == '!' {
		t.negated = true
		tok = tok[1:]
	}

	if len(tok) > 1 && tok[0] == '\'' {
		t.kind = termExact
		tok = tok[1:]
	} else if len(tok) > 1 && tok[0] == '^' {
		t.kind = termPrefix
		tok = tok[1:]
	} else if len(tok) > 1 && tok[len(tok)-1] == '$' {
		t.kind = termSuffix
		tok = tok[:len(tok)-1]
	}

	t.caseSensitive = hasUppercase(tok)
	if !t.caseSensitive {
		tok = strings.ToLower(tok)
	}

	t.pattern = tok
	t.patRunes = []rune(tok)
	return t
}

func hasUppercase(s string) bool {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsUpper(r) {
			return true
		}
		i += size
	}
	return false
}

// Score scores a single candidate against the parsed query. Returns
// (score, matched); higher score is a better match.
func (q *Query) Score(candidate string) (int, bool) {
	if len(q.groups) == 0 {
		return 0, true
	}

	bestScore := -1
	matched := false
	for i := range q.groups {
		score, ok := q.groups[i].score(candidate)
		if ok && score > bestScore {
			matched = true
			bestScore = score
		}
	}
	return bestScore, matched
}

func (g *queryGroup) score(candidate string) (int, bool) {
	total := 0
	for i := range g.terms {
		score, ok := g.terms[i].score(candidate)
		if !ok {
			return 0, false
		}
		total += score
	}
	return total, true
}

func (t *queryTerm) score(candidate string) (int, bool) {
	chars := util.ToChars([]byte(candidate))

	var algoFn func(bool, bool, bool, *util.Chars, []rune, bool, *util.Slab) (algo.Result, *[]int)
	switch t.kind {
	case termExact:
		algoFn = algo.ExactMatchNaive
	case termPrefix:
		algoFn = algo.PrefixMatch
	case termSuffix:
		algoFn = algo.SuffixMatch
	default:
		algoFn = algo.FuzzyMatchV2
	}

	result, _ := algoFn(t.caseSensitive, false, true, &chars, t.patRunes, false, fzfSlab)
	matched := result.Start >= 0

	if t.negated {
		return 0, !matched
	}
	if !matched {
		return 0, false
	}
	return result.Score, true
}
