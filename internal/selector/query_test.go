package selector

import "testing"

func TestParseQuery(t *testing.T) {
	t.Run("simple fuzzy", func(t *testing.T) {
		q := ParseQuery("foo")
		if len(q.groups) != 1 || len(q.groups[0].terms) != 1 {
			t.Fatalf("expected 1 group with 1 term, got %+v", q.groups)
		}
		term := q.groups[0].terms[0]
		if term.kind != termFuzzy || term.pattern != "foo" || term.negated || term.caseSensitive {
			t.Fatalf("unexpected term: %+v", term)
		}
	})

	t.Run("case sensitive when uppercase", func(t *testing.T) {
		q := ParseQuery("Foo")
		if !q.groups[0].terms[0].caseSensitive {
			t.Fatalf("uppercase pattern should be case-sensitive")
		}
	})

	t.Run("exact prefix suffix negated", func(t *testing.T) {
		cases := map[string]termKind{
			"'exact": termExact, "^prefix": termPrefix, "suffix$": termSuffix,
		}
		for raw, want := range cases {
			term := ParseQuery(raw).groups[0].terms[0]
			if term.kind != want {
				t.Fatalf("%q: kind = %v, want %v", raw, term.kind, want)
			}
		}
		term := ParseQuery("!nope").groups[0].terms[0]
		if !term.negated || term.kind != termFuzzy {
			t.Fatalf("!nope: %+v", term)
		}
	})

	t.Run("and groups", func(t *testing.T) {
		q := ParseQuery("foo bar")
		if len(q.groups) != 1 || len(q.groups[0].terms) != 2 {
			t.Fatalf("expected 1 group with 2 AND terms, got %+v", q.groups)
		}
	})

	t.Run("or groups", func(t *testing.T) {
		q := ParseQuery("foo | bar")
		if len(q.groups) != 2 {
			t.Fatalf("expected 2 OR groups, got %d", len(q.groups))
		}
	})
}

func TestQueryScoreFuzzyMatch(t *testing.T) {
	q := ParseQuery("fb")
	if _, ok := q.Score("foobar"); !ok {
		t.Fatalf("expected fuzzy match of 'fb' in 'foobar'")
	}
	if _, ok := q.Score("xyz"); ok {
		t.Fatalf("expected no match of 'fb' in 'xyz'")
	}
}

func TestQueryScoreNegatedExcludesMatches(t *testing.T) {
	q := ParseQuery("!bar")
	if _, ok := q.Score("foobar"); ok {
		t.Fatalf("expected negated term to exclude a matching candidate")
	}
	if _, ok := q.Score("foo"); !ok {
		t.Fatalf("expected negated term to admit a non-matching candidate")
	}
}

func TestQueryScoreEmptyMatchesEverything(t *testing.T) {
	q := ParseQuery("")
	if _, ok := q.Score("anything"); !ok {
		t.Fatalf("empty query should match everything")
	}
}
