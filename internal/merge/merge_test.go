package merge

import "testing"

func TestMergeNonOverlappingEditsIsClean(t *testing.T) {
	base := "one\ntwo\nthree\n"
	ours := "ONE\ntwo\nthree\n"
	theirs := "one\ntwo\nTHREE\n"

	out := Merge(base, ours, theirs)
	if !out.Clean {
		t.Fatalf("expected clean merge, got conflict: %q", out.Content)
	}
	if out.Content != "ONE\ntwo\nTHREE\n" {
		t.Fatalf("content = %q", out.Content)
	}
}

func TestMergeConflictingEditsProducesMarkers(t *testing.T) {
	base := "one\ntwo\nthree\n"
	ours := "one\nOURS\nthree\n"
	theirs := "one\nTHEIRS\nthree\n"

	out := Merge(base, ours, theirs)
	if out.Clean {
		t.Fatalf("expected a conflict, got clean: %q", out.Content)
	}
	want := "one\n<<<<<<< buffer\nOURS\n=======\nTHEIRS\n>>>>>>> disk\nthree\n"
	if out.Content != want {
		t.Fatalf("content = %q, want %q", out.Content, want)
	}
}

func TestMergeIdempotence(t *testing.T) {
	x := "alpha\nbeta\ngamma\n"
	out := Merge(x, x, x)
	if !out.Clean {
		t.Fatalf("merge(X,X,X) should be clean, got conflict: %q", out.Content)
	}
	if out.Content != x {
		t.Fatalf("content = %q, want %q", out.Content, x)
	}
}

func TestMergeConvergentReplaceIsClean(t *testing.T) {
	base := "one\ntwo\nthree\n"
	ours := "one\nSAME\nthree\n"
	theirs := "one\nSAME\nthree\n"

	out := Merge(base, ours, theirs)
	if !out.Clean {
		t.Fatalf("expected clean convergent replace, got conflict: %q", out.Content)
	}
	if out.Content != theirs {
		t.Fatalf("content = %q, want %q", out.Content, theirs)
	}
}

func TestMergeReplaceVsDeleteConflicts(t *testing.T) {
	base := "one\ntwo\nthree\n"
	ours := "one\nCHANGED\nthree\n"
	theirs := "one\nthree\n"

	out := Merge(base, ours, theirs)
	if out.Clean {
		t.Fatalf("expected conflict for replace-vs-delete, got clean: %q", out.Content)
	}
}

func TestMergeEmptyBaseFallsBackToTwoWayDiff(t *testing.T) {
	ours := "hello\nworld\n"
	theirs := "hello\nthere\n"

	out := Merge("", ours, theirs)
	if out.Clean {
		t.Fatalf("expected a conflict-wrapped two-way diff, got clean: %q", out.Content)
	}
	if out.Content == "" {
		t.Fatalf("expected non-empty content")
	}
}

func TestMergeEmptyBaseIdenticalSidesIsClean(t *testing.T) {
	same := "only one version\n"
	out := Merge("", same, same)
	if !out.Clean {
		t.Fatalf("identical ours/theirs with empty base should be clean: %q", out.Content)
	}
	if out.Content != same {
		t.Fatalf("content = %q, want %q", out.Content, same)
	}
}

func TestMergeOnlyOneSideChangedIsClean(t *testing.T) {
	base := "a\nb\nc\n"
	ours := "a\nb\nc\n"
	theirs := "a\nB\nc\n"

	out := Merge(base, ours, theirs)
	if !out.Clean {
		t.Fatalf("expected clean when only one side changed, got conflict: %q", out.Content)
	}
	if out.Content != theirs {
		t.Fatalf("content = %q, want %q", out.Content, theirs)
	}
}

func TestMergeBothSidesDeleteSameLineIsClean(t *testing.T) {
	base := "a\nb\nc\n"
	ours := "a\nc\n"
	theirs := "a\nc\n"

	out := Merge(base, ours, theirs)
	if !out.Clean {
		t.Fatalf("expected clean when both sides delete the same line, got conflict: %q", out.Content)
	}
	if out.Content != "a\nc\n" {
		t.Fatalf("content = %q", out.Content)
	}
}

func TestMergeBothSidesInsertSameLinesAtSamePointIsClean(t *testing.T) {
	base := "a\nb\n"
	ours := "a\nNEW\nb\n"
	theirs := "a\nNEW\nb\n"

	out := Merge(base, ours, theirs)
	if !out.Clean {
		t.Fatalf("expected clean for identical insertions at the same point, got conflict: %q", out.Content)
	}
	if out.Content != ours {
		t.Fatalf("content = %q, want %q", out.Content, ours)
	}
}

func TestMergeBothSidesInsertDifferentLinesAtSamePointConflicts(t *testing.T) {
	base := "a\nb\n"
	ours := "a\nOURS_NEW\nb\n"
	theirs := "a\nTHEIRS_NEW\nb\n"

	out := Merge(base, ours, theirs)
	if out.Clean {
		t.Fatalf("expected a conflict for differing insertions at the same point, got clean: %q", out.Content)
	}
}
