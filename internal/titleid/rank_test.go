package titleid

import "testing"

func TestSelectTitleSingleCandidate(t *testing.T) {
	title, ok := SelectTitle([]string{"INTERSTELLAR"}, []string{"INTERSTELLAR"}, DefaultPolicy())
	if !ok || title != "INTERSTELLAR" {
		t.Fatalf("SelectTitle = %q ok=%v, want INTERSTELLAR", title, ok)
	}
}

func TestSelectTitleJoinsTopCandidates(t *testing.T) {
	candidates := []string{"KEVIN HART", "ACTING MY AGE"}
	title, ok := SelectTitle(candidates, candidates, DefaultPolicy())
	if !ok {
		t.Fatal("expected a title")
	}
	// "KEVIN HART" (2 words) outranks "ACTING MY AGE" (3 words); both join.
	if title != "KEVIN HART ACTING MY AGE" {
		t.Fatalf("unexpected joined title: %q", title)
	}
}

func TestSelectTitleJoinCapsAtThree(t *testing.T) {
	candidates := []string{"ONE", "TWO", "SIX SIX SIX", "TEN"}
	title, ok := SelectTitle(candidates, candidates, DefaultPolicy())
	if !ok {
		t.Fatal("expected a title")
	}
	// One-word candidates tie and keep their order; the three-word candidate
	// ranks last and falls outside the join window.
	if title != "ONE TWO TEN" {
		t.Fatalf("unexpected joined title: %q", title)
	}
}

func TestSelectTitleRejectsLetterSpacedArtifact(t *testing.T) {
	spaced := "L E O N A R D O"
	clean := shapeScore("INTERSTELLAR", DefaultPolicy())
	if score := shapeScore(spaced, DefaultPolicy()); score > clean-100 {
		t.Fatalf("expected artifact to trail a clean candidate by >= 100, got %d vs %d", score, clean)
	}
	candidates := []string{spaced, "INCEPTION"}
	title, ok := SelectTitle(candidates, candidates, DefaultPolicy())
	if !ok {
		t.Fatal("expected a title")
	}
	// The clean candidate must lead the joined result.
	if title != "INCEPTION L E O N A R D O" {
		t.Fatalf("clean candidate should outrank artifact: %q", title)
	}
}

func TestShapeScorePenalties(t *testing.T) {
	policy := DefaultPolicy()
	clean := shapeScore("INCEPTION", policy)
	digits := shapeScore("INCEPTION 2", policy)
	pipes := shapeScore("DARK|KNIGHT", policy)
	if clean <= digits {
		t.Fatalf("digits should be penalized: clean=%d digits=%d", clean, digits)
	}
	if clean <= pipes {
		t.Fatalf("pipe should be penalized: clean=%d pipes=%d", clean, pipes)
	}
	// Alphabetic-after-strip bonus applies to hyphenated titles too.
	if score := shapeScore("SPIDER-MAN", policy); score != 9 {
		t.Fatalf("unexpected score for hyphenated title: %d", score)
	}
}

func TestSelectTitleReconstruction(t *testing.T) {
	raw := []string{"Recently Added", "DARK", "KNIGHT", "Play"}
	title, ok := SelectTitle(nil, raw, DefaultPolicy())
	if !ok || title != "DARK KNIGHT" {
		t.Fatalf("reconstruction = %q ok=%v, want DARK KNIGHT", title, ok)
	}
}

func TestSelectTitleReconstructionConnectors(t *testing.T) {
	raw := []string{"Play", "LORD", "of", "THE", "RINGS", "Cast:", "Elijah Wood"}
	title, ok := SelectTitle(nil, raw, DefaultPolicy())
	if !ok || title != "LORD OF THE RINGS" {
		t.Fatalf("reconstruction = %q ok=%v, want LORD OF THE RINGS", title, ok)
	}
}

func TestSelectTitleReconstructionCap(t *testing.T) {
	raw := []string{"AA", "BB", "CC", "DD", "EE", "FF", "GG", "HH", "II"}
	title, ok := SelectTitle(nil, raw, DefaultPolicy())
	if !ok || title != "AA BB CC DD EE FF GG" {
		t.Fatalf("expected seven-token cap, got %q ok=%v", title, ok)
	}
}

func TestSelectTitleLongestFallback(t *testing.T) {
	// No uppercase candidates and no uppercase run in raw order: fall back
	// to the longest filtered candidate.
	candidates := []string{"Peaky Blinders", "Ozark"}
	title, ok := SelectTitle(candidates, []string{"Peaky Blinders", "Ozark"}, DefaultPolicy())
	if !ok || title != "Peaky Blinders" {
		t.Fatalf("longest fallback = %q ok=%v, want Peaky Blinders", title, ok)
	}
}

func TestSelectTitleEmpty(t *testing.T) {
	if title, ok := SelectTitle(nil, nil, DefaultPolicy()); ok || title != "" {
		t.Fatalf("expected no title for empty input, got %q ok=%v", title, ok)
	}
}

func TestSelectTitleIdempotent(t *testing.T) {
	candidates := []string{"KEVIN HART", "ACTING MY AGE"}
	raw := []string{"KEVIN HART", "ACTING MY AGE", "Play"}
	first, ok1 := SelectTitle(candidates, raw, DefaultPolicy())
	second, ok2 := SelectTitle(candidates, raw, DefaultPolicy())
	if first != second || ok1 != ok2 {
		t.Fatalf("SelectTitle not deterministic: %q vs %q", first, second)
	}
}
