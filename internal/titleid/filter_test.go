package titleid

import (
	"reflect"
	"testing"
)

func TestFilterCandidatesConfidenceGate(t *testing.T) {
	tokens := []Token{
		{Text: "INCEPTION", Confidence: 0.30},
		{Text: "INTERSTELLAR", Confidence: 0.12},
	}
	if got := FilterCandidates(tokens, DefaultPolicy()); len(got) != 0 {
		t.Fatalf("expected low-confidence tokens to be dropped, got %v", got)
	}
}

func TestFilterCandidatesRejectionRules(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"too short", "OK"},
		{"numeric", "2019"},
		{"duration hours", "2hr 14min"},
		{"duration minutes", "45 min"},
		{"season marker", "Season 1"},
		{"episode marker", "Ep 3"},
		{"url", "www.netflix.com"},
		{"url scheme", "tps://watch"},
		{"ui chrome", "More Like This"},
		{"ui chrome lowercase", "recently added"},
		{"rating", "TV-MA"},
		{"rating badge", "PG-13"},
		{"narrative", "A thief who steals corporate secrets through the use of dream-sharing technology"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tokens := []Token{{Text: tc.text, Confidence: 0.9}}
			if got := FilterCandidates(tokens, DefaultPolicy()); len(got) != 0 {
				t.Fatalf("expected %q to be rejected, got %v", tc.text, got)
			}
		})
	}
}

func TestFilterCandidatesKeepsTitles(t *testing.T) {
	tokens := []Token{
		{Text: "Play", Confidence: 0.95},
		{Text: "STRANGER THINGS", Confidence: 0.92},
		{Text: "HD", Confidence: 0.99},
		{Text: "THE CROWN", Confidence: 0.88},
		{Text: "2h 5m", Confidence: 0.80},
	}
	want := []string{"STRANGER THINGS", "THE CROWN"}
	if got := FilterCandidates(tokens, DefaultPolicy()); !reflect.DeepEqual(got, want) {
		t.Fatalf("FilterCandidates = %v, want %v", got, want)
	}
}

func TestFilterCandidatesCaseSensitiveRatings(t *testing.T) {
	// "hd" is not a rating badge; only the exact uppercase form is.
	tokens := []Token{{Text: "hdtv show", Confidence: 0.9}}
	if got := FilterCandidates(tokens, DefaultPolicy()); len(got) != 1 {
		t.Fatalf("lowercase near-rating should survive, got %v", got)
	}
}

func TestFilterCandidatesEmptyInput(t *testing.T) {
	if got := FilterCandidates(nil, DefaultPolicy()); len(got) != 0 {
		t.Fatalf("expected empty output for empty input, got %v", got)
	}
}

func TestFilterCandidatesIdempotent(t *testing.T) {
	tokens := []Token{
		{Text: "OZARK", Confidence: 0.9},
		{Text: "Season 2", Confidence: 0.9},
	}
	first := FilterCandidates(tokens, DefaultPolicy())
	second := FilterCandidates(tokens, DefaultPolicy())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("filter not deterministic: %v vs %v", first, second)
	}
}
