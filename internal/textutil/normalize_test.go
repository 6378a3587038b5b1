package textutil

import "testing"

func TestNormalizeToken(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "INCEPTION", "INCEPTION"},
		{"fullwidth", "ＩＮＣＥＰＴＩＯＮ", "INCEPTION"},
		{"nbsp", "DARK\u00a0KNIGHT", "DARK KNIGHT"},
		{"collapse", "  THE   CROWN  ", "THE CROWN"},
		{"tabs", "KEVIN\tHART", "KEVIN HART"},
		{"empty", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeToken(tc.input); got != tc.want {
				t.Fatalf("NormalizeToken(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Stranger Things", 30); got != "Stranger Things" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := Truncate("Stranger Things", 10); got != "Strange..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := Truncate("abc", 2); got != "ab" {
		t.Fatalf("unexpected truncation: %q", got)
	}
}
