package lcdtext

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"Sáb", "Sab"},
		{"céu limpo", "ceu limpo"},
		{"chuva forte com trovoada", "chuva forte com trovoada"},
		{"precipitação", "precipitacao"},
		{"ÀÉÎÕÜ ñ Ç", "AEIOU n C"},
		// Division sign is in the block but has no letter fallback.
		{"a÷b", "a?b"},
		// Truncated sequence: lead byte with nothing after it.
		{"abc\xc3", "abc?"},
		// Lead byte followed by a non-continuation byte.
		{"\xc3Ab", "?b"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Sáb", "precipitação", "a÷b", "plain ascii 123", "nublado à noite"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeASCIIPassthrough(t *testing.T) {
	in := "The quick brown fox 0123456789 :/-."
	if got := Normalize(in); got != in {
		t.Fatalf("ASCII input changed: %q", got)
	}
}

func TestNormalizeNeverGrows(t *testing.T) {
	inputs := []string{"Sáb", "ãããã", "x", "", "çñ"}
	for _, in := range inputs {
		if got := Normalize(in); len(got) > len(in) {
			t.Fatalf("output longer than input for %q: %q", in, got)
		}
	}
}
