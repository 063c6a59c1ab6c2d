package common

import "testing"

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"London":          "london",
		"  New   York ":   "new york",
		"RIO DE\tJANEIRO": "rio de janeiro",
		"":                "",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}
