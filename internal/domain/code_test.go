package domain

import (
	"strings"
	"testing"
)

func TestParseCode(t *testing.T) {
	valid := []string{"a", "abc123", "A-b_C9", strings.Repeat("x", 128)}
	for _, c := range valid {
		code, err := ParseCode(c)
		if err != nil {
			t.Errorf("unexpected error for %q: %v", c, err)
			continue
		}
		if !code.Valid() {
			t.Errorf("Valid() returned false for %q", c)
		}
		if code.String() != c {
			t.Errorf("String() mismatch: got %q want %q", code.String(), c)
		}
	}

	invalid := []string{"", "has space", "slash/inside", "dot.", "pct%20", strings.Repeat("x", 129), "quer?y", "frag#ment"}
	for _, c := range invalid {
		if _, err := ParseCode(c); err == nil {
			t.Errorf("expected error for %q", c)
		}
	}
}
