package id

import (
	"strings"
	"testing"
)

func TestRandomGeneratorShape(t *testing.T) {
	gen := NewRandomGenerator()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		got, err := gen.NewID()
		if err != nil {
			t.Fatalf("generate id: %v", err)
		}
		if len(got) != 26 {
			t.Fatalf("expected 26-character id, got %q (%d)", got, len(got))
		}
		if got != strings.ToLower(got) {
			t.Fatalf("expected lowercase id, got %q", got)
		}
		if _, dup := seen[got]; dup {
			t.Fatalf("duplicate id after %d draws: %q", i, got)
		}
		seen[got] = struct{}{}
	}
}
