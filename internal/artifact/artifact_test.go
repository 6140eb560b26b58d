package artifact

import (
	"testing"

	"github.com/mabhi256/r8deobf/internal/mapping"
)

func TestIDStableForIdenticalBytes(t *testing.T) {
	a := ID([]byte("com.example.A -> a:\n"))
	b := ID([]byte("com.example.A -> a:\n"))
	if a != b {
		t.Fatalf("expected identical bytes to derive the same id, got %v and %v", a, b)
	}
}

func TestIDDiffersForDifferentBytes(t *testing.T) {
	a := ID([]byte("com.example.A -> a:\n"))
	b := ID([]byte("com.example.B -> b:\n"))
	if a == b {
		t.Fatalf("expected different bytes to derive different ids")
	}
}

func TestOfMatchesID(t *testing.T) {
	src := []byte("com.example.A -> a:\n")
	m := mapping.New(src)
	if Of(m) != ID(src) {
		t.Fatalf("Of(m) should match ID(m.Source())")
	}
}
