package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator(t *testing.T) {
	g := NewUUIDGenerator()
	first, err := g.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, _ := g.NewID()
	if first == second {
		t.Fatalf("expected distinct ids")
	}
	if _, err := uuid.Parse(first); err != nil {
		t.Fatalf("expected uuid, got %q: %v", first, err)
	}
}

func TestSequenceGenerator(t *testing.T) {
	g := &SequenceGenerator{Prefix: "run"}
	a, _ := g.NewID()
	b, _ := g.NewID()
	if a != "run-1" || b != "run-2" {
		t.Fatalf("unexpected sequence: %s %s", a, b)
	}
}
