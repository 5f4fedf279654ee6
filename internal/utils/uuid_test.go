package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestIDGenerator_GenerateV7(t *testing.T) {
	id := NewIDGenerator().Generate()

	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("expected valid uuid, got %q: %v", id, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("expected version 7, got %d", parsed.Version())
	}
}

func TestIDGenerator_Unique(t *testing.T) {
	g := NewIDGenerator()
	seen := make(map[string]struct{}, 100)

	for range 100 {
		id := g.Generate()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = struct{}{}
	}
}
