package recognizers

import (
	"testing"

	"go.uber.org/zap"

	"github.com/clearcell/clearcell/internal/engine"
)

func TestProse_EmptyText(t *testing.T) {
	r := NewProse(zap.NewNop())
	matches, err := r.Recognize("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matches != nil {
		t.Errorf("expected nil matches for empty text, got %+v", matches)
	}
}

func TestProse_PersonName(t *testing.T) {
	r := NewProse(zap.NewNop())
	matches, err := r.Recognize("Barack Obama visited Chicago last week.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	foundName := false
	for _, m := range matches {
		if m.Type != engine.TypeName && m.Type != engine.TypeAddress {
			t.Errorf("entity recognizer reported type %s, only NAME/ADDRESS allowed", m.Type)
		}
		if !m.Valid() {
			t.Errorf("invalid span %d..%d", m.Start, m.End)
		}
		if m.Source != engine.SourceNER {
			t.Errorf("source = %s, want ner", m.Source)
		}
		if m.Type == engine.TypeName {
			foundName = true
		}
	}
	if !foundName {
		t.Error("expected a NAME match for a well-known person")
	}
}

func TestProse_NoEntities(t *testing.T) {
	r := NewProse(zap.NewNop())
	matches, err := r.Recognize("the quick brown fox jumps over the lazy dog")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, m := range matches {
		if m.Type != engine.TypeName && m.Type != engine.TypeAddress {
			t.Errorf("unexpected type %s", m.Type)
		}
	}
}
