package engine

import (
	"errors"
	"testing"

	"go.uber.org/zap"
)

var errFake = errors.New("model missing")

// fakeRecognizer returns canned matches for a fixed needle.
type fakeRecognizer struct {
	name    string
	typ     PIIType
	matches []Match
}

func (f *fakeRecognizer) Name() string  { return f.name }
func (f *fakeRecognizer) Type() PIIType { return f.typ }
func (f *fakeRecognizer) Match(text string) []Match {
	if text == "" {
		return nil
	}
	return f.matches
}

// stubEntities is the injectable entity recognizer used across tests.
type stubEntities struct {
	matches []Match
	err     error
}

func (s *stubEntities) Recognize(text string) ([]Match, error) {
	if text == "" {
		return nil, nil
	}
	return s.matches, s.err
}

func TestScanner_EmptyText(t *testing.T) {
	s := NewScanner([]Recognizer{
		&fakeRecognizer{name: "email", typ: TypeEmail, matches: []Match{{Type: TypeEmail, End: 5, Confidence: 1, Source: SourcePattern}}},
	}, &stubEntities{}, zap.NewNop())

	matches, err := s.Detect("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matches != nil {
		t.Errorf("expected nil matches for empty text, got %+v", matches)
	}
}

func TestScanner_ConcatenatesPatternAndEntity(t *testing.T) {
	pattern := Match{Type: TypeEmail, Start: 0, End: 7, Confidence: 0.99, Source: SourcePattern}
	entity := Match{Type: TypeName, Start: 0, End: 7, Confidence: 0.80, Source: SourceNER}

	s := NewScanner(
		[]Recognizer{&fakeRecognizer{name: "email", typ: TypeEmail, matches: []Match{pattern}}},
		&stubEntities{matches: []Match{entity}},
		zap.NewNop(),
	)

	matches, err := s.Detect("a@b.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2 (no overlap dedup)", len(matches))
	}
	if matches[0].Source != SourcePattern || matches[1].Source != SourceNER {
		t.Error("pattern matches must precede entity matches")
	}
}

func TestScanner_DropsMalformedSpans(t *testing.T) {
	bad := Match{Type: TypeEmail, Start: 9, End: 3, Confidence: 0.99, Source: SourcePattern}
	good := Match{Type: TypeEmail, Start: 0, End: 7, Confidence: 0.99, Source: SourcePattern}

	s := NewScanner(
		[]Recognizer{&fakeRecognizer{name: "email", typ: TypeEmail, matches: []Match{bad, good}}},
		nil,
		zap.NewNop(),
	)

	matches, err := s.Detect("a@b.com")
	if err != nil {
		t.Fatalf("malformed span must be dropped, not propagated: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0] != good {
		t.Errorf("surviving match = %+v, want %+v", matches[0], good)
	}
}

func TestScanner_EntityErrorPropagates(t *testing.T) {
	cfgErr := &ConfigurationError{Err: errFake}
	s := NewScanner(nil, &stubEntities{err: cfgErr}, zap.NewNop())

	_, err := s.Detect("some text")
	if err == nil {
		t.Fatal("expected entity recognizer error to propagate")
	}
}
