package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/clearcell/clearcell/internal/dataset"
	"github.com/clearcell/clearcell/internal/engine"
	"github.com/clearcell/clearcell/internal/engine/recognizers"
	"github.com/clearcell/clearcell/internal/sanitize"
	"github.com/clearcell/clearcell/internal/storage"
)

// stubEntities stands in for the NER model so pipeline tests run
// without loading it.
type stubEntities struct {
	err error
}

func (s *stubEntities) Recognize(text string) ([]engine.Match, error) {
	if s.err != nil && text != "" {
		return nil, s.err
	}
	return nil, nil
}

// countingEntities tallies inference calls so tests can assert no cell
// is scanned twice.
type countingEntities struct {
	calls atomic.Int32
}

func (c *countingEntities) Recognize(text string) ([]engine.Match, error) {
	c.calls.Add(1)
	return nil, nil
}

// captureWriter records audit events for assertions.
type captureWriter struct {
	events []*storage.RunEvent
}

func (c *captureWriter) Write(event *storage.RunEvent) { c.events = append(c.events, event) }
func (c *captureWriter) Close()                        {}

func newTestPipeline(t *testing.T, audit storage.AuditWriter) *Pipeline {
	t.Helper()
	p, err := New(Config{
		Recognizers:  recognizers.All(),
		Entities:     &stubEntities{},
		Workers:      4,
		PseudonymKey: []byte("pipeline-test-key"),
		Audit:        audit,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func emailDataset() *dataset.Dataset {
	return dataset.New(
		dataset.Column{Name: "email", Values: []dataset.Value{
			dataset.Text("a@b.com"),
			dataset.Text("not-an-email"),
		}},
	)
}

func TestAnalyze_Scenario(t *testing.T) {
	p := newTestPipeline(t, nil)

	report, err := p.Analyze(context.Background(), emailDataset())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	col := report.Columns[0]
	if col.PIICount != 1 {
		t.Errorf("pii_count = %d, want 1", col.PIICount)
	}
	if len(col.SuspectedTypes) != 1 || col.SuspectedTypes[0] != "EMAIL" {
		t.Errorf("suspected_types = %v, want [EMAIL]", col.SuspectedTypes)
	}
}

func TestSanitize_RedactScenario(t *testing.T) {
	p := newTestPipeline(t, nil)

	result, report, err := p.Sanitize(context.Background(), emailDataset(), sanitize.ActionRedact, []string{"email"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report == nil {
		t.Fatal("sanitize must report the implicit analysis")
	}
	if result.MutatedCells != 1 {
		t.Errorf("mutated_cell_count = %d, want 1", result.MutatedCells)
	}
	values := result.Dataset.Columns[0].Values
	if values[1].Canonical() != "not-an-email" {
		t.Errorf("row 2 = %q, want unchanged", values[1].Canonical())
	}
}

func TestSanitize_RedactIdempotent(t *testing.T) {
	p := newTestPipeline(t, nil)

	first, _, err := p.Sanitize(context.Background(), emailDataset(), sanitize.ActionRedact, []string{"email"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.MutatedCells != 1 {
		t.Fatalf("first pass mutated %d cells, want 1", first.MutatedCells)
	}

	// Detection runs again over the sanitized output; nothing remains.
	second, _, err := p.Sanitize(context.Background(), first.Dataset, sanitize.ActionRedact, []string{"email"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.MutatedCells != 0 {
		t.Errorf("second pass mutated %d cells, want 0", second.MutatedCells)
	}
}

func TestAnalyze_IdempotentBytes(t *testing.T) {
	p := newTestPipeline(t, nil)
	ds := dataset.New(
		dataset.Column{Name: "contact", Values: []dataset.Value{
			dataset.Text("mail a@b.com or call 555-123-4567"),
			dataset.Text("SSN 123-45-6789"),
			dataset.Null(),
		}},
		dataset.Column{Name: "score", Values: []dataset.Value{
			dataset.Float(1.5),
			dataset.Int(7),
			dataset.Int(9),
		}},
	)

	first, err := p.Analyze(context.Background(), ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.Analyze(context.Background(), ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b1, _ := json.Marshal(first)
	b2, _ := json.Marshal(second)
	if !bytes.Equal(b1, b2) {
		t.Errorf("analyze is not byte-identical:\n%s\n%s", b1, b2)
	}
}

func TestSanitize_UnknownColumn(t *testing.T) {
	p := newTestPipeline(t, nil)
	ds := emailDataset()

	_, _, err := p.Sanitize(context.Background(), ds, sanitize.ActionRedact, []string{"missing"})
	if err == nil {
		t.Fatal("expected error for unknown column")
	}
	if Classify(err) != KindCaller {
		t.Errorf("Classify = %s, want caller", Classify(err))
	}
	if ds.Columns[0].Values[0].Canonical() != "a@b.com" {
		t.Error("dataset modified despite caller error")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"structural", &dataset.StructuralError{Msg: "ragged"}, KindStructural},
		{"configuration", &engine.ConfigurationError{Err: errors.New("no model")}, KindConfiguration},
		{"invalid column", &sanitize.InvalidColumnError{Column: "x"}, KindCaller},
		{"invalid action", &sanitize.InvalidActionError{Token: "zap"}, KindCaller},
		{"other", errors.New("boom"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAnalyze_ConfigurationErrorPropagates(t *testing.T) {
	cfgErr := &engine.ConfigurationError{Err: errors.New("model load failed")}
	p, err := New(Config{
		Recognizers:  recognizers.All(),
		Entities:     &stubEntities{err: cfgErr},
		PseudonymKey: []byte("key"),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	report, err := p.Analyze(context.Background(), emailDataset())
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if report != nil {
		t.Error("no partial report may accompany an error")
	}
	if Classify(err) != KindConfiguration {
		t.Errorf("Classify = %s, want configuration", Classify(err))
	}
}

func TestPipeline_AuditEvents(t *testing.T) {
	capture := &captureWriter{}
	p := newTestPipeline(t, capture)
	ctx := context.Background()

	if _, err := p.Analyze(ctx, emailDataset()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := p.Sanitize(ctx, emailDataset(), sanitize.ActionMask, []string{"email"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(capture.events) != 2 {
		t.Fatalf("got %d audit events, want 2", len(capture.events))
	}
	if capture.events[0].Kind != "analyze" || capture.events[1].Kind != "sanitize" {
		t.Errorf("event kinds = %s, %s", capture.events[0].Kind, capture.events[1].Kind)
	}
	if capture.events[1].Action != "mask" {
		t.Errorf("sanitize event action = %q, want mask", capture.events[1].Action)
	}
	if capture.events[0].RunID == capture.events[1].RunID {
		t.Error("run IDs must be unique per run")
	}
}

func TestPolicyDisablesRecognizer(t *testing.T) {
	disabled := false
	p, err := New(Config{
		Recognizers: recognizers.All(),
		Entities:    &stubEntities{},
		Policy: &engine.DetectionPolicy{
			Recognizers: map[string]engine.RecognizerPolicy{
				"email": {Enabled: &disabled},
			},
		},
		PseudonymKey: []byte("key"),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	report, err := p.Analyze(context.Background(), emailDataset())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Columns[0].PIICount != 0 {
		t.Error("disabled email recognizer still produced matches")
	}
}

func TestSanitize_SingleDetectionPass(t *testing.T) {
	entities := &countingEntities{}
	p, err := New(Config{
		Recognizers:  recognizers.All(),
		Entities:     entities,
		PseudonymKey: []byte("key"),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// 2 non-empty cells; entity inference must run once per cell even
	// though sanitization also consumes the matches.
	_, _, err = p.Sanitize(context.Background(), emailDataset(), sanitize.ActionRedact, []string{"email"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := entities.calls.Load(); got != 2 {
		t.Errorf("entity recognizer ran %d times, want 2 (once per cell)", got)
	}
}

func TestPolicyMaskRune(t *testing.T) {
	p, err := New(Config{
		Recognizers:  recognizers.All(),
		Entities:     &stubEntities{},
		Policy:       &engine.DetectionPolicy{MaskRune: "#"},
		PseudonymKey: []byte("key"),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ds := dataset.New(
		dataset.Column{Name: "ssn", Values: []dataset.Value{
			dataset.Text("123-45-6789"),
		}},
	)
	result, _, err := p.Sanitize(context.Background(), ds, sanitize.ActionMask, []string{"ssn"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.Dataset.Columns[0].Values[0].Canonical(); got != "###-##-6789" {
		t.Errorf("masked value = %q, want ###-##-6789", got)
	}
}
