package recognizers

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"
	"go.uber.org/zap"

	"github.com/clearcell/clearcell/internal/engine"
)

// Prose wraps the prose NER model to detect person names and addresses
// in free text. The model loads once, lazily, on the first non-empty
// call; a load failure is returned as a ConfigurationError from that
// call and every later one.
//
// prose's tagger is not documented thread-safe, so inference runs under
// a mutex. Pattern recognizers never take this lock.
type Prose struct {
	logger *zap.Logger

	loadOnce sync.Once
	loadErr  error

	mu sync.Mutex
}

// NewProse creates the recognizer. The model is not loaded until the
// first Recognize call with non-empty text.
func NewProse(logger *zap.Logger) *Prose {
	return &Prose{logger: logger}
}

// load runs a probe document through prose so that a broken model
// surfaces immediately instead of on an arbitrary later cell.
func (p *Prose) load() {
	if _, err := prose.NewDocument("probe", prose.WithSegmentation(false)); err != nil {
		p.loadErr = &engine.ConfigurationError{Err: fmt.Errorf("load entity model: %w", err)}
		p.logger.Error("entity model failed to load", zap.Error(err))
		return
	}
	p.logger.Info("entity model loaded")
}

// Recognize extracts NAME and ADDRESS matches from the text.
func (p *Prose) Recognize(text string) ([]engine.Match, error) {
	if text == "" {
		return nil, nil
	}

	p.loadOnce.Do(p.load)
	if p.loadErr != nil {
		return nil, p.loadErr
	}

	p.mu.Lock()
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	p.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("entity inference: %w", err)
	}

	var matches []engine.Match
	searchFrom := 0
	for _, ent := range doc.Entities() {
		typ, ok := entityType(ent.Label)
		if !ok {
			continue
		}
		// prose reports entity text without offsets; locate each
		// occurrence left to right so repeated entities get distinct spans.
		rel := strings.Index(text[searchFrom:], ent.Text)
		if rel < 0 {
			continue
		}
		start := searchFrom + rel
		end := start + len(ent.Text)
		searchFrom = end
		matches = append(matches, engine.Match{
			Type:       typ,
			Start:      utf8.RuneCountInString(text[:start]),
			End:        utf8.RuneCountInString(text[:end]),
			Confidence: 0.80,
			Source:     engine.SourceNER,
		})
	}
	return matches, nil
}

// entityType maps prose entity labels onto the two unstructured PII
// types this recognizer is allowed to report.
func entityType(label string) (engine.PIIType, bool) {
	switch label {
	case "PERSON":
		return engine.TypeName, true
	case "GPE", "LOC", "FAC":
		return engine.TypeAddress, true
	default:
		return 0, false
	}
}
