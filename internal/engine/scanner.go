package engine

import (
	"fmt"

	"go.uber.org/zap"
)

// Scanner runs every pattern recognizer and then the entity recognizer
// over a single cell's canonical text and concatenates the results.
// Overlapping spans from different recognizers are kept as-is; overlap
// resolution is a presentation concern.
type Scanner struct {
	recognizers []Recognizer
	entities    EntityRecognizer
	logger      *zap.Logger
}

// NewScanner creates a scanner over the given pattern recognizers and
// entity recognizer. The recognizer order is preserved; it defines the
// first-match precedence downstream consumers rely on.
func NewScanner(recognizers []Recognizer, entities EntityRecognizer, logger *zap.Logger) *Scanner {
	return &Scanner{
		recognizers: recognizers,
		entities:    entities,
		logger:      logger,
	}
}

// Detect scans one cell's text. Empty text yields nil without error.
// A malformed span from a recognizer is a recognizer bug: it is logged
// and dropped, never propagated.
func (s *Scanner) Detect(text string) ([]Match, error) {
	if text == "" {
		return nil, nil
	}

	var matches []Match
	for _, r := range s.recognizers {
		for _, m := range r.Match(text) {
			if !m.Valid() {
				s.logger.Warn("recognizer produced malformed span, dropping match",
					zap.String("recognizer", r.Name()),
					zap.Int("start", m.Start),
					zap.Int("end", m.End),
				)
				continue
			}
			matches = append(matches, m)
		}
	}

	if s.entities != nil {
		ents, err := s.entities.Recognize(text)
		if err != nil {
			return nil, fmt.Errorf("entity recognizer: %w", err)
		}
		for _, m := range ents {
			if !m.Valid() {
				s.logger.Warn("entity recognizer produced malformed span, dropping match",
					zap.Int("start", m.Start),
					zap.Int("end", m.End),
				)
				continue
			}
			matches = append(matches, m)
		}
	}

	return matches, nil
}
