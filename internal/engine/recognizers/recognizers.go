// Package recognizers contains the pattern library and the NER entity
// recognizer. Each pattern recognizer owns one PII type and one matching
// rule; rules run independently, so one cell can report several types.
package recognizers

import (
	"regexp"
	"unicode/utf8"

	"github.com/clearcell/clearcell/internal/engine"
)

// All returns the full pattern library in its canonical order. The order
// is load-bearing for callers that resolve multi-type cells by first
// match, so it stays fixed: structured high-precision types first.
func All() []engine.Recognizer {
	return []engine.Recognizer{
		NewEmail(),
		NewSSN(),
		NewCreditCard(),
		NewPhone(),
		NewDOB(),
		NewMedicalID(),
		NewGovID(),
	}
}

// patternMatches runs a compiled pattern over text and converts the byte
// spans regexp reports into the rune spans the Match contract requires.
func patternMatches(re *regexp.Regexp, text string, typ engine.PIIType, confidence float32) []engine.Match {
	if text == "" {
		return nil
	}
	idx := re.FindAllStringIndex(text, -1)
	if idx == nil {
		return nil
	}
	matches := make([]engine.Match, 0, len(idx))
	for _, span := range idx {
		matches = append(matches, engine.Match{
			Type:       typ,
			Start:      utf8.RuneCountInString(text[:span[0]]),
			End:        utf8.RuneCountInString(text[:span[1]]),
			Confidence: confidence,
			Source:     engine.SourcePattern,
		})
	}
	return matches
}
