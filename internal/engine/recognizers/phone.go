package recognizers

import (
	"regexp"

	"github.com/clearcell/clearcell/internal/engine"
)

// North-American phone formats. Separators are required so that bare
// digit runs (order numbers, IDs) and substrings of longer numeric
// sequences never match.
var phonePatterns = []*regexp.Regexp{
	// (555) 123-4567
	regexp.MustCompile(`\(\d{3}\)[-.\s]?\d{3}[-.\s]\d{4}\b`),
	// 555-123-4567, 555.123.4567, 555 123 4567
	regexp.MustCompile(`\b\d{3}[-.\s]\d{3}[-.\s]\d{4}\b`),
	// +1-555-123-4567 and international forms with a country code
	regexp.MustCompile(`\+\d{1,3}[-.\s]\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{2,4}\b`),
}

// Phone recognizes North-American phone numbers.
type Phone struct{}

func NewPhone() *Phone { return &Phone{} }

func (r *Phone) Name() string         { return "phone" }
func (r *Phone) Type() engine.PIIType { return engine.TypePhone }

func (r *Phone) Match(text string) []engine.Match {
	var matches []engine.Match
	for _, re := range phonePatterns {
		matches = append(matches, patternMatches(re, text, engine.TypePhone, 0.90)...)
	}
	return matches
}
