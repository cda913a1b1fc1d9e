package recognizers

import (
	"regexp"

	"github.com/clearcell/clearcell/internal/engine"
)

// Date shapes that plausibly encode a birth date: ISO 8601 and the
// US MM/DD/YYYY form, with years 1900–2029. A date alone is weak
// evidence, hence the low confidence.
var dobPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:19|20)\d{2}-(?:0[1-9]|1[0-2])-(?:0[1-9]|[12]\d|3[01])\b`),
	regexp.MustCompile(`\b(?:0[1-9]|1[0-2])/(?:0[1-9]|[12]\d|3[01])/(?:19|20)\d{2}\b`),
}

// DOB recognizes date-of-birth-shaped values.
type DOB struct{}

func NewDOB() *DOB { return &DOB{} }

func (r *DOB) Name() string         { return "dob" }
func (r *DOB) Type() engine.PIIType { return engine.TypeDOB }

func (r *DOB) Match(text string) []engine.Match {
	var matches []engine.Match
	for _, re := range dobPatterns {
		matches = append(matches, patternMatches(re, text, engine.TypeDOB, 0.60)...)
	}
	return matches
}
