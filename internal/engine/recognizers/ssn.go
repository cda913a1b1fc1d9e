package recognizers

import (
	"regexp"

	"github.com/clearcell/clearcell/internal/engine"
)

// 123-45-6789 or 123 45 6789. A separator is required: an unseparated
// nine-digit run is indistinguishable from an arbitrary identifier.
var ssnPattern = regexp.MustCompile(`\b\d{3}[-\s]\d{2}[-\s]\d{4}\b`)

// SSN recognizes US Social Security Numbers.
type SSN struct{}

func NewSSN() *SSN { return &SSN{} }

func (r *SSN) Name() string         { return "ssn" }
func (r *SSN) Type() engine.PIIType { return engine.TypeSSN }

func (r *SSN) Match(text string) []engine.Match {
	return patternMatches(ssnPattern, text, engine.TypeSSN, 0.98)
}
