package recognizers

import (
	"regexp"

	"github.com/clearcell/clearcell/internal/engine"
)

// US passport shape: one uppercase letter followed by eight digits.
// Case-sensitive on purpose; lowercase prefixes are not passport-like.
var govIDPattern = regexp.MustCompile(`\b[A-Z]\d{8}\b`)

// GovID recognizes government-issued identifier shapes.
type GovID struct{}

func NewGovID() *GovID { return &GovID{} }

func (r *GovID) Name() string         { return "gov_id" }
func (r *GovID) Type() engine.PIIType { return engine.TypeGovID }

func (r *GovID) Match(text string) []engine.Match {
	return patternMatches(govIDPattern, text, engine.TypeGovID, 0.55)
}
