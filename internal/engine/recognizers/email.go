package recognizers

import (
	"regexp"

	"github.com/clearcell/clearcell/internal/engine"
)

// Local part and domain match case-insensitively; the span always covers
// the full address.
var emailPattern = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)

// Email recognizes RFC-5322-shaped email addresses.
type Email struct{}

func NewEmail() *Email { return &Email{} }

func (r *Email) Name() string         { return "email" }
func (r *Email) Type() engine.PIIType { return engine.TypeEmail }

func (r *Email) Match(text string) []engine.Match {
	return patternMatches(emailPattern, text, engine.TypeEmail, 0.99)
}
