package recognizers

import (
	"regexp"
	"unicode/utf8"

	"github.com/clearcell/clearcell/internal/engine"
)

// Candidate card numbers by issuer prefix, with optional space/dash
// separators. Every candidate must additionally pass the Luhn checksum
// before being reported.
var cardPatterns = []*regexp.Regexp{
	// Visa: 4xxx
	regexp.MustCompile(`\b4\d{3}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`),
	// Mastercard: 5[1-5]xx
	regexp.MustCompile(`\b5[1-5]\d{2}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`),
	// Amex: 3[47]xx
	regexp.MustCompile(`\b3[47]\d{2}[-\s]?\d{6}[-\s]?\d{5}\b`),
	// Discover: 6011
	regexp.MustCompile(`\b6011[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`),
}

// CreditCard recognizes payment card numbers that pass the Luhn check.
type CreditCard struct{}

func NewCreditCard() *CreditCard { return &CreditCard{} }

func (r *CreditCard) Name() string         { return "credit_card" }
func (r *CreditCard) Type() engine.PIIType { return engine.TypeCreditCard }

func (r *CreditCard) Match(text string) []engine.Match {
	if text == "" {
		return nil
	}
	var matches []engine.Match
	for _, re := range cardPatterns {
		for _, span := range re.FindAllStringIndex(text, -1) {
			if !luhnValid(text[span[0]:span[1]]) {
				continue
			}
			matches = append(matches, engine.Match{
				Type:       engine.TypeCreditCard,
				Start:      utf8.RuneCountInString(text[:span[0]]),
				End:        utf8.RuneCountInString(text[:span[1]]),
				Confidence: 0.85,
				Source:     engine.SourcePattern,
			})
		}
	}
	return matches
}

// luhnValid runs the Luhn checksum over the digits of a candidate,
// ignoring separators. Rejects lengths outside the 13–19 card range.
func luhnValid(candidate string) bool {
	var digits []int
	for _, r := range candidate {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		}
	}
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := digits[i]
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
