package sanitize

import (
	"encoding/hex"
	"fmt"
	"unicode"

	"golang.org/x/crypto/blake2b"

	"github.com/clearcell/clearcell/internal/engine"
)

// RedactMarker replaces a cell wholesale. Fixed length, so redacted
// output leaks neither the value's length nor match positions.
const RedactMarker = "████████"

// DefaultMaskRune obscures masked characters.
const DefaultMaskRune = '*'

// maskRule describes how much of the original value a type preserves.
type maskRule struct {
	keepSuffix int
}

// Types without an entry fall back to full redaction.
var maskRules = map[engine.PIIType]maskRule{
	engine.TypeSSN:        {keepSuffix: 4},
	engine.TypeCreditCard: {keepSuffix: 4},
	engine.TypePhone:      {keepSuffix: 4},
}

// maskKeepLast replaces every alphanumeric rune except the last keep
// runes with maskRune. Separator punctuation is preserved so the masked
// value keeps its recognizable shape ("123-45-6789" → "***-**-6789").
func maskKeepLast(text string, keep int, maskRune rune) string {
	runes := []rune(text)
	cut := len(runes) - keep
	if cut < 0 {
		cut = 0
	}
	for i := 0; i < cut; i++ {
		if unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) {
			runes[i] = maskRune
		}
	}
	return string(runes)
}

// Pseudonymizer derives stable, type-shaped placeholder values from the
// original cell content. The same input under the same key always maps
// to the same placeholder, and the original text never appears in the
// output.
type Pseudonymizer struct {
	key []byte
}

// NewPseudonymizer creates a pseudonymizer with a keyed digest. The key
// must fit blake2b's 64-byte limit.
func NewPseudonymizer(key []byte) (*Pseudonymizer, error) {
	if _, err := blake2b.New256(key); err != nil {
		return nil, fmt.Errorf("pseudonymizer key: %w", err)
	}
	return &Pseudonymizer{key: key}, nil
}

// Tag returns the short stable identity tag for a value.
func (p *Pseudonymizer) Tag(value string) string {
	h, _ := blake2b.New256(p.key)
	h.Write([]byte(value))
	return hex.EncodeToString(h.Sum(nil))[:8]
}

// digits folds the tag into n decimal digits for numeric placeholders.
func (p *Pseudonymizer) digits(value string, n int) string {
	h, _ := blake2b.New256(p.key)
	h.Write([]byte(value))
	sum := h.Sum(nil)
	out := make([]byte, n)
	for i := range out {
		out[i] = '0' + sum[i]%10
	}
	return string(out)
}

// Placeholder builds a format-plausible synthetic value for the type.
// Numeric shapes use reserved or invalid ranges (555-01xx phones, 900+
// SSN areas) so a placeholder can never collide with a real identity.
func (p *Pseudonymizer) Placeholder(typ engine.PIIType, original string) string {
	switch typ {
	case engine.TypeEmail:
		return "user-" + p.Tag(original) + "@example.com"
	case engine.TypePhone:
		return "555-555-01" + p.digits(original, 2)
	case engine.TypeSSN:
		return "900-" + p.digits(original, 2) + "-" + p.digits(original, 4)
	case engine.TypeCreditCard:
		return "[CARD-" + p.Tag(original) + "]"
	case engine.TypeName:
		return "[NAME-" + p.Tag(original) + "]"
	case engine.TypeAddress:
		return "[ADDRESS-" + p.Tag(original) + "]"
	case engine.TypeDOB:
		return "[DOB-" + p.Tag(original) + "]"
	case engine.TypeMedicalID:
		return "[MRN-" + p.Tag(original) + "]"
	case engine.TypeGovID:
		return "[ID-" + p.Tag(original) + "]"
	default:
		return "[PII-" + p.Tag(original) + "]"
	}
}
