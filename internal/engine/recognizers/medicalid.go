package recognizers

import (
	"regexp"

	"github.com/clearcell/clearcell/internal/engine"
)

// Medical record numbers carry an explicit MRN prefix in every feed we
// have seen; requiring it keeps precision high.
var medicalIDPattern = regexp.MustCompile(`(?i)\bMRN[-:]?\s?\d{6,10}\b`)

// MedicalID recognizes prefixed medical record numbers.
type MedicalID struct{}

func NewMedicalID() *MedicalID { return &MedicalID{} }

func (r *MedicalID) Name() string         { return "medical_id" }
func (r *MedicalID) Type() engine.PIIType { return engine.TypeMedicalID }

func (r *MedicalID) Match(text string) []engine.Match {
	return patternMatches(medicalIDPattern, text, engine.TypeMedicalID, 0.95)
}
