package engine

// PIIType classifies the kind of personal data a match represents.
// The declaration order is the deterministic tie-break order used when
// ranking suspected types in a column profile.
type PIIType int

const (
	TypeEmail PIIType = iota + 1
	TypePhone
	TypeSSN
	TypeCreditCard
	TypeName
	TypeAddress
	TypeDOB
	TypeMedicalID
	TypeGovID
	TypeOther
)

// String returns the stable uppercase token used in reports.
func (t PIIType) String() string {
	switch t {
	case TypeEmail:
		return "EMAIL"
	case TypePhone:
		return "PHONE"
	case TypeSSN:
		return "SSN"
	case TypeCreditCard:
		return "CREDIT_CARD"
	case TypeName:
		return "NAME"
	case TypeAddress:
		return "ADDRESS"
	case TypeDOB:
		return "DOB"
	case TypeMedicalID:
		return "MEDICAL_ID"
	case TypeGovID:
		return "GOV_ID"
	case TypeOther:
		return "OTHER"
	default:
		return "UNSPECIFIED"
	}
}

// Source identifies which detection path produced a match.
type Source int

const (
	SourcePattern Source = iota + 1
	SourceNER
)

// String returns the lowercase source name.
func (s Source) String() string {
	switch s {
	case SourcePattern:
		return "pattern"
	case SourceNER:
		return "ner"
	default:
		return "unspecified"
	}
}

// Match is a single typed PII detection inside one cell's canonical text.
// Start and End are rune offsets; End is exclusive. Matches are produced
// fresh per detection call and never shared.
type Match struct {
	Type       PIIType
	Start      int
	End        int
	Confidence float32
	Source     Source
}

// Valid reports whether the span is well-formed. A recognizer returning
// an invalid span is a bug; the scanner logs and drops such matches.
func (m Match) Valid() bool {
	return m.Start >= 0 && m.End >= m.Start
}
