package engine

import "strings"

// Evidence is one sampled match kept in a column profile for display.
type Evidence struct {
	Row        int     `json:"row"`
	Type       string  `json:"type"`
	Text       string  `json:"text"`
	Confidence float32 `json:"confidence"`
}

// ColumnProfile aggregates detection results for one column.
//
// The JSON field names are a stable contract with the layers that
// consume reports; do not rename them.
type ColumnProfile struct {
	Name           string     `json:"name"`
	CellCount      int        `json:"cell_count"`
	PIICount       int        `json:"pii_count"`
	SuspectedTypes []string   `json:"suspected_types"`
	SampleEvidence []Evidence `json:"sample_evidence"`
	NameHints      []string   `json:"name_hints,omitempty"`
}

// Summary is the dataset-level roll-up.
type Summary struct {
	TotalPII      int     `json:"total_pii"`
	PIIPercentage float64 `json:"pii_percentage"`
}

// Report is the full analysis result for one dataset.
type Report struct {
	Columns []ColumnProfile `json:"columns"`
	Summary Summary         `json:"pii_summary"`
}

// headerHints maps column-header keywords to the PII type they suggest.
// Checked in order so hint output is deterministic.
var headerHints = []struct {
	typ      PIIType
	keywords []string
}{
	{TypeEmail, []string{"email", "mail"}},
	{TypePhone, []string{"phone", "mobile", "tel"}},
	{TypeSSN, []string{"ssn", "social"}},
	{TypeName, []string{"name", "first", "last", "full"}},
	{TypeAddress, []string{"address", "city", "state", "zip"}},
	{TypeDOB, []string{"dob", "birth"}},
}

// NameHints returns the PII types a column header's vocabulary suggests,
// independent of any cell content. Purely advisory.
func NameHints(columnName string) []string {
	lower := strings.ToLower(columnName)
	var hints []string
	for _, h := range headerHints {
		for _, kw := range h.keywords {
			if strings.Contains(lower, kw) {
				hints = append(hints, h.typ.String())
				break
			}
		}
	}
	return hints
}
