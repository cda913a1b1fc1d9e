package engine

import "sort"

// DefaultEvidenceLimit bounds sample evidence per column profile.
const DefaultEvidenceLimit = 10

// CellMatches pairs a cell's row index with the matches found in it.
type CellMatches struct {
	Row     int
	Text    string
	Matches []Match
}

// Profiler folds per-cell detection results into column profiles.
type Profiler struct {
	evidenceLimit int
}

// NewProfiler creates a profiler keeping at most limit evidence samples
// per column. A non-positive limit uses the default.
func NewProfiler(limit int) *Profiler {
	if limit <= 0 {
		limit = DefaultEvidenceLimit
	}
	return &Profiler{evidenceLimit: limit}
}

// Profile aggregates one column. PIICount counts cells with at least one
// match, not matches. Suspected types are ranked by the number of
// distinct cells exhibiting the type, ties broken by PIIType order.
func (p *Profiler) Profile(columnName string, cells []CellMatches) ColumnProfile {
	profile := ColumnProfile{
		Name:           columnName,
		CellCount:      len(cells),
		SuspectedTypes: []string{},
		SampleEvidence: []Evidence{},
		NameHints:      NameHints(columnName),
	}

	cellsByType := make(map[PIIType]int)
	for _, cell := range cells {
		if len(cell.Matches) == 0 {
			continue
		}
		profile.PIICount++

		seen := make(map[PIIType]bool)
		for _, m := range cell.Matches {
			if !seen[m.Type] {
				seen[m.Type] = true
				cellsByType[m.Type]++
			}
			if len(profile.SampleEvidence) < p.evidenceLimit {
				profile.SampleEvidence = append(profile.SampleEvidence, Evidence{
					Row:        cell.Row,
					Type:       m.Type.String(),
					Text:       snippet(cell.Text, m),
					Confidence: m.Confidence,
				})
			}
		}
	}

	ranked := make([]PIIType, 0, len(cellsByType))
	for typ := range cellsByType {
		ranked = append(ranked, typ)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if cellsByType[ranked[i]] != cellsByType[ranked[j]] {
			return cellsByType[ranked[i]] > cellsByType[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	for _, typ := range ranked {
		profile.SuspectedTypes = append(profile.SuspectedTypes, typ.String())
	}

	return profile
}

// snippet extracts the matched text from a cell, guarding against spans
// past the end of the rune sequence.
func snippet(text string, m Match) string {
	runes := []rune(text)
	start, end := m.Start, m.End
	if start > len(runes) {
		start = len(runes)
	}
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[start:end])
}
