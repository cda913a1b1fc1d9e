package sanitize

import (
	"go.uber.org/zap"

	"github.com/clearcell/clearcell/internal/dataset"
	"github.com/clearcell/clearcell/internal/engine"
)

// Result is the outcome of one sanitization run.
type Result struct {
	Dataset      *dataset.Dataset
	MutatedCells int
	Action       Action
	Columns      []string
}

// Sanitizer applies an action to the target columns of a dataset,
// returning a new dataset. The input dataset is never mutated.
type Sanitizer struct {
	pseudo   *Pseudonymizer
	maskRune rune
	logger   *zap.Logger
}

// NewSanitizer creates a sanitizer. The pseudonymizer key drives stable
// anonymize placeholders.
func NewSanitizer(pseudo *Pseudonymizer, logger *zap.Logger) *Sanitizer {
	return &Sanitizer{
		pseudo:   pseudo,
		maskRune: DefaultMaskRune,
		logger:   logger,
	}
}

// SetMaskRune overrides the character masking writes over hidden runes.
func (s *Sanitizer) SetMaskRune(r rune) { s.maskRune = r }

// Apply transforms the dataset. matches carries per-cell detection
// results for every target column, keyed by column name, indexed by row;
// the caller obtains it from the analyzer over the same dataset.
//
// Unknown target columns and unknown actions fail before any work, and
// the input is left untouched. For redact/anonymize/mask only matched
// cells mutate; remove drops the whole column regardless of matches.
func (s *Sanitizer) Apply(ds *dataset.Dataset, action Action, columns []string, matches map[string][][]engine.Match) (*Result, error) {
	if !action.valid() {
		return nil, &InvalidActionError{Token: action.String()}
	}
	for _, name := range columns {
		if !ds.HasColumn(name) {
			return nil, &InvalidColumnError{Column: name}
		}
	}

	targets := make(map[string]bool, len(columns))
	for _, name := range columns {
		targets[name] = true
	}

	result := &Result{
		Action:  action,
		Columns: append([]string(nil), columns...),
	}

	out := &dataset.Dataset{Columns: make([]dataset.Column, 0, len(ds.Columns))}
	for _, col := range ds.Columns {
		if !targets[col.Name] {
			out.Columns = append(out.Columns, cloneColumn(col))
			continue
		}

		if action == ActionRemove {
			result.MutatedCells += len(col.Values)
			continue
		}

		cellMatches := matches[col.Name]
		clean := dataset.Column{Name: col.Name, Values: make([]dataset.Value, len(col.Values))}
		for r, v := range col.Values {
			var ms []engine.Match
			if r < len(cellMatches) {
				ms = cellMatches[r]
			}
			if len(ms) == 0 {
				clean.Values[r] = v
				continue
			}
			original := v.Canonical()
			replaced := s.transformCell(action, original, ms)
			if replaced == original {
				clean.Values[r] = v
				continue
			}
			clean.Values[r] = dataset.Text(replaced)
			result.MutatedCells++
		}
		out.Columns = append(out.Columns, clean)
	}

	result.Dataset = out
	s.logger.Debug("sanitization applied",
		zap.String("action", action.String()),
		zap.Strings("columns", columns),
		zap.Int("mutated_cells", result.MutatedCells),
	)
	return result, nil
}

// transformCell produces the replacement value for one matched cell.
// The whole cell is replaced wholesale; span-local replacement would
// leak length and position.
func (s *Sanitizer) transformCell(action Action, original string, ms []engine.Match) string {
	switch action {
	case ActionRedact:
		return RedactMarker
	case ActionAnonymize:
		// Dominant type is the first match in scan order; the order is
		// fixed by the recognizer registry, so the choice is deterministic.
		return s.pseudo.Placeholder(ms[0].Type, original)
	case ActionMask:
		rule, ok := maskRules[ms[0].Type]
		if !ok {
			return RedactMarker
		}
		return maskKeepLast(original, rule.keepSuffix, s.maskRune)
	default:
		return original
	}
}

func cloneColumn(col dataset.Column) dataset.Column {
	return dataset.Column{
		Name:   col.Name,
		Values: append([]dataset.Value(nil), col.Values...),
	}
}
