package pipeline

import (
	"errors"

	"github.com/clearcell/clearcell/internal/dataset"
	"github.com/clearcell/clearcell/internal/engine"
	"github.com/clearcell/clearcell/internal/sanitize"
)

// ErrorKind buckets a pipeline error for the layer mapping errors to
// responses: caller errors are the client's fault, the rest are not.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindStructural
	KindConfiguration
	KindCaller
)

// String returns the lowercase kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindStructural:
		return "structural"
	case KindConfiguration:
		return "configuration"
	case KindCaller:
		return "caller"
	default:
		return "unknown"
	}
}

// Classify maps an error returned by Analyze or Sanitize onto the
// error taxonomy.
func Classify(err error) ErrorKind {
	var structural *dataset.StructuralError
	if errors.As(err, &structural) {
		return KindStructural
	}
	var configuration *engine.ConfigurationError
	if errors.As(err, &configuration) {
		return KindConfiguration
	}
	var badColumn *sanitize.InvalidColumnError
	if errors.As(err, &badColumn) {
		return KindCaller
	}
	var badAction *sanitize.InvalidActionError
	if errors.As(err, &badAction) {
		return KindCaller
	}
	return KindUnknown
}
