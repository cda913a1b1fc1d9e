package engine

// Recognizer is the interface every pattern recognizer must implement.
// Implementations are pure: no I/O, no shared mutable state, safe for
// concurrent use.
type Recognizer interface {
	// Name returns the recognizer's unique identifier (e.g., "email").
	Name() string

	// Type returns the single PII type this recognizer reports.
	Type() PIIType

	// Match scans the text and returns every occurrence with rune spans.
	// An empty input must return nil.
	Match(text string) []Match
}

// EntityRecognizer detects unstructured PII (names, addresses) that no
// pattern rule can express. Implementations load their model once and
// must support concurrent calls; a returned match is limited to
// TypeName and TypeAddress.
type EntityRecognizer interface {
	// Recognize runs entity extraction over the text. A load failure
	// surfaces as an error from the first call and every subsequent one;
	// it is a configuration problem, never silently downgraded.
	Recognize(text string) ([]Match, error)
}
