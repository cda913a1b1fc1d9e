package engine

// DetectionPolicy is the caller-tunable detection configuration, stored
// as the policy document's JSONB config column.
type DetectionPolicy struct {
	Recognizers map[string]RecognizerPolicy `json:"recognizers"`

	// EvidenceLimit bounds sample evidence per column. nil = default.
	EvidenceLimit *int `json:"evidence_limit"`

	// MaskRune overrides the character masking writes over hidden
	// runes. Empty = default.
	MaskRune string `json:"mask_rune,omitempty"`
}

// GetRecognizerPolicy returns the policy for a recognizer by name.
// A nil policy or missing entry yields the zero value, which means
// "enabled, no confidence floor".
func (p *DetectionPolicy) GetRecognizerPolicy(name string) RecognizerPolicy {
	if p == nil || p.Recognizers == nil {
		return RecognizerPolicy{}
	}
	return p.Recognizers[name]
}

// RecognizerPolicy controls one recognizer. Pointer fields use nil for
// "server default".
type RecognizerPolicy struct {
	Enabled       *bool    `json:"enabled"`        // nil = true
	MinConfidence *float32 `json:"min_confidence"` // nil = no floor
}

// IsEnabled reports whether the recognizer runs. Defaults to true.
func (rp RecognizerPolicy) IsEnabled() bool {
	if rp.Enabled == nil {
		return true
	}
	return *rp.Enabled
}

// Floor returns the confidence floor, 0 when unset.
func (rp RecognizerPolicy) Floor() float32 {
	if rp.MinConfidence == nil {
		return 0
	}
	return *rp.MinConfidence
}

// ApplyPolicy returns the subset of recognizers the policy enables, in
// the original order, with confidence floors applied. A nil policy
// returns the input unchanged.
func ApplyPolicy(recognizers []Recognizer, policy *DetectionPolicy) []Recognizer {
	if policy == nil {
		return recognizers
	}
	kept := make([]Recognizer, 0, len(recognizers))
	for _, r := range recognizers {
		rp := policy.GetRecognizerPolicy(r.Name())
		if !rp.IsEnabled() {
			continue
		}
		if floor := rp.Floor(); floor > 0 {
			r = &flooredRecognizer{Recognizer: r, floor: floor}
		}
		kept = append(kept, r)
	}
	return kept
}

// flooredRecognizer drops matches below the policy's confidence floor.
type flooredRecognizer struct {
	Recognizer
	floor float32
}

func (f *flooredRecognizer) Match(text string) []Match {
	matches := f.Recognizer.Match(text)
	kept := matches[:0]
	for _, m := range matches {
		if m.Confidence >= f.floor {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}
