package storage

import "time"

// AuditWriter is the interface for recording scrub runs.
// Write() must NEVER block the caller.
type AuditWriter interface {
	Write(event *RunEvent)
	Close()
}

// RunEvent is the audit record for one analyze or sanitize run. It
// carries run metadata only; dataset contents are never persisted.
type RunEvent struct {
	RunID        string
	Timestamp    time.Time
	Kind         string // "analyze" or "sanitize"
	Columns      uint32
	Rows         uint32
	TotalPII     uint32
	Action       string // empty for analyze runs
	TargetNames  []string
	MutatedCells uint32
	LatencyMs    float32
}
