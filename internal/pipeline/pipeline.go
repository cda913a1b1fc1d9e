// Package pipeline is the single entry point external collaborators
// call: Analyze produces a report, Sanitize transforms a dataset. Every
// call is self-contained; no state survives between calls.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clearcell/clearcell/internal/dataset"
	"github.com/clearcell/clearcell/internal/engine"
	"github.com/clearcell/clearcell/internal/sanitize"
	"github.com/clearcell/clearcell/internal/storage"
)

// Config wires a Pipeline. Recognizers and Entities are injected so
// tests can substitute stubs; the pipeline owns the entity-recognizer
// handle for its lifetime.
type Config struct {
	Recognizers []engine.Recognizer
	Entities    engine.EntityRecognizer

	// Policy is the optional caller-side detection policy. nil means
	// every recognizer enabled with default limits.
	Policy *engine.DetectionPolicy

	// Workers bounds the analyzer pool; non-positive = GOMAXPROCS.
	Workers int

	// PseudonymKey drives stable anonymize placeholders.
	PseudonymKey []byte

	// Audit receives one RunEvent per call. nil disables auditing.
	Audit storage.AuditWriter

	Logger *zap.Logger
}

// Pipeline composes the analyzer and sanitizer behind the external
// contract.
type Pipeline struct {
	analyzer  *engine.Analyzer
	sanitizer *sanitize.Sanitizer
	audit     storage.AuditWriter
	logger    *zap.Logger
}

// New builds a pipeline from the config.
func New(cfg Config) (*Pipeline, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	recognizers := engine.ApplyPolicy(cfg.Recognizers, cfg.Policy)
	scanner := engine.NewScanner(recognizers, cfg.Entities, logger)

	evidenceLimit := 0
	if cfg.Policy != nil && cfg.Policy.EvidenceLimit != nil {
		evidenceLimit = *cfg.Policy.EvidenceLimit
	}
	profiler := engine.NewProfiler(evidenceLimit)

	pseudo, err := sanitize.NewPseudonymizer(cfg.PseudonymKey)
	if err != nil {
		return nil, err
	}
	sanitizer := sanitize.NewSanitizer(pseudo, logger)
	if cfg.Policy != nil && cfg.Policy.MaskRune != "" {
		sanitizer.SetMaskRune([]rune(cfg.Policy.MaskRune)[0])
	}

	return &Pipeline{
		analyzer:  engine.NewAnalyzer(scanner, profiler, cfg.Workers, logger),
		sanitizer: sanitizer,
		audit:     cfg.Audit,
		logger:    logger,
	}, nil
}

// Analyze scans the dataset and returns its report. Never mutates the
// input; idempotent for identical dataset content.
func (p *Pipeline) Analyze(ctx context.Context, ds *dataset.Dataset) (*engine.Report, error) {
	start := time.Now()
	report, err := p.analyzer.Analyze(ctx, ds)
	if err != nil {
		return nil, err
	}

	p.emit(&storage.RunEvent{
		RunID:     uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Kind:      "analyze",
		Columns:   uint32(ds.ColumnCount()),
		Rows:      uint32(ds.RowCount()),
		TotalPII:  uint32(report.Summary.TotalPII),
		LatencyMs: float32(time.Since(start).Seconds() * 1000),
	})
	return report, nil
}

// Sanitize transforms the target columns of the dataset. Analysis runs
// implicitly, and the same detection pass drives the per-cell actions,
// so a prior Analyze call is not required and no cell is scanned twice.
func (p *Pipeline) Sanitize(ctx context.Context, ds *dataset.Dataset, action sanitize.Action, columns []string) (*sanitize.Result, *engine.Report, error) {
	start := time.Now()

	// Caller errors surface before any scanning work.
	for _, name := range columns {
		if !ds.HasColumn(name) {
			return nil, nil, &sanitize.InvalidColumnError{Column: name}
		}
	}

	targets := make(map[string]bool, len(columns))
	for _, name := range columns {
		targets[name] = true
	}
	report, matches, err := p.analyzer.AnalyzeCells(ctx, ds, targets)
	if err != nil {
		return nil, nil, err
	}

	result, err := p.sanitizer.Apply(ds, action, columns, matches)
	if err != nil {
		return nil, nil, err
	}

	p.emit(&storage.RunEvent{
		RunID:        uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Kind:         "sanitize",
		Columns:      uint32(ds.ColumnCount()),
		Rows:         uint32(ds.RowCount()),
		TotalPII:     uint32(report.Summary.TotalPII),
		Action:       action.String(),
		TargetNames:  columns,
		MutatedCells: uint32(result.MutatedCells),
		LatencyMs:    float32(time.Since(start).Seconds() * 1000),
	})
	return result, report, nil
}

func (p *Pipeline) emit(event *storage.RunEvent) {
	if p.audit != nil {
		p.audit.Write(event)
	}
}
