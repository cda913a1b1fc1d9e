package engine

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/clearcell/clearcell/internal/dataset"
)

// Analyzer scans every cell of a dataset and assembles the report.
//
// The cell scan is embarrassingly parallel: each (column, row) pair is
// independent, workers write into coordinate-addressed slots, and the
// merge walks the slots in order, so the report is byte-identical
// regardless of scheduling.
type Analyzer struct {
	scanner  *Scanner
	profiler *Profiler
	workers  int
	logger   *zap.Logger
}

// NewAnalyzer creates an analyzer. A non-positive worker count sizes the
// pool to GOMAXPROCS.
func NewAnalyzer(scanner *Scanner, profiler *Profiler, workers int, logger *zap.Logger) *Analyzer {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Analyzer{
		scanner:  scanner,
		profiler: profiler,
		workers:  workers,
		logger:   logger,
	}
}

type cellRef struct {
	col, row int
}

// Analyze validates the dataset, scans every cell exactly once, and
// returns the report. The input is never mutated. The first scan error
// (an entity model failure) aborts the run: a report is complete or
// absent, never partial.
func (a *Analyzer) Analyze(ctx context.Context, ds *dataset.Dataset) (*Report, error) {
	report, _, err := a.AnalyzeCells(ctx, ds, nil)
	return report, err
}

// AnalyzeCells is Analyze plus the raw per-cell matches for the named
// columns, keyed by column name and indexed by row. The sanitizer feeds
// on the matches without a second detection pass over the same cells.
// A nil column set returns a nil map.
func (a *Analyzer) AnalyzeCells(ctx context.Context, ds *dataset.Dataset, columns map[string]bool) (*Report, map[string][][]Match, error) {
	if err := ds.Validate(); err != nil {
		return nil, nil, err
	}

	rows := ds.RowCount()
	cols := ds.ColumnCount()

	// One slot per cell; workers own disjoint slots, so no locking.
	results := make([][][]Match, cols)
	for c := range results {
		results[c] = make([][]Match, rows)
	}

	jobs := make(chan cellRef)
	var wg sync.WaitGroup
	var errOnce sync.Once
	var scanErr error

	for w := 0; w < a.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ref := range jobs {
				text := ds.Columns[ref.col].Values[ref.row].Canonical()
				matches, err := a.scanner.Detect(text)
				if err != nil {
					errOnce.Do(func() { scanErr = err })
					continue
				}
				results[ref.col][ref.row] = matches
			}
		}()
	}

feed:
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			select {
			case jobs <- cellRef{col: c, row: r}:
			case <-ctx.Done():
				break feed
			}
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if scanErr != nil {
		return nil, nil, scanErr
	}

	report := &Report{Columns: make([]ColumnProfile, 0, cols)}
	var cellMatches map[string][][]Match
	if columns != nil {
		cellMatches = make(map[string][][]Match, len(columns))
	}
	totalCells := 0
	for c, col := range ds.Columns {
		cells := make([]CellMatches, rows)
		for r := 0; r < rows; r++ {
			cells[r] = CellMatches{
				Row:     r,
				Text:    col.Values[r].Canonical(),
				Matches: results[c][r],
			}
		}
		profile := a.profiler.Profile(col.Name, cells)
		report.Columns = append(report.Columns, profile)
		report.Summary.TotalPII += profile.PIICount
		totalCells += rows

		if columns[col.Name] {
			cellMatches[col.Name] = results[c]
		}
	}
	if totalCells > 0 {
		report.Summary.PIIPercentage = float64(report.Summary.TotalPII) / float64(totalCells) * 100
	}

	a.logger.Debug("analysis complete",
		zap.Int("columns", cols),
		zap.Int("rows", rows),
		zap.Int("total_pii", report.Summary.TotalPII),
	)
	return report, cellMatches, nil
}
