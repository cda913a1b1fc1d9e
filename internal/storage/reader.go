package storage

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"
)

// Reader provides read access to the scrub_runs audit table.
type Reader struct {
	conn   driver.Conn
	logger *zap.Logger
}

// NewReader opens a ClickHouse connection for read queries.
func NewReader(dsn string, logger *zap.Logger) (*Reader, error) {
	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("NewReader: %w", err)
	}
	if opts.TLS == nil {
		opts.TLS = &tls.Config{}
	}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("NewReader: %w", err)
	}
	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("NewReader: %w", err)
	}

	return &Reader{conn: conn, logger: logger}, nil
}

// Close closes the ClickHouse connection.
func (r *Reader) Close() error {
	return r.conn.Close()
}

// RunRow is a single row from the scrub_runs table.
type RunRow struct {
	RunID        string
	Timestamp    time.Time
	Kind         string
	Columns      uint32
	Rows         uint32
	TotalPII     uint32
	Action       string
	TargetNames  []string
	MutatedCells uint32
	LatencyMs    float32
}

// RecentRuns returns the most recent runs, newest first.
func (r *Reader) RecentRuns(ctx context.Context, limit int) ([]RunRow, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.conn.Query(ctx, `
		SELECT run_id, timestamp, kind,
		       columns, rows, total_pii,
		       action, target_names, mutated_cells,
		       latency_ms
		FROM scrub_runs
		ORDER BY timestamp DESC
		LIMIT @limit
	`, clickhouse.Named("limit", limit))
	if err != nil {
		return nil, fmt.Errorf("RecentRuns: %w", err)
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var row RunRow
		if err := rows.Scan(
			&row.RunID,
			&row.Timestamp,
			&row.Kind,
			&row.Columns,
			&row.Rows,
			&row.TotalPII,
			&row.Action,
			&row.TargetNames,
			&row.MutatedCells,
			&row.LatencyMs,
		); err != nil {
			return nil, fmt.Errorf("RecentRuns scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
