package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/clearcell/clearcell/internal/engine"
)

// PolicyRecord is a row in the detection_policies table.
type PolicyRecord struct {
	Name      string
	Config    json.RawMessage // JSONB — raw bytes
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetPolicy returns the named policy, or nil if not found.
func (s *Store) GetPolicy(ctx context.Context, name string) (*PolicyRecord, error) {
	var p PolicyRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT name, config, created_at, updated_at
		FROM detection_policies WHERE name = $1`, name,
	).Scan(&p.Name, &p.Config, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetPolicy: %w", err)
	}
	return &p, nil
}

// LoadDetectionPolicy fetches and decodes the named policy. A missing
// policy returns (nil, nil): absence means server defaults, not failure.
func (s *Store) LoadDetectionPolicy(ctx context.Context, name string) (*engine.DetectionPolicy, error) {
	record, err := s.GetPolicy(ctx, name)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	var policy engine.DetectionPolicy
	if err := json.Unmarshal(record.Config, &policy); err != nil {
		return nil, fmt.Errorf("LoadDetectionPolicy %q: %w", name, err)
	}
	return &policy, nil
}

// SavePolicy upserts a policy document.
func (s *Store) SavePolicy(ctx context.Context, name string, policy *engine.DetectionPolicy) (*PolicyRecord, error) {
	config, err := json.Marshal(policy)
	if err != nil {
		return nil, fmt.Errorf("SavePolicy %q: %w", name, err)
	}

	var p PolicyRecord
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO detection_policies (name, config, created_at, updated_at)
		VALUES ($1, $2, now(), now())
		ON CONFLICT (name) DO UPDATE SET
			config     = EXCLUDED.config,
			updated_at = now()
		RETURNING name, config, created_at, updated_at`,
		name, config,
	).Scan(&p.Name, &p.Config, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("SavePolicy: %w", err)
	}
	return &p, nil
}

// DeletePolicy removes a policy. Reports whether a row was deleted.
func (s *Store) DeletePolicy(ctx context.Context, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM detection_policies WHERE name = $1`, name)
	if err != nil {
		return false, fmt.Errorf("DeletePolicy: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("DeletePolicy: %w", err)
	}
	return n > 0, nil
}
