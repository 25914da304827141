// File path: internal/store/bundles.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nexaqa/testforge/internal/extract"
	"github.com/nexaqa/testforge/internal/scenario"
)

// ErrNotFound is returned when a catalog row does not exist.
var ErrNotFound = errors.New("not found")

// BundleRecord is one persisted extraction result.
type BundleRecord struct {
	ID               string          `db:"id" json:"id"`
	SourceName       string          `db:"source_name" json:"source_name"`
	DocumentType     string          `db:"document_type" json:"document_type"`
	Payload          json.RawMessage `db:"payload" json:"-"`
	RequirementCount int             `db:"requirement_count" json:"requirement_count"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
}

// Bundle decodes the persisted payload back into an extraction bundle.
func (r *BundleRecord) Bundle() (*extract.Bundle, error) {
	var bundle extract.Bundle
	if err := json.Unmarshal(r.Payload, &bundle); err != nil {
		return nil, fmt.Errorf("decode bundle payload: %w", err)
	}
	return &bundle, nil
}

// SaveBundle persists a processed bundle and returns its catalog ID.
func (s *Store) SaveBundle(ctx context.Context, sourceName string, bundle *extract.Bundle) (string, error) {
	if bundle == nil {
		return "", errors.New("nil bundle")
	}
	payload, err := json.Marshal(bundle)
	if err != nil {
		return "", fmt.Errorf("encode bundle payload: %w", err)
	}
	count := len(bundle.Requirements)
	for _, sheet := range bundle.Sheets {
		count += len(sheet.Requirements)
	}
	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO bundles (id, source_name, document_type, payload, requirement_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, sourceName, string(bundle.DocumentType), payload, count, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("insert bundle: %w", err)
	}
	return id, nil
}

// GetBundle loads one persisted bundle by catalog ID.
func (s *Store) GetBundle(ctx context.Context, id string) (*BundleRecord, error) {
	var record BundleRecord
	err := s.db.GetContext(ctx, &record,
		`SELECT id, source_name, document_type, payload, requirement_count, created_at
		 FROM bundles WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select bundle: %w", err)
	}
	return &record, nil
}

// ListBundles returns the persisted bundles, newest first.
func (s *Store) ListBundles(ctx context.Context, limit int) ([]BundleRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var records []BundleRecord
	err := s.db.SelectContext(ctx, &records,
		`SELECT id, source_name, document_type, payload, requirement_count, created_at
		 FROM bundles ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list bundles: %w", err)
	}
	return records, nil
}

// SaveScenarios persists generated scenarios against their source bundle.
func (s *Store) SaveScenarios(ctx context.Context, bundleID string, records []scenario.Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin scenario insert: %w", err)
	}
	now := time.Now().UTC()
	for _, record := range records {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO scenarios (bundle_id, scenario_id, title, description, priority, related_requirements, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			bundleID, record.ID, record.Title, record.Description, record.Priority, record.RelatedRequirements, now); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert scenario %s: %w", record.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit scenarios: %w", err)
	}
	return nil
}

// ListScenarios returns the scenarios generated for one bundle in insertion
// order.
func (s *Store) ListScenarios(ctx context.Context, bundleID string) ([]scenario.Record, error) {
	rows, err := s.db.QueryxContext(ctx,
		`SELECT scenario_id, COALESCE(title, ''), COALESCE(description, ''), COALESCE(priority, ''), COALESCE(related_requirements, '')
		 FROM scenarios WHERE bundle_id = ? ORDER BY id`, bundleID)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	defer rows.Close()
	var records []scenario.Record
	for rows.Next() {
		var record scenario.Record
		if err := rows.Scan(&record.ID, &record.Title, &record.Description, &record.Priority, &record.RelatedRequirements); err != nil {
			return nil, fmt.Errorf("scan scenario: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
