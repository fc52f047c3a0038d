package clickhouse

import (
	"context"
	"fmt"

	"nfl-forecast-lab/internal/domain"
	"nfl-forecast-lab/internal/storage"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// FeatureStore implements storage.FeatureStore using ClickHouse. The archive
// is long format: one row per feature cell, which keeps the schema stable as
// feature lists evolve between runs.
type FeatureStore struct {
	conn *Conn
}

// NewFeatureStore creates a new FeatureStore.
func NewFeatureStore(conn *Conn) *FeatureStore {
	return &FeatureStore{conn: conn}
}

// Compile-time interface check.
var _ storage.FeatureStore = (*FeatureStore)(nil)

// InsertBulk adds archive records. Fails entire batch on duplicate.
func (s *FeatureStore) InsertBulk(ctx context.Context, cells []*domain.ArchivedFeature) error {
	if len(cells) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	type key struct {
		runUUID string
		gsisID  string
		season  int
		week    int
		name    string
	}
	seen := make(map[key]struct{}, len(cells))
	runs := make(map[string]struct{})
	for _, c := range cells {
		if c == nil || c.RunUUID == "" || c.GsisID == "" || c.Name == "" {
			return storage.ErrInvalidInput
		}
		k := key{c.RunUUID, c.GsisID, c.Season, c.Week, c.Name}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
		runs[c.RunUUID] = struct{}{}
	}

	// MergeTree does not enforce uniqueness; a run already present in the
	// archive means a replayed insert.
	for runUUID := range runs {
		exists, err := s.runExists(ctx, runUUID)
		if err != nil {
			return fmt.Errorf("check run exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO feature_rows (
			run_uuid, position, gsis_id, season, week, name, value
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, c := range cells {
		// Pass nil directly for the Nullable value column
		err = batch.Append(
			c.RunUUID, string(c.Position), c.GsisID,
			uint16(c.Season), uint8(c.Week), c.Name, c.Value,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// GetByRun retrieves all records for a run, ordered by (gsis_id, season, week, name) ASC.
func (s *FeatureStore) GetByRun(ctx context.Context, runUUID string) ([]*domain.ArchivedFeature, error) {
	query := `
		SELECT run_uuid, position, gsis_id, season, week, name, value
		FROM feature_rows
		WHERE run_uuid = ?
		ORDER BY gsis_id ASC, season ASC, week ASC, name ASC
	`

	rows, err := s.conn.Query(ctx, query, runUUID)
	if err != nil {
		return nil, fmt.Errorf("query by run: %w", err)
	}
	defer rows.Close()

	return scanArchive(rows)
}

// GetByPlayer retrieves one player's records within a run, ordered by (season, week, name) ASC.
func (s *FeatureStore) GetByPlayer(ctx context.Context, runUUID, gsisID string) ([]*domain.ArchivedFeature, error) {
	query := `
		SELECT run_uuid, position, gsis_id, season, week, name, value
		FROM feature_rows
		WHERE run_uuid = ? AND gsis_id = ?
		ORDER BY season ASC, week ASC, name ASC
	`

	rows, err := s.conn.Query(ctx, query, runUUID, gsisID)
	if err != nil {
		return nil, fmt.Errorf("query by player: %w", err)
	}
	defer rows.Close()

	return scanArchive(rows)
}

// runExists checks if any archive row exists for a run.
func (s *FeatureStore) runExists(ctx context.Context, runUUID string) (bool, error) {
	var count uint64
	err := s.conn.QueryRow(ctx,
		`SELECT count(*) FROM feature_rows WHERE run_uuid = ?`, runUUID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// scanArchive scans multiple rows.
func scanArchive(rows driver.Rows) ([]*domain.ArchivedFeature, error) {
	var cells []*domain.ArchivedFeature

	for rows.Next() {
		var c domain.ArchivedFeature
		var position string
		var season uint16
		var week uint8

		err := rows.Scan(&c.RunUUID, &position, &c.GsisID, &season, &week, &c.Name, &c.Value)
		if err != nil {
			return nil, fmt.Errorf("scan feature row: %w", err)
		}

		c.Position = domain.Position(position)
		c.Season = int(season)
		c.Week = int(week)
		cells = append(cells, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feature rows: %w", err)
	}
	return cells, nil
}
