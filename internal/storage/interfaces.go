package storage

import (
	"context"

	"nfl-forecast-lab/internal/domain"
)

// FeatureStore provides access to the long-format feature archive. Each
// pipeline run may archive its derived tables so a past run's model input is
// reconstructible.
type FeatureStore interface {
	// InsertBulk adds archive records. Fails the entire batch on duplicate
	// (run_uuid, gsis_id, season, week, name).
	InsertBulk(ctx context.Context, cells []*domain.ArchivedFeature) error

	// GetByRun retrieves all records for a run, ordered by
	// (gsis_id, season, week, name) ASC.
	GetByRun(ctx context.Context, runUUID string) ([]*domain.ArchivedFeature, error)

	// GetByPlayer retrieves one player's records within a run, ordered by
	// (season, week, name) ASC.
	GetByPlayer(ctx context.Context, runUUID, gsisID string) ([]*domain.ArchivedFeature, error)
}

// PredictionStore provides access to prediction_runs and predictions storage.
type PredictionStore interface {
	// InsertRun adds a new run. Returns ErrDuplicateKey if run_uuid exists.
	InsertRun(ctx context.Context, run *domain.PredictionRun) error

	// InsertPredictions adds a run's predictions atomically. Fails the
	// entire batch on any duplicate (run_uuid, gsis_id).
	InsertPredictions(ctx context.Context, preds []*domain.Prediction) error

	// GetRun retrieves a run by its UUID. Returns ErrNotFound if not exists.
	GetRun(ctx context.Context, runUUID string) (*domain.PredictionRun, error)

	// GetLatestRun retrieves the most recently created run for a position.
	// Returns ErrNotFound when the position has no runs.
	GetLatestRun(ctx context.Context, pos domain.Position) (*domain.PredictionRun, error)

	// GetPredictionsByRun retrieves a run's predictions ordered by predicted
	// score DESC.
	GetPredictionsByRun(ctx context.Context, runUUID string) ([]*domain.Prediction, error)
}
