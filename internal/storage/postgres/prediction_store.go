package postgres

import (
	"context"
	"fmt"

	"nfl-forecast-lab/internal/domain"
	"nfl-forecast-lab/internal/storage"
)

// PredictionStore implements storage.PredictionStore using PostgreSQL.
type PredictionStore struct {
	pool *Pool
}

// NewPredictionStore creates a new PredictionStore.
func NewPredictionStore(pool *Pool) *PredictionStore {
	return &PredictionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PredictionStore = (*PredictionStore)(nil)

// InsertRun adds a new run. Returns ErrDuplicateKey if run_uuid exists.
func (s *PredictionStore) InsertRun(ctx context.Context, run *domain.PredictionRun) error {
	if run == nil || run.RunUUID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO prediction_runs (
			run_uuid, created_at, position, season, week,
			data_dir, model_dir, meta_json
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.pool.Exec(ctx, query,
		run.RunUUID, run.CreatedAt, string(run.Position), run.Season, run.Week,
		run.DataDir, run.ModelDir, run.MetaJSON,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert prediction run: %w", err)
	}
	return nil
}

// InsertPredictions adds a run's predictions atomically. Fails entire batch on any duplicate.
func (s *PredictionStore) InsertPredictions(ctx context.Context, preds []*domain.Prediction) error {
	if len(preds) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO predictions (
			run_uuid, team, position, full_name, gsis_id, season, week,
			years_exp, years_exp_filled, draft_number, draft_number_filled,
			is_rookie, is_second_year, is_undrafted, fantasy_prev_5wk_avg,
			pred_next4, delta
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11,
			$12, $13, $14, $15,
			$16, $17
		)
	`

	for _, p := range preds {
		if p == nil || p.RunUUID == "" || p.GsisID == "" {
			return storage.ErrInvalidInput
		}
		_, err := tx.Exec(ctx, query,
			p.RunUUID, p.Team, string(p.Position), p.FullName, p.GsisID, p.Season, p.Week,
			p.YearsExp, p.YearsExpFilled, p.DraftNumber, p.DraftNumberFilled,
			p.IsRookie, p.IsSecondYear, p.IsUndrafted, p.FantasyPrev5WkAvg,
			p.PredNext4, p.Delta,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert prediction in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetRun retrieves a run by its UUID. Returns ErrNotFound if not exists.
func (s *PredictionStore) GetRun(ctx context.Context, runUUID string) (*domain.PredictionRun, error) {
	query := `
		SELECT run_uuid, created_at, position, season, week,
			data_dir, model_dir, meta_json
		FROM prediction_runs
		WHERE run_uuid = $1
	`

	run, err := scanRun(s.pool.QueryRow(ctx, query, runUUID))
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get prediction run: %w", err)
	}
	return run, nil
}

// GetLatestRun retrieves the most recently created run for a position.
func (s *PredictionStore) GetLatestRun(ctx context.Context, pos domain.Position) (*domain.PredictionRun, error) {
	query := `
		SELECT run_uuid, created_at, position, season, week,
			data_dir, model_dir, meta_json
		FROM prediction_runs
		WHERE position = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	run, err := scanRun(s.pool.QueryRow(ctx, query, string(pos)))
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get latest prediction run: %w", err)
	}
	return run, nil
}

// GetPredictionsByRun retrieves a run's predictions ordered by predicted score DESC.
func (s *PredictionStore) GetPredictionsByRun(ctx context.Context, runUUID string) ([]*domain.Prediction, error) {
	query := `
		SELECT run_uuid, team, position, full_name, gsis_id, season, week,
			years_exp, years_exp_filled, draft_number, draft_number_filled,
			is_rookie, is_second_year, is_undrafted, fantasy_prev_5wk_avg,
			pred_next4, delta
		FROM predictions
		WHERE run_uuid = $1
		ORDER BY pred_next4 DESC, gsis_id ASC
	`

	rows, err := s.pool.Query(ctx, query, runUUID)
	if err != nil {
		return nil, fmt.Errorf("query predictions by run: %w", err)
	}
	defer rows.Close()

	var preds []*domain.Prediction
	for rows.Next() {
		var p domain.Prediction
		var position string
		err := rows.Scan(
			&p.RunUUID, &p.Team, &position, &p.FullName, &p.GsisID, &p.Season, &p.Week,
			&p.YearsExp, &p.YearsExpFilled, &p.DraftNumber, &p.DraftNumberFilled,
			&p.IsRookie, &p.IsSecondYear, &p.IsUndrafted, &p.FantasyPrev5WkAvg,
			&p.PredNext4, &p.Delta,
		)
		if err != nil {
			return nil, fmt.Errorf("scan prediction row: %w", err)
		}
		p.Position = domain.Position(position)
		preds = append(preds, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prediction rows: %w", err)
	}
	return preds, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.PredictionRun, error) {
	var run domain.PredictionRun
	var position string
	err := row.Scan(
		&run.RunUUID, &run.CreatedAt, &position, &run.Season, &run.Week,
		&run.DataDir, &run.ModelDir, &run.MetaJSON,
	)
	if err != nil {
		return nil, err
	}
	run.Position = domain.Position(position)
	return &run, nil
}
