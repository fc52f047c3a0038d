package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"nfl-forecast-lab/internal/domain"
	"nfl-forecast-lab/internal/storage"
)

// PredictionStore is an in-memory implementation of storage.PredictionStore.
type PredictionStore struct {
	mu    sync.RWMutex
	runs  map[string]*domain.PredictionRun
	preds map[string]*domain.Prediction // keyed by (run_uuid, gsis_id)
}

// NewPredictionStore creates a new in-memory prediction store.
func NewPredictionStore() *PredictionStore {
	return &PredictionStore{
		runs:  make(map[string]*domain.PredictionRun),
		preds: make(map[string]*domain.Prediction),
	}
}

func predictionKey(runUUID, gsisID string) string {
	return fmt.Sprintf("%s|%s", runUUID, gsisID)
}

// InsertRun adds a new run. Returns ErrDuplicateKey if run_uuid exists.
func (s *PredictionStore) InsertRun(_ context.Context, run *domain.PredictionRun) error {
	if run == nil || run.RunUUID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[run.RunUUID]; exists {
		return storage.ErrDuplicateKey
	}
	runCopy := *run
	s.runs[run.RunUUID] = &runCopy
	return nil
}

// InsertPredictions adds a run's predictions atomically. Fails entire batch on duplicate.
func (s *PredictionStore) InsertPredictions(_ context.Context, preds []*domain.Prediction) error {
	if len(preds) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(preds))
	for _, p := range preds {
		if p == nil || p.RunUUID == "" || p.GsisID == "" {
			return storage.ErrInvalidInput
		}
		key := predictionKey(p.RunUUID, p.GsisID)
		if _, exists := s.preds[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	for _, p := range preds {
		predCopy := clonePrediction(p)
		s.preds[predictionKey(p.RunUUID, p.GsisID)] = predCopy
	}
	return nil
}

// GetRun retrieves a run by its UUID. Returns ErrNotFound if not exists.
func (s *PredictionStore) GetRun(_ context.Context, runUUID string) (*domain.PredictionRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[runUUID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	runCopy := *run
	return &runCopy, nil
}

// GetLatestRun retrieves the most recently created run for a position.
func (s *PredictionStore) GetLatestRun(_ context.Context, pos domain.Position) (*domain.PredictionRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *domain.PredictionRun
	for _, run := range s.runs {
		if run.Position != pos {
			continue
		}
		if latest == nil || run.CreatedAt.After(latest.CreatedAt) {
			latest = run
		}
	}
	if latest == nil {
		return nil, storage.ErrNotFound
	}
	runCopy := *latest
	return &runCopy, nil
}

// GetPredictionsByRun retrieves a run's predictions ordered by predicted score DESC.
func (s *PredictionStore) GetPredictionsByRun(_ context.Context, runUUID string) ([]*domain.Prediction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Prediction
	for _, p := range s.preds {
		if p.RunUUID == runUUID {
			result = append(result, clonePrediction(p))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].PredNext4 != result[j].PredNext4 {
			return result[i].PredNext4 > result[j].PredNext4
		}
		return result[i].GsisID < result[j].GsisID
	})
	return result, nil
}

func clonePrediction(p *domain.Prediction) *domain.Prediction {
	c := *p
	c.YearsExp = domain.CloneFloat(p.YearsExp)
	c.YearsExpFilled = domain.CloneFloat(p.YearsExpFilled)
	c.DraftNumber = domain.CloneFloat(p.DraftNumber)
	c.DraftNumberFilled = domain.CloneFloat(p.DraftNumberFilled)
	c.IsRookie = domain.CloneFloat(p.IsRookie)
	c.IsSecondYear = domain.CloneFloat(p.IsSecondYear)
	c.IsUndrafted = domain.CloneFloat(p.IsUndrafted)
	c.FantasyPrev5WkAvg = domain.CloneFloat(p.FantasyPrev5WkAvg)
	c.Delta = domain.CloneFloat(p.Delta)
	return &c
}

var _ storage.PredictionStore = (*PredictionStore)(nil)
