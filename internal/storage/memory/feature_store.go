package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"nfl-forecast-lab/internal/domain"
	"nfl-forecast-lab/internal/storage"
)

// FeatureStore is an in-memory implementation of storage.FeatureStore.
type FeatureStore struct {
	mu   sync.RWMutex
	data map[string]*domain.ArchivedFeature // keyed by (run_uuid, gsis_id, season, week, name)
}

// NewFeatureStore creates a new in-memory feature archive store.
func NewFeatureStore() *FeatureStore {
	return &FeatureStore{
		data: make(map[string]*domain.ArchivedFeature),
	}
}

func archiveKey(c *domain.ArchivedFeature) string {
	return fmt.Sprintf("%s|%s|%d|%d|%s", c.RunUUID, c.GsisID, c.Season, c.Week, c.Name)
}

// InsertBulk adds archive records. Fails entire batch on duplicate.
func (s *FeatureStore) InsertBulk(_ context.Context, cells []*domain.ArchivedFeature) error {
	if len(cells) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Track keys in this batch to detect intra-batch duplicates
	batchKeys := make(map[string]struct{}, len(cells))
	for _, c := range cells {
		if c == nil || c.RunUUID == "" || c.GsisID == "" || c.Name == "" {
			return storage.ErrInvalidInput
		}
		key := archiveKey(c)
		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	for _, c := range cells {
		cellCopy := *c
		cellCopy.Value = domain.CloneFloat(c.Value)
		s.data[archiveKey(c)] = &cellCopy
	}

	return nil
}

// GetByRun retrieves all records for a run, ordered by (gsis_id, season, week, name) ASC.
func (s *FeatureStore) GetByRun(_ context.Context, runUUID string) ([]*domain.ArchivedFeature, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.ArchivedFeature
	for _, c := range s.data {
		if c.RunUUID == runUUID {
			cellCopy := *c
			cellCopy.Value = domain.CloneFloat(c.Value)
			result = append(result, &cellCopy)
		}
	}
	sortArchive(result)
	return result, nil
}

// GetByPlayer retrieves one player's records within a run, ordered by (season, week, name) ASC.
func (s *FeatureStore) GetByPlayer(_ context.Context, runUUID, gsisID string) ([]*domain.ArchivedFeature, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.ArchivedFeature
	for _, c := range s.data {
		if c.RunUUID == runUUID && c.GsisID == gsisID {
			cellCopy := *c
			cellCopy.Value = domain.CloneFloat(c.Value)
			result = append(result, &cellCopy)
		}
	}
	sortArchive(result)
	return result, nil
}

func sortArchive(cells []*domain.ArchivedFeature) {
	sort.Slice(cells, func(i, j int) bool {
		a, b := cells[i], cells[j]
		if a.GsisID != b.GsisID {
			return a.GsisID < b.GsisID
		}
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		if a.Week != b.Week {
			return a.Week < b.Week
		}
		return a.Name < b.Name
	})
}

var _ storage.FeatureStore = (*FeatureStore)(nil)
