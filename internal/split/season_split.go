package split

import (
	"errors"
	"fmt"

	"nfl-forecast-lab/internal/domain"
)

// ErrEmptySplitPartition signals a train/validation split that left zero rows
// on one side. Splitting on an empty or single-season table is a caller bug
// or a data problem, never something to paper over.
var ErrEmptySplitPartition = errors.New("empty split partition")

// TimeBasedSplitter partitions a feature table into train and validation
// rows by season boundary. The split is strictly chronological: shuffling
// rows across seasons would let future seasons leak into training.
type TimeBasedSplitter struct {
	// ValidationSeason holds out one season for validation; zero means the
	// maximum season present in the table.
	ValidationSeason int
}

// Split returns (train, validation): rows with season before the validation
// season, and rows from the validation season itself. Rows from later seasons
// than the validation season are excluded from both sides.
func (s *TimeBasedSplitter) Split(table *domain.FeatureTable) (*domain.FeatureTable, *domain.FeatureTable, error) {
	valSeason := s.ValidationSeason
	if valSeason == 0 {
		for _, row := range table.Rows {
			if row.Season > valSeason {
				valSeason = row.Season
			}
		}
	}

	train := emptyLike(table)
	val := emptyLike(table)
	for _, row := range table.Rows {
		switch {
		case row.Season < valSeason:
			train.Rows = append(train.Rows, row.Clone())
		case row.Season == valSeason:
			val.Rows = append(val.Rows, row.Clone())
		}
	}

	if len(train.Rows) == 0 || len(val.Rows) == 0 {
		return nil, nil, fmt.Errorf("%w: validation season %d, %d train rows, %d validation rows",
			ErrEmptySplitPartition, valSeason, len(train.Rows), len(val.Rows))
	}
	return train, val, nil
}

func emptyLike(table *domain.FeatureTable) *domain.FeatureTable {
	return &domain.FeatureTable{
		Position:    table.Position,
		FeatureList: append([]string(nil), table.FeatureList...),
	}
}
