package model

import (
	"errors"
	"fmt"

	"nfl-forecast-lab/internal/domain"
	"nfl-forecast-lab/internal/target"
)

// ErrEmptyDataset signals a feature table with zero usable rows.
var ErrEmptyDataset = errors.New("empty dataset")

// Dataset is a feature table flattened into the dense matrix form the
// regressor consumes, with the source rows kept alongside for reporting.
type Dataset struct {
	Columns  []string
	Features [][]float64
	Targets  []float64
	Rows     []*domain.FeatureRow
}

// TrainingDataset flattens a feature table into matrix form, keeping only
// rows with a defined forecast target. Rows near season end with no future
// weeks carry a null target and are dropped here.
func TrainingDataset(table *domain.FeatureTable) (*Dataset, error) {
	ds := &Dataset{Columns: append([]string(nil), table.FeatureList...)}
	for _, row := range table.Rows {
		t := row.Feature(target.Column)
		if t == nil {
			continue
		}
		vec, err := featureVector(row, ds.Columns)
		if err != nil {
			return nil, err
		}
		ds.Features = append(ds.Features, vec)
		ds.Targets = append(ds.Targets, *t)
		ds.Rows = append(ds.Rows, row)
	}
	if len(ds.Rows) == 0 {
		return nil, fmt.Errorf("%w: no rows with a defined target for %s", ErrEmptyDataset, table.Position)
	}
	return ds, nil
}

// ServingDataset flattens a feature table without requiring a target: the
// rows being scored are the ones whose future is still unknown.
func ServingDataset(table *domain.FeatureTable) (*Dataset, error) {
	ds := &Dataset{Columns: append([]string(nil), table.FeatureList...)}
	for _, row := range table.Rows {
		vec, err := featureVector(row, ds.Columns)
		if err != nil {
			return nil, err
		}
		ds.Features = append(ds.Features, vec)
		ds.Rows = append(ds.Rows, row)
	}
	if len(ds.Rows) == 0 {
		return nil, fmt.Errorf("%w: no rows to score for %s", ErrEmptyDataset, table.Position)
	}
	return ds, nil
}

func featureVector(row *domain.FeatureRow, columns []string) ([]float64, error) {
	vec := make([]float64, len(columns))
	for i, col := range columns {
		v := row.Feature(col)
		if v == nil {
			return nil, fmt.Errorf("null feature %s for %s week %d", col, row.GsisID, row.Week)
		}
		vec[i] = *v
	}
	return vec, nil
}
