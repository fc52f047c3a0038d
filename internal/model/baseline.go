package model

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// BaselineRegressor predicts the training-set target mean for every row. It
// stands in for the boosted-tree binding in tests and smoke runs, and sets
// the floor every real model must beat on the validation metrics.
type BaselineRegressor struct {
	mean   float64
	fitted bool
}

func NewBaselineRegressor() *BaselineRegressor {
	return &BaselineRegressor{}
}

func (b *BaselineRegressor) Name() string {
	return "baseline_mean"
}

func (b *BaselineRegressor) Fit(_ context.Context, features [][]float64, targets []float64) error {
	if len(targets) == 0 {
		return ErrEmptyDataset
	}
	if len(features) != len(targets) {
		return fmt.Errorf("feature/target length mismatch: %d vs %d", len(features), len(targets))
	}
	sum := 0.0
	for _, t := range targets {
		sum += t
	}
	b.mean = sum / float64(len(targets))
	b.fitted = true
	return nil
}

func (b *BaselineRegressor) Predict(_ context.Context, features [][]float64) ([]float64, error) {
	if !b.fitted {
		return nil, ErrUntrainedModel
	}
	out := make([]float64, len(features))
	for i := range out {
		out[i] = b.mean
	}
	return out, nil
}

type baselineState struct {
	Mean float64 `json:"mean"`
}

func (b *BaselineRegressor) Save(path string) error {
	if !b.fitted {
		return ErrUntrainedModel
	}
	data, err := json.Marshal(baselineState{Mean: b.mean})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (b *BaselineRegressor) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load baseline model: %w", err)
	}
	var st baselineState
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("load baseline model: %w", err)
	}
	b.mean = st.Mean
	b.fitted = true
	return nil
}
