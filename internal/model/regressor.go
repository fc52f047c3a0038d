// Package model wraps the forecast regressor: the dataset matrix it consumes,
// the fit/predict/save/load contract, a trainable baseline, and the
// evaluation metrics reported per training run.
package model

import (
	"context"
	"errors"
)

// ErrUntrainedModel signals a Predict or Save call before Fit or Load.
var ErrUntrainedModel = errors.New("model has not been fitted")

// Regressor is the forecast model behind the pipeline. The gradient-boosted
// implementation is a separate binding; everything here treats the model as
// fit/predict/save/load over dense float matrices.
type Regressor interface {
	// Fit trains the model on a dense feature matrix and its targets.
	// len(targets) must equal len(features).
	Fit(ctx context.Context, features [][]float64, targets []float64) error

	// Predict returns one prediction per input row. Returns
	// ErrUntrainedModel before Fit or Load.
	Predict(ctx context.Context, features [][]float64) ([]float64, error)

	// Save persists the fitted model to path.
	Save(path string) error

	// Load restores a model previously written by Save.
	Load(path string) error

	// Name returns the model identifier recorded with each run.
	Name() string
}
