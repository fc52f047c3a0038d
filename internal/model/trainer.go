package model

import (
	"context"
	"fmt"

	"nfl-forecast-lab/internal/domain"
	"nfl-forecast-lab/internal/split"
)

// TrainResult summarizes one fitted model: the validation metrics and the
// partition sizes that produced them.
type TrainResult struct {
	Position   domain.Position
	ModelName  string
	Metrics    EvalMetrics
	TrainRows  int
	ValRows    int
}

// Trainer fits a regressor on a chronological train/validation split of an
// eligible feature table.
type Trainer struct {
	Splitter *split.TimeBasedSplitter
}

func NewTrainer(splitter *split.TimeBasedSplitter) *Trainer {
	return &Trainer{Splitter: splitter}
}

// Train splits the table by season, fits the regressor on the earlier
// seasons and evaluates it on the held-out one. The table must already have
// passed the eligible-window gate.
func (t *Trainer) Train(ctx context.Context, reg Regressor, table *domain.FeatureTable) (*TrainResult, error) {
	trainTable, valTable, err := t.Splitter.Split(table)
	if err != nil {
		return nil, fmt.Errorf("split %s table: %w", table.Position, err)
	}

	trainSet, err := TrainingDataset(trainTable)
	if err != nil {
		return nil, err
	}
	valSet, err := TrainingDataset(valTable)
	if err != nil {
		return nil, err
	}

	if err := reg.Fit(ctx, trainSet.Features, trainSet.Targets); err != nil {
		return nil, fmt.Errorf("fit %s model: %w", table.Position, err)
	}
	preds, err := reg.Predict(ctx, valSet.Features)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s model: %w", table.Position, err)
	}

	return &TrainResult{
		Position:  table.Position,
		ModelName: reg.Name(),
		Metrics:   Evaluate(preds, valSet.Targets),
		TrainRows: len(trainSet.Rows),
		ValRows:   len(valSet.Rows),
	}, nil
}
