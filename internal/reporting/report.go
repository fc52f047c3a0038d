// Package reporting renders run artifacts: the per-run markdown summary and
// the per-position prediction CSV exports.
package reporting

import (
	"time"

	"nfl-forecast-lab/internal/domain"
)

// Report is the rendered summary of one forecast run.
type Report struct {
	RunUUID     string
	GeneratedAt time.Time
	Season      int
	Week        int
	MergedRows  int
	Positions   []PositionSummary
}

// PositionSummary is one position's section of the run report.
type PositionSummary struct {
	Position     domain.Position
	ModelName    string
	RowsBuilt    int
	EligibleRows int
	TrainRows    int
	ValRows      int
	MAE          float64
	RMSE         float64
	R2           float64

	// Top holds the highest-forecast players, already ordered by predicted
	// score descending.
	Top []*domain.Prediction
}
