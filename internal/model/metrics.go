package model

import "math"

// EvalMetrics holds the validation-set regression metrics recorded per run.
type EvalMetrics struct {
	MAE      float64 `json:"mae"`
	RMSE     float64 `json:"rmse"`
	R2       float64 `json:"r2"`
	NumRows  int     `json:"num_rows"`
}

// Evaluate computes MAE, RMSE and R² over paired predictions and actuals.
// Slices must be the same non-zero length.
func Evaluate(predictions, actuals []float64) EvalMetrics {
	n := len(actuals)
	if n == 0 || len(predictions) != n {
		return EvalMetrics{}
	}

	mean := 0.0
	for _, a := range actuals {
		mean += a
	}
	mean /= float64(n)

	var absSum, sqSum, totSum float64
	for i := range actuals {
		diff := predictions[i] - actuals[i]
		absSum += math.Abs(diff)
		sqSum += diff * diff
		dev := actuals[i] - mean
		totSum += dev * dev
	}

	m := EvalMetrics{
		MAE:     absSum / float64(n),
		RMSE:    math.Sqrt(sqSum / float64(n)),
		NumRows: n,
	}
	if totSum > 0 {
		m.R2 = 1 - sqSum/totSum
	}
	return m
}
