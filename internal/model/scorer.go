package model

import (
	"context"
	"fmt"

	"nfl-forecast-lab/internal/domain"
)

// LatestWeekSlice reduces an eligible feature table to each player's most
// recent row, the "current state" rows a serving pass scores. The input
// must already be sorted by (gsis_id, season, week); the last row per player
// is the latest one.
func LatestWeekSlice(table *domain.FeatureTable) *domain.FeatureTable {
	out := &domain.FeatureTable{
		Position:    table.Position,
		FeatureList: append([]string(nil), table.FeatureList...),
	}
	latest := make(map[string]int)
	for i, row := range table.Rows {
		latest[row.GsisID] = i
	}
	for i, row := range table.Rows {
		if latest[row.GsisID] == i {
			out.Rows = append(out.Rows, row.Clone())
		}
	}
	return out
}

// ScoreCandidates runs the fitted regressor over each player's latest row
// and returns one prediction per player. Delta measures the forecast against
// the player's trailing five-week form; it is null when the player has no
// prior-form value.
func ScoreCandidates(ctx context.Context, reg Regressor, table *domain.FeatureTable, runUUID string) ([]*domain.Prediction, error) {
	ds, err := ServingDataset(table)
	if err != nil {
		return nil, err
	}
	preds, err := reg.Predict(ctx, ds.Features)
	if err != nil {
		return nil, fmt.Errorf("score %s candidates: %w", table.Position, err)
	}

	out := make([]*domain.Prediction, len(ds.Rows))
	for i, row := range ds.Rows {
		p := &domain.Prediction{
			RunUUID:  runUUID,
			Team:     row.Team,
			Position: row.Position,
			FullName: row.FullName,
			GsisID:   row.GsisID,
			Season:   row.Season,
			Week:     row.Week,

			YearsExp:          domain.CloneFloat(row.YearsExp),
			YearsExpFilled:    row.Feature("years_exp_filled"),
			DraftNumber:       domain.CloneFloat(row.DraftNumber),
			DraftNumberFilled: row.Feature("draft_number_filled"),
			IsRookie:          row.Feature("is_rookie"),
			IsSecondYear:      row.Feature("is_second_year"),
			IsUndrafted:       row.Feature("is_undrafted"),
			FantasyPrev5WkAvg: row.Feature("fantasy_prev_5wk_avg"),

			PredNext4: preds[i],
		}
		if p.FantasyPrev5WkAvg != nil {
			d := p.PredNext4 - *p.FantasyPrev5WkAvg
			p.Delta = &d
		}
		out[i] = p
	}
	return out, nil
}
