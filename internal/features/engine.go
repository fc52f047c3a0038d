// Package features derives the per-position model feature tables from the
// merged player-week table. The engine is a pure batch transform: it copies
// its input, computes every column of the position's published feature list,
// and guarantees that no rolling or trend column at week w uses any week
// after w, or any week from another season.
package features

import (
	"fmt"
	"math"

	"nfl-forecast-lab/internal/domain"
)

const (
	trailingShortWeeks = 3
	trailingLongWeeks  = 7
	priorFormWeeks     = 5

	// draftSentinel marks an undrafted player: beyond any real draft slot.
	draftSentinel = 275.0
)

// Engine computes one position's feature table.
type Engine struct {
	cfg Config
}

// NewEngine creates the feature engine for a position.
func NewEngine(pos domain.Position) (*Engine, error) {
	cfg, ok := ConfigFor(pos)
	if !ok {
		return nil, fmt.Errorf("no feature config for position %s", pos)
	}
	return &Engine{cfg: cfg}, nil
}

// FeatureList returns the position's published feature columns.
func (e *Engine) FeatureList() []string {
	return append([]string(nil), e.cfg.FeatureList...)
}

// Build derives the feature table for the engine's position from the merged
// player-week table and that position's opponent-defense table. The inputs
// are never mutated; the processing order is fixed because later steps
// consume earlier columns.
func (e *Engine) Build(merged []*domain.PlayerWeek, def *domain.DefenseTable) (*domain.FeatureTable, error) {
	table := &domain.FeatureTable{
		Position:    e.cfg.Position,
		FeatureList: e.FeatureList(),
	}

	for _, pw := range merged {
		if pw == nil || pw.Position != e.cfg.Position {
			continue
		}
		row := domain.NewFeatureRow(*pw)
		fillCountingStats(&row.PlayerWeek)
		e.cfg.computeRow(row)
		row.Set("fantasy_points", FantasyPoints(&row.PlayerWeek))
		if e.cfg.computePostScore != nil {
			e.cfg.computePostScore(row)
		}
		computeEnvironment(row)
		joinDefense(row, def)
		computeProfile(row)
		table.Rows = append(table.Rows, row)
	}

	// Grouped passes require (gsis_id, season, week) order; grouping by
	// (gsis_id, season) keeps one season's trailing stats out of the next.
	table.SortByPlayerSeasonWeek()
	_, groups := table.GroupsByPlayerSeason()
	for _, indices := range groups {
		e.computeGroupWindows(table, indices)
	}

	fillFeatureList(table)
	return table, nil
}

// computeGroupWindows runs the delta, trend and prior-form passes over one
// (player, season) group, given that group's row indices in table order.
func (e *Engine) computeGroupWindows(table *domain.FeatureTable, indices []int) {
	series := func(source string) []*float64 {
		vals := make([]*float64, len(indices))
		for i, idx := range indices {
			vals[i] = table.Rows[idx].Feature(source)
		}
		return vals
	}
	write := func(name string, vals []*float64) {
		if name == "" {
			return
		}
		for i, idx := range indices {
			table.Rows[idx].SetNullable(name, vals[i])
		}
	}

	for _, d := range e.cfg.deltas {
		write(d.out, diffs(series(d.source)))
	}

	for _, t := range e.cfg.trends {
		vals := series(t.source)
		avg3 := trailingMeans(vals, trailingShortWeeks)
		avg7 := trailingMeans(vals, trailingLongWeeks)
		write(t.avg3, avg3)
		write(t.avg7, avg7)
		if t.trend != "" {
			trend := make([]*float64, len(vals))
			for i := range vals {
				if avg3[i] == nil || avg7[i] == nil {
					continue
				}
				v := *avg3[i] - *avg7[i]
				trend[i] = &v
			}
			write(t.trend, trend)
		}
	}

	// Current form: trailing mean of strictly prior weeks only. The shift
	// happens before windowing, so a row never sees its own score.
	write("fantasy_prev_5wk_avg", priorTrailingMeans(series("fantasy_points"), priorFormWeeks))
}

// fillCountingStats zero-fills the raw counting columns: for these, a missing
// value means the event did not occur, not that it is unknown.
func fillCountingStats(pw *domain.PlayerWeek) {
	cols := []**float64{
		&pw.PassAttempt, &pw.RecAttempt, &pw.RushAttempt,
		&pw.PassAirYards, &pw.RecAirYards,
		&pw.PassCompletions, &pw.Receptions,
		&pw.PassYardsGained, &pw.RecYardsGained, &pw.RushYardsGained,
		&pw.PassTouchdown, &pw.RecTouchdown, &pw.RushTouchdown,
		&pw.PassInterception, &pw.RecFumbleLost, &pw.RushFumbleLost,
		&pw.PassAttemptTeam, &pw.RecAttemptTeam, &pw.RushAttemptTeam,
		&pw.OffenseSnaps, &pw.OffensePct,
	}
	for _, c := range cols {
		if *c == nil {
			*c = domain.Float(0)
		}
	}
}

// computeEnvironment derives the game-environment columns from the schedule
// join. The spread is signed from the home team's perspective, so the home
// implied total subtracts half the spread and the away side adds it.
func computeEnvironment(r *domain.FeatureRow) {
	if r.Total == nil || r.SpreadLine == nil {
		r.SetNull("team_implied_points")
		r.SetNull("is_favored")
		r.SetNull("abs_spread")
		return
	}
	total, spread := *r.Total, *r.SpreadLine

	if r.IsHome() {
		r.Set("team_implied_points", total/2.0-spread/2.0)
	} else {
		r.Set("team_implied_points", total/2.0+spread/2.0)
	}

	teamSpread := spread
	if !r.IsHome() {
		teamSpread = -spread
	}
	if teamSpread < 0 {
		r.Set("is_favored", 1)
	} else {
		r.Set("is_favored", 0)
	}
	r.Set("abs_spread", math.Abs(teamSpread))
}

// joinDefense attaches the opponent's defensive allowance columns. A missing
// opponent match degrades to the table's neutral sentinel per column, never
// an error.
func joinDefense(r *domain.FeatureRow, def *domain.DefenseTable) {
	if def == nil {
		return
	}
	teamVals, ok := def.Teams[r.Opponent]
	for _, col := range def.Columns {
		if ok {
			r.Set(col, teamVals[col])
		} else {
			r.Set(col, def.Neutral[col])
		}
	}
}

func computeProfile(r *domain.FeatureRow) {
	years := valueOr(r.YearsExp, 0)
	r.Set("years_exp_filled", years)
	r.Set("is_rookie", boolFlag(r.YearsExp != nil && years == 0))
	r.Set("is_second_year", boolFlag(r.YearsExp != nil && years == 1))

	if r.DraftNumber != nil {
		r.Set("draft_number_filled", *r.DraftNumber)
		r.Set("is_undrafted", 0)
	} else {
		r.Set("draft_number_filled", draftSentinel)
		r.Set("is_undrafted", 1)
	}
}

func boolFlag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// fillFeatureList is the final dense pass: every published feature still null
// after the safe-division and window steps becomes zero, so the model input
// never carries nulls.
func fillFeatureList(table *domain.FeatureTable) {
	for _, row := range table.Rows {
		for _, col := range table.FeatureList {
			if !row.HasFeature(col) {
				row.Set(col, 0)
			}
		}
	}
}
