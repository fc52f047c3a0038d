// Package defense turns raw opposing-defense box-score tables into normalized
// per-game allowance metrics keyed by canonical team abbreviation, plus (for
// the QB category) a composite pass-defense rank.
package defense

import (
	"errors"
	"fmt"
	"strings"

	"nfl-forecast-lab/internal/domain"
	"nfl-forecast-lab/internal/teams"
)

// ErrEmptyDefenseTable is returned when no input row resolves to a known team.
var ErrEmptyDefenseTable = errors.New("defense table has no resolvable team rows")

// QB defense output schema.
const (
	ColDefPointsPerGame = "def_points_per_game"
	ColDefPassYdsPerAtt = "def_pass_yds_per_att"
	ColDefPassTDRate    = "def_pass_td_rate"
	ColDefPassNYA       = "def_pass_nya"
	ColDefPressureRate  = "def_pressure_rate"
	ColPassDefRank      = "opponent_pass_def_rank"
)

// Composite-rank weights over the QB defense sub-ranks.
const (
	weightYardsPerAtt  = 0.4
	weightTDRate       = 0.3
	weightPressureRate = 0.2
	weightPointsPerGame = 0.1
)

var qbColumns = []string{
	ColDefPointsPerGame,
	ColDefPassYdsPerAtt,
	ColDefPassTDRate,
	ColDefPassNYA,
	ColDefPressureRate,
	ColPassDefRank,
}

// AggregateQB joins the season team-defense totals with the advanced pass
// defense table (both keyed by full team name), normalizes cumulative totals
// to per-game rates, and computes the composite pass-defense rank:
// average-rank each sub-metric, blend with fixed weights, dense-rank the
// blend ascending so rank 1 is the best pass defense. Rows whose team name
// has no abbreviation mapping (upstream summary rows) are silently dropped.
func AggregateQB(teamTotals, advanced []*domain.TeamDefenseStat) (*domain.DefenseTable, error) {
	advByTeam := make(map[string]*domain.TeamDefenseStat, len(advanced))
	for _, row := range advanced {
		if abbr, ok := teams.Abbreviation(row.Team); ok {
			advByTeam[abbr] = row
		}
	}

	var (
		abbrs    []string
		ypa, tdr []float64
		prs, ppg []float64
		nya      []float64
	)
	for _, row := range teamTotals {
		abbr, ok := teams.Abbreviation(row.Team)
		if !ok {
			continue
		}
		adv, ok := advByTeam[abbr]
		if !ok {
			continue
		}

		games := clampMin(valueOr(row.Value("G"), 0), 1)
		attempts := clampMin(valueOr(adv.Value("Att"), 0), 1)

		abbrs = append(abbrs, abbr)
		ppg = append(ppg, valueOr(row.Value("PA"), 0)/games)
		ypa = append(ypa, valueOr(adv.Value("Yds"), 0)/attempts)
		tdr = append(tdr, valueOr(adv.Value("TD"), 0)/attempts)
		prs = append(prs, valueOr(adv.Value("Prss%"), 0))
		nya = append(nya, valueOr(row.Value("NY/A"), 0))
	}
	if len(abbrs) == 0 {
		return nil, fmt.Errorf("aggregate QB defense: %w", ErrEmptyDefenseTable)
	}

	// Sub-ranks: lower allowed yards/TDs/points is a better defense
	// (ascending); more pressure generated is a better defense (descending).
	ypaRank := averageRank(ypa, true)
	tdRank := averageRank(tdr, true)
	prsRank := averageRank(prs, false)
	ptsRank := averageRank(ppg, true)

	composite := make([]float64, len(abbrs))
	for i := range composite {
		composite[i] = weightYardsPerAtt*ypaRank[i] +
			weightTDRate*tdRank[i] +
			weightPressureRate*prsRank[i] +
			weightPointsPerGame*ptsRank[i]
	}
	finalRank := denseRank(composite)

	table := &domain.DefenseTable{
		Position: domain.PositionQB,
		Columns:  qbColumns,
		Teams:    make(map[string]map[string]float64, len(abbrs)),
	}
	for i, abbr := range abbrs {
		table.Teams[abbr] = map[string]float64{
			ColDefPointsPerGame: ppg[i],
			ColDefPassYdsPerAtt: ypa[i],
			ColDefPassTDRate:    tdr[i],
			ColDefPassNYA:       nya[i],
			ColDefPressureRate:  prs[i],
			ColPassDefRank:      finalRank[i],
		}
	}
	fillNeutral(table)
	return table, nil
}

// positionSpec maps an upstream positional allowance page onto the published
// defense columns for that position. The upstream tables are already
// per-game, so values map through without games normalization.
type positionSpec struct {
	labelPrefix string
	columns     []outputColumn
}

type outputColumn struct {
	name  string
	build func(row *domain.TeamDefenseStat) float64
}

func rawColumn(col string) func(row *domain.TeamDefenseStat) float64 {
	return func(row *domain.TeamDefenseStat) float64 {
		return valueOr(row.Value(col), 0)
	}
}

var positionSpecs = map[domain.Position]positionSpec{
	domain.PositionRB: {
		labelPrefix: "RB vs ",
		columns: []outputColumn{
			{"def_rush_ypa_allowed", rawColumn("Rush YPA")},
			{"def_rb_carries_allowed", rawColumn("Rush Att")},
			{"def_rb_receptions_allowed", rawColumn("Recpt")},
			{"def_rb_touchdowns_allowed", func(row *domain.TeamDefenseStat) float64 {
				return valueOr(row.Value("Rush TD"), 0) + valueOr(row.Value("Rec TD"), 0)
			}},
			{"def_rb_fantasy_points_allowed", rawColumn("FPTS")},
		},
	},
	domain.PositionWR: {
		labelPrefix: "WR vs ",
		columns: []outputColumn{
			{"def_wr_ftps", rawColumn("FPTS")},
			{"def_wr_targets", rawColumn("Targets")},
			{"def_wr_yards_per_target", perTarget("Yds", "Targets")},
		},
	},
	domain.PositionTE: {
		labelPrefix: "TE vs ",
		columns: []outputColumn{
			{"def_te_ftps", rawColumn("FPTS")},
			{"def_te_targets", rawColumn("Targets")},
			{"def_te_yards_per_target", perTarget("Yds", "Targets")},
		},
	},
}

func perTarget(yardsCol, targetsCol string) func(row *domain.TeamDefenseStat) float64 {
	return func(row *domain.TeamDefenseStat) float64 {
		targets := valueOr(row.Value(targetsCol), 0)
		if targets <= 0 {
			return 0
		}
		return valueOr(row.Value(yardsCol), 0) / targets
	}
}

// AggregatePosition transforms a positional allowance table (rows labeled
// "<POS> vs <Nickname>") into that position's defense table. Unresolvable
// labels are silently dropped; the upstream page mixes in non-team rows.
func AggregatePosition(pos domain.Position, raw []*domain.TeamDefenseStat) (*domain.DefenseTable, error) {
	spec, ok := positionSpecs[pos]
	if !ok {
		return nil, fmt.Errorf("no positional defense spec for %s", pos)
	}

	columns := make([]string, len(spec.columns))
	for i, c := range spec.columns {
		columns[i] = c.name
	}

	table := &domain.DefenseTable{
		Position: pos,
		Columns:  columns,
		Teams:    make(map[string]map[string]float64),
	}
	for _, row := range raw {
		nickname := strings.TrimSpace(strings.TrimPrefix(row.Team, spec.labelPrefix))
		abbr, ok := teams.AbbreviationFromNickname(nickname)
		if !ok {
			continue
		}
		vals := make(map[string]float64, len(spec.columns))
		for _, c := range spec.columns {
			vals[c.name] = c.build(row)
		}
		table.Teams[abbr] = vals
	}
	if len(table.Teams) == 0 {
		return nil, fmt.Errorf("aggregate %s defense: %w", pos, ErrEmptyDefenseTable)
	}
	fillNeutral(table)
	return table, nil
}

// fillNeutral computes the per-column sentinel used when a feature row's
// opponent is missing from the table: the column median, which for the dense
// rank of a full 32-team table lands on the 16.5 midpoint.
func fillNeutral(t *domain.DefenseTable) {
	t.Neutral = make(map[string]float64, len(t.Columns))
	for _, col := range t.Columns {
		vals := make([]float64, 0, len(t.Teams))
		for _, team := range t.Teams {
			vals = append(vals, team[col])
		}
		t.Neutral[col] = median(vals)
	}
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func clampMin(v, min float64) float64 {
	if v < min {
		return min
	}
	return v
}
