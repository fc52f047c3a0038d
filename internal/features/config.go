package features

import "nfl-forecast-lab/internal/domain"

// The forward-looking training label. Attached by the target builder, never
// part of a published feature list.
const TargetColumn = "fantasy_next_4wk_avg"

// IdentifierColumns are the non-feature columns every finalized table carries.
var IdentifierColumns = []string{"team", "position", "full_name", "gsis_id", "week", "season"}

// trendSpec windows one base series per (player, season) group: 3-week and
// 7-week trailing means plus their difference. Output names are empty when a
// position does not publish that column; the means are still computed for the
// trend.
type trendSpec struct {
	source string
	avg3   string
	avg7   string
	trend  string
}

// deltaSpec is a week-over-week difference of one base series.
type deltaSpec struct {
	source string
	out    string
}

// Config parameterizes the feature engine for one position. The four
// positions share the pipeline order and differ only in these tables, which
// keeps the safe-division and sort policies in one audited code path.
type Config struct {
	Position    domain.Position
	FeatureList []string

	// computeRow fills volume and rate columns from the zero-filled raw
	// stats; computePostScore fills the rates that depend on the fantasy
	// score (may be nil).
	computeRow       func(r *domain.FeatureRow)
	computePostScore func(r *domain.FeatureRow)

	trends []trendSpec
	deltas []deltaSpec
}

// ConfigFor returns the published configuration for a position.
func ConfigFor(pos domain.Position) (Config, bool) {
	cfg, ok := configs[pos]
	return cfg, ok
}

var configs = map[domain.Position]Config{
	domain.PositionQB: qbConfig,
	domain.PositionRB: rbConfig,
	domain.PositionWR: receiverConfig(domain.PositionWR, "def_wr_ftps", "def_wr_targets", "def_wr_yards_per_target"),
	domain.PositionTE: receiverConfig(domain.PositionTE, "def_te_ftps", "def_te_targets", "def_te_yards_per_target"),
}

var qbConfig = Config{
	Position: domain.PositionQB,
	FeatureList: []string{
		// passing rates
		"air_yards_per_att", "yards_per_att", "td_rate", "int_rate", "fantasy_per_att",
		// week-over-week deltas
		"delta_attempts", "delta_air_yards", "delta_cpoe",
		// volume trends
		"attempts_3wk_avg", "attempts_7wk_avg", "attempts_trend_3v7",
		"air_yards_3wk_avg", "air_yards_7wk_avg", "air_yards_trend_3v7",
		// rushing
		"rush_td_rate", "rush_yards_per_game",
		"rush_yards_3wk_avg", "rush_yards_7wk_avg", "rush_trend_3v7",
		// environment
		"team_implied_points", "is_favored", "abs_spread",
		// opposing defense
		"def_points_per_game", "def_pass_yds_per_att", "def_pass_td_rate",
		"def_pass_nya", "def_pressure_rate", "opponent_pass_def_rank",
		// scoring
		"fantasy_points", "fantasy_3wk_avg", "fantasy_7wk_avg",
		"fantasy_trend_3v7", "fantasy_prev_5wk_avg",
		// profile
		"years_exp_filled", "draft_number_filled", "is_rookie", "is_second_year", "is_undrafted",
	},
	computeRow: func(r *domain.FeatureRow) {
		att := valueOr(r.PassAttempt, 0)

		// Zero attempts reads as zero productivity for the passing rates:
		// clamped denominator, not null.
		r.Set("air_yards_per_att", divFloor(valueOr(r.PassAirYards, 0), att))
		r.Set("yards_per_att", divFloor(valueOr(r.PassYardsGained, 0), att))
		r.Set("td_rate", divFloor(valueOr(r.PassTouchdown, 0), att))
		r.Set("int_rate", divFloor(valueOr(r.PassInterception, 0), att))
		r.Set("fantasy_per_att", divFloor(passingFantasy(&r.PlayerWeek), att))

		r.Set("rush_td_rate", divFloor(valueOr(r.RushTouchdown, 0), valueOr(r.RushAttempt, 0)))
		r.Set("rush_yards_per_game", valueOr(r.RushYardsGained, 0))

		// Base series for the grouped window passes.
		r.Set("attempts", att)
		r.Set("air_yards", valueOr(r.PassAirYards, 0))
		r.Set("rush_yards", valueOr(r.RushYardsGained, 0))
		r.SetNullable("cpoe", r.CompletionPctAboveExpected)
	},
	trends: []trendSpec{
		{source: "attempts", avg3: "attempts_3wk_avg", avg7: "attempts_7wk_avg", trend: "attempts_trend_3v7"},
		{source: "air_yards", avg3: "air_yards_3wk_avg", avg7: "air_yards_7wk_avg", trend: "air_yards_trend_3v7"},
		{source: "rush_yards", avg3: "rush_yards_3wk_avg", avg7: "rush_yards_7wk_avg", trend: "rush_trend_3v7"},
		{source: "fantasy_points", avg3: "fantasy_3wk_avg", avg7: "fantasy_7wk_avg", trend: "fantasy_trend_3v7"},
	},
	deltas: []deltaSpec{
		{source: "attempts", out: "delta_attempts"},
		{source: "air_yards", out: "delta_air_yards"},
		{source: "cpoe", out: "delta_cpoe"},
	},
}

var rbConfig = Config{
	Position: domain.PositionRB,
	FeatureList: []string{
		// volume
		"touches", "snap_share", "rush_share", "target_share",
		"weighted_opp_share", "total_touchdowns", "delta_touches",
		// trends
		"touches_3wk_avg", "touches_trend_3v7",
		"snap_share_3wk_avg", "snap_share_trend_3v7",
		"fantasy_3wk_avg", "fantasy_trend_3v7", "fantasy_prev_5wk_avg",
		"tds_3wk_avg", "tds_trend_3v7",
		// rushing efficiency
		"rush_ypc", "rush_yoe_per_att", "rush_yoe_per_game", "stacked_box_rate",
		// receiving
		"catch_rate", "rec_yards_per_target", "avg_yac_above_expectation",
		// environment
		"team_implied_points", "is_favored", "abs_spread",
		// opposing defense
		"def_rush_ypa_allowed", "def_rb_carries_allowed",
		"def_rb_receptions_allowed", "def_rb_touchdowns_allowed",
		"def_rb_fantasy_points_allowed",
		// profile
		"years_exp_filled", "is_rookie", "is_undrafted", "draft_number_filled",
	},
	computeRow: func(r *domain.FeatureRow) {
		rushAtt := valueOr(r.RushAttempt, 0)
		targets := valueOr(r.RecAttempt, 0)

		r.Set("touches", rushAtt+targets)
		r.Set("snap_share", valueOr(r.OffensePct, 0))
		r.SetNullable("rush_share", divOrNull(rushAtt, valueOr(r.RushAttemptTeam, 0)))
		r.SetNullable("target_share", divOrNull(targets, valueOr(r.RecAttemptTeam, 0)))
		r.Set("weighted_opp_share", rushAtt+3*targets)
		r.Set("total_touchdowns", valueOr(r.RushTouchdown, 0)+valueOr(r.RecTouchdown, 0))

		// Efficiency rates are undefined without opportunities.
		r.SetNullable("rush_ypc", divOrNull(valueOr(r.RushYardsGained, 0), rushAtt))
		r.SetNullable("rush_yoe_per_att", r.RushYardsOverExpectedPerAtt)
		if yoe := r.RushYardsOverExpectedPerAtt; yoe != nil {
			r.Set("rush_yoe_per_game", *yoe*rushAtt)
		} else {
			r.SetNull("rush_yoe_per_game")
		}
		r.SetNullable("stacked_box_rate", r.PctAttemptsEightDefenders)

		r.SetNullable("catch_rate", divOrNull(valueOr(r.Receptions, 0), targets))
		r.SetNullable("rec_yards_per_target", divOrNull(valueOr(r.RecYardsGained, 0), targets))
		r.SetNullable("avg_yac_above_expectation", r.AvgYacAboveExpectation)
	},
	trends: []trendSpec{
		{source: "touches", avg3: "touches_3wk_avg", trend: "touches_trend_3v7"},
		{source: "snap_share", avg3: "snap_share_3wk_avg", trend: "snap_share_trend_3v7"},
		{source: "fantasy_points", avg3: "fantasy_3wk_avg", trend: "fantasy_trend_3v7"},
		{source: "total_touchdowns", avg3: "tds_3wk_avg", trend: "tds_trend_3v7"},
	},
	deltas: []deltaSpec{
		{source: "touches", out: "delta_touches"},
	},
}

// receiverConfig builds the WR/TE configuration; the two positions share the
// receiving feature set and differ only in their opposing-defense columns.
func receiverConfig(pos domain.Position, defFtps, defTargets, defYPT string) Config {
	return Config{
		Position: pos,
		FeatureList: []string{
			// receiving volume
			"targets", "air_yards", "snap_share", "target_share",
			"air_yards_share", "total_touchdowns", "delta_targets",
			// rushing volume
			"rush_attempts", "rush_ypa", "rush_share",
			// trends
			"targets_3wk_avg", "targets_trend_3v7",
			"air_yards_3wk_avg", "air_yards_trend_3v7",
			"snap_share_3wk_avg", "snap_share_trend_3v7",
			"fantasy_ppr_3wk_avg", "fantasy_ppr_trend_3v7", "fantasy_prev_5wk_avg",
			"tds_3wk_avg", "tds_trend_3v7", "gadget_usage_3wk_avg",
			// efficiency
			"yards_per_target", "rec_td_rate", "catch_rate", "fp_per_target",
			"avg_separation", "avg_cushion", "avg_yac_above_expectation", "racr",
			// environment
			"team_implied_points", "is_favored", "abs_spread",
			// opposing defense
			defFtps, defTargets, defYPT,
			// profile
			"years_exp_filled", "is_rookie", "is_second_year", "is_undrafted", "draft_number_filled",
		},
		computeRow: func(r *domain.FeatureRow) {
			targets := valueOr(r.RecAttempt, 0)
			rushAtt := valueOr(r.RushAttempt, 0)
			airYards := valueOr(r.RecAirYards, 0)

			r.Set("targets", targets)
			r.Set("air_yards", airYards)
			r.Set("snap_share", valueOr(r.OffensePct, 0))
			r.SetNullable("target_share", divOrNull(targets, valueOr(r.RecAttemptTeam, 0)))
			r.SetNullable("air_yards_share", r.PctShareIntendedAirYards)
			r.Set("total_touchdowns", valueOr(r.RushTouchdown, 0)+valueOr(r.RecTouchdown, 0))

			r.Set("rush_attempts", rushAtt)
			r.SetNullable("rush_ypa", divOrNull(valueOr(r.RushYardsGained, 0), rushAtt))
			r.SetNullable("rush_share", divOrNull(rushAtt, valueOr(r.RushAttemptTeam, 0)))

			r.SetNullable("yards_per_target", divOrNull(valueOr(r.RecYardsGained, 0), targets))
			r.SetNullable("rec_td_rate", divOrNull(valueOr(r.RecTouchdown, 0), valueOr(r.Receptions, 0)))
			r.SetNullable("catch_rate", divOrNull(valueOr(r.Receptions, 0), targets))
			r.SetNullable("racr", divOrNull(valueOr(r.RecYardsGained, 0), airYards))

			r.SetNullable("avg_separation", r.AvgSeparation)
			r.SetNullable("avg_cushion", r.AvgCushion)
			r.SetNullable("avg_yac_above_expectation", r.AvgYacAboveExpectation)
		},
		computePostScore: func(r *domain.FeatureRow) {
			r.SetNullable("fp_per_target",
				divOrNull(r.FeatureOr("fantasy_points", 0), valueOr(r.RecAttempt, 0)))
		},
		trends: []trendSpec{
			{source: "targets", avg3: "targets_3wk_avg", trend: "targets_trend_3v7"},
			{source: "air_yards", avg3: "air_yards_3wk_avg", trend: "air_yards_trend_3v7"},
			{source: "snap_share", avg3: "snap_share_3wk_avg", trend: "snap_share_trend_3v7"},
			{source: "fantasy_points", avg3: "fantasy_ppr_3wk_avg", trend: "fantasy_ppr_trend_3v7"},
			{source: "total_touchdowns", avg3: "tds_3wk_avg", trend: "tds_trend_3v7"},
			{source: "rush_attempts", avg3: "gadget_usage_3wk_avg"},
		},
		deltas: []deltaSpec{
			{source: "targets", out: "delta_targets"},
		},
	}
}
