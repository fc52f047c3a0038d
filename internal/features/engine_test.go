package features

import (
	"math"
	"reflect"
	"testing"

	"nfl-forecast-lab/internal/domain"
)

// qbWeek builds a minimal merged QB week.
func qbWeek(week int, attempts, passYards float64) *domain.PlayerWeek {
	return &domain.PlayerWeek{
		GsisID:          "00-0001111",
		FullName:        "Test Quarterback",
		Team:            "KC",
		Position:        domain.PositionQB,
		Season:          2023,
		Week:            week,
		PassAttempt:     domain.Float(attempts),
		PassYardsGained: domain.Float(passYards),
	}
}

func buildQB(t *testing.T, weeks []*domain.PlayerWeek) *domain.FeatureTable {
	t.Helper()
	engine, err := NewEngine(domain.PositionQB)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	table, err := engine.Build(weeks, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return table
}

func feature(t *testing.T, row *domain.FeatureRow, name string) float64 {
	t.Helper()
	v := row.Feature(name)
	if v == nil {
		t.Fatalf("feature %s is null", name)
	}
	return *v
}

func TestEngine_PublishedFeatureListIsDense(t *testing.T) {
	table := buildQB(t, []*domain.PlayerWeek{qbWeek(1, 30, 250)})

	for _, row := range table.Rows {
		for _, col := range table.FeatureList {
			if !row.HasFeature(col) {
				t.Errorf("published feature %s is null after the final fill", col)
			}
		}
	}
}

func TestEngine_ZeroAttemptWeekYieldsZeroRates(t *testing.T) {
	// A QB with attempts [20, 0, 30]: the zero-attempt week must produce a
	// usable zero rate, not a NaN or a propagated null.
	table := buildQB(t, []*domain.PlayerWeek{
		qbWeek(1, 20, 180),
		qbWeek(2, 0, 0),
		qbWeek(3, 30, 260),
	})

	if len(table.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(table.Rows))
	}
	ypa := feature(t, table.Rows[1], "yards_per_att")
	if ypa != 0 {
		t.Errorf("week 2 yards_per_att = %v, want 0", ypa)
	}
	if math.IsNaN(ypa) || math.IsInf(ypa, 0) {
		t.Errorf("week 2 yards_per_att is not finite: %v", ypa)
	}
}

func TestEngine_TrailingMeansUseOnlyPastWeeks(t *testing.T) {
	table := buildQB(t, []*domain.PlayerWeek{
		qbWeek(1, 10, 100),
		qbWeek(2, 20, 200),
		qbWeek(3, 30, 300),
		qbWeek(4, 40, 400),
	})

	// attempts_3wk_avg at week 3 = mean(10, 20, 30); week 4 = mean(20, 30, 40).
	if got := feature(t, table.Rows[2], "attempts_3wk_avg"); got != 20 {
		t.Errorf("week 3 attempts_3wk_avg = %v, want 20", got)
	}
	if got := feature(t, table.Rows[3], "attempts_3wk_avg"); got != 30 {
		t.Errorf("week 4 attempts_3wk_avg = %v, want 30", got)
	}
}

func TestEngine_SeasonBoundaryIsolation(t *testing.T) {
	// Two seasons with wildly different volumes. Week 1 of the second season
	// must not inherit anything from the first.
	weeks := []*domain.PlayerWeek{
		qbWeek(15, 50, 500),
		qbWeek(16, 50, 500),
		qbWeek(17, 50, 500),
	}
	s2w1 := qbWeek(1, 10, 100)
	s2w1.Season = 2024
	weeks = append(weeks, s2w1)

	table := buildQB(t, weeks)
	last := table.Rows[len(table.Rows)-1]
	if last.Season != 2024 {
		t.Fatalf("rows not sorted by season, last row season = %d", last.Season)
	}

	if got := feature(t, last, "attempts_3wk_avg"); got != 10 {
		t.Errorf("season 2 week 1 attempts_3wk_avg = %v, want 10 (own week only)", got)
	}
	// Deltas and prior form restart at the boundary: null, then zero-filled.
	if got := feature(t, last, "delta_attempts"); got != 0 {
		t.Errorf("season 2 week 1 delta_attempts = %v, want 0", got)
	}
	if got := feature(t, last, "fantasy_prev_5wk_avg"); got != 0 {
		t.Errorf("season 2 week 1 fantasy_prev_5wk_avg = %v, want 0", got)
	}
}

func TestEngine_PriorFormExcludesCurrentWeek(t *testing.T) {
	table := buildQB(t, []*domain.PlayerWeek{
		qbWeek(1, 25, 250), // 10.0 fantasy points
		qbWeek(2, 25, 150), // 6.0
	})

	// Week 2's prior form sees only week 1's score.
	fp1 := feature(t, table.Rows[0], "fantasy_points")
	prev := feature(t, table.Rows[1], "fantasy_prev_5wk_avg")
	if math.Abs(prev-fp1) > 1e-9 {
		t.Errorf("week 2 fantasy_prev_5wk_avg = %v, want week 1's score %v", prev, fp1)
	}
}

func TestEngine_ImpliedPointsSumToTotal(t *testing.T) {
	home := qbWeek(1, 30, 250)
	home.HomeTeam, home.AwayTeam = "KC", "DEN"
	home.Total = domain.Float(47.5)
	home.SpreadLine = domain.Float(-6.5) // home favored

	away := qbWeek(1, 30, 250)
	away.GsisID = "00-0002222"
	away.FullName = "Away Quarterback"
	away.Team = "DEN"
	away.HomeTeam, away.AwayTeam = "KC", "DEN"
	away.Total = domain.Float(47.5)
	away.SpreadLine = domain.Float(-6.5)

	table := buildQB(t, []*domain.PlayerWeek{home, away})

	var sum float64
	var favored [2]float64
	for i, row := range table.Rows {
		sum += feature(t, row, "team_implied_points")
		favored[i] = feature(t, row, "is_favored")
	}
	if math.Abs(sum-47.5) > 1e-9 {
		t.Errorf("implied points sum = %v, want 47.5", sum)
	}
	if favored[0]+favored[1] != 1 {
		t.Errorf("exactly one side must be favored, got %v", favored)
	}
	for _, row := range table.Rows {
		if got := feature(t, row, "abs_spread"); got != 6.5 {
			t.Errorf("abs_spread = %v, want 6.5", got)
		}
	}
}

func TestEngine_MissingLinesZeroFilled(t *testing.T) {
	table := buildQB(t, []*domain.PlayerWeek{qbWeek(1, 30, 250)})
	if got := feature(t, table.Rows[0], "team_implied_points"); got != 0 {
		t.Errorf("team_implied_points without lines = %v, want 0 after final fill", got)
	}
}

func TestEngine_DefenseJoinFallsBackToNeutral(t *testing.T) {
	def := &domain.DefenseTable{
		Position: domain.PositionQB,
		Columns:  []string{"opponent_pass_def_rank"},
		Teams: map[string]map[string]float64{
			"DEN": {"opponent_pass_def_rank": 3},
		},
		Neutral: map[string]float64{"opponent_pass_def_rank": 16.5},
	}

	matched := qbWeek(1, 30, 250)
	matched.Opponent = "DEN"
	unmatched := qbWeek(2, 30, 250)
	unmatched.Opponent = "XYZ"

	engine, err := NewEngine(domain.PositionQB)
	if err != nil {
		t.Fatal(err)
	}
	table, err := engine.Build([]*domain.PlayerWeek{matched, unmatched}, def)
	if err != nil {
		t.Fatal(err)
	}

	if got := feature(t, table.Rows[0], "opponent_pass_def_rank"); got != 3 {
		t.Errorf("matched opponent rank = %v, want 3", got)
	}
	if got := feature(t, table.Rows[1], "opponent_pass_def_rank"); got != 16.5 {
		t.Errorf("unmatched opponent rank = %v, want neutral 16.5", got)
	}
}

func TestEngine_ProfileFlags(t *testing.T) {
	rookie := qbWeek(1, 30, 250)
	rookie.YearsExp = domain.Float(0)
	rookie.DraftNumber = domain.Float(12)

	secondYear := qbWeek(2, 30, 250)
	secondYear.YearsExp = domain.Float(1)

	table := buildQB(t, []*domain.PlayerWeek{rookie, secondYear})

	r := table.Rows[0]
	if feature(t, r, "is_rookie") != 1 || feature(t, r, "is_second_year") != 0 {
		t.Error("zero years experience must flag rookie only")
	}
	if feature(t, r, "is_undrafted") != 0 || feature(t, r, "draft_number_filled") != 12 {
		t.Error("drafted player must keep draft slot with is_undrafted=0")
	}

	s := table.Rows[1]
	if feature(t, s, "is_second_year") != 1 || feature(t, s, "is_rookie") != 0 {
		t.Error("one year of experience must flag second-year only")
	}
	if feature(t, s, "is_undrafted") != 1 || feature(t, s, "draft_number_filled") != 275 {
		t.Error("missing draft slot must fill the undrafted sentinel")
	}
}

func TestEngine_OtherPositionsFiltered(t *testing.T) {
	rb := qbWeek(1, 0, 0)
	rb.Position = domain.PositionRB

	table := buildQB(t, []*domain.PlayerWeek{qbWeek(1, 30, 250), rb})
	if len(table.Rows) != 1 {
		t.Errorf("got %d rows, want only the QB row", len(table.Rows))
	}
}

func TestEngine_BuildIsIdempotent(t *testing.T) {
	weeks := []*domain.PlayerWeek{
		qbWeek(1, 20, 180),
		qbWeek(2, 0, 0),
		qbWeek(3, 30, 260),
	}
	first := buildQB(t, weeks)
	second := buildQB(t, weeks)

	if len(first.Rows) != len(second.Rows) {
		t.Fatalf("row counts differ: %d vs %d", len(first.Rows), len(second.Rows))
	}
	for i := range first.Rows {
		for _, col := range first.FeatureList {
			a, b := first.Rows[i].Feature(col), second.Rows[i].Feature(col)
			if !reflect.DeepEqual(a, b) {
				t.Errorf("row %d feature %s differs between runs: %v vs %v", i, col, a, b)
			}
		}
	}
}

func TestEngine_InputNotMutated(t *testing.T) {
	pw := qbWeek(1, 20, 180)
	pw.Receptions = nil
	buildQB(t, []*domain.PlayerWeek{pw})

	if pw.Receptions != nil {
		t.Error("engine must not zero-fill the caller's record")
	}
}
