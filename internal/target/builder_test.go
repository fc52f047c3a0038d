package target

import (
	"math"
	"testing"

	"nfl-forecast-lab/internal/domain"
)

func scoredRow(gsis string, season, week int, points float64) *domain.FeatureRow {
	row := domain.NewFeatureRow(domain.PlayerWeek{
		GsisID: gsis,
		Season: season,
		Week:   week,
	})
	row.Set("fantasy_points", points)
	return row
}

func tableOf(rows ...*domain.FeatureRow) *domain.FeatureTable {
	t := &domain.FeatureTable{Position: domain.PositionQB, Rows: rows}
	t.SortByPlayerSeasonWeek()
	return t
}

func wantTarget(t *testing.T, row *domain.FeatureRow, want float64) {
	t.Helper()
	got := row.Feature(Column)
	if got == nil {
		t.Fatalf("week %d target is null, want %v", row.Week, want)
	}
	if math.Abs(*got-want) > 1e-9 {
		t.Errorf("week %d target = %v, want %v", row.Week, *got, want)
	}
}

func TestAttach_MeanOverNextFourWeeks(t *testing.T) {
	table := tableOf(
		scoredRow("a", 2023, 1, 10),
		scoredRow("a", 2023, 2, 20),
		scoredRow("a", 2023, 3, 30),
		scoredRow("a", 2023, 4, 40),
		scoredRow("a", 2023, 5, 50),
		scoredRow("a", 2023, 6, 60),
	)
	NewBuilder().Attach(table)

	wantTarget(t, table.Rows[0], 35) // mean(20, 30, 40, 50)
	wantTarget(t, table.Rows[1], 45) // mean(30, 40, 50, 60)
	wantTarget(t, table.Rows[4], 60) // only week 6 remains
}

func TestAttach_CalendarWindowNotRowWindow(t *testing.T) {
	// A bye at week 3 shrinks the sample; the horizon stays at week+4.
	table := tableOf(
		scoredRow("a", 2023, 1, 10),
		scoredRow("a", 2023, 2, 20),
		scoredRow("a", 2023, 4, 40),
		scoredRow("a", 2023, 5, 50),
		scoredRow("a", 2023, 7, 70),
	)
	NewBuilder().Attach(table)

	// Week 1 sees weeks 2-5: mean(20, 40, 50). Week 7 is out of the horizon.
	wantTarget(t, table.Rows[0], (20.0+40+50)/3)
	// Week 2 sees weeks 3-6: mean(40, 50).
	wantTarget(t, table.Rows[1], 45)
}

func TestAttach_NoFutureWeeksIsNull(t *testing.T) {
	table := tableOf(
		scoredRow("a", 2023, 17, 25),
		scoredRow("a", 2023, 18, 30),
	)
	NewBuilder().Attach(table)

	if table.Rows[1].Feature(Column) != nil {
		t.Error("final week has no future sample, target must be null")
	}
	// Explicit null, not merely absent.
	found := false
	for _, n := range table.Rows[1].FeatureNames() {
		if n == Column {
			found = true
		}
	}
	if !found {
		t.Error("target column must be set explicitly null, not omitted")
	}
}

func TestAttach_WindowsStayInGroup(t *testing.T) {
	table := tableOf(
		scoredRow("a", 2023, 18, 10),
		scoredRow("a", 2024, 1, 99), // next season, must not leak backward
		scoredRow("b", 2023, 18, 50),
	)
	NewBuilder().Attach(table)

	for _, row := range table.Rows {
		if row.Week == 18 && row.Feature(Column) != nil {
			t.Errorf("player %s week 18 target = %v, want null (no same-season future)", row.GsisID, *row.Feature(Column))
		}
	}
}
