package pipeline

import (
	"context"
	"io"
	"log"
	"testing"

	"nfl-forecast-lab/internal/domain"
	"nfl-forecast-lab/internal/storage/memory"
	"nfl-forecast-lab/internal/target"
)

func fptr(v float64) *float64 { return &v }

// syntheticRaw builds a two-season raw dataset with one player per position.
func syntheticRaw() *domain.RawTables {
	raw := &domain.RawTables{
		RostersWeekly: []*domain.RosterRow{},
		Schedules:     []*domain.ScheduleRow{},
		SnapCounts:    []*domain.SnapCountRow{},
		TrackingStats: []*domain.TrackingRow{},
		Opportunity:   []*domain.OpportunityRow{},
	}

	players := map[domain.Position]string{
		domain.PositionQB: "00-00000qb",
		domain.PositionRB: "00-00000rb",
		domain.PositionWR: "00-00000wr",
		domain.PositionTE: "00-00000te",
	}
	for _, season := range []int{2022, 2023} {
		for week := 1; week <= 6; week++ {
			for pos, gsis := range players {
				raw.RostersWeekly = append(raw.RostersWeekly, &domain.RosterRow{
					Season:      season,
					Week:        week,
					Team:        "KC",
					Position:    string(pos),
					FullName:    "Player " + string(pos),
					GsisID:      gsis,
					YearsExp:    fptr(3),
					DraftNumber: fptr(20),
				})
				raw.Opportunity = append(raw.Opportunity, &domain.OpportunityRow{
					Season:          season,
					Week:            week,
					PlayerID:        gsis,
					PassAttempt:     fptr(30),
					PassYardsGained: fptr(250),
					RushAttempt:     fptr(10),
					RushYardsGained: fptr(45),
					RecAttempt:      fptr(6),
					Receptions:      fptr(4),
					RecYardsGained:  fptr(50),
				})
			}
			raw.Schedules = append(raw.Schedules, &domain.ScheduleRow{
				Season:     season,
				Week:       week,
				HomeTeam:   "KC",
				AwayTeam:   "DEN",
				Total:      fptr(45.5),
				SpreadLine: fptr(-3.5),
			})
		}
	}
	return raw
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestRunner_BuildsAllPositions(t *testing.T) {
	runner := NewRunner(Options{Season: 2023, Week: 4, Logger: quietLogger()})

	result, err := runner.Run(context.Background(), "run-1", syntheticRaw())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.RunUUID != "run-1" || result.Season != 2023 || result.Week != 4 {
		t.Errorf("run identity not carried: %+v", result)
	}
	if result.MergedRows != 48 {
		t.Errorf("merged rows = %d, want 48", result.MergedRows)
	}
	if len(result.Positions) != len(domain.AllPositions) {
		t.Fatalf("got %d positions, want %d", len(result.Positions), len(domain.AllPositions))
	}

	for pos, pr := range result.Positions {
		if pr.Position != pos {
			t.Errorf("position result mislabeled: %s vs %s", pr.Position, pos)
		}
		// One player per position, 6 weeks over 2 seasons.
		if len(pr.Full.Rows) != 12 {
			t.Errorf("%s: built %d rows, want 12", pos, len(pr.Full.Rows))
		}
		// Eligible: all of 2022 plus 2023 weeks 1-3.
		if len(pr.Eligible.Rows) != 9 {
			t.Errorf("%s: %d eligible rows, want 9", pos, len(pr.Eligible.Rows))
		}
		for _, row := range pr.Eligible.Rows {
			if row.Season == 2023 && row.Week >= 4 {
				t.Errorf("%s: row week %d leaked past the marker", pos, row.Week)
			}
		}
	}
}

func TestRunner_AttachesTargets(t *testing.T) {
	runner := NewRunner(Options{Season: 2023, Week: 4, Logger: quietLogger()})

	result, err := runner.Run(context.Background(), "run-1", syntheticRaw())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	qb := result.Positions[domain.PositionQB].Full
	sawTarget := false
	for _, row := range qb.Rows {
		if row.Feature(target.Column) != nil {
			sawTarget = true
		}
	}
	if !sawTarget {
		t.Error("no row carries a forecast target")
	}
}

func TestRunner_ArchivesWhenStoreConfigured(t *testing.T) {
	store := memory.NewFeatureStore()
	runner := NewRunner(Options{
		Season:       2023,
		Week:         4,
		FeatureStore: store,
		Logger:       quietLogger(),
	})

	if _, err := runner.Run(context.Background(), "run-1", syntheticRaw()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	cells, err := store.GetByRun(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("GetByRun: %v", err)
	}
	if len(cells) == 0 {
		t.Fatal("no archived cells for the run")
	}

	player, err := store.GetByPlayer(context.Background(), "run-1", "00-00000qb")
	if err != nil {
		t.Fatalf("GetByPlayer: %v", err)
	}
	if len(player) == 0 {
		t.Error("QB rows missing from the archive")
	}
}

func TestRunner_MissingTableFailsRun(t *testing.T) {
	raw := syntheticRaw()
	raw.SnapCounts = nil

	runner := NewRunner(Options{Season: 2023, Week: 4, Logger: quietLogger()})
	if _, err := runner.Run(context.Background(), "run-1", raw); err == nil {
		t.Error("a missing required table must fail the run")
	}
}
