package rawdata

import (
	"errors"
	"io/fs"
	"log"
	"path/filepath"

	"nfl-forecast-lab/internal/domain"
)

// Source table file names under the run's data directory.
const (
	RostersFile     = "rosters_weekly.csv"
	SchedulesFile   = "schedules.csv"
	SnapCountsFile  = "snap_counts.csv"
	TrackingFile    = "tracking_stats.csv"
	OpportunityFile = "opportunity.csv"
)

// Loader reads the five weekly source tables from a data directory.
type Loader struct {
	dataDir string
	logger  *log.Logger
}

func NewLoader(dataDir string, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{dataDir: dataDir, logger: logger}
}

// Load reads every source table present in the data directory. A missing
// file leaves that table nil; the merger decides which tables are required
// and fails the run there, so a loader can serve partial reads for tooling.
func (l *Loader) Load() (*domain.RawTables, error) {
	raw := &domain.RawTables{}

	if t, err := l.open(RostersFile); err != nil {
		return nil, err
	} else if t != nil {
		raw.RostersWeekly = l.loadRosters(t)
	}
	if t, err := l.open(SchedulesFile); err != nil {
		return nil, err
	} else if t != nil {
		raw.Schedules = l.loadSchedules(t)
	}
	if t, err := l.open(SnapCountsFile); err != nil {
		return nil, err
	} else if t != nil {
		raw.SnapCounts = l.loadSnapCounts(t)
	}
	if t, err := l.open(TrackingFile); err != nil {
		return nil, err
	} else if t != nil {
		raw.TrackingStats = l.loadTracking(t)
	}
	if t, err := l.open(OpportunityFile); err != nil {
		return nil, err
	} else if t != nil {
		raw.Opportunity = l.loadOpportunity(t)
	}

	return raw, nil
}

// open returns (nil, nil) for an absent file so the caller can distinguish
// "table not provided" from a parse failure.
func (l *Loader) open(name string) (*csvTable, error) {
	path := filepath.Join(l.dataDir, name)
	t, err := readCSVFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Printf("rawdata: %s not present, table skipped", name)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (l *Loader) loadRosters(t *csvTable) []*domain.RosterRow {
	out := make([]*domain.RosterRow, 0, len(t.rows))
	dropped := 0
	for _, row := range t.rows {
		season, ok1 := t.intField(row, "season")
		week, ok2 := t.intField(row, "week")
		if !ok1 || !ok2 {
			dropped++
			continue
		}
		out = append(out, &domain.RosterRow{
			Season:      season,
			Week:        week,
			Team:        t.field(row, "team"),
			Position:    t.field(row, "position"),
			FullName:    t.field(row, "full_name"),
			GsisID:      t.field(row, "gsis_id"),
			Height:      t.floatField(row, "height"),
			Weight:      t.floatField(row, "weight"),
			YearsExp:    t.floatField(row, "years_exp"),
			DraftNumber: t.floatField(row, "draft_number"),
		})
	}
	l.logTable(RostersFile, len(out), dropped)
	return out
}

func (l *Loader) loadSchedules(t *csvTable) []*domain.ScheduleRow {
	out := make([]*domain.ScheduleRow, 0, len(t.rows))
	dropped := 0
	for _, row := range t.rows {
		season, ok1 := t.intField(row, "season")
		week, ok2 := t.intField(row, "week")
		if !ok1 || !ok2 {
			dropped++
			continue
		}
		out = append(out, &domain.ScheduleRow{
			Season:     season,
			Week:       week,
			HomeTeam:   t.field(row, "home_team"),
			AwayTeam:   t.field(row, "away_team"),
			Total:      t.floatField(row, "total_line"),
			SpreadLine: t.floatField(row, "spread_line"),
			Roof:       t.field(row, "roof"),
			Surface:    t.field(row, "surface"),
			Temp:       t.floatField(row, "temp"),
			Wind:       t.floatField(row, "wind"),
		})
	}
	l.logTable(SchedulesFile, len(out), dropped)
	return out
}

func (l *Loader) loadSnapCounts(t *csvTable) []*domain.SnapCountRow {
	out := make([]*domain.SnapCountRow, 0, len(t.rows))
	dropped := 0
	for _, row := range t.rows {
		season, ok1 := t.intField(row, "season")
		week, ok2 := t.intField(row, "week")
		if !ok1 || !ok2 {
			dropped++
			continue
		}
		out = append(out, &domain.SnapCountRow{
			Season:       season,
			Week:         week,
			Player:       t.field(row, "player"),
			Position:     t.field(row, "position"),
			Team:         t.field(row, "team"),
			Opponent:     t.field(row, "opponent"),
			OffenseSnaps: t.floatField(row, "offense_snaps"),
			OffensePct:   t.floatField(row, "offense_pct"),
		})
	}
	l.logTable(SnapCountsFile, len(out), dropped)
	return out
}

func (l *Loader) loadTracking(t *csvTable) []*domain.TrackingRow {
	out := make([]*domain.TrackingRow, 0, len(t.rows))
	dropped := 0
	for _, row := range t.rows {
		season, ok1 := t.intField(row, "season")
		week, ok2 := t.intField(row, "week")
		if !ok1 || !ok2 {
			dropped++
			continue
		}
		out = append(out, &domain.TrackingRow{
			Season:                      season,
			Week:                        week,
			PlayerGsisID:                t.field(row, "player_gsis_id"),
			AvgTimeToThrow:              t.floatField(row, "avg_time_to_throw"),
			AvgIntendedAirYards:         t.floatField(row, "avg_intended_air_yards"),
			Aggressiveness:              t.floatField(row, "aggressiveness"),
			AvgAirYardsToSticks:         t.floatField(row, "avg_air_yards_to_sticks"),
			CompletionPctAboveExpected:  t.floatField(row, "completion_percentage_above_expectation"),
			MaxAirDistance:              t.floatField(row, "max_air_distance"),
			Efficiency:                  t.floatField(row, "efficiency"),
			PctAttemptsEightDefenders:   t.floatField(row, "percent_attempts_gte_eight_defenders"),
			RushYardsOverExpectedPerAtt: t.floatField(row, "rush_yards_over_expected_per_att"),
			AvgCushion:                  t.floatField(row, "avg_cushion"),
			AvgSeparation:               t.floatField(row, "avg_separation"),
			PctShareIntendedAirYards:    t.floatField(row, "percent_share_of_intended_air_yards"),
			CatchPercentage:             t.floatField(row, "catch_percentage"),
			AvgYacAboveExpectation:      t.floatField(row, "avg_yac_above_expectation"),
		})
	}
	l.logTable(TrackingFile, len(out), dropped)
	return out
}

func (l *Loader) loadOpportunity(t *csvTable) []*domain.OpportunityRow {
	out := make([]*domain.OpportunityRow, 0, len(t.rows))
	dropped := 0
	for _, row := range t.rows {
		season, ok1 := t.intField(row, "season")
		week, ok2 := t.intField(row, "week")
		if !ok1 || !ok2 {
			dropped++
			continue
		}
		out = append(out, &domain.OpportunityRow{
			Season:           season,
			Week:             week,
			PlayerID:         t.field(row, "player_id"),
			PassAttempt:      t.floatField(row, "pass_attempt"),
			RecAttempt:       t.floatField(row, "rec_attempt"),
			RushAttempt:      t.floatField(row, "rush_attempt"),
			PassAirYards:     t.floatField(row, "pass_air_yards"),
			RecAirYards:      t.floatField(row, "rec_air_yards"),
			PassCompletions:  t.floatField(row, "pass_completions"),
			Receptions:       t.floatField(row, "receptions"),
			PassYardsGained:  t.floatField(row, "pass_yards_gained"),
			RecYardsGained:   t.floatField(row, "rec_yards_gained"),
			RushYardsGained:  t.floatField(row, "rush_yards_gained"),
			PassTouchdown:    t.floatField(row, "pass_touchdown"),
			RecTouchdown:     t.floatField(row, "rec_touchdown"),
			RushTouchdown:    t.floatField(row, "rush_touchdown"),
			PassInterception: t.floatField(row, "pass_interception"),
			RecFumbleLost:    t.floatField(row, "rec_fumble_lost"),
			RushFumbleLost:   t.floatField(row, "rush_fumble_lost"),
			PassAttemptTeam:  t.floatField(row, "pass_attempt_team"),
			RecAttemptTeam:   t.floatField(row, "rec_attempt_team"),
			RushAttemptTeam:  t.floatField(row, "rush_attempt_team"),
		})
	}
	l.logTable(OpportunityFile, len(out), dropped)
	return out
}

func (l *Loader) logTable(name string, kept, dropped int) {
	if dropped > 0 {
		l.logger.Printf("rawdata: %s loaded %d rows, dropped %d with unparsable season/week", name, kept, dropped)
		return
	}
	l.logger.Printf("rawdata: %s loaded %d rows", name, kept)
}
