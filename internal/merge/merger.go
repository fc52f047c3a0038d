// Package merge joins the weekly raw source tables into one player-week
// table. All stat joins are left joins keyed by player identity and
// (season, week): missing upstream data produces null columns, never dropped
// rows. The only row filter is the regular-season week window.
package merge

import (
	"errors"
	"fmt"

	"nfl-forecast-lab/internal/domain"
)

// ErrMissingSourceTable is returned when a required raw table is absent from
// the merge input. Fatal: the pipeline run aborts naming the table.
var ErrMissingSourceTable = errors.New("required source table missing")

type seasonWeek struct {
	season int
	week   int
}

type playerKey struct {
	id string
	seasonWeek
}

type nameKey struct {
	team     string
	position string
	player   string
	seasonWeek
}

type teamKey struct {
	team string
	seasonWeek
}

// Merge builds the player-week table from the five weekly source tables.
// Roster rows outside the season's regular-season week window are dropped;
// everything else survives with null columns where a source had no match.
func Merge(raw *domain.RawTables) ([]*domain.PlayerWeek, error) {
	if err := validate(raw); err != nil {
		return nil, err
	}

	tracking := make(map[playerKey]*domain.TrackingRow, len(raw.TrackingStats))
	for _, t := range raw.TrackingStats {
		tracking[playerKey{t.PlayerGsisID, seasonWeek{t.Season, t.Week}}] = t
	}

	opportunity := make(map[playerKey]*domain.OpportunityRow, len(raw.Opportunity))
	for _, o := range raw.Opportunity {
		opportunity[playerKey{o.PlayerID, seasonWeek{o.Season, o.Week}}] = o
	}

	snaps := make(map[nameKey]*domain.SnapCountRow, len(raw.SnapCounts))
	for _, s := range raw.SnapCounts {
		snaps[nameKey{s.Team, s.Position, s.Player, seasonWeek{s.Season, s.Week}}] = s
	}

	homeGames := make(map[teamKey]*domain.ScheduleRow, len(raw.Schedules))
	awayGames := make(map[teamKey]*domain.ScheduleRow, len(raw.Schedules))
	for _, g := range raw.Schedules {
		sw := seasonWeek{g.Season, g.Week}
		homeGames[teamKey{g.HomeTeam, sw}] = g
		awayGames[teamKey{g.AwayTeam, sw}] = g
	}

	merged := make([]*domain.PlayerWeek, 0, len(raw.RostersWeekly))
	for _, r := range raw.RostersWeekly {
		if !inRegularSeason(r.Season, r.Week) {
			continue
		}

		pw := &domain.PlayerWeek{
			GsisID:      r.GsisID,
			FullName:    r.FullName,
			Team:        r.Team,
			Position:    domain.Position(r.Position),
			Season:      r.Season,
			Week:        r.Week,
			Height:      domain.CloneFloat(r.Height),
			Weight:      domain.CloneFloat(r.Weight),
			YearsExp:    domain.CloneFloat(r.YearsExp),
			DraftNumber: domain.CloneFloat(r.DraftNumber),
		}
		sw := seasonWeek{r.Season, r.Week}

		if t, ok := tracking[playerKey{r.GsisID, sw}]; ok {
			joinTracking(pw, t)
		}
		if o, ok := opportunity[playerKey{r.GsisID, sw}]; ok {
			joinOpportunity(pw, o)
		}
		if s, ok := snaps[nameKey{r.Team, r.Position, r.FullName, sw}]; ok {
			pw.Opponent = s.Opponent
			pw.OffenseSnaps = domain.CloneFloat(s.OffenseSnaps)
			pw.OffensePct = domain.CloneFloat(s.OffensePct)
		}

		// Schedule is joined twice, once with the player's team as home and
		// once as away; the home-side match takes precedence and the
		// away-side match fills whatever the home side left null.
		if g, ok := homeGames[teamKey{r.Team, sw}]; ok {
			joinSchedule(pw, g)
		}
		if g, ok := awayGames[teamKey{r.Team, sw}]; ok {
			joinSchedule(pw, g)
		}
		if pw.Opponent == "" {
			pw.Opponent = opponentFromSchedule(pw)
		}

		merged = append(merged, pw)
	}
	return merged, nil
}

func validate(raw *domain.RawTables) error {
	required := []struct {
		name   string
		absent bool
	}{
		{"rosters_weekly", raw.RostersWeekly == nil},
		{"schedules", raw.Schedules == nil},
		{"snap_counts", raw.SnapCounts == nil},
		{"tracking_stats", raw.TrackingStats == nil},
		{"opportunity", raw.Opportunity == nil},
	}
	for _, t := range required {
		if t.absent {
			return fmt.Errorf("merge: %w: %s", ErrMissingSourceTable, t.name)
		}
	}
	return nil
}

func joinTracking(pw *domain.PlayerWeek, t *domain.TrackingRow) {
	pw.AvgTimeToThrow = domain.CloneFloat(t.AvgTimeToThrow)
	pw.AvgIntendedAirYards = domain.CloneFloat(t.AvgIntendedAirYards)
	pw.Aggressiveness = domain.CloneFloat(t.Aggressiveness)
	pw.AvgAirYardsToSticks = domain.CloneFloat(t.AvgAirYardsToSticks)
	pw.CompletionPctAboveExpected = domain.CloneFloat(t.CompletionPctAboveExpected)
	pw.MaxAirDistance = domain.CloneFloat(t.MaxAirDistance)
	pw.Efficiency = domain.CloneFloat(t.Efficiency)
	pw.PctAttemptsEightDefenders = domain.CloneFloat(t.PctAttemptsEightDefenders)
	pw.RushYardsOverExpectedPerAtt = domain.CloneFloat(t.RushYardsOverExpectedPerAtt)
	pw.AvgCushion = domain.CloneFloat(t.AvgCushion)
	pw.AvgSeparation = domain.CloneFloat(t.AvgSeparation)
	pw.PctShareIntendedAirYards = domain.CloneFloat(t.PctShareIntendedAirYards)
	pw.CatchPercentage = domain.CloneFloat(t.CatchPercentage)
	pw.AvgYacAboveExpectation = domain.CloneFloat(t.AvgYacAboveExpectation)
}

func joinOpportunity(pw *domain.PlayerWeek, o *domain.OpportunityRow) {
	pw.PassAttempt = domain.CloneFloat(o.PassAttempt)
	pw.RecAttempt = domain.CloneFloat(o.RecAttempt)
	pw.RushAttempt = domain.CloneFloat(o.RushAttempt)
	pw.PassAirYards = domain.CloneFloat(o.PassAirYards)
	pw.RecAirYards = domain.CloneFloat(o.RecAirYards)
	pw.PassCompletions = domain.CloneFloat(o.PassCompletions)
	pw.Receptions = domain.CloneFloat(o.Receptions)
	pw.PassYardsGained = domain.CloneFloat(o.PassYardsGained)
	pw.RecYardsGained = domain.CloneFloat(o.RecYardsGained)
	pw.RushYardsGained = domain.CloneFloat(o.RushYardsGained)
	pw.PassTouchdown = domain.CloneFloat(o.PassTouchdown)
	pw.RecTouchdown = domain.CloneFloat(o.RecTouchdown)
	pw.RushTouchdown = domain.CloneFloat(o.RushTouchdown)
	pw.PassInterception = domain.CloneFloat(o.PassInterception)
	pw.RecFumbleLost = domain.CloneFloat(o.RecFumbleLost)
	pw.RushFumbleLost = domain.CloneFloat(o.RushFumbleLost)
	pw.PassAttemptTeam = domain.CloneFloat(o.PassAttemptTeam)
	pw.RecAttemptTeam = domain.CloneFloat(o.RecAttemptTeam)
	pw.RushAttemptTeam = domain.CloneFloat(o.RushAttemptTeam)
}

// joinSchedule fills schedule context, preferring values already set by an
// earlier (home-side) match.
func joinSchedule(pw *domain.PlayerWeek, g *domain.ScheduleRow) {
	if pw.HomeTeam == "" {
		pw.HomeTeam = g.HomeTeam
	}
	if pw.AwayTeam == "" {
		pw.AwayTeam = g.AwayTeam
	}
	if pw.Total == nil {
		pw.Total = domain.CloneFloat(g.Total)
	}
	if pw.SpreadLine == nil {
		pw.SpreadLine = domain.CloneFloat(g.SpreadLine)
	}
	if pw.Roof == "" {
		pw.Roof = g.Roof
	}
	if pw.Surface == "" {
		pw.Surface = g.Surface
	}
	if pw.Temp == nil {
		pw.Temp = domain.CloneFloat(g.Temp)
	}
	if pw.Wind == nil {
		pw.Wind = domain.CloneFloat(g.Wind)
	}
}

func opponentFromSchedule(pw *domain.PlayerWeek) string {
	switch pw.Team {
	case pw.HomeTeam:
		return pw.AwayTeam
	case pw.AwayTeam:
		return pw.HomeTeam
	}
	return ""
}
