package domain

// Raw weekly source tables as produced by the external data-provider
// extractors. Column selection (the per-source allow-list) happens at load
// time: each row type carries only the columns the merger consumes.

// RosterRow is one player-week roster entry.
type RosterRow struct {
	Season      int
	Week        int
	Team        string
	Position    string
	FullName    string
	GsisID      string
	Height      *float64
	Weight      *float64
	YearsExp    *float64
	DraftNumber *float64
}

// ScheduleRow is one scheduled game. SpreadLine is signed from the home
// team's perspective (negative = home favored).
type ScheduleRow struct {
	Season     int
	Week       int
	HomeTeam   string
	AwayTeam   string
	Total      *float64
	SpreadLine *float64
	Roof       string
	Surface    string
	Temp       *float64
	Wind       *float64
}

// SnapCountRow is one player-week snap participation entry, keyed by player
// name rather than gsis_id upstream.
type SnapCountRow struct {
	Season       int
	Week         int
	Player       string
	Position     string
	Team         string
	Opponent     string
	OffenseSnaps *float64
	OffensePct   *float64
}

// TrackingRow is one player-week of advanced tracking stats.
type TrackingRow struct {
	Season                      int
	Week                        int
	PlayerGsisID                string
	AvgTimeToThrow              *float64
	AvgIntendedAirYards         *float64
	Aggressiveness              *float64
	AvgAirYardsToSticks         *float64
	CompletionPctAboveExpected  *float64
	MaxAirDistance              *float64
	Efficiency                  *float64
	PctAttemptsEightDefenders   *float64
	RushYardsOverExpectedPerAtt *float64
	AvgCushion                  *float64
	AvgSeparation               *float64
	PctShareIntendedAirYards    *float64
	CatchPercentage             *float64
	AvgYacAboveExpectation      *float64
}

// OpportunityRow is one player-week of play-level opportunity stats.
type OpportunityRow struct {
	Season           int
	Week             int
	PlayerID         string
	PassAttempt      *float64
	RecAttempt       *float64
	RushAttempt      *float64
	PassAirYards     *float64
	RecAirYards      *float64
	PassCompletions  *float64
	Receptions       *float64
	PassYardsGained  *float64
	RecYardsGained   *float64
	RushYardsGained  *float64
	PassTouchdown    *float64
	RecTouchdown     *float64
	RushTouchdown    *float64
	PassInterception *float64
	RecFumbleLost    *float64
	RushFumbleLost   *float64
	PassAttemptTeam  *float64
	RecAttemptTeam   *float64
	RushAttemptTeam  *float64
}

// RawTables is the named mapping of source tables the merger consumes.
// A nil slice means the table was absent from the run input, which is a fatal
// merge error; an empty non-nil slice is a present-but-empty table and merges
// to all-null columns.
type RawTables struct {
	RostersWeekly []*RosterRow
	Schedules     []*ScheduleRow
	SnapCounts    []*SnapCountRow
	TrackingStats []*TrackingRow
	Opportunity   []*OpportunityRow
}
