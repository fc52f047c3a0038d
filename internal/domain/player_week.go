package domain

// PlayerWeek is one player on one team in one week of one season, after the
// weekly source tables have been merged. Identity key: (GsisID, Season, Week).
// Numeric columns are nullable: nil means the upstream table had no value,
// which the feature engine distinguishes from an explicit zero.
type PlayerWeek struct {
	// Identity
	GsisID   string
	FullName string
	Team     string
	Position Position
	Season   int
	Week     int

	// Roster profile
	Height      *float64
	Weight      *float64
	YearsExp    *float64
	DraftNumber *float64

	// Schedule context. Spread is signed from the home team's perspective.
	HomeTeam   string
	AwayTeam   string
	Total      *float64
	SpreadLine *float64
	Roof       string
	Surface    string
	Temp       *float64
	Wind       *float64

	// Snap counts
	Opponent     string
	OffenseSnaps *float64
	OffensePct   *float64

	// Tracking (next-gen) stats
	AvgTimeToThrow             *float64
	AvgIntendedAirYards        *float64
	Aggressiveness             *float64
	AvgAirYardsToSticks        *float64
	CompletionPctAboveExpected *float64
	MaxAirDistance             *float64
	Efficiency                 *float64
	PctAttemptsEightDefenders  *float64
	RushYardsOverExpectedPerAtt *float64
	AvgCushion                 *float64
	AvgSeparation              *float64
	PctShareIntendedAirYards   *float64
	CatchPercentage            *float64
	AvgYacAboveExpectation     *float64

	// Play-level opportunity
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

// IsHome reports whether the player's team is the scheduled home team.
// Valid only after the schedule join has populated HomeTeam/AwayTeam.
func (pw *PlayerWeek) IsHome() bool {
	return pw.Team != "" && pw.Team == pw.HomeTeam
}

// HasIdentifiers reports whether all identity columns are populated.
func (pw *PlayerWeek) HasIdentifiers() bool {
	return pw.GsisID != "" && pw.FullName != "" && pw.Team != "" &&
		pw.Position != "" && pw.Season > 0 && pw.Week > 0
}

// Float returns a pointer to a copy of v. Column-builder helper.
func Float(v float64) *float64 { return &v }

// CloneFloat copies a nullable column value.
func CloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
