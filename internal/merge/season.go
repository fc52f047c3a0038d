package merge

// RegularSeasonWeeks returns the number of regular-season weeks for a season
// year. The league moved from a 16-game/17-week schedule to 17 games and 18
// weeks in 2021; before the 1990 bye-week expansion there were 16 weeks.
func RegularSeasonWeeks(season int) int {
	switch {
	case season >= 2021:
		return 18
	case season >= 1990:
		return 17
	default:
		return 16
	}
}

// inRegularSeason reports whether (season, week) falls inside the regular
// season for that year.
func inRegularSeason(season, week int) bool {
	return week >= 1 && week <= RegularSeasonWeeks(season)
}
