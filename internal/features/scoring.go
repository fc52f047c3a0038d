package features

import "nfl-forecast-lab/internal/domain"

// Fantasy scoring weights. One scoring law shared by all four positions; the
// passing, rushing and receiving components contribute whenever the
// corresponding raw columns are non-zero for the player.
const (
	pointsPerPassYard = 0.04
	pointsPerRushYard = 0.1
	pointsPerRecYard  = 0.1
	pointsPerPassTD   = 4.0
	pointsPerRushTD   = 6.0
	pointsPerRecTD    = 6.0
	pointsPerReception = 1.0
	pointsPerInterception = -1.0
	pointsPerFumbleLost   = -2.0

	// Yardage milestone bonuses: +3 at 100 and again at 200 rushing or
	// receiving yards.
	milestoneBonus = 3.0
)

// FantasyPoints computes the week's fantasy score from zero-filled raw
// counting stats.
func FantasyPoints(pw *domain.PlayerWeek) float64 {
	passYds := valueOr(pw.PassYardsGained, 0)
	rushYds := valueOr(pw.RushYardsGained, 0)
	recYds := valueOr(pw.RecYardsGained, 0)

	score := pointsPerPassYard*passYds +
		pointsPerRushYard*rushYds +
		pointsPerRecYard*recYds +
		pointsPerPassTD*valueOr(pw.PassTouchdown, 0) +
		pointsPerRushTD*valueOr(pw.RushTouchdown, 0) +
		pointsPerRecTD*valueOr(pw.RecTouchdown, 0) +
		pointsPerReception*valueOr(pw.Receptions, 0) +
		pointsPerInterception*valueOr(pw.PassInterception, 0) +
		pointsPerFumbleLost*(valueOr(pw.RushFumbleLost, 0)+valueOr(pw.RecFumbleLost, 0))

	score += yardageBonus(rushYds) + yardageBonus(recYds)
	return score
}

func yardageBonus(yards float64) float64 {
	bonus := 0.0
	if yards >= 100 {
		bonus += milestoneBonus
	}
	if yards >= 200 {
		bonus += milestoneBonus
	}
	return bonus
}

// passingFantasy is the passing-only component used for the QB
// fantasy-per-attempt rate.
func passingFantasy(pw *domain.PlayerWeek) float64 {
	return pointsPerPassYard*valueOr(pw.PassYardsGained, 0) +
		pointsPerPassTD*valueOr(pw.PassTouchdown, 0) +
		pointsPerInterception*valueOr(pw.PassInterception, 0)
}
