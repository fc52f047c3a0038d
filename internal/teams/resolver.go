// Package teams maps external team labels onto canonical short codes.
// External defensive stat tables key rows by full team name ("Green Bay
// Packers") or by nickname fragment ("Packers"); the canonical roster and
// schedule data use short codes ("GB").
package teams

import "strings"

// fullNameToAbbr is the canonical 32-team mapping.
var fullNameToAbbr = map[string]string{
	"Arizona Cardinals":    "ARI",
	"Atlanta Falcons":      "ATL",
	"Baltimore Ravens":     "BAL",
	"Buffalo Bills":        "BUF",
	"Carolina Panthers":    "CAR",
	"Chicago Bears":        "CHI",
	"Cincinnati Bengals":   "CIN",
	"Cleveland Browns":     "CLE",
	"Dallas Cowboys":       "DAL",
	"Denver Broncos":       "DEN",
	"Detroit Lions":        "DET",
	"Green Bay Packers":    "GB",
	"Houston Texans":       "HOU",
	"Indianapolis Colts":   "IND",
	"Jacksonville Jaguars": "JAX",
	"Kansas City Chiefs":   "KC",
	"Las Vegas Raiders":    "LV",
	"Los Angeles Chargers": "LAC",
	"Los Angeles Rams":     "LA",
	"Miami Dolphins":       "MIA",
	"Minnesota Vikings":    "MIN",
	"New England Patriots": "NE",
	"New Orleans Saints":   "NO",
	"New York Giants":      "NYG",
	"New York Jets":        "NYJ",
	"Philadelphia Eagles":  "PHI",
	"Pittsburgh Steelers":  "PIT",
	"San Francisco 49ers":  "SF",
	"Seattle Seahawks":     "SEA",
	"Tampa Bay Buccaneers": "TB",
	"Tennessee Titans":     "TEN",
	"Washington Commanders": "WAS",
}

// nicknameToAbbr is derived from the last word of each full name.
// Nicknames are unique across the league, so the derivation is lossless.
var nicknameToAbbr = func() map[string]string {
	m := make(map[string]string, len(fullNameToAbbr))
	for full, abbr := range fullNameToAbbr {
		parts := strings.Fields(full)
		m[parts[len(parts)-1]] = abbr
	}
	return m
}()

// Abbreviation resolves a full team name to its short code.
func Abbreviation(fullName string) (string, bool) {
	abbr, ok := fullNameToAbbr[strings.TrimSpace(fullName)]
	return abbr, ok
}

// AbbreviationFromNickname resolves a team nickname ("Jaguars") to its short
// code. Unknown labels (including upstream summary rows like "League Average")
// resolve to ok=false and are dropped by callers, never raised as errors.
func AbbreviationFromNickname(nickname string) (string, bool) {
	abbr, ok := nicknameToAbbr[strings.TrimSpace(nickname)]
	return abbr, ok
}

// Count returns the number of canonical teams.
func Count() int { return len(fullNameToAbbr) }
