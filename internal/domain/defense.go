package domain

// TeamDefenseStat is one raw row of an external defensive box-score table.
// Team holds the upstream label (full team name, or a "<POS> vs <Nickname>"
// label for the positional allowance pages); Values is keyed by the upstream
// column header. Non-numeric cells load as nil.
type TeamDefenseStat struct {
	Team   string
	Values map[string]*float64
}

// Value returns the named column, or nil when absent or non-numeric.
func (s *TeamDefenseStat) Value(col string) *float64 {
	return CloneFloat(s.Values[col])
}

// DefenseTable is the normalized per-position opponent-defense table.
// Teams maps canonical team abbreviation → column name → value, dense over
// Columns. Neutral carries the per-column sentinel used when a feature row's
// opponent is missing from the table.
type DefenseTable struct {
	Position Position
	Columns  []string
	Teams    map[string]map[string]float64
	Neutral  map[string]float64
}
