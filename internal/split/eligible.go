// Package split holds the two temporal gates between feature derivation and
// model fitting: the eligible-window selector, which cuts a feature table to
// rows safe to use as of a (season, week) marker, and the chronological
// train/validation splitter.
package split

import (
	"nfl-forecast-lab/internal/domain"
)

// EligibleWindowSelector restricts a feature table to rows that existed, and
// were complete, as of a current (season, week) marker. It is the last
// checkpoint before training or reporting: rows from the current week onward
// and rows with nulls in identifier or feature columns never pass it.
type EligibleWindowSelector struct {
	Season int
	Week   int
}

func NewEligibleWindowSelector(season, week int) *EligibleWindowSelector {
	return &EligibleWindowSelector{Season: season, Week: week}
}

// Select returns a new table holding the rows safe to use at the marker:
// every row from strictly earlier seasons, plus current-season rows with week
// strictly before the current week. A current week of 1 or less yields
// prior-season rows only. Rows with a null identifier or a null published
// feature are dropped, not imputed.
func (s *EligibleWindowSelector) Select(table *domain.FeatureTable) *domain.FeatureTable {
	out := &domain.FeatureTable{
		Position:    table.Position,
		FeatureList: append([]string(nil), table.FeatureList...),
	}
	for _, row := range table.Rows {
		if !s.inWindow(row) {
			continue
		}
		if !rowComplete(row, out.FeatureList) {
			continue
		}
		out.Rows = append(out.Rows, row.Clone())
	}
	return out
}

func (s *EligibleWindowSelector) inWindow(row *domain.FeatureRow) bool {
	if row.Season < s.Season {
		return true
	}
	if row.Season > s.Season || s.Week <= 1 {
		return false
	}
	return row.Week < s.Week
}

func rowComplete(row *domain.FeatureRow, featureList []string) bool {
	if !row.HasIdentifiers() {
		return false
	}
	for _, col := range featureList {
		if !row.HasFeature(col) {
			return false
		}
	}
	return true
}
