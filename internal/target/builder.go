// Package target attaches the forecast target to a derived feature table:
// each row's mean fantasy score over the next four calendar weeks of the same
// season. The target is future information and lives outside the published
// feature list; rows with no future weeks carry a null target and are
// excluded from training by the eligibility filter.
package target

import (
	"nfl-forecast-lab/internal/domain"
)

const horizonWeeks = 4

// Column is the name of the forecast-target column.
const Column = "fantasy_next_4wk_avg"

// Builder attaches the next-4-week fantasy target to feature tables.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// Attach writes the target column on every row of the table, in place. The
// window runs over calendar weeks w+1 through w+4, not over the next four
// available rows, so a bye or missed game shrinks the sample rather than
// extending the horizon. The table must already be sorted by
// (gsis_id, season, week).
func (b *Builder) Attach(table *domain.FeatureTable) {
	_, groups := table.GroupsByPlayerSeason()
	for _, indices := range groups {
		b.attachGroup(table, indices)
	}
}

func (b *Builder) attachGroup(table *domain.FeatureTable, indices []int) {
	for i, idx := range indices {
		row := table.Rows[idx]
		maxWeek := row.Week + horizonWeeks

		sum, count := 0.0, 0
		for _, futureIdx := range indices[i+1:] {
			future := table.Rows[futureIdx]
			if future.Week > maxWeek {
				break
			}
			if fp := future.Feature("fantasy_points"); fp != nil {
				sum += *fp
				count++
			}
		}

		if count == 0 {
			row.SetNull(Column)
			continue
		}
		row.Set(Column, sum/float64(count))
	}
}
