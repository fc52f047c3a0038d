package domain

// ArchivedFeature is one feature cell in the long-format archive: a derived
// table flattens to one record per (player-week, column). Null cells are
// archived too; the target column is null near season end and the archive
// keeps the distinction from a computed zero.
type ArchivedFeature struct {
	RunUUID  string
	Position Position
	GsisID   string
	Season   int
	Week     int
	Name     string
	Value    *float64
}

// ArchiveRows flattens a feature table into archive records for one run.
// The identity columns become keys; every feature column becomes a record.
func ArchiveRows(runUUID string, table *FeatureTable) []*ArchivedFeature {
	var out []*ArchivedFeature
	for _, row := range table.Rows {
		for _, name := range row.FeatureNames() {
			out = append(out, &ArchivedFeature{
				RunUUID:  runUUID,
				Position: table.Position,
				GsisID:   row.GsisID,
				Season:   row.Season,
				Week:     row.Week,
				Name:     name,
				Value:    row.Feature(name),
			})
		}
	}
	return out
}
