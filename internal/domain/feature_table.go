package domain

import "sort"

// FeatureRow is a PlayerWeek plus the named feature columns derived from it.
// A feature absent from the map (or mapped to nil) is null; the engine's final
// dense-fill pass guarantees every published feature is non-nil in its output.
type FeatureRow struct {
	PlayerWeek

	features map[string]*float64
}

// NewFeatureRow wraps a PlayerWeek. The PlayerWeek is copied by value; the
// caller's record is never mutated.
func NewFeatureRow(pw PlayerWeek) *FeatureRow {
	return &FeatureRow{PlayerWeek: pw, features: make(map[string]*float64)}
}

// Set stores a feature value.
func (r *FeatureRow) Set(name string, v float64) {
	r.features[name] = &v
}

// SetNull records a feature as explicitly undefined.
func (r *FeatureRow) SetNull(name string) {
	r.features[name] = nil
}

// SetNullable stores v, which may be nil.
func (r *FeatureRow) SetNullable(name string, v *float64) {
	r.features[name] = CloneFloat(v)
}

// Feature returns the feature value, or nil if null or never computed.
func (r *FeatureRow) Feature(name string) *float64 {
	return CloneFloat(r.features[name])
}

// FeatureOr returns the feature value, or def when null.
func (r *FeatureRow) FeatureOr(name string, def float64) float64 {
	if v := r.features[name]; v != nil {
		return *v
	}
	return def
}

// HasFeature reports whether the feature is present and non-null.
func (r *FeatureRow) HasFeature(name string) bool {
	return r.features[name] != nil
}

// FeatureNames returns every computed feature name, sorted, nulls included.
func (r *FeatureRow) FeatureNames() []string {
	names := make([]string, 0, len(r.features))
	for name := range r.features {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone deep-copies the row.
func (r *FeatureRow) Clone() *FeatureRow {
	c := &FeatureRow{PlayerWeek: r.PlayerWeek, features: make(map[string]*float64, len(r.features))}
	for k, v := range r.features {
		c.features[k] = CloneFloat(v)
	}
	return c
}

// FeatureTable is the derived per-position table handed to the model layer.
// FeatureList is the published column contract the trainer depends on by name.
type FeatureTable struct {
	Position    Position
	FeatureList []string
	Rows        []*FeatureRow
}

// Clone deep-copies the table.
func (t *FeatureTable) Clone() *FeatureTable {
	c := &FeatureTable{
		Position:    t.Position,
		FeatureList: append([]string(nil), t.FeatureList...),
		Rows:        make([]*FeatureRow, len(t.Rows)),
	}
	for i, r := range t.Rows {
		c.Rows[i] = r.Clone()
	}
	return c
}

// SortByPlayerSeasonWeek orders rows by (gsis_id, season, week) ascending.
// Rolling-window correctness depends on this order; it is a precondition of
// every grouped computation, not an optimization.
func (t *FeatureTable) SortByPlayerSeasonWeek() {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		a, b := t.Rows[i], t.Rows[j]
		if a.GsisID != b.GsisID {
			return a.GsisID < b.GsisID
		}
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		return a.Week < b.Week
	})
}

// GroupKey identifies one player-season group. Trailing windows never cross
// a GroupKey boundary.
type GroupKey struct {
	GsisID string
	Season int
}

// GroupsByPlayerSeason returns row indices grouped by (gsis_id, season), each
// group's indices in table order. Call SortByPlayerSeasonWeek first.
func (t *FeatureTable) GroupsByPlayerSeason() ([]GroupKey, map[GroupKey][]int) {
	var keys []GroupKey
	groups := make(map[GroupKey][]int)
	for i, r := range t.Rows {
		k := GroupKey{GsisID: r.GsisID, Season: r.Season}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], i)
	}
	return keys, groups
}
