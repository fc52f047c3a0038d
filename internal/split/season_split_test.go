package split

import (
	"errors"
	"testing"

	"nfl-forecast-lab/internal/domain"
)

func TestSplit_ExplicitValidationSeason(t *testing.T) {
	table := featureTable(
		featureRow("a", 2021, 1),
		featureRow("a", 2022, 1),
		featureRow("a", 2022, 2),
		featureRow("a", 2023, 1), // later than the validation season, excluded
	)

	splitter := &TimeBasedSplitter{ValidationSeason: 2022}
	train, val, err := splitter.Split(table)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	if len(train.Rows) != 1 || train.Rows[0].Season != 2021 {
		t.Errorf("train = %d rows, want only the 2021 row", len(train.Rows))
	}
	if len(val.Rows) != 2 {
		t.Errorf("validation = %d rows, want the two 2022 rows", len(val.Rows))
	}
	for _, row := range append(train.Rows, val.Rows...) {
		if row.Season > 2022 {
			t.Error("seasons after the validation season must be excluded from both sides")
		}
	}
}

func TestSplit_DefaultsToMaxSeason(t *testing.T) {
	table := featureTable(
		featureRow("a", 2022, 1),
		featureRow("a", 2023, 1),
	)

	train, val, err := (&TimeBasedSplitter{}).Split(table)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(train.Rows) != 1 || train.Rows[0].Season != 2022 {
		t.Error("train side should hold the earlier season")
	}
	if len(val.Rows) != 1 || val.Rows[0].Season != 2023 {
		t.Error("validation side should hold the max season")
	}
}

func TestSplit_EmptyPartitionIsFatal(t *testing.T) {
	tests := []struct {
		name  string
		table *domain.FeatureTable
	}{
		{"single season", featureTable(featureRow("a", 2023, 1), featureRow("a", 2023, 2))},
		{"empty table", featureTable()},
		{"no validation rows", featureTable(featureRow("a", 2021, 1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splitter := &TimeBasedSplitter{ValidationSeason: 2023}
			if tt.name == "single season" {
				splitter = &TimeBasedSplitter{}
			}
			_, _, err := splitter.Split(tt.table)
			if !errors.Is(err, ErrEmptySplitPartition) {
				t.Errorf("got %v, want ErrEmptySplitPartition", err)
			}
		})
	}
}

func TestSplit_ReturnsClones(t *testing.T) {
	src := featureRow("a", 2022, 1)
	table := featureTable(src, featureRow("a", 2023, 1))

	train, _, err := (&TimeBasedSplitter{}).Split(table)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	train.Rows[0].Set("fantasy_points", 999)

	if got := src.Feature("fantasy_points"); got == nil || *got != 10 {
		t.Error("Split must clone rows, not alias the input table")
	}
}
