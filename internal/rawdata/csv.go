// Package rawdata loads the weekly source tables the pipeline consumes: CSV
// extracts from the stat provider and the scraped defensive ranking pages.
// Loaders are lenient at the row level: unparsable season/week values drop
// the row, missing optional columns load as null. Whole-table absence is
// left to the merger, which is the enforcement point for required tables.
package rawdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// csvTable is a parsed CSV file with header-name column access.
type csvTable struct {
	header map[string]int
	rows   [][]string
}

func readCSVFile(path string) (*csvTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readCSV(f)
}

func readCSV(r io.Reader) (*csvTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv: no header row")
	}

	t := &csvTable{header: make(map[string]int, len(records[0]))}
	for i, name := range records[0] {
		t.header[strings.TrimSpace(name)] = i
	}
	t.rows = records[1:]
	return t, nil
}

// field returns the named column of a row, or "" when the column is absent
// or the row is short.
func (t *csvTable) field(row []string, name string) string {
	idx, ok := t.header[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (t *csvTable) floatField(row []string, name string) *float64 {
	return parseNullableFloat(t.field(row, name))
}

// intField parses a required integer column; ok is false for empty or
// non-numeric values, which callers treat as a dropped row.
func (t *csvTable) intField(row []string, name string) (int, bool) {
	s := t.field(row, name)
	if s == "" {
		return 0, false
	}
	// Provider extracts sometimes write integers as floats ("2023.0").
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

func parseNullableFloat(s string) *float64 {
	if s == "" || strings.EqualFold(s, "na") || strings.EqualFold(s, "nan") {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
