package rawdata

import (
	"strings"
	"testing"
)

const liveTablePage = `<html><body>
<table id="team_stats">
<thead>
<tr><th colspan="3">Totals</th></tr>
<tr><th>Rk</th><th>Tm</th><th>PA</th></tr>
</thead>
<tbody>
<tr><th>1</th><td>Kansas City Chiefs</td><td>294</td></tr>
<tr class="thead"><th>Rk</th><td>Tm</td><td>PA</td></tr>
<tr><th>2</th><td>Denver Broncos</td><td>413</td></tr>
</tbody>
</table>
</body></html>`

const commentedTablePage = `<html><body>
<div id="all_advanced_defense">
<!--
<table id="advanced_defense">
<thead><tr><th>Tm</th><th>Att</th><th>Prss%</th></tr></thead>
<tbody>
<tr><td>Kansas City Chiefs</td><td>550</td><td>24.1%</td></tr>
</tbody>
</table>
-->
</div>
</body></html>`

func TestExtractDefenseStats_LiveTable(t *testing.T) {
	stats, err := ExtractDefenseStats(strings.NewReader(liveTablePage), "team_stats", "Tm")
	if err != nil {
		t.Fatalf("ExtractDefenseStats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("got %d rows, want 2 (repeated header row skipped)", len(stats))
	}
	if stats[0].Team != "Kansas City Chiefs" {
		t.Errorf("team = %q", stats[0].Team)
	}
	if pa := stats[0].Value("PA"); pa == nil || *pa != 294 {
		t.Errorf("PA = %v, want 294", pa)
	}
}

func TestExtractDefenseStats_MultiLevelHeaderUsesLastRow(t *testing.T) {
	stats, err := ExtractDefenseStats(strings.NewReader(liveTablePage), "team_stats", "Tm")
	if err != nil {
		t.Fatal(err)
	}
	// The grouping row ("Totals") must not shadow the real header.
	if _, ok := stats[0].Values["Totals"]; ok {
		t.Error("grouping header row leaked into the value map")
	}
}

func TestExtractDefenseStats_CommentWrappedTable(t *testing.T) {
	stats, err := ExtractDefenseStats(strings.NewReader(commentedTablePage), "advanced_defense", "Tm")
	if err != nil {
		t.Fatalf("ExtractDefenseStats: %v", err)
	}
	if len(stats) != 1 || stats[0].Team != "Kansas City Chiefs" {
		t.Fatalf("comment-wrapped table not recovered: %+v", stats)
	}
	if prss := stats[0].Value("Prss%"); prss == nil || *prss != 24.1 {
		t.Errorf("percent suffix not trimmed: %v", prss)
	}
}

func TestExtractDefenseStats_TableNotFound(t *testing.T) {
	if _, err := ExtractDefenseStats(strings.NewReader(liveTablePage), "missing", "Tm"); err == nil {
		t.Error("missing table id must error")
	}
}

func TestExtractDefenseStats_MissingTeamColumn(t *testing.T) {
	if _, err := ExtractDefenseStats(strings.NewReader(liveTablePage), "team_stats", "Club"); err == nil {
		t.Error("missing team column must error")
	}
}
