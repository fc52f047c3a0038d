package rawdata

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"nfl-forecast-lab/internal/defense"
	"nfl-forecast-lab/internal/domain"
)

// Scraped defense page file names under the data directory, and the table
// each page carries.
const (
	DefenseTeamTotalsFile = "defense_team_totals.html"
	DefensePassingFile    = "defense_passing_advanced.html"
	DefenseVsRBFile       = "defense_vs_rb.html"
	DefenseVsWRFile       = "defense_vs_wr.html"
	DefenseVsTEFile       = "defense_vs_te.html"

	teamTotalsTableID = "team_stats"
	advancedTableID   = "advanced_defense"
	allowanceTableID  = "data"

	teamTotalsTeamColumn = "Tm"
	allowanceTeamColumn  = "Team"
)

// LoadDefense builds the per-position defense tables from the scraped pages
// in the data directory. A position whose pages are absent is left out of
// the map and its features degrade to nulls; QB needs both of its pages.
func (l *Loader) LoadDefense() (map[domain.Position]*domain.DefenseTable, error) {
	out := make(map[domain.Position]*domain.DefenseTable)

	totals, err := l.openDefensePage(DefenseTeamTotalsFile, teamTotalsTableID, teamTotalsTeamColumn)
	if err != nil {
		return nil, err
	}
	advanced, err := l.openDefensePage(DefensePassingFile, advancedTableID, teamTotalsTeamColumn)
	if err != nil {
		return nil, err
	}
	if totals != nil && advanced != nil {
		table, err := defense.AggregateQB(totals, advanced)
		if err != nil {
			return nil, fmt.Errorf("aggregate QB defense: %w", err)
		}
		out[domain.PositionQB] = table
	} else if totals != nil || advanced != nil {
		l.logger.Printf("rawdata: QB defense needs both %s and %s, skipping", DefenseTeamTotalsFile, DefensePassingFile)
	}

	positional := map[domain.Position]string{
		domain.PositionRB: DefenseVsRBFile,
		domain.PositionWR: DefenseVsWRFile,
		domain.PositionTE: DefenseVsTEFile,
	}
	for pos, file := range positional {
		stats, err := l.openDefensePage(file, allowanceTableID, allowanceTeamColumn)
		if err != nil {
			return nil, err
		}
		if stats == nil {
			continue
		}
		table, err := defense.AggregatePosition(pos, stats)
		if err != nil {
			return nil, fmt.Errorf("aggregate %s defense: %w", pos, err)
		}
		out[pos] = table
	}

	return out, nil
}

func (l *Loader) openDefensePage(name, tableID, teamColumn string) ([]*domain.TeamDefenseStat, error) {
	path := filepath.Join(l.dataDir, name)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Printf("rawdata: %s not present, defense page skipped", name)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stats, err := ExtractDefenseStats(f, tableID, teamColumn)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return stats, nil
}
