package rawdata

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"nfl-forecast-lab/internal/domain"
)

// ExtractDefenseStats parses one stats table out of a scraped ranking page
// into team-keyed stat rows. teamColumn names the header cell holding the
// team label; every other header becomes a nullable numeric value keyed by
// its header text. Reference sites wrap some tables in HTML comments to
// defeat naive scrapers, so a table missing from the live DOM is retried
// against the page's comment nodes.
func ExtractDefenseStats(r io.Reader, tableID, teamColumn string) ([]*domain.TeamDefenseStat, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse defense page: %w", err)
	}

	sel := doc.Find("table#" + tableID)
	if sel.Length() == 0 {
		sel, err = findCommentedTable(doc, tableID)
		if err != nil {
			return nil, err
		}
	}
	if sel == nil || sel.Length() == 0 {
		return nil, fmt.Errorf("defense table %q not found in page", tableID)
	}
	return tableToStats(sel.First(), teamColumn)
}

// findCommentedTable re-parses comment nodes that embed the wanted table.
func findCommentedTable(doc *goquery.Document, tableID string) (*goquery.Selection, error) {
	var found *goquery.Selection
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.CommentNode && strings.Contains(n.Data, "table") {
			inner, err := goquery.NewDocumentFromReader(strings.NewReader(n.Data))
			if err == nil {
				if sel := inner.Find("table#" + tableID); sel.Length() > 0 {
					found = sel
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, node := range doc.Nodes {
		walk(node)
	}
	return found, nil
}

func tableToStats(table *goquery.Selection, teamColumn string) ([]*domain.TeamDefenseStat, error) {
	// The header is the last thead row: multi-level headers put grouping
	// labels in the rows above it.
	var headers []string
	table.Find("thead tr").Last().Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(cell.Text()))
	})
	if len(headers) == 0 {
		return nil, fmt.Errorf("defense table has no header row")
	}
	teamIdx := -1
	for i, h := range headers {
		if h == teamColumn {
			teamIdx = i
			break
		}
	}
	if teamIdx == -1 {
		return nil, fmt.Errorf("defense table has no %q column", teamColumn)
	}

	var stats []*domain.TeamDefenseStat
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		if row.HasClass("thead") {
			return
		}
		cells := row.Find("th, td")
		if cells.Length() <= teamIdx {
			return
		}

		stat := &domain.TeamDefenseStat{Values: make(map[string]*float64)}
		cells.Each(func(i int, cell *goquery.Selection) {
			if i >= len(headers) {
				return
			}
			text := strings.TrimSpace(cell.Text())
			if i == teamIdx {
				stat.Team = text
				return
			}
			stat.Values[headers[i]] = parseNullableFloat(strings.TrimSuffix(text, "%"))
		})
		if stat.Team != "" {
			stats = append(stats, stat)
		}
	})
	if len(stats) == 0 {
		return nil, fmt.Errorf("defense table %s yielded no rows", teamColumn)
	}
	return stats, nil
}
