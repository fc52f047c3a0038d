package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders the run report as a Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Forecast Run Report\n\n")
	sb.WriteString(fmt.Sprintf("Run: %s\n\n", r.RunUUID))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("As of: season %d, week %d | Merged player-weeks: %d\n\n",
		r.Season, r.Week, r.MergedRows))

	// Per-position model summary
	sb.WriteString("## Models\n\n")
	if len(r.Positions) > 0 {
		sb.WriteString("| Position | Model | Rows | Eligible | Train | Val | MAE | RMSE | R2 |\n")
		sb.WriteString("|----------|-------|------|----------|-------|-----|-----|------|----|\n")
		for _, p := range r.Positions {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %d | %d | %.4f | %.4f | %.4f |\n",
				p.Position, p.ModelName,
				p.RowsBuilt, p.EligibleRows, p.TrainRows, p.ValRows,
				p.MAE, p.RMSE, p.R2))
		}
	} else {
		sb.WriteString("No models trained this run.\n")
	}
	sb.WriteString("\n")

	// Top forecasts per position
	for _, p := range r.Positions {
		sb.WriteString(fmt.Sprintf("## Top %s Forecasts\n\n", p.Position))
		if len(p.Top) == 0 {
			sb.WriteString("No predictions available.\n\n")
			continue
		}
		sb.WriteString("| Player | Team | Week | Prev 5wk Avg | Next 4wk Pred | Delta |\n")
		sb.WriteString("|--------|------|------|--------------|---------------|-------|\n")
		for _, pred := range p.Top {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %s | %.2f | %s |\n",
				pred.FullName, pred.Team, pred.Week,
				nullableCSV(pred.FantasyPrev5WkAvg), pred.PredNext4, nullableCSV(pred.Delta)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
