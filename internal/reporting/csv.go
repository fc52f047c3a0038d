package reporting

import (
	"fmt"
	"strings"

	"nfl-forecast-lab/internal/domain"
)

// RenderPredictionsCSV renders a run's predictions as a CSV string, in the
// order given (the stores return them by predicted score descending).
func RenderPredictionsCSV(preds []*domain.Prediction) string {
	var sb strings.Builder

	// Header
	sb.WriteString("run_uuid,team,position,full_name,gsis_id,season,week,")
	sb.WriteString("fantasy_prev_5wk_avg,pred_next4,delta\n")

	// Rows
	for _, p := range preds {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%d,%d,%s,%.4f,%s\n",
			p.RunUUID,
			p.Team,
			p.Position,
			csvEscape(p.FullName),
			p.GsisID,
			p.Season,
			p.Week,
			nullableCSV(p.FantasyPrev5WkAvg),
			p.PredNext4,
			nullableCSV(p.Delta),
		))
	}

	return sb.String()
}

func nullableCSV(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.4f", *v)
}

// csvEscape quotes a field containing commas. Player names occasionally
// carry suffixes written with commas upstream.
func csvEscape(s string) string {
	if strings.ContainsAny(s, ",\"") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
