package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nfl-forecast-lab/internal/domain"
)

// WriteRunArtifacts writes the run report and per-position prediction CSVs
// into outputDir, creating it if needed. Files:
//   - RUN_REPORT.md
//   - predictions_<pos>.csv, one per position with predictions
func WriteRunArtifacts(outputDir string, report *Report, preds map[domain.Position][]*domain.Prediction) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	reportPath := filepath.Join(outputDir, "RUN_REPORT.md")
	if err := os.WriteFile(reportPath, []byte(RenderMarkdown(report)), 0644); err != nil {
		return fmt.Errorf("write run report: %w", err)
	}

	for pos, rows := range preds {
		if len(rows) == 0 {
			continue
		}
		name := fmt.Sprintf("predictions_%s.csv", strings.ToLower(string(pos)))
		path := filepath.Join(outputDir, name)
		if err := os.WriteFile(path, []byte(RenderPredictionsCSV(rows)), 0644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	return nil
}
