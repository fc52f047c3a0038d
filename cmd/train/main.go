// Package main trains one forecast model per position on a chronological
// train/validation split of the eligible feature tables, and saves the
// fitted models.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"nfl-forecast-lab/internal/domain"
	"nfl-forecast-lab/internal/model"
	"nfl-forecast-lab/internal/observability"
	"nfl-forecast-lab/internal/pipeline"
	"nfl-forecast-lab/internal/rawdata"
	"nfl-forecast-lab/internal/split"
)

func main() {
	dataDir := flag.String("data-dir", "data", "Directory holding the raw weekly CSVs and defense pages")
	modelDir := flag.String("model-dir", "models", "Directory to save fitted models")
	season := flag.Int("season", 0, "Current season (required)")
	week := flag.Int("week", 0, "Current week (required)")
	validationSeason := flag.Int("validation-season", 0, "Season held out for validation (default: latest eligible)")
	positions := flag.String("positions", "", "Comma-separated positions to train (default: all)")
	flag.Parse()

	logger := log.New(os.Stdout, "[train] ", log.LstdFlags)

	if *season == 0 || *week == 0 {
		logger.Fatal("--season and --week are required")
	}
	wanted, err := parsePositions(*positions)
	if err != nil {
		logger.Fatal(err)
	}

	ctx := context.Background()

	loader := rawdata.NewLoader(*dataDir, logger)
	raw, err := loader.Load()
	if err != nil {
		logger.Fatalf("load raw tables: %v", err)
	}
	def, err := loader.LoadDefense()
	if err != nil {
		logger.Fatalf("load defense tables: %v", err)
	}

	runner := pipeline.NewRunner(pipeline.Options{
		Season:  *season,
		Week:    *week,
		Defense: def,
		Logger:  logger,
	})
	result, err := runner.Run(ctx, uuid.NewString(), raw)
	if err != nil {
		logger.Fatalf("pipeline run: %v", err)
	}

	if err := os.MkdirAll(*modelDir, 0755); err != nil {
		logger.Fatalf("create model dir: %v", err)
	}

	splitter := &split.TimeBasedSplitter{ValidationSeason: *validationSeason}
	trainer := model.NewTrainer(splitter)

	for _, pos := range wanted {
		pr, ok := result.Positions[pos]
		if !ok {
			logger.Printf("%s: no feature table produced, skipping", pos)
			continue
		}

		reg := model.NewBaselineRegressor()
		res, err := trainer.Train(ctx, reg, pr.Eligible)
		if err != nil {
			logger.Fatalf("train %s: %v", pos, err)
		}
		observability.RecordTraining(string(pos), res.Metrics.MAE)

		path := modelPath(*modelDir, pos)
		if err := reg.Save(path); err != nil {
			logger.Fatalf("save %s model: %v", pos, err)
		}

		fmt.Printf("%s (%s): train=%d val=%d MAE=%.4f RMSE=%.4f R2=%.4f -> %s\n",
			pos, res.ModelName, res.TrainRows, res.ValRows,
			res.Metrics.MAE, res.Metrics.RMSE, res.Metrics.R2, path)
	}
}

func modelPath(dir string, pos domain.Position) string {
	return filepath.Join(dir, fmt.Sprintf("model_%s.json", strings.ToLower(string(pos))))
}

func parsePositions(s string) ([]domain.Position, error) {
	if s == "" {
		return domain.AllPositions, nil
	}
	var out []domain.Position
	for _, part := range strings.Split(s, ",") {
		pos, err := domain.ParsePosition(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, pos)
	}
	return out, nil
}
