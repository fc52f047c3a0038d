// Package main scores each player's latest eligible week with the saved
// per-position models, persists the run, and writes the report artifacts.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"nfl-forecast-lab/internal/domain"
	"nfl-forecast-lab/internal/model"
	"nfl-forecast-lab/internal/observability"
	"nfl-forecast-lab/internal/pipeline"
	"nfl-forecast-lab/internal/rawdata"
	"nfl-forecast-lab/internal/reporting"
	"nfl-forecast-lab/internal/storage"
	"nfl-forecast-lab/internal/storage/memory"
	"nfl-forecast-lab/internal/storage/migrations"
	pgstore "nfl-forecast-lab/internal/storage/postgres"
)

func main() {
	dataDir := flag.String("data-dir", "data", "Directory holding the raw weekly CSVs and defense pages")
	modelDir := flag.String("model-dir", "models", "Directory holding fitted models")
	outputDir := flag.String("output-dir", "output", "Directory for run artifacts")
	season := flag.Int("season", 0, "Current season (required)")
	week := flag.Int("week", 0, "Current week (required)")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL DSN for run persistence (optional)")
	topN := flag.Int("top", 15, "Number of top forecasts per position in the report")
	flag.Parse()

	logger := log.New(os.Stdout, "[predict] ", log.LstdFlags)

	if *season == 0 || *week == 0 {
		logger.Fatal("--season and --week are required")
	}

	ctx := context.Background()

	var predStore storage.PredictionStore
	if *postgresDSN != "" {
		pool, err := pgstore.NewPool(ctx, *postgresDSN)
		if err != nil {
			logger.Fatalf("connect postgres: %v", err)
		}
		defer pool.Close()
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			logger.Fatalf("postgres migrations: %v", err)
		}
		predStore = pgstore.NewPredictionStore(pool)
	} else {
		logger.Printf("no postgres DSN, runs are kept in memory for this process only")
		predStore = memory.NewPredictionStore()
	}

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
	batchUUID := uuid.NewString()
	result, err := runner.Run(ctx, batchUUID, raw)
	if err != nil {
		logger.Fatalf("pipeline run: %v", err)
	}

	report := &reporting.Report{
		RunUUID:     batchUUID,
		GeneratedAt: time.Now().UTC(),
		Season:      *season,
		Week:        *week,
		MergedRows:  result.MergedRows,
	}
	predsByPos := make(map[domain.Position][]*domain.Prediction)

	for _, pos := range domain.AllPositions {
		pr, ok := result.Positions[pos]
		if !ok {
			continue
		}

		reg := model.NewBaselineRegressor()
		path := filepath.Join(*modelDir, fmt.Sprintf("model_%s.json", strings.ToLower(string(pos))))
		if err := reg.Load(path); err != nil {
			logger.Fatalf("load %s model: %v", pos, err)
		}

		runUUID := uuid.NewString()
		latest := model.LatestWeekSlice(pr.Eligible)
		preds, err := model.ScoreCandidates(ctx, reg, latest, runUUID)
		if err != nil {
			logger.Fatalf("score %s: %v", pos, err)
		}
		observability.RecordPredictions(string(pos), len(preds))

		meta, _ := json.Marshal(map[string]any{
			"model":       reg.Name(),
			"merged_rows": result.MergedRows,
			"scored_rows": len(preds),
		})
		run := &domain.PredictionRun{
			RunUUID:   runUUID,
			CreatedAt: time.Now().UTC(),
			Position:  pos,
			Season:    *season,
			Week:      *week,
			DataDir:   *dataDir,
			ModelDir:  *modelDir,
			MetaJSON:  string(meta),
		}
		if err := predStore.InsertRun(ctx, run); err != nil {
			logger.Fatalf("persist %s run: %v", pos, err)
		}
		if err := predStore.InsertPredictions(ctx, preds); err != nil {
			logger.Fatalf("persist %s predictions: %v", pos, err)
		}

		ordered, err := predStore.GetPredictionsByRun(ctx, runUUID)
		if err != nil {
			logger.Fatalf("read back %s predictions: %v", pos, err)
		}
		predsByPos[pos] = ordered

		top := ordered
		if len(top) > *topN {
			top = top[:*topN]
		}
		report.Positions = append(report.Positions, reporting.PositionSummary{
			Position:     pos,
			ModelName:    reg.Name(),
			RowsBuilt:    len(pr.Full.Rows),
			EligibleRows: len(pr.Eligible.Rows),
			Top:          top,
		})
		logger.Printf("%s: run %s scored %d players", pos, runUUID, len(preds))
	}

	if err := reporting.WriteRunArtifacts(*outputDir, report, predsByPos); err != nil {
		logger.Fatalf("write artifacts: %v", err)
	}
	fmt.Printf("Artifacts written to %s\n", *outputDir)
}
