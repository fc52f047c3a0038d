// Package main runs one feature-derivation pass: load the raw weekly tables,
// merge, build the four position feature tables, and report what the
// eligible window keeps.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"nfl-forecast-lab/internal/domain"
	"nfl-forecast-lab/internal/pipeline"
	"nfl-forecast-lab/internal/rawdata"
	"nfl-forecast-lab/internal/storage"
	chstore "nfl-forecast-lab/internal/storage/clickhouse"
	"nfl-forecast-lab/internal/storage/migrations"
)

func main() {
	dataDir := flag.String("data-dir", "data", "Directory holding the raw weekly CSVs and defense pages")
	season := flag.Int("season", 0, "Current season (required)")
	week := flag.Int("week", 0, "Current week (required)")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse DSN for feature archiving (optional)")
	flag.Parse()

	logger := log.New(os.Stdout, "[pipeline] ", log.LstdFlags)

	if *season == 0 || *week == 0 {
		logger.Fatal("--season and --week are required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("received signal %v, cancelling run", sig)
		cancel()
	}()

	loader := rawdata.NewLoader(*dataDir, logger)
	raw, err := loader.Load()
	if err != nil {
		logger.Fatalf("load raw tables: %v", err)
	}
	def, err := loader.LoadDefense()
	if err != nil {
		logger.Fatalf("load defense tables: %v", err)
	}

	var featureStore storage.FeatureStore
	if *clickhouseDSN != "" {
		conn, err := migrations.RunClickhouseMigrations(ctx, *clickhouseDSN)
		if err != nil {
			logger.Fatalf("clickhouse migrations: %v", err)
		}
		defer conn.Close()
		featureStore = chstore.NewFeatureStore(conn)
	}

	runner := pipeline.NewRunner(pipeline.Options{
		Season:       *season,
		Week:         *week,
		Defense:      def,
		FeatureStore: featureStore,
		Logger:       logger,
	})

	runUUID := uuid.NewString()
	result, err := runner.Run(ctx, runUUID, raw)
	if err != nil {
		logger.Fatalf("pipeline run: %v", err)
	}

	fmt.Printf("Run %s completed in %s\n", result.RunUUID, result.Duration)
	fmt.Printf("  Merged player-weeks: %d\n", result.MergedRows)
	for _, pos := range domain.AllPositions {
		pr, ok := result.Positions[pos]
		if !ok {
			continue
		}
		fmt.Printf("  %s: %d rows built, %d eligible\n", pos, len(pr.Full.Rows), len(pr.Eligible.Rows))
	}
}
