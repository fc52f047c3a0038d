// Package pipeline orchestrates one feature-derivation run: merge the raw
// weekly tables once, build the four position feature tables concurrently,
// attach forecast targets, gate on the eligible window, and optionally
// archive the derived tables.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"nfl-forecast-lab/internal/domain"
	"nfl-forecast-lab/internal/features"
	"nfl-forecast-lab/internal/merge"
	"nfl-forecast-lab/internal/observability"
	"nfl-forecast-lab/internal/split"
	"nfl-forecast-lab/internal/storage"
	"nfl-forecast-lab/internal/target"
)

// Options configures a pipeline run.
type Options struct {
	// Season and Week mark "now" for the eligible-window gate.
	Season int
	Week   int

	// Defense holds the per-position opponent-defense tables. A missing
	// position joins as all-null defense columns (zero-filled downstream).
	Defense map[domain.Position]*domain.DefenseTable

	// FeatureStore, when set, archives each position's derived table.
	FeatureStore storage.FeatureStore

	Logger *log.Logger
}

// PositionResult is one position's output from a run.
type PositionResult struct {
	Position domain.Position

	// Full is the complete derived table with targets attached.
	Full *domain.FeatureTable

	// Eligible is the table after the eligible-window gate: the rows safe
	// to train on as of (Season, Week).
	Eligible *domain.FeatureTable
}

// Result summarizes a completed run.
type Result struct {
	RunUUID    string
	Season     int
	Week       int
	MergedRows int
	Positions  map[domain.Position]*PositionResult
	Duration   time.Duration
}

// Runner executes feature-derivation runs.
type Runner struct {
	opts   Options
	logger *log.Logger
}

// NewRunner creates a pipeline runner.
func NewRunner(opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{opts: opts, logger: logger}
}

// Run merges the raw tables and derives all four position tables. Positions
// are independent once the merge is done, so they build concurrently; the
// merge itself runs once up front.
func (r *Runner) Run(ctx context.Context, runUUID string, raw *domain.RawTables) (*Result, error) {
	started := time.Now()

	merged, err := merge.Merge(raw)
	if err != nil {
		observability.RecordPipelineRun("merge", "error", time.Since(started).Seconds())
		return nil, fmt.Errorf("merge raw tables: %w", err)
	}
	observability.DefaultMetrics.MergedRows.Add(float64(len(merged)))
	r.logger.Printf("pipeline: merged %d player-week rows", len(merged))

	result := &Result{
		RunUUID:    runUUID,
		Season:     r.opts.Season,
		Week:       r.opts.Week,
		MergedRows: len(merged),
		Positions:  make(map[domain.Position]*PositionResult, len(domain.AllPositions)),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, pos := range domain.AllPositions {
		g.Go(func() error {
			pr, err := r.buildPosition(gctx, runUUID, pos, merged)
			if err != nil {
				return err
			}
			mu.Lock()
			result.Positions[pos] = pr
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		observability.RecordPipelineRun("features", "error", time.Since(started).Seconds())
		return nil, err
	}

	result.Duration = time.Since(started)
	observability.RecordPipelineRun("features", "ok", result.Duration.Seconds())
	observability.DefaultMetrics.LastSuccessfulPipeline.SetToCurrentTime()
	return result, nil
}

func (r *Runner) buildPosition(ctx context.Context, runUUID string, pos domain.Position, merged []*domain.PlayerWeek) (*PositionResult, error) {
	started := time.Now()

	engine, err := features.NewEngine(pos)
	if err != nil {
		return nil, err
	}
	table, err := engine.Build(merged, r.opts.Defense[pos])
	if err != nil {
		return nil, fmt.Errorf("build %s features: %w", pos, err)
	}
	target.NewBuilder().Attach(table)
	observability.RecordFeatureBuild(string(pos), len(table.Rows), time.Since(started).Seconds())

	selector := split.NewEligibleWindowSelector(r.opts.Season, r.opts.Week)
	eligible := selector.Select(table)
	observability.RecordEligibleGate(string(pos), len(eligible.Rows), len(table.Rows)-len(eligible.Rows))
	r.logger.Printf("pipeline: %s built %d rows, %d eligible at season %d week %d",
		pos, len(table.Rows), len(eligible.Rows), r.opts.Season, r.opts.Week)

	if r.opts.FeatureStore != nil {
		if err := r.opts.FeatureStore.InsertBulk(ctx, domain.ArchiveRows(runUUID, table)); err != nil {
			return nil, fmt.Errorf("archive %s features: %w", pos, err)
		}
	}

	return &PositionResult{Position: pos, Full: table, Eligible: eligible}, nil
}
