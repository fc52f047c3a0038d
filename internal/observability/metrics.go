// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Raw data metrics
	RawRowsLoaded   *prometheus.CounterVec
	RawRowsDropped  *prometheus.CounterVec
	MergedRows      prometheus.Counter

	// Feature engine metrics
	FeatureRowsBuilt    *prometheus.CounterVec
	FeatureBuildLatency *prometheus.HistogramVec
	EligibleRowsKept    *prometheus.CounterVec
	EligibleRowsDropped *prometheus.CounterVec

	// Defense metrics
	DefenseTeamsResolved  *prometheus.CounterVec
	DefenseRowsUnresolved *prometheus.CounterVec

	// Pipeline metrics
	PipelineRunsTotal *prometheus.CounterVec
	PipelineDuration  *prometheus.HistogramVec

	// Model metrics
	ModelsTrained     *prometheus.CounterVec
	PredictionsScored *prometheus.CounterVec
	ValidationMAE     *prometheus.GaugeVec

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	// Health metrics
	LastSuccessfulPipeline prometheus.Gauge
	UptimeSeconds          prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "nfl_forecast_lab"
	}

	return &Metrics{
		// Raw data metrics
		RawRowsLoaded: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rawdata",
			Name:      "rows_loaded_total",
			Help:      "Total number of raw rows loaded by source table",
		}, []string{"table"}),
		RawRowsDropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rawdata",
			Name:      "rows_dropped_total",
			Help:      "Total number of raw rows dropped for unparsable season/week",
		}, []string{"table"}),
		MergedRows: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "merge",
			Name:      "player_weeks_total",
			Help:      "Total number of merged player-week rows produced",
		}),

		// Feature engine metrics
		FeatureRowsBuilt: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "features",
			Name:      "rows_built_total",
			Help:      "Total number of derived feature rows built by position",
		}, []string{"position"}),
		FeatureBuildLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "features",
			Name:      "build_latency_seconds",
			Help:      "Feature table build latency in seconds by position",
			Buckets:   prometheus.DefBuckets,
		}, []string{"position"}),
		EligibleRowsKept: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "split",
			Name:      "eligible_rows_kept_total",
			Help:      "Total number of rows passing the eligible-window gate",
		}, []string{"position"}),
		EligibleRowsDropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "split",
			Name:      "eligible_rows_dropped_total",
			Help:      "Total number of rows dropped at the eligible-window gate",
		}, []string{"position"}),

		// Defense metrics
		DefenseTeamsResolved: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "defense",
			Name:      "teams_resolved_total",
			Help:      "Total number of defense rows resolved to a team code",
		}, []string{"position"}),
		DefenseRowsUnresolved: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "defense",
			Name:      "rows_unresolved_total",
			Help:      "Total number of defense rows dropped for an unknown team name",
		}, []string{"position"}),

		// Pipeline metrics
		PipelineRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total number of pipeline runs by status",
		}, []string{"phase", "status"}),
		PipelineDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "duration_seconds",
			Help:      "Pipeline execution duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}, []string{"phase"}),

		// Model metrics
		ModelsTrained: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "model",
			Name:      "trained_total",
			Help:      "Total number of models trained by position",
		}, []string{"position"}),
		PredictionsScored: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "model",
			Name:      "predictions_scored_total",
			Help:      "Total number of player predictions scored by position",
		}, []string{"position"}),
		ValidationMAE: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "model",
			Name:      "validation_mae",
			Help:      "Validation mean absolute error of the last trained model",
		}, []string{"position"}),

		// Database metrics
		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),

		// Health metrics
		LastSuccessfulPipeline: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_pipeline_timestamp",
			Help:      "Unix timestamp of last successful pipeline run",
		}),
		UptimeSeconds: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "uptime_seconds_total",
			Help:      "Total uptime in seconds",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordRawTable records raw-table load counts.
func RecordRawTable(table string, loaded, dropped int) {
	DefaultMetrics.RawRowsLoaded.WithLabelValues(table).Add(float64(loaded))
	if dropped > 0 {
		DefaultMetrics.RawRowsDropped.WithLabelValues(table).Add(float64(dropped))
	}
}

// RecordFeatureBuild records a completed feature-table build.
func RecordFeatureBuild(position string, rows int, seconds float64) {
	DefaultMetrics.FeatureRowsBuilt.WithLabelValues(position).Add(float64(rows))
	DefaultMetrics.FeatureBuildLatency.WithLabelValues(position).Observe(seconds)
}

// RecordEligibleGate records the eligible-window keep/drop counts.
func RecordEligibleGate(position string, kept, dropped int) {
	DefaultMetrics.EligibleRowsKept.WithLabelValues(position).Add(float64(kept))
	DefaultMetrics.EligibleRowsDropped.WithLabelValues(position).Add(float64(dropped))
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}

// RecordPipelineRun records a pipeline run.
func RecordPipelineRun(phase, status string, durationSeconds float64) {
	DefaultMetrics.PipelineRunsTotal.WithLabelValues(phase, status).Inc()
	DefaultMetrics.PipelineDuration.WithLabelValues(phase).Observe(durationSeconds)
}

// RecordTraining records a completed training pass.
func RecordTraining(position string, mae float64) {
	DefaultMetrics.ModelsTrained.WithLabelValues(position).Inc()
	DefaultMetrics.ValidationMAE.WithLabelValues(position).Set(mae)
}

// RecordPredictions records scored predictions.
func RecordPredictions(position string, count int) {
	DefaultMetrics.PredictionsScored.WithLabelValues(position).Add(float64(count))
}
