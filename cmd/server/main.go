// Package main serves the prediction store over a read-only JSON API:
//   - GET /healthz
//   - GET /api/v1/runs/latest?position=QB
//   - GET /api/v1/runs/{run_uuid}
//   - GET /api/v1/runs/{run_uuid}/predictions
//   - GET /metrics (Prometheus)
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nfl-forecast-lab/internal/domain"
	"nfl-forecast-lab/internal/observability"
	"nfl-forecast-lab/internal/storage"
	"nfl-forecast-lab/internal/storage/migrations"
	pgstore "nfl-forecast-lab/internal/storage/postgres"
)

// Server exposes the prediction store.
type Server struct {
	store  storage.PredictionStore
	logger *log.Logger
}

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string (required)")
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags)

	if *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgstore.NewPool(ctx, *postgresDSN)
	if err != nil {
		logger.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		logger.Fatalf("postgres migrations: %v", err)
	}

	server := &Server{
		store:  pgstore.NewPredictionStore(pool),
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", server.handleHealthz)
	mux.HandleFunc("GET /api/v1/runs/latest", server.handleLatestRun)
	mux.HandleFunc("GET /api/v1/runs/{run_uuid}", server.handleGetRun)
	mux.HandleFunc("GET /api/v1/runs/{run_uuid}/predictions", server.handleGetPredictions)
	mux.Handle("GET /metrics", observability.Handler())

	httpServer := &http.Server{
		Addr:         *addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Printf("received signal %v, shutting down", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("shutdown: %v", err)
		}
		cancel()
	}()

	logger.Printf("listening on %s", *addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("serve: %v", err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLatestRun(w http.ResponseWriter, r *http.Request) {
	pos, err := domain.ParsePosition(r.URL.Query().Get("position"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	run, err := s.store.GetLatestRun(r.Context(), pos)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no runs for position")
		return
	}
	if err != nil {
		s.logger.Printf("latest run: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, runPayload(run))
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.GetRun(r.Context(), r.PathValue("run_uuid"))
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		s.logger.Printf("get run: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, runPayload(run))
}

func (s *Server) handleGetPredictions(w http.ResponseWriter, r *http.Request) {
	runUUID := r.PathValue("run_uuid")

	// 404 on an unknown run rather than an empty list.
	if _, err := s.store.GetRun(r.Context(), runUUID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		s.logger.Printf("get run: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	preds, err := s.store.GetPredictionsByRun(r.Context(), runUUID)
	if err != nil {
		s.logger.Printf("get predictions: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	payload := make([]map[string]any, len(preds))
	for i, p := range preds {
		payload[i] = map[string]any{
			"run_uuid":             p.RunUUID,
			"team":                 p.Team,
			"position":             p.Position,
			"full_name":            p.FullName,
			"gsis_id":              p.GsisID,
			"season":               p.Season,
			"week":                 p.Week,
			"fantasy_prev_5wk_avg": p.FantasyPrev5WkAvg,
			"pred_next4":           p.PredNext4,
			"delta":                p.Delta,
		}
	}
	writeJSON(w, http.StatusOK, payload)
}

func runPayload(run *domain.PredictionRun) map[string]any {
	return map[string]any{
		"run_uuid":   run.RunUUID,
		"created_at": run.CreatedAt.Format(time.RFC3339),
		"position":   run.Position,
		"season":     run.Season,
		"week":       run.Week,
		"data_dir":   run.DataDir,
		"model_dir":  run.ModelDir,
		"meta_json":  run.MetaJSON,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
