package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"nfl-forecast-lab/internal/domain"
	"nfl-forecast-lab/internal/storage"
)

func testRun(uuid string, pos domain.Position, createdAt time.Time) *domain.PredictionRun {
	return &domain.PredictionRun{
		RunUUID:   uuid,
		CreatedAt: createdAt,
		Position:  pos,
		Season:    2023,
		Week:      10,
		DataDir:   "/data",
		ModelDir:  "/models",
	}
}

func testPrediction(run, gsis string, pred float64) *domain.Prediction {
	return &domain.Prediction{
		RunUUID:   run,
		Team:      "KC",
		Position:  domain.PositionQB,
		FullName:  "Test Player",
		GsisID:    gsis,
		Season:    2023,
		Week:      9,
		PredNext4: pred,
	}
}

func TestPredictionStore_InsertAndGetRun(t *testing.T) {
	store := NewPredictionStore()
	ctx := context.Background()

	run := testRun("run-1", domain.PositionQB, time.Now())
	if err := store.InsertRun(ctx, run); err != nil {
		t.Fatalf("InsertRun failed: %v", err)
	}

	got, err := store.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got.RunUUID != "run-1" || got.Position != domain.PositionQB {
		t.Errorf("Run mismatch: %+v", got)
	}
}

func TestPredictionStore_DuplicateRun(t *testing.T) {
	store := NewPredictionStore()
	ctx := context.Background()

	run := testRun("run-1", domain.PositionQB, time.Now())
	if err := store.InsertRun(ctx, run); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}
	if err := store.InsertRun(ctx, run); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestPredictionStore_RunNotFound(t *testing.T) {
	store := NewPredictionStore()
	if _, err := store.GetRun(context.Background(), "nonexistent"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestPredictionStore_GetLatestRun(t *testing.T) {
	store := NewPredictionStore()
	ctx := context.Background()

	base := time.Now()
	if err := store.InsertRun(ctx, testRun("run-old", domain.PositionQB, base)); err != nil {
		t.Fatal(err)
	}
	if err := store.InsertRun(ctx, testRun("run-new", domain.PositionQB, base.Add(time.Hour))); err != nil {
		t.Fatal(err)
	}
	if err := store.InsertRun(ctx, testRun("run-rb", domain.PositionRB, base.Add(2*time.Hour))); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetLatestRun(ctx, domain.PositionQB)
	if err != nil {
		t.Fatalf("GetLatestRun failed: %v", err)
	}
	if got.RunUUID != "run-new" {
		t.Errorf("Expected run-new, got %s", got.RunUUID)
	}

	if _, err := store.GetLatestRun(ctx, domain.PositionWR); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for position without runs, got %v", err)
	}
}

func TestPredictionStore_InsertPredictionsAndGetOrdered(t *testing.T) {
	store := NewPredictionStore()
	ctx := context.Background()

	preds := []*domain.Prediction{
		testPrediction("run-1", "a", 12.5),
		testPrediction("run-1", "b", 20.0),
		testPrediction("run-1", "c", 15.5),
		testPrediction("run-2", "a", 99.0),
	}
	if err := store.InsertPredictions(ctx, preds); err != nil {
		t.Fatalf("InsertPredictions failed: %v", err)
	}

	got, err := store.GetPredictionsByRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetPredictionsByRun failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 predictions, got %d", len(got))
	}
	// Ordered by predicted score DESC.
	if got[0].GsisID != "b" || got[1].GsisID != "c" || got[2].GsisID != "a" {
		t.Errorf("Wrong order: %s, %s, %s", got[0].GsisID, got[1].GsisID, got[2].GsisID)
	}
}

func TestPredictionStore_DuplicatePrediction(t *testing.T) {
	store := NewPredictionStore()
	ctx := context.Background()

	if err := store.InsertPredictions(ctx, []*domain.Prediction{testPrediction("run-1", "a", 10)}); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	err := store.InsertPredictions(ctx, []*domain.Prediction{
		testPrediction("run-1", "b", 11),
		testPrediction("run-1", "a", 12),
	})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}

	// Batch must be atomic: b must not have been written.
	got, _ := store.GetPredictionsByRun(ctx, "run-1")
	if len(got) != 1 {
		t.Errorf("Expected 1 prediction after failed batch, got %d", len(got))
	}
}

func TestPredictionStore_InvalidInput(t *testing.T) {
	store := NewPredictionStore()
	ctx := context.Background()

	if err := store.InsertRun(ctx, nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil run, got %v", err)
	}
	if err := store.InsertPredictions(ctx, []*domain.Prediction{{RunUUID: "run-1"}}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for missing gsis_id, got %v", err)
	}
}

func TestPredictionStore_ReturnsCopies(t *testing.T) {
	store := NewPredictionStore()
	ctx := context.Background()

	delta := 2.5
	pred := testPrediction("run-1", "a", 10)
	pred.Delta = &delta
	if err := store.InsertPredictions(ctx, []*domain.Prediction{pred}); err != nil {
		t.Fatal(err)
	}

	got, _ := store.GetPredictionsByRun(ctx, "run-1")
	*got[0].Delta = 999

	again, _ := store.GetPredictionsByRun(ctx, "run-1")
	if *again[0].Delta != 2.5 {
		t.Error("Store must return copies, not internal pointers")
	}
}
