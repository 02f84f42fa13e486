package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mholecek/worktrack/internal/models"
)

func TestGetBudgetLazyMaterialization(t *testing.T) {
	// A database whose budget row was never written reads as a zero balance.
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.db.Exec("DELETE FROM shared_budget"); err != nil {
		t.Fatalf("failed to drop budget row: %v", err)
	}

	b, err := store.GetBudget()
	if err != nil {
		t.Fatalf("GetBudget() failed: %v", err)
	}
	if b.ID != 1 || b.Balance != 0 {
		t.Errorf("GetBudget() = %+v, want id 1 with zero balance", b)
	}
}

func TestAdjustBudget(t *testing.T) {
	store := newTestStore(t)

	b, err := store.AdjustBudget(250)
	if err != nil {
		t.Fatalf("AdjustBudget() failed: %v", err)
	}
	if b.Balance != 250 {
		t.Errorf("balance = %d, want 250", b.Balance)
	}
	if b.LastUpdated.IsZero() {
		t.Error("AdjustBudget() left LastUpdated unset")
	}

	b, err = store.AdjustBudget(-400)
	if err != nil {
		t.Fatalf("AdjustBudget() failed: %v", err)
	}
	if b.Balance != -150 {
		t.Errorf("balance = %d, want -150", b.Balance)
	}
}

func TestRecomputeBalance(t *testing.T) {
	store := newTestStore(t)
	start := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	if _, err := store.CreateWorkLog(models.WorkLog{
		Person:    models.PersonMaru,
		Activity:  "Development",
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
	}); err != nil {
		t.Fatalf("CreateWorkLog() failed: %v", err)
	}
	if _, err := store.CreateFinanceRecord(models.FinanceRecord{Type: models.RecordIncome, Amount: 100}); err != nil {
		t.Fatalf("CreateFinanceRecord() failed: %v", err)
	}
	if _, err := store.CreateFinanceRecord(models.FinanceRecord{Type: models.RecordExpense, Amount: 30}); err != nil {
		t.Fatalf("CreateFinanceRecord() failed: %v", err)
	}

	total, err := store.RecomputeBalance()
	if err != nil {
		t.Fatalf("RecomputeBalance() failed: %v", err)
	}
	if total != 550+100-30 {
		t.Errorf("RecomputeBalance() = %d, want %d", total, 550+100-30)
	}

	// The incremental balance must agree with the recomputed one.
	if got := mustBudgetBalance(t, store); got != total {
		t.Errorf("stored balance %d disagrees with recomputed %d", got, total)
	}
}

func TestReconcileBudget(t *testing.T) {
	store := newTestStore(t)
	start := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	if _, err := store.CreateWorkLog(models.WorkLog{
		Person:    models.PersonMarty,
		Activity:  "Development",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	}); err != nil {
		t.Fatalf("CreateWorkLog() failed: %v", err)
	}

	// Drift the stored balance away from its records.
	if err := store.SetBudgetBalance(9999); err != nil {
		t.Fatalf("SetBudgetBalance() failed: %v", err)
	}

	res, err := store.ReconcileBudget()
	if err != nil {
		t.Fatalf("ReconcileBudget() failed: %v", err)
	}
	if res.Previous != 9999 {
		t.Errorf("Previous = %d, want 9999", res.Previous)
	}
	if res.Recomputed != 400 {
		t.Errorf("Recomputed = %d, want 400", res.Recomputed)
	}
	if res.Drift() != 9599 {
		t.Errorf("Drift() = %d, want 9599", res.Drift())
	}
	if got := mustBudgetBalance(t, store); got != 400 {
		t.Errorf("stored balance = %d after reconcile, want 400", got)
	}
}
