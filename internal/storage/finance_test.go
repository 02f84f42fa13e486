package storage

import (
	"testing"
	"time"

	"github.com/mholecek/worktrack/internal/models"
)

func TestCreateFinanceRecord(t *testing.T) {
	t.Run("income credits the budget", func(t *testing.T) {
		store := newTestStore(t)

		rec, err := store.CreateFinanceRecord(models.FinanceRecord{
			Type:     models.RecordIncome,
			Amount:   1500,
			Category: "Salary",
		})
		if err != nil {
			t.Fatalf("CreateFinanceRecord() failed: %v", err)
		}

		if rec.ID == "" {
			t.Error("CreateFinanceRecord() assigned no id")
		}
		if rec.Date.IsZero() {
			t.Error("CreateFinanceRecord() left the date unset")
		}
		if got := mustBudgetBalance(t, store); got != 1500 {
			t.Errorf("budget balance = %d, want 1500", got)
		}
	})

	t.Run("expense debits the budget", func(t *testing.T) {
		store := newTestStore(t)

		if _, err := store.AdjustBudget(1000); err != nil {
			t.Fatalf("AdjustBudget() failed: %v", err)
		}

		_, err := store.CreateFinanceRecord(models.FinanceRecord{
			Type:     models.RecordExpense,
			Amount:   200,
			Category: "Groceries",
		})
		if err != nil {
			t.Fatalf("CreateFinanceRecord() failed: %v", err)
		}
		if got := mustBudgetBalance(t, store); got != 800 {
			t.Errorf("budget balance = %d, want 800", got)
		}
	})

	t.Run("balance may go negative", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.CreateFinanceRecord(models.FinanceRecord{
			Type:   models.RecordExpense,
			Amount: 300,
		})
		if err != nil {
			t.Fatalf("CreateFinanceRecord() failed: %v", err)
		}
		if got := mustBudgetBalance(t, store); got != -300 {
			t.Errorf("budget balance = %d, want -300", got)
		}
	})

	t.Run("rejects invalid type and non-positive amount", func(t *testing.T) {
		store := newTestStore(t)

		if _, err := store.CreateFinanceRecord(models.FinanceRecord{Type: "transfer", Amount: 10}); err == nil {
			t.Error("CreateFinanceRecord() accepted an unknown type")
		}
		if _, err := store.CreateFinanceRecord(models.FinanceRecord{Type: models.RecordIncome, Amount: 0}); err == nil {
			t.Error("CreateFinanceRecord() accepted a zero amount")
		}
		if _, err := store.CreateFinanceRecord(models.FinanceRecord{Type: models.RecordExpense, Amount: -5}); err == nil {
			t.Error("CreateFinanceRecord() accepted a negative amount")
		}
		if got := mustBudgetBalance(t, store); got != 0 {
			t.Errorf("budget balance = %d after rejected creates, want 0", got)
		}
	})
}

func TestListFinanceRecords(t *testing.T) {
	store := newTestStore(t)
	day1 := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 4, 15, 12, 0, 0, 0, time.UTC)

	seed := []models.FinanceRecord{
		{Type: models.RecordIncome, Amount: 1000, Category: "Salary", Date: day1},
		{Type: models.RecordExpense, Amount: 200, Category: "Groceries", Date: day1},
		{Type: models.RecordExpense, Amount: 50, Category: "Groceries", Date: day2},
	}
	for _, rec := range seed {
		if _, err := store.CreateFinanceRecord(rec); err != nil {
			t.Fatalf("CreateFinanceRecord() failed: %v", err)
		}
	}

	t.Run("filter by type", func(t *testing.T) {
		recs, err := store.ListFinanceRecords(FinanceFilter{Type: models.RecordExpense})
		if err != nil {
			t.Fatalf("ListFinanceRecords() failed: %v", err)
		}
		if len(recs) != 2 {
			t.Errorf("len(recs) = %d, want 2", len(recs))
		}
	})

	t.Run("filter by category", func(t *testing.T) {
		recs, err := store.ListFinanceRecords(FinanceFilter{Category: "Salary"})
		if err != nil {
			t.Fatalf("ListFinanceRecords() failed: %v", err)
		}
		if len(recs) != 1 {
			t.Errorf("len(recs) = %d, want 1", len(recs))
		}
	})

	t.Run("filter by date range", func(t *testing.T) {
		from := day2.Add(-24 * time.Hour)
		recs, err := store.ListFinanceRecords(FinanceFilter{StartDate: &from})
		if err != nil {
			t.Fatalf("ListFinanceRecords() failed: %v", err)
		}
		if len(recs) != 1 {
			t.Errorf("len(recs) = %d, want 1 (records on day 2)", len(recs))
		}
	})
}
