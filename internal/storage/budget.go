package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/mholecek/worktrack/internal/errors"
	"github.com/mholecek/worktrack/internal/logger"
	"github.com/mholecek/worktrack/internal/models"
)

// budgetRowID is the fixed id of the shared-budget singleton row.
const budgetRowID = 1

// GetBudget returns the shared budget, materializing a zero balance if the
// row has never been written.
func (s *Store) GetBudget() (models.SharedBudget, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.SharedBudget{}, err
	}
	defer tx.Rollback()
	return getBudgetTx(tx)
}

func getBudgetTx(tx *sql.Tx) (models.SharedBudget, error) {
	var (
		b           models.SharedBudget
		lastUpdated sql.NullString
	)
	err := tx.QueryRow("SELECT id, balance, last_updated FROM shared_budget WHERE id = ?", budgetRowID).
		Scan(&b.ID, &b.Balance, &lastUpdated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SharedBudget{ID: budgetRowID}, nil
		}
		return models.SharedBudget{}, err
	}

	if lastUpdated.Valid && lastUpdated.String != "" {
		t, err := parseTime(lastUpdated.String)
		if err != nil {
			return models.SharedBudget{}, fmt.Errorf("failed to parse last_updated: %w", err)
		}
		b.LastUpdated = t
	}
	return b, nil
}

// AdjustBudget applies a signed delta to the running balance and returns the
// new budget record.
func (s *Store) AdjustBudget(delta int64) (models.SharedBudget, error) {
	var b models.SharedBudget
	err := s.withTx(func(tx *sql.Tx) error {
		var err error
		b, err = adjustBudgetTx(tx, delta)
		return err
	})
	return b, err
}

// adjustBudgetTx performs the read-modify-write of the singleton inside the
// caller's transaction, so a repository write and its budget delta commit
// atomically.
func adjustBudgetTx(tx *sql.Tx, delta int64) (models.SharedBudget, error) {
	b, err := getBudgetTx(tx)
	if err != nil {
		return models.SharedBudget{}, err
	}

	b.Balance += delta
	b.LastUpdated = time.Now().UTC()

	_, err = tx.Exec(
		"INSERT OR REPLACE INTO shared_budget (id, balance, last_updated) VALUES (?, ?, ?)",
		budgetRowID, b.Balance, formatTime(b.LastUpdated),
	)
	if err != nil {
		return models.SharedBudget{}, err
	}
	return b, nil
}

// applyBudgetDelta is the adjustment step repositories chain after their
// record write. A failure here is classified and logged distinctly; the
// caller's transaction rolls the record write back with it.
func applyBudgetDelta(tx *sql.Tx, delta int64) error {
	if delta == 0 {
		return nil
	}
	if _, err := adjustBudgetTx(tx, delta); err != nil {
		logger.Error("budget adjustment failed", "delta", delta, "error", err)
		return fmt.Errorf("%w: delta %d: %v", apperrors.ErrBudgetAdjust, delta, err)
	}
	return nil
}

// SetBudgetBalance overwrites the balance with an absolute value. Used only
// by restore, which trusts the snapshot's balance instead of replaying
// per-record deltas.
func (s *Store) SetBudgetBalance(balance int64) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO shared_budget (id, balance, last_updated) VALUES (?, ?, ?)",
		budgetRowID, balance, formatTime(time.Now().UTC()),
	)
	return err
}

// ReconcileResult reports a budget reconciliation.
type ReconcileResult struct {
	Previous   int64
	Recomputed int64
}

// Drift is how far the stored balance had wandered from the recomputed one.
func (r ReconcileResult) Drift() int64 {
	return r.Previous - r.Recomputed
}

// RecomputeBalance derives the balance from scratch: the sum of all work-log
// earnings plus income amounts minus expense amounts. It never writes.
func (s *Store) RecomputeBalance() (int64, error) {
	var total int64
	err := s.withTx(func(tx *sql.Tx) error {
		var err error
		total, err = recomputeBalanceTx(tx)
		return err
	})
	return total, err
}

func recomputeBalanceTx(tx *sql.Tx) (int64, error) {
	var earnings, income, expenses int64

	if err := tx.QueryRow("SELECT COALESCE(SUM(earnings), 0) FROM work_logs").Scan(&earnings); err != nil {
		return 0, err
	}
	if err := tx.QueryRow("SELECT COALESCE(SUM(amount), 0) FROM finance_records WHERE type = ?", models.RecordIncome).Scan(&income); err != nil {
		return 0, err
	}
	if err := tx.QueryRow("SELECT COALESCE(SUM(amount), 0) FROM finance_records WHERE type = ?", models.RecordExpense).Scan(&expenses); err != nil {
		return 0, err
	}

	return earnings + income - expenses, nil
}

// ReconcileBudget recomputes the balance from work logs and finance records
// and overwrites the stored balance with it. This is the corrective
// operation for a budget that drifted from its records.
func (s *Store) ReconcileBudget() (ReconcileResult, error) {
	var res ReconcileResult
	err := s.withTx(func(tx *sql.Tx) error {
		b, err := getBudgetTx(tx)
		if err != nil {
			return err
		}
		res.Previous = b.Balance

		res.Recomputed, err = recomputeBalanceTx(tx)
		if err != nil {
			return err
		}

		_, err = tx.Exec(
			"INSERT OR REPLACE INTO shared_budget (id, balance, last_updated) VALUES (?, ?, ?)",
			budgetRowID, res.Recomputed, formatTime(time.Now().UTC()),
		)
		return err
	})
	if err != nil {
		return ReconcileResult{}, err
	}

	if res.Drift() != 0 {
		logger.Warn("budget reconciled", "previous", res.Previous, "recomputed", res.Recomputed)
	}
	return res, nil
}
