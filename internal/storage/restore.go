package storage

import (
	"database/sql"
	"encoding/json"

	"github.com/mholecek/worktrack/internal/models"
)

// Bulk-load primitives for the backup/restore engine. Imports are plain
// inserts that preserve the record's original id and timestamps and never
// touch the shared budget; restore sets the balance directly from the
// snapshot instead of replaying deltas.

func (s *Store) ClearWorkLogs() error          { return s.clearTable("work_logs") }
func (s *Store) ClearFinanceRecords() error    { return s.clearTable("finance_records") }
func (s *Store) ClearTaskCategories() error    { return s.clearTable("task_categories") }
func (s *Store) ClearExpenseCategories() error { return s.clearTable("expense_categories") }
func (s *Store) ClearDebts() error             { return s.clearTable("debts") }
func (s *Store) ClearDebtPayments() error      { return s.clearTable("debt_payments") }
func (s *Store) ClearSettings() error          { return s.clearTable("settings") }

func (s *Store) clearTable(table string) error {
	_, err := s.db.Exec("DELETE FROM " + table)
	return err
}

// ImportWorkLog inserts a snapshot record as-is. Fails on a duplicate id.
func (s *Store) ImportWorkLog(log models.WorkLog) error {
	return s.withTx(func(tx *sql.Tx) error {
		return insertWorkLogTx(tx, log)
	})
}

// ImportFinanceRecord inserts a snapshot record as-is.
func (s *Store) ImportFinanceRecord(rec models.FinanceRecord) error {
	return s.withTx(func(tx *sql.Tx) error {
		return insertFinanceRecordTx(tx, rec)
	})
}

// ImportDebt inserts a snapshot record as-is.
func (s *Store) ImportDebt(debt models.Debt) error {
	return s.withTx(func(tx *sql.Tx) error {
		return insertDebtTx(tx, debt)
	})
}

// ImportDebtPayment inserts a snapshot record as-is.
func (s *Store) ImportDebtPayment(payment models.DebtPayment) error {
	return s.withTx(func(tx *sql.Tx) error {
		return insertDebtPaymentTx(tx, payment)
	})
}

// ImportSetting inserts a snapshot setting as-is.
func (s *Store) ImportSetting(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = s.db.Exec("INSERT INTO settings (key, value) VALUES (?, ?)", key, string(raw))
	return err
}

// ImportTaskCategory inserts a snapshot category as-is.
func (s *Store) ImportTaskCategory(cat models.Category) error {
	_, err := s.db.Exec("INSERT INTO task_categories (name, active) VALUES (?, ?)", cat.Name, cat.Active)
	return err
}

// ImportExpenseCategory inserts a snapshot category as-is.
func (s *Store) ImportExpenseCategory(cat models.Category) error {
	_, err := s.db.Exec("INSERT INTO expense_categories (name, active) VALUES (?, ?)", cat.Name, cat.Active)
	return err
}

// ClearAll wipes every collection, the budget row included, in one
// transaction. Callers are expected to re-seed afterwards.
func (s *Store) ClearAll() error {
	tables := []string{
		"work_logs", "finance_records", "task_categories", "expense_categories",
		"debts", "debt_payments", "settings", "shared_budget",
	}
	return s.withTx(func(tx *sql.Tx) error {
		for _, table := range tables {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return err
			}
		}
		return nil
	})
}
