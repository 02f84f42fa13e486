package backup

import (
	"fmt"

	apperrors "github.com/mholecek/worktrack/internal/errors"
	"github.com/mholecek/worktrack/internal/logger"
	"github.com/mholecek/worktrack/internal/storage"
)

// CreateSnapshot reads every collection in full and stamps the result. Each
// collection is read in one query, so individual records are never torn; a
// write landing between two collection reads may or may not be included.
func CreateSnapshot(store *storage.Store) (*Snapshot, error) {
	snap := &Snapshot{
		Version: SnapshotVersion,
		Date:    nowISO(),
	}

	var err error
	if snap.Data.WorkLogs, err = store.ListWorkLogs(storage.WorkLogFilter{}); err != nil {
		return nil, fmt.Errorf("failed to read work logs: %w", err)
	}
	if snap.Data.FinanceRecords, err = store.ListFinanceRecords(storage.FinanceFilter{}); err != nil {
		return nil, fmt.Errorf("failed to read finance records: %w", err)
	}
	if snap.Data.TaskCategories, err = store.TaskCategories(true); err != nil {
		return nil, fmt.Errorf("failed to read task categories: %w", err)
	}
	if snap.Data.ExpenseCategories, err = store.ExpenseCategories(true); err != nil {
		return nil, fmt.Errorf("failed to read expense categories: %w", err)
	}
	if snap.Data.Debts, err = store.ListDebts(); err != nil {
		return nil, fmt.Errorf("failed to read debts: %w", err)
	}
	if snap.Data.DebtPayments, err = store.ListDebtPayments(); err != nil {
		return nil, fmt.Errorf("failed to read debt payments: %w", err)
	}
	if snap.Data.Settings, err = store.AllSettings(); err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if snap.Data.SharedBudget, err = store.GetBudget(); err != nil {
		return nil, fmt.Errorf("failed to read shared budget: %w", err)
	}

	return snap, nil
}

// RestoreSnapshot replaces the store's contents with the snapshot's. Only
// collections the document actually carried take part: each is cleared and
// bulk-loaded with its original ids and timestamps, so an older export
// without category tables leaves the categories in place. The budget balance
// is then set straight from the snapshot, never recomputed from the restored
// records. Individual insert failures are counted and reported as a
// PartialRestoreError while successful inserts are kept — restore is
// best-effort, not atomic.
func RestoreSnapshot(store *storage.Store, snap *Snapshot) error {
	if snap == nil {
		return apperrors.ErrInvalidBackup
	}

	failed := 0
	fail := func(collection, id string, err error) {
		failed++
		logger.Error("restore: failed to insert record", "collection", collection, "id", id, "error", err)
	}

	if snap.Has(ColWorkLogs) {
		if err := store.ClearWorkLogs(); err != nil {
			return fmt.Errorf("failed to clear work logs: %w", err)
		}
		for _, log := range snap.Data.WorkLogs {
			if err := store.ImportWorkLog(log); err != nil {
				fail(ColWorkLogs, log.ID, err)
			}
		}
	}

	if snap.Has(ColFinanceRecords) {
		if err := store.ClearFinanceRecords(); err != nil {
			return fmt.Errorf("failed to clear finance records: %w", err)
		}
		for _, rec := range snap.Data.FinanceRecords {
			if err := store.ImportFinanceRecord(rec); err != nil {
				fail(ColFinanceRecords, rec.ID, err)
			}
		}
	}

	if snap.Has(ColTaskCategories) {
		if err := store.ClearTaskCategories(); err != nil {
			return fmt.Errorf("failed to clear task categories: %w", err)
		}
		for _, cat := range snap.Data.TaskCategories {
			if err := store.ImportTaskCategory(cat); err != nil {
				fail(ColTaskCategories, cat.Name, err)
			}
		}
	}

	if snap.Has(ColExpenseCategories) {
		if err := store.ClearExpenseCategories(); err != nil {
			return fmt.Errorf("failed to clear expense categories: %w", err)
		}
		for _, cat := range snap.Data.ExpenseCategories {
			if err := store.ImportExpenseCategory(cat); err != nil {
				fail(ColExpenseCategories, cat.Name, err)
			}
		}
	}

	if snap.Has(ColDebts) {
		if err := store.ClearDebts(); err != nil {
			return fmt.Errorf("failed to clear debts: %w", err)
		}
		for _, debt := range snap.Data.Debts {
			if err := store.ImportDebt(debt); err != nil {
				fail(ColDebts, debt.ID, err)
			}
		}
	}

	if snap.Has(ColDebtPayments) {
		if err := store.ClearDebtPayments(); err != nil {
			return fmt.Errorf("failed to clear debt payments: %w", err)
		}
		for _, payment := range snap.Data.DebtPayments {
			if err := store.ImportDebtPayment(payment); err != nil {
				fail(ColDebtPayments, payment.ID, err)
			}
		}
	}

	if snap.Has(ColSettings) {
		if err := store.ClearSettings(); err != nil {
			return fmt.Errorf("failed to clear settings: %w", err)
		}
		for key, value := range snap.Data.Settings {
			if err := store.ImportSetting(key, value); err != nil {
				fail(ColSettings, key, err)
			}
		}
	}

	if snap.Has(ColSharedBudget) {
		if err := store.SetBudgetBalance(snap.Data.SharedBudget.Balance); err != nil {
			return fmt.Errorf("failed to set budget balance: %w", err)
		}
	}

	if failed > 0 {
		return &apperrors.PartialRestoreError{Failed: failed}
	}
	return nil
}
