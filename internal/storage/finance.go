package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mholecek/worktrack/internal/models"
)

// FinanceFilter narrows ListFinanceRecords. Zero-valued fields are ignored;
// non-zero fields are AND-combined. Date bounds compare against the record
// date.
type FinanceFilter struct {
	Type      models.RecordType
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
}

// CreateFinanceRecord persists an income or expense entry and applies its
// signed amount to the shared budget in the same transaction. Missing
// id/created are assigned and the date defaults to the creation time.
func (s *Store) CreateFinanceRecord(rec models.FinanceRecord) (models.FinanceRecord, error) {
	if !rec.Type.Valid() {
		return models.FinanceRecord{}, fmt.Errorf("unknown record type %q", rec.Type)
	}
	if rec.Amount <= 0 {
		return models.FinanceRecord{}, fmt.Errorf("amount must be positive, got %d", rec.Amount)
	}

	if rec.ID == "" {
		rec.ID = models.NewID()
	}
	if rec.Created.IsZero() {
		rec.Created = time.Now().UTC()
	}
	if rec.Date.IsZero() {
		rec.Date = rec.Created
	}

	err := s.withTx(func(tx *sql.Tx) error {
		if err := insertFinanceRecordTx(tx, rec); err != nil {
			return err
		}
		return applyBudgetDelta(tx, rec.BudgetDelta())
	})
	if err != nil {
		return models.FinanceRecord{}, err
	}
	return rec, nil
}

// ListFinanceRecords returns all records matching the filter, in unspecified
// order.
func (s *Store) ListFinanceRecords(filter FinanceFilter) ([]models.FinanceRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, type, amount, category, date, created
		FROM finance_records`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []models.FinanceRecord
	for rows.Next() {
		rec, err := scanFinanceRecord(rows)
		if err != nil {
			return nil, err
		}
		if !matchFinanceRecord(rec, filter) {
			continue
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

func matchFinanceRecord(rec models.FinanceRecord, f FinanceFilter) bool {
	if f.Type != "" && rec.Type != f.Type {
		return false
	}
	if f.Category != "" && rec.Category != f.Category {
		return false
	}
	if f.StartDate != nil && rec.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && rec.Date.After(*f.EndDate) {
		return false
	}
	return true
}

func insertFinanceRecordTx(tx *sql.Tx, rec models.FinanceRecord) error {
	_, err := tx.Exec(`
		INSERT INTO finance_records (id, type, amount, category, date, created)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Type, rec.Amount, rec.Category,
		formatTime(rec.Date), formatTime(rec.Created),
	)
	return err
}

func scanFinanceRecord(row rowScanner) (models.FinanceRecord, error) {
	var (
		rec           models.FinanceRecord
		date, created string
	)
	err := row.Scan(&rec.ID, &rec.Type, &rec.Amount, &rec.Category, &date, &created)
	if err != nil {
		return models.FinanceRecord{}, err
	}

	if rec.Date, err = parseTime(date); err != nil {
		return models.FinanceRecord{}, fmt.Errorf("failed to parse date for finance record %s: %w", rec.ID, err)
	}
	if rec.Created, err = parseTime(created); err != nil {
		return models.FinanceRecord{}, fmt.Errorf("failed to parse created for finance record %s: %w", rec.ID, err)
	}

	return rec, nil
}
