package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/mholecek/worktrack/internal/errors"
	"github.com/mholecek/worktrack/internal/models"
)

// WorkLogFilter narrows ListWorkLogs. Zero-valued fields are ignored;
// non-zero fields are AND-combined.
type WorkLogFilter struct {
	Person    models.Person
	Activity  string
	StartDate *time.Time // log.StartTime >= StartDate
	EndDate   *time.Time // log.EndTime <= EndDate
}

// CreateWorkLog persists a work session and credits its earnings to the
// shared budget in the same transaction. Missing id/created are assigned,
// the stored duration is derived from the timestamps, and earnings default
// to round(duration_hours * rate) for the log's person.
func (s *Store) CreateWorkLog(log models.WorkLog) (models.WorkLog, error) {
	if !log.Person.Valid() {
		return models.WorkLog{}, fmt.Errorf("unknown person %q", log.Person)
	}
	if log.EndTime.Before(log.StartTime) {
		return models.WorkLog{}, fmt.Errorf("end time %s is before start time %s", log.EndTime.Format(time.RFC3339), log.StartTime.Format(time.RFC3339))
	}

	if log.ID == "" {
		log.ID = models.NewID()
	}
	if log.Created.IsZero() {
		log.Created = time.Now().UTC()
	}

	// Duration is stored redundantly; derive it so it can never disagree
	// with the timestamps.
	log.DurationMS = log.EndTime.Sub(log.StartTime).Milliseconds()
	if log.Earnings == 0 {
		log.Earnings = models.EarningsFor(log.Person, log.DurationMS)
	}

	err := s.withTx(func(tx *sql.Tx) error {
		if err := insertWorkLogTx(tx, log); err != nil {
			return err
		}
		return applyBudgetDelta(tx, log.Earnings)
	})
	if err != nil {
		return models.WorkLog{}, err
	}
	return log, nil
}

// GetWorkLog returns a single log by id, or ErrNotFound.
func (s *Store) GetWorkLog(id string) (models.WorkLog, error) {
	row := s.db.QueryRow(`
		SELECT id, person, activity, subcategory, note, start_time, end_time, duration_ms, earnings, created
		FROM work_logs WHERE id = ?`, id)

	log, err := scanWorkLog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.WorkLog{}, fmt.Errorf("work log %s: %w", id, apperrors.ErrNotFound)
		}
		return models.WorkLog{}, err
	}
	return log, nil
}

// UpdateWorkLog replaces an existing log and applies the earnings difference
// to the budget, in one transaction. An absent id is ErrNotFound.
func (s *Store) UpdateWorkLog(log models.WorkLog) (models.WorkLog, error) {
	if !log.Person.Valid() {
		return models.WorkLog{}, fmt.Errorf("unknown person %q", log.Person)
	}
	if log.EndTime.Before(log.StartTime) {
		return models.WorkLog{}, fmt.Errorf("end time %s is before start time %s", log.EndTime.Format(time.RFC3339), log.StartTime.Format(time.RFC3339))
	}
	log.DurationMS = log.EndTime.Sub(log.StartTime).Milliseconds()

	err := s.withTx(func(tx *sql.Tx) error {
		old, err := getWorkLogTx(tx, log.ID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("work log %s: %w", log.ID, apperrors.ErrNotFound)
			}
			return err
		}

		// Created is immutable once assigned.
		log.Created = old.Created

		_, err = tx.Exec(`
			UPDATE work_logs
			SET person = ?, activity = ?, subcategory = ?, note = ?, start_time = ?, end_time = ?, duration_ms = ?, earnings = ?
			WHERE id = ?`,
			log.Person, log.Activity, log.Subcategory, log.Note,
			formatTime(log.StartTime), formatTime(log.EndTime), log.DurationMS, log.Earnings,
			log.ID,
		)
		if err != nil {
			return err
		}

		return applyBudgetDelta(tx, log.Earnings-old.Earnings)
	})
	if err != nil {
		return models.WorkLog{}, err
	}
	return log, nil
}

// DeleteWorkLog removes a log and debits its earnings from the budget in one
// transaction. Deleting an absent id is a silent no-op with no budget
// change; only updates report ErrNotFound.
func (s *Store) DeleteWorkLog(id string) error {
	return s.withTx(func(tx *sql.Tx) error {
		old, err := getWorkLogTx(tx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return err
		}

		if _, err := tx.Exec("DELETE FROM work_logs WHERE id = ?", id); err != nil {
			return err
		}
		return applyBudgetDelta(tx, -old.Earnings)
	})
}

// ListWorkLogs returns all logs matching the filter, in unspecified order.
func (s *Store) ListWorkLogs(filter WorkLogFilter) ([]models.WorkLog, error) {
	rows, err := s.db.Query(`
		SELECT id, person, activity, subcategory, note, start_time, end_time, duration_ms, earnings, created
		FROM work_logs`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.WorkLog
	for rows.Next() {
		log, err := scanWorkLog(rows)
		if err != nil {
			return nil, err
		}
		if !matchWorkLog(log, filter) {
			continue
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

func matchWorkLog(log models.WorkLog, f WorkLogFilter) bool {
	if f.Person != "" && log.Person != f.Person {
		return false
	}
	if f.Activity != "" && log.Activity != f.Activity {
		return false
	}
	if f.StartDate != nil && log.StartTime.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && log.EndTime.After(*f.EndDate) {
		return false
	}
	return true
}

func getWorkLogTx(tx *sql.Tx, id string) (models.WorkLog, error) {
	row := tx.QueryRow(`
		SELECT id, person, activity, subcategory, note, start_time, end_time, duration_ms, earnings, created
		FROM work_logs WHERE id = ?`, id)
	return scanWorkLog(row)
}

// insertWorkLogTx writes a fully-populated log. Restore reuses it to keep
// original ids and timestamps intact.
func insertWorkLogTx(tx *sql.Tx, log models.WorkLog) error {
	_, err := tx.Exec(`
		INSERT INTO work_logs (id, person, activity, subcategory, note, start_time, end_time, duration_ms, earnings, created)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		log.ID, log.Person, log.Activity, log.Subcategory, log.Note,
		formatTime(log.StartTime), formatTime(log.EndTime), log.DurationMS, log.Earnings,
		formatTime(log.Created),
	)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWorkLog(row rowScanner) (models.WorkLog, error) {
	var (
		log                         models.WorkLog
		startTime, endTime, created string
	)
	err := row.Scan(
		&log.ID, &log.Person, &log.Activity, &log.Subcategory, &log.Note,
		&startTime, &endTime, &log.DurationMS, &log.Earnings, &created,
	)
	if err != nil {
		return models.WorkLog{}, err
	}

	if log.StartTime, err = parseTime(startTime); err != nil {
		return models.WorkLog{}, fmt.Errorf("failed to parse start_time for work log %s: %w", log.ID, err)
	}
	if log.EndTime, err = parseTime(endTime); err != nil {
		return models.WorkLog{}, fmt.Errorf("failed to parse end_time for work log %s: %w", log.ID, err)
	}
	if log.Created, err = parseTime(created); err != nil {
		return models.WorkLog{}, fmt.Errorf("failed to parse created for work log %s: %w", log.ID, err)
	}

	return log, nil
}
