package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mholecek/worktrack/internal/models"
)

// CreateDebt persists a debt. Debts never touch the shared budget.
func (s *Store) CreateDebt(debt models.Debt) (models.Debt, error) {
	if debt.Amount <= 0 {
		return models.Debt{}, fmt.Errorf("amount must be positive, got %d", debt.Amount)
	}

	if debt.ID == "" {
		debt.ID = models.NewID()
	}
	if debt.Created.IsZero() {
		debt.Created = time.Now().UTC()
	}

	err := s.withTx(func(tx *sql.Tx) error {
		return insertDebtTx(tx, debt)
	})
	if err != nil {
		return models.Debt{}, err
	}
	return debt, nil
}

// ListDebts returns every debt.
func (s *Store) ListDebts() ([]models.Debt, error) {
	rows, err := s.db.Query("SELECT id, name, amount, creditor, note, created FROM debts")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var debts []models.Debt
	for rows.Next() {
		var (
			d       models.Debt
			created string
		)
		if err := rows.Scan(&d.ID, &d.Name, &d.Amount, &d.Creditor, &d.Note, &created); err != nil {
			return nil, err
		}
		if d.Created, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("failed to parse created for debt %s: %w", d.ID, err)
		}
		debts = append(debts, d)
	}

	return debts, rows.Err()
}

// CreateDebtPayment persists a payment. The debt reference is not enforced.
func (s *Store) CreateDebtPayment(payment models.DebtPayment) (models.DebtPayment, error) {
	if payment.Amount <= 0 {
		return models.DebtPayment{}, fmt.Errorf("amount must be positive, got %d", payment.Amount)
	}

	if payment.ID == "" {
		payment.ID = models.NewID()
	}
	if payment.Created.IsZero() {
		payment.Created = time.Now().UTC()
	}

	err := s.withTx(func(tx *sql.Tx) error {
		return insertDebtPaymentTx(tx, payment)
	})
	if err != nil {
		return models.DebtPayment{}, err
	}
	return payment, nil
}

// ListDebtPayments returns every payment.
func (s *Store) ListDebtPayments() ([]models.DebtPayment, error) {
	rows, err := s.db.Query("SELECT id, debt_id, amount, note, created FROM debt_payments")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.DebtPayment
	for rows.Next() {
		var (
			p       models.DebtPayment
			created string
		)
		if err := rows.Scan(&p.ID, &p.DebtID, &p.Amount, &p.Note, &created); err != nil {
			return nil, err
		}
		if p.Created, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("failed to parse created for debt payment %s: %w", p.ID, err)
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

func insertDebtTx(tx *sql.Tx, d models.Debt) error {
	_, err := tx.Exec(`
		INSERT INTO debts (id, name, amount, creditor, note, created)
		VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.Amount, d.Creditor, d.Note, formatTime(d.Created),
	)
	return err
}

func insertDebtPaymentTx(tx *sql.Tx, p models.DebtPayment) error {
	_, err := tx.Exec(`
		INSERT INTO debt_payments (id, debt_id, amount, note, created)
		VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.DebtID, p.Amount, p.Note, formatTime(p.Created),
	)
	return err
}
