package models

import (
	"fmt"
	"time"
)

// RecordType classifies a finance record.
type RecordType string

const (
	RecordIncome  RecordType = "income"
	RecordExpense RecordType = "expense"
)

func (t RecordType) Valid() bool {
	return t == RecordIncome || t == RecordExpense
}

// ParseRecordType validates a record type from user input.
func ParseRecordType(s string) (RecordType, error) {
	t := RecordType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown record type %q (valid: income, expense)", s)
	}
	return t, nil
}

// FinanceRecord is a single income or expense entry. Amount is always
// positive; the type decides the sign of its budget contribution.
type FinanceRecord struct {
	ID       string     `json:"id"`
	Type     RecordType `json:"type"`
	Amount   int64      `json:"amount"`
	Category string     `json:"category,omitempty"`
	Date     time.Time  `json:"date"`
	Created  time.Time  `json:"created"`
}

// BudgetDelta returns the signed contribution of this record to the shared
// budget: +amount for income, -amount for expense.
func (r FinanceRecord) BudgetDelta() int64 {
	if r.Type == RecordIncome {
		return r.Amount
	}
	return -r.Amount
}
