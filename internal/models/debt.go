package models

import "time"

// Debt is a tracked obligation. Debts never alter the shared budget.
type Debt struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Amount   int64     `json:"amount"`
	Creditor string    `json:"creditor,omitempty"`
	Note     string    `json:"note,omitempty"`
	Created  time.Time `json:"created"`
}

// DebtPayment records a payment toward a debt. DebtID is a loose reference;
// no foreign-key constraint is enforced.
type DebtPayment struct {
	ID      string    `json:"id"`
	DebtID  string    `json:"debtId,omitempty"`
	Amount  int64     `json:"amount"`
	Note    string    `json:"note,omitempty"`
	Created time.Time `json:"created"`
}
