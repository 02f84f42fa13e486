package models

import "time"

// SharedBudget is the singleton running balance. It is lazily materialized
// with a zero balance on first read and only ever mutated through the
// store's adjust/set operations, never by direct field writes.
type SharedBudget struct {
	ID          int64     `json:"id"`
	Balance     int64     `json:"balance"`
	LastUpdated time.Time `json:"lastUpdated"`
}
