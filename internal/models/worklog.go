package models

import "time"

// WorkLog is a completed timed work session. Duration is stored redundantly
// in milliseconds and kept consistent with the start/end timestamps by the
// repository. Created is set once at insert and never changes.
type WorkLog struct {
	ID          string    `json:"id"`
	Person      Person    `json:"person"`
	Activity    string    `json:"activity"`
	Subcategory string    `json:"subcategory,omitempty"`
	Note        string    `json:"note,omitempty"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	DurationMS  int64     `json:"duration"`
	Earnings    int64     `json:"earnings"`
	Created     time.Time `json:"created"`
}

// Duration returns the session length.
func (l WorkLog) Duration() time.Duration {
	return time.Duration(l.DurationMS) * time.Millisecond
}

// Deduction returns the amount withheld from this log's earnings.
func (l WorkLog) Deduction() int64 {
	return DeductionFor(l.Person, l.Earnings)
}

// Net returns earnings after deduction.
func (l WorkLog) Net() int64 {
	return l.Earnings - l.Deduction()
}
