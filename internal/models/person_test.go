package models

import (
	"testing"
	"time"
)

func TestEarningsFor(t *testing.T) {
	hour := time.Hour.Milliseconds()

	tests := []struct {
		name       string
		person     Person
		durationMS int64
		want       int64
	}{
		{"maru one hour", PersonMaru, hour, 275},
		{"maru two hours", PersonMaru, 2 * hour, 550},
		{"marty one hour", PersonMarty, hour, 400},
		{"maru half hour rounds", PersonMaru, hour / 2, 138},
		{"marty 90 minutes", PersonMarty, hour + hour/2, 600},
		{"zero duration", PersonMaru, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EarningsFor(tt.person, tt.durationMS); got != tt.want {
				t.Errorf("EarningsFor(%s, %d) = %d, want %d", tt.person, tt.durationMS, got, tt.want)
			}
		})
	}
}

func TestDeductionFor(t *testing.T) {
	if got := DeductionFor(PersonMaru, 1000); got != 333 {
		t.Errorf("DeductionFor(maru, 1000) = %d, want 333", got)
	}
	if got := DeductionFor(PersonMarty, 1000); got != 500 {
		t.Errorf("DeductionFor(marty, 1000) = %d, want 500", got)
	}
}

func TestParsePerson(t *testing.T) {
	if _, err := ParsePerson("maru"); err != nil {
		t.Errorf("ParsePerson(maru) failed: %v", err)
	}
	if _, err := ParsePerson("marty"); err != nil {
		t.Errorf("ParsePerson(marty) failed: %v", err)
	}
	if _, err := ParsePerson("someone"); err == nil {
		t.Error("ParsePerson(someone) succeeded, want error")
	}
	if _, err := ParsePerson(""); err == nil {
		t.Error("ParsePerson(empty) succeeded, want error")
	}
}

func TestWorkLogNet(t *testing.T) {
	log := WorkLog{Person: PersonMarty, Earnings: 800}
	if got := log.Deduction(); got != 400 {
		t.Errorf("Deduction() = %d, want 400", got)
	}
	if got := log.Net(); got != 400 {
		t.Errorf("Net() = %d, want 400", got)
	}
}
