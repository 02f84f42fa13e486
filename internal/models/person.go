package models

import (
	"fmt"
	"math"
)

// Person identifies one of the two tracked identities. Each carries a fixed
// hourly rate and a fixed deduction fraction.
type Person string

const (
	PersonMaru  Person = "maru"
	PersonMarty Person = "marty"
)

// Rates holds the hourly rate per person in whole currency units.
var Rates = map[Person]int64{
	PersonMaru:  275,
	PersonMarty: 400,
}

// DeductionRates holds the deduction fraction per person.
var DeductionRates = map[Person]float64{
	PersonMaru:  0.3333,
	PersonMarty: 0.5,
}

// Persons lists the valid identities in display order.
var Persons = []Person{PersonMaru, PersonMarty}

func (p Person) Valid() bool {
	_, ok := Rates[p]
	return ok
}

// ParsePerson validates a person name from user input.
func ParsePerson(s string) (Person, error) {
	p := Person(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown person %q (valid: maru, marty)", s)
	}
	return p, nil
}

// EarningsFor derives earnings from a duration in milliseconds:
// round(duration_hours * rate), in whole currency units.
func EarningsFor(p Person, durationMS int64) int64 {
	hours := float64(durationMS) / 3600000.0
	return int64(math.Round(hours * float64(Rates[p])))
}

// DeductionFor returns the deduction withheld from the given earnings.
func DeductionFor(p Person, earnings int64) int64 {
	return int64(math.Round(float64(earnings) * DeductionRates[p]))
}
