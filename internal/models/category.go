package models

// Category is a task or expense category, keyed by name. Inactive categories
// are excluded from active listings but retained so historical logs keep
// resolving.
type Category struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}
