package models

// Setting is one key/value pair. Value is an opaque JSON-typed value
// (boolean, number, or string).
type Setting struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}
