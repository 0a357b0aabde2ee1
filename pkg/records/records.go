// Package records defines the in-memory row model shared by the parser,
// transform chain and aggregators.
//
// A Record maps a column name to a value. Values are nil (missing), string
// (as read from the source), or a Go number after coercion. A Table keeps the
// column order of its source so writers and tests can reason about layout.
package records

import "strings"

// Record is a single row keyed by column name.
type Record map[string]any

// String returns the trimmed string form of key, or "" when the value is
// missing or not a string.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// Has reports whether key holds a non-nil, non-empty value.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered collection of records read from one source.
type Table struct {
	// Name identifies the source (tournament) the rows came from.
	Name string

	// Columns lists the header in source order.
	Columns []string

	// Rows holds the data rows.
	Rows []Record
}

// HasColumn reports whether the table header contains col.
func (t Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }
