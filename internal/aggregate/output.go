package aggregate

import (
	"strconv"

	"github.com/22chandu94/DragonsDashboard/pkg/records"
)

// Output is a finalized table ready to be written: display header plus one
// string slice per row, in output order.
type Output struct {
	Category string
	Header   []string
	Rows     [][]string
}

// Len returns the number of rows.
func (o Output) Len() int { return len(o.Rows) }

// Table converts o to a records.Table keyed by the display header.
func (o Output) Table() records.Table {
	t := records.Table{Name: o.Category, Columns: append([]string(nil), o.Header...)}
	for _, row := range o.Rows {
		r := make(records.Record, len(o.Header))
		for i, h := range o.Header {
			if i < len(row) {
				r[h] = row[i]
			}
		}
		t.Rows = append(t.Rows, r)
	}
	return t
}

func itoa(n int) string { return strconv.Itoa(n) }

// ftoa formats a rate the way the published files always have: shortest
// representation, with ".0" kept on whole numbers.
func ftoa(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	for _, c := range s {
		if c == '.' {
			return s
		}
	}
	return s + ".0"
}
