package aggregate

import (
	"strings"

	"github.com/22chandu94/DragonsDashboard/pkg/records"
)

// table builds a records.Table from a comma-separated header and rows.
// Empty cells become nil, as the CSV parser produces.
func table(name, header string, rows ...string) records.Table {
	cols := strings.Split(header, ",")
	t := records.Table{Name: name, Columns: cols}
	for _, line := range rows {
		r := records.Record{}
		for i, v := range strings.Split(line, ",") {
			if i >= len(cols) {
				break
			}
			if v == "" {
				r[cols[i]] = nil
				continue
			}
			r[cols[i]] = v
		}
		t.Rows = append(t.Rows, r)
	}
	return t
}
