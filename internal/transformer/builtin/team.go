package builtin

import (
	"strings"

	"github.com/22chandu94/DragonsDashboard/pkg/records"
)

// TeamFilter keeps only rows whose Column equals Team. Comparison ignores
// case and surrounding whitespace. A table without Column passes through
// unchanged; callers that care should check HasColumn first.
type TeamFilter struct {
	Column string
	Team   string
}

func (f TeamFilter) Apply(in records.Table) records.Table {
	if f.Column == "" || !in.HasColumn(f.Column) {
		return in
	}
	want := strings.TrimSpace(f.Team)
	out := in.Rows[:0]
	for _, r := range in.Rows {
		if strings.EqualFold(r.String(f.Column), want) {
			out = append(out, r)
		}
	}
	in.Rows = out
	return in
}

// DropColumns removes the named columns from the header and from every row.
// Names that are not present are ignored.
type DropColumns struct {
	Columns []string
}

func (d DropColumns) Apply(in records.Table) records.Table {
	if len(d.Columns) == 0 {
		return in
	}
	drop := make(map[string]struct{}, len(d.Columns))
	for _, c := range d.Columns {
		drop[c] = struct{}{}
	}

	cols := make([]string, 0, len(in.Columns))
	for _, c := range in.Columns {
		if _, ok := drop[c]; !ok {
			cols = append(cols, c)
		}
	}
	in.Columns = cols

	for _, r := range in.Rows {
		for c := range drop {
			delete(r, c)
		}
	}
	return in
}
