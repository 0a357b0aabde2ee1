package builtin

import "github.com/22chandu94/DragonsDashboard/pkg/records"

// Require removes records that lack the listed fields. By default every
// field must be present; with Any set, one present field is enough.
type Require struct {
	Fields []string
	Any    bool

	// Dropped, when set, is incremented once per removed record.
	Dropped *int
}

// Apply filters in place and returns the shortened table.
func (r Require) Apply(in records.Table) records.Table {
	if len(r.Fields) == 0 {
		return in
	}
	out := in.Rows[:0]
	for _, rec := range in.Rows {
		if r.keep(rec) {
			out = append(out, rec)
		} else if r.Dropped != nil {
			*r.Dropped++
		}
	}
	in.Rows = out
	return in
}

func (r Require) keep(rec records.Record) bool {
	for _, f := range r.Fields {
		has := rec.Has(f)
		if r.Any && has {
			return true
		}
		if !r.Any && !has {
			return false
		}
	}
	return !r.Any
}
