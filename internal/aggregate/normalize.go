package aggregate

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/22chandu94/DragonsDashboard/pkg/records"
)

var folder = cases.Fold()

// CanonicalColumn cleans a source header and applies synonyms.
func CanonicalColumn(col string, synonyms map[string]string) string {
	c := strings.TrimPrefix(col, "\uFEFF")
	c = strings.ToLower(strings.Join(strings.Fields(c), "_"))
	if to, ok := synonyms[c]; ok {
		return to
	}
	return c
}

// CleanName trims a display name, collapses internal whitespace runs (NBSP
// included) to one space and composes it to NFC.
func CleanName(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(strings.ReplaceAll(s, "\u00a0", " ")), " "))
}

// NameKey is the identity used when players are matched by name.
func NameKey(s string) string {
	return folder.String(CleanName(s))
}

// Normalize returns a copy of t using s's vocabulary. Rows are cloned, so t
// is left untouched. When two source columns map to one canonical name, the
// first non-missing value in header order wins.
func Normalize(t records.Table, s Schema) records.Table {
	out := records.Table{Name: t.Name}

	rename := make(map[string]string, len(t.Columns))
	seen := map[string]bool{}
	for _, c := range t.Columns {
		canon := CanonicalColumn(c, s.Synonyms)
		rename[c] = canon
		if !seen[canon] {
			seen[canon] = true
			out.Columns = append(out.Columns, canon)
		}
	}

	out.Rows = make([]records.Record, 0, len(t.Rows))
	for _, r := range t.Rows {
		nr := make(records.Record, len(r))
		put := func(canon string, v any) {
			if prev, exists := nr[canon]; exists && prev != nil {
				return
			}
			nr[canon] = v
		}
		for _, c := range t.Columns {
			if v, ok := r[c]; ok {
				put(rename[c], v)
			}
		}
		for k, v := range r {
			if _, known := rename[k]; !known {
				put(CanonicalColumn(k, s.Synonyms), v)
			}
		}
		if name := nr.String(ColName); name != "" {
			nr[ColName] = CleanName(name)
		}
		out.Rows = append(out.Rows, nr)
	}
	return out
}
