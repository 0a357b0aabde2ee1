// Package builtin contains the reusable transformers used by the season
// pipeline: Normalize, TeamFilter, DropColumns and Require.
package builtin

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/22chandu94/DragonsDashboard/pkg/records"
)

const nbsp = "\u00a0"

// Normalize cleans every string value in place: NO-BREAK SPACE becomes an
// ASCII space, text is converted to Unicode NFC, and surrounding whitespace
// is trimmed. Values that end up empty become nil.
type Normalize struct{}

func (Normalize) Apply(in records.Table) records.Table {
	for _, r := range in.Rows {
		for k, v := range r {
			s, ok := v.(string)
			if !ok {
				continue
			}
			s = strings.TrimSpace(norm.NFC.String(strings.ReplaceAll(s, nbsp, " ")))
			if s == "" {
				r[k] = nil
				continue
			}
			r[k] = s
		}
	}
	return in
}
