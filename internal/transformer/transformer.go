// Package transformer applies row-level clean-up to a parsed source table
// before it reaches an aggregator.
package transformer

import "github.com/22chandu94/DragonsDashboard/pkg/records"

// Transformer rewrites a table. Implementations may mutate rows in place and
// return the same backing slice.
type Transformer interface {
	Apply(records.Table) records.Table
}

// Chain is an ordered list of transformers.
type Chain []Transformer

// Apply runs every transformer in order, feeding each the previous output.
func (c Chain) Apply(in records.Table) records.Table {
	out := in
	for _, t := range c {
		out = t.Apply(out)
	}
	return out
}

// Func adapts a plain function to Transformer.
type Func func(records.Table) records.Table

// Apply calls f.
func (f Func) Apply(in records.Table) records.Table { return f(in) }
