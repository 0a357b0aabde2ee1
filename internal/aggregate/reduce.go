package aggregate

import (
	"github.com/22chandu94/DragonsDashboard/internal/parser/numbers"
)

// Totals holds one player's reduced statistics. Every statistic declared in
// the schema is present, whether or not any source reported it.
type Totals struct {
	PlayerID string

	// Sources lists the distinct table positions the player appeared in.
	Sources []int

	num  map[string]float64
	text map[string]string
}

// Num returns a Sum or Max statistic.
func (t Totals) Num(name string) float64 { return t.num[name] }

// Int returns a Sum or Max statistic truncated to an integer.
func (t Totals) Int(name string) int { return int(t.num[name]) }

// Text returns a First statistic, or "" when no source had a value.
func (t Totals) Text(name string) string { return t.text[name] }

// TextOr returns Text(name), or def when it is empty.
func (t Totals) TextOr(name, def string) string {
	if v := t.text[name]; v != "" {
		return v
	}
	return def
}

// Reduce applies the schema's reductions to p's contributions. Values that
// are missing or not numeric count as 0.
func Reduce(p *Player, s Schema) Totals {
	t := Totals{
		PlayerID: p.ID,
		num:      make(map[string]float64, len(s.Stats)),
		text:     map[string]string{},
	}
	for _, st := range s.Stats {
		switch st.Kind {
		case Sum:
			var total float64
			for _, c := range p.Contributions {
				total += numbers.FloatOr(c.Record[st.Name], 0)
			}
			t.num[st.Name] = total
		case Max:
			var best float64
			for _, c := range p.Contributions {
				if v := numbers.FloatOr(c.Record[st.Name], 0); v > best {
					best = v
				}
			}
			t.num[st.Name] = best
		case First:
			for _, c := range p.Contributions {
				if v := c.Record.String(st.Name); v != "" {
					t.text[st.Name] = v
					break
				}
			}
		}
	}

	seen := map[int]bool{}
	for _, c := range p.Contributions {
		if !seen[c.Source] {
			seen[c.Source] = true
			t.Sources = append(t.Sources, c.Source)
		}
	}
	return t
}

// ReduceAll reduces every merged player, keeping merge order.
func ReduceAll(m Merged, s Schema) []Totals {
	out := make([]Totals, 0, len(m.Players))
	for _, p := range m.Players {
		out = append(out, Reduce(p, s))
	}
	return out
}
