package transformer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/22chandu94/DragonsDashboard/pkg/records"
)

/*
markTransformer stamps every row with key -> rank and appends rank to a shared
log so tests can assert call order.
*/
type markTransformer struct {
	key  string
	rank int
	log  *[]int
}

func (m markTransformer) Apply(in records.Table) records.Table {
	*m.log = append(*m.log, m.rank)
	for _, r := range in.Rows {
		r[m.key] = m.rank
	}
	return in
}

func TestChain_AppliesInOrder(t *testing.T) {
	var log []int
	c := Chain{
		markTransformer{key: "stage", rank: 1, log: &log},
		markTransformer{key: "stage", rank: 2, log: &log},
		markTransformer{key: "stage", rank: 3, log: &log},
	}

	in := records.Table{Name: "t20", Rows: []records.Record{{"name": "a"}, {"name": "b"}}}
	out := c.Apply(in)

	assert.Equal(t, []int{1, 2, 3}, log)
	for _, r := range out.Rows {
		assert.Equal(t, 3, r["stage"], "last transformer wins")
	}
	assert.Equal(t, "t20", out.Name)
}

func TestChain_EmptyIsIdentity(t *testing.T) {
	in := records.Table{Columns: []string{"name"}, Rows: []records.Record{{"name": "a"}}}
	assert.Equal(t, in, Chain(nil).Apply(in))
}

func TestFunc(t *testing.T) {
	drop := Func(func(in records.Table) records.Table {
		in.Rows = in.Rows[:0]
		return in
	})
	out := Chain{drop}.Apply(records.Table{Rows: []records.Record{{"x": 1}}})
	assert.Zero(t, out.Len())
}
