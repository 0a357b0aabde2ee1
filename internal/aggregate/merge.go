package aggregate

import (
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/22chandu94/DragonsDashboard/pkg/records"
)

// Contribution is one source row credited to a player.
type Contribution struct {
	// Source is the zero-based position of the table the row came from.
	Source int
	Record records.Record
}

// Player is one merged identity and every row that contributed to it, in
// source order.
type Player struct {
	ID            string
	NameKey       string
	Contributions []Contribution
}

// Merged is the result of joining a category's tables.
type Merged struct {
	Category string
	Sources  int
	Players  []*Player

	// Keys records the join column used for each step; Keys[i] is the key
	// used to attach table i+1.
	Keys []string
}

// Degraded reports whether any step had to match players by name.
func (m Merged) Degraded() bool {
	for _, k := range m.Keys {
		if k == ColName {
			return true
		}
	}
	return false
}

// Merge outer-joins the normalized tables in order. Each step matches on
// player_id when the result so far and the incoming table both carry it, and
// otherwise on the folded player name. Several rows for one identity inside
// a single table all contribute to that player.
func Merge(category string, tables []records.Table, log logrus.FieldLogger) (Merged, error) {
	if len(tables) < 2 {
		return Merged{}, &InsufficientSourcesError{Category: category, Got: len(tables)}
	}
	log = orDiscard(log).WithField("category", category)

	m := Merged{Category: category, Sources: len(tables)}
	hasID := tables[0].HasColumn(ColPlayerID)
	hasName := tables[0].HasColumn(ColName)
	if !hasID && !hasName {
		return Merged{}, &MissingKeyError{Category: category, Source: 0, Table: tables[0].Name, Want: identityColumns(tables[0])}
	}

	first := ColPlayerID
	if !hasID {
		first = ColName
	}
	idx := newIndex()
	for _, r := range tables[0].Rows {
		m.attach(idx, first, 0, r)
	}

	for i := 1; i < len(tables); i++ {
		t := tables[i]
		var key string
		switch {
		case hasID && t.HasColumn(ColPlayerID):
			key = ColPlayerID
		case hasName && t.HasColumn(ColName):
			key = ColName
			log.WithFields(logrus.Fields{"source": t.Name, "step": i}).
				Warn("no shared player_id column; matching players by name")
		default:
			return Merged{}, &MissingKeyError{
				Category: category,
				Source:   i,
				Table:    t.Name,
				Have:     keyList(hasID, hasName),
				Want:     identityColumns(t),
			}
		}
		m.Keys = append(m.Keys, key)

		idx = m.reindex()
		for _, r := range t.Rows {
			m.attach(idx, key, i, r)
		}
		hasID = hasID || t.HasColumn(ColPlayerID)
		hasName = hasName || t.HasColumn(ColName)
	}
	return m, nil
}

type index struct {
	byID   map[string]*Player
	byName map[string]*Player
}

func newIndex() index {
	return index{byID: map[string]*Player{}, byName: map[string]*Player{}}
}

func (m *Merged) reindex() index {
	idx := newIndex()
	for _, p := range m.Players {
		idx.add(p)
	}
	return idx
}

func (idx index) add(p *Player) {
	if p.ID != "" {
		if _, ok := idx.byID[p.ID]; !ok {
			idx.byID[p.ID] = p
		}
	}
	if p.NameKey != "" {
		if _, ok := idx.byName[p.NameKey]; !ok {
			idx.byName[p.NameKey] = p
		}
	}
}

// attach credits r to the player it matches on key, creating one if none
// does. Rows without a value for key always start a new player.
func (m *Merged) attach(idx index, key string, source int, r records.Record) {
	id := PlayerIDKey(r[ColPlayerID])
	name := NameKey(r.String(ColName))

	var p *Player
	switch key {
	case ColPlayerID:
		if id != "" {
			p = idx.byID[id]
		}
	case ColName:
		if name != "" {
			p = idx.byName[name]
		}
	}
	if p == nil {
		p = &Player{ID: id, NameKey: name}
		m.Players = append(m.Players, p)
	}
	if p.ID == "" {
		p.ID = id
	}
	if p.NameKey == "" {
		p.NameKey = name
	}
	p.Contributions = append(p.Contributions, Contribution{Source: source, Record: r})
	idx.add(p)
}

// PlayerIDKey renders an identifier value as a comparable string. Integral
// numbers lose any ".0" a spreadsheet export may have added.
func PlayerIDKey(v any) string {
	var s string
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		s = x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}

func identityColumns(t records.Table) []string {
	return keyList(t.HasColumn(ColPlayerID), t.HasColumn(ColName))
}

func keyList(id, name bool) []string {
	var out []string
	if id {
		out = append(out, ColPlayerID)
	}
	if name {
		out = append(out, ColName)
	}
	return out
}
