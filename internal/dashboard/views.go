package dashboard

import (
	"sort"
	"strings"

	"github.com/22chandu94/DragonsDashboard/internal/aggregate"
	"github.com/22chandu94/DragonsDashboard/internal/parser/numbers"
)

// Leaderboard thresholds.
const (
	LeaderboardSize      = 10
	DefaultMinInnings    = 5
	MinEconomyOvers      = 10.0
	MinStrikeRateWickets = 5
)

// Share is one slice of a pie chart.
type Share struct {
	Name  string
	Value float64
}

// Overview is the team summary on the home page.
type Overview struct {
	TotalRuns int
	// Matches is the most matches any single player appeared in.
	Matches      int
	Fours        int
	Sixes        int
	Contribution []Share
	TopScorers   []aggregate.UnifiedRow
}

// NewOverview summarizes the unified player table.
func NewOverview(players []aggregate.UnifiedRow) Overview {
	var ov Overview
	scorers := make([]aggregate.UnifiedRow, 0, len(players))
	for _, p := range players {
		ov.TotalRuns += p.TotalRuns
		ov.Fours += p.Fours
		ov.Sixes += p.Sixes
		if p.TotalMatch > ov.Matches {
			ov.Matches = p.TotalMatch
		}
		if p.TotalRuns > 0 {
			scorers = append(scorers, p)
		}
	}
	sort.SliceStable(scorers, func(i, j int) bool { return scorers[i].TotalRuns > scorers[j].TotalRuns })
	for _, p := range scorers {
		ov.Contribution = append(ov.Contribution, Share{Name: p.Name, Value: float64(p.TotalRuns)})
	}
	ov.TopScorers = top(scorers, LeaderboardSize)
	return ov
}

// BoundaryLine is one player's boundary hitting.
type BoundaryLine struct {
	Name         string
	Runs         int
	Fours        int
	Sixes        int
	Boundaries   int
	BoundaryRuns int
	// Percent is the share of runs scored in boundaries; 0 without runs.
	Percent float64
}

// BattingView holds the batting leaderboards.
type BattingView struct {
	MinInnings  int
	Averages    []aggregate.UnifiedRow
	StrikeRates []aggregate.UnifiedRow
	// BoundaryShare covers players with runs, by Percent.
	BoundaryShare []BoundaryLine
	// Hitters covers every player, by Boundaries.
	Hitters []BoundaryLine
}

// NewBattingView builds the batting leaderboards. Averages only include
// players with at least minInnings innings; strike rates only players who
// faced a ball.
func NewBattingView(players []aggregate.UnifiedRow, minInnings int) BattingView {
	v := BattingView{MinInnings: minInnings}
	for _, p := range players {
		if p.Innings >= minInnings {
			v.Averages = append(v.Averages, p)
		}
		if p.BallFaced > 0 {
			v.StrikeRates = append(v.StrikeRates, p)
		}
		line := boundaryLine(p)
		v.Hitters = append(v.Hitters, line)
		if p.TotalRuns > 0 {
			v.BoundaryShare = append(v.BoundaryShare, line)
		}
	}
	sort.SliceStable(v.Averages, func(i, j int) bool { return v.Averages[i].Average > v.Averages[j].Average })
	sort.SliceStable(v.StrikeRates, func(i, j int) bool { return v.StrikeRates[i].StrikeRate > v.StrikeRates[j].StrikeRate })
	sort.SliceStable(v.BoundaryShare, func(i, j int) bool { return v.BoundaryShare[i].Percent > v.BoundaryShare[j].Percent })
	sort.SliceStable(v.Hitters, func(i, j int) bool { return v.Hitters[i].Boundaries > v.Hitters[j].Boundaries })
	return v
}

func boundaryLine(p aggregate.UnifiedRow) BoundaryLine {
	l := BoundaryLine{
		Name:         p.Name,
		Runs:         p.TotalRuns,
		Fours:        p.Fours,
		Sixes:        p.Sixes,
		Boundaries:   p.Fours + p.Sixes,
		BoundaryRuns: p.Fours*4 + p.Sixes*6,
	}
	if p.TotalRuns > 0 {
		l.Percent = numbers.Round(float64(l.BoundaryRuns)/float64(p.TotalRuns)*100, 2)
	}
	return l
}

// StyleCount is how many bowlers share a bowling style.
type StyleCount struct {
	Style string
	Count int
}

// BowlingView holds the bowling leaderboards.
type BowlingView struct {
	Economy    []aggregate.BowlingRow
	StrikeRate []aggregate.BowlingRow
	Styles     []StyleCount
	ByStyle    []StyleGroup
	All        []aggregate.BowlingRow
}

// StyleGroup is every bowler of one style, in input order.
type StyleGroup struct {
	Style   string
	Bowlers []aggregate.BowlingRow
}

// NewBowlingView builds the bowling leaderboards: the best economies among
// bowlers with MinEconomyOvers overs, the best strike rates among bowlers
// with MinStrikeRateWickets wickets, and the style distribution.
func NewBowlingView(rows []aggregate.BowlingRow) BowlingView {
	v := BowlingView{All: rows}
	counts := map[string]int{}
	groups := map[string][]aggregate.BowlingRow{}
	for _, r := range rows {
		if r.OversBowled >= MinEconomyOvers {
			v.Economy = append(v.Economy, r)
		}
		if r.Wickets >= MinStrikeRateWickets {
			v.StrikeRate = append(v.StrikeRate, r)
		}
		style := strings.TrimSpace(r.Style)
		if style == "" {
			style = aggregate.Fallback
		}
		counts[style]++
		groups[style] = append(groups[style], r)
	}
	sort.SliceStable(v.Economy, func(i, j int) bool { return v.Economy[i].Economy < v.Economy[j].Economy })
	sort.SliceStable(v.StrikeRate, func(i, j int) bool { return v.StrikeRate[i].StrikeRate < v.StrikeRate[j].StrikeRate })
	v.Economy = top(v.Economy, LeaderboardSize)
	v.StrikeRate = top(v.StrikeRate, LeaderboardSize)

	for style, n := range counts {
		v.Styles = append(v.Styles, StyleCount{Style: style, Count: n})
	}
	sort.Slice(v.Styles, func(i, j int) bool {
		if v.Styles[i].Count != v.Styles[j].Count {
			return v.Styles[i].Count > v.Styles[j].Count
		}
		return v.Styles[i].Style < v.Styles[j].Style
	})
	for _, sc := range v.Styles {
		v.ByStyle = append(v.ByStyle, StyleGroup{Style: sc.Style, Bowlers: groups[sc.Style]})
	}
	return v
}

// CatchLine counts every catch a fielder took, keeping or not.
type CatchLine struct {
	Name    string
	Matches int
	Catches int
}

// FieldingView holds the fielding leaderboards. Fielders without a
// dismissal are left out entirely.
type FieldingView struct {
	Rows       []aggregate.FieldingRow
	Catchers   []CatchLine
	Dismissals []aggregate.FieldingRow
	PerMatch   []aggregate.FieldingRow
}

// NewFieldingView builds the fielding leaderboards.
func NewFieldingView(rows []aggregate.FieldingRow) FieldingView {
	var v FieldingView
	for _, r := range rows {
		if r.TotalDismissals > 0 {
			v.Rows = append(v.Rows, r)
		}
	}
	for _, r := range v.Rows {
		v.Catchers = append(v.Catchers, CatchLine{Name: r.Name, Matches: r.Matches, Catches: r.Catches + r.CaughtBehind})
	}
	sort.SliceStable(v.Catchers, func(i, j int) bool { return v.Catchers[i].Catches > v.Catchers[j].Catches })
	v.Catchers = top(v.Catchers, LeaderboardSize)

	v.Dismissals = append([]aggregate.FieldingRow(nil), v.Rows...)
	sort.SliceStable(v.Dismissals, func(i, j int) bool { return v.Dismissals[i].TotalDismissals > v.Dismissals[j].TotalDismissals })
	v.Dismissals = top(v.Dismissals, LeaderboardSize)

	v.PerMatch = append([]aggregate.FieldingRow(nil), v.Rows...)
	sort.SliceStable(v.PerMatch, func(i, j int) bool { return v.PerMatch[i].DismissalsPerMatch > v.PerMatch[j].DismissalsPerMatch })
	return v
}

// Profile is everything published about one player. A nil section means
// the player has no data in that category.
type Profile struct {
	Name     string                 `json:"name"`
	Batting  *aggregate.BattingRow  `json:"batting"`
	Bowling  *aggregate.BowlingRow  `json:"bowling"`
	Fielding *aggregate.FieldingRow `json:"fielding"`
}

// Found reports whether any category has data for the player.
func (p Profile) Found() bool {
	return p.Batting != nil || p.Bowling != nil || p.Fielding != nil
}

// NewProfile looks name up in every category. Matching uses the same
// case-folded key as the merge; fielders without a dismissal are not listed.
func NewProfile(s Snapshot, name string) Profile {
	key := aggregate.NameKey(name)
	p := Profile{Name: aggregate.CleanName(name)}
	for i := range s.Batting {
		if aggregate.NameKey(s.Batting[i].Name) == key {
			p.Batting = &s.Batting[i]
			p.Name = s.Batting[i].Name
			break
		}
	}
	for i := range s.Bowling {
		if aggregate.NameKey(s.Bowling[i].Name) == key {
			p.Bowling = &s.Bowling[i]
			break
		}
	}
	for i := range s.Fielding {
		if s.Fielding[i].TotalDismissals > 0 && aggregate.NameKey(s.Fielding[i].Name) == key {
			p.Fielding = &s.Fielding[i]
			break
		}
	}
	return p
}

// PlayerNames returns the union of player names across the category
// tables, sorted case-insensitively. The first spelling seen wins.
func PlayerNames(s Snapshot) []string {
	seen := map[string]string{}
	add := func(name string) {
		if strings.TrimSpace(name) == "" {
			return
		}
		k := aggregate.NameKey(name)
		if _, ok := seen[k]; !ok {
			seen[k] = name
		}
	}
	for _, r := range s.Batting {
		add(r.Name)
	}
	for _, r := range s.Bowling {
		add(r.Name)
	}
	for _, r := range s.Fielding {
		if r.TotalDismissals > 0 {
			add(r.Name)
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, seen[k])
	}
	return out
}

func top[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
