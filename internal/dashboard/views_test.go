package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/22chandu94/DragonsDashboard/internal/aggregate"
)

func players() []aggregate.UnifiedRow {
	return []aggregate.UnifiedRow{
		{Name: "Asha Rao", TotalRuns: 200, TotalMatch: 7, Fours: 16, Sixes: 5, Average: 33.33, StrikeRate: 125, Innings: 7, BallFaced: 160},
		{Name: "Chen Wei", TotalRuns: 15, TotalMatch: 2, Fours: 1, Sixes: 0, Average: 7.5, StrikeRate: 75, Innings: 2, BallFaced: 20},
		{Name: "Dev", TotalRuns: 0, TotalMatch: 9, Fours: 0, Sixes: 0, Average: 0, StrikeRate: 0, Innings: 5, BallFaced: 0},
		{Name: "Eli", TotalRuns: 60, TotalMatch: 6, Fours: 2, Sixes: 6, Average: 12, StrikeRate: 150, Innings: 6, BallFaced: 40},
	}
}

func TestNewOverview(t *testing.T) {
	ov := NewOverview(players())

	assert.Equal(t, 275, ov.TotalRuns)
	assert.Equal(t, 9, ov.Matches, "matches is the maximum, not the sum")
	assert.Equal(t, 19, ov.Fours)
	assert.Equal(t, 11, ov.Sixes)

	require.Len(t, ov.Contribution, 3, "players without runs are left out of the pie")
	assert.Equal(t, Share{Name: "Asha Rao", Value: 200}, ov.Contribution[0])
	assert.Equal(t, []string{"Asha Rao", "Eli", "Chen Wei"},
		[]string{ov.TopScorers[0].Name, ov.TopScorers[1].Name, ov.TopScorers[2].Name})
}

func TestNewOverview_TopTen(t *testing.T) {
	var ps []aggregate.UnifiedRow
	for i := 1; i <= 12; i++ {
		ps = append(ps, aggregate.UnifiedRow{Name: string(rune('A' + i)), TotalRuns: i})
	}
	ov := NewOverview(ps)
	assert.Len(t, ov.TopScorers, LeaderboardSize)
	assert.Len(t, ov.Contribution, 12)
	assert.Equal(t, 12, ov.TopScorers[0].TotalRuns)
}

func TestNewBattingView(t *testing.T) {
	v := NewBattingView(players(), DefaultMinInnings)

	var avg []string
	for _, p := range v.Averages {
		avg = append(avg, p.Name)
	}
	assert.Equal(t, []string{"Asha Rao", "Eli", "Dev"}, avg, "Chen has fewer than 5 innings")

	require.Len(t, v.StrikeRates, 3, "Dev faced no balls")
	assert.Equal(t, "Eli", v.StrikeRates[0].Name)

	require.Len(t, v.BoundaryShare, 3)
	assert.Equal(t, "Eli", v.BoundaryShare[0].Name)
	assert.Equal(t, 44, v.BoundaryShare[0].BoundaryRuns)
	assert.InDelta(t, 73.33, v.BoundaryShare[0].Percent, 1e-9)

	require.Len(t, v.Hitters, 4)
	assert.Equal(t, "Asha Rao", v.Hitters[0].Name)
	assert.Equal(t, 21, v.Hitters[0].Boundaries)
	assert.Equal(t, 0.0, v.Hitters[3].Percent)

	assert.Len(t, NewBattingView(players(), 0).Averages, 4)
}

func TestNewBowlingView(t *testing.T) {
	rows := []aggregate.BowlingRow{
		{Name: "A", OversBowled: 12, Wickets: 8, Economy: 6.5, StrikeRate: 9, Style: "Right-arm medium"},
		{Name: "B", OversBowled: 10, Wickets: 4, Economy: 5.1, StrikeRate: 15, Style: "-"},
		{Name: "C", OversBowled: 9.5, Wickets: 6, Economy: 4.0, StrikeRate: 9.5, Style: "Right-arm medium"},
		{Name: "D", OversBowled: 2, Wickets: 1, Economy: 9.0, StrikeRate: 12, Style: ""},
	}
	v := NewBowlingView(rows)

	require.Len(t, v.Economy, 2, "min 10 overs")
	assert.Equal(t, "B", v.Economy[0].Name)
	require.Len(t, v.StrikeRate, 2, "min 5 wickets")
	assert.Equal(t, "A", v.StrikeRate[0].Name)
	assert.Equal(t, []StyleCount{{"-", 2}, {"Right-arm medium", 2}}, v.Styles)
	assert.Len(t, v.All, 4)

	require.Len(t, v.ByStyle, 2, "one group per style, in Styles order")
	assert.Equal(t, "-", v.ByStyle[0].Style)
	assert.Equal(t, []string{"B", "D"}, []string{v.ByStyle[0].Bowlers[0].Name, v.ByStyle[0].Bowlers[1].Name})
	assert.Equal(t, "Right-arm medium", v.ByStyle[1].Style)
	assert.Equal(t, []string{"A", "C"}, []string{v.ByStyle[1].Bowlers[0].Name, v.ByStyle[1].Bowlers[1].Name})
}

func TestNewFieldingView(t *testing.T) {
	rows := []aggregate.FieldingRow{
		{Name: "Keeper", Matches: 5, Catches: 1, CaughtBehind: 4, Stumpings: 2, TotalDismissals: 7, DismissalsPerMatch: 1.4},
		{Name: "Slip", Matches: 2, Catches: 3, TotalDismissals: 3, DismissalsPerMatch: 1.5},
		{Name: "Passenger", Matches: 6, TotalDismissals: 0},
	}
	v := NewFieldingView(rows)

	require.Len(t, v.Rows, 2, "fielders without dismissals are dropped")
	assert.Equal(t, CatchLine{Name: "Keeper", Matches: 5, Catches: 5}, v.Catchers[0])
	assert.Equal(t, "Keeper", v.Dismissals[0].Name)
	assert.Equal(t, "Slip", v.PerMatch[0].Name)
}

func snapshot() Snapshot {
	return Snapshot{
		Batting: []aggregate.BattingRow{{Name: "Asha Rao", Runs: 200}, {Name: "Chen Wei", Runs: 15}},
		Bowling: []aggregate.BowlingRow{{Name: "asha rao", Wickets: 8}, {Name: "Dev", Wickets: 2}},
		Fielding: []aggregate.FieldingRow{
			{Name: "Asha Rao", TotalDismissals: 5},
			{Name: "Zed", TotalDismissals: 0},
		},
		Players: players(),
	}
}

func TestNewProfile(t *testing.T) {
	s := snapshot()

	p := NewProfile(s, "  ASHA   rao ")
	require.True(t, p.Found())
	assert.Equal(t, "Asha Rao", p.Name)
	require.NotNil(t, p.Batting)
	require.NotNil(t, p.Bowling)
	require.NotNil(t, p.Fielding)
	assert.Equal(t, 8, p.Bowling.Wickets)

	p = NewProfile(s, "Dev")
	assert.True(t, p.Found())
	assert.Nil(t, p.Batting)
	assert.Nil(t, p.Fielding)

	p = NewProfile(s, "Zed")
	assert.False(t, p.Found(), "a fielder without dismissals has no profile")
}

func TestPlayerNames(t *testing.T) {
	assert.Equal(t, []string{"Asha Rao", "Chen Wei", "Dev"}, PlayerNames(snapshot()))
	assert.Empty(t, PlayerNames(Snapshot{}))
}
