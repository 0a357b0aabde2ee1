package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/22chandu94/DragonsDashboard/internal/aggregate"
)

func sample() aggregate.Output {
	return aggregate.BowlingOutput([]aggregate.BowlingRow{
		{PlayerID: "7", Name: "Asha Rao", Team: "SPVGG Dragons", Wickets: 9, BallsBowled: 96, OversBowled: 16, Economy: 5.5, Style: "Right-arm medium"},
		{PlayerID: "3", Name: "Ben Kurz", Team: "SPVGG Dragons", Wickets: 4, BallsBowled: 60, OversBowled: 10, Economy: 7.1, Style: "-"},
		{PlayerID: "9", Name: "Chris Lind", Team: "SPVGG Dragons", Wickets: 1, BallsBowled: 12, OversBowled: 2, Economy: 9, Style: "-"},
	})
}

func TestLeaderboard_TopAndRank(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Leaderboard(&buf, sample(), Options{Top: 2}))

	got := buf.String()
	assert.Contains(t, got, "bowling")
	assert.Contains(t, got, "Player Name")
	assert.Contains(t, got, "Asha Rao")
	assert.Contains(t, got, "Ben Kurz")
	assert.NotContains(t, got, "Chris Lind")
	assert.Contains(t, got, "2 of 3 players")
}

func TestLeaderboard_MarkdownAllRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Leaderboard(&buf, sample(), Options{Markdown: true, Title: "Bowlers"}))

	got := buf.String()
	assert.True(t, strings.Contains(got, "| # |"), got)
	assert.Contains(t, got, "Chris Lind")
	assert.Contains(t, got, "3 of 3 players")
}

func TestNumericColumn(t *testing.T) {
	out := sample()
	assert.True(t, numericColumn(out, 5), "Wickets")
	assert.False(t, numericColumn(out, 1), "Player Name")
	assert.False(t, numericColumn(aggregate.Output{Header: []string{"x"}}, 0))
}
