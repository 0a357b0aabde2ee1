package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/22chandu94/DragonsDashboard/pkg/records"
)

func leaderboard() records.Table {
	return records.Table{
		Name:    "Beer Cup",
		Columns: []string{"player_id", "name", "team_id", "team_name", "total_runs"},
		Rows: []records.Record{
			{"player_id": "1", "name": "Asha", "team_id": "9", "team_name": "SPVGG Dragons", "total_runs": "40"},
			{"player_id": "2", "name": "Bilal", "team_id": "8", "team_name": "Frankfurt XI", "total_runs": "12"},
			{"player_id": "3", "name": "Chen", "team_id": "9", "team_name": " spvgg dragons ", "total_runs": "7"},
			{"player_id": "4", "name": "Dev", "team_id": "9", "team_name": nil, "total_runs": "3"},
		},
	}
}

func TestTeamFilter(t *testing.T) {
	out := TeamFilter{Column: "team_name", Team: "SPVGG Dragons"}.Apply(leaderboard())

	var ids []string
	for _, r := range out.Rows {
		ids = append(ids, r.String("player_id"))
	}
	assert.Equal(t, []string{"1", "3"}, ids)
}

func TestTeamFilter_MissingColumnPassesThrough(t *testing.T) {
	out := TeamFilter{Column: "team", Team: "SPVGG Dragons"}.Apply(leaderboard())
	assert.Equal(t, 4, out.Len())
}

func TestDropColumns(t *testing.T) {
	out := DropColumns{Columns: []string{"team_id", "not_there"}}.Apply(leaderboard())

	assert.Equal(t, []string{"player_id", "name", "team_name", "total_runs"}, out.Columns)
	for _, r := range out.Rows {
		assert.NotContains(t, r, "team_id")
	}
}

func TestRequire(t *testing.T) {
	rows := func() records.Table {
		return records.Table{Rows: []records.Record{
			{"player_id": "1", "name": "Asha"},
			{"player_id": nil, "name": "Bilal"},
			{"player_id": "", "name": nil},
		}}
	}

	dropped := 0
	out := Require{Fields: []string{"player_id", "name"}, Any: true, Dropped: &dropped}.Apply(rows())
	assert.Equal(t, 2, out.Len())
	assert.Equal(t, 1, dropped)

	out = Require{Fields: []string{"player_id", "name"}}.Apply(rows())
	assert.Equal(t, 1, out.Len())
	assert.Equal(t, "Asha", out.Rows[0].String("name"))

	assert.Equal(t, 3, Require{}.Apply(rows()).Len())
}
