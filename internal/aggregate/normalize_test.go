package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalColumn(t *testing.T) {
	tests := []struct {
		in, want string
		syn      map[string]string
	}{
		{"Total Wickets", "wickets", bowlingFieldingSynonyms},
		{"\uFEFFplayer_id", "player_id", nil},
		{"  Team  Name ", "team", bowlingFieldingSynonyms},
		{"Team Name", "team_name", nil},
		{"caught_and_bowl", "caught_and_bowled", bowlingFieldingSynonyms},
		{"Dot Balls", "dot_balls", bowlingFieldingSynonyms},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalColumn(tt.in, tt.syn), tt.in)
	}
}

func TestCleanNameAndKey(t *testing.T) {
	assert.Equal(t, "Ravi Kumar", CleanName("  Ravi \t  Kumar "))
	assert.Equal(t, "Ravi Kumar", CleanName("Ravi\u00a0Kumar"))
	assert.Equal(t, "Jos\u00e9", CleanName("Jose\u0301"))
	assert.Equal(t, NameKey("RAVI  kumar"), NameKey("Ravi Kumar"))
	assert.NotEqual(t, NameKey("Ravi Kumar"), NameKey("Ravi Kumari"))
}

/*
TestNormalize_RenamesAndCopies verifies that Normalize applies the category
vocabulary, cleans the name field and leaves the input table untouched.
*/
func TestNormalize_RenamesAndCopies(t *testing.T) {
	in := table("Liga", "player_id,name,Team Name,total_match,balls,runs",
		"7,  Ravi   Kumar ,SPVGG Dragons,3,60,45")

	out := Normalize(in, BowlingSchema)

	assert.Equal(t, []string{"player_id", "name", "team", "matches", "balls_bowled", "runs_conceded"}, out.Columns)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "Ravi Kumar", out.Rows[0]["name"])
	assert.Equal(t, "SPVGG Dragons", out.Rows[0]["team"])
	assert.Equal(t, "60", out.Rows[0]["balls_bowled"])

	assert.Equal(t, "  Ravi   Kumar ", in.Rows[0]["name"], "input must not be mutated")
	assert.Contains(t, in.Rows[0], "balls")
}

func TestNormalize_CollidingColumnsKeepFirstValue(t *testing.T) {
	in := table("x", "player_id,team_name,team", "1,,Dragons")
	out := Normalize(in, FieldingSchema)
	assert.Equal(t, []string{"player_id", "team"}, out.Columns)
	assert.Equal(t, "Dragons", out.Rows[0]["team"])
}
