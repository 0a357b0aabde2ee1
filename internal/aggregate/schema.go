// Package aggregate merges per-tournament leaderboard tables into one
// season-long row per player for each stat category.
//
// The flow for every category is the same:
//
//	Normalize  canonical column names, cleaned player names
//	Merge      sequential outer join on player identity
//	Reduce     sum / max / first-non-missing per declared statistic
//	derive     rates from the reduced totals
//	finalize   typed rows, sorting and filters
//
// Each category declares its statistics in a Schema, so the reducer never
// has to guess which columns belong together.
package aggregate

// Kind is the reduction applied to a statistic across a player's
// contributions.
type Kind int

const (
	// Sum adds counting statistics. A source that lacks the value adds 0.
	Sum Kind = iota
	// Max keeps the best single performance, never below 0.
	Max
	// First keeps the first non-missing text value in source order.
	First
)

func (k Kind) String() string {
	switch k {
	case Sum:
		return "sum"
	case Max:
		return "max"
	case First:
		return "first"
	}
	return "unknown"
}

// Stat declares one output statistic and its reduction.
type Stat struct {
	Name string
	Kind Kind
}

// Schema is a category's canonical vocabulary.
type Schema struct {
	Category string

	// Synonyms maps a cleaned source column name to its canonical name.
	Synonyms map[string]string

	// Stats lists every statistic the reducer produces.
	Stats []Stat
}

// Identity columns shared by every category.
const (
	ColPlayerID = "player_id"
	ColName     = "name"
)

// Fallback is written for missing team and style metadata in the bowling and
// fielding outputs.
const Fallback = "-"

// bowlingFieldingSynonyms is the rename table shared by bowling and
// fielding exports.
var bowlingFieldingSynonyms = map[string]string{
	"team_name":       "team",
	"total_match":     "matches",
	"total_wickets":   "wickets",
	"balls":           "balls_bowled",
	"runs":            "runs_conceded",
	"maidens":         "maiden_overs",
	"overs":           "overs_bowled",
	"highest_wicket":  "highest_wickets",
	"caught_and_bowl": "caught_and_bowled",
	"total_dismissal": "total_dismissals",
}

// BattingSchema keeps the export vocabulary (total_match, ball_faced, ...).
var BattingSchema = Schema{
	Category: "batting",
	Stats: []Stat{
		{"total_match", Sum},
		{"innings", Sum},
		{"total_runs", Sum},
		{"not_out", Sum},
		{"ball_faced", Sum},
		{"4s", Sum},
		{"6s", Sum},
		{"50s", Sum},
		{"100s", Sum},
		{"highest_run", Max},
		{"name", First},
		{"team_name", First},
		{"batting_hand", First},
	},
}

var BowlingSchema = Schema{
	Category: "bowling",
	Synonyms: bowlingFieldingSynonyms,
	Stats: []Stat{
		{"matches", Sum},
		{"innings", Sum},
		{"wickets", Sum},
		{"balls_bowled", Sum},
		{"runs_conceded", Sum},
		{"maiden_overs", Sum},
		{"dot_balls", Sum},
		{"overs_bowled", Sum},
		{"highest_wickets", Max},
		{"name", First},
		{"team", First},
		{"bowling_style", First},
	},
}

var FieldingSchema = Schema{
	Category: "fielding",
	Synonyms: bowlingFieldingSynonyms,
	Stats: []Stat{
		{"matches", Sum},
		{"catches", Sum},
		{"caught_behind", Sum},
		{"run_outs", Sum},
		{"assist_run_outs", Sum},
		{"stumpings", Sum},
		{"caught_and_bowled", Sum},
		{"total_catches", Sum},
		{"total_dismissals", Sum},
		{"name", First},
		{"team", First},
	},
}
