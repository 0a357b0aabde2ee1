package aggregate

import (
	"github.com/22chandu94/DragonsDashboard/internal/parser/numbers"
	"github.com/22chandu94/DragonsDashboard/pkg/records"
)

// The Decode functions read a published output back into typed rows. They
// are tolerant in the same way as the merge: unparsable numbers become 0.

func num(r records.Record, col string) float64 { return numbers.FloatOr(r[col], 0) }

func integer(r records.Record, col string) int { return int(num(r, col)) }

// DecodeBatting reads rows keyed by BattingHeader.
func DecodeBatting(t records.Table) []BattingRow {
	out := make([]BattingRow, 0, t.Len())
	for _, r := range t.Rows {
		out = append(out, BattingRow{
			Name:        r.String("Name"),
			Team:        r.String("Team"),
			Matches:     integer(r, "Matches"),
			Innings:     integer(r, "Innings"),
			Runs:        integer(r, "Runs"),
			Highest:     integer(r, "Highest"),
			Average:     num(r, "Average"),
			NotOuts:     integer(r, "Not Outs"),
			StrikeRate:  num(r, "Strike Rate"),
			BallsFaced:  integer(r, "Balls Faced"),
			BattingHand: r.String("Batting Hand"),
			Fours:       integer(r, "4s"),
			Sixes:       integer(r, "6s"),
			Fifties:     integer(r, "50s"),
			Hundreds:    integer(r, "100s"),
		})
	}
	return out
}

// DecodeBowling reads rows keyed by BowlingHeader.
func DecodeBowling(t records.Table) []BowlingRow {
	out := make([]BowlingRow, 0, t.Len())
	for _, r := range t.Rows {
		out = append(out, BowlingRow{
			PlayerID:     PlayerIDKey(r["Player ID"]),
			Name:         r.String("Player Name"),
			Team:         r.String("Team"),
			Matches:      integer(r, "Matches"),
			Innings:      integer(r, "Innings"),
			Wickets:      integer(r, "Wickets"),
			BestBowling:  integer(r, "Best Bowling"),
			RunsConceded: integer(r, "Runs Conceded"),
			BallsBowled:  integer(r, "Balls Bowled"),
			OversBowled:  num(r, "Overs Bowled"),
			Maidens:      integer(r, "Maidens"),
			DotBalls:     integer(r, "Dot Balls"),
			Economy:      num(r, "Economy"),
			Average:      num(r, "Average"),
			StrikeRate:   num(r, "Strike Rate"),
			Style:        r.String("Bowling Style"),
		})
	}
	return out
}

// DecodeFielding reads rows keyed by FieldingHeader.
func DecodeFielding(t records.Table) []FieldingRow {
	out := make([]FieldingRow, 0, t.Len())
	for _, r := range t.Rows {
		out = append(out, FieldingRow{
			PlayerID:           PlayerIDKey(r["Player ID"]),
			Name:               r.String("Player Name"),
			Team:               r.String("Team"),
			Matches:            integer(r, "Matches"),
			Catches:            integer(r, "Catches"),
			CaughtBehind:       integer(r, "Caught Behind"),
			RunOuts:            integer(r, "Run Outs"),
			AssistRunOuts:      integer(r, "Assist Run Outs"),
			Stumpings:          integer(r, "Stumpings"),
			CaughtAndBowled:    integer(r, "Caught & Bowled"),
			TotalCatches:       integer(r, "Total Catches"),
			TotalDismissals:    integer(r, "Total Dismissals"),
			CatchesPerMatch:    num(r, "Catches/Match"),
			DismissalsPerMatch: num(r, "Dismissals/Match"),
		})
	}
	return out
}

// DecodeUnified reads rows keyed by UnifiedHeader.
func DecodeUnified(t records.Table) []UnifiedRow {
	out := make([]UnifiedRow, 0, t.Len())
	for _, r := range t.Rows {
		out = append(out, UnifiedRow{
			Name:       r.String("name"),
			TotalRuns:  integer(r, "total_runs"),
			TotalMatch: integer(r, "total_match"),
			Fours:      integer(r, "4s"),
			Sixes:      integer(r, "6s"),
			Average:    num(r, "average"),
			StrikeRate: num(r, "strike_rate"),
			Innings:    integer(r, "innings"),
			BallFaced:  integer(r, "ball_faced"),
		})
	}
	return out
}
