package aggregate

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/22chandu94/DragonsDashboard/internal/parser/numbers"
	"github.com/22chandu94/DragonsDashboard/pkg/records"
)

// BowlingHeader is the column order of the bowling output.
var BowlingHeader = []string{
	"Player ID", "Player Name", "Team", "Matches", "Innings", "Wickets",
	"Best Bowling", "Runs Conceded", "Balls Bowled", "Overs Bowled",
	"Maidens", "Dot Balls", "Economy", "Average", "Strike Rate", "Bowling Style",
}

// BowlingRow is one player's season bowling line.
type BowlingRow struct {
	PlayerID     string  `json:"player_id"`
	Name         string  `json:"name"`
	Team         string  `json:"team"`
	Matches      int     `json:"matches"`
	Innings      int     `json:"innings"`
	Wickets      int     `json:"wickets"`
	BestBowling  int     `json:"best_bowling"`
	RunsConceded int     `json:"runs_conceded"`
	BallsBowled  int     `json:"balls_bowled"`
	OversBowled  float64 `json:"overs_bowled"`
	Maidens      int     `json:"maidens"`
	DotBalls     int     `json:"dot_balls"`
	Economy      float64 `json:"economy"`
	Average      float64 `json:"average"`
	StrikeRate   float64 `json:"strike_rate"`
	Style        string  `json:"style"`
}

// Values renders r in BowlingHeader order.
func (r BowlingRow) Values() []string {
	return []string{
		r.PlayerID, r.Name, r.Team, itoa(r.Matches), itoa(r.Innings), itoa(r.Wickets),
		itoa(r.BestBowling), itoa(r.RunsConceded), itoa(r.BallsBowled), ftoa(r.OversBowled),
		itoa(r.Maidens), itoa(r.DotBalls), ftoa(r.Economy), ftoa(r.Average), ftoa(r.StrikeRate), r.Style,
	}
}

// MergeBowling merges per-tournament bowling tables. Players who never
// bowled a ball are dropped. Rows are sorted by wickets, most first, with
// the lower economy winning ties.
func MergeBowling(tables []records.Table, log logrus.FieldLogger) ([]BowlingRow, error) {
	totals, err := mergeAndReduce(BowlingSchema, tables, log)
	if err != nil {
		return nil, err
	}
	rows := make([]BowlingRow, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, bowlingRow(t))
	}
	SortBowling(rows)

	kept := rows[:0]
	for _, r := range rows {
		if r.BallsBowled > 0 {
			kept = append(kept, r)
		}
	}
	if dropped := len(rows) - len(kept); dropped > 0 {
		orDiscard(log).WithFields(logrus.Fields{"category": BowlingSchema.Category, "dropped": dropped}).
			Debug("dropped players without balls bowled")
	}
	return kept, nil
}

// SortBowling orders rows by wickets descending, then economy ascending.
func SortBowling(rows []BowlingRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Wickets != rows[j].Wickets {
			return rows[i].Wickets > rows[j].Wickets
		}
		return rows[i].Economy < rows[j].Economy
	})
}

func bowlingRow(t Totals) BowlingRow {
	runs := t.Num("runs_conceded")
	wickets := t.Num("wickets")
	balls := t.Num("balls_bowled")
	overs := t.Num("overs_bowled")
	return BowlingRow{
		PlayerID:     t.PlayerID,
		Name:         t.Text("name"),
		Team:         t.TextOr("team", Fallback),
		Matches:      t.Int("matches"),
		Innings:      t.Int("innings"),
		Wickets:      t.Int("wickets"),
		BestBowling:  t.Int("highest_wickets"),
		RunsConceded: t.Int("runs_conceded"),
		BallsBowled:  t.Int("balls_bowled"),
		OversBowled:  numbers.Round(overs, 1),
		Maidens:      t.Int("maiden_overs"),
		DotBalls:     t.Int("dot_balls"),
		Economy:      Economy(runs, overs),
		Average:      BowlingAverage(runs, wickets),
		StrikeRate:   BowlingStrikeRate(balls, wickets),
		Style:        t.TextOr("bowling_style", Fallback),
	}
}

// BowlingOutput finalizes rows for writing.
func BowlingOutput(rows []BowlingRow) Output {
	out := Output{Category: BowlingSchema.Category, Header: BowlingHeader}
	for _, r := range rows {
		out.Rows = append(out.Rows, r.Values())
	}
	return out
}
