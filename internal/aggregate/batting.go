package aggregate

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/22chandu94/DragonsDashboard/pkg/records"
)

// BattingHeader is the column order of the batting output.
var BattingHeader = []string{
	"Name", "Team", "Matches", "Innings", "Runs", "Highest", "Average",
	"Not Outs", "Strike Rate", "Balls Faced", "Batting Hand", "4s", "6s", "50s", "100s",
}

// BattingRow is one player's season batting line.
type BattingRow struct {
	PlayerID    string  `json:"player_id"`
	Name        string  `json:"name"`
	Team        string  `json:"team"`
	Matches     int     `json:"matches"`
	Innings     int     `json:"innings"`
	Runs        int     `json:"runs"`
	Highest     int     `json:"highest"`
	Average     float64 `json:"average"`
	NotOuts     int     `json:"not_outs"`
	StrikeRate  float64 `json:"strike_rate"`
	BallsFaced  int     `json:"balls_faced"`
	BattingHand string  `json:"batting_hand"`
	Fours       int     `json:"fours"`
	Sixes       int     `json:"sixes"`
	Fifties     int     `json:"fifties"`
	Hundreds    int     `json:"hundreds"`
}

// Values renders r in BattingHeader order.
func (r BattingRow) Values() []string {
	return []string{
		r.Name, r.Team, itoa(r.Matches), itoa(r.Innings), itoa(r.Runs), itoa(r.Highest),
		ftoa(r.Average), itoa(r.NotOuts), ftoa(r.StrikeRate), itoa(r.BallsFaced), r.BattingHand,
		itoa(r.Fours), itoa(r.Sixes), itoa(r.Fifties), itoa(r.Hundreds),
	}
}

// MergeBatting merges per-tournament batting tables into one row per player,
// sorted by runs, highest first.
func MergeBatting(tables []records.Table, log logrus.FieldLogger) ([]BattingRow, error) {
	totals, err := mergeAndReduce(BattingSchema, tables, log)
	if err != nil {
		return nil, err
	}
	rows := make([]BattingRow, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, battingRow(t))
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Runs > rows[j].Runs })
	return rows, nil
}

func battingRow(t Totals) BattingRow {
	runs := t.Num("total_runs")
	return BattingRow{
		PlayerID:    t.PlayerID,
		Name:        t.Text("name"),
		Team:        t.Text("team_name"),
		Matches:     t.Int("total_match"),
		Innings:     t.Int("innings"),
		Runs:        t.Int("total_runs"),
		Highest:     t.Int("highest_run"),
		Average:     BattingAverage(runs, t.Num("innings"), t.Num("not_out")),
		NotOuts:     t.Int("not_out"),
		StrikeRate:  BattingStrikeRate(runs, t.Num("ball_faced")),
		BallsFaced:  t.Int("ball_faced"),
		BattingHand: t.Text("batting_hand"),
		Fours:       t.Int("4s"),
		Sixes:       t.Int("6s"),
		Fifties:     t.Int("50s"),
		Hundreds:    t.Int("100s"),
	}
}

// BattingOutput finalizes rows for writing.
func BattingOutput(rows []BattingRow) Output {
	out := Output{Category: BattingSchema.Category, Header: BattingHeader}
	for _, r := range rows {
		out.Rows = append(out.Rows, r.Values())
	}
	return out
}

// mergeAndReduce runs the steps shared by every category.
func mergeAndReduce(s Schema, tables []records.Table, log logrus.FieldLogger) ([]Totals, error) {
	if len(tables) < 2 {
		return nil, &InsufficientSourcesError{Category: s.Category, Got: len(tables)}
	}
	norm := make([]records.Table, len(tables))
	for i, t := range tables {
		norm[i] = Normalize(t, s)
	}
	m, err := Merge(s.Category, norm, log)
	if err != nil {
		return nil, err
	}
	orDiscard(log).WithFields(logrus.Fields{
		"category": s.Category,
		"sources":  m.Sources,
		"players":  len(m.Players),
		"degraded": m.Degraded(),
	}).Debug("merged sources")
	return ReduceAll(m, s), nil
}
