package aggregate

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/22chandu94/DragonsDashboard/pkg/records"
)

// FieldingHeader is the column order of the fielding output.
var FieldingHeader = []string{
	"Player ID", "Player Name", "Team", "Matches", "Catches", "Caught Behind",
	"Run Outs", "Assist Run Outs", "Stumpings", "Caught & Bowled",
	"Total Catches", "Total Dismissals", "Catches/Match", "Dismissals/Match",
}

// FieldingRow is one player's season fielding line.
type FieldingRow struct {
	PlayerID           string  `json:"player_id"`
	Name               string  `json:"name"`
	Team               string  `json:"team"`
	Matches            int     `json:"matches"`
	Catches            int     `json:"catches"`
	CaughtBehind       int     `json:"caught_behind"`
	RunOuts            int     `json:"run_outs"`
	AssistRunOuts      int     `json:"assist_run_outs"`
	Stumpings          int     `json:"stumpings"`
	CaughtAndBowled    int     `json:"caught_and_bowled"`
	TotalCatches       int     `json:"total_catches"`
	TotalDismissals    int     `json:"total_dismissals"`
	CatchesPerMatch    float64 `json:"catches_per_match"`
	DismissalsPerMatch float64 `json:"dismissals_per_match"`
}

// Values renders r in FieldingHeader order.
func (r FieldingRow) Values() []string {
	return []string{
		r.PlayerID, r.Name, r.Team, itoa(r.Matches), itoa(r.Catches), itoa(r.CaughtBehind),
		itoa(r.RunOuts), itoa(r.AssistRunOuts), itoa(r.Stumpings), itoa(r.CaughtAndBowled),
		itoa(r.TotalCatches), itoa(r.TotalDismissals), ftoa(r.CatchesPerMatch), ftoa(r.DismissalsPerMatch),
	}
}

// MergeFielding merges per-tournament fielding tables, sorted by total
// dismissals then total catches, both descending.
func MergeFielding(tables []records.Table, log logrus.FieldLogger) ([]FieldingRow, error) {
	totals, err := mergeAndReduce(FieldingSchema, tables, log)
	if err != nil {
		return nil, err
	}
	rows := make([]FieldingRow, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, fieldingRow(t))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalDismissals != rows[j].TotalDismissals {
			return rows[i].TotalDismissals > rows[j].TotalDismissals
		}
		return rows[i].TotalCatches > rows[j].TotalCatches
	})
	return rows, nil
}

func fieldingRow(t Totals) FieldingRow {
	matches := t.Num("matches")
	return FieldingRow{
		PlayerID:           t.PlayerID,
		Name:               t.Text("name"),
		Team:               t.TextOr("team", Fallback),
		Matches:            t.Int("matches"),
		Catches:            t.Int("catches"),
		CaughtBehind:       t.Int("caught_behind"),
		RunOuts:            t.Int("run_outs"),
		AssistRunOuts:      t.Int("assist_run_outs"),
		Stumpings:          t.Int("stumpings"),
		CaughtAndBowled:    t.Int("caught_and_bowled"),
		TotalCatches:       t.Int("total_catches"),
		TotalDismissals:    t.Int("total_dismissals"),
		CatchesPerMatch:    PerMatch(t.Num("total_catches"), matches),
		DismissalsPerMatch: PerMatch(t.Num("total_dismissals"), matches),
	}
}

// FieldingOutput finalizes rows for writing.
func FieldingOutput(rows []FieldingRow) Output {
	out := Output{Category: FieldingSchema.Category, Header: FieldingHeader}
	for _, r := range rows {
		out.Rows = append(out.Rows, r.Values())
	}
	return out
}
