package aggregate

// UnifiedHeader is the column order of the lowercase player table read by
// the dashboard's overview and profile pages.
var UnifiedHeader = []string{
	"name", "total_runs", "total_match", "4s", "6s", "average", "strike_rate", "innings", "ball_faced",
}

// UnifiedRow is one player in the unified table.
type UnifiedRow struct {
	Name       string  `json:"name"`
	TotalRuns  int     `json:"total_runs"`
	TotalMatch int     `json:"total_match"`
	Fours      int     `json:"fours"`
	Sixes      int     `json:"sixes"`
	Average    float64 `json:"average"`
	StrikeRate float64 `json:"strike_rate"`
	Innings    int     `json:"innings"`
	BallFaced  int     `json:"ball_faced"`
}

// Values renders r in UnifiedHeader order.
func (r UnifiedRow) Values() []string {
	return []string{
		r.Name, itoa(r.TotalRuns), itoa(r.TotalMatch), itoa(r.Fours), itoa(r.Sixes),
		ftoa(r.Average), ftoa(r.StrikeRate), itoa(r.Innings), itoa(r.BallFaced),
	}
}

// Unified derives the unified table from the batting output, one row per
// batting player in batting order.
func Unified(batting []BattingRow) []UnifiedRow {
	out := make([]UnifiedRow, 0, len(batting))
	for _, b := range batting {
		out = append(out, UnifiedRow{
			Name:       b.Name,
			TotalRuns:  b.Runs,
			TotalMatch: b.Matches,
			Fours:      b.Fours,
			Sixes:      b.Sixes,
			Average:    b.Average,
			StrikeRate: b.StrikeRate,
			Innings:    b.Innings,
			BallFaced:  b.BallsFaced,
		})
	}
	return out
}

// UnifiedOutput finalizes the unified rows for writing.
func UnifiedOutput(rows []UnifiedRow) Output {
	out := Output{Category: "unified", Header: UnifiedHeader}
	for _, r := range rows {
		out.Rows = append(out.Rows, r.Values())
	}
	return out
}
