package dashboard

import (
	"fmt"
	"html/template"
	"strconv"

	"github.com/22chandu94/DragonsDashboard/internal/aggregate"
)

// Page is the model rendered by templates/page.tmpl.
type Page struct {
	Title    string
	Subtitle string
	Active   string
	Notice   string
	Stats    []Stat
	Charts   []template.HTML
	Tables   []Table
	Players  []string
	Asset    string
}

// Stat is a headline number.
type Stat struct {
	Label string
	Value string
}

// Table is a titled data table. Empty tables render their Empty text.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
	Empty  string
}

type pageBuilder struct {
	page Page
	err  error
}

func newPage(title, active string) *pageBuilder {
	return &pageBuilder{page: Page{Title: title, Active: active, Asset: EChartsAsset}}
}

func (b *pageBuilder) stat(label string, v any) {
	b.page.Stats = append(b.page.Stats, Stat{Label: label, Value: fmt.Sprint(v)})
}

func (b *pageBuilder) chart(c renderer) {
	if b.err != nil {
		return
	}
	html, err := fragment(c)
	if err != nil {
		b.err = err
		return
	}
	b.page.Charts = append(b.page.Charts, html)
}

func (b *pageBuilder) table(t Table) { b.page.Tables = append(b.page.Tables, t) }

func (b *pageBuilder) build() (Page, error) { return b.page, b.err }

func f2(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func overviewPage(team string, s Snapshot) (Page, error) {
	ov := NewOverview(s.Players)
	b := newPage(team+" - Team Overview", "home")
	b.page.Players = PlayerNames(s)
	if len(s.Players) == 0 {
		b.page.Notice = "No player data published yet. Run the aggregation first."
		return b.build()
	}
	b.stat("Total Runs", ov.TotalRuns)
	b.stat("Matches Played", ov.Matches)
	b.stat("Total 4s", ov.Fours)
	b.stat("Total 6s", ov.Sixes)

	b.chart(pieChart("Run Contribution by Player", ov.Contribution, true))

	t := Table{Title: "Top 10 Run Scorers", Header: []string{"Name", "Runs", "Average", "Strike Rate"}}
	for _, p := range ov.TopScorers {
		t.Rows = append(t.Rows, []string{p.Name, strconv.Itoa(p.TotalRuns), f2(p.Average), f2(p.StrikeRate)})
	}
	b.table(t)
	return b.build()
}

func battingPage(s Snapshot, minInnings int) (Page, error) {
	v := NewBattingView(s.Players, minInnings)
	b := newPage("Batting Insights", "batting")
	b.page.Subtitle = fmt.Sprintf("Averages for players with at least %d innings", minInnings)
	if len(s.Players) == 0 {
		b.page.Notice = "No batting data published yet."
		return b.build()
	}

	names, values := column(v.Averages, unifiedName, func(p aggregate.UnifiedRow) float64 { return p.Average })
	b.chart(barChart(fmt.Sprintf("Batting Averages (Min %d Innings)", minInnings), "Average", names, series{Name: "Average", Values: values}))
	avg := Table{Title: "Batting Averages", Header: []string{"Name", "Innings", "Average", "Runs", "Strike Rate"}, Empty: "No player meets the innings threshold."}
	for _, p := range v.Averages {
		avg.Rows = append(avg.Rows, []string{p.Name, strconv.Itoa(p.Innings), f2(p.Average), strconv.Itoa(p.TotalRuns), f2(p.StrikeRate)})
	}
	b.table(avg)

	names, values = column(v.StrikeRates, unifiedName, func(p aggregate.UnifiedRow) float64 { return p.StrikeRate })
	b.chart(barChart("Strike Rate Leaderboard", "Strike Rate", names, series{Name: "Strike Rate", Values: values}))

	names, values = column(v.BoundaryShare, boundaryName, func(l BoundaryLine) float64 { return l.Percent })
	b.chart(barChart("Boundary Percentage", "% of runs", names, series{Name: "Boundary %", Values: values}))
	bt := Table{Title: "Boundary %", Header: []string{"Name", "Runs", "4s", "6s", "Boundary Runs", "Boundary %"}}
	for _, l := range v.BoundaryShare {
		bt.Rows = append(bt.Rows, []string{l.Name, strconv.Itoa(l.Runs), strconv.Itoa(l.Fours), strconv.Itoa(l.Sixes), strconv.Itoa(l.BoundaryRuns), f2(l.Percent)})
	}
	b.table(bt)

	names, values = column(v.Hitters, boundaryName, func(l BoundaryLine) float64 { return float64(l.Boundaries) })
	b.chart(barChart("4s + 6s Leaderboard", "Boundaries", names, series{Name: "4s + 6s", Values: values}))
	return b.build()
}

func bowlingPage(s Snapshot) (Page, error) {
	v := NewBowlingView(s.Bowling)
	b := newPage("Bowling Insights", "bowling")
	if len(s.Bowling) == 0 {
		b.page.Notice = "No bowling data published yet."
		return b.build()
	}

	names, values := column(v.Economy, bowlerName, func(r aggregate.BowlingRow) float64 { return r.Economy })
	b.chart(barChart(fmt.Sprintf("Best Economy Rates (Min %g Overs)", MinEconomyOvers), "Economy", names, series{Name: "Economy", Values: values}))
	names, values = column(v.StrikeRate, bowlerName, func(r aggregate.BowlingRow) float64 { return r.StrikeRate })
	b.chart(barChart(fmt.Sprintf("Bowling Strike Rate Leaders (Min %d Wickets)", MinStrikeRateWickets), "Balls per Wicket", names, series{Name: "Strike Rate", Values: values}))

	shares := make([]Share, 0, len(v.Styles))
	for _, sc := range v.Styles {
		shares = append(shares, Share{Name: sc.Style, Value: float64(sc.Count)})
	}
	b.chart(pieChart("Bowling Style Distribution", shares, false))

	balance := make([]pointGroup, 0, len(v.ByStyle))
	for _, g := range v.ByStyle {
		pg := pointGroup{Name: g.Style}
		for _, r := range g.Bowlers {
			pg.Points = append(pg.Points, point{Name: r.Name, X: r.Economy, Y: float64(r.Wickets), Size: r.OversBowled})
		}
		balance = append(balance, pg)
	}
	b.chart(scatterChart("Wickets vs Economy", "Economy", "Wickets", balance))

	workload := pointGroup{Name: "Bowlers"}
	for _, r := range v.All {
		workload.Points = append(workload.Points, point{Name: r.Name, X: r.OversBowled, Y: float64(r.Wickets), Size: r.Economy})
	}
	b.chart(scatterChart("Overs Bowled vs Wickets", "Overs Bowled", "Total Wickets", []pointGroup{workload}))

	t := Table{Title: "All Bowlers", Header: []string{"Player Name", "Overs Bowled", "Wickets", "Economy", "Strike Rate", "Average", "Bowling Style"}}
	for _, r := range v.All {
		t.Rows = append(t.Rows, []string{r.Name, strconv.FormatFloat(r.OversBowled, 'f', 1, 64), strconv.Itoa(r.Wickets), f2(r.Economy), f2(r.StrikeRate), f2(r.Average), r.Style})
	}
	b.table(t)
	return b.build()
}

func fieldingPage(s Snapshot) (Page, error) {
	v := NewFieldingView(s.Fielding)
	b := newPage("Fielding Insights", "fielding")
	if len(v.Rows) == 0 {
		b.page.Notice = "No fielding dismissals published yet."
		return b.build()
	}

	names := make([]string, len(v.Catchers))
	values := make([]float64, len(v.Catchers))
	for i, c := range v.Catchers {
		names[i], values[i] = c.Name, float64(c.Catches)
	}
	b.chart(barChart("Top Catchers", "Catches", names, series{Name: "Catches", Values: values}))

	names, values = column(v.Dismissals, fielderName, func(r aggregate.FieldingRow) float64 { return float64(r.TotalDismissals) })
	b.chart(barChart("Top Total Dismissals", "Dismissals", names, series{Name: "Total Dismissals", Values: values}))

	names, values = column(v.PerMatch, fielderName, func(r aggregate.FieldingRow) float64 { return r.DismissalsPerMatch })
	b.chart(barChart("Dismissals per Match", "Dismissals/Match", names, series{Name: "Dismissals/Match", Values: values}))

	names, runOuts := column(v.Rows, fielderName, func(r aggregate.FieldingRow) float64 { return float64(r.RunOuts) })
	_, assists := column(v.Rows, fielderName, func(r aggregate.FieldingRow) float64 { return float64(r.AssistRunOuts) })
	_, stumpings := column(v.Rows, fielderName, func(r aggregate.FieldingRow) float64 { return float64(r.Stumpings) })
	b.chart(barChart("Run Outs and Stumpings", "Dismissals", names,
		series{Name: "Run Outs", Values: runOuts, Stack: "total"},
		series{Name: "Assist Run Outs", Values: assists, Stack: "total"},
		series{Name: "Stumpings", Values: stumpings, Stack: "total"},
	))

	t := Table{Title: "Fielders", Header: []string{"Player Name", "Matches", "Catches", "Total Dismissals", "Dismissals/Match"}}
	for _, r := range v.Rows {
		t.Rows = append(t.Rows, []string{r.Name, strconv.Itoa(r.Matches), strconv.Itoa(r.Catches + r.CaughtBehind), strconv.Itoa(r.TotalDismissals), f2(r.DismissalsPerMatch)})
	}
	b.table(t)
	return b.build()
}

func profilePage(p Profile, players []string) (Page, error) {
	b := newPage(p.Name, "players")
	b.page.Players = players
	if !p.Found() {
		b.page.Notice = fmt.Sprintf("No data found for %s.", p.Name)
		return b.build()
	}

	if bt := p.Batting; bt != nil {
		b.stat("Matches", bt.Matches)
		b.stat("Runs", bt.Runs)
		b.stat("Average", f2(bt.Average))
		b.stat("Strike Rate", f2(bt.StrikeRate))
		b.chart(pieChart("Fours vs Sixes", []Share{{Name: "Fours", Value: float64(bt.Fours)}, {Name: "Sixes", Value: float64(bt.Sixes)}}, false))
		b.table(detail("Batting", aggregate.BattingHeader, bt.Values()))
	} else {
		b.table(Table{Title: "Batting", Empty: "No batting data found for " + p.Name + "."})
	}

	if bw := p.Bowling; bw != nil {
		b.chart(barChart("Bowling Snapshot", "", []string{"Wickets", "Economy", "Strike Rate", "Average"},
			series{Name: p.Name, Values: []float64{float64(bw.Wickets), bw.Economy, bw.StrikeRate, bw.Average}}))
		b.table(detail("Bowling", aggregate.BowlingHeader, bw.Values()))
	} else {
		b.table(Table{Title: "Bowling", Empty: "No bowling data found for " + p.Name + "."})
	}

	if fd := p.Fielding; fd != nil {
		b.table(detail("Fielding", aggregate.FieldingHeader, fd.Values()))
	} else {
		b.table(Table{Title: "Fielding", Empty: "No fielding data found for " + p.Name + "."})
	}
	return b.build()
}

// detail renders one output row as a two-column key/value table.
func detail(title string, header, values []string) Table {
	t := Table{Title: title, Header: []string{"Stat", "Value"}}
	for i, h := range header {
		if i < len(values) {
			t.Rows = append(t.Rows, []string{h, values[i]})
		}
	}
	return t
}

// column extracts chart labels and values from rows.
func column[T any](rows []T, name func(T) string, val func(T) float64) ([]string, []float64) {
	names, values := make([]string, len(rows)), make([]float64, len(rows))
	for i, r := range rows {
		names[i], values[i] = name(r), val(r)
	}
	return names, values
}

func unifiedName(r aggregate.UnifiedRow) string  { return r.Name }
func boundaryName(l BoundaryLine) string         { return l.Name }
func bowlerName(r aggregate.BowlingRow) string   { return r.Name }
func fielderName(r aggregate.FieldingRow) string { return r.Name }
