package aggregate

import "github.com/22chandu94/DragonsDashboard/internal/parser/numbers"

// ratePlaces is the rounding applied to every derived rate.
const ratePlaces = 2

// ratio divides and rounds, returning 0 for a zero or negative denominator.
func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return numbers.Round(num/den, ratePlaces)
}

// BattingAverage is runs per dismissal. A player with no dismissals is
// treated as dismissed once, so the average equals total runs.
func BattingAverage(runs, innings, notOuts float64) float64 {
	dismissals := innings - notOuts
	if dismissals <= 0 {
		dismissals = 1
	}
	return numbers.Round(runs/dismissals, ratePlaces)
}

// BattingStrikeRate is runs per hundred balls faced; 0 without balls faced.
func BattingStrikeRate(runs, balls float64) float64 {
	return ratio(runs*100, balls)
}

// Economy is runs conceded per over; 0 without overs bowled.
func Economy(runs, overs float64) float64 { return ratio(runs, overs) }

// BowlingAverage is runs conceded per wicket; 0 without wickets.
func BowlingAverage(runs, wickets float64) float64 { return ratio(runs, wickets) }

// BowlingStrikeRate is balls bowled per wicket; 0 without wickets.
func BowlingStrikeRate(balls, wickets float64) float64 { return ratio(balls, wickets) }

// PerMatch divides a fielding total by matches played; 0 without matches.
func PerMatch(total, matches float64) float64 { return ratio(total, matches) }
