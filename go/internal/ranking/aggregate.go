package ranking

import (
	"sort"

	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/scoring"
)

// tally folds predictions into a breakdown per member. Predictions of users
// who are no longer members are ignored.
func tally(members []Member, preds []ScoredPrediction) map[uuid.UUID]*Breakdown {
	out := make(map[uuid.UUID]*Breakdown, len(members))
	for _, m := range members {
		out[m.UserID] = &Breakdown{}
	}

	for _, p := range preds {
		b, ok := out[p.UserID]
		if !ok {
			continue
		}
		b.Points += p.Points
		switch scoring.Classify(p.Points) {
		case scoring.CategoryExact:
			b.Exact++
		case scoring.CategoryDifferential:
			b.Differential++
		case scoring.CategoryWinner:
			b.Winner++
		default:
			b.Miss++
		}
	}
	return out
}

// ranksBefore orders by points, exact, differential and winner counts, all
// descending, then name and user id ascending.
func ranksBefore(a, b Breakdown, aName, bName string, aID, bID uuid.UUID) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.Exact != b.Exact {
		return a.Exact > b.Exact
	}
	if a.Differential != b.Differential {
		return a.Differential > b.Differential
	}
	if a.Winner != b.Winner {
		return a.Winner > b.Winner
	}
	if aName != bName {
		return aName < bName
	}
	return aID.String() < bID.String()
}

// Overall builds the season table. finished is the number of finished
// matches in the league's season and is the denominator of every rate.
func Overall(members []Member, preds []ScoredPrediction, finished int) []Standing {
	totals := tally(members, preds)

	out := make([]Standing, len(members))
	for i, m := range members {
		b := *totals[m.UserID]
		s := Standing{UserID: m.UserID, DisplayName: m.DisplayName, Breakdown: b}
		if finished > 0 {
			n := float64(finished)
			s.Efficiency = float64(b.Points) / (n * scoring.MaxPoints)
			s.ExactRate = float64(b.Exact) / n
			s.DifferentialRate = float64(b.Differential) / n
			s.WinnerRate = float64(b.Winner) / n
		}
		out[i] = s
	}

	sort.Slice(out, func(i, j int) bool {
		return ranksBefore(out[i].Breakdown, out[j].Breakdown, out[i].DisplayName, out[j].DisplayName, out[i].UserID, out[j].UserID)
	})
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}

// Round builds one round's table from that round's predictions. Every
// member appears even when nothing has been scored.
func Round(members []Member, preds []ScoredPrediction) []RoundStanding {
	totals := tally(members, preds)

	out := make([]RoundStanding, len(members))
	for i, m := range members {
		out[i] = RoundStanding{UserID: m.UserID, DisplayName: m.DisplayName, Breakdown: *totals[m.UserID]}
	}

	sort.Slice(out, func(i, j int) bool {
		return ranksBefore(out[i].Breakdown, out[j].Breakdown, out[i].DisplayName, out[j].DisplayName, out[i].UserID, out[j].UserID)
	})
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}

// Cumulative returns, for each member in input order, points per round and
// the running total for rounds 1..upTo. Rounds without points count zero.
func Cumulative(members []Member, preds []ScoredPrediction, upTo int) []Series {
	if upTo < 1 {
		return []Series{}
	}

	perRound := make(map[uuid.UUID][]int, len(members))
	for _, m := range members {
		perRound[m.UserID] = make([]int, upTo+1)
	}
	for _, p := range preds {
		rounds, ok := perRound[p.UserID]
		if !ok || p.Round < 1 || p.Round > upTo {
			continue
		}
		rounds[p.Round] += p.Points
	}

	out := make([]Series, len(members))
	for i, m := range members {
		rounds := perRound[m.UserID]
		points := make([]SeriesPoint, upTo)
		total := 0
		for r := 1; r <= upTo; r++ {
			total += rounds[r]
			points[r-1] = SeriesPoint{Round: r, Points: rounds[r], Total: total}
		}
		out[i] = Series{UserID: m.UserID, DisplayName: m.DisplayName, Points: points}
	}
	return out
}
