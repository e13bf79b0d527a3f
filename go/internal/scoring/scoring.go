// Package scoring turns a predicted score and a final score into points.
package scoring

// Point values awarded per outcome.
const (
	PointsExact        = 5
	PointsDifferential = 4
	PointsWinner       = 3
	PointsMiss         = 0

	// MaxPoints is the best a single prediction can earn.
	MaxPoints = PointsExact
)

// Category is the outcome class of a scored prediction.
type Category string

const (
	CategoryExact        Category = "EXACT"
	CategoryDifferential Category = "DIFFERENTIAL"
	CategoryWinner       Category = "WINNER"
	CategoryMiss         Category = "MISS"
)

// Score returns the points for predicting predHome x predAway when the match
// ended actualHome x actualAway.
//
// Rules are checked in order, first match wins:
//   - exact score: 5
//   - actual draw: 3 for any predicted draw, else 0
//   - same goal difference: 4
//   - same winner: 3
//   - otherwise 0
func Score(predHome, predAway, actualHome, actualAway int) int {
	if predHome == actualHome && predAway == actualAway {
		return PointsExact
	}

	predDiff := predHome - predAway
	actualDiff := actualHome - actualAway

	if actualDiff == 0 {
		if predDiff == 0 {
			return PointsWinner
		}
		return PointsMiss
	}

	if predDiff == actualDiff {
		return PointsDifferential
	}

	if sign(predDiff) == sign(actualDiff) {
		return PointsWinner
	}

	return PointsMiss
}

// Classify maps a point value produced by Score to its category. Unknown
// values classify as a miss.
func Classify(points int) Category {
	switch points {
	case PointsExact:
		return CategoryExact
	case PointsDifferential:
		return CategoryDifferential
	case PointsWinner:
		return CategoryWinner
	default:
		return CategoryMiss
	}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
