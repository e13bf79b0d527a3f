package ranking

import "github.com/google/uuid"

// Member is a league member as ranked
type Member struct {
	UserID      uuid.UUID
	DisplayName string
}

// ScoredPrediction is one prediction on a finished match
type ScoredPrediction struct {
	UserID uuid.UUID
	Round  int
	Points int
}

// Breakdown counts points and outcome categories for one member
type Breakdown struct {
	Points       int
	Exact        int
	Differential int
	Winner       int
	Miss         int
}

// Standing is a row of the overall table. Rates are relative to the number
// of finished matches in the league's season.
type Standing struct {
	Position    int
	UserID      uuid.UUID
	DisplayName string
	Breakdown

	Efficiency       float64
	ExactRate        float64
	DifferentialRate float64
	WinnerRate       float64
}

// RoundStanding is a row of a single round's table
type RoundStanding struct {
	Position    int
	UserID      uuid.UUID
	DisplayName string
	Breakdown
}

// SeriesPoint is one round of a cumulative series
type SeriesPoint struct {
	Round  int
	Points int
	Total  int
}

// Series is a member's running total round by round
type Series struct {
	UserID      uuid.UUID
	DisplayName string
	Points      []SeriesPoint
}
