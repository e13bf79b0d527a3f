package matches

import (
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/models"
)

// CreateMatchRequest describes a fixture to schedule. Kickoff is raw text
// so a naive timestamp can be read in the configured zone.
type CreateMatchRequest struct {
	SeasonID   uuid.UUID
	Round      int
	HomeTeamID uuid.UUID
	AwayTeamID uuid.UUID
	Kickoff    string
}

// NewMatch is a validated fixture ready to insert
type NewMatch struct {
	SeasonID   uuid.UUID
	Round      int
	HomeTeamID uuid.UUID
	AwayTeamID uuid.UUID
	KickoffAt  time.Time
}

// PredictionScore is a prediction of the match being finalized
type PredictionScore struct {
	ID        uuid.UUID
	LeagueID  uuid.UUID
	HomeGoals int
	AwayGoals int
}

// PointsUpdate is one recomputed prediction
type PointsUpdate struct {
	PredictionID uuid.UUID
	Points       int
}

// FinalizeResult reports what a posted result touched
type FinalizeResult struct {
	Match             *models.Match
	PredictionsScored int
	LeagueIDs         []uuid.UUID
}
