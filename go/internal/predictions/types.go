package predictions

import (
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/models"
)

// SubmitRequest is a user's forecast for one match inside one league
type SubmitRequest struct {
	LeagueID  uuid.UUID
	UserID    uuid.UUID
	MatchID   uuid.UUID
	HomeGoals int
	AwayGoals int
}

// MatchSchedule is the slice of a match the ledger needs to decide locking
type MatchSchedule struct {
	ID        uuid.UUID
	SeasonID  uuid.UUID
	Round     int
	KickoffAt time.Time
	Status    models.MatchStatus
}

// Pick is a match as one user sees it: fixture, result and their prediction
// if they made one.
type Pick struct {
	MatchID       uuid.UUID
	Round         int
	KickoffAt     time.Time
	Status        models.MatchStatus
	HomeTeamID    uuid.UUID
	HomeTeamName  string
	AwayTeamID    uuid.UUID
	AwayTeamName  string
	HomeGoals     *int
	AwayGoals     *int
	PredictionID  *uuid.UUID
	PredictedHome *int
	PredictedAway *int
	Points        *int
}

// MemberPick is one league member's prediction for a match, if any
type MemberPick struct {
	UserID        uuid.UUID
	DisplayName   string
	PredictionID  *uuid.UUID
	PredictedHome *int
	PredictedAway *int
	Points        *int
}
