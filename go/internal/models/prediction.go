package models

import (
	"time"

	"github.com/google/uuid"
)

// Prediction is one user's forecast of a match score inside one league
type Prediction struct {
	ID        uuid.UUID `json:"id"`
	LeagueID  uuid.UUID `json:"league_id"`
	UserID    uuid.UUID `json:"user_id"`
	MatchID   uuid.UUID `json:"match_id"`
	HomeGoals int       `json:"home_goals"`
	AwayGoals int       `json:"away_goals"`
	Points    *int      `json:"points,omitempty"` // nil until the match is finished
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
