package models

import (
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "SCHEDULED"
	MatchStatusFinished  MatchStatus = "FINISHED"
)

// Match is one fixture between two teams inside a season round
type Match struct {
	ID         uuid.UUID   `json:"id"`
	SeasonID   uuid.UUID   `json:"season_id"`
	Round      int         `json:"round"`
	HomeTeamID uuid.UUID   `json:"home_team_id"`
	AwayTeamID uuid.UUID   `json:"away_team_id"`
	KickoffAt  time.Time   `json:"kickoff_at"` // always UTC
	Status     MatchStatus `json:"status"`
	HomeGoals  *int        `json:"home_goals,omitempty"` // nil until finished
	AwayGoals  *int        `json:"away_goals,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// IsFinished reports whether a result has been posted for the match
func (m *Match) IsFinished() bool {
	return m.Status == MatchStatusFinished
}
