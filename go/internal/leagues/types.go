package leagues

import (
	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/models"
)

// CreateLeagueRequest represents the data needed to create a new league
type CreateLeagueRequest struct {
	OwnerID  uuid.UUID
	Name     string
	SeasonID uuid.UUID
}

// NewLeague is a league row ready to insert
type NewLeague struct {
	ID         uuid.UUID
	Name       string
	SeasonID   uuid.UUID
	InviteCode string
	OwnerID    uuid.UUID
}

// JoinResult reports the membership a join produced. AlreadyMember is set
// when the user was in the league before the call.
type JoinResult struct {
	League        *models.League
	Membership    *models.Membership
	AlreadyMember bool
}

// Config tunes governance behavior
type Config struct {
	InviteCodeAttempts int
}

func DefaultConfig() Config {
	return Config{InviteCodeAttempts: 10}
}
