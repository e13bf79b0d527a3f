package models

import (
	"time"

	"github.com/google/uuid"
)

// LeagueRole is the role a user holds inside a single league
type LeagueRole string

const (
	LeagueRoleOwner       LeagueRole = "OWNER"
	LeagueRoleLeagueAdmin LeagueRole = "LEAGUE_ADMIN"
	LeagueRoleMember      LeagueRole = "MEMBER"
)

// Valid reports whether r is one of the known league roles
func (r LeagueRole) Valid() bool {
	switch r {
	case LeagueRoleOwner, LeagueRoleLeagueAdmin, LeagueRoleMember:
		return true
	default:
		return false
	}
}

// League is a group of users competing on the matches of one season
type League struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	SeasonID   uuid.UUID `json:"season_id"`
	InviteCode string    `json:"invite_code"`
	OwnerID    uuid.UUID `json:"owner_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Membership links a user to a league with a role
type Membership struct {
	ID          uuid.UUID  `json:"id"`
	LeagueID    uuid.UUID  `json:"league_id"`
	UserID      uuid.UUID  `json:"user_id"`
	DisplayName string     `json:"display_name,omitempty"` // joined from users on list reads
	Role        LeagueRole `json:"role"`
	JoinedAt    time.Time  `json:"joined_at"`
}
