package db

import (
	"time"

	"github.com/google/uuid"
)

type LeagueRole string

const (
	LeagueRoleOWNER       LeagueRole = "OWNER"
	LeagueRoleLEAGUEADMIN LeagueRole = "LEAGUE_ADMIN"
	LeagueRoleMEMBER      LeagueRole = "MEMBER"
)

type League struct {
	ID         uuid.UUID
	Name       string
	SeasonID   uuid.UUID
	InviteCode string
	OwnerID    uuid.UUID
	CreatedAt  time.Time
}

type LeagueMember struct {
	ID       uuid.UUID
	LeagueID uuid.UUID
	UserID   uuid.UUID
	Role     LeagueRole
	JoinedAt time.Time
}
