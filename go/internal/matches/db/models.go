package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchStatusSCHEDULED MatchStatus = "SCHEDULED"
	MatchStatusFINISHED  MatchStatus = "FINISHED"
)

type SeasonStatus string

const (
	SeasonStatusPLANNED  SeasonStatus = "PLANNED"
	SeasonStatusACTIVE   SeasonStatus = "ACTIVE"
	SeasonStatusFINISHED SeasonStatus = "FINISHED"
)

type Match struct {
	ID         uuid.UUID
	SeasonID   uuid.UUID
	Round      int32
	HomeTeamID uuid.UUID
	AwayTeamID uuid.UUID
	KickoffAt  time.Time
	Status     MatchStatus
	HomeGoals  sql.NullInt32
	AwayGoals  sql.NullInt32
	CreatedAt  time.Time
}

type Season struct {
	ID            uuid.UUID
	CompetitionID uuid.UUID
	Year          int32
	Status        SeasonStatus
}
