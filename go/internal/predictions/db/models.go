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

type Prediction struct {
	ID        uuid.UUID
	LeagueID  uuid.UUID
	UserID    uuid.UUID
	MatchID   uuid.UUID
	HomeGoals int32
	AwayGoals int32
	Points    sql.NullInt32
	CreatedAt time.Time
	UpdatedAt time.Time
}
