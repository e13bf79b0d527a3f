package outbox

import "github.com/google/uuid"

// Event types written by the API and consumed by the gateway.
const (
	EventMatchFinalized       = "match.finalized"
	EventLeagueCreated        = "league.created"
	EventLeagueDeleted        = "league.deleted"
	EventMemberJoined         = "league.member_joined"
	EventMemberLeft           = "league.member_left"
	EventMemberRemoved        = "league.member_removed"
	EventMemberRoleChanged    = "league.role_changed"
	EventOwnershipTransferred = "league.ownership_transferred"
)

// MatchFinalizedPayload is published after a result has been posted and every
// prediction on the match rescored.
type MatchFinalizedPayload struct {
	MatchID           uuid.UUID   `json:"match_id"`
	SeasonID          uuid.UUID   `json:"season_id"`
	Round             int         `json:"round"`
	HomeGoals         int         `json:"home_goals"`
	AwayGoals         int         `json:"away_goals"`
	PredictionsScored int         `json:"predictions_scored"`
	LeagueIDs         []uuid.UUID `json:"league_ids"`
}

type LeagueCreatedPayload struct {
	LeagueID uuid.UUID `json:"league_id"`
	SeasonID uuid.UUID `json:"season_id"`
	OwnerID  uuid.UUID `json:"owner_id"`
	Name     string    `json:"name"`
}

type LeagueDeletedPayload struct {
	LeagueID uuid.UUID `json:"league_id"`
}

// MembershipPayload covers joins, leaves, removals and role changes.
type MembershipPayload struct {
	LeagueID uuid.UUID `json:"league_id"`
	UserID   uuid.UUID `json:"user_id"`
	Role     string    `json:"role,omitempty"`
}

type OwnershipTransferredPayload struct {
	LeagueID        uuid.UUID `json:"league_id"`
	PreviousOwnerID uuid.UUID `json:"previous_owner_id"`
	NewOwnerID      uuid.UUID `json:"new_owner_id"`
}
