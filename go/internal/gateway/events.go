package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/outbox"
)

// NotificationType tells a subscribed client what to refetch
type NotificationType string

const (
	NotificationStandingsChanged NotificationType = "standings_changed"
	NotificationMembersChanged   NotificationType = "members_changed"
	NotificationLeagueDeleted    NotificationType = "league_deleted"
)

// Notification is the frame written to league subscribers. ID and EventType
// come from the outbox event that caused it.
type Notification struct {
	ID        string           `json:"id"`
	LeagueID  string           `json:"league_id"`
	Type      NotificationType `json:"type"`
	EventType string           `json:"event_type"`
	Timestamp time.Time        `json:"timestamp"`
	Data      json.RawMessage  `json:"data,omitempty"`
}

// Routed pairs a notification with the league it goes to
type Routed struct {
	LeagueID     uuid.UUID
	Notification *Notification
}

type standingsData struct {
	MatchID string `json:"match_id"`
	Round   int    `json:"round"`
}

// Translate turns a relayed outbox envelope into league notifications. A
// finalized match fans out to every league that had a prediction on it.
// Event types the gateway does not care about yield nothing.
func Translate(env outbox.Envelope) ([]Routed, error) {
	switch env.EventType {
	case outbox.EventMatchFinalized:
		var p outbox.MatchFinalizedPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", env.EventType, err)
		}
		data, err := json.Marshal(standingsData{MatchID: p.MatchID.String(), Round: p.Round})
		if err != nil {
			return nil, err
		}
		out := make([]Routed, 0, len(p.LeagueIDs))
		for _, leagueID := range p.LeagueIDs {
			out = append(out, route(env, leagueID, NotificationStandingsChanged, data))
		}
		return out, nil

	case outbox.EventMemberJoined, outbox.EventMemberLeft, outbox.EventMemberRemoved,
		outbox.EventMemberRoleChanged, outbox.EventOwnershipTransferred:
		leagueID, err := uuid.Parse(env.AggregateID)
		if err != nil {
			return nil, fmt.Errorf("parse aggregate id: %w", err)
		}
		return []Routed{route(env, leagueID, NotificationMembersChanged, env.Payload)}, nil

	case outbox.EventLeagueDeleted:
		leagueID, err := uuid.Parse(env.AggregateID)
		if err != nil {
			return nil, fmt.Errorf("parse aggregate id: %w", err)
		}
		return []Routed{route(env, leagueID, NotificationLeagueDeleted, nil)}, nil
	}
	return nil, nil
}

func route(env outbox.Envelope, leagueID uuid.UUID, typ NotificationType, data json.RawMessage) Routed {
	return Routed{
		LeagueID: leagueID,
		Notification: &Notification{
			ID:        env.EventID,
			LeagueID:  leagueID.String(),
			Type:      typ,
			EventType: env.EventType,
			Timestamp: env.Timestamp,
			Data:      data,
		},
	}
}
