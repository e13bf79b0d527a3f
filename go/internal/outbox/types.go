package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

// Event is one row of the transactional outbox
type Event struct {
	ID          uuid.UUID             `json:"id"`
	AggregateID uuid.UUID             `json:"aggregate_id"`
	EventType   string                `json:"event_type"`
	Payload     json.RawMessage       `json:"payload"`
	Metadata    pqtype.NullRawMessage `json:"-"`
	CreatedAt   time.Time             `json:"created_at"`
	SentAt      *time.Time            `json:"sent_at,omitempty"`
}

// Metadata is stored alongside the payload and travels as message headers.
type Metadata struct {
	ActorID uuid.UUID `json:"actor_id"`
}
