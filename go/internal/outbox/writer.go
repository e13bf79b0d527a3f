package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/outbox/db"
	"github.com/rs/zerolog/log"
	"github.com/sqlc-dev/pqtype"
)

// Inserter is the single query the writer needs. Bind it to the caller's
// transaction so the event commits or rolls back with the domain change.
type Inserter interface {
	InsertOutboxEvent(ctx context.Context, arg db.InsertOutboxEventParams) error
}

// Writer appends events to the outbox table.
type Writer struct {
	queries Inserter
}

func NewWriter(queries Inserter) *Writer {
	return &Writer{queries: queries}
}

// Append marshals payload and inserts it as a new unsent event. A zero actor
// leaves metadata NULL.
func (w *Writer) Append(ctx context.Context, aggregateID uuid.UUID, eventType string, payload any, actor uuid.UUID) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", eventType, err)
	}

	meta := pqtype.NullRawMessage{}
	if actor != uuid.Nil {
		raw, err := json.Marshal(Metadata{ActorID: actor})
		if err != nil {
			return fmt.Errorf("marshal %s metadata: %w", eventType, err)
		}
		meta = pqtype.NullRawMessage{RawMessage: raw, Valid: true}
	}

	id := uuid.New()
	err = w.queries.InsertOutboxEvent(ctx, db.InsertOutboxEventParams{
		ID:          id,
		AggregateID: aggregateID,
		EventType:   eventType,
		Payload:     data,
		Metadata:    meta,
	})
	if err != nil {
		return fmt.Errorf("failed to insert %s outbox event: %w", eventType, err)
	}

	log.Debug().
		Str("event_id", id.String()).
		Str("aggregate_id", aggregateID.String()).
		Str("event_type", eventType).
		Msg("outbox event inserted")
	return nil
}
