package outbox

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/models"
	"github.com/mcdev12/scorepool/go/internal/outbox/db"
	"github.com/mcdev12/scorepool/go/internal/sqlutil"
)

// Repository reads and acknowledges outbox rows for the relay.
type Repository struct {
	queries db.Querier
}

func NewRepository(queries db.Querier) *Repository {
	return &Repository{
		queries: queries,
	}
}

func (r *Repository) FetchUnsent(ctx context.Context, limit int32) ([]Event, error) {
	rows, err := r.queries.FetchUnsentOutbox(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsent outbox events: %w", err)
	}

	events := make([]Event, len(rows))
	for i, row := range rows {
		events[i] = Event{
			ID:          row.ID,
			AggregateID: row.AggregateID,
			EventType:   row.EventType,
			Payload:     row.Payload,
			Metadata:    row.Metadata,
			CreatedAt:   row.CreatedAt,
		}
	}
	return events, nil
}

// FetchByID returns an unsent event. Sent or unknown ids report ErrNotFound.
func (r *Repository) FetchByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	row, err := r.queries.FetchOutboxByID(ctx, id)
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return nil, fmt.Errorf("outbox event %s not found or already sent: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch outbox event by ID: %w", err)
	}

	return &Event{
		ID:          row.ID,
		AggregateID: row.AggregateID,
		EventType:   row.EventType,
		Payload:     row.Payload,
		Metadata:    row.Metadata,
		CreatedAt:   row.CreatedAt,
	}, nil
}

func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	if err := r.queries.MarkOutboxSent(ctx, id); err != nil {
		return fmt.Errorf("failed to mark outbox event as sent: %w", err)
	}
	return nil
}

func (r *Repository) CountPending(ctx context.Context) (int64, error) {
	n, err := r.queries.CountPendingOutbox(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending outbox events: %w", err)
	}
	return n, nil
}
