package db

import (
	"context"

	"github.com/google/uuid"
)

type Querier interface {
	CountPendingOutbox(ctx context.Context) (int64, error)
	FetchOutboxByID(ctx context.Context, id uuid.UUID) (FetchOutboxByIDRow, error)
	FetchUnsentOutbox(ctx context.Context, limit int32) ([]FetchUnsentOutboxRow, error)
	InsertOutboxEvent(ctx context.Context, arg InsertOutboxEventParams) error
	MarkOutboxSent(ctx context.Context, id uuid.UUID) error
}

var _ Querier = (*Queries)(nil)
