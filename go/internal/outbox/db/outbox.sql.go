// source: outbox.sql

package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

const countPendingOutbox = `-- name: CountPendingOutbox :one
SELECT count(*) FROM outbox WHERE sent_at IS NULL
`

func (q *Queries) CountPendingOutbox(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countPendingOutbox)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const fetchOutboxByID = `-- name: FetchOutboxByID :one
SELECT id, aggregate_id, event_type, payload, metadata, created_at
FROM outbox
WHERE id = $1 AND sent_at IS NULL
`

type FetchOutboxByIDRow struct {
	ID          uuid.UUID
	AggregateID uuid.UUID
	EventType   string
	Payload     json.RawMessage
	Metadata    pqtype.NullRawMessage
	CreatedAt   time.Time
}

func (q *Queries) FetchOutboxByID(ctx context.Context, id uuid.UUID) (FetchOutboxByIDRow, error) {
	row := q.db.QueryRowContext(ctx, fetchOutboxByID, id)
	var i FetchOutboxByIDRow
	err := row.Scan(
		&i.ID,
		&i.AggregateID,
		&i.EventType,
		&i.Payload,
		&i.Metadata,
		&i.CreatedAt,
	)
	return i, err
}

const fetchUnsentOutbox = `-- name: FetchUnsentOutbox :many
SELECT id, aggregate_id, event_type, payload, metadata, created_at
FROM outbox
WHERE sent_at IS NULL
ORDER BY created_at
LIMIT $1
`

type FetchUnsentOutboxRow struct {
	ID          uuid.UUID
	AggregateID uuid.UUID
	EventType   string
	Payload     json.RawMessage
	Metadata    pqtype.NullRawMessage
	CreatedAt   time.Time
}

func (q *Queries) FetchUnsentOutbox(ctx context.Context, limit int32) ([]FetchUnsentOutboxRow, error) {
	rows, err := q.db.QueryContext(ctx, fetchUnsentOutbox, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []FetchUnsentOutboxRow
	for rows.Next() {
		var i FetchUnsentOutboxRow
		if err := rows.Scan(
			&i.ID,
			&i.AggregateID,
			&i.EventType,
			&i.Payload,
			&i.Metadata,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertOutboxEvent = `-- name: InsertOutboxEvent :exec
INSERT INTO outbox (id, aggregate_id, event_type, payload, metadata)
VALUES ($1, $2, $3, $4, $5)
`

type InsertOutboxEventParams struct {
	ID          uuid.UUID
	AggregateID uuid.UUID
	EventType   string
	Payload     json.RawMessage
	Metadata    pqtype.NullRawMessage
}

func (q *Queries) InsertOutboxEvent(ctx context.Context, arg InsertOutboxEventParams) error {
	_, err := q.db.ExecContext(ctx, insertOutboxEvent,
		arg.ID,
		arg.AggregateID,
		arg.EventType,
		arg.Payload,
		arg.Metadata,
	)
	return err
}

const markOutboxSent = `-- name: MarkOutboxSent :exec
UPDATE outbox SET sent_at = now() WHERE id = $1
`

func (q *Queries) MarkOutboxSent(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, markOutboxSent, id)
	return err
}
