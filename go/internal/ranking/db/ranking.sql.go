// source: ranking.sql

package db

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

const countFinishedMatches = `-- name: CountFinishedMatches :one
SELECT count(*)
FROM matches
WHERE season_id = $1
  AND status = 'FINISHED'
  AND ($2::int IS NULL OR round = $2)
`

type CountFinishedMatchesParams struct {
	SeasonID uuid.UUID
	Round    sql.NullInt32
}

func (q *Queries) CountFinishedMatches(ctx context.Context, arg CountFinishedMatchesParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, countFinishedMatches, arg.SeasonID, arg.Round)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const getLeagueSeason = `-- name: GetLeagueSeason :one
SELECT season_id FROM leagues WHERE id = $1
`

func (q *Queries) GetLeagueSeason(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	row := q.db.QueryRowContext(ctx, getLeagueSeason, id)
	var season_id uuid.UUID
	err := row.Scan(&season_id)
	return season_id, err
}

const listRankedMembers = `-- name: ListRankedMembers :many
SELECT lm.user_id, u.display_name
FROM league_members lm
JOIN users u ON u.id = lm.user_id
WHERE lm.league_id = $1
ORDER BY u.display_name, lm.user_id
`

type ListRankedMembersRow struct {
	UserID      uuid.UUID
	DisplayName string
}

func (q *Queries) ListRankedMembers(ctx context.Context, leagueID uuid.UUID) ([]ListRankedMembersRow, error) {
	rows, err := q.db.QueryContext(ctx, listRankedMembers, leagueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListRankedMembersRow
	for rows.Next() {
		var i ListRankedMembersRow
		if err := rows.Scan(&i.UserID, &i.DisplayName); err != nil {
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

const listScoredPredictions = `-- name: ListScoredPredictions :many
SELECT p.user_id, m.round, p.points
FROM predictions p
JOIN matches m ON m.id = p.match_id
WHERE p.league_id = $1
  AND m.status = 'FINISHED'
  AND p.points IS NOT NULL
  AND ($2::int IS NULL OR m.round = $2)
ORDER BY p.user_id, m.round
`

type ListScoredPredictionsParams struct {
	LeagueID uuid.UUID
	Round    sql.NullInt32
}

type ListScoredPredictionsRow struct {
	UserID uuid.UUID
	Round  int32
	Points sql.NullInt32
}

func (q *Queries) ListScoredPredictions(ctx context.Context, arg ListScoredPredictionsParams) ([]ListScoredPredictionsRow, error) {
	rows, err := q.db.QueryContext(ctx, listScoredPredictions, arg.LeagueID, arg.Round)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListScoredPredictionsRow
	for rows.Next() {
		var i ListScoredPredictionsRow
		if err := rows.Scan(&i.UserID, &i.Round, &i.Points); err != nil {
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

const maxFinishedRound = `-- name: MaxFinishedRound :one
SELECT max(round)::int
FROM matches
WHERE season_id = $1 AND status = 'FINISHED'
`

func (q *Queries) MaxFinishedRound(ctx context.Context, seasonID uuid.UUID) (sql.NullInt32, error) {
	row := q.db.QueryRowContext(ctx, maxFinishedRound, seasonID)
	var column_1 sql.NullInt32
	err := row.Scan(&column_1)
	return column_1, err
}
