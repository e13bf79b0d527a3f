// source: matches.sql

package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const countTeams = `-- name: CountTeams :one
SELECT count(*) FROM teams WHERE id = ANY($1::uuid[])
`

func (q *Queries) CountTeams(ctx context.Context, ids []uuid.UUID) (int64, error) {
	row := q.db.QueryRowContext(ctx, countTeams, pq.Array(ids))
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createMatch = `-- name: CreateMatch :one
INSERT INTO matches (season_id, round, home_team_id, away_team_id, kickoff_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, season_id, round, home_team_id, away_team_id, kickoff_at, status, home_goals, away_goals, created_at
`

type CreateMatchParams struct {
	SeasonID   uuid.UUID
	Round      int32
	HomeTeamID uuid.UUID
	AwayTeamID uuid.UUID
	KickoffAt  time.Time
}

func (q *Queries) CreateMatch(ctx context.Context, arg CreateMatchParams) (Match, error) {
	row := q.db.QueryRowContext(ctx, createMatch,
		arg.SeasonID,
		arg.Round,
		arg.HomeTeamID,
		arg.AwayTeamID,
		arg.KickoffAt,
	)
	var i Match
	err := row.Scan(
		&i.ID,
		&i.SeasonID,
		&i.Round,
		&i.HomeTeamID,
		&i.AwayTeamID,
		&i.KickoffAt,
		&i.Status,
		&i.HomeGoals,
		&i.AwayGoals,
		&i.CreatedAt,
	)
	return i, err
}

const deleteMatch = `-- name: DeleteMatch :exec
DELETE FROM matches WHERE id = $1
`

func (q *Queries) DeleteMatch(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, deleteMatch, id)
	return err
}

const getMatch = `-- name: GetMatch :one
SELECT id, season_id, round, home_team_id, away_team_id, kickoff_at, status, home_goals, away_goals, created_at
FROM matches
WHERE id = $1
`

func (q *Queries) GetMatch(ctx context.Context, id uuid.UUID) (Match, error) {
	row := q.db.QueryRowContext(ctx, getMatch, id)
	var i Match
	err := row.Scan(
		&i.ID,
		&i.SeasonID,
		&i.Round,
		&i.HomeTeamID,
		&i.AwayTeamID,
		&i.KickoffAt,
		&i.Status,
		&i.HomeGoals,
		&i.AwayGoals,
		&i.CreatedAt,
	)
	return i, err
}

const getMatchForUpdate = `-- name: GetMatchForUpdate :one
SELECT id, season_id, round, home_team_id, away_team_id, kickoff_at, status, home_goals, away_goals, created_at
FROM matches
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetMatchForUpdate(ctx context.Context, id uuid.UUID) (Match, error) {
	row := q.db.QueryRowContext(ctx, getMatchForUpdate, id)
	var i Match
	err := row.Scan(
		&i.ID,
		&i.SeasonID,
		&i.Round,
		&i.HomeTeamID,
		&i.AwayTeamID,
		&i.KickoffAt,
		&i.Status,
		&i.HomeGoals,
		&i.AwayGoals,
		&i.CreatedAt,
	)
	return i, err
}

const getSeason = `-- name: GetSeason :one
SELECT id, competition_id, year, status FROM seasons WHERE id = $1
`

func (q *Queries) GetSeason(ctx context.Context, id uuid.UUID) (Season, error) {
	row := q.db.QueryRowContext(ctx, getSeason, id)
	var i Season
	err := row.Scan(
		&i.ID,
		&i.CompetitionID,
		&i.Year,
		&i.Status,
	)
	return i, err
}

const listMatches = `-- name: ListMatches :many
SELECT id, season_id, round, home_team_id, away_team_id, kickoff_at, status, home_goals, away_goals, created_at
FROM matches
WHERE season_id = $1
  AND ($2::int IS NULL OR round = $2)
ORDER BY round, kickoff_at, id
`

type ListMatchesParams struct {
	SeasonID uuid.UUID
	Round    sql.NullInt32
}

func (q *Queries) ListMatches(ctx context.Context, arg ListMatchesParams) ([]Match, error) {
	rows, err := q.db.QueryContext(ctx, listMatches, arg.SeasonID, arg.Round)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Match
	for rows.Next() {
		var i Match
		if err := rows.Scan(
			&i.ID,
			&i.SeasonID,
			&i.Round,
			&i.HomeTeamID,
			&i.AwayTeamID,
			&i.KickoffAt,
			&i.Status,
			&i.HomeGoals,
			&i.AwayGoals,
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

const listPredictionsForMatchForUpdate = `-- name: ListPredictionsForMatchForUpdate :many
SELECT id, league_id, home_goals, away_goals
FROM predictions
WHERE match_id = $1
ORDER BY id
FOR UPDATE
`

type ListPredictionsForMatchForUpdateRow struct {
	ID        uuid.UUID
	LeagueID  uuid.UUID
	HomeGoals int32
	AwayGoals int32
}

func (q *Queries) ListPredictionsForMatchForUpdate(ctx context.Context, matchID uuid.UUID) ([]ListPredictionsForMatchForUpdateRow, error) {
	rows, err := q.db.QueryContext(ctx, listPredictionsForMatchForUpdate, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListPredictionsForMatchForUpdateRow
	for rows.Next() {
		var i ListPredictionsForMatchForUpdateRow
		if err := rows.Scan(
			&i.ID,
			&i.LeagueID,
			&i.HomeGoals,
			&i.AwayGoals,
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

const rescheduleMatch = `-- name: RescheduleMatch :one
UPDATE matches SET kickoff_at = $2
WHERE id = $1
RETURNING id, season_id, round, home_team_id, away_team_id, kickoff_at, status, home_goals, away_goals, created_at
`

type RescheduleMatchParams struct {
	ID        uuid.UUID
	KickoffAt time.Time
}

func (q *Queries) RescheduleMatch(ctx context.Context, arg RescheduleMatchParams) (Match, error) {
	row := q.db.QueryRowContext(ctx, rescheduleMatch, arg.ID, arg.KickoffAt)
	var i Match
	err := row.Scan(
		&i.ID,
		&i.SeasonID,
		&i.Round,
		&i.HomeTeamID,
		&i.AwayTeamID,
		&i.KickoffAt,
		&i.Status,
		&i.HomeGoals,
		&i.AwayGoals,
		&i.CreatedAt,
	)
	return i, err
}

const setMatchResult = `-- name: SetMatchResult :one
UPDATE matches SET home_goals = $2, away_goals = $3, status = 'FINISHED'
WHERE id = $1
RETURNING id, season_id, round, home_team_id, away_team_id, kickoff_at, status, home_goals, away_goals, created_at
`

type SetMatchResultParams struct {
	ID        uuid.UUID
	HomeGoals sql.NullInt32
	AwayGoals sql.NullInt32
}

func (q *Queries) SetMatchResult(ctx context.Context, arg SetMatchResultParams) (Match, error) {
	row := q.db.QueryRowContext(ctx, setMatchResult, arg.ID, arg.HomeGoals, arg.AwayGoals)
	var i Match
	err := row.Scan(
		&i.ID,
		&i.SeasonID,
		&i.Round,
		&i.HomeTeamID,
		&i.AwayTeamID,
		&i.KickoffAt,
		&i.Status,
		&i.HomeGoals,
		&i.AwayGoals,
		&i.CreatedAt,
	)
	return i, err
}

const updatePredictionPoints = `-- name: UpdatePredictionPoints :execrows
UPDATE predictions p
SET points = u.points
FROM unnest($1::uuid[], $2::int[]) AS u(id, points)
WHERE p.id = u.id
`

type UpdatePredictionPointsParams struct {
	Ids    []uuid.UUID
	Points []int32
}

func (q *Queries) UpdatePredictionPoints(ctx context.Context, arg UpdatePredictionPointsParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updatePredictionPoints, pq.Array(arg.Ids), pq.Array(arg.Points))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
