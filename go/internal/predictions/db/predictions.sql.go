// source: predictions.sql

package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const deletePrediction = `-- name: DeletePrediction :execrows
DELETE FROM predictions
WHERE league_id = $1 AND user_id = $2 AND match_id = $3
`

type DeletePredictionParams struct {
	LeagueID uuid.UUID
	UserID   uuid.UUID
	MatchID  uuid.UUID
}

func (q *Queries) DeletePrediction(ctx context.Context, arg DeletePredictionParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deletePrediction, arg.LeagueID, arg.UserID, arg.MatchID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
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

const getMatchSchedule = `-- name: GetMatchSchedule :one
SELECT id, season_id, round, kickoff_at, status
FROM matches
WHERE id = $1
`

type GetMatchScheduleRow struct {
	ID        uuid.UUID
	SeasonID  uuid.UUID
	Round     int32
	KickoffAt time.Time
	Status    MatchStatus
}

func (q *Queries) GetMatchSchedule(ctx context.Context, id uuid.UUID) (GetMatchScheduleRow, error) {
	row := q.db.QueryRowContext(ctx, getMatchSchedule, id)
	var i GetMatchScheduleRow
	err := row.Scan(
		&i.ID,
		&i.SeasonID,
		&i.Round,
		&i.KickoffAt,
		&i.Status,
	)
	return i, err
}

const getPick = `-- name: GetPick :one
SELECT m.id AS match_id, m.round, m.kickoff_at, m.status,
       m.home_team_id, ht.name AS home_team_name,
       m.away_team_id, at.name AS away_team_name,
       m.home_goals, m.away_goals,
       p.id AS prediction_id, p.home_goals AS predicted_home, p.away_goals AS predicted_away, p.points
FROM matches m
JOIN teams ht ON ht.id = m.home_team_id
JOIN teams at ON at.id = m.away_team_id
LEFT JOIN predictions p
       ON p.match_id = m.id AND p.league_id = $1 AND p.user_id = $2
WHERE m.id = $3
`

type GetPickParams struct {
	LeagueID uuid.UUID
	UserID   uuid.UUID
	MatchID  uuid.UUID
}

type GetPickRow struct {
	MatchID       uuid.UUID
	Round         int32
	KickoffAt     time.Time
	Status        MatchStatus
	HomeTeamID    uuid.UUID
	HomeTeamName  string
	AwayTeamID    uuid.UUID
	AwayTeamName  string
	HomeGoals     sql.NullInt32
	AwayGoals     sql.NullInt32
	PredictionID  uuid.NullUUID
	PredictedHome sql.NullInt32
	PredictedAway sql.NullInt32
	Points        sql.NullInt32
}

func (q *Queries) GetPick(ctx context.Context, arg GetPickParams) (GetPickRow, error) {
	row := q.db.QueryRowContext(ctx, getPick, arg.LeagueID, arg.UserID, arg.MatchID)
	var i GetPickRow
	err := row.Scan(
		&i.MatchID,
		&i.Round,
		&i.KickoffAt,
		&i.Status,
		&i.HomeTeamID,
		&i.HomeTeamName,
		&i.AwayTeamID,
		&i.AwayTeamName,
		&i.HomeGoals,
		&i.AwayGoals,
		&i.PredictionID,
		&i.PredictedHome,
		&i.PredictedAway,
		&i.Points,
	)
	return i, err
}

const isMember = `-- name: IsMember :one
SELECT EXISTS (
    SELECT 1 FROM league_members WHERE league_id = $1 AND user_id = $2
)
`

type IsMemberParams struct {
	LeagueID uuid.UUID
	UserID   uuid.UUID
}

func (q *Queries) IsMember(ctx context.Context, arg IsMemberParams) (bool, error) {
	row := q.db.QueryRowContext(ctx, isMember, arg.LeagueID, arg.UserID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const listMatchPicks = `-- name: ListMatchPicks :many
SELECT lm.user_id, u.display_name,
       p.id AS prediction_id, p.home_goals AS predicted_home, p.away_goals AS predicted_away, p.points
FROM league_members lm
JOIN users u ON u.id = lm.user_id
LEFT JOIN predictions p
       ON p.league_id = lm.league_id AND p.user_id = lm.user_id AND p.match_id = $1
WHERE lm.league_id = $2
ORDER BY u.display_name, lm.user_id
`

type ListMatchPicksParams struct {
	MatchID  uuid.UUID
	LeagueID uuid.UUID
}

type ListMatchPicksRow struct {
	UserID        uuid.UUID
	DisplayName   string
	PredictionID  uuid.NullUUID
	PredictedHome sql.NullInt32
	PredictedAway sql.NullInt32
	Points        sql.NullInt32
}

func (q *Queries) ListMatchPicks(ctx context.Context, arg ListMatchPicksParams) ([]ListMatchPicksRow, error) {
	rows, err := q.db.QueryContext(ctx, listMatchPicks, arg.MatchID, arg.LeagueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListMatchPicksRow
	for rows.Next() {
		var i ListMatchPicksRow
		if err := rows.Scan(
			&i.UserID,
			&i.DisplayName,
			&i.PredictionID,
			&i.PredictedHome,
			&i.PredictedAway,
			&i.Points,
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

const listRoundPicks = `-- name: ListRoundPicks :many
SELECT m.id AS match_id, m.round, m.kickoff_at, m.status,
       m.home_team_id, ht.name AS home_team_name,
       m.away_team_id, at.name AS away_team_name,
       m.home_goals, m.away_goals,
       p.id AS prediction_id, p.home_goals AS predicted_home, p.away_goals AS predicted_away, p.points
FROM matches m
JOIN teams ht ON ht.id = m.home_team_id
JOIN teams at ON at.id = m.away_team_id
LEFT JOIN predictions p
       ON p.match_id = m.id AND p.league_id = $1 AND p.user_id = $2
WHERE m.season_id = $3 AND m.round = $4
ORDER BY m.kickoff_at, m.id
`

type ListRoundPicksParams struct {
	LeagueID uuid.UUID
	UserID   uuid.UUID
	SeasonID uuid.UUID
	Round    int32
}

type ListRoundPicksRow struct {
	MatchID       uuid.UUID
	Round         int32
	KickoffAt     time.Time
	Status        MatchStatus
	HomeTeamID    uuid.UUID
	HomeTeamName  string
	AwayTeamID    uuid.UUID
	AwayTeamName  string
	HomeGoals     sql.NullInt32
	AwayGoals     sql.NullInt32
	PredictionID  uuid.NullUUID
	PredictedHome sql.NullInt32
	PredictedAway sql.NullInt32
	Points        sql.NullInt32
}

func (q *Queries) ListRoundPicks(ctx context.Context, arg ListRoundPicksParams) ([]ListRoundPicksRow, error) {
	rows, err := q.db.QueryContext(ctx, listRoundPicks,
		arg.LeagueID,
		arg.UserID,
		arg.SeasonID,
		arg.Round,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListRoundPicksRow
	for rows.Next() {
		var i ListRoundPicksRow
		if err := rows.Scan(
			&i.MatchID,
			&i.Round,
			&i.KickoffAt,
			&i.Status,
			&i.HomeTeamID,
			&i.HomeTeamName,
			&i.AwayTeamID,
			&i.AwayTeamName,
			&i.HomeGoals,
			&i.AwayGoals,
			&i.PredictionID,
			&i.PredictedHome,
			&i.PredictedAway,
			&i.Points,
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

const upsertPrediction = `-- name: UpsertPrediction :one
INSERT INTO predictions (id, league_id, user_id, match_id, home_goals, away_goals)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (league_id, user_id, match_id) DO UPDATE
SET home_goals = EXCLUDED.home_goals,
    away_goals = EXCLUDED.away_goals,
    points = CASE WHEN $7::bool THEN NULL ELSE predictions.points END,
    updated_at = now()
RETURNING id, league_id, user_id, match_id, home_goals, away_goals, points, created_at, updated_at
`

type UpsertPredictionParams struct {
	ID          uuid.UUID
	LeagueID    uuid.UUID
	UserID      uuid.UUID
	MatchID     uuid.UUID
	HomeGoals   int32
	AwayGoals   int32
	ClearPoints bool
}

func (q *Queries) UpsertPrediction(ctx context.Context, arg UpsertPredictionParams) (Prediction, error) {
	row := q.db.QueryRowContext(ctx, upsertPrediction,
		arg.ID,
		arg.LeagueID,
		arg.UserID,
		arg.MatchID,
		arg.HomeGoals,
		arg.AwayGoals,
		arg.ClearPoints,
	)
	var i Prediction
	err := row.Scan(
		&i.ID,
		&i.LeagueID,
		&i.UserID,
		&i.MatchID,
		&i.HomeGoals,
		&i.AwayGoals,
		&i.Points,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
