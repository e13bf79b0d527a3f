// source: leagues.sql

package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const createLeague = `-- name: CreateLeague :one
INSERT INTO leagues (id, name, season_id, invite_code, owner_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, name, season_id, invite_code, owner_id, created_at
`

type CreateLeagueParams struct {
	ID         uuid.UUID
	Name       string
	SeasonID   uuid.UUID
	InviteCode string
	OwnerID    uuid.UUID
}

func (q *Queries) CreateLeague(ctx context.Context, arg CreateLeagueParams) (League, error) {
	row := q.db.QueryRowContext(ctx, createLeague,
		arg.ID,
		arg.Name,
		arg.SeasonID,
		arg.InviteCode,
		arg.OwnerID,
	)
	var i League
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.SeasonID,
		&i.InviteCode,
		&i.OwnerID,
		&i.CreatedAt,
	)
	return i, err
}

const deleteLeague = `-- name: DeleteLeague :exec
DELETE FROM leagues WHERE id = $1
`

func (q *Queries) DeleteLeague(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, deleteLeague, id)
	return err
}

const deleteMember = `-- name: DeleteMember :execrows
DELETE FROM league_members WHERE league_id = $1 AND user_id = $2
`

type DeleteMemberParams struct {
	LeagueID uuid.UUID
	UserID   uuid.UUID
}

func (q *Queries) DeleteMember(ctx context.Context, arg DeleteMemberParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteMember, arg.LeagueID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getLeague = `-- name: GetLeague :one
SELECT id, name, season_id, invite_code, owner_id, created_at
FROM leagues
WHERE id = $1
`

func (q *Queries) GetLeague(ctx context.Context, id uuid.UUID) (League, error) {
	row := q.db.QueryRowContext(ctx, getLeague, id)
	var i League
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.SeasonID,
		&i.InviteCode,
		&i.OwnerID,
		&i.CreatedAt,
	)
	return i, err
}

const getLeagueByInviteCode = `-- name: GetLeagueByInviteCode :one
SELECT id, name, season_id, invite_code, owner_id, created_at
FROM leagues
WHERE invite_code = $1
`

func (q *Queries) GetLeagueByInviteCode(ctx context.Context, inviteCode string) (League, error) {
	row := q.db.QueryRowContext(ctx, getLeagueByInviteCode, inviteCode)
	var i League
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.SeasonID,
		&i.InviteCode,
		&i.OwnerID,
		&i.CreatedAt,
	)
	return i, err
}

const getLeagueForUpdate = `-- name: GetLeagueForUpdate :one
SELECT id, name, season_id, invite_code, owner_id, created_at
FROM leagues
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetLeagueForUpdate(ctx context.Context, id uuid.UUID) (League, error) {
	row := q.db.QueryRowContext(ctx, getLeagueForUpdate, id)
	var i League
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.SeasonID,
		&i.InviteCode,
		&i.OwnerID,
		&i.CreatedAt,
	)
	return i, err
}

const getMember = `-- name: GetMember :one
SELECT id, league_id, user_id, role, joined_at
FROM league_members
WHERE league_id = $1 AND user_id = $2
`

type GetMemberParams struct {
	LeagueID uuid.UUID
	UserID   uuid.UUID
}

func (q *Queries) GetMember(ctx context.Context, arg GetMemberParams) (LeagueMember, error) {
	row := q.db.QueryRowContext(ctx, getMember, arg.LeagueID, arg.UserID)
	var i LeagueMember
	err := row.Scan(
		&i.ID,
		&i.LeagueID,
		&i.UserID,
		&i.Role,
		&i.JoinedAt,
	)
	return i, err
}

const getMemberForUpdate = `-- name: GetMemberForUpdate :one
SELECT id, league_id, user_id, role, joined_at
FROM league_members
WHERE league_id = $1 AND user_id = $2
FOR UPDATE
`

type GetMemberForUpdateParams struct {
	LeagueID uuid.UUID
	UserID   uuid.UUID
}

func (q *Queries) GetMemberForUpdate(ctx context.Context, arg GetMemberForUpdateParams) (LeagueMember, error) {
	row := q.db.QueryRowContext(ctx, getMemberForUpdate, arg.LeagueID, arg.UserID)
	var i LeagueMember
	err := row.Scan(
		&i.ID,
		&i.LeagueID,
		&i.UserID,
		&i.Role,
		&i.JoinedAt,
	)
	return i, err
}

const insertMember = `-- name: InsertMember :one
INSERT INTO league_members (league_id, user_id, role)
VALUES ($1, $2, $3)
ON CONFLICT (league_id, user_id) DO NOTHING
RETURNING id, league_id, user_id, role, joined_at
`

type InsertMemberParams struct {
	LeagueID uuid.UUID
	UserID   uuid.UUID
	Role     LeagueRole
}

func (q *Queries) InsertMember(ctx context.Context, arg InsertMemberParams) (LeagueMember, error) {
	row := q.db.QueryRowContext(ctx, insertMember, arg.LeagueID, arg.UserID, arg.Role)
	var i LeagueMember
	err := row.Scan(
		&i.ID,
		&i.LeagueID,
		&i.UserID,
		&i.Role,
		&i.JoinedAt,
	)
	return i, err
}

const listLeaguesForUser = `-- name: ListLeaguesForUser :many
SELECT l.id, l.name, l.season_id, l.invite_code, l.owner_id, l.created_at
FROM leagues l
JOIN league_members lm ON lm.league_id = l.id
WHERE lm.user_id = $1
  AND ($2::uuid IS NULL OR l.season_id = $2)
ORDER BY l.created_at DESC, l.id
`

type ListLeaguesForUserParams struct {
	UserID   uuid.UUID
	SeasonID uuid.NullUUID
}

func (q *Queries) ListLeaguesForUser(ctx context.Context, arg ListLeaguesForUserParams) ([]League, error) {
	rows, err := q.db.QueryContext(ctx, listLeaguesForUser, arg.UserID, arg.SeasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []League
	for rows.Next() {
		var i League
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.SeasonID,
			&i.InviteCode,
			&i.OwnerID,
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

const listMembers = `-- name: ListMembers :many
SELECT lm.id, lm.league_id, lm.user_id, u.display_name, lm.role, lm.joined_at
FROM league_members lm
JOIN users u ON u.id = lm.user_id
WHERE lm.league_id = $1
ORDER BY lm.role, u.display_name, lm.user_id
`

type ListMembersRow struct {
	ID          uuid.UUID
	LeagueID    uuid.UUID
	UserID      uuid.UUID
	DisplayName string
	Role        LeagueRole
	JoinedAt    time.Time
}

func (q *Queries) ListMembers(ctx context.Context, leagueID uuid.UUID) ([]ListMembersRow, error) {
	rows, err := q.db.QueryContext(ctx, listMembers, leagueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListMembersRow
	for rows.Next() {
		var i ListMembersRow
		if err := rows.Scan(
			&i.ID,
			&i.LeagueID,
			&i.UserID,
			&i.DisplayName,
			&i.Role,
			&i.JoinedAt,
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

const renameLeague = `-- name: RenameLeague :one
UPDATE leagues SET name = $2 WHERE id = $1
RETURNING id, name, season_id, invite_code, owner_id, created_at
`

type RenameLeagueParams struct {
	ID   uuid.UUID
	Name string
}

func (q *Queries) RenameLeague(ctx context.Context, arg RenameLeagueParams) (League, error) {
	row := q.db.QueryRowContext(ctx, renameLeague, arg.ID, arg.Name)
	var i League
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.SeasonID,
		&i.InviteCode,
		&i.OwnerID,
		&i.CreatedAt,
	)
	return i, err
}

const seasonExists = `-- name: SeasonExists :one
SELECT EXISTS (SELECT 1 FROM seasons WHERE id = $1)
`

func (q *Queries) SeasonExists(ctx context.Context, id uuid.UUID) (bool, error) {
	row := q.db.QueryRowContext(ctx, seasonExists, id)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const updateLeagueOwner = `-- name: UpdateLeagueOwner :exec
UPDATE leagues SET owner_id = $2 WHERE id = $1
`

type UpdateLeagueOwnerParams struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
}

func (q *Queries) UpdateLeagueOwner(ctx context.Context, arg UpdateLeagueOwnerParams) error {
	_, err := q.db.ExecContext(ctx, updateLeagueOwner, arg.ID, arg.OwnerID)
	return err
}

const updateMemberRole = `-- name: UpdateMemberRole :one
UPDATE league_members SET role = $3
WHERE league_id = $1 AND user_id = $2
RETURNING id, league_id, user_id, role, joined_at
`

type UpdateMemberRoleParams struct {
	LeagueID uuid.UUID
	UserID   uuid.UUID
	Role     LeagueRole
}

func (q *Queries) UpdateMemberRole(ctx context.Context, arg UpdateMemberRoleParams) (LeagueMember, error) {
	row := q.db.QueryRowContext(ctx, updateMemberRole, arg.LeagueID, arg.UserID, arg.Role)
	var i LeagueMember
	err := row.Scan(
		&i.ID,
		&i.LeagueID,
		&i.UserID,
		&i.Role,
		&i.JoinedAt,
	)
	return i, err
}
