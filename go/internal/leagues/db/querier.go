package db

import (
	"context"

	"github.com/google/uuid"
)

type Querier interface {
	CreateLeague(ctx context.Context, arg CreateLeagueParams) (League, error)
	DeleteLeague(ctx context.Context, id uuid.UUID) error
	DeleteMember(ctx context.Context, arg DeleteMemberParams) (int64, error)
	GetLeague(ctx context.Context, id uuid.UUID) (League, error)
	GetLeagueByInviteCode(ctx context.Context, inviteCode string) (League, error)
	GetLeagueForUpdate(ctx context.Context, id uuid.UUID) (League, error)
	GetMember(ctx context.Context, arg GetMemberParams) (LeagueMember, error)
	GetMemberForUpdate(ctx context.Context, arg GetMemberForUpdateParams) (LeagueMember, error)
	InsertMember(ctx context.Context, arg InsertMemberParams) (LeagueMember, error)
	ListLeaguesForUser(ctx context.Context, arg ListLeaguesForUserParams) ([]League, error)
	ListMembers(ctx context.Context, leagueID uuid.UUID) ([]ListMembersRow, error)
	RenameLeague(ctx context.Context, arg RenameLeagueParams) (League, error)
	SeasonExists(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateLeagueOwner(ctx context.Context, arg UpdateLeagueOwnerParams) error
	UpdateMemberRole(ctx context.Context, arg UpdateMemberRoleParams) (LeagueMember, error)
}

var _ Querier = (*Queries)(nil)
