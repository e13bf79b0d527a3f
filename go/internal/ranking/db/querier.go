package db

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type Querier interface {
	CountFinishedMatches(ctx context.Context, arg CountFinishedMatchesParams) (int64, error)
	GetLeagueSeason(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	ListRankedMembers(ctx context.Context, leagueID uuid.UUID) ([]ListRankedMembersRow, error)
	ListScoredPredictions(ctx context.Context, arg ListScoredPredictionsParams) ([]ListScoredPredictionsRow, error)
	MaxFinishedRound(ctx context.Context, seasonID uuid.UUID) (sql.NullInt32, error)
}

var _ Querier = (*Queries)(nil)
