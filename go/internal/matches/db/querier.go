package db

import (
	"context"

	"github.com/google/uuid"
)

type Querier interface {
	CountTeams(ctx context.Context, ids []uuid.UUID) (int64, error)
	CreateMatch(ctx context.Context, arg CreateMatchParams) (Match, error)
	DeleteMatch(ctx context.Context, id uuid.UUID) error
	GetMatch(ctx context.Context, id uuid.UUID) (Match, error)
	GetMatchForUpdate(ctx context.Context, id uuid.UUID) (Match, error)
	GetSeason(ctx context.Context, id uuid.UUID) (Season, error)
	ListMatches(ctx context.Context, arg ListMatchesParams) ([]Match, error)
	ListPredictionsForMatchForUpdate(ctx context.Context, matchID uuid.UUID) ([]ListPredictionsForMatchForUpdateRow, error)
	RescheduleMatch(ctx context.Context, arg RescheduleMatchParams) (Match, error)
	SetMatchResult(ctx context.Context, arg SetMatchResultParams) (Match, error)
	UpdatePredictionPoints(ctx context.Context, arg UpdatePredictionPointsParams) (int64, error)
}

var _ Querier = (*Queries)(nil)
