package db

import (
	"context"

	"github.com/google/uuid"
)

type Querier interface {
	DeletePrediction(ctx context.Context, arg DeletePredictionParams) (int64, error)
	GetLeagueSeason(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	GetMatchSchedule(ctx context.Context, id uuid.UUID) (GetMatchScheduleRow, error)
	GetPick(ctx context.Context, arg GetPickParams) (GetPickRow, error)
	IsMember(ctx context.Context, arg IsMemberParams) (bool, error)
	ListMatchPicks(ctx context.Context, arg ListMatchPicksParams) ([]ListMatchPicksRow, error)
	ListRoundPicks(ctx context.Context, arg ListRoundPicksParams) ([]ListRoundPicksRow, error)
	UpsertPrediction(ctx context.Context, arg UpsertPredictionParams) (Prediction, error)
}

var _ Querier = (*Queries)(nil)
