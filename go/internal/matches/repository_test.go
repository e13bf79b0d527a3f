package matches

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/matches/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingQuerier records the typed array arguments the repository sends.
type recordingQuerier struct {
	db.Querier
	countIDs []uuid.UUID
	points   db.UpdatePredictionPointsParams
}

func (q *recordingQuerier) CountTeams(_ context.Context, ids []uuid.UUID) (int64, error) {
	q.countIDs = ids
	return int64(len(ids)), nil
}

func (q *recordingQuerier) UpdatePredictionPoints(_ context.Context, arg db.UpdatePredictionPointsParams) (int64, error) {
	q.points = arg
	return int64(len(arg.Ids)), nil
}

func TestRepositoryPassesUUIDArrays(t *testing.T) {
	ctx := context.Background()
	q := &recordingQuerier{}
	repo := NewRepository(q, nil)

	home, away := uuid.New(), uuid.New()
	n, err := repo.CountTeams(ctx, home, away)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []uuid.UUID{home, away}, q.countIDs)

	first, second := uuid.New(), uuid.New()
	updated, err := repo.UpdatePoints(ctx, []PointsUpdate{
		{PredictionID: first, Points: 5},
		{PredictionID: second, Points: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated)
	assert.Equal(t, []uuid.UUID{first, second}, q.points.Ids)
	assert.Equal(t, []int32{5, 0}, q.points.Points)
}

func TestRepositorySkipsEmptyPointsBatch(t *testing.T) {
	q := &recordingQuerier{}
	updated, err := NewRepository(q, nil).UpdatePoints(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, updated)
	assert.Nil(t, q.points.Ids)
}
