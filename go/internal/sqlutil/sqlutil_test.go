package sqlutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pq.Error{Code: "23505", Constraint: "leagues_invite_code_key"}
	wrapped := fmt.Errorf("insert league: %w", dup)

	assert.True(t, IsUniqueViolation(wrapped, "leagues_invite_code_key"))
	assert.True(t, IsUniqueViolation(dup, ""))
	assert.False(t, IsUniqueViolation(dup, "leagues_owner_season_name_key"))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}, ""))
	assert.False(t, IsUniqueViolation(errors.New("boom"), ""))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, IsNoRows(fmt.Errorf("get: %w", sql.ErrNoRows)))
	assert.False(t, IsNoRows(sql.ErrConnDone))
}

var (
	errTaken     = errors.New("taken")
	errExhausted = errors.New("exhausted")
)

func TestRetryOnConflict(t *testing.T) {
	ctx := context.Background()
	retryable := func(err error) bool { return errors.Is(err, errTaken) }

	t.Run("succeeds after conflicts", func(t *testing.T) {
		var seen []int
		got, err := RetryOnConflict(ctx, 5, retryable, errExhausted, func(_ context.Context, n int) (string, error) {
			seen = append(seen, n)
			if n < 3 {
				return "", errTaken
			}
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, []int{1, 2, 3}, seen)
	})

	t.Run("exhausted", func(t *testing.T) {
		calls := 0
		_, err := RetryOnConflict(ctx, 4, retryable, errExhausted, func(context.Context, int) (int, error) {
			calls++
			return 0, errTaken
		})
		assert.ErrorIs(t, err, errExhausted)
		assert.Equal(t, 4, calls)
	})

	t.Run("other errors stop the loop", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		_, err := RetryOnConflict(ctx, 4, retryable, errExhausted, func(context.Context, int) (int, error) {
			calls++
			return 0, boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := RetryOnConflict(cctx, 4, retryable, errExhausted, func(context.Context, int) (int, error) {
			t.Fatal("attempt must not run")
			return 0, nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})

	_, err := RetryOnConflict(ctx, 0, retryable, errExhausted, func(context.Context, int) (int, error) { return 1, nil })
	assert.Error(t, err)
}

func TestConverters(t *testing.T) {
	round := 7
	assert.Equal(t, sql.NullInt32{Int32: 7, Valid: true}, ToSqlInt32(&round))
	assert.False(t, ToSqlInt32(nil).Valid)
	assert.Equal(t, sql.NullInt32{Int32: 3, Valid: true}, ToSqlInt32Direct(3))

	assert.Nil(t, FromSqlInt32(sql.NullInt32{}))
	assert.Equal(t, 4, *FromSqlInt32(sql.NullInt32{Int32: 4, Valid: true}))

	id := uuid.New()
	assert.Equal(t, uuid.NullUUID{UUID: id, Valid: true}, ToNullUUID(&id))
	assert.Nil(t, FromNullUUID(uuid.NullUUID{}))
	assert.Equal(t, id, *FromNullUUID(ToNullUUID(&id)))
}
