package ranking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/models"
	"github.com/mcdev12/scorepool/go/internal/ranking/db"
	"github.com/mcdev12/scorepool/go/internal/sqlutil"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	CountFinishedMatches(ctx context.Context, arg db.CountFinishedMatchesParams) (int64, error)
	GetLeagueSeason(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	ListRankedMembers(ctx context.Context, leagueID uuid.UUID) ([]db.ListRankedMembersRow, error)
	ListScoredPredictions(ctx context.Context, arg db.ListScoredPredictionsParams) ([]db.ListScoredPredictionsRow, error)
	MaxFinishedRound(ctx context.Context, seasonID uuid.UUID) (sql.NullInt32, error)
}

// Repository reads the data standings are computed from. It never writes.
type Repository struct {
	db      *sql.DB
	queries Querier
	inTx    bool
}

// NewRepository creates a new ranking repository
func NewRepository(queries Querier, database *sql.DB) *Repository {
	return &Repository{
		db:      database,
		queries: queries,
	}
}

// ReadSnapshot runs fn in a read-only repeatable read transaction
func (r *Repository) ReadSnapshot(ctx context.Context, fn func(repo RankingRepository) error) error {
	if r.inTx {
		return fn(r)
	}
	return sqlutil.RunReadOnly(ctx, r.db,
		func(tx *sql.Tx) *Repository {
			return &Repository{db: r.db, queries: db.New(tx), inTx: true}
		},
		func(txRepo *Repository) error { return fn(txRepo) },
	)
}

func (r *Repository) GetLeagueSeason(ctx context.Context, leagueID uuid.UUID) (uuid.UUID, error) {
	seasonID, err := r.queries.GetLeagueSeason(ctx, leagueID)
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return uuid.Nil, fmt.Errorf("league %s: %w", leagueID, models.ErrNotFound)
		}
		return uuid.Nil, fmt.Errorf("failed to get league season: %w", err)
	}
	return seasonID, nil
}

// ListMembers returns current members ordered by name
func (r *Repository) ListMembers(ctx context.Context, leagueID uuid.UUID) ([]Member, error) {
	rows, err := r.queries.ListRankedMembers(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	members := make([]Member, len(rows))
	for i, row := range rows {
		members[i] = Member{UserID: row.UserID, DisplayName: row.DisplayName}
	}
	return members, nil
}

func (r *Repository) CountFinishedMatches(ctx context.Context, seasonID uuid.UUID, round *int) (int, error) {
	n, err := r.queries.CountFinishedMatches(ctx, db.CountFinishedMatchesParams{
		SeasonID: seasonID,
		Round:    sqlutil.ToSqlInt32(round),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count finished matches: %w", err)
	}
	return int(n), nil
}

// MaxFinishedRound returns the highest round with a finished match, or 0
func (r *Repository) MaxFinishedRound(ctx context.Context, seasonID uuid.UUID) (int, error) {
	v, err := r.queries.MaxFinishedRound(ctx, seasonID)
	if err != nil {
		return 0, fmt.Errorf("failed to get last finished round: %w", err)
	}
	if !v.Valid {
		return 0, nil
	}
	return int(v.Int32), nil
}

func (r *Repository) ListScoredPredictions(ctx context.Context, leagueID uuid.UUID, round *int) ([]ScoredPrediction, error) {
	rows, err := r.queries.ListScoredPredictions(ctx, db.ListScoredPredictionsParams{
		LeagueID: leagueID,
		Round:    sqlutil.ToSqlInt32(round),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list scored predictions: %w", err)
	}

	out := make([]ScoredPrediction, 0, len(rows))
	for _, row := range rows {
		if !row.Points.Valid {
			continue
		}
		out = append(out, ScoredPrediction{
			UserID: row.UserID,
			Round:  int(row.Round),
			Points: int(row.Points.Int32),
		})
	}
	return out, nil
}
