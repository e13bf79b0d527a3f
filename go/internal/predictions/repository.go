package predictions

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/models"
	"github.com/mcdev12/scorepool/go/internal/predictions/db"
	"github.com/mcdev12/scorepool/go/internal/sqlutil"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	DeletePrediction(ctx context.Context, arg db.DeletePredictionParams) (int64, error)
	GetLeagueSeason(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	GetMatchSchedule(ctx context.Context, id uuid.UUID) (db.GetMatchScheduleRow, error)
	GetPick(ctx context.Context, arg db.GetPickParams) (db.GetPickRow, error)
	IsMember(ctx context.Context, arg db.IsMemberParams) (bool, error)
	ListMatchPicks(ctx context.Context, arg db.ListMatchPicksParams) ([]db.ListMatchPicksRow, error)
	ListRoundPicks(ctx context.Context, arg db.ListRoundPicksParams) ([]db.ListRoundPicksRow, error)
	UpsertPrediction(ctx context.Context, arg db.UpsertPredictionParams) (db.Prediction, error)
}

// Repository implements prediction data access operations
type Repository struct {
	db      *sql.DB
	queries Querier
	inTx    bool
}

// NewRepository creates a new predictions repository
func NewRepository(queries Querier, database *sql.DB) *Repository {
	return &Repository{
		db:      database,
		queries: queries,
	}
}

func (r *Repository) WithTx(ctx context.Context, fn func(repo PredictionsRepository) error) error {
	if r.inTx {
		return fn(r)
	}
	return sqlutil.Run(ctx, r.db,
		func(tx *sql.Tx) *Repository {
			return &Repository{db: r.db, queries: db.New(tx), inTx: true}
		},
		func(txRepo *Repository) error { return fn(txRepo) },
	)
}

// GetLeagueSeason returns the season a league plays in
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

func (r *Repository) IsMember(ctx context.Context, leagueID, userID uuid.UUID) (bool, error) {
	ok, err := r.queries.IsMember(ctx, db.IsMemberParams{LeagueID: leagueID, UserID: userID})
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return ok, nil
}

func (r *Repository) GetMatchSchedule(ctx context.Context, matchID uuid.UUID) (*MatchSchedule, error) {
	row, err := r.queries.GetMatchSchedule(ctx, matchID)
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return nil, fmt.Errorf("match %s: %w", matchID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return &MatchSchedule{
		ID:        row.ID,
		SeasonID:  row.SeasonID,
		Round:     int(row.Round),
		KickoffAt: row.KickoffAt.UTC(),
		Status:    models.MatchStatus(row.Status),
	}, nil
}

// UpsertPrediction inserts or overwrites the (league, user, match) forecast.
// Stored points survive unless clearPoints is set.
func (r *Repository) UpsertPrediction(ctx context.Context, req SubmitRequest, clearPoints bool) (*models.Prediction, error) {
	row, err := r.queries.UpsertPrediction(ctx, db.UpsertPredictionParams{
		ID:          uuid.New(),
		LeagueID:    req.LeagueID,
		UserID:      req.UserID,
		MatchID:     req.MatchID,
		HomeGoals:   int32(req.HomeGoals),
		AwayGoals:   int32(req.AwayGoals),
		ClearPoints: clearPoints,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert prediction: %w", err)
	}
	return dbPredictionToModel(row), nil
}

// DeletePrediction reports whether a prediction was removed
func (r *Repository) DeletePrediction(ctx context.Context, leagueID, userID, matchID uuid.UUID) (bool, error) {
	n, err := r.queries.DeletePrediction(ctx, db.DeletePredictionParams{
		LeagueID: leagueID,
		UserID:   userID,
		MatchID:  matchID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete prediction: %w", err)
	}
	return n > 0, nil
}

func (r *Repository) ListRoundPicks(ctx context.Context, leagueID, userID, seasonID uuid.UUID, round int) ([]Pick, error) {
	rows, err := r.queries.ListRoundPicks(ctx, db.ListRoundPicksParams{
		LeagueID: leagueID,
		UserID:   userID,
		SeasonID: seasonID,
		Round:    int32(round),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list round picks: %w", err)
	}

	picks := make([]Pick, len(rows))
	for i, row := range rows {
		picks[i] = pickFromRow(db.GetPickRow(row))
	}
	return picks, nil
}

func (r *Repository) GetPick(ctx context.Context, leagueID, userID, matchID uuid.UUID) (*Pick, error) {
	row, err := r.queries.GetPick(ctx, db.GetPickParams{
		LeagueID: leagueID,
		UserID:   userID,
		MatchID:  matchID,
	})
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return nil, fmt.Errorf("match %s: %w", matchID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get pick: %w", err)
	}
	pick := pickFromRow(row)
	return &pick, nil
}

func (r *Repository) ListMatchPicks(ctx context.Context, leagueID, matchID uuid.UUID) ([]MemberPick, error) {
	rows, err := r.queries.ListMatchPicks(ctx, db.ListMatchPicksParams{MatchID: matchID, LeagueID: leagueID})
	if err != nil {
		return nil, fmt.Errorf("failed to list match picks: %w", err)
	}

	picks := make([]MemberPick, len(rows))
	for i, row := range rows {
		picks[i] = MemberPick{
			UserID:        row.UserID,
			DisplayName:   row.DisplayName,
			PredictionID:  sqlutil.FromNullUUID(row.PredictionID),
			PredictedHome: sqlutil.FromSqlInt32(row.PredictedHome),
			PredictedAway: sqlutil.FromSqlInt32(row.PredictedAway),
			Points:        sqlutil.FromSqlInt32(row.Points),
		}
	}
	return picks, nil
}

func pickFromRow(row db.GetPickRow) Pick {
	return Pick{
		MatchID:       row.MatchID,
		Round:         int(row.Round),
		KickoffAt:     row.KickoffAt.UTC(),
		Status:        models.MatchStatus(row.Status),
		HomeTeamID:    row.HomeTeamID,
		HomeTeamName:  row.HomeTeamName,
		AwayTeamID:    row.AwayTeamID,
		AwayTeamName:  row.AwayTeamName,
		HomeGoals:     sqlutil.FromSqlInt32(row.HomeGoals),
		AwayGoals:     sqlutil.FromSqlInt32(row.AwayGoals),
		PredictionID:  sqlutil.FromNullUUID(row.PredictionID),
		PredictedHome: sqlutil.FromSqlInt32(row.PredictedHome),
		PredictedAway: sqlutil.FromSqlInt32(row.PredictedAway),
		Points:        sqlutil.FromSqlInt32(row.Points),
	}
}

// dbPredictionToModel converts a database prediction to domain model
func dbPredictionToModel(row db.Prediction) *models.Prediction {
	return &models.Prediction{
		ID:        row.ID,
		LeagueID:  row.LeagueID,
		UserID:    row.UserID,
		MatchID:   row.MatchID,
		HomeGoals: int(row.HomeGoals),
		AwayGoals: int(row.AwayGoals),
		Points:    sqlutil.FromSqlInt32(row.Points),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
