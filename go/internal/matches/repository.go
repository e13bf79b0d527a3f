package matches

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/matches/db"
	"github.com/mcdev12/scorepool/go/internal/models"
	"github.com/mcdev12/scorepool/go/internal/outbox"
	outboxdb "github.com/mcdev12/scorepool/go/internal/outbox/db"
	"github.com/mcdev12/scorepool/go/internal/sqlutil"
)

const constraintFixture = "matches_fixture_key"

// Querier defines what the repository needs from the database layer
type Querier interface {
	CountTeams(ctx context.Context, ids []uuid.UUID) (int64, error)
	CreateMatch(ctx context.Context, arg db.CreateMatchParams) (db.Match, error)
	DeleteMatch(ctx context.Context, id uuid.UUID) error
	GetMatch(ctx context.Context, id uuid.UUID) (db.Match, error)
	GetMatchForUpdate(ctx context.Context, id uuid.UUID) (db.Match, error)
	GetSeason(ctx context.Context, id uuid.UUID) (db.Season, error)
	ListMatches(ctx context.Context, arg db.ListMatchesParams) ([]db.Match, error)
	ListPredictionsForMatchForUpdate(ctx context.Context, matchID uuid.UUID) ([]db.ListPredictionsForMatchForUpdateRow, error)
	RescheduleMatch(ctx context.Context, arg db.RescheduleMatchParams) (db.Match, error)
	SetMatchResult(ctx context.Context, arg db.SetMatchResultParams) (db.Match, error)
	UpdatePredictionPoints(ctx context.Context, arg db.UpdatePredictionPointsParams) (int64, error)
}

// Repository implements match data access operations
type Repository struct {
	db      *sql.DB
	queries Querier
	events  *outbox.Writer
	inTx    bool
}

// NewRepository creates a new matches repository
func NewRepository(queries Querier, database *sql.DB) *Repository {
	return &Repository{
		db:      database,
		queries: queries,
		events:  outbox.NewWriter(outboxdb.New(database)),
	}
}

func (r *Repository) WithTx(ctx context.Context, fn func(repo MatchesRepository) error) error {
	if r.inTx {
		return fn(r)
	}
	return sqlutil.Run(ctx, r.db,
		func(tx *sql.Tx) *Repository {
			return &Repository{
				db:      r.db,
				queries: db.New(tx),
				events:  outbox.NewWriter(outboxdb.New(tx)),
				inTx:    true,
			}
		},
		func(txRepo *Repository) error { return fn(txRepo) },
	)
}

func (r *Repository) SeasonExists(ctx context.Context, seasonID uuid.UUID) (bool, error) {
	_, err := r.queries.GetSeason(ctx, seasonID)
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get season: %w", err)
	}
	return true, nil
}

// CountTeams returns how many of ids name existing teams
func (r *Repository) CountTeams(ctx context.Context, ids ...uuid.UUID) (int, error) {
	n, err := r.queries.CountTeams(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to count teams: %w", err)
	}
	return int(n), nil
}

func (r *Repository) CreateMatch(ctx context.Context, m NewMatch) (*models.Match, error) {
	row, err := r.queries.CreateMatch(ctx, db.CreateMatchParams{
		SeasonID:   m.SeasonID,
		Round:      int32(m.Round),
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		KickoffAt:  m.KickoffAt,
	})
	if err != nil {
		if sqlutil.IsUniqueViolation(err, constraintFixture) {
			return nil, fmt.Errorf("fixture already scheduled: %w", models.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return dbMatchToModel(row), nil
}

func (r *Repository) GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	row, err := r.queries.GetMatch(ctx, id)
	if err != nil {
		return nil, wrapMatchLookup(err, id)
	}
	return dbMatchToModel(row), nil
}

// GetMatchForUpdate locks the match row until the transaction ends
func (r *Repository) GetMatchForUpdate(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	row, err := r.queries.GetMatchForUpdate(ctx, id)
	if err != nil {
		return nil, wrapMatchLookup(err, id)
	}
	return dbMatchToModel(row), nil
}

func (r *Repository) ListMatches(ctx context.Context, seasonID uuid.UUID, round *int) ([]models.Match, error) {
	rows, err := r.queries.ListMatches(ctx, db.ListMatchesParams{
		SeasonID: seasonID,
		Round:    sqlutil.ToSqlInt32(round),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	out := make([]models.Match, len(rows))
	for i, row := range rows {
		out[i] = *dbMatchToModel(row)
	}
	return out, nil
}

func (r *Repository) RescheduleMatch(ctx context.Context, id uuid.UUID, kickoff time.Time) (*models.Match, error) {
	row, err := r.queries.RescheduleMatch(ctx, db.RescheduleMatchParams{ID: id, KickoffAt: kickoff})
	if err != nil {
		return nil, wrapMatchLookup(err, id)
	}
	return dbMatchToModel(row), nil
}

func (r *Repository) SetMatchResult(ctx context.Context, id uuid.UUID, home, away int) (*models.Match, error) {
	row, err := r.queries.SetMatchResult(ctx, db.SetMatchResultParams{
		ID:        id,
		HomeGoals: sqlutil.ToSqlInt32Direct(home),
		AwayGoals: sqlutil.ToSqlInt32Direct(away),
	})
	if err != nil {
		return nil, wrapMatchLookup(err, id)
	}
	return dbMatchToModel(row), nil
}

func (r *Repository) DeleteMatch(ctx context.Context, id uuid.UUID) error {
	if err := r.queries.DeleteMatch(ctx, id); err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	return nil
}

// ListPredictionsForUpdate loads every prediction of the match across
// leagues and locks them.
func (r *Repository) ListPredictionsForUpdate(ctx context.Context, matchID uuid.UUID) ([]PredictionScore, error) {
	rows, err := r.queries.ListPredictionsForMatchForUpdate(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load predictions: %w", err)
	}

	out := make([]PredictionScore, len(rows))
	for i, row := range rows {
		out[i] = PredictionScore{
			ID:        row.ID,
			LeagueID:  row.LeagueID,
			HomeGoals: int(row.HomeGoals),
			AwayGoals: int(row.AwayGoals),
		}
	}
	return out, nil
}

// UpdatePoints writes every update with a single statement
func (r *Repository) UpdatePoints(ctx context.Context, updates []PointsUpdate) (int, error) {
	if len(updates) == 0 {
		return 0, nil
	}

	params := db.UpdatePredictionPointsParams{
		Ids:    make([]uuid.UUID, len(updates)),
		Points: make([]int32, len(updates)),
	}
	for i, u := range updates {
		params.Ids[i] = u.PredictionID
		params.Points[i] = int32(u.Points)
	}

	n, err := r.queries.UpdatePredictionPoints(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("failed to update prediction points: %w", err)
	}
	return int(n), nil
}

func (r *Repository) AppendEvent(ctx context.Context, aggregateID uuid.UUID, eventType string, payload any, actor uuid.UUID) error {
	return r.events.Append(ctx, aggregateID, eventType, payload, actor)
}

func wrapMatchLookup(err error, id uuid.UUID) error {
	if sqlutil.IsNoRows(err) {
		return fmt.Errorf("match %s: %w", id, models.ErrNotFound)
	}
	return fmt.Errorf("failed to get match %s: %w", id, err)
}

// dbMatchToModel converts a database match to domain model
func dbMatchToModel(row db.Match) *models.Match {
	return &models.Match{
		ID:         row.ID,
		SeasonID:   row.SeasonID,
		Round:      int(row.Round),
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		KickoffAt:  row.KickoffAt.UTC(),
		Status:     models.MatchStatus(row.Status),
		HomeGoals:  sqlutil.FromSqlInt32(row.HomeGoals),
		AwayGoals:  sqlutil.FromSqlInt32(row.AwayGoals),
		CreatedAt:  row.CreatedAt,
	}
}
