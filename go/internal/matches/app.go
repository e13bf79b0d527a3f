package matches

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/models"
	"github.com/mcdev12/scorepool/go/internal/outbox"
	"github.com/mcdev12/scorepool/go/internal/scoring"
	"github.com/rs/zerolog/log"
)

// MatchesRepository defines what the app layer needs from the repository
type MatchesRepository interface {
	WithTx(ctx context.Context, fn func(repo MatchesRepository) error) error

	SeasonExists(ctx context.Context, seasonID uuid.UUID) (bool, error)
	CountTeams(ctx context.Context, ids ...uuid.UUID) (int, error)
	CreateMatch(ctx context.Context, m NewMatch) (*models.Match, error)
	GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error)
	GetMatchForUpdate(ctx context.Context, id uuid.UUID) (*models.Match, error)
	ListMatches(ctx context.Context, seasonID uuid.UUID, round *int) ([]models.Match, error)
	RescheduleMatch(ctx context.Context, id uuid.UUID, kickoff time.Time) (*models.Match, error)
	SetMatchResult(ctx context.Context, id uuid.UUID, home, away int) (*models.Match, error)
	DeleteMatch(ctx context.Context, id uuid.UUID) error

	ListPredictionsForUpdate(ctx context.Context, matchID uuid.UUID) ([]PredictionScore, error)
	UpdatePoints(ctx context.Context, updates []PointsUpdate) (int, error)

	AppendEvent(ctx context.Context, aggregateID uuid.UUID, eventType string, payload any, actor uuid.UUID) error
}

// AdminChecker authorizes system-level administration
type AdminChecker interface {
	RequireAdmin(ctx context.Context, userID uuid.UUID) error
}

// App owns fixtures and results
type App struct {
	repo   MatchesRepository
	admins AdminChecker
	zone   *time.Location
}

// NewApp creates a new matches App. zone is used for kickoff timestamps that
// carry no offset.
func NewApp(repo MatchesRepository, admins AdminChecker, zone *time.Location) *App {
	if zone == nil {
		zone = time.UTC
	}
	return &App{
		repo:   repo,
		admins: admins,
		zone:   zone,
	}
}

// FinalizeResult posts the final score and rescores every prediction of the
// match, in every league, in one transaction. Posting the same score again
// yields the same points.
func (a *App) FinalizeResult(ctx context.Context, actorID, matchID uuid.UUID, home, away int) (*FinalizeResult, error) {
	if home < 0 || away < 0 {
		return nil, fmt.Errorf("%w: goals must not be negative", models.ErrInvalidArgument)
	}
	if err := a.admins.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	var result *FinalizeResult
	err := a.repo.WithTx(ctx, func(tx MatchesRepository) error {
		if _, err := tx.GetMatchForUpdate(ctx, matchID); err != nil {
			return err
		}

		match, err := tx.SetMatchResult(ctx, matchID, home, away)
		if err != nil {
			return fmt.Errorf("failed to set result: %w", err)
		}

		predictions, err := tx.ListPredictionsForUpdate(ctx, matchID)
		if err != nil {
			return err
		}

		updates := make([]PointsUpdate, len(predictions))
		leagues := make(map[uuid.UUID]struct{})
		for i, p := range predictions {
			updates[i] = PointsUpdate{
				PredictionID: p.ID,
				Points:       scoring.Score(p.HomeGoals, p.AwayGoals, home, away),
			}
			leagues[p.LeagueID] = struct{}{}
		}

		if _, err := tx.UpdatePoints(ctx, updates); err != nil {
			return err
		}

		leagueIDs := sortedIDs(leagues)
		err = tx.AppendEvent(ctx, matchID, outbox.EventMatchFinalized, outbox.MatchFinalizedPayload{
			MatchID:           matchID,
			SeasonID:          match.SeasonID,
			Round:             match.Round,
			HomeGoals:         home,
			AwayGoals:         away,
			PredictionsScored: len(updates),
			LeagueIDs:         leagueIDs,
		}, actorID)
		if err != nil {
			return err
		}

		result = &FinalizeResult{
			Match:             match,
			PredictionsScored: len(updates),
			LeagueIDs:         leagueIDs,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to finalize match: %w", err)
	}

	log.Info().
		Str("match_id", matchID.String()).
		Int("home_goals", home).
		Int("away_goals", away).
		Int("predictions_scored", result.PredictionsScored).
		Int("leagues", len(result.LeagueIDs)).
		Msg("match finalized")
	return result, nil
}

// CreateMatch schedules a fixture
func (a *App) CreateMatch(ctx context.Context, actorID uuid.UUID, req CreateMatchRequest) (*models.Match, error) {
	if err := a.admins.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	m, err := a.validateCreateMatchRequest(req)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	exists, err := a.repo.SeasonExists(ctx, m.SeasonID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("season %s: %w", m.SeasonID, models.ErrNotFound)
	}

	n, err := a.repo.CountTeams(ctx, m.HomeTeamID, m.AwayTeamID)
	if err != nil {
		return nil, err
	}
	if n != 2 {
		return nil, fmt.Errorf("teams: %w", models.ErrNotFound)
	}

	match, err := a.repo.CreateMatch(ctx, m)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("match_id", match.ID.String()).
		Str("season_id", match.SeasonID.String()).
		Int("round", match.Round).
		Time("kickoff_at", match.KickoffAt).
		Msg("created match")
	return match, nil
}

// RescheduleMatch moves the kickoff of a match that has no result yet
func (a *App) RescheduleMatch(ctx context.Context, actorID, matchID uuid.UUID, rawKickoff string) (*models.Match, error) {
	if err := a.admins.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	kickoff, err := ParseKickoff(rawKickoff, a.zone)
	if err != nil {
		return nil, err
	}

	var updated *models.Match
	err = a.repo.WithTx(ctx, func(tx MatchesRepository) error {
		match, err := tx.GetMatchForUpdate(ctx, matchID)
		if err != nil {
			return err
		}
		if match.IsFinished() {
			return fmt.Errorf("match %s: %w", matchID, models.ErrMatchFinished)
		}
		updated, err = tx.RescheduleMatch(ctx, matchID, kickoff)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reschedule match: %w", err)
	}

	log.Info().Str("match_id", matchID.String()).Time("kickoff_at", kickoff).Msg("rescheduled match")
	return updated, nil
}

// DeleteMatch removes a match and its predictions
func (a *App) DeleteMatch(ctx context.Context, actorID, matchID uuid.UUID) error {
	if err := a.admins.RequireAdmin(ctx, actorID); err != nil {
		return err
	}
	if _, err := a.repo.GetMatch(ctx, matchID); err != nil {
		return err
	}
	if err := a.repo.DeleteMatch(ctx, matchID); err != nil {
		return err
	}

	log.Info().Str("match_id", matchID.String()).Msg("deleted match")
	return nil
}

func (a *App) GetMatch(ctx context.Context, matchID uuid.UUID) (*models.Match, error) {
	return a.repo.GetMatch(ctx, matchID)
}

// ListMatches returns the season's matches, optionally for one round
func (a *App) ListMatches(ctx context.Context, seasonID uuid.UUID, round *int) ([]models.Match, error) {
	if round != nil && *round < 1 {
		return nil, fmt.Errorf("%w: round must be at least 1", models.ErrInvalidArgument)
	}
	return a.repo.ListMatches(ctx, seasonID, round)
}

func (a *App) validateCreateMatchRequest(req CreateMatchRequest) (NewMatch, error) {
	if req.SeasonID == uuid.Nil {
		return NewMatch{}, fmt.Errorf("%w: season is required", models.ErrInvalidArgument)
	}
	if req.Round < 1 {
		return NewMatch{}, fmt.Errorf("%w: round must be at least 1", models.ErrInvalidArgument)
	}
	if req.HomeTeamID == uuid.Nil || req.AwayTeamID == uuid.Nil {
		return NewMatch{}, fmt.Errorf("%w: both teams are required", models.ErrInvalidArgument)
	}
	if req.HomeTeamID == req.AwayTeamID {
		return NewMatch{}, fmt.Errorf("%w: a team cannot play itself", models.ErrInvalidArgument)
	}

	kickoff, err := ParseKickoff(req.Kickoff, a.zone)
	if err != nil {
		return NewMatch{}, err
	}

	return NewMatch{
		SeasonID:   req.SeasonID,
		Round:      req.Round,
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		KickoffAt:  kickoff,
	}, nil
}

func sortedIDs(set map[uuid.UUID]struct{}) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}
