package predictions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/scorepool/go/internal/models"
	"github.com/rs/zerolog/log"
)

// PredictionsRepository defines what the app layer needs from the repository
type PredictionsRepository interface {
	WithTx(ctx context.Context, fn func(repo PredictionsRepository) error) error

	GetLeagueSeason(ctx context.Context, leagueID uuid.UUID) (uuid.UUID, error)
	IsMember(ctx context.Context, leagueID, userID uuid.UUID) (bool, error)
	GetMatchSchedule(ctx context.Context, matchID uuid.UUID) (*MatchSchedule, error)
	UpsertPrediction(ctx context.Context, req SubmitRequest, clearPoints bool) (*models.Prediction, error)
	DeletePrediction(ctx context.Context, leagueID, userID, matchID uuid.UUID) (bool, error)

	ListRoundPicks(ctx context.Context, leagueID, userID, seasonID uuid.UUID, round int) ([]Pick, error)
	GetPick(ctx context.Context, leagueID, userID, matchID uuid.UUID) (*Pick, error)
	ListMatchPicks(ctx context.Context, leagueID, matchID uuid.UUID) ([]MemberPick, error)
}

// App is the prediction ledger
type App struct {
	repo  PredictionsRepository
	clock clockwork.Clock
}

// NewApp creates a new predictions App. The clock decides when a match locks.
func NewApp(repo PredictionsRepository, clock clockwork.Clock) *App {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &App{
		repo:  repo,
		clock: clock,
	}
}

// SubmitOrUpdate records the user's forecast, replacing any earlier one for
// the same match. Nothing can be written from kickoff on.
func (a *App) SubmitOrUpdate(ctx context.Context, req SubmitRequest) (*models.Prediction, error) {
	if req.HomeGoals < 0 || req.AwayGoals < 0 {
		return nil, fmt.Errorf("%w: goals must not be negative", models.ErrInvalidArgument)
	}

	var prediction *models.Prediction
	err := a.repo.WithTx(ctx, func(tx PredictionsRepository) error {
		match, err := a.checkWritable(ctx, tx, req.LeagueID, req.UserID, req.MatchID)
		if err != nil {
			return err
		}

		prediction, err = tx.UpsertPrediction(ctx, req, match.Status != models.MatchStatusFinished)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit prediction: %w", err)
	}

	log.Debug().
		Str("league_id", req.LeagueID.String()).
		Str("user_id", req.UserID.String()).
		Str("match_id", req.MatchID.String()).
		Int("home_goals", req.HomeGoals).
		Int("away_goals", req.AwayGoals).
		Msg("prediction saved")
	return prediction, nil
}

// Withdraw deletes the user's forecast for a match that has not kicked off
func (a *App) Withdraw(ctx context.Context, leagueID, userID, matchID uuid.UUID) error {
	err := a.repo.WithTx(ctx, func(tx PredictionsRepository) error {
		if _, err := a.checkWritable(ctx, tx, leagueID, userID, matchID); err != nil {
			return err
		}

		deleted, err := tx.DeletePrediction(ctx, leagueID, userID, matchID)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("prediction: %w", models.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to withdraw prediction: %w", err)
	}

	log.Debug().
		Str("league_id", leagueID.String()).
		Str("user_id", userID.String()).
		Str("match_id", matchID.String()).
		Msg("prediction withdrawn")
	return nil
}

// ListRoundPicks returns every match of the round with the user's pick
func (a *App) ListRoundPicks(ctx context.Context, leagueID, userID uuid.UUID, round int) ([]Pick, error) {
	if round < 1 {
		return nil, fmt.Errorf("%w: round must be at least 1", models.ErrInvalidArgument)
	}

	seasonID, err := a.memberSeason(ctx, leagueID, userID)
	if err != nil {
		return nil, err
	}

	picks, err := a.repo.ListRoundPicks(ctx, leagueID, userID, seasonID, round)
	if err != nil {
		return nil, fmt.Errorf("failed to list round picks: %w", err)
	}
	return picks, nil
}

// GetMyPick returns one match with the user's pick
func (a *App) GetMyPick(ctx context.Context, leagueID, userID, matchID uuid.UUID) (*Pick, error) {
	if _, err := a.seasonMatch(ctx, leagueID, userID, matchID); err != nil {
		return nil, err
	}

	pick, err := a.repo.GetPick(ctx, leagueID, userID, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pick: %w", err)
	}
	return pick, nil
}

// ListMatchPicks returns every member of the league with their pick for the match
func (a *App) ListMatchPicks(ctx context.Context, callerID, leagueID, matchID uuid.UUID) ([]MemberPick, error) {
	if _, err := a.seasonMatch(ctx, leagueID, callerID, matchID); err != nil {
		return nil, err
	}

	picks, err := a.repo.ListMatchPicks(ctx, leagueID, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list match picks: %w", err)
	}
	return picks, nil
}

// checkWritable runs the ledger's preconditions in order and then the lock.
func (a *App) checkWritable(ctx context.Context, repo PredictionsRepository, leagueID, userID, matchID uuid.UUID) (*MatchSchedule, error) {
	match, err := a.seasonMatchWith(ctx, repo, leagueID, userID, matchID)
	if err != nil {
		return nil, err
	}

	now := a.clock.Now().UTC()
	if !now.Before(match.KickoffAt.UTC()) {
		return nil, fmt.Errorf("match %s kicked off at %s: %w", matchID, match.KickoffAt.UTC().Format(time.RFC3339), models.ErrLocked)
	}
	return match, nil
}

func (a *App) seasonMatch(ctx context.Context, leagueID, userID, matchID uuid.UUID) (*MatchSchedule, error) {
	return a.seasonMatchWith(ctx, a.repo, leagueID, userID, matchID)
}

// seasonMatchWith resolves the match after checking the user belongs to the
// league and the match to the league's season.
func (a *App) seasonMatchWith(ctx context.Context, repo PredictionsRepository, leagueID, userID, matchID uuid.UUID) (*MatchSchedule, error) {
	seasonID, err := memberSeasonWith(ctx, repo, leagueID, userID)
	if err != nil {
		return nil, err
	}

	match, err := repo.GetMatchSchedule(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.SeasonID != seasonID {
		return nil, fmt.Errorf("match %s: %w", matchID, models.ErrWrongSeason)
	}
	return match, nil
}

func (a *App) memberSeason(ctx context.Context, leagueID, userID uuid.UUID) (uuid.UUID, error) {
	return memberSeasonWith(ctx, a.repo, leagueID, userID)
}

func memberSeasonWith(ctx context.Context, repo PredictionsRepository, leagueID, userID uuid.UUID) (uuid.UUID, error) {
	seasonID, err := repo.GetLeagueSeason(ctx, leagueID)
	if err != nil {
		return uuid.Nil, err
	}

	member, err := repo.IsMember(ctx, leagueID, userID)
	if err != nil {
		return uuid.Nil, err
	}
	if !member {
		return uuid.Nil, models.ErrNotMember
	}
	return seasonID, nil
}
