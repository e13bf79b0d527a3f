package ranking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/models"
	"github.com/rs/zerolog/log"
)

// RankingRepository defines what the app layer needs from the repository
type RankingRepository interface {
	ReadSnapshot(ctx context.Context, fn func(repo RankingRepository) error) error

	GetLeagueSeason(ctx context.Context, leagueID uuid.UUID) (uuid.UUID, error)
	ListMembers(ctx context.Context, leagueID uuid.UUID) ([]Member, error)
	CountFinishedMatches(ctx context.Context, seasonID uuid.UUID, round *int) (int, error)
	MaxFinishedRound(ctx context.Context, seasonID uuid.UUID) (int, error)
	ListScoredPredictions(ctx context.Context, leagueID uuid.UUID, round *int) ([]ScoredPrediction, error)
}

// App computes league standings. Every call reads one snapshot.
type App struct {
	repo RankingRepository
}

// NewApp creates a new ranking App
func NewApp(repo RankingRepository) *App {
	return &App{repo: repo}
}

// OverallStandings ranks every current member over the whole season
func (a *App) OverallStandings(ctx context.Context, callerID, leagueID uuid.UUID) ([]Standing, error) {
	var standings []Standing
	err := a.repo.ReadSnapshot(ctx, func(repo RankingRepository) error {
		seasonID, members, err := loadLeague(ctx, repo, callerID, leagueID)
		if err != nil {
			return err
		}

		finished, err := repo.CountFinishedMatches(ctx, seasonID, nil)
		if err != nil {
			return err
		}
		preds, err := repo.ListScoredPredictions(ctx, leagueID, nil)
		if err != nil {
			return err
		}

		standings = Overall(members, preds, finished)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute standings: %w", err)
	}

	log.Debug().Str("league_id", leagueID.String()).Int("members", len(standings)).Msg("overall standings")
	return standings, nil
}

// RoundStandings ranks every current member on one round
func (a *App) RoundStandings(ctx context.Context, callerID, leagueID uuid.UUID, round int) ([]RoundStanding, error) {
	if round < 1 {
		return nil, fmt.Errorf("%w: round must be at least 1", models.ErrInvalidArgument)
	}

	var standings []RoundStanding
	err := a.repo.ReadSnapshot(ctx, func(repo RankingRepository) error {
		_, members, err := loadLeague(ctx, repo, callerID, leagueID)
		if err != nil {
			return err
		}

		preds, err := repo.ListScoredPredictions(ctx, leagueID, &round)
		if err != nil {
			return err
		}

		standings = Round(members, preds)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute round standings: %w", err)
	}
	return standings, nil
}

// CumulativeSeries returns running totals per round for one member or, when
// userID is nil, for all of them. upTo defaults to the last finished round.
func (a *App) CumulativeSeries(ctx context.Context, callerID, leagueID uuid.UUID, upTo *int, userID *uuid.UUID) ([]Series, error) {
	if upTo != nil && *upTo < 1 {
		return nil, fmt.Errorf("%w: up_to must be at least 1", models.ErrInvalidArgument)
	}

	var series []Series
	err := a.repo.ReadSnapshot(ctx, func(repo RankingRepository) error {
		seasonID, members, err := loadLeague(ctx, repo, callerID, leagueID)
		if err != nil {
			return err
		}

		if userID != nil {
			member, ok := findMember(members, *userID)
			if !ok {
				return fmt.Errorf("user %s: %w", *userID, models.ErrNotMember)
			}
			members = []Member{member}
		}

		last := 0
		if upTo != nil {
			last = *upTo
		} else {
			last, err = repo.MaxFinishedRound(ctx, seasonID)
			if err != nil {
				return err
			}
		}
		if last < 1 {
			series = []Series{}
			return nil
		}

		preds, err := repo.ListScoredPredictions(ctx, leagueID, nil)
		if err != nil {
			return err
		}

		series = Cumulative(members, preds, last)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute cumulative series: %w", err)
	}
	return series, nil
}

// loadLeague resolves the season and the members, and checks the caller is
// one of them.
func loadLeague(ctx context.Context, repo RankingRepository, callerID, leagueID uuid.UUID) (uuid.UUID, []Member, error) {
	seasonID, err := repo.GetLeagueSeason(ctx, leagueID)
	if err != nil {
		return uuid.Nil, nil, err
	}

	members, err := repo.ListMembers(ctx, leagueID)
	if err != nil {
		return uuid.Nil, nil, err
	}
	if _, ok := findMember(members, callerID); !ok {
		return uuid.Nil, nil, models.ErrNotMember
	}
	return seasonID, members, nil
}

func findMember(members []Member, userID uuid.UUID) (Member, bool) {
	for _, m := range members {
		if m.UserID == userID {
			return m, true
		}
	}
	return Member{}, false
}
