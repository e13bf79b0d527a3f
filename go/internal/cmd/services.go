package main

import (
	"database/sql"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/scorepool/go/internal/config"
	"github.com/mcdev12/scorepool/go/internal/leagues"
	leaguesdb "github.com/mcdev12/scorepool/go/internal/leagues/db"
	"github.com/mcdev12/scorepool/go/internal/matches"
	matchesdb "github.com/mcdev12/scorepool/go/internal/matches/db"
	"github.com/mcdev12/scorepool/go/internal/predictions"
	predictionsdb "github.com/mcdev12/scorepool/go/internal/predictions/db"
	"github.com/mcdev12/scorepool/go/internal/ranking"
	rankingdb "github.com/mcdev12/scorepool/go/internal/ranking/db"
	"github.com/mcdev12/scorepool/go/internal/users"
	usersdb "github.com/mcdev12/scorepool/go/internal/users/db"
)

type Services struct {
	Users       *users.Service
	Leagues     *leagues.Service
	Predictions *predictions.Service
	Matches     *matches.Service
	Ranking     *ranking.Service
}

func setupServices(database *sql.DB, cfg config.Config) (*Services, error) {
	// Database layer → Repository layer → App layer → Service layer

	zone, err := matches.LoadZone(cfg.Matches.Timezone)
	if err != nil {
		return nil, fmt.Errorf("kickoff timezone: %w", err)
	}

	// Users
	userRepo := users.NewRepository(usersdb.New(database))
	userApp := users.NewApp(userRepo)

	// Leagues
	leagueRepo := leagues.NewRepository(leaguesdb.New(database), database)
	leagueApp := leagues.NewApp(leagueRepo, leagues.RandomInviteCode, leagues.Config{
		InviteCodeAttempts: cfg.Leagues.InviteCodeAttempts,
	})

	// Predictions
	predictionRepo := predictions.NewRepository(predictionsdb.New(database), database)
	predictionApp := predictions.NewApp(predictionRepo, clockwork.NewRealClock())

	// Matches; only system admins post results
	matchRepo := matches.NewRepository(matchesdb.New(database), database)
	matchApp := matches.NewApp(matchRepo, userApp, zone)

	// Ranking
	rankingRepo := ranking.NewRepository(rankingdb.New(database), database)
	rankingApp := ranking.NewApp(rankingRepo)

	return &Services{
		Users:       users.NewService(userApp),
		Leagues:     leagues.NewService(leagueApp),
		Predictions: predictions.NewService(predictionApp),
		Matches:     matches.NewService(matchApp),
		Ranking:     ranking.NewService(rankingApp),
	}, nil
}
