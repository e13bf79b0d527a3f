package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"connectrpc.com/connect"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mcdev12/scorepool/go/internal/config"
	"github.com/mcdev12/scorepool/go/internal/leagues"
	"github.com/mcdev12/scorepool/go/internal/matches"
	"github.com/mcdev12/scorepool/go/internal/predictions"
	"github.com/mcdev12/scorepool/go/internal/ranking"
	"github.com/mcdev12/scorepool/go/internal/users"
)

func setupServer(services *Services, cfg config.ServerConfig) *http.Server {
	mux := http.NewServeMux()

	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedHeaders: []string{"*"},
	})

	registerServices(mux, services)
	setupHealthCheck(mux)

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: h2c.NewHandler(c.Handler(mux), &http2.Server{}),
	}
}

func registerServices(mux *http.ServeMux, services *Services) {
	opts := []connect.HandlerOption{
		connect.WithRecover(func(_ context.Context, spec connect.Spec, _ http.Header, p any) error {
			log.Error().Str("procedure", spec.Procedure).Interface("panic", p).Msg("handler panicked")
			return connect.NewError(connect.CodeInternal, errors.New("internal error"))
		}),
	}

	userPath, userHandler := users.NewUserServiceHandler(services.Users, opts...)
	mux.Handle(userPath, userHandler)

	leaguePath, leagueHandler := leagues.NewLeagueServiceHandler(services.Leagues, opts...)
	mux.Handle(leaguePath, leagueHandler)

	predictionPath, predictionHandler := predictions.NewPredictionServiceHandler(services.Predictions, opts...)
	mux.Handle(predictionPath, predictionHandler)

	matchPath, matchHandler := matches.NewMatchServiceHandler(services.Matches, opts...)
	mux.Handle(matchPath, matchHandler)

	rankingPath, rankingHandler := ranking.NewRankingServiceHandler(services.Ranking, opts...)
	mux.Handle(rankingPath, rankingHandler)
}

func setupHealthCheck(mux *http.ServeMux) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("failed to write health check response")
		}
	})
}
