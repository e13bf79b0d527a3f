package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	_ "github.com/lib/pq"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/scorepool/go/internal/config"
	"github.com/mcdev12/scorepool/go/internal/dbconfig"
	"github.com/mcdev12/scorepool/go/internal/gateway"
	"github.com/mcdev12/scorepool/go/internal/predictions"
	predictionsdb "github.com/mcdev12/scorepool/go/internal/predictions/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if os.Getenv("LOG_LEVEL") == "debug" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	appCfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	dbCfg := dbconfig.NewConfigFromEnv()
	db, err := sql.Open("postgres", dbCfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()
	dbCfg.Apply(db)
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := gateway.DefaultConfig()
	cfg.Consumer.Stream.URL = appCfg.NATS.URL

	// membership lookups share the prediction ledger's query
	members := predictions.NewRepository(predictionsdb.New(db), db)

	svc, err := gateway.NewService(ctx, cfg, members, clockwork.NewRealClock())
	if err != nil {
		log.Fatal().Err(err).Msg("create gateway service")
	}

	mux := http.NewServeMux()
	svc.RegisterRoutes(mux)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if !svc.Healthy() {
			http.Error(w, "nats disconnected", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("OK"))
	})

	addr := fmt.Sprintf(":%d", appCfg.Gateway.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           cors.New(cors.Options{AllowedOrigins: appCfg.Server.AllowedOrigins}).Handler(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- svc.Start(ctx) }()

	go func() {
		log.Info().Str("addr", addr).Str("nats_url", cfg.Consumer.Stream.URL).Msg("gateway listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("gateway exited unexpectedly")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	log.Info().Msg("gateway shutdown complete")
}
