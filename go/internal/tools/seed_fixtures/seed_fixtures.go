package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcdev12/scorepool/go/internal/dbconfig"
)

type counts struct {
	inserted int
	skipped  int
}

func (c *counts) add(tag int64) {
	if tag == 1 {
		c.inserted++
	} else {
		c.skipped++
	}
}

func main() {
	path := flag.String("file", "go/internal/assets/fixtures.yaml", "fixture file to load")
	flag.Parse()

	// 1) Load and check the fixture file
	data, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read fixtures: %v\n", err)
		os.Exit(1)
	}
	file, fixtures, err := parseFixtures(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse fixtures: %v\n", err)
		os.Exit(1)
	}

	// 2) Connect using shared dbconfig
	ctx := context.Background()
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 3) Insert everything in one transaction; reruns skip existing rows
	var teams, games counts
	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		seasonID, err := upsertSeason(ctx, tx, file)
		if err != nil {
			return err
		}

		teamIDs := make(map[string]string, len(file.Teams))
		for _, t := range file.Teams {
			tag, err := tx.Exec(ctx, `
                INSERT INTO teams (name, short_code)
                VALUES ($1, $2)
                ON CONFLICT DO NOTHING
            `, t.Name, t.ShortCode)
			if err != nil {
				return fmt.Errorf("insert team %s: %w", t.ShortCode, err)
			}
			teams.add(tag.RowsAffected())

			var id string
			if err := tx.QueryRow(ctx, `SELECT id::text FROM teams WHERE short_code = $1`, t.ShortCode).Scan(&id); err != nil {
				return fmt.Errorf("look up team %s: %w", t.ShortCode, err)
			}
			teamIDs[t.ShortCode] = id
		}

		for _, m := range fixtures {
			tag, err := tx.Exec(ctx, `
                INSERT INTO matches (season_id, round, home_team_id, away_team_id, kickoff_at)
                VALUES ($1, $2, $3, $4, $5)
                ON CONFLICT ON CONSTRAINT matches_fixture_key DO NOTHING
            `, seasonID, m.Round, teamIDs[m.Home], teamIDs[m.Away], m.KickoffAt)
			if err != nil {
				return fmt.Errorf("insert match %s x %s: %w", m.Home, m.Away, err)
			}
			games.add(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}

	// 4) Print summary
	fmt.Printf(
		"Fixtures seed complete: %s %d, teams %d inserted %d skipped, matches %d inserted %d skipped\n",
		file.Competition.Name, file.Season.Year,
		teams.inserted, teams.skipped, games.inserted, games.skipped,
	)
}

func upsertSeason(ctx context.Context, tx pgx.Tx, file *FixtureFile) (string, error) {
	if _, err := tx.Exec(ctx, `
        INSERT INTO competitions (name, country, type)
        VALUES ($1, $2, $3)
        ON CONFLICT (name) DO NOTHING
    `, file.Competition.Name, file.Competition.Country, file.Competition.Type); err != nil {
		return "", fmt.Errorf("insert competition: %w", err)
	}

	var competitionID string
	if err := tx.QueryRow(ctx, `SELECT id::text FROM competitions WHERE name = $1`, file.Competition.Name).Scan(&competitionID); err != nil {
		return "", fmt.Errorf("look up competition: %w", err)
	}

	if _, err := tx.Exec(ctx, `
        INSERT INTO seasons (competition_id, year, status)
        VALUES ($1, $2, $3::season_status)
        ON CONFLICT (competition_id, year) DO NOTHING
    `, competitionID, file.Season.Year, file.Season.Status); err != nil {
		return "", fmt.Errorf("insert season: %w", err)
	}

	var seasonID string
	if err := tx.QueryRow(ctx, `SELECT id::text FROM seasons WHERE competition_id = $1 AND year = $2`,
		competitionID, file.Season.Year).Scan(&seasonID); err != nil {
		return "", fmt.Errorf("look up season: %w", err)
	}
	return seasonID, nil
}
