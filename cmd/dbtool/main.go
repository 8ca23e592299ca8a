package main

import (
	"context"
	"cvrp-annealing-service/internal/adapters/repositories"
	"cvrp-annealing-service/internal/config"
	"cvrp-annealing-service/internal/platform/db"
	"database/sql"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found (using environment variables)")
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open database")
	}
	defer pg.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/demands.json")
	if err := initAndSeed(context.Background(), pg, seedPath); err != nil {
		log.Fatal().Err(err).Msg("database setup failed")
	}
}

func initAndSeed(ctx context.Context, pg *sql.DB, seedPath string) error {
	log.Info().Msg("initializing database schema")
	if err := repositories.InitSchema(pg, repositories.DialectPostgres); err != nil {
		return err
	}
	log.Info().Msg("schema ready")

	log.Info().Str("path", seedPath).Msg("seeding database")
	n, err := repositories.SeedFromFile(ctx, pg, repositories.DialectPostgres, seedPath)
	if err != nil {
		return err
	}
	log.Info().Int("points", n).Msg("seeding complete")

	return nil
}
