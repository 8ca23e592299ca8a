package main

import (
	"context"
	"cvrp-annealing-service/internal/adapters/repositories"
	"cvrp-annealing-service/internal/api"
	"cvrp-annealing-service/internal/api/handlers"
	"cvrp-annealing-service/internal/config"
	"cvrp-annealing-service/internal/domain"
	"cvrp-annealing-service/internal/platform/db"
	"cvrp-annealing-service/internal/services"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var interruptSignals = []os.Signal{
	os.Interrupt,
	syscall.SIGTERM,
}

// main is the application composition root.
// It wires the demand store (Postgres or SQLite) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), interruptSignals...)
	defer stop()

	sqlDB, dialect, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open demand store")
	}
	defer sqlDB.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(ctx, sqlDB, dialect, cfg.SeedPath); err != nil {
		log.Fatal().Err(err).Msg("cannot initialize demand store")
	}

	store := &repositories.SQLDemandRepository{DB: sqlDB, Dialect: dialect}
	runs := services.NewRunManager(store, cfg.MaxBatchIterations)

	router := api.NewRouter(api.RouterDeps{
		Store: store,
		Runs:  runs,
		Defaults: handlers.RunDefaults{
			Depot: domain.Point{X: cfg.DepotX, Y: cfg.DepotY},
			Fleet: services.FleetConfig{
				VehicleCount:       cfg.VehicleCount,
				CapacityPerVehicle: cfg.VehicleCapacity,
			},
			Anneal: services.AnnealConfig{
				InitialTemperature: cfg.InitialTemperature,
				CoolingRate:        cfg.CoolingRate,
			},
			EnforceCapacity: cfg.EnforceCapacityOnMove,
		},
		Limiter: handlers.NewStepLimiter(cfg.StepRateLimit, cfg.StepRateBurst),
	})

	// Large batches and websocket streams can run for a while; keep writes generous.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("store", string(dialect)).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		log.Info().Msg("server stopped")
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}

// openStore prefers Postgres when DATABASE_URL is set and falls back to a local SQLite file.
func openStore(cfg config.Config) (*sql.DB, repositories.Dialect, error) {
	if cfg.DatabaseURL != "" {
		pg, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, "", err
		}
		return pg, repositories.DialectPostgres, nil
	}

	lite, err := db.OpenSqlite(cfg.DBPath)
	if err != nil {
		return nil, "", err
	}
	return lite, repositories.DialectSQLite, nil
}

func initAndSeed(ctx context.Context, sqlDB *sql.DB, dialect repositories.Dialect, seedPath string) error {
	if err := repositories.InitSchema(sqlDB, dialect); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if seedPath == "" {
		return nil
	}

	n, err := repositories.SeedFromFile(ctx, sqlDB, dialect, seedPath)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Info().Int("points", n).Str("path", seedPath).Msg("demand points seeded")

	return nil
}
