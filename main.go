package main

import (
	"context"
	"log"

	"puckval/adapters/nhl"
	"puckval/adapters/postgres"
	"puckval/adapters/tabular"
	"puckval/app"
	"puckval/internal/config"
	"puckval/internal/errors"
	"puckval/internal/migration"
	"puckval/ports"
	"puckval/ui"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase initializes the PostgreSQL snapshot store
func initDatabase(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}
	return db, nil
}

// buildSource picks the fetch collaborator: the live stats API when one
// is configured, otherwise the local season export. Both satisfy the
// same contract, so nothing downstream cares which is running.
func buildSource(cfg *config.Config) ports.TableSource {
	if cfg.Source.BaseURL != "" {
		log.Printf("[Main] using live stats API at %s", cfg.Source.BaseURL)
		return nhl.NewClient(cfg.Source.BaseURL, cfg.Source.Timeout, cfg.Source.CacheTTL)
	}
	log.Printf("[Main] using local stat file %s", cfg.Source.CSVPath)
	return tabular.NewFileSource(cfg.Source.CSVPath)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[Main] no .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Main] configuration error: %v", err)
	}

	var snapshots ports.SnapshotRepository
	if cfg.Database.URL != "" {
		db, err := initDatabase(cfg)
		if err != nil {
			log.Fatalf("[Main] database error: %v", err)
		}
		defer db.Close()
		snapshots = postgres.NewSnapshotRepository(db)
	} else {
		log.Printf("[Main] DATABASE_URL not set, snapshot persistence disabled")
	}

	service := app.NewCompareService(buildSource(cfg), snapshots)
	if err := service.Refresh(context.Background()); err != nil {
		// Keep serving; the first request retries the load.
		log.Printf("[Main] initial data load failed: %v", err)
	}

	gin.SetMode(cfg.Server.GinMode)
	server := ui.NewServer(service, cfg.League)
	if err := server.Run(cfg.Server.Port); err != nil {
		log.Fatalf("[Main] server error: %v", err)
	}
}
