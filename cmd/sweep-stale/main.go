package main

import (
	"context"
	"log"

	"github.com/posterlab/posters-ms-go/internal/config"
	"github.com/posterlab/posters-ms-go/internal/db"
	"github.com/posterlab/posters-ms-go/internal/repository/mariadb"
	imageSvc "github.com/posterlab/posters-ms-go/internal/usecase/image"
)

// sweep-stale force-fails images stuck in processing, e.g. after a worker
// crash. Meant to run periodically from cron.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌  Configuration error: %v", err)
	}

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("DB close error: %v", err)
		}
	}()

	repo := mariadb.NewImageRepository(database.DB)
	sweeper := imageSvc.NewStaleSweeper(repo)

	swept, err := sweeper.SweepStale(context.Background(), cfg.StaleAfter)
	if err != nil {
		log.Fatalf("❌  Stale sweep failed: %v", err)
	}
	log.Printf("✅  Stale sweep completed, %d image(s) resolved to failed", swept)
}

func initDb(cfg *config.Settings) *db.Database {
	log.Println("initialising database...")
	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		log.Fatalf("❌  Failed to connect to db: %v", err)
	}
	return database
}
