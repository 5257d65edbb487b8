package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"storekpi/adapters/excel"
	"storekpi/adapters/postgres"
	"storekpi/app"
	"storekpi/internal/config"
	"storekpi/internal/errors"
	"storekpi/ports"
	"storekpi/ui"
)

// newDatasetSource picks the configured source: the warehouse table when a
// DSN is set, otherwise the file export.
func newDatasetSource(cfg *config.Config) (ports.DatasetSource, func(), error) {
	if cfg.Data.DSN != "" {
		db, err := sqlx.Connect("postgres", cfg.Data.DSN)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to connect to warehouse")
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, errors.Wrap(err, "failed to ping warehouse")
		}

		log.Printf("Using warehouse data source: table %s", cfg.Data.Table)
		return postgres.NewWarehouseSource(db, cfg.Data.Table), func() { db.Close() }, nil
	}

	log.Printf("Using file data source: %s", cfg.Data.FilePath)
	return excel.NewFileSource(cfg.Data.FilePath, cfg.Data.SheetName), func() {}, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gin.SetMode(cfg.Server.GinMode)

	source, cleanup, err := newDatasetSource(cfg)
	if err != nil {
		log.Fatalf("Failed to configure data source: %v", err)
	}
	defer cleanup()

	// The dataset is loaded once at startup; every snapshot is computed
	// against this immutable copy.
	load, err := app.LoadDataset(context.Background(), source)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	service := app.NewDashboardService(load, cfg.Pipeline.TopN, cfg.Pipeline.MaxConcurrentBuilds)

	server, err := ui.NewServer(service)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	log.Printf("Starting SuperStore dashboard on port %s", cfg.Server.Port)
	log.Fatal(server.Start(":" + cfg.Server.Port))
}
