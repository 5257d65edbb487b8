package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"storekpi/adapters/excel"
	"storekpi/adapters/postgres"
	"storekpi/app"
	"storekpi/internal/config"
	"storekpi/ports"
	"storekpi/ui"
)

// Headless variant of the dashboard: the JSON API without the rendered page,
// for running behind a separate frontend.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var source ports.DatasetSource
	if cfg.Data.DSN != "" {
		db, err := sqlx.Connect("postgres", cfg.Data.DSN)
		if err != nil {
			log.Fatalf("Failed to connect to warehouse: %v", err)
		}
		defer db.Close()
		source = postgres.NewWarehouseSource(db, cfg.Data.Table)
	} else {
		source = excel.NewFileSource(cfg.Data.FilePath, cfg.Data.SheetName)
	}

	load, err := app.LoadDataset(context.Background(), source)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	service := app.NewDashboardService(load, cfg.Pipeline.TopN, cfg.Pipeline.MaxConcurrentBuilds)

	api := ui.NewApp(ui.Config{Port: cfg.Server.Port}, service)
	log.Fatal(api.Start())
}
