// Command report runs the standard analysis queries against the ledger
// and writes one CSV artifact per report into the output directory.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/freshmarket/inventory-service/internal/config"
	"github.com/freshmarket/inventory-service/internal/database"
	"github.com/freshmarket/inventory-service/internal/repository"
	"github.com/freshmarket/inventory-service/internal/service"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	var dir string
	flag.StringVar(&dir, "out", cfg.ReportDir, "directory for report CSV files")
	flag.Parse()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	reporter := service.NewReporter(repository.NewReportRepo(db))
	files, err := reporter.WriteAll(ctx, dir)
	if err != nil {
		logger.Fatal().Err(err).Msg("report generation failed")
	}

	for _, f := range files {
		logger.Info().Str("file", f).Msg("report written")
	}
}
