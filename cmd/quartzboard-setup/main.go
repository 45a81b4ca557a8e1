package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/quartzboard/quartzboard/internal/config"
	"github.com/quartzboard/quartzboard/internal/db"
	"github.com/quartzboard/quartzboard/internal/logging"
)

func main() {
	seedsDirFlag := flag.String("seeds-dir", "seeds/quartz", "Seed files directory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg.ServiceName = "quartzboard-setup"

	logger := logging.NewLogger(cfg)

	if cfg.SeedDatabaseURL == "" {
		logger.Fatal().Msg("SEED_DATABASE_URL is required")
	}

	logger.Info().Str("dir", *seedsDirFlag).Msg("applying Quartz seed DDL")
	if err := db.ApplySeeds(cfg.SeedDatabaseURL, *seedsDirFlag); err != nil {
		logger.Fatal().Err(err).Msg("seeding failed")
	}

	logger.Info().Msg("seeding complete")
}
