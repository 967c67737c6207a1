// Command create-tables drops and recreates the Sparkify database and its
// star schema tables.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/justestif/sparkify-etl/internal/config"
	"github.com/justestif/sparkify-etl/internal/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := cfg.NewLogger()
	if err := run(context.Background(), cfg); err != nil {
		log.Errorf("create tables: %v", err)
		os.Exit(1)
	}
	log.Info("CREATE TABLE queries execution complete")
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := db.ResetDatabase(ctx, cfg.AdminDatabaseURL, cfg.DatabaseURL); err != nil {
		return fmt.Errorf("resetting database: %w", err)
	}
	if err := db.CreateTables(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}
