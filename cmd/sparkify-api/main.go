// Command sparkify-api serves read-only reports over the loaded star schema.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/justestif/sparkify-etl/internal/config"
	"github.com/justestif/sparkify-etl/internal/db"
	"github.com/justestif/sparkify-etl/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := cfg.NewLogger()
	if err := run(context.Background(), cfg, log); err != nil {
		log.Errorf("report server: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) error {
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	server := report.NewServer(report.ServerConfig{
		Addr:   cfg.APIAddr,
		Reader: report.NewDBReader(database),
		Logger: log,
	})
	return server.Run()
}
