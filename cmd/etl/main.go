// Command etl loads the song and event-log datasets into the Sparkify
// database. It stops at the first file that fails.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/justestif/sparkify-etl/internal/config"
	"github.com/justestif/sparkify-etl/internal/db"
	"github.com/justestif/sparkify-etl/internal/etl"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := cfg.NewLogger().WithField("run_id", uuid.NewString())
	if err := run(context.Background(), cfg, log); err != nil {
		log.Errorf("etl failed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) error {
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()
	log.Info("connected to sparkify database")

	p := etl.New(etl.NewTransactor(database),
		etl.WithLogger(log),
		etl.WithPattern(cfg.FilePattern),
	)

	songs, err := p.ProcessData(ctx, cfg.SongDataPath, p.LoadSongFile)
	if err != nil {
		return fmt.Errorf("loading song data: %w", err)
	}
	logs, err := p.ProcessData(ctx, cfg.LogDataPath, p.LoadLogFile)
	if err != nil {
		return fmt.Errorf("loading log data: %w", err)
	}

	log.WithFields(logrus.Fields{
		"song_files": songs.Files,
		"log_files":  logs.Files,
		"events":     logs.Records,
		"songplays":  logs.Plays,
		"resolved":   logs.Resolved,
	}).Info("etl complete")
	return nil
}
