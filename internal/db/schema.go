package db

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // postgres:// migrate driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNoDatabaseName is returned when the target URL does not name a database.
var ErrNoDatabaseName = errors.New("database URL has no database name")

// ResetDatabase drops and recreates the database named by databaseURL. It
// connects through adminURL, which must point at a different database.
func ResetDatabase(ctx context.Context, adminURL, databaseURL string) error {
	target, err := pgx.ParseConfig(databaseURL)
	if err != nil {
		return fmt.Errorf("parsing database URL: %w", err)
	}
	if target.Database == "" {
		return ErrNoDatabaseName
	}

	conn, err := pgx.Connect(ctx, adminURL)
	if err != nil {
		return fmt.Errorf("connecting to admin database: %w", err)
	}
	defer conn.Close(ctx)

	name := pgx.Identifier{target.Database}.Sanitize()
	if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+name); err != nil {
		return fmt.Errorf("dropping database: %w", err)
	}
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+name+" WITH ENCODING 'utf8' TEMPLATE template0"); err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	return nil
}

// newMigrate builds a migrator over the embedded table migrations.
func newMigrate(databaseURL string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("opening migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("migrate new: %w", err)
	}
	return m, nil
}

// CreateTables creates the artists, users, songs, time and songplays tables
// in that order.
func CreateTables(databaseURL string) error {
	m, err := newMigrate(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// DropTables drops every star schema table, songplays first.
func DropTables(databaseURL string) error {
	m, err := newMigrate(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}
