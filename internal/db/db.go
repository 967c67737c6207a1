// Package db provides PostgreSQL access to the Sparkify star schema.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Common errors.
var (
	ErrNotFound = errors.New("not found")
)

// querier is the subset of pgxpool.Pool and pgx.Tx the repositories need.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
	repositories
}

// New creates a new database connection pool.
func New(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{pool: pool, repositories: repositories{q: pool}}, nil
}

// Close closes the database connection pool.
func (db *DB) Close() {
	db.pool.Close()
}

// Ping verifies the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Tx is a transaction scoped set of repositories.
type Tx struct {
	repositories
}

// InTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise.
func (db *DB) InTx(ctx context.Context, fn func(*Tx) error) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&Tx{repositories: repositories{q: tx}}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// repositories hands out table repositories bound to a pool or a transaction.
type repositories struct {
	q querier
}

// Artists returns an ArtistRepository.
func (r repositories) Artists() *ArtistRepository {
	return &ArtistRepository{q: r.q}
}

// Songs returns a SongRepository.
func (r repositories) Songs() *SongRepository {
	return &SongRepository{q: r.q}
}

// Users returns a UserRepository.
func (r repositories) Users() *UserRepository {
	return &UserRepository{q: r.q}
}

// Times returns a TimeRepository.
func (r repositories) Times() *TimeRepository {
	return &TimeRepository{q: r.q}
}

// Songplays returns a SongplayRepository.
func (r repositories) Songplays() *SongplayRepository {
	return &SongplayRepository{q: r.q}
}
