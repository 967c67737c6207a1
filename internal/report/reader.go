// Package report serves read-only analytics over the Sparkify star schema.
package report

import (
	"context"

	"github.com/justestif/sparkify-etl/internal/db"
)

// Reader is the query side the handlers need.
type Reader interface {
	Ping(ctx context.Context) error
	Stats(ctx context.Context) ([]db.TableCount, error)
	User(ctx context.Context, id int) (*db.User, error)
	TopUsers(ctx context.Context, limit int) ([]db.UserPlays, error)
	PlaysByHour(ctx context.Context) ([]db.HourPlays, error)
}

// DBReader implements Reader over a db.DB.
type DBReader struct {
	db *db.DB
}

// NewDBReader creates a Reader backed by PostgreSQL.
func NewDBReader(database *db.DB) *DBReader {
	return &DBReader{db: database}
}

func (r *DBReader) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *DBReader) Stats(ctx context.Context) ([]db.TableCount, error) {
	return r.db.Stats(ctx)
}

func (r *DBReader) User(ctx context.Context, id int) (*db.User, error) {
	return r.db.Users().Get(ctx, id)
}

func (r *DBReader) TopUsers(ctx context.Context, limit int) ([]db.UserPlays, error) {
	return r.db.Songplays().TopUsers(ctx, limit)
}

func (r *DBReader) PlaysByHour(ctx context.Context) ([]db.HourPlays, error) {
	return r.db.Songplays().ByHour(ctx)
}
