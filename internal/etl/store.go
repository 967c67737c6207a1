package etl

import (
	"context"

	"github.com/justestif/sparkify-etl/internal/db"
)

// Store is the write side of the star schema that loaders use.
type Store interface {
	InsertArtist(ctx context.Context, artist *db.Artist) error
	InsertSong(ctx context.Context, song *db.Song) error
	InsertTimeSlots(ctx context.Context, slots []db.TimeSlot) error
	InsertUsers(ctx context.Context, users []db.User) error
	// FindSongArtist returns db.ErrNotFound when nothing matches.
	FindSongArtist(ctx context.Context, title, artist string, duration float64) (songID, artistID string, err error)
	InsertSongplay(ctx context.Context, sp *db.Songplay) error
}

// Transactor runs fn against a Store inside one transaction, committing only
// when fn returns nil.
type Transactor interface {
	InTx(ctx context.Context, fn func(Store) error) error
}

// PgTransactor adapts a db.DB to Transactor.
type PgTransactor struct {
	db *db.DB
}

// NewTransactor returns a Transactor backed by PostgreSQL.
func NewTransactor(database *db.DB) *PgTransactor {
	return &PgTransactor{db: database}
}

// InTx implements Transactor.
func (t *PgTransactor) InTx(ctx context.Context, fn func(Store) error) error {
	return t.db.InTx(ctx, func(tx *db.Tx) error {
		return fn(txStore{tx: tx})
	})
}

type txStore struct {
	tx *db.Tx
}

func (s txStore) InsertArtist(ctx context.Context, artist *db.Artist) error {
	return s.tx.Artists().Insert(ctx, artist)
}

func (s txStore) InsertSong(ctx context.Context, song *db.Song) error {
	return s.tx.Songs().Insert(ctx, song)
}

func (s txStore) InsertTimeSlots(ctx context.Context, slots []db.TimeSlot) error {
	return s.tx.Times().InsertBatch(ctx, slots)
}

func (s txStore) InsertUsers(ctx context.Context, users []db.User) error {
	return s.tx.Users().InsertBatch(ctx, users)
}

func (s txStore) FindSongArtist(ctx context.Context, title, artist string, duration float64) (string, string, error) {
	return s.tx.Songs().FindSongArtist(ctx, title, artist, duration)
}

func (s txStore) InsertSongplay(ctx context.Context, sp *db.Songplay) error {
	return s.tx.Songplays().Insert(ctx, sp)
}
