package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// SongRepository handles song database operations.
type SongRepository struct {
	q querier
}

// Insert adds a song. An existing row with the same ID is left untouched.
func (r *SongRepository) Insert(ctx context.Context, song *Song) error {
	query := `
		INSERT INTO songs (song_id, title, artist_id, year, duration)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (song_id) DO NOTHING
	`
	_, err := r.q.Exec(ctx, query,
		song.ID,
		song.Title,
		song.ArtistID,
		song.Year,
		song.Duration,
	)
	if err != nil {
		return fmt.Errorf("inserting song: %w", err)
	}
	return nil
}

// Get retrieves a song by ID.
func (r *SongRepository) Get(ctx context.Context, id string) (*Song, error) {
	query := `
		SELECT song_id, title, artist_id, year, duration
		FROM songs
		WHERE song_id = $1
	`
	var song Song
	err := r.q.QueryRow(ctx, query, id).Scan(
		&song.ID,
		&song.Title,
		&song.ArtistID,
		&song.Year,
		&song.Duration,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying song: %w", err)
	}
	return &song, nil
}

// FindSongArtist resolves a played track to its song and artist IDs by exact
// match on title, artist name and duration. Returns ErrNotFound on no match.
func (r *SongRepository) FindSongArtist(ctx context.Context, title, artistName string, duration float64) (songID, artistID string, err error) {
	query := `
		SELECT s.song_id, a.artist_id
		FROM songs s
		JOIN artists a ON s.artist_id = a.artist_id
		WHERE s.title = $1
		  AND a.name = $2
		  AND s.duration = $3
		ORDER BY s.song_id
		LIMIT 1
	`
	err = r.q.QueryRow(ctx, query, title, artistName, duration).Scan(&songID, &artistID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", ErrNotFound
	}
	if err != nil {
		return "", "", fmt.Errorf("looking up song: %w", err)
	}
	return songID, artistID, nil
}
