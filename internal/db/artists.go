package db

import (
	"context"
	"fmt"
)

// ArtistRepository handles artist database operations.
type ArtistRepository struct {
	q querier
}

// Insert adds an artist. An existing row with the same ID is left untouched.
func (r *ArtistRepository) Insert(ctx context.Context, artist *Artist) error {
	query := `
		INSERT INTO artists (artist_id, name, location, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (artist_id) DO NOTHING
	`
	_, err := r.q.Exec(ctx, query,
		artist.ID,
		artist.Name,
		artist.Location,
		artist.Latitude,
		artist.Longitude,
	)
	if err != nil {
		return fmt.Errorf("inserting artist: %w", err)
	}
	return nil
}
