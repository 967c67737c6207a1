package db

import (
	"context"
	"fmt"
)

// SongplayRepository handles songplay fact table operations.
type SongplayRepository struct {
	q querier
}

// Insert adds a songplay and fills in its generated ID.
func (r *SongplayRepository) Insert(ctx context.Context, sp *Songplay) error {
	query := `
		INSERT INTO songplays (start_time, user_id, level, song_id, artist_id, session_id, location, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT DO NOTHING
		RETURNING songplay_id
	`
	rows, err := r.q.Query(ctx, query,
		sp.StartTime,
		sp.UserID,
		sp.Level,
		sp.SongID,
		sp.ArtistID,
		sp.SessionID,
		sp.Location,
		sp.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("inserting songplay: %w", err)
	}
	defer rows.Close()

	// No row comes back when the insert was skipped as a conflict.
	for rows.Next() {
		if err := rows.Scan(&sp.ID); err != nil {
			return fmt.Errorf("scanning songplay ID: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("inserting songplay: %w", err)
	}
	return nil
}

// TopUsers returns the users with the most songplays, most active first.
func (r *SongplayRepository) TopUsers(ctx context.Context, limit int) ([]UserPlays, error) {
	query := `
		SELECT u.user_id, u.first_name, u.last_name, u.level, COUNT(*) AS plays
		FROM songplays sp
		JOIN users u ON sp.user_id = u.user_id
		GROUP BY u.user_id, u.first_name, u.last_name, u.level
		ORDER BY plays DESC, u.user_id
		LIMIT $1
	`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top users: %w", err)
	}
	defer rows.Close()

	var result []UserPlays
	for rows.Next() {
		var up UserPlays
		if err := rows.Scan(&up.UserID, &up.FirstName, &up.LastName, &up.Level, &up.Plays); err != nil {
			return nil, fmt.Errorf("scanning user plays: %w", err)
		}
		result = append(result, up)
	}
	return result, rows.Err()
}

// ByHour returns songplay counts per hour of day for hours with any plays.
func (r *SongplayRepository) ByHour(ctx context.Context) ([]HourPlays, error) {
	query := `
		SELECT t.hour, COUNT(*)
		FROM songplays sp
		JOIN time t ON sp.start_time = t.start_time
		GROUP BY t.hour
		ORDER BY t.hour
	`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying plays by hour: %w", err)
	}
	defer rows.Close()

	var result []HourPlays
	for rows.Next() {
		var hp HourPlays
		if err := rows.Scan(&hp.Hour, &hp.Plays); err != nil {
			return nil, fmt.Errorf("scanning hour plays: %w", err)
		}
		result = append(result, hp)
	}
	return result, rows.Err()
}
