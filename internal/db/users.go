package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// UserRepository handles user database operations.
type UserRepository struct {
	q querier
}

// InsertBatch adds multiple users in one statement. Users that already exist
// keep their stored attributes, including level.
func (r *UserRepository) InsertBatch(ctx context.Context, users []User) error {
	if len(users) == 0 {
		return nil
	}

	query := `
		INSERT INTO users (user_id, first_name, last_name, gender, level)
		SELECT * FROM unnest($1::int[], $2::text[], $3::text[], $4::text[], $5::text[])
		ON CONFLICT (user_id) DO NOTHING
	`

	ids := make([]int, len(users))
	firstNames := make([]string, len(users))
	lastNames := make([]string, len(users))
	genders := make([]string, len(users))
	levels := make([]string, len(users))

	for i, u := range users {
		ids[i] = u.ID
		firstNames[i] = u.FirstName
		lastNames[i] = u.LastName
		genders[i] = u.Gender
		levels[i] = u.Level
	}

	_, err := r.q.Exec(ctx, query, ids, firstNames, lastNames, genders, levels)
	if err != nil {
		return fmt.Errorf("batch inserting users: %w", err)
	}
	return nil
}

// Get retrieves a user by ID.
func (r *UserRepository) Get(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT user_id, first_name, last_name, gender, level
		FROM users
		WHERE user_id = $1
	`
	var user User
	err := r.q.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Gender,
		&user.Level,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &user, nil
}
