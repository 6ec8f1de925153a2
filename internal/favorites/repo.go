package favorites

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bekatam/dream-a-trip/internal/domain"
)

// Repository maps a user to the set of city ids they have favorited.
// Membership is boolean and add/remove are idempotent at the SQL level.
type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

func (r *Repository) userExists(ctx context.Context, userID string) error {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1::uuid)`,
		userID,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrUserNotFound
	}
	return nil
}

// Add inserts the city into the user's favorites. Adding an already
// present city is a no-op.
func (r *Repository) Add(ctx context.Context, userID, cityID string) error {
	if err := r.userExists(ctx, userID); err != nil {
		return err
	}
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO favorites (user_id, city_id)
		VALUES ($1::uuid, $2)
		ON CONFLICT (user_id, city_id) DO NOTHING
	`, userID, cityID)
	return err
}

// Remove deletes the city from the user's favorites. Removing an absent
// city is a no-op.
func (r *Repository) Remove(ctx context.Context, userID, cityID string) error {
	if err := r.userExists(ctx, userID); err != nil {
		return err
	}
	_, err := r.Pool.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1::uuid AND city_id = $2`,
		userID, cityID,
	)
	return err
}

// Contains reports whether the city is in the user's favorites.
func (r *Repository) Contains(ctx context.Context, userID, cityID string) (bool, error) {
	if err := r.userExists(ctx, userID); err != nil {
		return false, err
	}
	var present bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1::uuid AND city_id = $2)`,
		userID, cityID,
	).Scan(&present)
	return present, err
}

// List returns the user's favorited city ids. No ordering guarantee.
func (r *Repository) List(ctx context.Context, userID string) ([]string, error) {
	if err := r.userExists(ctx, userID); err != nil {
		return nil, err
	}

	rows, err := r.Pool.Query(ctx,
		`SELECT city_id FROM favorites WHERE user_id = $1::uuid`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var cityID string
		if err := rows.Scan(&cityID); err != nil {
			return nil, err
		}
		out = append(out, cityID)
	}
	return out, rows.Err()
}
