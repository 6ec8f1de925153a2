package budget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bekatam/dream-a-trip/internal/domain"
)

// Repository persists budget records keyed by (user, city). Concurrent
// upserts to the same key race at the database and resolve last-write-wins;
// there is no version token, which is acceptable for a single user editing
// their own data.
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

// Get returns the saved record for (user, city), or nil when none exists.
// A missing user is an error; a missing record is not.
func (r *Repository) Get(ctx context.Context, userID, cityID string) (*Record, error) {
	if err := r.userExists(ctx, userID); err != nil {
		return nil, err
	}

	rec, err := r.scanOne(r.Pool.QueryRow(ctx, `
		SELECT destinations, food_price, hotel_price,
		       default_food_price, default_hotel_price,
		       total_price, trip_date, last_updated
		FROM budget_records
		WHERE user_id = $1::uuid AND city_id = $2
	`, userID, cityID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Upsert reads the existing record, merges the patch with Merge and writes
// the result back, returning the persisted record.
func (r *Repository) Upsert(ctx context.Context, userID, cityID string, p Patch) (Record, error) {
	existing, err := r.Get(ctx, userID, cityID)
	if err != nil {
		return Record{}, err
	}

	merged := Merge(existing, p, time.Now().UTC())

	destJSON, err := json.Marshal(merged.Destinations)
	if err != nil {
		return Record{}, fmt.Errorf("encode destinations: %w", err)
	}

	_, err = r.Pool.Exec(ctx, `
		INSERT INTO budget_records
			(user_id, city_id, destinations, food_price, hotel_price,
			 default_food_price, default_hotel_price, total_price, trip_date, last_updated)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, city_id) DO UPDATE SET
			destinations        = EXCLUDED.destinations,
			food_price          = EXCLUDED.food_price,
			hotel_price         = EXCLUDED.hotel_price,
			default_food_price  = EXCLUDED.default_food_price,
			default_hotel_price = EXCLUDED.default_hotel_price,
			total_price         = EXCLUDED.total_price,
			trip_date           = EXCLUDED.trip_date,
			last_updated        = EXCLUDED.last_updated
	`, userID, cityID, destJSON,
		merged.FoodPrice, merged.HotelPrice,
		merged.DefaultFoodPrice, merged.DefaultHotelPrice,
		merged.TotalPrice, merged.TripDate, merged.LastUpdated,
	)
	if err != nil {
		return Record{}, err
	}
	return merged, nil
}

// Delete removes the record for (user, city). Deleting an absent record is
// a no-op.
func (r *Repository) Delete(ctx context.Context, userID, cityID string) error {
	if err := r.userExists(ctx, userID); err != nil {
		return err
	}
	_, err := r.Pool.Exec(ctx,
		`DELETE FROM budget_records WHERE user_id = $1::uuid AND city_id = $2`,
		userID, cityID,
	)
	return err
}

// ListAll returns every saved budget for the user, keyed by city id.
func (r *Repository) ListAll(ctx context.Context, userID string) (map[string]Record, error) {
	if err := r.userExists(ctx, userID); err != nil {
		return nil, err
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT city_id, destinations, food_price, hotel_price,
		       default_food_price, default_hotel_price,
		       total_price, trip_date, last_updated
		FROM budget_records
		WHERE user_id = $1::uuid
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]Record)
	for rows.Next() {
		var (
			cityID   string
			destJSON []byte
			rec      Record
		)
		if err := rows.Scan(
			&cityID, &destJSON, &rec.FoodPrice, &rec.HotelPrice,
			&rec.DefaultFoodPrice, &rec.DefaultHotelPrice,
			&rec.TotalPrice, &rec.TripDate, &rec.LastUpdated,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(destJSON, &rec.Destinations); err != nil {
			return nil, fmt.Errorf("decode destinations for %s: %w", cityID, err)
		}
		out[cityID] = rec
	}
	return out, rows.Err()
}

func (r *Repository) scanOne(row pgx.Row) (*Record, error) {
	var (
		destJSON []byte
		rec      Record
	)
	err := row.Scan(
		&destJSON, &rec.FoodPrice, &rec.HotelPrice,
		&rec.DefaultFoodPrice, &rec.DefaultHotelPrice,
		&rec.TotalPrice, &rec.TripDate, &rec.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(destJSON, &rec.Destinations); err != nil {
		return nil, fmt.Errorf("decode destinations: %w", err)
	}
	return &rec, nil
}
