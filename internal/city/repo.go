package city

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrCityNotFound is returned when a city id does not exist in the catalog.
var ErrCityNotFound = errors.New("city not found")

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

const cityColumns = `id::text, city, country, is_marked, descr, image, destinations, food_price, hotel_price, price`

// List returns the whole catalog in creation order.
func (r *Repository) List(ctx context.Context) ([]City, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+cityColumns+` FROM cities ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]City, 0)
	for rows.Next() {
		c, err := scanCity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID returns a single catalog entry.
func (r *Repository) GetByID(ctx context.Context, id string) (*City, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT `+cityColumns+` FROM cities WHERE id = $1::uuid`, id)
	c, err := scanCity(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByName looks a city up by its (city, country) natural key.
func (r *Repository) FindByName(ctx context.Context, cityName, country string) (*City, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT `+cityColumns+` FROM cities WHERE city = $1 AND country = $2`,
		cityName, country)
	c, err := scanCity(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a city and returns it with its generated id and cached
// price filled in.
func (r *Repository) Create(ctx context.Context, c City) (City, error) {
	c.RecomputePrice()
	if c.Destinations == nil {
		c.Destinations = []CatalogDestination{}
	}

	destJSON, err := json.Marshal(c.Destinations)
	if err != nil {
		return City{}, fmt.Errorf("encode destinations: %w", err)
	}

	err = r.Pool.QueryRow(ctx, `
		INSERT INTO cities (city, country, is_marked, descr, image, destinations, food_price, hotel_price, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id::text
	`, c.City, c.Country, c.IsMarked, c.Descr, c.Image, destJSON,
		c.FoodPrice, c.HotelPrice, c.Price,
	).Scan(&c.ID)
	if err != nil {
		return City{}, err
	}
	return c, nil
}

// AppendDestination adds a destination to the city and refreshes the
// cached price, returning the updated entry.
func (r *Repository) AppendDestination(ctx context.Context, cityID string, d CatalogDestination) (*City, error) {
	c, err := r.GetByID(ctx, cityID)
	if err != nil {
		return nil, err
	}

	c.Destinations = append(c.Destinations, d)
	c.RecomputePrice()

	destJSON, err := json.Marshal(c.Destinations)
	if err != nil {
		return nil, fmt.Errorf("encode destinations: %w", err)
	}

	_, err = r.Pool.Exec(ctx,
		`UPDATE cities SET destinations = $1, price = $2 WHERE id = $3::uuid`,
		destJSON, c.Price, cityID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func scanCity(row pgx.Row) (City, error) {
	var (
		c        City
		destJSON []byte
	)
	err := row.Scan(
		&c.ID, &c.City, &c.Country, &c.IsMarked, &c.Descr, &c.Image,
		&destJSON, &c.FoodPrice, &c.HotelPrice, &c.Price,
	)
	if err != nil {
		return City{}, err
	}
	if err := json.Unmarshal(destJSON, &c.Destinations); err != nil {
		return City{}, fmt.Errorf("decode destinations: %w", err)
	}
	return c, nil
}
