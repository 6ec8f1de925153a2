package reports

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bekatam/dream-a-trip/internal/budget"
)

// ErrNoBudget is returned when the user has no saved budget for the city.
var ErrNoBudget = errors.New("no saved budget")

type Store struct {
	DB *sql.DB
}

// BudgetReport is everything the PDF needs about one saved trip budget.
type BudgetReport struct {
	UserName    string
	City        string
	Country     string
	Record      budget.Record
	GeneratedAt time.Time
}

// GetBudgetReport loads the saved budget together with the city and user
// names it should be rendered with.
func (s *Store) GetBudgetReport(ctx context.Context, userID, cityID string) (*BudgetReport, error) {
	out := &BudgetReport{GeneratedAt: time.Now().UTC()}

	err := s.DB.QueryRowContext(ctx,
		`SELECT name FROM users WHERE id = $1::uuid`, userID,
	).Scan(&out.UserName)
	if err != nil {
		return nil, err
	}

	var destJSON []byte
	err = s.DB.QueryRowContext(ctx, `
		SELECT destinations, food_price, hotel_price, total_price, trip_date, last_updated
		FROM budget_records
		WHERE user_id = $1::uuid AND city_id = $2
	`, userID, cityID).Scan(
		&destJSON,
		&out.Record.FoodPrice,
		&out.Record.HotelPrice,
		&out.Record.TotalPrice,
		&out.Record.TripDate,
		&out.Record.LastUpdated,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNoBudget
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(destJSON, &out.Record.Destinations); err != nil {
		return nil, fmt.Errorf("decode destinations: %w", err)
	}

	// City metadata is best effort: a budget can outlive the catalog row.
	err = s.DB.QueryRowContext(ctx,
		`SELECT city, country FROM cities WHERE id::text = $1`, cityID,
	).Scan(&out.City, &out.Country)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if out.City == "" {
		out.City = cityID
	}

	return out, nil
}
