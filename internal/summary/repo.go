package summary

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	DB *pgxpool.Pool
}

// Summary aggregates the user's planning activity for the profile page.
type Summary struct {
	PlannedTrips int64   `json:"plannedTrips"`
	TotalBudget  float64 `json:"totalBudget"`
	Favorites    int64   `json:"favorites"`
	Currency     string  `json:"currency"`
}

func (r Repo) GetByUser(ctx context.Context, userID string) (Summary, error) {
	var s Summary

	err := r.DB.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_price), 0)
		FROM budget_records
		WHERE user_id = $1::uuid
	`, userID).Scan(&s.PlannedTrips, &s.TotalBudget)
	if err != nil {
		return Summary{}, err
	}

	err = r.DB.QueryRow(ctx, `
		SELECT COUNT(*) FROM favorites WHERE user_id = $1::uuid
	`, userID).Scan(&s.Favorites)
	if err != nil {
		return Summary{}, err
	}

	err = r.DB.QueryRow(ctx, `
		SELECT currency FROM users WHERE id = $1::uuid
	`, userID).Scan(&s.Currency)
	if err != nil {
		return Summary{}, err
	}

	return s, nil
}
