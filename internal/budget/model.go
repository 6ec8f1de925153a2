package budget

import (
	"fmt"
	"strings"
	"time"

	"github.com/bekatam/dream-a-trip/internal/money"
)

// Destination is a single line-item expense. Entries with a non-empty link
// are AI-recommended places; entries with an empty (or blank) link are
// user-added custom expenses. That distinction drives filtering and the
// toggle behavior, so the link must be carried through merges verbatim.
type Destination struct {
	ID        string  `json:"_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Link      string  `json:"link"`
	IsBlurred bool    `json:"isBlurred"`
}

// IsCustom reports whether the destination is a user-added expense.
func (d Destination) IsCustom() bool {
	return strings.TrimSpace(d.Link) == ""
}

// Record is a user's saved per-city trip budget.
type Record struct {
	Destinations      []Destination `json:"destinations"`
	FoodPrice         float64       `json:"foodPrice"`
	HotelPrice        float64       `json:"hotelPrice"`
	DefaultFoodPrice  *float64      `json:"defaultFoodPrice,omitempty"`
	DefaultHotelPrice *float64      `json:"defaultHotelPrice,omitempty"`
	TotalPrice        float64       `json:"totalPrice"`
	TripDate          *time.Time    `json:"tripDate,omitempty"`
	LastUpdated       time.Time     `json:"lastUpdated"`
}

// Patch is a partial budget update. Pointer fields distinguish "not sent"
// from an explicit zero, which is a legitimate price.
type Patch struct {
	Destinations      []Destination `json:"destinations"`
	FoodPrice         *float64      `json:"foodPrice"`
	HotelPrice        *float64      `json:"hotelPrice"`
	DefaultFoodPrice  *float64      `json:"defaultFoodPrice"`
	DefaultHotelPrice *float64      `json:"defaultHotelPrice"`
	TotalPrice        *float64      `json:"totalPrice"`
	TripDate          *time.Time    `json:"tripDate"`
}

// Validate rejects negative or non-finite prices and duplicate destination
// ids before anything reaches the store.
func (p Patch) Validate() error {
	for _, v := range []*float64{p.FoodPrice, p.HotelPrice, p.DefaultFoodPrice, p.DefaultHotelPrice, p.TotalPrice} {
		if v == nil {
			continue
		}
		if err := money.ValidatePrice(*v); err != nil {
			return err
		}
	}

	seen := make(map[string]struct{}, len(p.Destinations))
	for _, d := range p.Destinations {
		if err := money.ValidatePrice(d.Price); err != nil {
			return fmt.Errorf("destination %q: %w", d.Name, err)
		}
		if d.ID == "" {
			continue
		}
		if _, dup := seen[d.ID]; dup {
			return fmt.Errorf("duplicate destination id %q", d.ID)
		}
		seen[d.ID] = struct{}{}
	}
	return nil
}
