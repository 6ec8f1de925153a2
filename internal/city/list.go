package city

import (
	"sort"
	"strings"

	"github.com/bekatam/dream-a-trip/internal/budget"
)

// ListOptions are the optional list-page filters.
type ListOptions struct {
	Search         string
	Sort           string // "asc" | "desc" by food+hotel, anything else keeps order
	Budget         float64
	Days           int
	AffordableOnly bool
}

// ListItem is a catalog entry annotated with its affordability bucket when
// the caller supplied a budget.
type ListItem struct {
	City
	Affordability budget.Affordability `json:"affordability,omitempty"`
}

// ApplyListOptions filters, sorts and annotates the catalog. Pure.
func ApplyListOptions(items []City, opts ListOptions) []ListItem {
	if opts.Days < 1 {
		opts.Days = 1
	}

	out := make([]ListItem, 0, len(items))
	for _, item := range items {
		if opts.Search != "" {
			haystack := strings.ToLower(item.City + item.Country)
			if !strings.Contains(haystack, strings.ToLower(opts.Search)) {
				continue
			}
		}

		if opts.AffordableOnly && opts.Budget > 0 {
			minCost := (item.FoodPrice + item.HotelPrice) * float64(opts.Days) * 0.9
			if minCost > opts.Budget {
				continue
			}
		}

		li := ListItem{City: item}
		if opts.Budget > 0 {
			li.Affordability = budget.Classify(opts.Budget, opts.Days, item.FoodPrice, item.HotelPrice)
		}
		out = append(out, li)
	}

	switch opts.Sort {
	case "asc":
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].FoodPrice+out[i].HotelPrice < out[j].FoodPrice+out[j].HotelPrice
		})
	case "desc":
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].FoodPrice+out[i].HotelPrice > out[j].FoodPrice+out[j].HotelPrice
		})
	}

	return out
}
