package budget

import (
	"time"

	"github.com/google/uuid"
)

// Merge resolves a partial update against the previously stored record and
// returns the full record to persist. Per-field precedence is
// explicit-new > existing > default. A nil existing means first-time
// creation and is not an error.
//
// The default food/hotel prices are a baseline snapshot captured exactly
// once: if neither the patch nor the stored record carries one, the
// just-resolved price becomes the default. TotalPrice is stored as the
// client sent it; the server does not recompute it from components.
func Merge(existing *Record, p Patch, now time.Time) Record {
	var prev Record
	if existing != nil {
		prev = *existing
	}

	out := Record{
		FoodPrice:   resolvePrice(p.FoodPrice, existing != nil, prev.FoodPrice),
		HotelPrice:  resolvePrice(p.HotelPrice, existing != nil, prev.HotelPrice),
		TotalPrice:  resolvePrice(p.TotalPrice, existing != nil, prev.TotalPrice),
		LastUpdated: now,
	}

	switch {
	case p.Destinations != nil:
		out.Destinations = p.Destinations
	case prev.Destinations != nil:
		out.Destinations = prev.Destinations
	default:
		out.Destinations = []Destination{}
	}

	out.DefaultFoodPrice = resolveDefault(p.DefaultFoodPrice, prev.DefaultFoodPrice, out.FoodPrice)
	out.DefaultHotelPrice = resolveDefault(p.DefaultHotelPrice, prev.DefaultHotelPrice, out.HotelPrice)

	if p.TripDate != nil {
		out.TripDate = p.TripDate
	} else {
		out.TripDate = prev.TripDate
	}

	return out
}

func resolvePrice(patch *float64, hasExisting bool, existing float64) float64 {
	if patch != nil {
		return *patch
	}
	if hasExisting {
		return existing
	}
	return 0
}

func resolveDefault(patch, existing *float64, resolved float64) *float64 {
	if patch != nil {
		v := *patch
		return &v
	}
	if existing != nil {
		v := *existing
		return &v
	}
	v := resolved
	return &v
}

// MergeDestinations reconciles a freshly generated recommendation list with
// the user's saved list: a left-join keyed on exact (name, link) equality.
// Matched entries keep the saved id and isBlurred flag but take the
// incoming name, price and link; unmatched entries are new and visible.
func MergeDestinations(incoming, saved []Destination) []Destination {
	out := make([]Destination, 0, len(incoming))
	for _, d := range incoming {
		merged := d
		if merged.ID == "" {
			merged.ID = uuid.NewString()
		}
		merged.IsBlurred = false

		for _, s := range saved {
			if s.Name == d.Name && s.Link == d.Link {
				merged.ID = s.ID
				merged.IsBlurred = s.IsBlurred
				break
			}
		}
		out = append(out, merged)
	}
	return out
}

// Toggle handles the exclude button for a destination. Custom expenses
// (blank link) are removed from the list outright; recommended places flip
// their isBlurred flag and stay, so the exclusion is reversible.
func Toggle(list []Destination, id string) []Destination {
	out := make([]Destination, 0, len(list))
	for _, d := range list {
		if d.ID != id {
			out = append(out, d)
			continue
		}
		if d.IsCustom() {
			continue
		}
		d.IsBlurred = !d.IsBlurred
		out = append(out, d)
	}
	return out
}
