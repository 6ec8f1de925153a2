package city

import (
	"testing"

	"github.com/bekatam/dream-a-trip/internal/budget"
)

func catalog() []City {
	return []City{
		{ID: "1", City: "Алматы", Country: "Казахстан", FoodPrice: 5000, HotelPrice: 10000},
		{ID: "2", City: "Астана", Country: "Казахстан", FoodPrice: 6000, HotelPrice: 12000},
		{ID: "3", City: "Paris", Country: "France", FoodPrice: 20000, HotelPrice: 40000},
	}
}

func TestApplyListOptions_Search(t *testing.T) {
	out := ApplyListOptions(catalog(), ListOptions{Search: "paris"})
	if len(out) != 1 || out[0].ID != "3" {
		t.Errorf("search result = %+v, want only Paris", out)
	}

	out = ApplyListOptions(catalog(), ListOptions{Search: "казахстан"})
	if len(out) != 2 {
		t.Errorf("country search matched %d items, want 2", len(out))
	}
}

func TestApplyListOptions_SortByDailyCost(t *testing.T) {
	out := ApplyListOptions(catalog(), ListOptions{Sort: "desc"})
	if out[0].ID != "3" || out[2].ID != "1" {
		t.Errorf("desc order = [%s %s %s]", out[0].ID, out[1].ID, out[2].ID)
	}

	out = ApplyListOptions(catalog(), ListOptions{Sort: "asc"})
	if out[0].ID != "1" || out[2].ID != "3" {
		t.Errorf("asc order = [%s %s %s]", out[0].ID, out[1].ID, out[2].ID)
	}
}

func TestApplyListOptions_AffordableFilter(t *testing.T) {
	// Almaty daily cost 15000, 2 days: minCost = 27000.
	out := ApplyListOptions(catalog(), ListOptions{
		Budget:         30000,
		Days:           2,
		AffordableOnly: true,
	})
	if len(out) != 1 || out[0].ID != "1" {
		t.Errorf("affordable filter = %+v, want only Алматы", out)
	}
	if out[0].Affordability != budget.AffordabilityAffordable {
		t.Errorf("Affordability = %q", out[0].Affordability)
	}
}

func TestApplyListOptions_AnnotatesOnlyWithBudget(t *testing.T) {
	out := ApplyListOptions(catalog(), ListOptions{})
	for _, item := range out {
		if item.Affordability != "" {
			t.Errorf("unexpected affordability %q without budget", item.Affordability)
		}
	}
}

func TestRecomputePrice(t *testing.T) {
	c := City{
		FoodPrice:  5000,
		HotelPrice: 8000,
		Destinations: []CatalogDestination{
			{Name: "Museum", Price: 3000},
			{Name: "Park", Price: 1500},
		},
	}

	c.RecomputePrice()
	if c.Price != 17500 {
		t.Errorf("Price = %v, want 17500", c.Price)
	}

	c.Destinations = nil
	c.RecomputePrice()
	if c.Price != 13000 {
		t.Errorf("Price with no destinations = %v, want 13000", c.Price)
	}
}
