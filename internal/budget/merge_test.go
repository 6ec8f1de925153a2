package budget

import (
	"reflect"
	"testing"
	"time"
)

func fptr(v float64) *float64 { return &v }

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse time %q: %v", s, err)
	}
	return ts
}

func TestMerge_FirstTimeCreation(t *testing.T) {
	now := mustTime(t, "2024-05-01T12:00:00Z")

	rec := Merge(nil, Patch{FoodPrice: fptr(5000), HotelPrice: fptr(8000)}, now)

	if rec.FoodPrice != 5000 || rec.HotelPrice != 8000 {
		t.Fatalf("prices = %v/%v, want 5000/8000", rec.FoodPrice, rec.HotelPrice)
	}
	if rec.TotalPrice != 0 {
		t.Errorf("TotalPrice = %v, want 0 (not sent)", rec.TotalPrice)
	}
	if rec.Destinations == nil || len(rec.Destinations) != 0 {
		t.Errorf("Destinations = %v, want empty slice", rec.Destinations)
	}
	if !rec.LastUpdated.Equal(now) {
		t.Errorf("LastUpdated = %v, want %v", rec.LastUpdated, now)
	}
}

func TestMerge_ExplicitZeroIsNotUnset(t *testing.T) {
	existing := &Record{FoodPrice: 5000, HotelPrice: 8000}

	rec := Merge(existing, Patch{FoodPrice: fptr(0)}, time.Now())

	if rec.FoodPrice != 0 {
		t.Errorf("FoodPrice = %v, want explicit 0", rec.FoodPrice)
	}
	if rec.HotelPrice != 8000 {
		t.Errorf("HotelPrice = %v, want existing 8000", rec.HotelPrice)
	}
}

func TestMerge_EmptyPatchIsIdempotent(t *testing.T) {
	now := mustTime(t, "2024-05-01T12:00:00Z")
	later := now.Add(time.Hour)

	first := Merge(nil, Patch{
		FoodPrice:  fptr(5000),
		HotelPrice: fptr(8000),
		TotalPrice: fptr(16000),
		Destinations: []Destination{
			{ID: "d1", Name: "Museum", Price: 3000, Link: "http://x"},
		},
	}, now)

	second := Merge(&first, Patch{}, later)

	if !second.LastUpdated.Equal(later) {
		t.Errorf("LastUpdated not refreshed: %v", second.LastUpdated)
	}

	// Everything except LastUpdated must be unchanged.
	second.LastUpdated = first.LastUpdated
	if !reflect.DeepEqual(first, second) {
		t.Errorf("empty patch changed fields:\n first = %+v\nsecond = %+v", first, second)
	}
}

func TestMerge_DefaultSnapshotCapturedOnce(t *testing.T) {
	now := time.Now()

	first := Merge(nil, Patch{FoodPrice: fptr(1000)}, now)
	if first.DefaultFoodPrice == nil || *first.DefaultFoodPrice != 1000 {
		t.Fatalf("DefaultFoodPrice = %v, want snapshot 1000", first.DefaultFoodPrice)
	}

	second := Merge(&first, Patch{FoodPrice: fptr(1200)}, now)
	if second.FoodPrice != 1200 {
		t.Errorf("FoodPrice = %v, want 1200", second.FoodPrice)
	}
	if second.DefaultFoodPrice == nil || *second.DefaultFoodPrice != 1000 {
		t.Errorf("DefaultFoodPrice = %v, want unchanged 1000", second.DefaultFoodPrice)
	}
}

func TestMerge_ExplicitDefaultWins(t *testing.T) {
	existing := &Record{FoodPrice: 1000, DefaultFoodPrice: fptr(1000)}

	rec := Merge(existing, Patch{DefaultFoodPrice: fptr(900)}, time.Now())

	if rec.DefaultFoodPrice == nil || *rec.DefaultFoodPrice != 900 {
		t.Errorf("DefaultFoodPrice = %v, want explicit 900", rec.DefaultFoodPrice)
	}
}

func TestMerge_TripDatePrecedence(t *testing.T) {
	saved := mustTime(t, "2024-08-01T00:00:00Z")
	existing := &Record{TripDate: &saved}

	kept := Merge(existing, Patch{}, time.Now())
	if kept.TripDate == nil || !kept.TripDate.Equal(saved) {
		t.Errorf("TripDate = %v, want kept %v", kept.TripDate, saved)
	}

	updated := mustTime(t, "2024-09-15T00:00:00Z")
	changed := Merge(existing, Patch{TripDate: &updated}, time.Now())
	if changed.TripDate == nil || !changed.TripDate.Equal(updated) {
		t.Errorf("TripDate = %v, want %v", changed.TripDate, updated)
	}
}

func TestMergeDestinations_LeftJoinKeepsSavedState(t *testing.T) {
	saved := []Destination{
		{ID: "1", Name: "A", Link: "x", Price: 400, IsBlurred: true},
	}
	incoming := []Destination{
		{Name: "A", Link: "x", Price: 500},
		{Name: "B", Link: "y", Price: 200},
	}

	merged := MergeDestinations(incoming, saved)

	if len(merged) != 2 {
		t.Fatalf("len(merged) = %d, want 2", len(merged))
	}

	if merged[0].ID != "1" {
		t.Errorf("matched entry id = %q, want saved id \"1\"", merged[0].ID)
	}
	if !merged[0].IsBlurred {
		t.Error("matched entry lost saved isBlurred flag")
	}
	if merged[0].Price != 500 {
		t.Errorf("matched entry price = %v, want incoming 500", merged[0].Price)
	}

	if merged[1].IsBlurred {
		t.Error("new entry should start visible")
	}
	if merged[1].ID == "" {
		t.Error("new entry should get an id")
	}
}

func TestMergeDestinations_NameMatchAloneIsNotEnough(t *testing.T) {
	saved := []Destination{
		{ID: "1", Name: "A", Link: "x", IsBlurred: true},
	}
	incoming := []Destination{
		{Name: "A", Link: "different", Price: 100},
	}

	merged := MergeDestinations(incoming, saved)
	if merged[0].ID == "1" || merged[0].IsBlurred {
		t.Errorf("entry with different link adopted saved state: %+v", merged[0])
	}
}

func TestToggle_CustomExpenseIsRemoved(t *testing.T) {
	list := []Destination{
		{ID: "c1", Name: "Souvenirs", Price: 1000, Link: ""},
		{ID: "r1", Name: "Museum", Price: 3000, Link: "http://x"},
	}

	out := Toggle(list, "c1")
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1 (custom expense deleted)", len(out))
	}
	if out[0].ID != "r1" {
		t.Errorf("remaining id = %q, want r1", out[0].ID)
	}
}

func TestToggle_RecommendedFlipsBlur(t *testing.T) {
	list := []Destination{
		{ID: "r1", Name: "Museum", Price: 3000, Link: "http://x"},
	}

	out := Toggle(list, "r1")
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1 (recommended entry kept)", len(out))
	}
	if !out[0].IsBlurred {
		t.Error("first toggle should blur")
	}

	out = Toggle(out, "r1")
	if out[0].IsBlurred {
		t.Error("second toggle should unblur")
	}
}

func TestToggle_BlankLinkCountsAsCustom(t *testing.T) {
	list := []Destination{
		{ID: "c1", Name: "Gift", Price: 500, Link: "  "},
	}
	if out := Toggle(list, "c1"); len(out) != 0 {
		t.Errorf("whitespace-only link should behave as custom expense, got %+v", out)
	}
}
