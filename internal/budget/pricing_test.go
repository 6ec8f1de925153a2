package budget

import "testing"

func TestComputeTotal_SkipsBlurred(t *testing.T) {
	dests := []Destination{
		{ID: "1", Name: "Museum", Price: 3000, Link: "http://x"},
		{ID: "2", Name: "Park", Price: 1500, Link: "http://y", IsBlurred: true},
		{ID: "3", Name: "Souvenirs", Price: 1000, Link: ""},
	}

	got := ComputeTotal(5000, 8000, dests)
	want := 5000.0 + 8000 + 3000 + 1000
	if got != want {
		t.Errorf("ComputeTotal = %v, want %v", got, want)
	}
}

func TestComputeTotal_TracksToggles(t *testing.T) {
	dests := []Destination{
		{ID: "1", Name: "Museum", Price: 3000, Link: "http://x"},
	}

	before := ComputeTotal(100, 200, dests)
	if before != 3300 {
		t.Fatalf("before toggle = %v, want 3300", before)
	}

	dests = Toggle(dests, "1")
	after := ComputeTotal(100, 200, dests)
	if after != 300 {
		t.Errorf("after toggle = %v, want 300", after)
	}

	dests = Toggle(dests, "1")
	restored := ComputeTotal(100, 200, dests)
	if restored != before {
		t.Errorf("after second toggle = %v, want %v", restored, before)
	}
}

func TestComputeTotal_NoDestinations(t *testing.T) {
	if got := ComputeTotal(5000, 8000, nil); got != 13000 {
		t.Errorf("ComputeTotal = %v, want 13000", got)
	}
}

func TestClassify(t *testing.T) {
	// food+hotel = 10000, days = 3: minCost = 27000, midCost = 30000.
	cases := []struct {
		name   string
		budget float64
		want   Affordability
	}{
		{"zero budget", 0, AffordabilityUnknown},
		{"at min cost", 27000, AffordabilityAffordable},
		{"above min cost", 50000, AffordabilityAffordable},
		{"at half mid", 15000, AffordabilityModerate},
		{"between half mid and min", 20000, AffordabilityModerate},
		{"below half mid", 14999, AffordabilityExpensive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.budget, 3, 4000, 6000)
			if got != tc.want {
				t.Errorf("Classify(%v) = %q, want %q", tc.budget, got, tc.want)
			}
		})
	}
}
