package budget

// Affordability buckets used by the city list filter. Display-only, never
// persisted.
type Affordability string

const (
	AffordabilityUnknown    Affordability = "unknown"
	AffordabilityAffordable Affordability = "affordable"
	AffordabilityModerate   Affordability = "moderate"
	AffordabilityExpensive  Affordability = "expensive"
)

// ComputeTotal derives a trip total from the daily food and hotel prices
// plus all destinations that are not excluded. Always recomputed from its
// inputs so blur toggles can never leave a stale cached value.
func ComputeTotal(foodPrice, hotelPrice float64, destinations []Destination) float64 {
	total := foodPrice + hotelPrice
	for _, d := range destinations {
		if !d.IsBlurred {
			total += d.Price
		}
	}
	return total
}

// Classify buckets a city against the user's budget for the given number
// of days. The 0.9 and /2 thresholds are kept as-is from the original
// product behavior.
func Classify(budget float64, days int, foodPrice, hotelPrice float64) Affordability {
	if budget == 0 {
		return AffordabilityUnknown
	}

	minCost := (foodPrice + hotelPrice) * float64(days) * 0.9
	midCost := (foodPrice + hotelPrice) * float64(days)

	if budget >= minCost {
		return AffordabilityAffordable
	}
	if budget >= midCost/2 {
		return AffordabilityModerate
	}
	return AffordabilityExpensive
}
