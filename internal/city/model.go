package city

// CatalogDestination is a recommended place attached to a city in the
// catalog. Unlike budget destinations there is no blur flag; exclusion
// state lives in the user's budget record.
type CatalogDestination struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Link  string  `json:"link"`
}

// City is a catalog entry, read-mostly after creation.
type City struct {
	ID           string               `json:"_id"`
	City         string               `json:"city"`
	Country      string               `json:"country"`
	IsMarked     bool                 `json:"isMarked"`
	Descr        string               `json:"descr"`
	Image        string               `json:"image"`
	Destinations []CatalogDestination `json:"destinations"`
	FoodPrice    float64              `json:"foodPrice"`
	HotelPrice   float64              `json:"hotelPrice"`
	Price        float64              `json:"price"`
}

// RecomputePrice refreshes the cached trip price: the sum of all
// destination prices plus daily food and hotel. Called whenever
// destinations change, mirroring the save hook of the catalog schema.
func (c *City) RecomputePrice() {
	total := 0.0
	for _, d := range c.Destinations {
		total += d.Price
	}
	c.Price = total + c.FoodPrice + c.HotelPrice
}
