package city

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/bekatam/dream-a-trip/internal/ai"
	"github.com/bekatam/dream-a-trip/internal/money"
)

// Generator produces AI city content. *ai.GeminiClient satisfies it.
type Generator interface {
	GenerateCityData(ctx context.Context, city string) (*ai.CityData, error)
	Describe(ctx context.Context, city string) (string, error)
}

// PhotoSearcher finds a fallback city photo. *images.UnsplashClient
// satisfies it.
type PhotoSearcher interface {
	SearchCityPhoto(ctx context.Context, city string) (string, error)
}

type Handler struct {
	Repo   *Repository
	AI     Generator
	Photos PhotoSearcher

	mu       sync.Mutex
	inflight map[string]chan struct{}
}

func NewHandler(repo *Repository, gen Generator, photos PhotoSearcher) *Handler {
	return &Handler{
		Repo:     repo,
		AI:       gen,
		Photos:   photos,
		inflight: make(map[string]chan struct{}),
	}
}

// ListCities returns the catalog. Optional query params mirror the list
// page: search, sort (asc|desc by food+hotel), budget/days/affordable for
// affordability filtering and tagging.
func (h *Handler) ListCities(c *fiber.Ctx) error {
	items, err := h.Repo.List(userContext(c))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list cities: "+err.Error())
	}

	opts := ListOptions{
		Search:         strings.TrimSpace(c.Query("search")),
		Sort:           c.Query("sort"),
		Budget:         c.QueryFloat("budget"),
		Days:           c.QueryInt("days", 1),
		AffordableOnly: c.QueryBool("affordable"),
	}

	return c.JSON(ApplyListOptions(items, opts))
}

type createCityRequest struct {
	City     string  `json:"city"`
	Country  string  `json:"country"`
	Descr    string  `json:"descr"`
	Image    string  `json:"image"`
	IsMarked bool    `json:"isMarked"`
	Price    float64 `json:"price"`
}

// CreateCity inserts a raw catalog entry without AI enrichment.
func (h *Handler) CreateCity(c *fiber.Ctx) error {
	var req createCityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	created, err := h.Repo.Create(userContext(c), City{
		City:     req.City,
		Country:  req.Country,
		Descr:    req.Descr,
		Image:    req.Image,
		IsMarked: req.IsMarked,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create city: "+err.Error())
	}
	return c.JSON(created)
}

type generateCityRequest struct {
	City    string `json:"city"`
	Country string `json:"country"`
	Image   string `json:"image"`
}

// GenerateCity finds or creates a catalog entry, generating the
// description, recommended places and baseline prices with the AI
// collaborator. Generation runs at most once per city: an existing row
// short-circuits, and an in-flight latch keyed by (city, country) keeps
// concurrent requests from issuing duplicate generation calls.
func (h *Handler) GenerateCity(c *fiber.Ctx) error {
	var req generateCityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	rawCity := strings.TrimSpace(req.City)
	country := strings.TrimSpace(req.Country)
	parts := strings.SplitN(rawCity, ",", 2)
	cityName := strings.TrimSpace(parts[0])
	if cityName == "" {
		cityName = rawCity
	}
	if country == "" && len(parts) == 2 {
		country = strings.TrimSpace(parts[1])
	}
	if cityName == "" || country == "" {
		return fiber.NewError(fiber.StatusBadRequest, "city and country are required")
	}

	ctx := userContext(c)

	existing, err := h.Repo.FindByName(ctx, cityName, country)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to look up city: "+err.Error())
	}
	if existing != nil {
		return c.JSON(existing)
	}

	release := h.lockCity(cityName + "|" + country)
	defer release()

	// Another request may have created the row while we waited.
	existing, err = h.Repo.FindByName(ctx, cityName, country)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to look up city: "+err.Error())
	}
	if existing != nil {
		return c.JSON(existing)
	}

	created, err := h.Repo.Create(ctx, h.buildCity(ctx, cityName, country, strings.TrimSpace(req.Image)))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create city: "+err.Error())
	}
	return c.JSON(created)
}

// buildCity assembles a new catalog entry from the AI and photo
// collaborators, substituting placeholders on any upstream failure.
func (h *Handler) buildCity(ctx context.Context, cityName, country, image string) City {
	data := &ai.CityData{Places: []ai.Place{}}
	if h.AI != nil {
		if generated, err := h.AI.GenerateCityData(ctx, cityName); err == nil {
			data = generated
		}
	}

	if image == "" && h.Photos != nil {
		if found, err := h.Photos.SearchCityPhoto(ctx, cityName); err == nil {
			image = found
		}
	}
	if image == "" {
		image = "/placeholder.svg"
	}

	descr := strings.TrimSpace(data.Description)
	if descr == "" {
		descr = "Описание для " + cityName + " будет добавлено позже."
	}

	destinations := make([]CatalogDestination, 0, len(data.Places))
	for _, p := range data.Places {
		destinations = append(destinations, CatalogDestination{
			Name:  p.Name,
			Price: money.CoercePrice(p.Price),
			Link:  p.Link,
		})
	}

	return City{
		City:         cityName,
		Country:      country,
		Descr:        descr,
		Image:        image,
		Destinations: destinations,
		FoodPrice:    money.CoercePrice(data.FoodPrice),
		HotelPrice:   money.CoercePrice(data.HotelPrice),
	}
}

type addDestinationRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// AddDestination appends a custom expense (empty link) to the city and
// refreshes its cached price.
func (h *Handler) AddDestination(c *fiber.Ctx) error {
	var req addDestinationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name required")
	}
	if err := money.ValidatePrice(req.Price); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	updated, err := h.Repo.AppendDestination(userContext(c), c.Params("cityId"), CatalogDestination{
		Name:  req.Name,
		Price: req.Price,
		Link:  "",
	})
	if errors.Is(err, ErrCityNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "city not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to add destination: "+err.Error())
	}
	return c.JSON(updated)
}

type describeRequest struct {
	SelectedCity string `json:"selectedCity"`
}

// Describe generates a free-text travel description for a city name.
func (h *Handler) Describe(c *fiber.Ctx) error {
	var req describeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(req.SelectedCity) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "selected city is required")
	}

	text, err := h.AI.Describe(userContext(c), req.SelectedCity)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate description")
	}
	return c.JSON(fiber.Map{"description": text})
}

// lockCity blocks until no generation for the key is in flight, then
// claims it. The returned func releases the claim.
func (h *Handler) lockCity(key string) func() {
	h.mu.Lock()
	for {
		ch, busy := h.inflight[key]
		if !busy {
			break
		}
		h.mu.Unlock()
		<-ch
		h.mu.Lock()
	}
	ch := make(chan struct{})
	h.inflight[key] = ch
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.inflight, key)
		h.mu.Unlock()
		close(ch)
	}
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
