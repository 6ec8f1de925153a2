package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bekatam/dream-a-trip/internal/budget"
	"github.com/bekatam/dream-a-trip/internal/city"
	"github.com/bekatam/dream-a-trip/internal/favorites"
	handlers "github.com/bekatam/dream-a-trip/internal/http"
	"github.com/bekatam/dream-a-trip/internal/summary"
)

type Router struct {
	AuthHandler      *handlers.AuthHandler
	ProfileHandler   *handlers.ProfileHandler
	SettingsHandler  *handlers.SettingsHandler
	BudgetHandler    *budget.Handler
	FavoritesHandler *favorites.Handler
	CityHandler      *city.Handler
	SummaryHandler   *summary.Handler
	ReportHandler    fiber.Handler
	AuthMW           fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	if r.AuthHandler != nil {
		app.Post("/api/auth/register", RateLimitAuth(), r.AuthHandler.Register)
		app.Post("/api/auth/login", RateLimitAuth(), r.AuthHandler.Login)
		app.Get("/api/me", r.AuthMW, r.AuthHandler.Me)
	}

	if r.BudgetHandler != nil {
		app.Get("/api/budget", r.AuthMW, r.BudgetHandler.ListBudgets)
		app.Get("/api/budget/:cityId", r.AuthMW, r.BudgetHandler.GetBudget)
		app.Post("/api/budget/:cityId", r.AuthMW, RateLimitWrite(), r.BudgetHandler.SaveBudget)
		app.Delete("/api/budget/:cityId", r.AuthMW, RateLimitWrite(), r.BudgetHandler.DeleteBudget)
	}

	if r.ReportHandler != nil {
		app.Get("/api/budget/:cityId/report", r.AuthMW, r.ReportHandler)
	}

	if r.FavoritesHandler != nil {
		app.Get("/api/favorites", r.AuthMW, r.FavoritesHandler.ListFavorites)
		app.Get("/api/favorites/:cityId", r.AuthMW, r.FavoritesHandler.CheckFavorite)
		app.Post("/api/favorites/:cityId", r.AuthMW, RateLimitWrite(), r.FavoritesHandler.AddFavorite)
		app.Delete("/api/favorites/:cityId", r.AuthMW, RateLimitWrite(), r.FavoritesHandler.RemoveFavorite)
	}

	if r.CityHandler != nil {
		app.Get("/api/city", r.CityHandler.ListCities)
		app.Post("/api/city", r.CityHandler.CreateCity)
		app.Post("/api/city/create", r.CityHandler.GenerateCity)
		app.Post("/api/city/:cityId", r.CityHandler.AddDestination)
		app.Post("/api/describe", r.CityHandler.Describe)
	}

	if r.SummaryHandler != nil {
		app.Get("/api/summary", r.AuthMW, r.SummaryHandler.GetSummary)
	}

	if r.ProfileHandler != nil {
		app.Get("/api/profile", r.AuthMW, r.ProfileHandler.GetProfile)
		app.Put("/api/profile", r.AuthMW, r.ProfileHandler.UpdateProfile)
	}

	if r.SettingsHandler != nil {
		app.Get("/api/settings", r.AuthMW, r.SettingsHandler.GetSettings)
		app.Put("/api/settings", r.AuthMW, r.SettingsHandler.UpdateSettings)
	}
}
