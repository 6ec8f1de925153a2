package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/bekatam/dream-a-trip/internal/ai"
	"github.com/bekatam/dream-a-trip/internal/auth"
	"github.com/bekatam/dream-a-trip/internal/budget"
	"github.com/bekatam/dream-a-trip/internal/city"
	"github.com/bekatam/dream-a-trip/internal/favorites"
	apphttp "github.com/bekatam/dream-a-trip/internal/http"
	"github.com/bekatam/dream-a-trip/internal/images"
	"github.com/bekatam/dream-a-trip/internal/reports"
	"github.com/bekatam/dream-a-trip/internal/router"
	"github.com/bekatam/dream-a-trip/internal/summary"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	// Fail fast before serving anything: every session token needs this.
	_ = auth.MustSecret()

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("error creating pgx pool: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("error pinging database: %v", err)
	}

	// database/sql handle for the report store.
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("error opening database: %v", err)
	}
	defer db.Close()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}

			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	app.Use(router.CorsMiddleware())
	app.Use(requestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	geminiClient := ai.NewGeminiFromEnv()
	unsplashClient := images.NewUnsplashFromEnv()

	budgetRepo := budget.NewRepository(pool)
	favoritesRepo := favorites.NewRepository(pool)
	cityRepo := city.NewRepository(pool)
	reportStore := &reports.Store{DB: db}

	r := &router.Router{
		AuthHandler:      &apphttp.AuthHandler{DB: pool},
		ProfileHandler:   &apphttp.ProfileHandler{DB: pool},
		SettingsHandler:  &apphttp.SettingsHandler{DB: pool},
		BudgetHandler:    budget.NewHandler(budgetRepo),
		FavoritesHandler: favorites.NewHandler(favoritesRepo),
		CityHandler:      city.NewHandler(cityRepo, geminiClient, unsplashClient),
		SummaryHandler:   &summary.Handler{Repo: summary.Repo{DB: pool}},
		ReportHandler:    reports.BudgetReportHandler(reportStore),
		AuthMW:           auth.Middleware(pool),
	}
	r.RegisterRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Listening on port", port)
	log.Fatal(app.Listen(":" + port))
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		log.Printf("%s %s %d %s", c.Method(), c.Path(), status, time.Since(start))
		return err
	}
}
