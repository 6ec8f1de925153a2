package favorites

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bekatam/dream-a-trip/internal/domain"
)

// Set is the persistence contract the handler needs. *Repository
// satisfies it.
type Set interface {
	Add(ctx context.Context, userID, cityID string) error
	Remove(ctx context.Context, userID, cityID string) error
	Contains(ctx context.Context, userID, cityID string) (bool, error)
	List(ctx context.Context, userID string) ([]string, error)
}

type Handler struct {
	Set Set
}

func NewHandler(set Set) *Handler {
	return &Handler{Set: set}
}

// CheckFavorite reports whether the city is favorited.
func (h *Handler) CheckFavorite(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	isFavorite, err := h.Set.Contains(userContext(c), userID, c.Params("cityId"))
	if errors.Is(err, domain.ErrUserNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to check favorite: "+err.Error())
	}

	return c.JSON(fiber.Map{"isFavorite": isFavorite})
}

// AddFavorite adds the city to favorites. Re-adding still succeeds.
func (h *Handler) AddFavorite(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	err = h.Set.Add(userContext(c), userID, c.Params("cityId"))
	if errors.Is(err, domain.ErrUserNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to add favorite: "+err.Error())
	}

	return c.JSON(fiber.Map{
		"message":    "city added to favorites",
		"isFavorite": true,
	})
}

// RemoveFavorite removes the city from favorites. Removing an absent city
// still succeeds.
func (h *Handler) RemoveFavorite(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	err = h.Set.Remove(userContext(c), userID, c.Params("cityId"))
	if errors.Is(err, domain.ErrUserNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to remove favorite: "+err.Error())
	}

	return c.JSON(fiber.Map{
		"message":    "city removed from favorites",
		"isFavorite": false,
	})
}

// ListFavorites returns all favorited city ids.
func (h *Handler) ListFavorites(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	ids, err := h.Set.List(userContext(c), userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list favorites: "+err.Error())
	}

	return c.JSON(fiber.Map{"favorites": ids})
}

func extractUserID(c *fiber.Ctx) (string, error) {
	val := c.Locals("user_id")
	if val == nil {
		return "", errors.New("user id missing")
	}
	if uid, ok := val.(string); ok && strings.TrimSpace(uid) != "" {
		return uid, nil
	}
	return "", errors.New("user id missing")
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
