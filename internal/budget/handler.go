package budget

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bekatam/dream-a-trip/internal/domain"
)

// Store is the persistence contract the handler needs. *Repository
// satisfies it.
type Store interface {
	Get(ctx context.Context, userID, cityID string) (*Record, error)
	Upsert(ctx context.Context, userID, cityID string, p Patch) (Record, error)
	Delete(ctx context.Context, userID, cityID string) error
	ListAll(ctx context.Context, userID string) (map[string]Record, error)
}

type Handler struct {
	Store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{Store: store}
}

// GetBudget returns the saved budget for a city, or null when none exists.
func (h *Handler) GetBudget(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	rec, err := h.Store.Get(userContext(c), userID, c.Params("cityId"))
	if errors.Is(err, domain.ErrUserNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load budget: "+err.Error())
	}

	return c.JSON(fiber.Map{"budget": rec})
}

// SaveBudget merges a partial budget into the stored record.
func (h *Handler) SaveBudget(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var patch Patch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if err := patch.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	rec, err := h.Store.Upsert(userContext(c), userID, c.Params("cityId"), patch)
	if errors.Is(err, domain.ErrUserNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to save budget: "+err.Error())
	}

	return c.JSON(fiber.Map{
		"message": "budget saved",
		"budget":  rec,
	})
}

// DeleteBudget removes the saved budget for a city. Idempotent.
func (h *Handler) DeleteBudget(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	err = h.Store.Delete(userContext(c), userID, c.Params("cityId"))
	if errors.Is(err, domain.ErrUserNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete budget: "+err.Error())
	}

	return c.JSON(fiber.Map{"message": "budget deleted"})
}

// ListBudgets returns every saved budget for the user keyed by city id.
func (h *Handler) ListBudgets(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	budgets, err := h.Store.ListAll(userContext(c), userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list budgets: "+err.Error())
	}

	return c.JSON(fiber.Map{"budgets": budgets})
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
