package reports

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// BudgetReportHandler serves the PDF export of a saved city budget.
func BudgetReportHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := extractUserID(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}

		rep, err := store.GetBudgetReport(userContext(c), userID, c.Params("cityId"))
		if errors.Is(err, ErrNoBudget) {
			return fiber.NewError(fiber.StatusNotFound, "no saved budget for this city")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load budget: "+err.Error())
		}

		pdf, err := BuildBudgetPDF(rep)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to build report")
		}

		c.Set("Content-Type", "application/pdf")
		c.Set("Content-Disposition", `attachment; filename="trip-budget.pdf"`)
		return c.Send(pdf)
	}
}

func extractUserID(c *fiber.Ctx) (string, error) {
	val := c.Locals("user_id")
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
