package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bekatam/dream-a-trip/internal/domain"
)

type SettingsHandler struct {
	DB *pgxpool.Pool
}

// GetSettings returns the user's settings, falling back to the defaults.
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	s := domain.DefaultSettings()
	err = h.DB.QueryRow(userContext(c),
		`SELECT currency, language, notifications FROM users WHERE id = $1::uuid`,
		userID,
	).Scan(&s.Currency, &s.Language, &s.Notifications)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	return c.JSON(fiber.Map{"settings": s})
}

type updateSettingsRequest struct {
	Currency      string `json:"currency"`
	Language      string `json:"language"`
	Notifications *bool  `json:"notifications"`
}

// UpdateSettings replaces the settings triple. All fields are required.
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var body updateSettingsRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	body.Currency = strings.TrimSpace(body.Currency)
	body.Language = strings.TrimSpace(body.Language)
	if body.Currency == "" || body.Language == "" || body.Notifications == nil {
		return fiber.NewError(fiber.StatusBadRequest, "currency, language and notifications required")
	}

	tag, err := h.DB.Exec(userContext(c), `
		UPDATE users SET
			currency      = $1,
			language      = $2,
			notifications = $3,
			updated_at    = NOW()
		WHERE id = $4::uuid
	`, body.Currency, body.Language, *body.Notifications, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update settings: "+err.Error())
	}
	if tag.RowsAffected() == 0 {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	return c.JSON(fiber.Map{
		"message": "settings updated",
		"settings": domain.Settings{
			Currency:      body.Currency,
			Language:      body.Language,
			Notifications: *body.Notifications,
		},
	})
}
