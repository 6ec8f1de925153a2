package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bekatam/dream-a-trip/internal/domain"
)

type ProfileHandler struct {
	DB *pgxpool.Pool
}

// GetProfile returns the user's profile and settings.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var (
		u domain.User
	)
	err = h.DB.QueryRow(userContext(c), `
		SELECT id::text, name, email, image, currency, language, notifications, created_at
		FROM users WHERE id = $1::uuid
	`, userID).Scan(
		&u.ID, &u.Name, &u.Email, &u.Image,
		&u.Settings.Currency, &u.Settings.Language, &u.Settings.Notifications,
		&u.CreatedAt,
	)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"name":      u.Name,
			"email":     u.Email,
			"image":     u.Image,
			"createdAt": u.CreatedAt,
			"settings":  u.Settings,
		},
	})
}

type updateProfileRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// UpdateProfile changes name, email and optionally the avatar image.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var body updateProfileRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.TrimSpace(strings.ToLower(body.Email))
	if body.Name == "" || body.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name and email required")
	}

	ctx := userContext(c)

	tag, err := h.DB.Exec(ctx, `
		UPDATE users SET
			name       = $1,
			email      = $2,
			image      = COALESCE(NULLIF($3, ''), image),
			updated_at = NOW()
		WHERE id = $4::uuid
	`, body.Name, body.Email, strings.TrimSpace(body.Avatar), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update profile: "+err.Error())
	}
	if tag.RowsAffected() == 0 {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	return c.JSON(fiber.Map{
		"message": "profile updated",
		"user": fiber.Map{
			"name":  body.Name,
			"email": body.Email,
		},
	})
}
