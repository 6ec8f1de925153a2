package domain

import (
	"errors"
	"time"
)

// ErrUserNotFound is returned by repositories when the owning user record
// does not exist. Handlers translate it into a 404.
var ErrUserNotFound = errors.New("user not found")

// Settings are per-user display preferences.
type Settings struct {
	Currency      string `db:"currency" json:"currency"`
	Language      string `db:"language" json:"language"`
	Notifications bool   `db:"notifications" json:"notifications"`
}

// DefaultSettings mirrors the defaults applied on signup.
func DefaultSettings() Settings {
	return Settings{Currency: "KZT", Language: "ru", Notifications: true}
}

// User represents a persisted user record.
type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Image        *string   `db:"image" json:"image,omitempty"`
	Provider     *string   `db:"provider" json:"provider,omitempty"`
	Settings     Settings  `json:"settings"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
