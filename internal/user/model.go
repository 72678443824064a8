package user

import (
	"time"

	"github.com/adhamoui/splitpal/internal/currency"
)

// User represents a registered user. DefaultCurrency is the display
// currency every balance is converted into for this user.
type User struct {
	ID              int64         `json:"id"`
	Username        string        `json:"username"`
	Email           string        `json:"email"`
	PasswordHash    string        `json:"-"`
	AvatarURL       *string       `json:"avatar_url,omitempty"`
	DefaultCurrency currency.Code `json:"default_currency"`
	CreatedAt       time.Time     `json:"created_at"`
}
