package models

import "time"

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	UserID      string `json:"user_id"`
	Role        Role   `json:"role"`
	DisplayName string `json:"display_name"`
}

type UserProfile struct {
	ID          string    `json:"id"`
	Role        Role      `json:"role"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	IsVerified  bool      `json:"is_verified"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
