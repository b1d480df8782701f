package domain

import "time"

// TokenTTL is the lifetime of every session token issued on register or login.
const TokenTTL = 24 * time.Hour

// User is a registered account. Records are immutable after creation.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
