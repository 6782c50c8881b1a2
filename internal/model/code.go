package model

import (
	"time"
)

// OneTimeCode is a hashed login code sent by email
type OneTimeCode struct {
	ID        string     `db:"id"`
	Email     string     `db:"email"`
	CodeHash  string     `db:"code_hash"`
	ExpiresAt time.Time  `db:"expires_at"`
	UsedAt    *time.Time `db:"used_at"`
	CreatedAt time.Time  `db:"created_at"`
}

func (c *OneTimeCode) IsUsed() bool {
	return c.UsedAt != nil
}

// Session is a server-side login session; only the token hash is stored
type Session struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	TokenHash string    `db:"token_hash"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}
