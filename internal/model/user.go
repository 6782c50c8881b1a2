package model

import (
	"time"
)

// User is the authenticated admin principal
type User struct {
	UID         string    `db:"id"`
	Name        string    `db:"name"`
	Email       string    `db:"email"`
	CreatedAt   time.Time `db:"created_at"`
	LastLoginAt time.Time `db:"last_login_at"`
}

// DisplayName falls back to the email local part when no name is set
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	for i := 0; i < len(u.Email); i++ {
		if u.Email[i] == '@' {
			return u.Email[:i]
		}
	}
	return u.Email
}
