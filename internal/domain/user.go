package domain

import (
	"context"
	"time"
)

type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

type UserRepository interface {
	// Create returns ErrConflict when the username is taken.
	Create(context.Context, *User) error
	GetByUsername(context.Context, string) (User, error)
}
