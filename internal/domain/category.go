package domain

import (
	"context"
	"time"
)

type Category struct {
	Name       string
	FrontendID string
	CreatedAt  time.Time
}

type CategoryRepository interface {
	GetByName(context.Context, string) (Category, error)
	// Create inserts the category unless one with the same name exists.
	// An existing name is not an error.
	Create(context.Context, *Category) error
	List(context.Context) ([]Category, error)
	Delete(context.Context, string) error
}
