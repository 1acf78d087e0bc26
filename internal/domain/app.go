package domain

import (
	"context"
	"time"
)

// Application is a single job application owned by a user. CategoryName
// references a Category by name, not by id.
type Application struct {
	ID              string
	FrontendID      string
	JobTitle        string
	CompanyName     string
	ApplicationDate string
	Status          string
	CategoryName    string
	OwnerUserID     string
	CreatedAt       time.Time
}

type ApplicationRepository interface {
	Create(context.Context, *Application) error
	GetByUserID(context.Context, string) ([]Application, error)
	// Delete is part of the store surface but has no effect.
	Delete(context.Context, string) error
}
