// Package service implements the application tracker use cases on top of
// the domain repositories.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bjarke-xyz/app-tracker/internal/auth"
	"github.com/bjarke-xyz/app-tracker/internal/domain"
	"github.com/google/uuid"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// TrackerService needs its repositories and token service set up before the
// HTTP layer starts serving.
type TrackerService struct {
	logger       *slog.Logger
	users        domain.UserRepository
	categories   domain.CategoryRepository
	applications domain.ApplicationRepository
	tokens       *auth.TokenService
	now          func() time.Time
}

func NewTrackerService(logger *slog.Logger, users domain.UserRepository, categories domain.CategoryRepository, applications domain.ApplicationRepository, tokens *auth.TokenService) *TrackerService {
	return &TrackerService{
		logger:       logger,
		users:        users,
		categories:   categories,
		applications: applications,
		tokens:       tokens,
		now:          time.Now,
	}
}

// Register stores a new user. A taken username yields domain.ErrConflict.
func (s *TrackerService) Register(ctx context.Context, username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return domain.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	user := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return domain.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login checks the credentials and issues a session token. Unknown users and
// wrong passwords both yield ErrInvalidCredentials.
func (s *TrackerService) Login(ctx context.Context, username, password string) (string, domain.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.User{}, ErrInvalidCredentials
		}
		return "", domain.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", domain.User{}, ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user.Username, user.ID)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, user, nil
}

type NewApplication struct {
	FrontendID      string
	JobTitle        string
	CompanyName     string
	ApplicationDate string
	Status          string
	CategoryName    string
}

type NewCategory struct {
	Name       string
	FrontendID string
}

// CreateApplication makes sure the referenced category exists, then stores
// the application for ownerID. The two writes are not atomic; a failure
// after the category insert leaves an unused category behind.
func (s *TrackerService) CreateApplication(ctx context.Context, ownerID string, input NewApplication, category NewCategory) (domain.Application, error) {
	categoryName := strings.TrimSpace(input.CategoryName)
	if categoryName == "" {
		categoryName = strings.TrimSpace(category.Name)
	}
	if categoryName == "" {
		return domain.Application{}, fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}

	if err := s.ensureCategory(ctx, categoryName, category.FrontendID); err != nil {
		return domain.Application{}, err
	}

	app := domain.Application{
		ID:              uuid.NewString(),
		FrontendID:      input.FrontendID,
		JobTitle:        input.JobTitle,
		CompanyName:     input.CompanyName,
		ApplicationDate: input.ApplicationDate,
		Status:          input.Status,
		CategoryName:    categoryName,
		OwnerUserID:     ownerID,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.applications.Create(ctx, &app); err != nil {
		return domain.Application{}, fmt.Errorf("failed to create application: %w", err)
	}
	return app, nil
}

func (s *TrackerService) ensureCategory(ctx context.Context, name, frontendID string) error {
	_, err := s.categories.GetByName(ctx, name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to get category: %w", err)
	}
	category := domain.Category{
		Name:       name,
		FrontendID: frontendID,
		CreatedAt:  s.now().UTC(),
	}
	// a concurrent request may have created it in the meantime; Create
	// treats that as success
	if err := s.categories.Create(ctx, &category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	s.logger.Info("created category", "category", name)
	return nil
}

type Dashboard struct {
	Applications []domain.Application
	Categories   []domain.Category
}

// Dashboard returns the applications owned by ownerID along with every
// category.
func (s *TrackerService) Dashboard(ctx context.Context, ownerID string) (Dashboard, error) {
	apps, err := s.applications.GetByUserID(ctx, ownerID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("failed to get applications: %w", err)
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("failed to list categories: %w", err)
	}
	return Dashboard{Applications: apps, Categories: categories}, nil
}

func (s *TrackerService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// DeleteCategory removes the category. Applications referencing it keep
// their category name.
func (s *TrackerService) DeleteCategory(ctx context.Context, name string) error {
	if err := s.categories.Delete(ctx, name); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
