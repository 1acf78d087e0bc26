package repository

import (
	"context"
	"sync"

	"github.com/bjarke-xyz/app-tracker/internal/domain"
	"github.com/samber/lo"
)

// Memory holds every collection in process memory. It backs the memory://
// storage driver and the service and server tests.
type Memory struct {
	mu           sync.RWMutex
	users        map[string]domain.User
	categories   map[string]domain.Category
	applications []domain.Application
}

func NewMemory() *Memory {
	return &Memory{
		users:      make(map[string]domain.User),
		categories: make(map[string]domain.Category),
	}
}

func (m *Memory) Users() domain.UserRepository               { return memoryUsers{m} }
func (m *Memory) Categories() domain.CategoryRepository      { return memoryCategories{m} }
func (m *Memory) Applications() domain.ApplicationRepository { return memoryApps{m} }

type memoryUsers struct{ m *Memory }

func (r memoryUsers) Create(ctx context.Context, user *domain.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[user.Username]; ok {
		return domain.ErrConflict
	}
	r.m.users[user.Username] = *user
	return nil
}

func (r memoryUsers) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	user, ok := r.m.users[username]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return user, nil
}

type memoryCategories struct{ m *Memory }

func (r memoryCategories) GetByName(ctx context.Context, name string) (domain.Category, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	category, ok := r.m.categories[name]
	if !ok {
		return domain.Category{}, domain.ErrNotFound
	}
	return category, nil
}

func (r memoryCategories) Create(ctx context.Context, category *domain.Category) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.categories[category.Name]; !ok {
		r.m.categories[category.Name] = *category
	}
	return nil
}

func (r memoryCategories) List(ctx context.Context) ([]domain.Category, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return lo.Values(r.m.categories), nil
}

func (r memoryCategories) Delete(ctx context.Context, name string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.categories[name]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m.categories, name)
	return nil
}

type memoryApps struct{ m *Memory }

func (r memoryApps) Create(ctx context.Context, app *domain.Application) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.applications = append(r.m.applications, *app)
	return nil
}

func (r memoryApps) GetByUserID(ctx context.Context, userId string) ([]domain.Application, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return lo.Filter(r.m.applications, func(app domain.Application, _ int) bool {
		return app.OwnerUserID == userId
	}), nil
}

func (r memoryApps) Delete(ctx context.Context, appID string) error {
	return nil
}
