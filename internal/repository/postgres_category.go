package repository

import (
	"context"
	"time"

	"github.com/bjarke-xyz/app-tracker/internal/domain"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/samber/lo"
)

type postgresCategoryRepository struct {
	conn Connection
}

func NewPostgresCategory(conn Connection) domain.CategoryRepository {
	return &postgresCategoryRepository{conn: conn}
}

type categoryDto struct {
	Name       string    `db:"name"`
	FrontendID string    `db:"frontend_id"`
	CreatedAt  time.Time `db:"created_at"`
}

func mapDtoCategory(dto categoryDto, _ int) domain.Category {
	return domain.Category{
		Name:       dto.Name,
		FrontendID: dto.FrontendID,
		CreatedAt:  dto.CreatedAt,
	}
}

// GetByName implements domain.CategoryRepository.
func (p *postgresCategoryRepository) GetByName(ctx context.Context, name string) (domain.Category, error) {
	var dto categoryDto
	err := pgxscan.Get(ctx, p.conn, &dto, "SELECT * FROM categories WHERE name = $1", name)
	if err != nil {
		if pgxscan.NotFound(err) {
			return domain.Category{}, domain.ErrNotFound
		}
		return domain.Category{}, err
	}
	return mapDtoCategory(dto, 0), nil
}

// Create implements domain.CategoryRepository.
func (p *postgresCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (name, frontend_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO NOTHING`
	_, err := p.conn.Exec(ctx, query, category.Name, category.FrontendID, category.CreatedAt)
	return err
}

// List implements domain.CategoryRepository.
func (p *postgresCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	dtos := make([]categoryDto, 0)
	err := pgxscan.Select(ctx, p.conn, &dtos, "SELECT * FROM categories")
	if err != nil {
		return nil, err
	}
	return lo.Map(dtos, mapDtoCategory), nil
}

// Delete implements domain.CategoryRepository.
func (p *postgresCategoryRepository) Delete(ctx context.Context, name string) error {
	tag, err := p.conn.Exec(ctx, "DELETE FROM categories WHERE name = $1", name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
