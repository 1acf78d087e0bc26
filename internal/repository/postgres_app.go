package repository

import (
	"context"
	"time"

	"github.com/bjarke-xyz/app-tracker/internal/domain"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/samber/lo"
)

type postgresAppRepository struct {
	conn Connection
}

func NewPostgresApp(conn Connection) domain.ApplicationRepository {
	return &postgresAppRepository{conn: conn}
}

type applicationDto struct {
	ID              string    `db:"id"`
	FrontendID      string    `db:"frontend_id"`
	JobTitle        string    `db:"job_title"`
	CompanyName     string    `db:"company_name"`
	ApplicationDate string    `db:"application_date"`
	Status          string    `db:"status"`
	CategoryName    string    `db:"category_name"`
	OwnerUserID     string    `db:"owner_user_id"`
	CreatedAt       time.Time `db:"created_at"`
}

func mapDtoApp(dto applicationDto, _ int) domain.Application {
	return domain.Application{
		ID:              dto.ID,
		FrontendID:      dto.FrontendID,
		JobTitle:        dto.JobTitle,
		CompanyName:     dto.CompanyName,
		ApplicationDate: dto.ApplicationDate,
		Status:          dto.Status,
		CategoryName:    dto.CategoryName,
		OwnerUserID:     dto.OwnerUserID,
		CreatedAt:       dto.CreatedAt,
	}
}

// GetByUserID implements domain.ApplicationRepository.
func (p *postgresAppRepository) GetByUserID(ctx context.Context, userId string) ([]domain.Application, error) {
	dtos := make([]applicationDto, 0)
	err := pgxscan.Select(ctx, p.conn, &dtos, "SELECT * FROM applications WHERE owner_user_id = $1", userId)
	if err != nil {
		return nil, err
	}
	return lo.Map(dtos, mapDtoApp), nil
}

// Create implements domain.ApplicationRepository.
func (p *postgresAppRepository) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (id, frontend_id, job_title, company_name, application_date, status, category_name, owner_user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := p.conn.Exec(ctx, query, app.ID, app.FrontendID, app.JobTitle, app.CompanyName,
		app.ApplicationDate, app.Status, app.CategoryName, app.OwnerUserID, app.CreatedAt)
	return err
}

// Delete implements domain.ApplicationRepository. It does nothing.
func (p *postgresAppRepository) Delete(ctx context.Context, appID string) error {
	return nil
}
